package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medimart/storefront-gateway/internal/cache"
	"github.com/medimart/storefront-gateway/internal/models"
)

func TestGetMyCartDecodesListShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cart/myCart" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Cookie") != "session=abc" {
			t.Fatalf("cookie not forwarded: %q", r.Header.Get("Cookie"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[{"id":"c1","quantity":2,"medicines":{"id":"m1","name":"Aspirin","price":4.5}}],"error":null}`)
	}))
	defer server.Close()

	client := NewCartClient(server.URL, "test", cache.NewTags())
	payload, err := client.GetMyCart(context.Background(), "session=abc")
	require.NoError(t, err)
	require.Equal(t, models.CartPayloadList, payload.Kind)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "Aspirin", payload.Items[0].Medicines.Name)
}

func TestGetMyCartNullDataEnvelopeIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":null,"error":null}`)
	}))
	defer server.Close()

	client := NewCartClient(server.URL, "test", cache.NewTags())
	payload, err := client.GetMyCart(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, models.CartPayloadEmpty, payload.Kind)
	assert.Nil(t, payload.Item, "the envelope text must never become a line item")
}

func TestGetMyCartDecodesSingleShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"id":"c1","medicineId":"m1","name":"Aspirin","price":4.5,"quantity":1}}`)
	}))
	defer server.Close()

	client := NewCartClient(server.URL, "test", cache.NewTags())
	payload, err := client.GetMyCart(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, models.CartPayloadFlat, payload.Kind)
}

func TestUpdateLineItemInvalidatesTagOnSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/cartItem/c1" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"id":"c1","quantity":3}}`)
	}))
	defer server.Close()

	tags := cache.NewTags()
	client := NewCartClient(server.URL, "test", tags)

	require.NoError(t, client.UpdateLineItem(context.Background(), "", "c1", 3))
	assert.Equal(t, uint64(1), tags.Version(cache.TagCart))
}

func TestUpdateLineItemErrorEnvelopeSkipsInvalidation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":null,"error":"insufficient stock"}`)
	}))
	defer server.Close()

	tags := cache.NewTags()
	client := NewCartClient(server.URL, "test", tags)

	err := client.UpdateLineItem(context.Background(), "", "c1", 99)
	require.Error(t, err)

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "insufficient stock", remote.Message)
	assert.Equal(t, uint64(0), tags.Version(cache.TagCart), "error responses must not invalidate")
}

func TestDeleteLineItemTransportErrorSkipsInvalidation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Connection refused from here on.

	tags := cache.NewTags()
	client := NewCartClient(server.URL, "test", tags)

	err := client.DeleteLineItem(context.Background(), "", "c1")
	require.Error(t, err)
	assert.Equal(t, uint64(0), tags.Version(cache.TagCart))
}

func TestCreateLineItemSendsBody(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"id":"c1"}}`)
	}))
	defer server.Close()

	tags := cache.NewTags()
	client := NewCartClient(server.URL, "test", tags)

	require.NoError(t, client.CreateLineItem(context.Background(), "", "u1", "m1", 2))
	assert.Contains(t, gotBody, `"medicineId":"m1"`)
	assert.Contains(t, gotBody, `"quantity":2`)
	assert.Equal(t, uint64(1), tags.Version(cache.TagCart))
}
