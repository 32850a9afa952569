package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medimart/storefront-gateway/internal/cache"
	"github.com/medimart/storefront-gateway/internal/clients"
	"github.com/medimart/storefront-gateway/internal/gate"
)

// fakeBackends spins up an auth provider and an API server double, and wires
// the global gateway against them.
type fakeBackends struct {
	sessionBody string
	cartBody    string
	cartUpdate  string
	medicine    string
	tags        *cache.Tags
}

func (f *fakeBackends) install(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, f.sessionBody)
	}))
	t.Cleanup(auth.Close)

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/cart/myCart":
			fmt.Fprint(w, f.cartBody)
		case strings.HasPrefix(r.URL.Path, "/cartItem/") && r.Method == http.MethodPatch:
			fmt.Fprint(w, f.cartUpdate)
		case strings.HasPrefix(r.URL.Path, "/medicine/"):
			fmt.Fprint(w, f.medicine)
		default:
			fmt.Fprint(w, `{"data":[]}`)
		}
	}))
	t.Cleanup(api.Close)

	f.tags = cache.NewTags()
	gateway = &GatewayService{
		clients: clients.NewSet(api.URL, auth.URL, "gateway-test", f.tags),
		tags:    f.tags,
	}
	return newRouter()
}

const customerSession = `{"user":{"id":"u1","name":"Ada","email":"ada@example.com","role":"customer"}}`
const sellerSession = `{"user":{"id":"u2","name":"Sam","email":"sam@example.com","role":"seller"}}`

func TestCartViewNormalizesAndTotals(t *testing.T) {
	backends := &fakeBackends{
		sessionBody: customerSession,
		cartBody: `{"data":[
			{"id":"c1","quantity":2,"medicines":{"id":"m1","name":"Aspirin","price":10}},
			{"id":"c2","medicineId":"m2","name":"Ibuprofen","price":5,"quantity":1}
		]}`,
	}
	router := backends.install(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Items    []map[string]interface{} `json:"items"`
			Subtotal float64                  `json:"subtotal"`
			Total    float64                  `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data.Items, 2)
	assert.Equal(t, 25.0, body.Data.Subtotal)
	assert.Equal(t, 25.0, body.Data.Total)
}

func TestSellerNeverSeesAdminContent(t *testing.T) {
	backends := &fakeBackends{sessionBody: sellerSession}
	router := backends.install(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-dashboard/medicine", nil))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, gate.CustomerDashboardRoot, w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "data")
}

func TestUnauthenticatedCartRedirectsToLogin(t *testing.T) {
	backends := &fakeBackends{sessionBody: `null`}
	router := backends.install(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, gate.LoginPath, w.Header().Get("Location"))
}

func TestDashboardDispatchForCustomer(t *testing.T) {
	backends := &fakeBackends{sessionBody: customerSession}
	router := backends.install(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, gate.CustomerHome, w.Header().Get("Location"))
}

func TestDecrementBelowOneIsRejected(t *testing.T) {
	backends := &fakeBackends{
		sessionBody: customerSession,
		cartBody:    `{"data":[{"id":"c1","medicineId":"m1","name":"Aspirin","price":10,"quantity":1}]}`,
		medicine:    `{"data":{"id":"m1","name":"Aspirin","price":10,"stock":5}}`,
	}
	router := backends.install(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/cart/items/c1", strings.NewReader(`{"delta":-1}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "minimum quantity is 1")
	// Quantity unchanged, no cart invalidation happened.
	assert.Contains(t, w.Body.String(), `"quantity":1`)
	assert.Equal(t, uint64(0), backends.tags.Version(cache.TagCart))
}

func TestIncrementBeyondStockIsRejected(t *testing.T) {
	backends := &fakeBackends{
		sessionBody: customerSession,
		cartBody:    `{"data":[{"id":"c1","medicineId":"m1","name":"Aspirin","price":10,"quantity":5}]}`,
		medicine:    `{"data":{"id":"m1","name":"Aspirin","price":10,"stock":5}}`,
	}
	router := backends.install(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/cart/items/c1", strings.NewReader(`{"delta":1}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "exceeds available stock")
	assert.Equal(t, uint64(0), backends.tags.Version(cache.TagCart))
}

func TestIncrementConfirmedByCollaborator(t *testing.T) {
	backends := &fakeBackends{
		sessionBody: customerSession,
		cartBody:    `{"data":[{"id":"c1","medicineId":"m1","name":"Aspirin","price":10,"quantity":2}]}`,
		cartUpdate:  `{"data":{"id":"c1","quantity":3}}`,
		medicine:    `{"data":{"id":"m1","name":"Aspirin","price":10,"stock":5}}`,
	}
	router := backends.install(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/cart/items/c1", strings.NewReader(`{"delta":1}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity":3`)
	assert.Equal(t, uint64(1), backends.tags.Version(cache.TagCart))
}

func TestCartMutationErrorSurfacesFailure(t *testing.T) {
	backends := &fakeBackends{
		sessionBody: customerSession,
		cartBody:    `{"data":[{"id":"c1","medicineId":"m1","name":"Aspirin","price":10,"quantity":2}]}`,
		cartUpdate:  `{"data":null,"error":"item is no longer available"}`,
		medicine:    `{"data":{"id":"m1","name":"Aspirin","price":10,"stock":5}}`,
	}
	router := backends.install(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/cart/items/c1", strings.NewReader(`{"delta":1}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "item is no longer available")
	assert.Equal(t, uint64(0), backends.tags.Version(cache.TagCart))
}

func TestCheckoutRejectsEmptyCartAndBlankAddress(t *testing.T) {
	backends := &fakeBackends{
		sessionBody: customerSession,
		cartBody:    `null`,
	}
	router := backends.install(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(`{"shippingAddress":"123 Main St","paymentGateway":"cod"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cart is empty")

	backends = &fakeBackends{
		sessionBody: customerSession,
		cartBody:    `{"data":[{"id":"c1","medicineId":"m1","name":"Aspirin","price":10,"quantity":2}]}`,
	}
	router = backends.install(t)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(`{"shippingAddress":"   ","paymentGateway":"cod"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "shipping address is required")
}

func TestNullDataEnvelopeCartStaysEmpty(t *testing.T) {
	backends := &fakeBackends{
		sessionBody: customerSession,
		cartBody:    `{"data":null,"error":null}`,
	}
	router := backends.install(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Items []map[string]interface{} `json:"items"`
			Total float64                  `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Data.Items, "the envelope text must never become a line item")
	assert.Equal(t, 0.0, body.Data.Total)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(`{"shippingAddress":"123 Main St","paymentGateway":"cod"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cart is empty")
}

func TestHealthIsPublic(t *testing.T) {
	backends := &fakeBackends{sessionBody: `null`}
	router := backends.install(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Cart":"closed"`)
	assert.Contains(t, w.Body.String(), `"Session":"closed"`)
}
