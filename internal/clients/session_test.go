package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medimart/storefront-gateway/internal/cache"
	"github.com/medimart/storefront-gateway/internal/models"
)

func TestGetSessionAuthenticated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get-session" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"user":{"id":"u1","name":"Ada","email":"ada@example.com","role":"customer"}}`)
	}))
	defer server.Close()

	client := NewSessionClient(server.URL, "test", cache.NewTags())
	session, err := client.GetSession(context.Background(), "session=abc")
	require.NoError(t, err)
	assert.True(t, session.Authenticated)
	assert.Equal(t, models.RoleCustomer, session.Role)
	assert.Equal(t, "u1", session.UserID)
}

func TestGetSessionNullMeansUnauthenticated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `null`)
	}))
	defer server.Close()

	client := NewSessionClient(server.URL, "test", cache.NewTags())
	session, err := client.GetSession(context.Background(), "")
	require.NoError(t, err, "a null session is not an error, just unauthenticated")
	assert.False(t, session.Authenticated)
}

func TestGetSessionTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewSessionClient(server.URL, "test", cache.NewTags())
	session, err := client.GetSession(context.Background(), "")
	require.Error(t, err)
	assert.False(t, session.Authenticated, "error path must yield the anonymous session")
}
