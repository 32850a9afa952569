package clients

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/medimart/storefront-gateway/internal/cache"
	"github.com/medimart/storefront-gateway/internal/models"
	"github.com/medimart/storefront-gateway/internal/patterns"
)

// SessionClient resolves the caller's session from the auth provider, once
// per gated request. A null session body means "not authenticated"; transport
// failures are returned as errors and the gate fails closed on them.
type SessionClient struct {
	base
}

// NewSessionClient creates a session client against the auth provider. It
// never mutates, but it shares the tag store so the base invariants hold for
// every client alike.
func NewSessionClient(authURL, service string, tags *cache.Tags) *SessionClient {
	b := newBase(authURL, "Session", service, tags)
	b.http.SetTimeout(patterns.SessionTimeout)
	return &SessionClient{base: b}
}

// GetSession fetches the session for the inbound request's cookies.
func (c *SessionClient) GetSession(ctx context.Context, cookie string) (models.Session, error) {
	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, httpErr := c.http.R().
			SetContext(ctx).
			SetHeader("Cookie", cookie).
			Get(c.baseURL + "/get-session")
		if httpErr != nil {
			return nil, fmt.Errorf("HTTP error: %w", httpErr)
		}
		return resp.Body(), nil
	})
	if err != nil {
		return models.Anonymous(), patterns.FormatError(c.name, err)
	}

	body, _ := result.([]byte)
	if isNull(body) {
		return models.Anonymous(), nil
	}

	var payload models.SessionPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.Anonymous(), fmt.Errorf("failed to parse session: %w", err)
	}
	if payload.User.ID == "" {
		return models.Anonymous(), nil
	}

	session := models.SessionFromPayload(payload)
	log.WithFields(log.Fields{
		"user_id": session.UserID,
		"role":    session.Role.String(),
	}).Debug("Session resolved")
	return session, nil
}
