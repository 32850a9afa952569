// Package clients holds the resty clients for the external collaborators the
// gateway fronts: the auth provider plus the API server's cart, order,
// medicine, category, user, and review resources. Every response follows the
// {data, error} envelope convention; a present error short-circuits cache-tag
// invalidation.
package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/medimart/storefront-gateway/internal/cache"
	"github.com/medimart/storefront-gateway/internal/patterns"
)

// RemoteError is a business error the collaborator reported inside an
// otherwise well-formed envelope, as opposed to a transport failure.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return "collaborator error: " + e.Message
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || string(raw) == "null"
}

// remoteMessage digs a human-readable message out of the error value, which
// arrives as a bare string, {"message": ...}, or {"error": ...}.
func remoteMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.Message != "" {
			return obj.Message
		}
		if obj.Error != "" {
			return obj.Error
		}
	}
	return string(raw)
}

// decodeEnvelope splits a collaborator response into payload and error. A
// present "data" key marks the {data, error} envelope even when its value is
// null: {"data":null,"error":null} means "no payload", not a payload that
// happens to look like the envelope itself. Some read endpoints return the
// resource directly; bodies without a "data" key pass through whole. A
// non-2xx status without a decodable envelope becomes a transport-style error.
func decodeEnvelope(resp *resty.Response) (json.RawMessage, error) {
	body := resp.Body()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err == nil {
		if errVal, ok := fields["error"]; ok && !isNull(errVal) {
			return nil, &RemoteError{Message: remoteMessage(errVal)}
		}
		if data, ok := fields["data"]; ok {
			if isNull(data) {
				return nil, nil
			}
			return data, nil
		}
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("collaborator returned status %d: %s", resp.StatusCode(), resp.String())
	}

	return body, nil
}

// base is the shared plumbing of every collaborator client: one resty client,
// one circuit breaker, and the cache-tag store mutations report into.
type base struct {
	http    *resty.Client
	circuit *patterns.CircuitBreakerWrapper
	name    string
	tags    *cache.Tags
	baseURL string
}

func newBase(baseURL, circuitName, service string, tags *cache.Tags) base {
	return base{
		http: resty.New().
			SetTimeout(patterns.DefaultTimeout).
			SetRetryCount(0), // No automatic retries, failed actions are user-retriable
		circuit: patterns.NewCircuitBreaker(circuitName, service),
		name:    circuitName,
		tags:    tags,
		baseURL: baseURL,
	}
}

// call runs fn through the collaborator's circuit breaker and unwraps the
// envelope.
func (b *base) call(fn func() (*resty.Response, error)) (json.RawMessage, error) {
	result, err := b.circuit.Execute(func() (interface{}, error) {
		resp, httpErr := fn()
		if httpErr != nil {
			return nil, fmt.Errorf("HTTP error: %w", httpErr)
		}
		return decodeEnvelope(resp)
	})
	if err != nil {
		return nil, patterns.FormatError(b.name, err)
	}
	raw, _ := result.(json.RawMessage)
	return raw, nil
}

// invalidateOnSuccess bumps the tag only for error-free mutations.
func (b *base) invalidateOnSuccess(tag string, err error) {
	if err == nil {
		b.tags.Invalidate(tag)
	}
}
