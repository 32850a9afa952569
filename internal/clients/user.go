package clients

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/medimart/storefront-gateway/internal/cache"
	"github.com/medimart/storefront-gateway/internal/models"
)

// UserClient talks to the user collaborator (admin user management).
type UserClient struct {
	base
}

// NewUserClient creates a user client against the API server.
func NewUserClient(apiURL, service string, tags *cache.Tags) *UserClient {
	return &UserClient{base: newBase(apiURL, "User", service, tags)}
}

// List fetches all accounts.
func (c *UserClient) List(ctx context.Context, cookie string) ([]models.User, error) {
	raw, err := c.call(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetHeader("Cookie", cookie).
			Get(c.baseURL + "/user")
	})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to parse users: %w", err)
	}
	return users, nil
}

// Get fetches one account by id.
func (c *UserClient) Get(ctx context.Context, cookie, id string) (*models.User, error) {
	raw, err := c.call(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetHeader("Cookie", cookie).
			Get(fmt.Sprintf("%s/user/%s", c.baseURL, id))
	})
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	return &user, nil
}

// UpdateStatus patches an account's status (active/blocked).
func (c *UserClient) UpdateStatus(ctx context.Context, cookie, id, status string) error {
	_, err := c.call(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetHeader("Cookie", cookie).
			SetBody(map[string]string{"status": status}).
			Patch(fmt.Sprintf("%s/user/%s", c.baseURL, id))
	})
	c.invalidateOnSuccess(cache.TagUser, err)
	return err
}

// Delete removes an account.
func (c *UserClient) Delete(ctx context.Context, cookie, id string) error {
	_, err := c.call(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetHeader("Cookie", cookie).
			Delete(fmt.Sprintf("%s/user/%s", c.baseURL, id))
	})
	c.invalidateOnSuccess(cache.TagUser, err)
	return err
}
