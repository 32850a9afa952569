package clients

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/medimart/storefront-gateway/internal/cache"
	"github.com/medimart/storefront-gateway/internal/models"
)

// CategoryClient talks to the category collaborator.
type CategoryClient struct {
	base
}

// NewCategoryClient creates a category client against the API server.
func NewCategoryClient(apiURL, service string, tags *cache.Tags) *CategoryClient {
	return &CategoryClient{base: newBase(apiURL, "Category", service, tags)}
}

// List fetches all categories.
func (c *CategoryClient) List(ctx context.Context) ([]models.Category, error) {
	raw, err := c.call(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			Get(c.baseURL + "/category")
	})
	if err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse categories: %w", err)
	}
	return categories, nil
}

// Create adds a category (admin dashboard).
func (c *CategoryClient) Create(ctx context.Context, cookie string, req models.CreateCategoryRequest) error {
	_, err := c.call(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetHeader("Cookie", cookie).
			SetBody(req).
			Post(c.baseURL + "/category")
	})
	c.invalidateOnSuccess(cache.TagCategory, err)
	return err
}

// Update patches a category.
func (c *CategoryClient) Update(ctx context.Context, cookie, id string, req models.UpdateCategoryRequest) error {
	_, err := c.call(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetHeader("Cookie", cookie).
			SetBody(req).
			Patch(fmt.Sprintf("%s/category/%s", c.baseURL, id))
	})
	c.invalidateOnSuccess(cache.TagCategory, err)
	return err
}

// Delete removes a category.
func (c *CategoryClient) Delete(ctx context.Context, cookie, id string) error {
	_, err := c.call(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetHeader("Cookie", cookie).
			Delete(fmt.Sprintf("%s/category/%s", c.baseURL, id))
	})
	c.invalidateOnSuccess(cache.TagCategory, err)
	return err
}
