package clients

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/medimart/storefront-gateway/internal/cache"
	"github.com/medimart/storefront-gateway/internal/models"
)

// ReviewClient talks to the review collaborator.
type ReviewClient struct {
	base
}

// NewReviewClient creates a review client against the API server.
func NewReviewClient(apiURL, service string, tags *cache.Tags) *ReviewClient {
	return &ReviewClient{base: newBase(apiURL, "Review", service, tags)}
}

// ListForMedicine fetches the reviews of one medicine.
func (c *ReviewClient) ListForMedicine(ctx context.Context, medicineID string) ([]models.Review, error) {
	raw, err := c.call(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetQueryParam("medicineId", medicineID).
			Get(c.baseURL + "/review")
	})
	if err != nil {
		return nil, err
	}
	var reviews []models.Review
	if err := json.Unmarshal(raw, &reviews); err != nil {
		return nil, fmt.Errorf("failed to parse reviews: %w", err)
	}
	return reviews, nil
}

// Create posts a customer review.
func (c *ReviewClient) Create(ctx context.Context, cookie string, req models.CreateReviewRequest) error {
	_, err := c.call(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetHeader("Cookie", cookie).
			SetBody(req).
			Post(c.baseURL + "/review")
	})
	c.invalidateOnSuccess(cache.TagReview, err)
	return err
}

// Update patches a review.
func (c *ReviewClient) Update(ctx context.Context, cookie, id string, req models.UpdateReviewRequest) error {
	_, err := c.call(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetHeader("Cookie", cookie).
			SetBody(req).
			Patch(fmt.Sprintf("%s/review/%s", c.baseURL, id))
	})
	c.invalidateOnSuccess(cache.TagReview, err)
	return err
}

// Delete removes a review.
func (c *ReviewClient) Delete(ctx context.Context, cookie, id string) error {
	_, err := c.call(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetHeader("Cookie", cookie).
			Delete(fmt.Sprintf("%s/review/%s", c.baseURL, id))
	})
	c.invalidateOnSuccess(cache.TagReview, err)
	return err
}
