package clients

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/medimart/storefront-gateway/internal/cache"
	"github.com/medimart/storefront-gateway/internal/models"
)

// MedicineClient talks to the medicine collaborator. Reads back the shop
// pages; GetByID also supplies the stock ceiling for cart quantity checks.
type MedicineClient struct {
	base
}

// NewMedicineClient creates a medicine client against the API server.
func NewMedicineClient(apiURL, service string, tags *cache.Tags) *MedicineClient {
	return &MedicineClient{base: newBase(apiURL, "Medicine", service, tags)}
}

// List fetches the catalog, applying any non-empty filters as query params.
func (c *MedicineClient) List(ctx context.Context, filter models.MedicineFilter) ([]models.Medicine, error) {
	req := c.http.R().SetContext(ctx)
	if filter.Status != "" {
		req.SetQueryParam("status", filter.Status)
	}
	if filter.Search != "" {
		req.SetQueryParam("search", filter.Search)
	}
	if filter.Category != "" {
		req.SetQueryParam("category", filter.Category)
	}

	raw, err := c.call(func() (*resty.Response, error) {
		return req.Get(c.baseURL + "/medicine")
	})
	if err != nil {
		return nil, err
	}
	var medicines []models.Medicine
	if err := json.Unmarshal(raw, &medicines); err != nil {
		return nil, fmt.Errorf("failed to parse medicines: %w", err)
	}
	return medicines, nil
}

// GetByID fetches one medicine, including its stock.
func (c *MedicineClient) GetByID(ctx context.Context, id string) (*models.Medicine, error) {
	raw, err := c.call(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			Get(fmt.Sprintf("%s/medicine/%s", c.baseURL, id))
	})
	if err != nil {
		return nil, err
	}
	var medicine models.Medicine
	if err := json.Unmarshal(raw, &medicine); err != nil {
		return nil, fmt.Errorf("failed to parse medicine: %w", err)
	}
	return &medicine, nil
}

// Create adds a listing (admin and seller dashboards).
func (c *MedicineClient) Create(ctx context.Context, cookie string, req models.CreateMedicineRequest) (*models.Medicine, error) {
	raw, err := c.call(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetHeader("Cookie", cookie).
			SetBody(req).
			Post(c.baseURL + "/medicine")
	})
	c.invalidateOnSuccess(cache.TagMedicine, err)
	if err != nil {
		return nil, err
	}
	var medicine models.Medicine
	if err := json.Unmarshal(raw, &medicine); err != nil {
		return nil, fmt.Errorf("failed to parse medicine: %w", err)
	}
	return &medicine, nil
}

// Update patches a listing.
func (c *MedicineClient) Update(ctx context.Context, cookie, id string, req models.UpdateMedicineRequest) error {
	_, err := c.call(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetHeader("Cookie", cookie).
			SetBody(req).
			Patch(fmt.Sprintf("%s/medicine/%s", c.baseURL, id))
	})
	c.invalidateOnSuccess(cache.TagMedicine, err)
	return err
}

// Delete removes a listing.
func (c *MedicineClient) Delete(ctx context.Context, cookie, id string) error {
	_, err := c.call(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetHeader("Cookie", cookie).
			Delete(fmt.Sprintf("%s/medicine/%s", c.baseURL, id))
	})
	c.invalidateOnSuccess(cache.TagMedicine, err)
	return err
}
