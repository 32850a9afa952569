package clients

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/medimart/storefront-gateway/internal/cache"
	"github.com/medimart/storefront-gateway/internal/models"
	"github.com/medimart/storefront-gateway/internal/patterns"
)

// OrderClient talks to the order collaborator. The collaborator is the sole
// source of truth for final totals and line-item capture: the draft carries
// only delivery details and the server converts the cart itself.
type OrderClient struct {
	base
	bulkhead *patterns.Bulkhead
}

// NewOrderClient creates an order client against the API server.
func NewOrderClient(apiURL, service string, tags *cache.Tags) *OrderClient {
	return &OrderClient{
		base:     newBase(apiURL, "Order", service, tags),
		bulkhead: patterns.NewBulkhead(10, "order", service),
	}
}

// CreateOrder submits an order draft. The idempotency key lets the
// collaborator dedupe a resubmitted checkout.
func (c *OrderClient) CreateOrder(ctx context.Context, cookie string, draft models.OrderDraft, idempotencyKey string) (*models.Order, error) {
	var order models.Order
	err := c.bulkhead.Execute(func() error {
		raw, callErr := c.call(func() (*resty.Response, error) {
			return c.http.R().
				SetContext(ctx).
				SetHeader("Content-Type", "application/json").
				SetHeader("Cookie", cookie).
				SetHeader("Idempotency-Key", idempotencyKey).
				SetBody(draft).
				Post(c.baseURL + "/api/orders")
		})
		if callErr != nil {
			return callErr
		}
		if err := json.Unmarshal(raw, &order); err != nil {
			return fmt.Errorf("failed to parse order: %w", err)
		}
		return nil
	})
	c.invalidateOnSuccess(cache.TagOrder, err)
	// A placed order empties the server-side cart as well.
	if err == nil {
		c.tags.Invalidate(cache.TagCart)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrders lists the caller's orders (all orders for admin).
func (c *OrderClient) GetOrders(ctx context.Context, cookie string) ([]models.Order, error) {
	raw, err := c.call(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetHeader("Cookie", cookie).
			Get(c.baseURL + "/api/orders")
	})
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("failed to parse orders: %w", err)
	}
	return orders, nil
}

// GetOrder fetches one order by id.
func (c *OrderClient) GetOrder(ctx context.Context, cookie, id string) (*models.Order, error) {
	raw, err := c.call(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetHeader("Cookie", cookie).
			Get(fmt.Sprintf("%s/api/orders/%s", c.baseURL, id))
	})
	if err != nil {
		return nil, err
	}
	var order models.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("failed to parse order: %w", err)
	}
	return &order, nil
}

// UpdateOrder patches an order (status transitions from the dashboards).
func (c *OrderClient) UpdateOrder(ctx context.Context, cookie, id string, patch models.UpdateOrderRequest) error {
	err := c.bulkhead.Execute(func() error {
		_, callErr := c.call(func() (*resty.Response, error) {
			return c.http.R().
				SetContext(ctx).
				SetHeader("Content-Type", "application/json").
				SetHeader("Cookie", cookie).
				SetBody(patch).
				Patch(fmt.Sprintf("%s/api/orders/%s", c.baseURL, id))
		})
		return callErr
	})
	c.invalidateOnSuccess(cache.TagOrder, err)
	return err
}

// DeleteOrder removes an order.
func (c *OrderClient) DeleteOrder(ctx context.Context, cookie, id string) error {
	err := c.bulkhead.Execute(func() error {
		_, callErr := c.call(func() (*resty.Response, error) {
			return c.http.R().
				SetContext(ctx).
				SetHeader("Cookie", cookie).
				Delete(fmt.Sprintf("%s/api/orders/%s", c.baseURL, id))
		})
		return callErr
	})
	c.invalidateOnSuccess(cache.TagOrder, err)
	return err
}
