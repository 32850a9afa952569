package clients

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/medimart/storefront-gateway/internal/cache"
	"github.com/medimart/storefront-gateway/internal/models"
	"github.com/medimart/storefront-gateway/internal/patterns"
)

// CartClient talks to the cart collaborator. Mutations run inside a bulkhead
// and invalidate the Cart tag only when the response carries no error.
type CartClient struct {
	base
	bulkhead *patterns.Bulkhead
}

// NewCartClient creates a cart client against the API server.
func NewCartClient(apiURL, service string, tags *cache.Tags) *CartClient {
	return &CartClient{
		base:     newBase(apiURL, "Cart", service, tags),
		bulkhead: patterns.NewBulkhead(10, "cart", service),
	}
}

// GetMyCart fetches the caller's cart and resolves its payload shape once,
// at this boundary.
func (c *CartClient) GetMyCart(ctx context.Context, cookie string) (models.CartPayload, error) {
	raw, err := c.call(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetHeader("Cookie", cookie).
			Get(c.baseURL + "/cart/myCart")
	})
	if err != nil {
		return models.CartPayload{Kind: models.CartPayloadEmpty}, err
	}
	return models.DecodeCartPayload(raw), nil
}

// CreateLineItem adds a medicine to the customer's cart.
func (c *CartClient) CreateLineItem(ctx context.Context, cookie, customerID, medicineID string, quantity int) error {
	body := map[string]interface{}{
		"customerId": customerID,
		"medicineId": medicineID,
		"quantity":   quantity,
	}
	err := c.bulkhead.Execute(func() error {
		_, callErr := c.call(func() (*resty.Response, error) {
			return c.http.R().
				SetContext(ctx).
				SetHeader("Content-Type", "application/json").
				SetHeader("Cookie", cookie).
				SetBody(body).
				Post(c.baseURL + "/cartItem")
		})
		return callErr
	})
	c.invalidateOnSuccess(cache.TagCart, err)
	return err
}

// UpdateLineItem sets a line item's quantity. The caller must have validated
// the bounds already; the collaborator's confirmation is the canonical state.
func (c *CartClient) UpdateLineItem(ctx context.Context, cookie, id string, quantity int) error {
	err := c.bulkhead.Execute(func() error {
		_, callErr := c.call(func() (*resty.Response, error) {
			return c.http.R().
				SetContext(ctx).
				SetHeader("Content-Type", "application/json").
				SetHeader("Cookie", cookie).
				SetBody(map[string]int{"quantity": quantity}).
				Patch(fmt.Sprintf("%s/cartItem/%s", c.baseURL, id))
		})
		return callErr
	})
	c.invalidateOnSuccess(cache.TagCart, err)
	return err
}

// DeleteLineItem removes a line item from the cart.
func (c *CartClient) DeleteLineItem(ctx context.Context, cookie, id string) error {
	err := c.bulkhead.Execute(func() error {
		_, callErr := c.call(func() (*resty.Response, error) {
			return c.http.R().
				SetContext(ctx).
				SetHeader("Cookie", cookie).
				Delete(fmt.Sprintf("%s/cartItem/%s", c.baseURL, id))
		})
		return callErr
	})
	c.invalidateOnSuccess(cache.TagCart, err)
	return err
}
