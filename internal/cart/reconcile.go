// Package cart reconciles the heterogeneous cart payloads returned by the
// cart collaborator into one canonical line-item list and enforces quantity
// bounds on edits and checkout.
package cart

import (
	"errors"
	"strings"

	"github.com/medimart/storefront-gateway/internal/models"
)

var (
	// ErrMinQuantity rejects edits that would drop a line item below one.
	ErrMinQuantity = errors.New("minimum quantity is 1")
	// ErrStockExceeded rejects edits beyond the medicine's available stock.
	ErrStockExceeded = errors.New("requested quantity exceeds available stock")
	// ErrEmptyCart rejects checkout with no line items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrMissingAddress rejects checkout without a shipping address.
	ErrMissingAddress = errors.New("shipping address is required")
)

// StockUnknown disables the stock ceiling when the medicine lookup failed.
// The order collaborator remains the final authority on stock.
const StockUnknown = -1

// Normalize folds any of the observed cart payload shapes into the canonical
// line-item list. Nested medicine fields win over flat fields, price defaults
// to 0, quantity to 1, image to the placeholder. Total and idempotent:
// normalizing an already-canonical list yields the same list.
func Normalize(payload models.CartPayload) []models.CartLineItem {
	switch payload.Kind {
	case models.CartPayloadList:
		items := make([]models.CartLineItem, 0, len(payload.Items))
		for _, raw := range payload.Items {
			items = append(items, normalizeItem(raw))
		}
		return items
	case models.CartPayloadNested, models.CartPayloadFlat:
		return []models.CartLineItem{normalizeItem(*payload.Item)}
	default:
		return []models.CartLineItem{}
	}
}

func normalizeItem(raw models.RawCartItem) models.CartLineItem {
	item := models.CartLineItem{
		ID:         raw.ID,
		MedicineID: raw.MedicineID,
		Name:       raw.Name,
		Price:      float64(raw.Price),
		Image:      raw.Image,
		Quantity:   int(raw.Quantity),
	}
	if raw.Medicines != nil {
		if raw.Medicines.ID != "" {
			item.MedicineID = raw.Medicines.ID
		}
		if raw.Medicines.Name != "" {
			item.Name = raw.Medicines.Name
		}
		if raw.Medicines.Price != 0 {
			item.Price = float64(raw.Medicines.Price)
		}
		if raw.Medicines.Image != "" {
			item.Image = raw.Medicines.Image
		}
	}
	if item.Name == "" {
		item.Name = "Unknown"
	}
	if item.Price < 0 {
		item.Price = 0
	}
	if item.Image == "" {
		item.Image = models.PlaceholderImage
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	return item
}

// ComputeTotals sums price times quantity over the line items. Negative
// values were already coerced away by Normalize; the total equals the
// subtotal because tax and shipping are owned by the order collaborator.
func ComputeTotals(items []models.CartLineItem) (subtotal, total float64) {
	for _, item := range items {
		price := item.Price
		if price < 0 {
			price = 0
		}
		qty := item.Quantity
		if qty < 0 {
			qty = 0
		}
		subtotal += price * float64(qty)
	}
	return subtotal, subtotal
}

// AdjustQuantity applies a delta to a line item's quantity and enforces the
// bounds: never below 1, never above stock. Pass StockUnknown to skip the
// ceiling when the stock lookup failed. On rejection the returned quantity is
// the unchanged current quantity.
func AdjustQuantity(current, delta, stock int) (int, error) {
	next := current + delta
	if next < 1 {
		return current, ErrMinQuantity
	}
	if stock != StockUnknown && next > stock {
		return current, ErrStockExceeded
	}
	return next, nil
}

// ValidateDraft gates checkout submission: the cart must have at least one
// line item and the shipping address must be non-blank.
func ValidateDraft(items []models.CartLineItem, shippingAddress string) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}
	if strings.TrimSpace(shippingAddress) == "" {
		return ErrMissingAddress
	}
	return nil
}
