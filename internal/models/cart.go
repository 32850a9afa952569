package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// PlaceholderImage is used when a line item arrives without an image URL.
const PlaceholderImage = "/placeholder.jpg"

// CartLineItem is the canonical post-normalization line item. Quantity is
// always >= 1 and price >= 0 once normalized.
type CartLineItem struct {
	ID         string  `json:"id"`
	MedicineID string  `json:"medicineId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Image      string  `json:"image"`
	Quantity   int     `json:"quantity"`
}

// LooseNumber tolerates the backend's habit of sending numeric fields as JSON
// numbers, quoted strings, or null. Anything unparseable coerces to 0; it
// never fails, which keeps cart normalization total.
type LooseNumber float64

func (n *LooseNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*n = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = LooseNumber(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		*n = 0
		return nil
	}
	*n = LooseNumber(f)
	return nil
}

// RawMedicineRef is the nested medicine object some cart responses embed.
type RawMedicineRef struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Price LooseNumber `json:"price"`
	Image string      `json:"image"`
}

// RawCartItem is one cart entry as the cart collaborator returns it, before
// normalization. Fields may live flat on the item or inside Medicines.
type RawCartItem struct {
	ID         string          `json:"id"`
	MedicineID string          `json:"medicineId"`
	Name       string          `json:"name"`
	Price      LooseNumber     `json:"price"`
	Image      string          `json:"image"`
	Quantity   LooseNumber     `json:"quantity"`
	Medicines  *RawMedicineRef `json:"medicines"`
}

// CartPayloadKind discriminates the shapes the cart collaborator has been
// observed returning.
type CartPayloadKind int

const (
	// CartPayloadEmpty covers null, absent, or undecodable bodies.
	CartPayloadEmpty CartPayloadKind = iota
	// CartPayloadList is a bare array of raw items.
	CartPayloadList
	// CartPayloadNested is a single item carrying a nested medicine object.
	CartPayloadNested
	// CartPayloadFlat is a single item with flat fields only.
	CartPayloadFlat
)

// CartPayload is the discriminated union resolved once at the collaborator
// boundary, so the rest of the code never re-sniffs response shapes.
type CartPayload struct {
	Kind  CartPayloadKind
	Items []RawCartItem
	Item  *RawCartItem
}

// DecodeCartPayload classifies and decodes a raw cart body. It is total: any
// body it cannot make sense of becomes CartPayloadEmpty.
func DecodeCartPayload(raw json.RawMessage) CartPayload {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return CartPayload{Kind: CartPayloadEmpty}
	}
	if raw[0] == '[' {
		var items []RawCartItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return CartPayload{Kind: CartPayloadEmpty}
		}
		return CartPayload{Kind: CartPayloadList, Items: items}
	}
	var item RawCartItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return CartPayload{Kind: CartPayloadEmpty}
	}
	if item.Medicines != nil {
		return CartPayload{Kind: CartPayloadNested, Item: &item}
	}
	// An object carrying neither identifier is not a line item.
	if item.ID == "" && item.MedicineID == "" {
		return CartPayload{Kind: CartPayloadEmpty}
	}
	return CartPayload{Kind: CartPayloadFlat, Item: &item}
}

// AddToCartRequest is the inbound add-to-cart payload.
type AddToCartRequest struct {
	MedicineID string `json:"medicineId" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
}

// AdjustQuantityRequest is the inbound quantity-delta payload. Delta is +1 or
// -1 from the cart page controls but any non-zero delta is accepted.
type AdjustQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// CartView is what the cart page renders: normalized items plus totals.
type CartView struct {
	Items    []CartLineItem `json:"items"`
	Subtotal float64        `json:"subtotal"`
	Total    float64        `json:"total"`
}
