package models

import "time"

// OrderDraft is what checkout submits to the order collaborator. The
// collaborator converts the server-side cart into line items itself, so the
// draft carries only the delivery details.
type OrderDraft struct {
	ShippingAddress string `json:"shippingAddress"`
	PaymentGateway  string `json:"paymentGateway"`
}

// OrderItem is one captured line item within a placed order.
type OrderItem struct {
	MedicineID string  `json:"medicineId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// Order is a placed order as the order collaborator reports it.
type Order struct {
	ID              string      `json:"id"`
	CustomerID      string      `json:"customerId"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	ShippingAddress string      `json:"shippingAddress"`
	PaymentGateway  string      `json:"paymentGateway"`
	Status          string      `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// Order status constants, as reported by the order collaborator.
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// CheckoutRequest is the inbound checkout payload.
type CheckoutRequest struct {
	ShippingAddress string `json:"shippingAddress"`
	PaymentGateway  string `json:"paymentGateway"`
}

// UpdateOrderRequest patches an order's status (admin/seller flows).
type UpdateOrderRequest struct {
	Status string `json:"status" binding:"required"`
}
