package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingFields are the recipient fields of an order.
type ShippingFields struct {
	Name          string `json:"name"`
	PhoneNumber   string `json:"phone_number"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
}

// OrderLineRequest is one requested product.
type OrderLineRequest struct {
	ProductID int64 `json:"product_id"`
	Count     int   `json:"count"`
}

// CreateOrderRequest describes POST /api/orders payload.
type CreateOrderRequest struct {
	ShippingFields
	Lines []OrderLineRequest `json:"lines"`
}

// UpdateDetailsRequest describes PUT /api/admin/orders/:id payload.
// Missing or empty carrier and tracking leave stored values unchanged.
type UpdateDetailsRequest struct {
	ShippingFields
	Carrier        *string `json:"carrier"`
	TrackingNumber *string `json:"tracking_number"`
}

// ShipRequest describes shipment payload.
type ShipRequest struct {
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"tracking_number"`
}

// PaymentRequest describes payment confirmation payload.
type PaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

// OrderHeaderResponse is the list and action view of an order.
type OrderHeaderResponse struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	ShippingFields
	OrderTotal      decimal.Decimal `json:"order_total"`
	OrderDate       time.Time       `json:"order_date"`
	ShippingDate    *time.Time      `json:"shipping_date,omitempty"`
	PaymentDueDate  *time.Time      `json:"payment_due_date,omitempty"`
	Carrier         string          `json:"carrier,omitempty"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	PaymentIntentID string          `json:"payment_intent_id,omitempty"`
	OrderStatus     string          `json:"order_status"`
	PaymentStatus   string          `json:"payment_status"`
}

// OrderDetailResponse is one line item.
type OrderDetailResponse struct {
	ProductID int64           `json:"product_id"`
	Title     string          `json:"title,omitempty"`
	Count     int             `json:"count"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderResponse is the detail view of an order.
type OrderResponse struct {
	OrderHeaderResponse
	Details []OrderDetailResponse `json:"details"`
}

// ErrorResponse carries a client-facing error message.
type ErrorResponse struct {
	Error string `json:"error"`
}
