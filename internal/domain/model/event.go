package model

import (
	"encoding/json"
	"time"
)

// OrderEventType names a lifecycle change published to subscribers.
type OrderEventType string

const (
	OrderEventCreated          OrderEventType = "order.created"
	OrderEventDetailsUpdated   OrderEventType = "order.details_updated"
	OrderEventPaymentConfirmed OrderEventType = "order.payment_confirmed"
	OrderEventProcessing       OrderEventType = "order.processing"
	OrderEventShipped          OrderEventType = "order.shipped"
	OrderEventCancelled        OrderEventType = "order.cancelled"
	OrderEventDeleted          OrderEventType = "order.deleted"
)

// OrderEvent is an outbox record describing a committed order change.
type OrderEvent struct {
	ID        int64
	EventID   string
	OrderID   int64
	Type      OrderEventType
	Payload   json.RawMessage
	CreatedAt time.Time
	SentAt    *time.Time
}

// OrderEventPayload is the JSON body stored with each event.
type OrderEventPayload struct {
	OrderID       int64         `json:"order_id"`
	UserID        int64         `json:"user_id"`
	OrderStatus   OrderStatus   `json:"order_status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Carrier       string        `json:"carrier,omitempty"`
	Tracking      string        `json:"tracking_number,omitempty"`
	RefundID      string        `json:"refund_id,omitempty"`
}
