package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusApproved   OrderStatus = "Approved"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusRefunded   OrderStatus = "Refunded"
)

// PaymentStatus describes money state of an order.
type PaymentStatus string

const (
	PaymentStatusPending        PaymentStatus = "Pending"
	PaymentStatusApproved       PaymentStatus = "Approved"
	PaymentStatusDelayedPayment PaymentStatus = "ApprovedForDelayedPayment"
	PaymentStatusRejected       PaymentStatus = "Rejected"
	PaymentStatusRefunded       PaymentStatus = "Refunded"
	PaymentStatusCancelled      PaymentStatus = "Cancelled"
)

// PaymentDueDays is the invoice term granted to delayed-payment orders at shipment.
const PaymentDueDays = 30

// ShippingInfo holds recipient fields editable by staff.
type ShippingInfo struct {
	Name          string
	PhoneNumber   string
	StreetAddress string
	City          string
	State         string
	PostalCode    string
}

// OrderHeader is the order-level record holding shipping, payment and status fields.
type OrderHeader struct {
	ID     int64
	UserID int64
	ShippingInfo

	OrderTotal      decimal.Decimal
	PaymentIntentID string
	PaymentDueDate  *time.Time
	OrderDate       time.Time
	ShippingDate    *time.Time
	Carrier         string
	TrackingNumber  string

	OrderStatus   OrderStatus
	PaymentStatus PaymentStatus

	// Version is bumped on every persisted change and guards against stale writes.
	Version int64
}

// OrderDetail is a line item with price captured at order time.
type OrderDetail struct {
	ID            int64
	OrderHeaderID int64
	ProductID     int64
	Count         int
	Price         decimal.Decimal
	Product       *Product
}

// LineTotal returns price multiplied by count.
func (d OrderDetail) LineTotal() decimal.Decimal {
	return d.Price.Mul(decimal.NewFromInt(int64(d.Count)))
}

// Order bundles a header with its line items.
type Order struct {
	Header  OrderHeader
	Details []OrderDetail
}

// OrderLine is a requested line when placing an order.
type OrderLine struct {
	ProductID int64
	Count     int
}

// DetailsUpdate carries replacement shipping fields. Carrier and tracking are
// only overwritten when present.
type DetailsUpdate struct {
	ShippingInfo
	Carrier        Optional[string]
	TrackingNumber Optional[string]
}
