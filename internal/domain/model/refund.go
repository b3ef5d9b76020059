package model

// RefundReasonRequestedByCustomer is passed to the gateway when staff cancel a paid order.
const RefundReasonRequestedByCustomer = "requested_by_customer"

// RefundConfirmation acknowledges a refund accepted by the payment gateway.
type RefundConfirmation struct {
	RefundID        string
	PaymentIntentID string
	Status          string
	Amount          int64
	Currency        string
}
