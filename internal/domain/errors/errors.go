package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidTransition  = errors.New("invalid order transition")
	ErrPaymentGateway     = errors.New("payment gateway error")
	ErrConflict           = errors.New("concurrent modification")
	ErrForbidden          = errors.New("forbidden")
)

// TransitionError reports an action that is not allowed from the order's current state.
type TransitionError struct {
	Action        string
	OrderStatus   string
	PaymentStatus string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s order in state %s/%s", e.Action, e.OrderStatus, e.PaymentStatus)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// GatewayError reports a failed or timed out refund request.
type GatewayError struct {
	Reason string
	Err    error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment gateway: %s: %v", e.Reason, e.Err)
	}
	return "payment gateway: " + e.Reason
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *GatewayError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrPaymentGateway}
	}
	return []error{ErrPaymentGateway, e.Err}
}
