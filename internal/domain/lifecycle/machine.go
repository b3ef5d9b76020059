// Package lifecycle holds the order state-transition table.
//
// An order's state is the pair (OrderStatus, PaymentStatus). Every action is
// looked up in the table against the current pair; the first matching rule
// yields the next pair, anything else is rejected with a TransitionError.
package lifecycle

import (
	"errors"

	domainErrors "github.com/polkiloo/ordermart/internal/domain/errors"
	"github.com/polkiloo/ordermart/internal/domain/model"
)

// Action is an operation that may move an order to another state.
type Action string

const (
	ActionUpdateDetails   Action = "update details of"
	ActionConfirmPayment  Action = "confirm payment of"
	ActionStartProcessing Action = "start processing"
	ActionShip            Action = "ship"
	ActionCancel          Action = "cancel"
)

// Effect is an external side effect that must succeed before a plan can be committed.
type Effect int

const (
	EffectNone Effect = iota
	EffectRefund
)

// State is the joint fulfillment and payment status of an order.
type State struct {
	Order   model.OrderStatus
	Payment model.PaymentStatus
}

// StateOf extracts the state pair from a header.
func StateOf(h *model.OrderHeader) State {
	return State{Order: h.OrderStatus, Payment: h.PaymentStatus}
}

// ErrRefundRequired is returned when committing a refund plan without a confirmation.
var ErrRefundRequired = errors.New("refund confirmation required")

type rule struct {
	action   Action
	orders   []model.OrderStatus
	payments []model.PaymentStatus // empty matches any
	next     State                 // empty fields keep the current value
	effect   Effect
}

var (
	open   = []model.OrderStatus{model.OrderStatusPending, model.OrderStatusApproved, model.OrderStatusProcessing}
	active = []model.OrderStatus{model.OrderStatusPending, model.OrderStatusApproved, model.OrderStatusProcessing, model.OrderStatusShipped}
	every  = []model.OrderStatus{model.OrderStatusPending, model.OrderStatusApproved, model.OrderStatusProcessing, model.OrderStatusShipped, model.OrderStatusCancelled, model.OrderStatusRefunded}
	unpaid = []model.PaymentStatus{model.PaymentStatusPending, model.PaymentStatusDelayedPayment, model.PaymentStatusRejected}
)

var table = []rule{
	// Shipping fields are editable whatever the status; the pair is kept.
	{action: ActionUpdateDetails, orders: every},

	{
		action:   ActionConfirmPayment,
		orders:   []model.OrderStatus{model.OrderStatusPending},
		payments: []model.PaymentStatus{model.PaymentStatusPending},
		next:     State{Order: model.OrderStatusApproved, Payment: model.PaymentStatusApproved},
	},
	{
		action:   ActionConfirmPayment,
		orders:   active,
		payments: []model.PaymentStatus{model.PaymentStatusDelayedPayment},
		next:     State{Payment: model.PaymentStatusApproved},
	},

	{
		action:   ActionStartProcessing,
		orders:   []model.OrderStatus{model.OrderStatusPending, model.OrderStatusApproved},
		payments: []model.PaymentStatus{model.PaymentStatusPending, model.PaymentStatusApproved, model.PaymentStatusDelayedPayment},
		next:     State{Order: model.OrderStatusProcessing},
	},

	{
		action:   ActionShip,
		orders:   []model.OrderStatus{model.OrderStatusProcessing},
		payments: []model.PaymentStatus{model.PaymentStatusPending, model.PaymentStatusApproved, model.PaymentStatusDelayedPayment},
		next:     State{Order: model.OrderStatusShipped},
	},

	{
		action:   ActionCancel,
		orders:   open,
		payments: []model.PaymentStatus{model.PaymentStatusApproved},
		next:     State{Order: model.OrderStatusCancelled, Payment: model.PaymentStatusRefunded},
		effect:   EffectRefund,
	},
	{
		action:   ActionCancel,
		orders:   open,
		payments: unpaid,
		next:     State{Order: model.OrderStatusCancelled, Payment: model.PaymentStatusCancelled},
	},
}

// Plan is an accepted transition awaiting commit.
type Plan struct {
	Action Action
	From   State
	To     State
	Effect Effect
}

// Next looks up the transition for action from the current state.
func Next(action Action, current State) (Plan, error) {
	for _, r := range table {
		if r.action != action || !r.matches(current) {
			continue
		}
		to := current
		if r.next.Order != "" {
			to.Order = r.next.Order
		}
		if r.next.Payment != "" {
			to.Payment = r.next.Payment
		}
		return Plan{Action: action, From: current, To: to, Effect: r.effect}, nil
	}
	return Plan{}, &domainErrors.TransitionError{
		Action:        string(action),
		OrderStatus:   string(current.Order),
		PaymentStatus: string(current.Payment),
	}
}

// Allowed reports whether action is permitted from current.
func Allowed(action Action, current State) bool {
	_, err := Next(action, current)
	return err == nil
}

// Commit applies the plan to h. Plans with a refund effect require the gateway's confirmation.
func (p Plan) Commit(h *model.OrderHeader, refund *model.RefundConfirmation) error {
	if p.Effect == EffectRefund && refund == nil {
		return ErrRefundRequired
	}
	h.OrderStatus = p.To.Order
	h.PaymentStatus = p.To.Payment
	return nil
}

func (r rule) matches(s State) bool {
	if !containsOrder(r.orders, s.Order) {
		return false
	}
	if len(r.payments) == 0 {
		return true
	}
	for _, p := range r.payments {
		if p == s.Payment {
			return true
		}
	}
	return false
}

func containsOrder(list []model.OrderStatus, s model.OrderStatus) bool {
	for _, o := range list {
		if o == s {
			return true
		}
	}
	return false
}
