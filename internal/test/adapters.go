package test

import (
	"context"
	"sync"

	"github.com/polkiloo/ordermart/internal/domain/model"
)

// RefundCall records a refund request.
type RefundCall struct {
	PaymentIntentID string
	Reason          string
}

// RefundGatewayStub records refund requests and returns configured results.
type RefundGatewayStub struct {
	mu    sync.Mutex
	Calls []RefundCall
	Err   error
	Fn    func(context.Context, string, string) (*model.RefundConfirmation, error)
}

// CreateRefund records the call and returns Err or a succeeded confirmation.
func (s *RefundGatewayStub) CreateRefund(ctx context.Context, paymentIntentID, reason string) (*model.RefundConfirmation, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, RefundCall{PaymentIntentID: paymentIntentID, Reason: reason})
	s.mu.Unlock()
	if s.Fn != nil {
		return s.Fn(ctx, paymentIntentID, reason)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return &model.RefundConfirmation{RefundID: "re_" + paymentIntentID, PaymentIntentID: paymentIntentID, Status: "succeeded"}, nil
}

// CallCount returns the number of refund requests.
func (s *RefundGatewayStub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

// PublisherStub collects published events.
type PublisherStub struct {
	mu        sync.Mutex
	Published []model.OrderEvent
	Err       error
	FailIDs   map[int64]bool
	Closed    bool
}

// Publish records the event unless configured to fail.
func (s *PublisherStub) Publish(ctx context.Context, event model.OrderEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.FailIDs[event.ID] {
		return context.DeadlineExceeded
	}
	s.Published = append(s.Published, event)
	return nil
}

// Close marks the publisher closed.
func (s *PublisherStub) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
	return nil
}

// Events returns a snapshot of published events.
func (s *PublisherStub) Events() []model.OrderEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.OrderEvent(nil), s.Published...)
}
