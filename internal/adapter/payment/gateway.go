// Package payment adapts the Stripe refunds API to the order lifecycle.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"

	domainErrors "github.com/polkiloo/ordermart/internal/domain/errors"
	"github.com/polkiloo/ordermart/internal/domain/model"
	"github.com/polkiloo/ordermart/internal/metrics"
)

// RefundGateway reverses captured payments.
type RefundGateway interface {
	CreateRefund(ctx context.Context, paymentIntentID, reason string) (*model.RefundConfirmation, error)
}

type refundAPI interface {
	New(params *stripe.RefundParams) (*stripe.Refund, error)
}

// StripeConfig configures StripeGateway.
type StripeConfig struct {
	APIKey  string
	Timeout time.Duration
	// Backends overrides Stripe endpoints, e.g. for stripe-mock.
	Backends *stripe.Backends
	Logger   *slog.Logger
	Metrics  *metrics.Metrics

	refunds refundAPI
}

// StripeGateway issues refunds through Stripe with a bounded timeout.
type StripeGateway struct {
	refunds refundAPI
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewStripeGateway constructs StripeGateway.
func NewStripeGateway(cfg StripeConfig) (*StripeGateway, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	refunds := cfg.refunds
	if refunds == nil {
		if apiKey == "" {
			return nil, errors.New("stripe: api key is required")
		}
		refunds = client.New(apiKey, cfg.Backends).Refunds
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &StripeGateway{
		refunds: refunds,
		timeout: timeout,
		logger:  logger,
		metrics: cfg.Metrics,
		now:     time.Now,
	}, nil
}

// IdempotencyKey derives the Stripe idempotency key for refunding a payment intent.
// Retrying a cancel therefore never issues a second refund.
func IdempotencyKey(paymentIntentID string) string {
	return "refund-" + paymentIntentID
}

// CreateRefund asks Stripe to refund the whole payment intent. Any failure,
// including the timeout, is reported as a *errors.GatewayError.
func (g *StripeGateway) CreateRefund(ctx context.Context, paymentIntentID, reason string) (*model.RefundConfirmation, error) {
	if strings.TrimSpace(paymentIntentID) == "" {
		return nil, &domainErrors.GatewayError{Reason: "payment intent id is missing"}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	params.Context = ctx
	params.SetIdempotencyKey(IdempotencyKey(paymentIntentID))
	if reason != "" {
		params.Reason = stripe.String(reason)
	}

	started := g.now()
	refund, err := g.call(ctx, params)
	g.metrics.ObserveRefund(g.now().Sub(started), err)
	if err != nil {
		g.logger.Error("refund failed",
			slog.String("payment_intent", paymentIntentID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	g.logger.Info("refund created",
		slog.String("payment_intent", paymentIntentID),
		slog.String("refund_id", refund.ID),
		slog.String("status", string(refund.Status)),
	)

	return &model.RefundConfirmation{
		RefundID:        refund.ID,
		PaymentIntentID: paymentIntentID,
		Status:          string(refund.Status),
		Amount:          refund.Amount,
		Currency:        string(refund.Currency),
	}, nil
}

type refundResult struct {
	refund *stripe.Refund
	err    error
}

func (g *StripeGateway) call(ctx context.Context, params *stripe.RefundParams) (*stripe.Refund, error) {
	done := make(chan refundResult, 1)
	go func() {
		refund, err := g.refunds.New(params)
		done <- refundResult{refund: refund, err: err}
	}()

	var res refundResult
	select {
	case <-ctx.Done():
		return nil, &domainErrors.GatewayError{Reason: "refund timed out", Err: ctx.Err()}
	case res = <-done:
	}

	if res.err != nil {
		if ctx.Err() != nil {
			return nil, &domainErrors.GatewayError{Reason: "refund timed out", Err: ctx.Err()}
		}
		var stripeErr *stripe.Error
		if errors.As(res.err, &stripeErr) && stripeErr.Msg != "" {
			return nil, &domainErrors.GatewayError{Reason: stripeErr.Msg, Err: res.err}
		}
		return nil, &domainErrors.GatewayError{Reason: "refund request failed", Err: res.err}
	}
	if res.refund == nil {
		return nil, &domainErrors.GatewayError{Reason: "empty refund response"}
	}

	switch res.refund.Status {
	case stripe.RefundStatusFailed, stripe.RefundStatusCanceled:
		return nil, &domainErrors.GatewayError{Reason: fmt.Sprintf("refund %s is %s", res.refund.ID, res.refund.Status)}
	}
	return res.refund, nil
}

// unconfiguredGateway rejects every refund. It stands in when no Stripe key is set.
type unconfiguredGateway struct{}

func (unconfiguredGateway) CreateRefund(context.Context, string, string) (*model.RefundConfirmation, error) {
	return nil, &domainErrors.GatewayError{Reason: "refund gateway is not configured"}
}
