package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	"github.com/polkiloo/ordermart/internal/adapter/payment"
	domainErrors "github.com/polkiloo/ordermart/internal/domain/errors"
	"github.com/polkiloo/ordermart/internal/domain/lifecycle"
	"github.com/polkiloo/ordermart/internal/domain/model"
	"github.com/polkiloo/ordermart/internal/domain/repository"
	"github.com/polkiloo/ordermart/internal/metrics"
	"github.com/polkiloo/ordermart/internal/pkg/lock"
)

const tracerName = "github.com/polkiloo/ordermart/internal/usecase"

// OrderDeps lists collaborators of OrderUseCase.
type OrderDeps struct {
	fx.In

	Orders   repository.OrderRepository
	Products repository.ProductRepository
	Gateway  payment.RefundGateway
	Locker   lock.Locker
	Logger   *slog.Logger
	Metrics  *metrics.Metrics `optional:"true"`
}

// OrderUseCase drives orders through the lifecycle table.
//
// Every mutation runs under the per-order lock: load, plan, side effect,
// commit, persist together with an outbox event.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	gateway  payment.RefundGateway
	locker   lock.Locker
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer

	now     func() time.Time
	eventID func() string
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(deps OrderDeps) *OrderUseCase {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	locker := deps.Locker
	if locker == nil {
		locker = lock.NewMemoryLocker()
	}
	return &OrderUseCase{
		orders:   deps.Orders,
		products: deps.Products,
		gateway:  deps.Gateway,
		locker:   locker,
		logger:   logger,
		metrics:  deps.Metrics,
		tracer:   otel.Tracer(tracerName),
		now:      func() time.Time { return time.Now().UTC() },
		eventID:  uuid.NewString,
	}
}

// Create prices the requested lines from the catalog and stores a new order.
func (u *OrderUseCase) Create(ctx context.Context, userID int64, role model.Role, shipping model.ShippingInfo, lines []model.OrderLine) (*model.Order, error) {
	ctx, span := u.tracer.Start(ctx, "order.Create", trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()

	if err := ValidateShipping(shipping); err != nil {
		return nil, u.fail(span, err)
	}
	merged, err := NormalizeLines(lines)
	if err != nil {
		return nil, u.fail(span, err)
	}

	ids := make([]int64, len(merged))
	for i, l := range merged {
		ids[i] = l.ProductID
	}
	catalog, err := u.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, u.fail(span, fmt.Errorf("load products: %w", err))
	}

	details := make([]model.OrderDetail, len(merged))
	total := decimal.Zero
	for i, l := range merged {
		product, ok := catalog[l.ProductID]
		if !ok {
			return nil, u.fail(span, fmt.Errorf("%w: unknown product %d", domainErrors.ErrInvalidInput, l.ProductID))
		}
		details[i] = model.OrderDetail{ProductID: l.ProductID, Count: l.Count, Price: product.PriceFor(l.Count)}
		total = total.Add(details[i].LineTotal())
	}

	header := &model.OrderHeader{
		UserID:        userID,
		ShippingInfo:  shipping,
		OrderTotal:    total,
		OrderDate:     u.now(),
		OrderStatus:   model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
	}
	if role == model.RoleCompany {
		header.OrderStatus = model.OrderStatusApproved
		header.PaymentStatus = model.PaymentStatusDelayedPayment
	}

	order, err := u.orders.Create(ctx, header, details, func(h *model.OrderHeader) (model.OrderEvent, error) {
		return u.event(model.OrderEventCreated, h, "")
	})
	if err != nil {
		return nil, u.fail(span, fmt.Errorf("create order: %w", err))
	}

	for i := range order.Details {
		if p, ok := catalog[order.Details[i].ProductID]; ok {
			order.Details[i].Product = &p
		}
	}
	span.SetAttributes(attribute.Int64("order.id", order.Header.ID))
	u.logger.InfoContext(ctx, "order created",
		slog.Int64("order_id", order.Header.ID),
		slog.Int64("user_id", userID),
		slog.String("total", total.StringFixed(2)),
	)
	return order, nil
}

// Details returns the header with its line items.
func (u *OrderUseCase) Details(ctx context.Context, id int64) (*model.Order, error) {
	header, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := u.orders.Details(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load details of order %d: %w", id, err)
	}
	return &model.Order{Header: *header, Details: details}, nil
}

// UpdateDetails overwrites shipping fields in any status. Carrier and tracking
// change only when a value is present.
func (u *OrderUseCase) UpdateDetails(ctx context.Context, id int64, fields model.DetailsUpdate) (*model.OrderHeader, error) {
	if err := ValidateShipping(fields.ShippingInfo); err != nil {
		return nil, err
	}
	return u.transition(ctx, lifecycle.ActionUpdateDetails, id, func(ctx context.Context, h *model.OrderHeader, plan lifecycle.Plan) error {
		next := *h
		next.ShippingInfo = fields.ShippingInfo
		if carrier, ok := fields.Carrier.Get(); ok {
			next.Carrier = carrier
		}
		if tracking, ok := fields.TrackingNumber.Get(); ok {
			next.TrackingNumber = tracking
		}
		if err := plan.Commit(&next, nil); err != nil {
			return err
		}
		return u.save(ctx, h, &next, model.OrderEventDetailsUpdated, "")
	})
}

// ConfirmPayment records a captured payment.
func (u *OrderUseCase) ConfirmPayment(ctx context.Context, id int64, paymentIntentID string) (*model.OrderHeader, error) {
	intent, err := requireText("payment intent id", paymentIntentID)
	if err != nil {
		return nil, err
	}
	return u.transition(ctx, lifecycle.ActionConfirmPayment, id, func(ctx context.Context, h *model.OrderHeader, plan lifecycle.Plan) error {
		next := *h
		next.PaymentIntentID = intent
		if err := plan.Commit(&next, nil); err != nil {
			return err
		}
		return u.save(ctx, h, &next, model.OrderEventPaymentConfirmed, "")
	})
}

// StartProcessing moves a pending or approved order into processing.
func (u *OrderUseCase) StartProcessing(ctx context.Context, id int64) (*model.OrderHeader, error) {
	return u.transition(ctx, lifecycle.ActionStartProcessing, id, func(ctx context.Context, h *model.OrderHeader, plan lifecycle.Plan) error {
		next := *h
		if err := plan.Commit(&next, nil); err != nil {
			return err
		}
		return u.saveStatus(ctx, h, &next, model.OrderEventProcessing, "")
	})
}

// Ship marks a processing order as shipped. Delayed-payment orders get a due date.
func (u *OrderUseCase) Ship(ctx context.Context, id int64, carrier, trackingNumber string) (*model.OrderHeader, error) {
	carrier, err := requireText("carrier", carrier)
	if err != nil {
		return nil, err
	}
	trackingNumber, err = requireText("tracking number", trackingNumber)
	if err != nil {
		return nil, err
	}

	return u.transition(ctx, lifecycle.ActionShip, id, func(ctx context.Context, h *model.OrderHeader, plan lifecycle.Plan) error {
		now := u.now()
		next := *h
		next.Carrier = carrier
		next.TrackingNumber = trackingNumber
		next.ShippingDate = &now
		if next.PaymentStatus == model.PaymentStatusDelayedPayment {
			due := now.AddDate(0, 0, model.PaymentDueDays)
			next.PaymentDueDate = &due
		}
		if err := plan.Commit(&next, nil); err != nil {
			return err
		}
		return u.save(ctx, h, &next, model.OrderEventShipped, "")
	})
}

// Cancel cancels an open order. Captured payments are refunded first; if the
// refund fails the order is left as it was.
func (u *OrderUseCase) Cancel(ctx context.Context, id int64) (*model.OrderHeader, error) {
	return u.transition(ctx, lifecycle.ActionCancel, id, func(ctx context.Context, h *model.OrderHeader, plan lifecycle.Plan) error {
		var refund *model.RefundConfirmation
		if plan.Effect == lifecycle.EffectRefund {
			var err error
			refund, err = u.gateway.CreateRefund(ctx, h.PaymentIntentID, model.RefundReasonRequestedByCustomer)
			if err != nil {
				return err
			}
			u.logger.InfoContext(ctx, "refund accepted",
				slog.Int64("order_id", h.ID),
				slog.String("refund_id", refund.RefundID),
			)
		}

		next := *h
		if err := plan.Commit(&next, refund); err != nil {
			return err
		}
		refundID := ""
		if refund != nil {
			refundID = refund.RefundID
		}
		if err := u.saveStatus(ctx, h, &next, model.OrderEventCancelled, refundID); err != nil {
			if refund != nil {
				u.logger.ErrorContext(ctx, "refund issued but cancellation not stored",
					slog.Int64("order_id", h.ID),
					slog.String("refund_id", refundID),
					slog.Any("error", err),
				)
			}
			return err
		}
		return nil
	})
}

// Delete removes the order and its line items.
func (u *OrderUseCase) Delete(ctx context.Context, id int64) error {
	ctx, span := u.tracer.Start(ctx, "order.Delete", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	unlock, err := u.locker.Lock(ctx, lockKey(id))
	if err != nil {
		return u.fail(span, fmt.Errorf("lock order %d: %w", id, err))
	}
	defer unlock()

	h, err := u.orders.Get(ctx, id)
	if err != nil {
		return u.fail(span, err)
	}
	event, err := u.event(model.OrderEventDeleted, h, "")
	if err != nil {
		return u.fail(span, err)
	}
	if err := u.orders.Remove(ctx, id, event); err != nil {
		return u.fail(span, fmt.Errorf("delete order %d: %w", id, err))
	}
	u.logger.InfoContext(ctx, "order deleted", slog.Int64("order_id", id))
	return nil
}

type step func(ctx context.Context, h *model.OrderHeader, plan lifecycle.Plan) error

func (u *OrderUseCase) transition(ctx context.Context, action lifecycle.Action, id int64, apply step) (_ *model.OrderHeader, err error) {
	ctx, span := u.tracer.Start(ctx, "order.transition", trace.WithAttributes(
		attribute.String("order.action", string(action)),
		attribute.Int64("order.id", id),
	))
	defer func() {
		u.metrics.ObserveTransition(string(action), err)
		if err != nil {
			u.fail(span, err)
		}
		span.End()
	}()

	unlock, err := u.locker.Lock(ctx, lockKey(id))
	if err != nil {
		return nil, fmt.Errorf("lock order %d: %w", id, err)
	}
	defer unlock()

	h, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	from := lifecycle.StateOf(h)
	plan, err := lifecycle.Next(action, from)
	if err != nil {
		return nil, err
	}
	if err := apply(ctx, h, plan); err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "order transition",
		slog.Int64("order_id", id),
		slog.String("action", string(action)),
		slog.String("from", fmt.Sprintf("%s/%s", from.Order, from.Payment)),
		slog.String("to", fmt.Sprintf("%s/%s", h.OrderStatus, h.PaymentStatus)),
	)
	return h, nil
}

// save persists every field of next and copies it into current on success.
func (u *OrderUseCase) save(ctx context.Context, current, next *model.OrderHeader, typ model.OrderEventType, refundID string) error {
	event, err := u.event(typ, next, refundID)
	if err != nil {
		return err
	}
	if err := u.orders.Update(ctx, next, event); err != nil {
		return fmt.Errorf("store order %d: %w", next.ID, err)
	}
	*current = *next
	return nil
}

// saveStatus persists only the status pair of next.
func (u *OrderUseCase) saveStatus(ctx context.Context, current, next *model.OrderHeader, typ model.OrderEventType, refundID string) error {
	event, err := u.event(typ, next, refundID)
	if err != nil {
		return err
	}
	if err := u.orders.UpdateStatus(ctx, next.ID, next.Version, next.OrderStatus, next.PaymentStatus, event); err != nil {
		return fmt.Errorf("store status of order %d: %w", next.ID, err)
	}
	next.Version++
	*current = *next
	return nil
}

func (u *OrderUseCase) event(typ model.OrderEventType, h *model.OrderHeader, refundID string) (model.OrderEvent, error) {
	payload, err := json.Marshal(model.OrderEventPayload{
		OrderID:       h.ID,
		UserID:        h.UserID,
		OrderStatus:   h.OrderStatus,
		PaymentStatus: h.PaymentStatus,
		Carrier:       h.Carrier,
		Tracking:      h.TrackingNumber,
		RefundID:      refundID,
	})
	if err != nil {
		return model.OrderEvent{}, fmt.Errorf("encode %s event: %w", typ, err)
	}
	return model.OrderEvent{
		EventID:   u.eventID(),
		OrderID:   h.ID,
		Type:      typ,
		Payload:   payload,
		CreatedAt: u.now(),
	}, nil
}

func (u *OrderUseCase) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	var te *domainErrors.TransitionError
	if errors.As(err, &te) || errors.Is(err, domainErrors.ErrInvalidInput) || errors.Is(err, domainErrors.ErrNotFound) {
		return err
	}
	u.logger.Error("order operation failed", slog.Any("error", err))
	return err
}

func lockKey(id int64) string {
	return fmt.Sprintf("order:%d", id)
}
