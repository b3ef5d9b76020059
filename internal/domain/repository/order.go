package repository

import (
	"context"

	"github.com/polkiloo/ordermart/internal/domain/model"
)

// OrderQuery narrows List results. A nil UserID lists every order.
type OrderQuery struct {
	UserID *int64
}

// EventBuilder produces the outbox event for a header once its identity is assigned.
type EventBuilder func(header *model.OrderHeader) (model.OrderEvent, error)

// OrderRepository describes persistence operations with order headers and details.
//
// Every mutating call stores the accompanying event in the same transaction and
// fails with ErrConflict when header.Version no longer matches the stored row.
type OrderRepository interface {
	Create(ctx context.Context, header *model.OrderHeader, details []model.OrderDetail, event EventBuilder) (*model.Order, error)
	Get(ctx context.Context, id int64) (*model.OrderHeader, error)
	Details(ctx context.Context, id int64) ([]model.OrderDetail, error)
	List(ctx context.Context, query OrderQuery) ([]model.OrderHeader, error)
	Update(ctx context.Context, header *model.OrderHeader, event model.OrderEvent) error
	UpdateStatus(ctx context.Context, id, version int64, status model.OrderStatus, payment model.PaymentStatus, event model.OrderEvent) error
	Remove(ctx context.Context, id int64, event model.OrderEvent) error
}
