package repository

import (
	"context"

	"github.com/polkiloo/ordermart/internal/domain/model"
)

// EventRepository exposes the order event outbox to the relay.
type EventRepository interface {
	FetchPending(ctx context.Context, limit int) ([]model.OrderEvent, error)
	MarkSent(ctx context.Context, id int64) error
}
