package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/ordermart/internal/domain/model"
)

type eventRepository struct {
	storage *Storage
}

func insertEvent(ctx context.Context, tx pgx.Tx, event model.OrderEvent) error {
	const query = `INSERT INTO order_events (event_id, order_id, event_type, payload) VALUES ($1, $2, $3, $4)`
	if _, err := tx.Exec(ctx, query, event.EventID, event.OrderID, event.Type, string(event.Payload)); err != nil {
		return fmt.Errorf("insert order event: %w", err)
	}
	return nil
}

// FetchPending returns up to limit unsent events, oldest first.
func (r *eventRepository) FetchPending(ctx context.Context, limit int) ([]model.OrderEvent, error) {
	const query = `SELECT id, event_id, order_id, event_type, payload, created_at
                   FROM order_events WHERE sent_at IS NULL ORDER BY id LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderEvent
	for rows.Next() {
		var (
			e       model.OrderEvent
			payload []byte
		)
		if err := rows.Scan(&e.ID, &e.EventID, &e.OrderID, &e.Type, &payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Payload = payload
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *eventRepository) MarkSent(ctx context.Context, id int64) error {
	const query = `UPDATE order_events SET sent_at=NOW() WHERE id=$1`
	_, err := r.storage.pool.Exec(ctx, query, id)
	return err
}
