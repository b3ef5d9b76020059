package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	domainErrors "github.com/polkiloo/ordermart/internal/domain/errors"
	"github.com/polkiloo/ordermart/internal/domain/model"
	"github.com/polkiloo/ordermart/internal/domain/repository"
)

const headerColumns = `id, user_id, name, phone_number, street_address, city, state, postal_code,
                   order_total, payment_intent_id, payment_due_date, order_date, shipping_date,
                   carrier, tracking_number, order_status, payment_status, version`

type orderRepository struct {
	storage *Storage
}

func scanHeader(row pgx.Row) (*model.OrderHeader, error) {
	var (
		h        model.OrderHeader
		dueDate  pgtype.Timestamptz
		shipDate pgtype.Timestamptz
	)
	err := row.Scan(
		&h.ID, &h.UserID, &h.Name, &h.PhoneNumber, &h.StreetAddress, &h.City, &h.State, &h.PostalCode,
		&h.OrderTotal, &h.PaymentIntentID, &dueDate, &h.OrderDate, &shipDate,
		&h.Carrier, &h.TrackingNumber, &h.OrderStatus, &h.PaymentStatus, &h.Version,
	)
	if err != nil {
		return nil, err
	}
	h.PaymentDueDate = timePtr(dueDate)
	h.ShippingDate = timePtr(shipDate)
	return &h, nil
}

func timePtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}

func (r *orderRepository) Create(ctx context.Context, header *model.OrderHeader, details []model.OrderDetail, build repository.EventBuilder) (*model.Order, error) {
	const insertHeader = `INSERT INTO order_headers (user_id, name, phone_number, street_address, city, state, postal_code,
                          order_total, payment_intent_id, order_status, payment_status)
                          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
                          RETURNING id, order_date, version`
	const insertDetail = `INSERT INTO order_details (order_header_id, product_id, count, price)
                          VALUES ($1, $2, $3, $4) RETURNING id`

	h := *header
	lines := make([]model.OrderDetail, len(details))
	copy(lines, details)

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, insertHeader,
			h.UserID, h.Name, h.PhoneNumber, h.StreetAddress, h.City, h.State, h.PostalCode,
			h.OrderTotal, h.PaymentIntentID, h.OrderStatus, h.PaymentStatus,
		).Scan(&h.ID, &h.OrderDate, &h.Version)
		if err != nil {
			return fmt.Errorf("insert order header: %w", err)
		}

		for i := range lines {
			lines[i].OrderHeaderID = h.ID
			if err := tx.QueryRow(ctx, insertDetail, h.ID, lines[i].ProductID, lines[i].Count, lines[i].Price).Scan(&lines[i].ID); err != nil {
				return fmt.Errorf("insert order detail: %w", err)
			}
		}

		event, err := build(&h)
		if err != nil {
			return err
		}
		return insertEvent(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}
	return &model.Order{Header: h, Details: lines}, nil
}

func (r *orderRepository) Get(ctx context.Context, id int64) (*model.OrderHeader, error) {
	query := `SELECT ` + headerColumns + ` FROM order_headers WHERE id=$1`
	h, err := scanHeader(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return h, nil
}

func (r *orderRepository) Details(ctx context.Context, id int64) ([]model.OrderDetail, error) {
	const query = `SELECT d.id, d.order_header_id, d.product_id, d.count, d.price,
                   p.title, p.author, p.isbn, p.category_id, p.list_price, p.price50, p.price100
                   FROM order_details d JOIN products p ON p.id = d.product_id
                   WHERE d.order_header_id=$1 ORDER BY d.id`
	rows, err := r.storage.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderDetail
	for rows.Next() {
		var (
			d model.OrderDetail
			p model.Product
		)
		if err := rows.Scan(&d.ID, &d.OrderHeaderID, &d.ProductID, &d.Count, &d.Price,
			&p.Title, &p.Author, &p.ISBN, &p.CategoryID, &p.ListPrice, &p.Price50, &p.Price100); err != nil {
			return nil, err
		}
		p.ID = d.ProductID
		d.Product = &p
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) List(ctx context.Context, q repository.OrderQuery) ([]model.OrderHeader, error) {
	query := `SELECT ` + headerColumns + ` FROM order_headers`
	var args []any
	if q.UserID != nil {
		query += ` WHERE user_id=$1`
		args = append(args, *q.UserID)
	}
	query += ` ORDER BY id`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderHeader
	for rows.Next() {
		h, err := scanHeader(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update writes every mutable header field. On success header.Version is advanced.
func (r *orderRepository) Update(ctx context.Context, header *model.OrderHeader, event model.OrderEvent) error {
	const query = `UPDATE order_headers SET name=$1, phone_number=$2, street_address=$3, city=$4, state=$5,
                   postal_code=$6, payment_intent_id=$7, payment_due_date=$8, shipping_date=$9, carrier=$10,
                   tracking_number=$11, order_status=$12, payment_status=$13, version=version+1
                   WHERE id=$14 AND version=$15`
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query,
			header.Name, header.PhoneNumber, header.StreetAddress, header.City, header.State,
			header.PostalCode, header.PaymentIntentID, header.PaymentDueDate, header.ShippingDate, header.Carrier,
			header.TrackingNumber, header.OrderStatus, header.PaymentStatus,
			header.ID, header.Version,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrConflict
		}
		return insertEvent(ctx, tx, event)
	})
	if err != nil {
		return err
	}
	header.Version++
	return nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id, version int64, status model.OrderStatus, payment model.PaymentStatus, event model.OrderEvent) error {
	const query = `UPDATE order_headers SET order_status=$1, payment_status=$2, version=version+1
                   WHERE id=$3 AND version=$4`
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, status, payment, id, version)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrConflict
		}
		return insertEvent(ctx, tx, event)
	})
}

// Remove deletes the header; details go with it via ON DELETE CASCADE.
func (r *orderRepository) Remove(ctx context.Context, id int64, event model.OrderEvent) error {
	const query = `DELETE FROM order_headers WHERE id=$1`
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return insertEvent(ctx, tx, event)
	})
}
