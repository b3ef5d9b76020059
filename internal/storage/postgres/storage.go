package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/polkiloo/ordermart/internal/domain/repository"
)

// pgxPool is the subset of *pgxpool.Pool used by Storage.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

var _ repository.Factory = (*Storage)(nil)

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Events() repository.EventRepository {
	return &eventRepository{storage: s}
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'Customer',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
	`CREATE TABLE IF NOT EXISTS categories (
            id BIGINT PRIMARY KEY,
            name TEXT NOT NULL,
            display_order INT NOT NULL
        )`,
	`CREATE TABLE IF NOT EXISTS products (
            id BIGINT PRIMARY KEY,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            isbn TEXT NOT NULL,
            category_id BIGINT NOT NULL REFERENCES categories(id),
            list_price NUMERIC(12,2) NOT NULL,
            price50 NUMERIC(12,2) NOT NULL,
            price100 NUMERIC(12,2) NOT NULL
        )`,
	`CREATE TABLE IF NOT EXISTS order_headers (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            name TEXT NOT NULL DEFAULT '',
            phone_number TEXT NOT NULL DEFAULT '',
            street_address TEXT NOT NULL DEFAULT '',
            city TEXT NOT NULL DEFAULT '',
            state TEXT NOT NULL DEFAULT '',
            postal_code TEXT NOT NULL DEFAULT '',
            order_total NUMERIC(12,2) NOT NULL,
            payment_intent_id TEXT NOT NULL DEFAULT '',
            payment_due_date TIMESTAMPTZ,
            order_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            shipping_date TIMESTAMPTZ,
            carrier TEXT NOT NULL DEFAULT '',
            tracking_number TEXT NOT NULL DEFAULT '',
            order_status TEXT NOT NULL,
            payment_status TEXT NOT NULL,
            version BIGINT NOT NULL DEFAULT 1
        )`,
	`CREATE TABLE IF NOT EXISTS order_details (
            id BIGSERIAL PRIMARY KEY,
            order_header_id BIGINT NOT NULL REFERENCES order_headers(id) ON DELETE CASCADE,
            product_id BIGINT NOT NULL REFERENCES products(id),
            count INT NOT NULL CHECK (count > 0),
            price NUMERIC(12,2) NOT NULL
        )`,
	`CREATE TABLE IF NOT EXISTS order_events (
            id BIGSERIAL PRIMARY KEY,
            event_id UUID UNIQUE NOT NULL,
            order_id BIGINT NOT NULL,
            event_type TEXT NOT NULL,
            payload JSONB NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            sent_at TIMESTAMPTZ
        )`,
	`CREATE INDEX IF NOT EXISTS idx_order_headers_user ON order_headers(user_id, id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_details_header ON order_details(order_header_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_events_pending ON order_events(id) WHERE sent_at IS NULL`,
	`INSERT INTO categories (id, name, display_order) VALUES
            (1, 'Action', 1),
            (2, 'Sci-Fi', 2),
            (3, 'History', 3)
        ON CONFLICT (id) DO NOTHING`,
	`INSERT INTO products (id, title, author, isbn, category_id, list_price, price50, price100) VALUES
            (1, '22/11/63', 'Stephen King', 'SK2211630001', 1, 100, 70, 60),
            (2, 'Alamut', 'Vladimir Bartol', 'VB1938000001', 2, 150, 80, 70),
            (3, 'Fortune of Time', 'Billy Spark', 'SWD9999001', 2, 99, 85, 80),
            (4, 'Dark Skies', 'Nancy Hoover', 'CAW777777701', 2, 40, 25, 20),
            (5, 'Vanish in the Sunset', 'Julian Button', 'RITO5555501', 2, 55, 40, 35),
            (6, 'Cotton Candy', 'Abby Muscles', 'WS3333333301', 2, 70, 60, 55),
            (7, 'Rock in the Ocean', 'Ron Parker', 'SOTJ1111111101', 2, 30, 25, 20),
            (8, 'Leaves and Wonders', 'Laura Phantom', 'FOT000000001', 2, 25, 22, 20)
        ON CONFLICT (id) DO NOTHING`,
}

func (s *Storage) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
