package repository

import (
	"context"

	"github.com/polkiloo/ordermart/internal/domain/model"
)

// ProductRepository gives read access to catalog prices.
type ProductRepository interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error)
}
