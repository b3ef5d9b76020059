package postgres

import (
	"context"

	"github.com/polkiloo/ordermart/internal/domain/model"
)

type productRepository struct {
	storage *Storage
}

// GetByIDs returns the products found among ids keyed by id. Unknown ids are simply absent.
func (r *productRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error) {
	const query = `SELECT id, title, author, isbn, category_id, list_price, price50, price100
                   FROM products WHERE id = ANY($1)`
	result := make(map[int64]model.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Author, &p.ISBN, &p.CategoryID, &p.ListPrice, &p.Price50, &p.Price100); err != nil {
			return nil, err
		}
		result[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
