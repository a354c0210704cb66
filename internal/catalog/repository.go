// AngelaMos | 2026
// repository.go

package catalog

import (
	"context"
	"fmt"

	"github.com/beanvoyage/storefront/internal/core"
)

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	First(ctx context.Context) (*Product, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const selectProducts = `
	SELECT p.id, p.origin_name, p.region, p.farmer, p.process, p.harvest,
	       p.altitude, p.image_url, p.story,
	       t.acidity, t.body, t.tasting_notes
	FROM products p
	LEFT JOIN product_taste t ON t.product_id = p.id`

// List returns the whole catalog in id order. Match tie-breaks depend on
// this order staying stable.
func (r *repository) List(ctx context.Context) ([]Product, error) {
	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, selectProducts+` ORDER BY p.id`); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toProduct())
	}

	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	var row productRow
	if err := r.db.GetContext(ctx, &row, selectProducts+` WHERE p.id = $1`, id); err != nil {
		return nil, core.MapStoreError("get product", err)
	}

	p := row.toProduct()
	return &p, nil
}

func (r *repository) First(ctx context.Context) (*Product, error) {
	var row productRow
	if err := r.db.GetContext(ctx, &row, selectProducts+` ORDER BY p.id LIMIT 1`); err != nil {
		return nil, core.MapStoreError("first product", err)
	}

	p := row.toProduct()
	return &p, nil
}
