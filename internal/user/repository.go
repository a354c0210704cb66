// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/beanvoyage/storefront/internal/core"
)

type Repository interface {
	Create(ctx context.Context, customer *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)
	Update(ctx context.Context, customer *Customer) error
	SaveShippingAddress(ctx context.Context, id, address string) error
	List(ctx context.Context, params ListCustomersParams) ([]Customer, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, customer *Customer) error {
	query := `
		INSERT INTO customers (id, email, name, shipping_address)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, customer, query,
		customer.ID,
		customer.Email,
		customer.Name,
		customer.ShippingAddress,
	)
	return core.MapStoreError("create customer", err)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Customer, error) {
	query := `
		SELECT id, email, name, shipping_address, created_at, updated_at
		FROM customers
		WHERE id = $1`

	var customer Customer
	if err := r.db.GetContext(ctx, &customer, query, id); err != nil {
		return nil, core.MapStoreError("get customer", err)
	}

	return &customer, nil
}

func (r *repository) Update(ctx context.Context, customer *Customer) error {
	query := `
		UPDATE customers
		SET name = $2, shipping_address = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &customer.UpdatedAt, query,
		customer.ID,
		customer.Name,
		customer.ShippingAddress,
	)
	return core.MapStoreError("update customer", err)
}

func (r *repository) SaveShippingAddress(ctx context.Context, id, address string) error {
	query := `
		UPDATE customers
		SET shipping_address = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, address)
	if err != nil {
		return fmt.Errorf("save shipping address: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("save shipping address: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("save shipping address: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListCustomersParams,
) ([]Customer, int, error) {
	params.Normalize()

	where := "TRUE"
	var args []any
	argIdx := 1

	if params.Search != "" {
		where = fmt.Sprintf("(email ILIKE $%d OR name ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM customers WHERE " + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, email, name, shipping_address, created_at, updated_at
		FROM customers
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		where, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var customers []Customer
	if err := r.db.SelectContext(ctx, &customers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}

	return customers, total, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
