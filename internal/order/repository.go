// AngelaMos | 2026
// repository.go

package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/beanvoyage/storefront/internal/core"
)

type SubscriptionRepository interface {
	// GetLatestByUser returns nil, nil when the user never subscribed.
	GetLatestByUser(ctx context.Context, userID string) (*Subscription, error)
	Create(ctx context.Context, s *Subscription) error
	UpdateStatus(ctx context.Context, id string, status SubscriptionStatus, nextBilling time.Time) error
	ListDueForRenewal(ctx context.Context, now time.Time, limit int) ([]Subscription, error)
	AdvanceBilling(ctx context.Context, id string, from, to time.Time) error
	CountByStatus(ctx context.Context, status SubscriptionStatus) (int, error)
	MonthlyRecurringRevenue(ctx context.Context) (int64, error)
}

type ShipmentRepository interface {
	GetByID(ctx context.Context, id string) (*Shipment, error)
	// GetLatestByUser returns nil, nil when nothing has shipped yet.
	GetLatestByUser(ctx context.Context, userID string) (*Shipment, error)
	Create(ctx context.Context, s *Shipment) error
	Update(ctx context.Context, s *Shipment) error
	ListOrders(ctx context.Context, params ListOrdersParams) ([]OrderRow, int, error)
	CountByStatus(ctx context.Context, status ShipmentStatus) (int, error)
}

type ReviewRepository interface {
	// GetByShipment returns nil, nil when the shipment has no review.
	GetByShipment(ctx context.Context, shipmentID string) (*Review, error)
	Create(ctx context.Context, r *Review) error
	AverageRating(ctx context.Context) (*float64, error)
}

type subscriptionRepository struct {
	db core.DBTX
}

func NewSubscriptionRepository(db core.DBTX) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

const selectSubscription = `
	SELECT s.id, s.user_id, s.tier_id, COALESCE(t.name, '') AS tier_name,
	       s.status, s.start_date, s.next_billing_date
	FROM subscriptions s
	LEFT JOIN tiers t ON t.id = s.tier_id`

// GetLatestByUser prefers the live subscription and falls back to the most
// recently started one.
func (r *subscriptionRepository) GetLatestByUser(
	ctx context.Context,
	userID string,
) (*Subscription, error) {
	query := selectSubscription + `
		WHERE s.user_id = $1
		ORDER BY (s.status <> 'Cancelled') DESC, s.start_date DESC
		LIMIT 1`

	var sub Subscription
	err := r.db.GetContext(ctx, &sub, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}

	return &sub, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, s *Subscription) error {
	query := `
		INSERT INTO subscriptions (id, user_id, tier_id, status, start_date, next_billing_date)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.TierID,
		s.Status,
		s.StartDate,
		s.NextBillingDate,
	)
	return core.MapStoreError("create subscription", err)
}

func (r *subscriptionRepository) UpdateStatus(
	ctx context.Context,
	id string,
	status SubscriptionStatus,
	nextBilling time.Time,
) error {
	query := `UPDATE subscriptions SET status = $2, next_billing_date = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status, nextBilling)
	if err != nil {
		return core.MapStoreError("update subscription status", err)
	}

	return expectOneRow("update subscription status", result)
}

func (r *subscriptionRepository) ListDueForRenewal(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]Subscription, error) {
	query := selectSubscription + `
		WHERE s.status = 'Active' AND s.next_billing_date <= $1
		ORDER BY s.next_billing_date
		LIMIT $2`

	var subs []Subscription
	if err := r.db.SelectContext(ctx, &subs, query, now, limit); err != nil {
		return nil, fmt.Errorf("list due subscriptions: %w", err)
	}

	return subs, nil
}

// AdvanceBilling moves the billing date only if it still equals from and the
// subscription is still active. A concurrent renewal or pause turns this
// into core.ErrConflict.
func (r *subscriptionRepository) AdvanceBilling(
	ctx context.Context,
	id string,
	from, to time.Time,
) error {
	query := `
		UPDATE subscriptions
		SET next_billing_date = $3
		WHERE id = $1 AND status = 'Active' AND next_billing_date = $2`

	result, err := r.db.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return fmt.Errorf("advance billing: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("advance billing: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("advance billing: %w", core.ErrConflict)
	}

	return nil
}

func (r *subscriptionRepository) CountByStatus(
	ctx context.Context,
	status SubscriptionStatus,
) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM subscriptions WHERE status = $1`, status)
	if err != nil {
		return 0, fmt.Errorf("count subscriptions: %w", err)
	}
	return n, nil
}

func (r *subscriptionRepository) MonthlyRecurringRevenue(ctx context.Context) (int64, error) {
	query := `
		SELECT COALESCE(SUM(t.monthly_price), 0)
		FROM subscriptions s
		JOIN tiers t ON t.id = s.tier_id
		WHERE s.status = 'Active'`

	var total int64
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("monthly recurring revenue: %w", err)
	}
	return total, nil
}

type shipmentRepository struct {
	db core.DBTX
}

func NewShipmentRepository(db core.DBTX) ShipmentRepository {
	return &shipmentRepository{db: db}
}

const selectShipment = `
	SELECT sh.id, sh.user_id, sh.product_id, COALESCE(p.origin_name, '') AS product_name,
	       sh.dispatch_date, sh.tracking_number, sh.status
	FROM shipments sh
	LEFT JOIN products p ON p.id = sh.product_id`

func (r *shipmentRepository) GetByID(ctx context.Context, id string) (*Shipment, error) {
	var s Shipment
	if err := r.db.GetContext(ctx, &s, selectShipment+` WHERE sh.id = $1`, id); err != nil {
		return nil, core.MapStoreError("get shipment", err)
	}
	return &s, nil
}

func (r *shipmentRepository) GetLatestByUser(
	ctx context.Context,
	userID string,
) (*Shipment, error) {
	query := selectShipment + `
		WHERE sh.user_id = $1
		ORDER BY sh.dispatch_date DESC
		LIMIT 1`

	var s Shipment
	err := r.db.GetContext(ctx, &s, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest shipment: %w", err)
	}

	return &s, nil
}

func (r *shipmentRepository) Create(ctx context.Context, s *Shipment) error {
	query := `
		INSERT INTO shipments (id, user_id, product_id, dispatch_date, tracking_number, status)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.ProductID,
		s.DispatchDate,
		s.TrackingNumber,
		s.Status,
	)
	return core.MapStoreError("create shipment", err)
}

func (r *shipmentRepository) Update(ctx context.Context, s *Shipment) error {
	query := `
		UPDATE shipments
		SET status = $2, tracking_number = $3
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, s.ID, s.Status, s.TrackingNumber)
	if err != nil {
		return core.MapStoreError("update shipment", err)
	}

	return expectOneRow("update shipment", result)
}

func (r *shipmentRepository) ListOrders(
	ctx context.Context,
	params ListOrdersParams,
) ([]OrderRow, int, error) {
	params.Normalize()

	where := "TRUE"
	var args []any
	argIdx := 1

	if params.Status != "" {
		where = fmt.Sprintf("sh.status = $%d", argIdx)
		args = append(args, params.Status)
		argIdx++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM shipments sh WHERE " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT sh.id, sh.status, sh.dispatch_date, sh.tracking_number, sh.user_id,
		       COALESCE(c.name, '') AS customer_name,
		       COALESCE(c.email, '') AS customer_email,
		       sh.product_id,
		       COALESCE(p.origin_name, '') AS origin_name
		FROM shipments sh
		LEFT JOIN customers c ON c.id = sh.user_id
		LEFT JOIN products p ON p.id = sh.product_id
		WHERE %s
		ORDER BY sh.dispatch_date DESC
		LIMIT $%d OFFSET $%d`,
		where, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var rows []OrderRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	return rows, total, nil
}

func (r *shipmentRepository) CountByStatus(
	ctx context.Context,
	status ShipmentStatus,
) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM shipments WHERE status = $1`, status)
	if err != nil {
		return 0, fmt.Errorf("count shipments: %w", err)
	}
	return n, nil
}

type reviewRepository struct {
	db core.DBTX
}

func NewReviewRepository(db core.DBTX) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) GetByShipment(ctx context.Context, shipmentID string) (*Review, error) {
	query := `
		SELECT id, shipment_id, rating, text, created_at
		FROM reviews
		WHERE shipment_id = $1`

	var review Review
	err := r.db.GetContext(ctx, &review, query, shipmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}

	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *Review) error {
	query := `
		INSERT INTO reviews (id, shipment_id, rating, text)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &review.CreatedAt, query,
		review.ID,
		review.ShipmentID,
		review.Rating,
		review.Text,
	)
	return core.MapStoreError("create review", err)
}

func (r *reviewRepository) AverageRating(ctx context.Context) (*float64, error) {
	var avg sql.NullFloat64
	if err := r.db.GetContext(ctx, &avg, `SELECT AVG(rating)::float8 FROM reviews`); err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

func expectOneRow(op string, result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	return nil
}
