// AngelaMos | 2026
// jobs.go

package renewal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/beanvoyage/storefront/internal/match"
	"github.com/beanvoyage/storefront/internal/order"
)

type Orders interface {
	ListDueForRenewal(ctx context.Context, limit int) ([]order.Subscription, error)
	Renew(ctx context.Context, sub order.Subscription, productID string) (*order.Shipment, error)
}

type Recommender interface {
	Recommend(ctx context.Context, userID string) (*match.Recommendation, error)
}

type ProductPicker interface {
	DefaultProductID(ctx context.Context) (string, error)
}

type Summary struct {
	Due     int
	Renewed int
	Failed  int
}

type Jobs struct {
	orders    Orders
	matcher   Recommender
	products  ProductPicker
	batchSize int
	timeout   time.Duration
	logger    *slog.Logger
}

func NewJobs(
	orders Orders,
	matcher Recommender,
	products ProductPicker,
	batchSize int,
	timeout time.Duration,
	logger *slog.Logger,
) *Jobs {
	if batchSize < 1 {
		batchSize = 100
	}
	return &Jobs{
		orders:    orders,
		matcher:   matcher,
		products:  products,
		batchSize: batchSize,
		timeout:   timeout,
		logger:    logger,
	}
}

// RenewDue is the cron entry point.
func (j *Jobs) RenewDue() {
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	j.logger.Info("starting renewal job")

	summary, err := j.Run(ctx)
	if err != nil {
		j.logger.Error("renewal job failed", "error", err)
		return
	}

	j.logger.Info("renewal job finished",
		"due", summary.Due,
		"renewed", summary.Renewed,
		"failed", summary.Failed,
	)
}

// Run renews one batch of due subscriptions. A failing subscription is
// logged and left for the next run.
func (j *Jobs) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	due, err := j.orders.ListDueForRenewal(ctx, j.batchSize)
	if err != nil {
		return summary, fmt.Errorf("list due subscriptions: %w", err)
	}
	summary.Due = len(due)

	for _, sub := range due {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		productID, err := j.pickProduct(ctx, sub.UserID)
		if err != nil {
			summary.Failed++
			j.logger.Error("pick renewal product",
				"subscription_id", sub.ID,
				"user_id", sub.UserID,
				"error", err,
			)
			continue
		}

		shipment, err := j.orders.Renew(ctx, sub, productID)
		if err != nil {
			summary.Failed++
			j.logger.Error("renew subscription",
				"subscription_id", sub.ID,
				"user_id", sub.UserID,
				"error", err,
			)
			continue
		}

		summary.Renewed++
		j.logger.Info("subscription renewed",
			"subscription_id", sub.ID,
			"shipment_id", shipment.ID,
			"product_id", productID,
		)
	}

	return summary, nil
}

// pickProduct ships the customer's best match, or the catalog default when
// there is no profile or nothing scores.
func (j *Jobs) pickProduct(ctx context.Context, userID string) (string, error) {
	if j.matcher != nil {
		rec, err := j.matcher.Recommend(ctx, userID)
		if err != nil {
			j.logger.Warn("recommendation unavailable, using default product",
				"user_id", userID,
				"error", err,
			)
		} else if rec.Match != nil {
			return rec.Match.Product.ID, nil
		}
	}

	return j.products.DefaultProductID(ctx)
}
