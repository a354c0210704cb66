// AngelaMos | 2026
// service.go

package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/beanvoyage/storefront/internal/core"
	"github.com/beanvoyage/storefront/internal/match"
	"github.com/beanvoyage/storefront/internal/order"
	"github.com/beanvoyage/storefront/internal/user"
)

type CustomerReader interface {
	GetMe(ctx context.Context, userID string) (*user.Customer, error)
}

type OrderReader interface {
	Snapshot(ctx context.Context, userID string) (*order.Snapshot, error)
}

type Recommender interface {
	Recommend(ctx context.Context, userID string) (*match.Recommendation, error)
}

type Dashboard struct {
	CustomerName   string
	Order          order.Snapshot
	Recommendation *match.Recommendation
}

type Service struct {
	customers CustomerReader
	orders    OrderReader
	matcher   Recommender
}

func NewService(customers CustomerReader, orders OrderReader, matcher Recommender) *Service {
	return &Service{customers: customers, orders: orders, matcher: matcher}
}

// Get assembles the member dashboard from fresh reads. A recommendation is
// only computed when the customer has no active subscription.
func (s *Service) Get(ctx context.Context, userID string) (*Dashboard, error) {
	if userID == "" {
		return nil, fmt.Errorf("dashboard: %w", core.ErrUnauthorized)
	}

	var d Dashboard

	customer, err := s.customers.GetMe(ctx, userID)
	switch {
	case errors.Is(err, core.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("dashboard: %w", err)
	default:
		d.CustomerName = customer.DisplayName()
	}

	snap, err := s.orders.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	d.Order = *snap

	if snap.RecommendationDue {
		rec, err := s.matcher.Recommend(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("dashboard: %w", err)
		}
		d.Recommendation = rec
	}

	return &d, nil
}
