// AngelaMos | 2026
// jobs_test.go

package renewal

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/beanvoyage/storefront/internal/catalog"
	"github.com/beanvoyage/storefront/internal/match"
	"github.com/beanvoyage/storefront/internal/order"
)

type mockOrders struct{ mock.Mock }

func (m *mockOrders) ListDueForRenewal(ctx context.Context, limit int) ([]order.Subscription, error) {
	args := m.Called(ctx, limit)
	subs, _ := args.Get(0).([]order.Subscription)
	return subs, args.Error(1)
}

func (m *mockOrders) Renew(ctx context.Context, sub order.Subscription, productID string) (*order.Shipment, error) {
	args := m.Called(ctx, sub, productID)
	s, _ := args.Get(0).(*order.Shipment)
	return s, args.Error(1)
}

type mockRecommender struct{ mock.Mock }

func (m *mockRecommender) Recommend(ctx context.Context, userID string) (*match.Recommendation, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).(*match.Recommendation)
	return r, args.Error(1)
}

type fixedProduct string

func (p fixedProduct) DefaultProductID(context.Context) (string, error) { return string(p), nil }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func matched(id string) *match.Recommendation {
	return &match.Recommendation{Match: &match.Result{Product: catalog.Product{ID: id}, Score: 100}}
}

func TestRunRenewsWithMatchedOrDefaultProduct(t *testing.T) {
	orders, rec := new(mockOrders), new(mockRecommender)
	jobs := NewJobs(orders, rec, fixedProduct("coffee-001"), 50, time.Minute, discard())

	a := order.Subscription{ID: "sub-a", UserID: "ua", Status: order.SubscriptionActive}
	b := order.Subscription{ID: "sub-b", UserID: "ub", Status: order.SubscriptionActive}

	orders.On("ListDueForRenewal", mock.Anything, 50).Return([]order.Subscription{a, b}, nil)
	rec.On("Recommend", mock.Anything, "ua").Return(matched("coffee-003"), nil)
	rec.On("Recommend", mock.Anything, "ub").Return(&match.Recommendation{NeedsProfile: true}, nil)
	orders.On("Renew", mock.Anything, a, "coffee-003").Return(&order.Shipment{ID: "sh-a"}, nil)
	orders.On("Renew", mock.Anything, b, "coffee-001").Return(&order.Shipment{ID: "sh-b"}, nil)

	summary, err := jobs.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Due: 2, Renewed: 2}, summary)
	orders.AssertExpectations(t)
}

func TestRunSkipsFailuresAndContinues(t *testing.T) {
	orders, rec := new(mockOrders), new(mockRecommender)
	jobs := NewJobs(orders, rec, fixedProduct("coffee-001"), 10, 0, discard())

	a := order.Subscription{ID: "sub-a", UserID: "ua"}
	b := order.Subscription{ID: "sub-b", UserID: "ub"}

	orders.On("ListDueForRenewal", mock.Anything, 10).Return([]order.Subscription{a, b}, nil)
	rec.On("Recommend", mock.Anything, mock.Anything).Return(nil, errors.New("profile store down"))
	orders.On("Renew", mock.Anything, a, "coffee-001").Return(nil, errors.New("conflict"))
	orders.On("Renew", mock.Anything, b, "coffee-001").Return(&order.Shipment{ID: "sh-b"}, nil)

	summary, err := jobs.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Due: 2, Renewed: 1, Failed: 1}, summary)
}

func TestRunListFailure(t *testing.T) {
	orders := new(mockOrders)
	jobs := NewJobs(orders, nil, fixedProduct("coffee-001"), 0, 0, discard())

	orders.On("ListDueForRenewal", mock.Anything, 100).Return(nil, errors.New("timeout"))

	_, err := jobs.Run(context.Background())
	require.Error(t, err)
	orders.AssertNotCalled(t, "Renew", mock.Anything, mock.Anything, mock.Anything)
}

func TestSchedulerRejectsBadSchedule(t *testing.T) {
	jobs := NewJobs(new(mockOrders), nil, fixedProduct("coffee-001"), 1, 0, discard())

	s := NewScheduler(jobs, "not a schedule", discard())
	assert.Error(t, s.Start())
}
