// AngelaMos | 2026
// dashboard_test.go

package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/beanvoyage/storefront/internal/catalog"
	"github.com/beanvoyage/storefront/internal/core"
	"github.com/beanvoyage/storefront/internal/match"
	"github.com/beanvoyage/storefront/internal/middleware"
	"github.com/beanvoyage/storefront/internal/order"
	"github.com/beanvoyage/storefront/internal/user"
)

type mockCustomers struct{ mock.Mock }

func (m *mockCustomers) GetMe(ctx context.Context, userID string) (*user.Customer, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(*user.Customer)
	return c, args.Error(1)
}

type mockOrders struct{ mock.Mock }

func (m *mockOrders) Snapshot(ctx context.Context, userID string) (*order.Snapshot, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*order.Snapshot)
	return s, args.Error(1)
}

type mockRecommender struct{ mock.Mock }

func (m *mockRecommender) Recommend(ctx context.Context, userID string) (*match.Recommendation, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).(*match.Recommendation)
	return r, args.Error(1)
}

func TestGetActiveMemberSkipsRecommendation(t *testing.T) {
	customers, orders, rec := new(mockCustomers), new(mockOrders), new(mockRecommender)
	svc := NewService(customers, orders, rec)

	customers.On("GetMe", mock.Anything, "u1").Return(&user.Customer{Email: "sari@example.com"}, nil)
	orders.On("Snapshot", mock.Anything, "u1").Return(&order.Snapshot{
		Subscription:   &order.Subscription{ID: "sub-1", Status: order.SubscriptionActive},
		LatestShipment: &order.Shipment{ID: "sh-1", Status: order.ShipmentShipped},
	}, nil)

	d, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "sari", d.CustomerName)
	assert.Nil(t, d.Recommendation)
	rec.AssertNotCalled(t, "Recommend", mock.Anything, mock.Anything)
}

func TestGetWithoutSubscriptionRecommends(t *testing.T) {
	customers, orders, rec := new(mockCustomers), new(mockOrders), new(mockRecommender)
	svc := NewService(customers, orders, rec)

	customers.On("GetMe", mock.Anything, "u1").Return(nil, core.ErrNotFound)
	orders.On("Snapshot", mock.Anything, "u1").Return(&order.Snapshot{RecommendationDue: true}, nil)
	rec.On("Recommend", mock.Anything, "u1").Return(&match.Recommendation{NeedsProfile: true}, nil)

	d, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, d.CustomerName)
	require.NotNil(t, d.Recommendation)
	assert.True(t, d.Recommendation.NeedsProfile)
}

func TestGetPropagatesStoreFailure(t *testing.T) {
	customers, orders, rec := new(mockCustomers), new(mockOrders), new(mockRecommender)
	svc := NewService(customers, orders, rec)

	customers.On("GetMe", mock.Anything, "u1").Return(&user.Customer{Name: "Sari"}, nil)
	orders.On("Snapshot", mock.Anything, "u1").Return(nil, errors.New("connection reset"))

	_, err := svc.Get(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestHandlerGet(t *testing.T) {
	customers, orders, rec := new(mockCustomers), new(mockOrders), new(mockRecommender)
	h := NewHandler(NewService(customers, orders, rec))

	customers.On("GetMe", mock.Anything, "u1").Return(&user.Customer{Name: "Sari"}, nil)
	orders.On("Snapshot", mock.Anything, "u1").Return(&order.Snapshot{
		Subscription:      &order.Subscription{ID: "sub-1", Status: order.SubscriptionPaused},
		LatestShipment:    &order.Shipment{ID: "sh-1", Status: order.ShipmentDelivered},
		ReviewDue:         true,
		RecommendationDue: true,
	}, nil)
	rec.On("Recommend", mock.Anything, "u1").Return(&match.Recommendation{
		Match: &match.Result{
			Product:  catalog.Product{ID: "coffee-002", OriginName: "Gayo"},
			Distance: 1,
			Score:    90,
		},
	}, nil)

	withUser := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithIdentity(r.Context(), &middleware.Identity{UserID: "u1"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	r := chi.NewRouter()
	h.RegisterRoutes(r, withUser)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Success bool     `json:"success"`
		Data    Response `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Sari", body.Data.CustomerName)
	assert.True(t, body.Data.ReviewDue)
	require.NotNil(t, body.Data.LatestShipment)
	assert.Equal(t, 100, body.Data.LatestShipment.Progress)
	require.NotNil(t, body.Data.Recommendation)
	require.NotNil(t, body.Data.Recommendation.Match)
	assert.Equal(t, 90, body.Data.Recommendation.Match.Score)
}

func TestHandlerGetWithoutIdentity(t *testing.T) {
	h := NewHandler(NewService(new(mockCustomers), new(mockOrders), new(mockRecommender)))

	rr := httptest.NewRecorder()
	h.Get(rr, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
