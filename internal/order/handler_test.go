// AngelaMos | 2026
// handler_test.go

package order

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/beanvoyage/storefront/internal/core"
	"github.com/beanvoyage/storefront/internal/middleware"
)

func asUser(id, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithIdentity(r.Context(), &middleware.Identity{UserID: id, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func passThrough(next http.Handler) http.Handler { return next }

func newRouter(f *fixture, role string) chi.Router {
	h := NewHandler(f.svc)
	r := chi.NewRouter()
	h.RegisterRoutes(r, asUser("u1", role), passThrough)
	h.RegisterAdminRoutes(r, asUser("op", role), middleware.RequireAdmin)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestCheckoutHandlerErrors(t *testing.T) {
	t.Run("blank address", func(t *testing.T) {
		f := newFixture()
		rr := do(newRouter(f, middleware.RoleCustomer), http.MethodPost, "/checkout", `{"shipping_address":"   "}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), "ADDRESS_REQUIRED")
	})

	t.Run("missing address field", func(t *testing.T) {
		f := newFixture()
		rr := do(newRouter(f, middleware.RoleCustomer), http.MethodPost, "/checkout", `{}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("live subscription", func(t *testing.T) {
		f := newFixture()
		f.store.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(core.ErrDuplicateKey)

		rr := do(newRouter(f, middleware.RoleCustomer), http.MethodPost, "/checkout",
			`{"shipping_address":"Jl. Kopi 1","product_id":"coffee-001"}`)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("unknown tier", func(t *testing.T) {
		f := newFixture()
		fkErr := &pgconn.PgError{Code: "23503", Message: `insert or update on table "subscriptions" violates foreign key constraint`}
		f.store.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(core.MapStoreError("create subscription", fkErr))

		rr := do(newRouter(f, middleware.RoleCustomer), http.MethodPost, "/checkout",
			`{"shipping_address":"Jl. Kopi 1","tier_id":"tier-9","product_id":"coffee-001"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), "UNKNOWN_PLAN")
		assert.NotContains(t, rr.Body.String(), "foreign key")
	})
}

func TestChangeSubscriptionStatusHandlerInvalidTransition(t *testing.T) {
	f := newFixture()
	f.subs.On("GetLatestByUser", mock.Anything, "u1").
		Return(&Subscription{ID: "sub-1", Status: SubscriptionCancelled}, nil)

	rr := do(newRouter(f, middleware.RoleCustomer), http.MethodPut, "/subscription/status", `{"status":"Active"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_TRANSITION")
}

func TestGetSubscriptionHandlerEmpty(t *testing.T) {
	f := newFixture()
	f.subs.On("GetLatestByUser", mock.Anything, "u1").Return(nil, nil)

	rr := do(newRouter(f, middleware.RoleCustomer), http.MethodGet, "/subscription", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":true`)
}

func TestAdminShipmentRoutesRequireAdmin(t *testing.T) {
	f := newFixture()

	rr := do(newRouter(f, middleware.RoleCustomer), http.MethodPut, "/admin/shipments/sh-1/status",
		`{"status":"Shipped","tracking_number":"JNE-1"}`)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	f.shipments.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestTransitionShipmentHandler(t *testing.T) {
	f := newFixture()
	f.shipments.On("GetByID", mock.Anything, "sh-1").
		Return(&Shipment{ID: "sh-1", Status: ShipmentShipped}, nil)
	f.shipments.On("Update", mock.Anything, mock.Anything).Return(nil)

	rr := do(newRouter(f, middleware.RoleAdmin), http.MethodPut, "/admin/shipments/sh-1/status", `{"status":"Delivered"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"progress":100`)
}

func TestSubmitReviewHandlerNotFoundForOtherUser(t *testing.T) {
	f := newFixture()
	f.shipments.On("GetByID", mock.Anything, "sh-1").
		Return(&Shipment{ID: "sh-1", UserID: "someone-else", Status: ShipmentDelivered}, nil)

	rr := do(newRouter(f, middleware.RoleCustomer), http.MethodPost, "/shipments/sh-1/review", `{"rating":4}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
