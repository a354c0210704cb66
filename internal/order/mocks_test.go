// AngelaMos | 2026
// mocks_test.go

package order

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type mockSubscriptions struct {
	mock.Mock
}

func (m *mockSubscriptions) GetLatestByUser(ctx context.Context, userID string) (*Subscription, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*Subscription)
	return s, args.Error(1)
}

func (m *mockSubscriptions) Create(ctx context.Context, s *Subscription) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSubscriptions) UpdateStatus(
	ctx context.Context,
	id string,
	status SubscriptionStatus,
	nextBilling time.Time,
) error {
	return m.Called(ctx, id, status, nextBilling).Error(0)
}

func (m *mockSubscriptions) ListDueForRenewal(ctx context.Context, now time.Time, limit int) ([]Subscription, error) {
	args := m.Called(ctx, now, limit)
	subs, _ := args.Get(0).([]Subscription)
	return subs, args.Error(1)
}

func (m *mockSubscriptions) AdvanceBilling(ctx context.Context, id string, from, to time.Time) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *mockSubscriptions) CountByStatus(ctx context.Context, status SubscriptionStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *mockSubscriptions) MonthlyRecurringRevenue(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	total, _ := args.Get(0).(int64)
	return total, args.Error(1)
}

type mockShipments struct {
	mock.Mock
}

func (m *mockShipments) GetByID(ctx context.Context, id string) (*Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*Shipment)
	return s, args.Error(1)
}

func (m *mockShipments) GetLatestByUser(ctx context.Context, userID string) (*Shipment, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*Shipment)
	return s, args.Error(1)
}

func (m *mockShipments) Create(ctx context.Context, s *Shipment) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockShipments) Update(ctx context.Context, s *Shipment) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockShipments) ListOrders(ctx context.Context, params ListOrdersParams) ([]OrderRow, int, error) {
	args := m.Called(ctx, params)
	rows, _ := args.Get(0).([]OrderRow)
	return rows, args.Int(1), args.Error(2)
}

func (m *mockShipments) CountByStatus(ctx context.Context, status ShipmentStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

type mockReviews struct {
	mock.Mock
}

func (m *mockReviews) GetByShipment(ctx context.Context, shipmentID string) (*Review, error) {
	args := m.Called(ctx, shipmentID)
	r, _ := args.Get(0).(*Review)
	return r, args.Error(1)
}

func (m *mockReviews) Create(ctx context.Context, r *Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockReviews) AverageRating(ctx context.Context) (*float64, error) {
	args := m.Called(ctx)
	avg, _ := args.Get(0).(*float64)
	return avg, args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) PlaceOrder(ctx context.Context, address string, sub *Subscription, first *Shipment) error {
	return m.Called(ctx, address, sub, first).Error(0)
}

func (m *mockStore) Renew(ctx context.Context, sub Subscription, next *Shipment, nextBilling time.Time) error {
	return m.Called(ctx, sub, next, nextBilling).Error(0)
}

type mockProducts struct {
	mock.Mock
}

func (m *mockProducts) DefaultProductID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type mockIdempotency struct {
	mock.Mock
}

func (m *mockIdempotency) Claim(ctx context.Context, scope, key string) (bool, error) {
	args := m.Called(ctx, scope, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockIdempotency) Release(ctx context.Context, scope, key string) error {
	return m.Called(ctx, scope, key).Error(0)
}
