// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/beanvoyage/storefront/internal/core"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, customer *Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*Customer, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, customer *Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *mockRepository) SaveShippingAddress(ctx context.Context, id, address string) error {
	return m.Called(ctx, id, address).Error(0)
}

func (m *mockRepository) List(ctx context.Context, params ListCustomersParams) ([]Customer, int, error) {
	args := m.Called(ctx, params)
	customers, _ := args.Get(0).([]Customer)
	return customers, args.Int(1), args.Error(2)
}

func TestRegisterNormalizesInput(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *Customer) bool {
		return c.ID == "sub-1" && c.Email == "ana@example.com" && c.Name == "Ana"
	})).Return(nil)

	customer, err := svc.Register(context.Background(), "sub-1", CreateCustomerRequest{
		Email: " Ana@Example.com ",
		Name:  " Ana ",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", customer.Email)
	repo.AssertExpectations(t)
}

func TestRegisterRequiresIdentity(t *testing.T) {
	svc := NewService(new(mockRepository))

	_, err := svc.Register(context.Background(), "", CreateCustomerRequest{})
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestUpdateMeAppliesOnlyProvidedFields(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	existing := &Customer{ID: "sub-1", Name: "Ana", ShippingAddress: "Jl. Kopi 1"}
	repo.On("GetByID", mock.Anything, "sub-1").Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	address := "  Jl. Arabika 9  "
	customer, err := svc.UpdateMe(context.Background(), "sub-1", UpdateCustomerRequest{
		ShippingAddress: &address,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", customer.Name)
	assert.Equal(t, "Jl. Arabika 9", customer.ShippingAddress)
}

func TestGetMeNotFound(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	repo.On("GetByID", mock.Anything, "ghost").Return(nil, core.ErrNotFound)

	_, err := svc.GetMe(context.Background(), "ghost")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ana", (&Customer{Name: "Ana", Email: "x@y.z"}).DisplayName())
	assert.Equal(t, "budi", (&Customer{Email: "budi@example.com"}).DisplayName())
	assert.False(t, (&Customer{ShippingAddress: "   "}).HasShippingAddress())
}
