// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/beanvoyage/storefront/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates the customer row for an identity that signed up with
// the external identity store.
func (s *Service) Register(
	ctx context.Context,
	userID string,
	req CreateCustomerRequest,
) (*Customer, error) {
	if userID == "" {
		return nil, fmt.Errorf("register customer: %w", core.ErrUnauthorized)
	}

	customer := &Customer{
		ID:              userID,
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Name:            strings.TrimSpace(req.Name),
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *Service) GetMe(ctx context.Context, userID string) (*Customer, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateMe(
	ctx context.Context,
	userID string,
	req UpdateCustomerRequest,
) (*Customer, error) {
	if userID == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}

	customer, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = strings.TrimSpace(*req.Name)
	}
	if req.ShippingAddress != nil {
		customer.ShippingAddress = strings.TrimSpace(*req.ShippingAddress)
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *Service) ListCustomers(
	ctx context.Context,
	params ListCustomersParams,
) ([]Customer, int, error) {
	return s.repo.List(ctx, params)
}
