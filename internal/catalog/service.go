// AngelaMos | 2026
// service.go

package catalog

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

// DefaultProductID is the product shipped when nothing better is known.
func (s *Service) DefaultProductID(ctx context.Context) (string, error) {
	p, err := s.repo.First(ctx)
	if err != nil {
		return "", fmt.Errorf("default product: %w", err)
	}
	return p.ID, nil
}
