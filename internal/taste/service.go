// AngelaMos | 2026
// service.go

package taste

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/beanvoyage/storefront/internal/core"
)

const tracerName = "github.com/beanvoyage/storefront/internal/taste"

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Get returns nil without error when the user has no profile yet.
func (s *Service) Get(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("get taste profile: %w", core.ErrUnauthorized)
	}
	return s.repo.GetByUserID(ctx, userID)
}

// Calibrate overwrites the profile with fresh quiz answers.
func (s *Service) Calibrate(
	ctx context.Context,
	userID string,
	req ProfileRequest,
) (*Profile, error) {
	profile, _, err := s.save(ctx, "taste.Calibrate", userID, req)
	return profile, err
}

// MergeGuest stores answers captured before login. Repeating the call with
// the same payload leaves the same row behind.
func (s *Service) MergeGuest(
	ctx context.Context,
	userID string,
	req ProfileRequest,
) (*Profile, bool, error) {
	profile, created, err := s.save(ctx, "taste.MergeGuest", userID, req)
	if err != nil {
		s.logger.WarnContext(ctx, "guest profile merge failed",
			"user_id", userID,
			"error", err,
		)
		return nil, false, err
	}
	return profile, created, nil
}

func (s *Service) save(
	ctx context.Context,
	spanName, userID string,
	req ProfileRequest,
) (*Profile, bool, error) {
	ctx, span := core.StartSpan(ctx, tracerName, spanName,
		attribute.String("user.id", userID),
	)
	defer span.End()

	if userID == "" {
		return nil, false, fmt.Errorf("save taste profile: %w", core.ErrUnauthorized)
	}

	req.Normalize()
	if _, err := ParseRoast(req.Roast); err != nil {
		return nil, false, err
	}
	if req.Acidity < 1 || req.Acidity > 5 || req.Body < 1 || req.Body > 5 {
		return nil, false, fmt.Errorf("taste levels out of range: %w", core.ErrInvalidInput)
	}

	profile := req.ToProfile(userID)
	created, err := s.repo.Upsert(ctx, &profile)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, false, err
	}

	span.SetAttributes(attribute.Bool("taste.created", created))
	return &profile, created, nil
}
