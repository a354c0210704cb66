// AngelaMos | 2026
// service.go

package match

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/beanvoyage/storefront/internal/catalog"
	"github.com/beanvoyage/storefront/internal/core"
	"github.com/beanvoyage/storefront/internal/metrics"
	"github.com/beanvoyage/storefront/internal/taste"
)

const tracerName = "github.com/beanvoyage/storefront/internal/match"

// Recommendation outcomes, also used as metric labels.
const (
	OutcomeMatched      = "matched"
	OutcomeNeedsProfile = "needs_profile"
	OutcomeNoMatch      = "no_match"
)

type ProfileReader interface {
	Get(ctx context.Context, userID string) (*taste.Profile, error)
}

type ProductLister interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
}

type Recommendation struct {
	NeedsProfile bool
	Match        *Result
}

func (r *Recommendation) Outcome() string {
	switch {
	case r.NeedsProfile:
		return OutcomeNeedsProfile
	case r.Match == nil:
		return OutcomeNoMatch
	default:
		return OutcomeMatched
	}
}

type Recommender struct {
	profiles ProfileReader
	products ProductLister
	opts     Options
	metrics  *metrics.Metrics
}

func NewRecommender(
	profiles ProfileReader,
	products ProductLister,
	opts Options,
	m *metrics.Metrics,
) *Recommender {
	return &Recommender{
		profiles: profiles,
		products: products,
		opts:     opts,
		metrics:  m,
	}
}

// Recommend reads the stored profile and the catalog fresh on every call.
func (s *Recommender) Recommend(ctx context.Context, userID string) (*Recommendation, error) {
	ctx, span := core.StartSpan(ctx, tracerName, "match.Recommend",
		attribute.String("user.id", userID),
	)
	defer span.End()

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		core.SetSpanError(ctx, err)
		s.count(metrics.ResultError)
		return nil, fmt.Errorf("recommend: %w", err)
	}

	if profile == nil {
		rec := &Recommendation{NeedsProfile: true}
		s.count(rec.Outcome())
		return rec, nil
	}

	return s.Preview(ctx, *profile)
}

// Preview scores a transient profile, such as a guest's quiz answers.
func (s *Recommender) Preview(ctx context.Context, profile taste.Profile) (*Recommendation, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		core.SetSpanError(ctx, err)
		s.count(metrics.ResultError)
		return nil, fmt.Errorf("recommend: %w", err)
	}

	rec := &Recommendation{}
	if res, ok := Compute(profile, products, s.opts); ok {
		rec.Match = res
		core.AddSpanEvent(ctx, "match.computed",
			attribute.String("product.id", res.Product.ID),
			attribute.Int("match.score", res.Score),
		)
	}

	s.count(rec.Outcome())
	return rec, nil
}

func (s *Recommender) count(outcome string) {
	if s.metrics == nil {
		return
	}
	metrics.Inc(s.metrics.Recommendations, outcome)
}
