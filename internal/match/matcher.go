// AngelaMos | 2026
// matcher.go

package match

import (
	"github.com/beanvoyage/storefront/internal/catalog"
	"github.com/beanvoyage/storefront/internal/taste"
)

const (
	perfectScore  = 100
	pointsPerStep = 10
)

type Options struct {
	// ClampNegative floors the score at zero. Scores go negative once the
	// distance passes 10.
	ClampNegative bool
}

type Result struct {
	Product  catalog.Product
	Distance int
	Score    int
}

// Compute returns the catalog product closest to the profile by L1 distance
// over acidity and body. Earlier products win ties. Products without taste
// metadata are skipped. ok is false when nothing in the catalog can be
// scored.
func Compute(profile taste.Profile, products []catalog.Product, opts Options) (*Result, bool) {
	var best *Result

	for i := range products {
		p := products[i]
		if p.Taste == nil {
			continue
		}

		d := Distance(profile, *p.Taste)
		if best != nil && d >= best.Distance {
			continue
		}

		best = &Result{Product: p, Distance: d}
	}

	if best == nil {
		return nil, false
	}

	best.Score = Score(best.Distance, opts)
	return best, true
}

func Distance(profile taste.Profile, meta catalog.TasteMetadata) int {
	return abs(profile.Acidity-meta.Acidity) + abs(profile.Body-meta.Body)
}

func Score(distance int, opts Options) int {
	score := perfectScore - distance*pointsPerStep
	if opts.ClampNegative && score < 0 {
		return 0
	}
	return score
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
