// AngelaMos | 2026
// dto.go

package match

import (
	"github.com/beanvoyage/storefront/internal/catalog"
)

type MatchResponse struct {
	Product  catalog.ProductResponse `json:"product"`
	Score    int                     `json:"score"`
	Distance int                     `json:"distance"`
}

type RecommendationResponse struct {
	NeedsProfile bool           `json:"needs_profile"`
	Match        *MatchResponse `json:"match"`
}

func ToRecommendationResponse(r *Recommendation) RecommendationResponse {
	resp := RecommendationResponse{NeedsProfile: r.NeedsProfile}
	if r.Match != nil {
		resp.Match = &MatchResponse{
			Product:  catalog.ToProductResponse(&r.Match.Product),
			Score:    r.Match.Score,
			Distance: r.Match.Distance,
		}
	}
	return resp
}
