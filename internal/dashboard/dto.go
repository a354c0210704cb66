// AngelaMos | 2026
// dto.go

package dashboard

import (
	"github.com/beanvoyage/storefront/internal/match"
	"github.com/beanvoyage/storefront/internal/order"
)

type Response struct {
	CustomerName      string                        `json:"customer_name"`
	Subscription      *order.SubscriptionResponse   `json:"subscription"`
	LatestShipment    *order.ShipmentResponse       `json:"latest_shipment"`
	ReviewDue         bool                          `json:"review_due"`
	RecommendationDue bool                          `json:"recommendation_due"`
	Recommendation    *match.RecommendationResponse `json:"recommendation,omitempty"`
}

func ToResponse(d *Dashboard) Response {
	resp := Response{
		CustomerName:      d.CustomerName,
		ReviewDue:         d.Order.ReviewDue,
		RecommendationDue: d.Order.RecommendationDue,
	}

	if d.Order.Subscription != nil {
		sub := order.ToSubscriptionResponse(d.Order.Subscription)
		resp.Subscription = &sub
	}
	if d.Order.LatestShipment != nil {
		shipment := order.ToShipmentResponse(d.Order.LatestShipment)
		resp.LatestShipment = &shipment
	}
	if d.Recommendation != nil {
		rec := match.ToRecommendationResponse(d.Recommendation)
		resp.Recommendation = &rec
	}

	return resp
}
