// AngelaMos | 2026
// dto.go

package order

import (
	"time"
)

type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required,max=500"`
	TierID          string `json:"tier_id"          validate:"omitempty,max=64"`
	ProductID       string `json:"product_id"       validate:"omitempty,max=64"`
}

type SubscriptionStatusRequest struct {
	Status string `json:"status" validate:"required,max=32"`
}

type ShipmentStatusRequest struct {
	Status         string `json:"status"          validate:"required,max=32"`
	TrackingNumber string `json:"tracking_number" validate:"max=64"`
}

// ReviewRequest either carries a rating or asks for the one-tap perfect
// match review.
type ReviewRequest struct {
	Rating       int    `json:"rating"        validate:"omitempty,min=1,max=5"`
	Text         string `json:"text"          validate:"max=2000"`
	PerfectMatch bool   `json:"perfect_match"`
}

type ListOrdersParams struct {
	Page     int
	PageSize int
	Status   ShipmentStatus
}

func (p *ListOrdersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListOrdersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type SubscriptionResponse struct {
	ID                string    `json:"id"`
	TierID            string    `json:"tier_id"`
	TierName          string    `json:"tier_name,omitempty"`
	Status            string    `json:"status"`
	StartDate         time.Time `json:"start_date"`
	NextBillingDate   time.Time `json:"next_billing_date"`
	RecommendationDue bool      `json:"recommendation_due"`
}

type ShipmentResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name,omitempty"`
	DispatchDate   time.Time `json:"dispatch_date"`
	TrackingNumber *string   `json:"tracking_number"`
	Status         string    `json:"status"`
	Progress       int       `json:"progress"`
}

type ReviewResponse struct {
	ID                   string    `json:"id"`
	ShipmentID           string    `json:"shipment_id"`
	Rating               int       `json:"rating"`
	Text                 string    `json:"text"`
	CreatedAt            time.Time `json:"created_at"`
	CalibrationSuggested bool      `json:"calibration_suggested"`
}

type CheckoutResponse struct {
	Subscription SubscriptionResponse `json:"subscription"`
	Shipment     ShipmentResponse     `json:"shipment"`
}

type OrderResponse struct {
	ShipmentID     string    `json:"shipment_id"`
	Status         string    `json:"status"`
	DispatchDate   time.Time `json:"dispatch_date"`
	TrackingNumber *string   `json:"tracking_number"`
	CustomerID     string    `json:"customer_id"`
	CustomerName   string    `json:"customer_name"`
	CustomerEmail  string    `json:"customer_email"`
	ProductID      string    `json:"product_id"`
	OriginName     string    `json:"origin_name"`
	NextActions    []string  `json:"next_actions"`
}

func ToSubscriptionResponse(s *Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:                s.ID,
		TierID:            s.TierID,
		TierName:          s.TierName,
		Status:            string(s.Status),
		StartDate:         s.StartDate,
		NextBillingDate:   s.NextBillingDate,
		RecommendationDue: IsRecommendationDue(s),
	}
}

func ToShipmentResponse(s *Shipment) ShipmentResponse {
	return ShipmentResponse{
		ID:             s.ID,
		ProductID:      s.ProductID,
		ProductName:    s.ProductName,
		DispatchDate:   s.DispatchDate,
		TrackingNumber: s.TrackingNumber,
		Status:         string(s.Status),
		Progress:       ShipmentProgress(s.Status),
	}
}

func ToReviewResponse(r *ReviewResult) ReviewResponse {
	return ReviewResponse{
		ID:                   r.Review.ID,
		ShipmentID:           r.Review.ShipmentID,
		Rating:               r.Review.Rating,
		Text:                 r.Review.Text,
		CreatedAt:            r.Review.CreatedAt,
		CalibrationSuggested: r.CalibrationSuggested,
	}
}

// NextShipmentActions lists the operator actions offered for a status.
func NextShipmentActions(status ShipmentStatus) []string {
	var actions []string
	for _, target := range shipmentStatuses {
		if CanTransitionShipment(status, target, true) {
			actions = append(actions, string(target))
		}
	}
	if actions == nil {
		return []string{}
	}
	return actions
}

func ToOrderResponseList(rows []OrderRow) []OrderResponse {
	responses := make([]OrderResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, OrderResponse{
			ShipmentID:     row.ShipmentID,
			Status:         string(row.Status),
			DispatchDate:   row.DispatchDate,
			TrackingNumber: row.TrackingNumber,
			CustomerID:     row.UserID,
			CustomerName:   row.CustomerName,
			CustomerEmail:  row.CustomerEmail,
			ProductID:      row.ProductID,
			OriginName:     row.OriginName,
			NextActions:    NextShipmentActions(row.Status),
		})
	}
	return responses
}
