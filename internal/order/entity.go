// AngelaMos | 2026
// entity.go

package order

import (
	"time"
)

type Tier struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	// MonthlyPrice is in the smallest currency unit.
	MonthlyPrice int64 `db:"monthly_price"`
}

type Subscription struct {
	ID              string             `db:"id"`
	UserID          string             `db:"user_id"`
	TierID          string             `db:"tier_id"`
	TierName        string             `db:"tier_name"`
	Status          SubscriptionStatus `db:"status"`
	StartDate       time.Time          `db:"start_date"`
	NextBillingDate time.Time          `db:"next_billing_date"`
}

// Shipment is one dispatch for one billing cycle.
type Shipment struct {
	ID             string         `db:"id"`
	UserID         string         `db:"user_id"`
	ProductID      string         `db:"product_id"`
	ProductName    string         `db:"product_name"`
	DispatchDate   time.Time      `db:"dispatch_date"`
	TrackingNumber *string        `db:"tracking_number"`
	Status         ShipmentStatus `db:"status"`
}

type Review struct {
	ID         string    `db:"id"`
	ShipmentID string    `db:"shipment_id"`
	Rating     int       `db:"rating"`
	Text       string    `db:"text"`
	CreatedAt  time.Time `db:"created_at"`
}

// OrderRow is a shipment joined with its customer and product for the
// fulfillment queue.
type OrderRow struct {
	ShipmentID     string         `db:"id"`
	Status         ShipmentStatus `db:"status"`
	DispatchDate   time.Time      `db:"dispatch_date"`
	TrackingNumber *string        `db:"tracking_number"`
	UserID         string         `db:"user_id"`
	CustomerName   string         `db:"customer_name"`
	CustomerEmail  string         `db:"customer_email"`
	ProductID      string         `db:"product_id"`
	OriginName     string         `db:"origin_name"`
}

// Overview is the admin revenue and fulfillment summary.
type Overview struct {
	ActiveMembers      int
	MonthlyRevenue     int64
	PendingShipments   int
	DeliveredShipments int
	AverageRating      *float64
}
