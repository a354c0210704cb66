// AngelaMos | 2026
// status.go

package order

import (
	"fmt"
	"strings"

	"github.com/beanvoyage/storefront/internal/core"
)

type ShipmentStatus string

const (
	ShipmentProcessing ShipmentStatus = "Processing"
	ShipmentShipped    ShipmentStatus = "Shipped"
	ShipmentDelivered  ShipmentStatus = "Delivered"
)

var shipmentStatuses = []ShipmentStatus{
	ShipmentProcessing,
	ShipmentShipped,
	ShipmentDelivered,
}

// ParseShipmentStatus trims and compares case-insensitively, returning the
// canonical capitalized form.
func ParseShipmentStatus(s string) (ShipmentStatus, error) {
	s = strings.TrimSpace(s)
	for _, status := range shipmentStatuses {
		if strings.EqualFold(s, string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("shipment status %q: %w", s, core.ErrInvalidInput)
}

// Canonical returns the normalized status, or "" if it is not recognized.
func (s ShipmentStatus) Canonical() ShipmentStatus {
	c, err := ParseShipmentStatus(string(s))
	if err != nil {
		return ""
	}
	return c
}

// ShipmentProgress is the dashboard stepper fill for a status.
func ShipmentProgress(s ShipmentStatus) int {
	switch s.Canonical() {
	case ShipmentProcessing:
		return 15
	case ShipmentShipped:
		return 50
	case ShipmentDelivered:
		return 100
	default:
		return 0
	}
}

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "Active"
	SubscriptionPaused    SubscriptionStatus = "Paused"
	SubscriptionCancelled SubscriptionStatus = "Cancelled"
)

var subscriptionStatuses = []SubscriptionStatus{
	SubscriptionActive,
	SubscriptionPaused,
	SubscriptionCancelled,
}

func ParseSubscriptionStatus(s string) (SubscriptionStatus, error) {
	s = strings.TrimSpace(s)
	for _, status := range subscriptionStatuses {
		if strings.EqualFold(s, string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("subscription status %q: %w", s, core.ErrInvalidInput)
}

func (s SubscriptionStatus) Canonical() SubscriptionStatus {
	c, err := ParseSubscriptionStatus(string(s))
	if err != nil {
		return ""
	}
	return c
}
