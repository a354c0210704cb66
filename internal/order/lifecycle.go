// AngelaMos | 2026
// lifecycle.go

package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// TransitionError explains why a status change was refused. Nothing is
// written when one is returned.
type TransitionError struct {
	From   string
	To     string
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move from %s to %s: %s", e.From, e.To, e.Reason)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// CanTransitionShipment allows only Processing to Shipped (with a tracking
// number) and Shipped to Delivered. Delivered is terminal.
func CanTransitionShipment(current, target ShipmentStatus, hasTrackingNumber bool) bool {
	return shipmentTransitionReason(current, target, hasTrackingNumber) == ""
}

func shipmentTransitionReason(current, target ShipmentStatus, hasTrackingNumber bool) string {
	from, to := current.Canonical(), target.Canonical()

	switch {
	case from == "":
		return "current status is not recognized"
	case to == "":
		return "target status is not recognized"
	case from == ShipmentDelivered:
		return "delivered shipments are final"
	case from == ShipmentProcessing && to == ShipmentShipped:
		if !hasTrackingNumber {
			return "a tracking number is required to mark a shipment shipped"
		}
		return ""
	case from == ShipmentShipped && to == ShipmentDelivered:
		return ""
	case from == to:
		return "shipment is already " + string(from)
	default:
		return "shipments move forward one step at a time"
	}
}

// ApplyShipmentTransition returns the shipment as it should be stored after
// moving to target. The input is never modified.
func ApplyShipmentTransition(
	s Shipment,
	target ShipmentStatus,
	trackingNumber string,
) (Shipment, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)

	reason := shipmentTransitionReason(s.Status, target, trackingNumber != "")
	if reason != "" {
		return s, &TransitionError{
			From:   string(s.Status),
			To:     string(target),
			Reason: reason,
		}
	}

	next := s
	next.Status = target.Canonical()
	if next.Status == ShipmentShipped {
		next.TrackingNumber = &trackingNumber
	}

	return next, nil
}

var subscriptionEdges = map[SubscriptionStatus][]SubscriptionStatus{
	SubscriptionActive:    {SubscriptionPaused, SubscriptionCancelled},
	SubscriptionPaused:    {SubscriptionActive, SubscriptionCancelled},
	SubscriptionCancelled: {SubscriptionActive},
}

func CanTransitionSubscription(current, target SubscriptionStatus) bool {
	return subscriptionTransitionReason(current, target) == ""
}

func subscriptionTransitionReason(current, target SubscriptionStatus) string {
	from, to := current.Canonical(), target.Canonical()

	switch {
	case from == "":
		return "current status is not recognized"
	case to == "":
		return "target status is not recognized"
	case from == to:
		return "subscription is already " + string(from)
	}

	for _, allowed := range subscriptionEdges[from] {
		if allowed == to {
			return ""
		}
	}

	return "a cancelled subscription can only be reactivated"
}

// ApplySubscriptionStatus changes only the status. Tier and billing dates
// are carried over untouched.
func ApplySubscriptionStatus(s Subscription, target SubscriptionStatus) (Subscription, error) {
	if reason := subscriptionTransitionReason(s.Status, target); reason != "" {
		return s, &TransitionError{
			From:   string(s.Status),
			To:     string(target),
			Reason: reason,
		}
	}

	next := s
	next.Status = target.Canonical()
	return next, nil
}

// RebaseBilling moves the billing date of a subscription coming back to
// Active up to now, so the months it spent paused or cancelled are not
// renewed. Other changes keep the stored date.
func RebaseBilling(prev, next Subscription, now time.Time) Subscription {
	if prev.Status.Canonical() == SubscriptionActive || next.Status.Canonical() != SubscriptionActive {
		return next
	}
	if next.NextBillingDate.Before(now) {
		next.NextBillingDate = now
	}
	return next
}

// IsReviewDue is true when the shipment was delivered and the given review
// does not belong to it.
func IsReviewDue(s *Shipment, existing *Review) bool {
	if s == nil || s.Status.Canonical() != ShipmentDelivered {
		return false
	}
	return existing == nil || existing.ShipmentID != s.ID
}

// IsRecommendationDue is true when the customer has no subscription or it is
// not active.
func IsRecommendationDue(s *Subscription) bool {
	return s == nil || s.Status.Canonical() != SubscriptionActive
}

func NeedsShippingAddress(address string) bool {
	return strings.TrimSpace(address) == ""
}
