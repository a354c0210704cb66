// AngelaMos | 2026
// service.go

package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/beanvoyage/storefront/internal/config"
	"github.com/beanvoyage/storefront/internal/core"
	"github.com/beanvoyage/storefront/internal/metrics"
)

const (
	tracerName         = "github.com/beanvoyage/storefront/internal/order"
	checkoutScope      = "checkout"
	perfectMatchText   = "Auto Perfect Match"
	calibrateAtOrBelow = 3
)

var (
	ErrAddressRequired   = fmt.Errorf("shipping address is required: %w", core.ErrInvalidInput)
	ErrRatingRequired    = fmt.Errorf("rating must be between 1 and 5: %w", core.ErrInvalidInput)
	ErrUnknownPlan       = fmt.Errorf("unknown tier or product: %w", core.ErrInvalidInput)
	ErrLiveSubscription  = errors.New("customer already has a live subscription")
	ErrDuplicateCheckout = errors.New("checkout already submitted")
	ErrReviewNotDue      = errors.New("shipment is not awaiting a review")
	ErrAlreadyReviewed   = errors.New("shipment has already been reviewed")
)

// ProductPicker supplies the product shipped when the caller names none.
type ProductPicker interface {
	DefaultProductID(ctx context.Context) (string, error)
}

type IdempotencyGuard interface {
	Claim(ctx context.Context, scope, key string) (bool, error)
	Release(ctx context.Context, scope, key string) error
}

type ServiceConfig struct {
	Subscriptions SubscriptionRepository
	Shipments     ShipmentRepository
	Reviews       ReviewRepository
	Store         Store
	Products      ProductPicker
	Idempotency   IdempotencyGuard
	Billing       config.BillingConfig
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
	Now           func() time.Time
}

type Service struct {
	subs      SubscriptionRepository
	shipments ShipmentRepository
	reviews   ReviewRepository
	store     Store
	products  ProductPicker
	idem      IdempotencyGuard
	billing   config.BillingConfig
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(cfg ServiceConfig) *Service {
	s := &Service{
		subs:      cfg.Subscriptions,
		shipments: cfg.Shipments,
		reviews:   cfg.Reviews,
		store:     cfg.Store,
		products:  cfg.Products,
		idem:      cfg.Idempotency,
		billing:   cfg.Billing,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		now:       cfg.Now,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

type CheckoutResult struct {
	Subscription Subscription
	Shipment     Shipment
}

// Checkout opens a subscription and its first Processing shipment. Payment
// is simulated.
func (s *Service) Checkout(
	ctx context.Context,
	userID, idempotencyKey string,
	req CheckoutRequest,
) (*CheckoutResult, error) {
	ctx, span := core.StartSpan(ctx, tracerName, "order.Checkout",
		attribute.String("user.id", userID),
	)
	defer span.End()

	res, err := s.checkout(ctx, userID, idempotencyKey, req)
	if err != nil {
		core.SetSpanError(ctx, err)
		s.count(s.metricsCheckouts(), resultFor(err))
		return nil, err
	}

	s.count(s.metricsCheckouts(), metrics.ResultOK)
	s.logger.InfoContext(ctx, "checkout completed",
		"user_id", userID,
		"subscription_id", res.Subscription.ID,
		"shipment_id", res.Shipment.ID,
	)
	return res, nil
}

func (s *Service) checkout(
	ctx context.Context,
	userID, idempotencyKey string,
	req CheckoutRequest,
) (*CheckoutResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("checkout: %w", core.ErrUnauthorized)
	}

	address := strings.TrimSpace(req.ShippingAddress)
	if NeedsShippingAddress(address) {
		return nil, ErrAddressRequired
	}

	key := strings.TrimSpace(idempotencyKey)
	scopedKey := userID + ":" + key
	if key != "" && s.idem != nil {
		claimed, err := s.idem.Claim(ctx, checkoutScope, scopedKey)
		if err != nil {
			s.logger.WarnContext(ctx, "idempotency check unavailable, continuing",
				"user_id", userID,
				"error", err,
			)
		} else if !claimed {
			return nil, ErrDuplicateCheckout
		}
	}

	res, err := s.placeOrder(ctx, userID, address, req)
	if err != nil && key != "" && s.idem != nil {
		if relErr := s.idem.Release(ctx, checkoutScope, scopedKey); relErr != nil {
			s.logger.WarnContext(ctx, "release idempotency key", "error", relErr)
		}
	}
	return res, err
}

func (s *Service) placeOrder(
	ctx context.Context,
	userID, address string,
	req CheckoutRequest,
) (*CheckoutResult, error) {
	tierID := strings.TrimSpace(req.TierID)
	if tierID == "" {
		tierID = s.billing.DefaultTierID
	}

	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		id, err := s.products.DefaultProductID(ctx)
		if err != nil {
			return nil, fmt.Errorf("checkout: %w", err)
		}
		productID = id
	}

	now := s.now().UTC()
	sub := Subscription{
		ID:              uuid.NewString(),
		UserID:          userID,
		TierID:          tierID,
		Status:          SubscriptionActive,
		StartDate:       now,
		NextBillingDate: now.Add(s.billing.CycleLength()),
	}
	first := Shipment{
		ID:           uuid.NewString(),
		UserID:       userID,
		ProductID:    productID,
		DispatchDate: now,
		Status:       ShipmentProcessing,
	}

	if err := s.store.PlaceOrder(ctx, address, &sub, &first); err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateKey):
			return nil, fmt.Errorf("checkout: %w", ErrLiveSubscription)
		case errors.Is(err, core.ErrUnknownReference):
			return nil, fmt.Errorf("checkout: %w", ErrUnknownPlan)
		}
		return nil, fmt.Errorf("checkout: %w", err)
	}

	return &CheckoutResult{Subscription: sub, Shipment: first}, nil
}

// GetSubscription returns nil when the customer never subscribed.
func (s *Service) GetSubscription(ctx context.Context, userID string) (*Subscription, error) {
	return s.subs.GetLatestByUser(ctx, userID)
}

// ChangeSubscriptionStatus reads the subscription fresh, validates the
// change, and writes it. On any error the stored row is unchanged.
func (s *Service) ChangeSubscriptionStatus(
	ctx context.Context,
	userID, target string,
) (*Subscription, error) {
	ctx, span := core.StartSpan(ctx, tracerName, "order.ChangeSubscriptionStatus",
		attribute.String("user.id", userID),
		attribute.String("subscription.target", target),
	)
	defer span.End()

	next, err := s.changeSubscriptionStatus(ctx, userID, target)
	label := string(SubscriptionStatus(target).Canonical())
	if err != nil {
		core.SetSpanError(ctx, err)
		s.count(s.metricsSubscriptions(), label, resultFor(err))
		return nil, err
	}

	s.count(s.metricsSubscriptions(), label, metrics.ResultOK)
	return next, nil
}

func (s *Service) changeSubscriptionStatus(
	ctx context.Context,
	userID, target string,
) (*Subscription, error) {
	status, err := ParseSubscriptionStatus(target)
	if err != nil {
		return nil, err
	}

	current, err := s.subs.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("change subscription status: %w", err)
	}
	if current == nil {
		return nil, fmt.Errorf("change subscription status: %w", core.ErrNotFound)
	}

	next, err := ApplySubscriptionStatus(*current, status)
	if err != nil {
		return nil, err
	}
	next = RebaseBilling(*current, next, s.now().UTC())

	if err := s.subs.UpdateStatus(ctx, next.ID, next.Status, next.NextBillingDate); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, fmt.Errorf("change subscription status: %w", ErrLiveSubscription)
		}
		return nil, fmt.Errorf("change subscription status: %w", err)
	}

	return &next, nil
}

// TransitionShipment is the operator action that moves a shipment forward.
func (s *Service) TransitionShipment(
	ctx context.Context,
	shipmentID, target, trackingNumber string,
) (*Shipment, error) {
	ctx, span := core.StartSpan(ctx, tracerName, "order.TransitionShipment",
		attribute.String("shipment.id", shipmentID),
		attribute.String("shipment.target", target),
	)
	defer span.End()

	next, err := s.transitionShipment(ctx, shipmentID, target, trackingNumber)
	label := string(ShipmentStatus(target).Canonical())
	if err != nil {
		core.SetSpanError(ctx, err)
		s.count(s.metricsShipments(), label, resultFor(err))
		return nil, err
	}

	s.count(s.metricsShipments(), label, metrics.ResultOK)
	s.logger.InfoContext(ctx, "shipment transitioned",
		"shipment_id", next.ID,
		"status", next.Status,
	)
	return next, nil
}

func (s *Service) transitionShipment(
	ctx context.Context,
	shipmentID, target, trackingNumber string,
) (*Shipment, error) {
	status, err := ParseShipmentStatus(target)
	if err != nil {
		return nil, err
	}

	current, err := s.shipments.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("transition shipment: %w", err)
	}

	next, err := ApplyShipmentTransition(*current, status, trackingNumber)
	if err != nil {
		return nil, err
	}

	if err := s.shipments.Update(ctx, &next); err != nil {
		return nil, fmt.Errorf("transition shipment: %w", err)
	}

	return &next, nil
}

type ReviewResult struct {
	Review Review
	// CalibrationSuggested asks the client to offer the taste quiz again.
	CalibrationSuggested bool
}

// SubmitReview records the customer's only review for a delivered shipment.
func (s *Service) SubmitReview(
	ctx context.Context,
	userID, shipmentID string,
	req ReviewRequest,
) (*ReviewResult, error) {
	ctx, span := core.StartSpan(ctx, tracerName, "order.SubmitReview",
		attribute.String("user.id", userID),
		attribute.String("shipment.id", shipmentID),
	)
	defer span.End()

	res, err := s.submitReview(ctx, userID, shipmentID, req)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	kind := "rated"
	if req.PerfectMatch {
		kind = "perfect_match"
	}
	s.count(s.metricsReviews(), kind)
	return res, nil
}

func (s *Service) submitReview(
	ctx context.Context,
	userID, shipmentID string,
	req ReviewRequest,
) (*ReviewResult, error) {
	shipment, err := s.shipments.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("submit review: %w", err)
	}
	if shipment.UserID != userID {
		return nil, fmt.Errorf("submit review: %w", core.ErrNotFound)
	}

	existing, err := s.reviews.GetByShipment(ctx, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("submit review: %w", err)
	}
	if !IsReviewDue(shipment, existing) {
		if existing != nil {
			return nil, ErrAlreadyReviewed
		}
		return nil, ErrReviewNotDue
	}

	rating, text := req.Rating, strings.TrimSpace(req.Text)
	if req.PerfectMatch {
		rating, text = 5, perfectMatchText
	}
	if rating < 1 || rating > 5 {
		return nil, ErrRatingRequired
	}

	review := Review{
		ID:         uuid.NewString(),
		ShipmentID: shipmentID,
		Rating:     rating,
		Text:       text,
	}
	if err := s.reviews.Create(ctx, &review); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("submit review: %w", err)
	}

	return &ReviewResult{
		Review:               review,
		CalibrationSuggested: rating <= calibrateAtOrBelow,
	}, nil
}

// Snapshot is everything the dashboard derives from order state, read fresh.
type Snapshot struct {
	Subscription      *Subscription
	LatestShipment    *Shipment
	ReviewDue         bool
	RecommendationDue bool
}

func (s *Service) Snapshot(ctx context.Context, userID string) (*Snapshot, error) {
	sub, err := s.subs.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("order snapshot: %w", err)
	}

	shipment, err := s.shipments.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("order snapshot: %w", err)
	}

	var review *Review
	if shipment != nil && shipment.Status.Canonical() == ShipmentDelivered {
		review, err = s.reviews.GetByShipment(ctx, shipment.ID)
		if err != nil {
			return nil, fmt.Errorf("order snapshot: %w", err)
		}
	}

	return &Snapshot{
		Subscription:      sub,
		LatestShipment:    shipment,
		ReviewDue:         IsReviewDue(shipment, review),
		RecommendationDue: IsRecommendationDue(sub),
	}, nil
}

func (s *Service) ListOrders(
	ctx context.Context,
	params ListOrdersParams,
) ([]OrderRow, int, error) {
	return s.shipments.ListOrders(ctx, params)
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var (
		o   Overview
		err error
	)

	if o.ActiveMembers, err = s.subs.CountByStatus(ctx, SubscriptionActive); err != nil {
		return nil, err
	}
	if o.MonthlyRevenue, err = s.subs.MonthlyRecurringRevenue(ctx); err != nil {
		return nil, err
	}
	if o.PendingShipments, err = s.shipments.CountByStatus(ctx, ShipmentProcessing); err != nil {
		return nil, err
	}
	if o.DeliveredShipments, err = s.shipments.CountByStatus(ctx, ShipmentDelivered); err != nil {
		return nil, err
	}
	if o.AverageRating, err = s.reviews.AverageRating(ctx); err != nil {
		return nil, err
	}

	return &o, nil
}

// ListDueForRenewal returns active subscriptions whose billing date has
// passed.
func (s *Service) ListDueForRenewal(ctx context.Context, limit int) ([]Subscription, error) {
	return s.subs.ListDueForRenewal(ctx, s.now().UTC(), limit)
}

// Renew opens the next cycle's shipment and moves the billing date forward
// one cycle, together.
func (s *Service) Renew(ctx context.Context, sub Subscription, productID string) (*Shipment, error) {
	ctx, span := core.StartSpan(ctx, tracerName, "order.Renew",
		attribute.String("subscription.id", sub.ID),
	)
	defer span.End()

	if sub.Status.Canonical() != SubscriptionActive {
		return nil, &TransitionError{
			From:   string(sub.Status),
			To:     string(SubscriptionActive),
			Reason: "only active subscriptions renew",
		}
	}

	next := Shipment{
		ID:           uuid.NewString(),
		UserID:       sub.UserID,
		ProductID:    productID,
		DispatchDate: s.now().UTC(),
		Status:       ShipmentProcessing,
	}

	if err := s.store.Renew(ctx, sub, &next, sub.NextBillingDate.Add(s.billing.CycleLength())); err != nil {
		core.SetSpanError(ctx, err)
		s.count(s.metricsRenewals(), resultFor(err))
		return nil, err
	}

	s.count(s.metricsRenewals(), metrics.ResultOK)
	return &next, nil
}

func resultFor(err error) string {
	var te *TransitionError
	switch {
	case errors.As(err, &te),
		errors.Is(err, core.ErrInvalidInput),
		errors.Is(err, core.ErrConflict),
		errors.Is(err, ErrLiveSubscription),
		errors.Is(err, ErrDuplicateCheckout):
		return metrics.ResultRejected
	default:
		return metrics.ResultError
	}
}
