// AngelaMos | 2026
// store.go

package order

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/beanvoyage/storefront/internal/core"
)

// AddressSaver records the shipping address on the customer account.
type AddressSaver interface {
	SaveShippingAddress(ctx context.Context, userID, address string) error
}

// Store groups the writes that must land together.
type Store interface {
	PlaceOrder(ctx context.Context, address string, sub *Subscription, first *Shipment) error
	Renew(ctx context.Context, sub Subscription, next *Shipment, nextBilling time.Time) error
}

type sqlStore struct {
	db        *sqlx.DB
	addresses func(core.DBTX) AddressSaver
}

func NewStore(db *sqlx.DB, addresses func(core.DBTX) AddressSaver) Store {
	return &sqlStore{db: db, addresses: addresses}
}

func (s *sqlStore) PlaceOrder(
	ctx context.Context,
	address string,
	sub *Subscription,
	first *Shipment,
) error {
	return core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := s.addresses(tx).SaveShippingAddress(ctx, sub.UserID, address); err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		if err := NewSubscriptionRepository(tx).Create(ctx, sub); err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		if err := NewShipmentRepository(tx).Create(ctx, first); err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		return nil
	})
}

func (s *sqlStore) Renew(
	ctx context.Context,
	sub Subscription,
	next *Shipment,
	nextBilling time.Time,
) error {
	return core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		err := NewSubscriptionRepository(tx).AdvanceBilling(ctx, sub.ID, sub.NextBillingDate, nextBilling)
		if err != nil {
			return fmt.Errorf("renew: %w", err)
		}
		if err := NewShipmentRepository(tx).Create(ctx, next); err != nil {
			return fmt.Errorf("renew: %w", err)
		}
		return nil
	})
}
