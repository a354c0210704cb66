// AngelaMos | 2026
// metrics.go

package order

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/beanvoyage/storefront/internal/metrics"
)

func (s *Service) count(c *prometheus.CounterVec, labels ...string) {
	metrics.Inc(c, labels...)
}

func (s *Service) metricsCheckouts() *prometheus.CounterVec {
	if s.metrics == nil {
		return nil
	}
	return s.metrics.Checkouts
}

func (s *Service) metricsSubscriptions() *prometheus.CounterVec {
	if s.metrics == nil {
		return nil
	}
	return s.metrics.SubscriptionChanges
}

func (s *Service) metricsShipments() *prometheus.CounterVec {
	if s.metrics == nil {
		return nil
	}
	return s.metrics.ShipmentTransitions
}

func (s *Service) metricsReviews() *prometheus.CounterVec {
	if s.metrics == nil {
		return nil
	}
	return s.metrics.Reviews
}

func (s *Service) metricsRenewals() *prometheus.CounterVec {
	if s.metrics == nil {
		return nil
	}
	return s.metrics.Renewals
}
