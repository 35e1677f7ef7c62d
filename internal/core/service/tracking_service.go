package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/swiftship/courier-portal/internal/api/metrics"
	"github.com/swiftship/courier-portal/internal/core/domain"
	"github.com/swiftship/courier-portal/internal/core/ports"
)

// Display formats for the tracking page. The website shows dates the way the
// back office enters them in copy: "August 25, 2026" and "04:30 PM, August 25, 2026".
const (
	estimatedDeliveryFormat = "January 02, 2006"
	updatedAtFormat         = "03:04 PM, January 02, 2006"
)

// TrackingCache abstracts the lookup cache (Redis). Get returns (nil, nil) on
// a cache miss.
type TrackingCache interface {
	Get(ctx context.Context, consignmentNumber string) (*ports.TrackingResult, error)
	Set(ctx context.Context, consignmentNumber string, result *ports.TrackingResult) error
	Invalidate(ctx context.Context, consignmentNumber string) error
}

type trackingService struct {
	repo  ports.ConsignmentRepository
	cache TrackingCache
	log   zerolog.Logger
}

// NewTrackingService returns a TrackingService backed by the consignment
// repository with a read-through cache. The cache may be nil (tests, degraded
// mode); lookups then always hit the repository.
func NewTrackingService(repo ports.ConsignmentRepository, cache TrackingCache, log zerolog.Logger) ports.TrackingService {
	return &trackingService{repo: repo, cache: cache, log: log}
}

// Track resolves a consignment number into the public display view.
func (s *trackingService) Track(ctx context.Context, consignmentNumber string) (*ports.TrackingResult, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, consignmentNumber)
		if err != nil {
			s.log.Warn().Err(err).Str("consignment", consignmentNumber).Msg("tracking cache read failed")
		} else if cached != nil {
			metrics.TrackingLookupsTotal.WithLabelValues("cache_hit").Inc()
			return cached, nil
		}
	}

	c, err := s.repo.FindByNumber(ctx, consignmentNumber)
	if err != nil {
		if errors.Is(err, domain.ErrConsignmentNotFound) {
			metrics.TrackingLookupsTotal.WithLabelValues("miss").Inc()
			return nil, err
		}
		metrics.TrackingLookupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("track %s: %w", consignmentNumber, err)
	}

	result := toTrackingResult(c)

	if s.cache != nil {
		if err := s.cache.Set(ctx, consignmentNumber, result); err != nil {
			s.log.Warn().Err(err).Str("consignment", consignmentNumber).Msg("tracking cache write failed")
		}
	}

	metrics.TrackingLookupsTotal.WithLabelValues("found").Inc()
	return result, nil
}

// toTrackingResult formats a consignment for display on the tracking page.
func toTrackingResult(c *domain.Consignment) *ports.TrackingResult {
	return &ports.TrackingResult{
		ConsignmentNumber: c.ConsignmentNumber,
		Origin:            c.Origin,
		Destination:       c.Destination,
		CurrentLocation:   c.CurrentLocation,
		Status:            c.Status.Display(),
		EstimatedDelivery: c.EstimatedDelivery.Format(estimatedDeliveryFormat),
		UpdatedAt:         c.UpdatedAt.Format(updatedAtFormat),
	}
}
