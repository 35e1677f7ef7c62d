package service

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/swiftship/courier-portal/internal/api/metrics"
	"github.com/swiftship/courier-portal/internal/core/domain"
	"github.com/swiftship/courier-portal/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, consignmentNumber, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, consignmentNumber, status string, ts time.Time) error
}

// CacheInvalidator drops the public tracking view after an applied event so
// the next lookup sees the new status.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, consignmentNumber string) error
}

type eventService struct {
	consignmentRepo ports.ConsignmentRepository
	eventRepo       ports.EventRepository
	dedup           DedupChecker
	cache           CacheInvalidator
	log             zerolog.Logger
}

// NewEventService returns an EventService implementation. dedup and cache may
// be nil; the corresponding steps are then skipped.
func NewEventService(
	consignmentRepo ports.ConsignmentRepository,
	eventRepo ports.EventRepository,
	dedup DedupChecker,
	cache CacheInvalidator,
	log zerolog.Logger,
) ports.EventService {
	return &eventService{
		consignmentRepo: consignmentRepo,
		eventRepo:       eventRepo,
		dedup:           dedup,
		cache:           cache,
		log:             log,
	}
}

// Process validates, deduplicates, and applies a single location event.
func (s *eventService) Process(ctx context.Context, in ports.LocationEventInput) error {
	start := time.Now()
	newStatus := domain.ConsignmentStatus(in.Status)

	// 1. Idempotency check — silently skip duplicates.
	if s.dedup != nil {
		isDup, err := s.dedup.IsDuplicate(ctx, in.ConsignmentNumber, in.Status, in.Timestamp)
		if err != nil {
			s.log.Warn().Err(err).Str("consignment", in.ConsignmentNumber).Msg("dedup check failed, processing anyway")
		} else if isDup {
			s.log.Debug().Str("consignment", in.ConsignmentNumber).Str("status", in.Status).Msg("duplicate event skipped")
			metrics.EventsDedupTotal.WithLabelValues("hit").Inc()
			return nil
		} else {
			metrics.EventsDedupTotal.WithLabelValues("miss").Inc()
		}
	}

	// 2. Find the consignment.
	consignment, err := s.consignmentRepo.FindByNumber(ctx, in.ConsignmentNumber)
	if err != nil {
		metrics.EventsErrorsTotal.WithLabelValues("consignment_not_found").Inc()
		return fmt.Errorf("process event: %w", err)
	}

	// 3. Validate the state machine transition.
	if !consignment.Status.CanTransitionTo(newStatus) {
		metrics.EventsErrorsTotal.WithLabelValues("invalid_transition").Inc()
		return fmt.Errorf("process event: %w (from %s to %s)", domain.ErrInvalidTransition, consignment.Status, newStatus)
	}

	// 4. Mark as processed before writing (prevents duplicate processing on retry).
	if s.dedup != nil {
		if markErr := s.dedup.Mark(ctx, in.ConsignmentNumber, in.Status, in.Timestamp); markErr != nil {
			s.log.Warn().Err(markErr).Str("consignment", in.ConsignmentNumber).Msg("failed to set dedup key")
		}
	}

	// 5. Atomically update status, current location and history.
	if err := s.eventRepo.ApplyEvent(ctx, in.ConsignmentNumber, newStatus, in.Location, in.Timestamp, in.Source); err != nil {
		metrics.EventsErrorsTotal.WithLabelValues("update_failed").Inc()
		return fmt.Errorf("process event: apply: %w", err)
	}

	// 6. Insert into the audit trail (non-fatal on failure).
	auditEvent := &domain.LocationEvent{
		ConsignmentNumber: in.ConsignmentNumber,
		Status:            newStatus,
		Location:          in.Location,
		Timestamp:         in.Timestamp,
		Source:            in.Source,
	}
	if err := s.eventRepo.InsertEvent(ctx, auditEvent); err != nil {
		s.log.Warn().Err(err).Str("consignment", in.ConsignmentNumber).Msg("failed to insert audit event")
	}

	// 7. Drop the cached tracking view so the public lookup reflects the event.
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, in.ConsignmentNumber); err != nil {
			s.log.Warn().Err(err).Str("consignment", in.ConsignmentNumber).Msg("failed to invalidate tracking cache")
		}
	}

	s.log.Info().
		Str("consignment", in.ConsignmentNumber).
		Str("status", in.Status).
		Str("location", in.Location).
		Str("source", in.Source).
		Msg("event processed")

	metrics.EventsProcessedTotal.WithLabelValues(in.Status, in.Source).Inc()
	metrics.EventProcessingDuration.With(prometheus.Labels{"status": in.Status}).Observe(time.Since(start).Seconds())

	return nil
}
