package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/swiftship/courier-portal/internal/api/metrics"
	"github.com/swiftship/courier-portal/internal/core/domain"
	"github.com/swiftship/courier-portal/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type ConsignmentService struct {
	repo   ports.ConsignmentRepository
	logger zerolog.Logger
}

func NewConsignmentService(repo ports.ConsignmentRepository, logger zerolog.Logger) *ConsignmentService {
	return &ConsignmentService{repo: repo, logger: logger}
}

// BookConsignment registers a new consignment. The consignment number is
// generated server-side; the initial status is always BOOKED.
func (s *ConsignmentService) BookConsignment(ctx context.Context, input ports.BookConsignmentInput) (*ports.BookConsignmentResult, error) {
	now := time.Now().UTC()

	if dateOnly(input.EstimatedDelivery).Before(dateOnly(now)) {
		return nil, domain.ErrPastEstimatedDelivery
	}

	location := input.CurrentLocation
	if location == "" {
		location = input.Origin
	}

	consignment := &domain.Consignment{
		ConsignmentNumber: uuid.NewString(),
		Origin:            input.Origin,
		Destination:       input.Destination,
		CurrentLocation:   location,
		Status:            domain.StatusBooked,
		EstimatedDelivery: dateOnly(input.EstimatedDelivery),
		CreatedAt:         now,
		UpdatedAt:         now,
		History: []domain.HistoryEntry{
			{Status: domain.StatusBooked, Location: location, Timestamp: now, Notes: "booking"},
		},
	}

	if err := s.repo.Create(ctx, consignment); err != nil {
		s.logger.Error().Err(err).Msg("failed to book consignment")
		return nil, err
	}

	s.logger.Info().Str("consignment", consignment.ConsignmentNumber).Str("origin", input.Origin).Str("destination", input.Destination).Msg("consignment booked")
	metrics.ConsignmentsBookedTotal.Inc()

	return &ports.BookConsignmentResult{
		ConsignmentNumber: consignment.ConsignmentNumber,
		Status:            string(consignment.Status),
		CreatedAt:         consignment.CreatedAt,
		EstimatedDelivery: consignment.EstimatedDelivery,
	}, nil
}

// GetConsignment returns the full back-office view including history.
func (s *ConsignmentService) GetConsignment(ctx context.Context, consignmentNumber string) (*ports.ConsignmentDetail, error) {
	c, err := s.repo.FindByNumber(ctx, consignmentNumber)
	if err != nil {
		return nil, err
	}

	history := make([]ports.HistoryItem, len(c.History))
	for i, h := range c.History {
		history[i] = ports.HistoryItem{
			Status:    string(h.Status),
			Location:  h.Location,
			Timestamp: h.Timestamp,
			Notes:     h.Notes,
		}
	}

	return &ports.ConsignmentDetail{
		ConsignmentNumber: c.ConsignmentNumber,
		Origin:            c.Origin,
		Destination:       c.Destination,
		CurrentLocation:   c.CurrentLocation,
		Status:            string(c.Status),
		EstimatedDelivery: c.EstimatedDelivery,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
		History:           history,
	}, nil
}

// ListConsignments returns a filtered, paginated page of consignments.
func (s *ConsignmentService) ListConsignments(ctx context.Context, input ports.ListConsignmentsInput) (*ports.ListConsignmentsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListConsignmentsFilter{
		Status:      input.Status,
		Origin:      input.Origin,
		Destination: input.Destination,
		Search:      input.Search,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list consignments")
		return nil, err
	}

	summaries := make([]ports.ConsignmentSummary, len(items))
	for i, c := range items {
		summaries[i] = ports.ConsignmentSummary{
			ConsignmentNumber: c.ConsignmentNumber,
			Origin:            c.Origin,
			Destination:       c.Destination,
			CurrentLocation:   c.CurrentLocation,
			Status:            string(c.Status),
			EstimatedDelivery: c.EstimatedDelivery,
			CreatedAt:         c.CreatedAt,
			UpdatedAt:         c.UpdatedAt,
		}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ports.ListConsignmentsResult{
		Items:      summaries,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// dateOnly truncates a timestamp to midnight UTC. Estimated delivery carries
// date precision only.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
