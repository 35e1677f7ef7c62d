package ports

import (
	"context"
	"time"

	"github.com/swiftship/courier-portal/internal/core/domain"
)

// EventRepository handles event persistence and atomic consignment updates.
type EventRepository interface {
	// ApplyEvent atomically sets the consignment's new status, current
	// location and updated_at, and appends a history entry. The source string
	// is stored as the entry notes.
	ApplyEvent(
		ctx context.Context,
		consignmentNumber string,
		status domain.ConsignmentStatus,
		location string,
		ts time.Time,
		source string,
	) error

	// InsertEvent persists an event to the location_events audit collection.
	InsertEvent(ctx context.Context, event *domain.LocationEvent) error
}
