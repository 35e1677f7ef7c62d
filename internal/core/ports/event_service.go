package ports

import (
	"context"
	"time"
)

// LocationEventInput is the DTO passed from the transport layer to EventService.
type LocationEventInput struct {
	ConsignmentNumber string
	Status            string
	Location          string
	Timestamp         time.Time
	Source            string
}

// EventService processes incoming location events.
type EventService interface {
	Process(ctx context.Context, event LocationEventInput) error
}
