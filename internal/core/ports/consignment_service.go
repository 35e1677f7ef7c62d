package ports

import (
	"context"
	"time"
)

// BookConsignmentInput carries all data needed to book a new consignment.
type BookConsignmentInput struct {
	Origin            string
	Destination       string
	CurrentLocation   string // optional, defaults to Origin
	EstimatedDelivery time.Time
}

// BookConsignmentResult is returned by the service after booking.
type BookConsignmentResult struct {
	ConsignmentNumber string
	Status            string
	CreatedAt         time.Time
	EstimatedDelivery time.Time
}

// HistoryItem is a single entry in the consignment's movement history.
type HistoryItem struct {
	Status    string
	Location  string
	Timestamp time.Time
	Notes     string
}

// ConsignmentDetail is the full view returned by GetConsignment.
type ConsignmentDetail struct {
	ConsignmentNumber string
	Origin            string
	Destination       string
	CurrentLocation   string
	Status            string
	EstimatedDelivery time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	History           []HistoryItem
}

// ConsignmentSummary is the lightweight view used in list responses (no history).
type ConsignmentSummary struct {
	ConsignmentNumber string
	Origin            string
	Destination       string
	CurrentLocation   string
	Status            string
	EstimatedDelivery time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ListConsignmentsInput carries all parameters for the list endpoint.
type ListConsignmentsInput struct {
	Status      string
	Origin      string
	Destination string
	Search      string
	Page        int
	Limit       int
}

// ListConsignmentsResult is returned by ListConsignments.
type ListConsignmentsResult struct {
	Items      []ConsignmentSummary
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ConsignmentService defines back-office operations on consignments.
type ConsignmentService interface {
	BookConsignment(ctx context.Context, input BookConsignmentInput) (*BookConsignmentResult, error)
	GetConsignment(ctx context.Context, consignmentNumber string) (*ConsignmentDetail, error)
	ListConsignments(ctx context.Context, input ListConsignmentsInput) (*ListConsignmentsResult, error)
}
