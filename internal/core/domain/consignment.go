package domain

import (
	"errors"
	"time"
)

// ConsignmentStatus represents the lifecycle state of a consignment.
type ConsignmentStatus string

const (
	StatusBooked         ConsignmentStatus = "BOOKED"
	StatusInTransit      ConsignmentStatus = "IN_TRANSIT"
	StatusOutForDelivery ConsignmentStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      ConsignmentStatus = "DELIVERED"
	StatusCancelled      ConsignmentStatus = "CANCELLED"
)

// statusLabels maps machine statuses to the labels shown on the website.
var statusLabels = map[ConsignmentStatus]string{
	StatusBooked:         "Booked",
	StatusInTransit:      "In Transit",
	StatusOutForDelivery: "Out for Delivery",
	StatusDelivered:      "Delivered",
	StatusCancelled:      "Cancelled",
}

// validTransitions defines the allowed state machine transitions.
// DELIVERED and CANCELLED are terminal.
var validTransitions = map[ConsignmentStatus][]ConsignmentStatus{
	StatusBooked:         {StatusInTransit, StatusCancelled},
	StatusInTransit:      {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrPastEstimatedDelivery = errors.New("estimated delivery date is in the past")
var ErrConsignmentNotFound = errors.New("consignment not found")
var ErrDuplicateConsignment = errors.New("consignment already exists")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s ConsignmentStatus) CanTransitionTo(next ConsignmentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Display returns the human-readable label for the status, or the raw value
// when the status is unknown.
func (s ConsignmentStatus) Display() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsValid reports whether s is one of the known lifecycle statuses.
func (s ConsignmentStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// HistoryEntry records a single status or location change on a consignment.
type HistoryEntry struct {
	Status    ConsignmentStatus `json:"status" bson:"status"`
	Location  string            `json:"location" bson:"location"`
	Timestamp time.Time         `json:"timestamp" bson:"timestamp"`
	Notes     string            `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Consignment is the core aggregate root: a trackable shipment identified by
// its consignment number.
type Consignment struct {
	ID                string            `json:"id" bson:"_id,omitempty"`
	ConsignmentNumber string            `json:"consignment_number" bson:"consignment_number"`
	Origin            string            `json:"origin" bson:"origin"`
	Destination       string            `json:"destination" bson:"destination"`
	CurrentLocation   string            `json:"current_location" bson:"current_location"`
	Status            ConsignmentStatus `json:"status" bson:"status"`
	EstimatedDelivery time.Time         `json:"estimated_delivery" bson:"estimated_delivery"`
	CreatedAt         time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" bson:"updated_at"`
	History           []HistoryEntry    `json:"history" bson:"history"`
}
