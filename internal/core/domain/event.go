package domain

import "time"

// LocationEvent represents a status/location update received from the field
// (hub scan, driver app, broker feed).
type LocationEvent struct {
	ConsignmentNumber string
	Status            ConsignmentStatus
	Location          string
	Timestamp         time.Time
	Source            string
}
