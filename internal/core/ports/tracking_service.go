package ports

import "context"

// TrackingResult is the public view of a consignment rendered on the
// track-consignment page. All fields are display-formatted strings: the page
// script interpolates them into the result panel verbatim.
type TrackingResult struct {
	ConsignmentNumber string `json:"consignment_number"`
	Origin            string `json:"origin"`
	Destination       string `json:"destination"`
	CurrentLocation   string `json:"current_location"`
	Status            string `json:"status"`
	EstimatedDelivery string `json:"estimated_delivery"`
	UpdatedAt         string `json:"updated_at"`
}

// TrackingService resolves a consignment number into public tracking data.
type TrackingService interface {
	Track(ctx context.Context, consignmentNumber string) (*TrackingResult, error)
}
