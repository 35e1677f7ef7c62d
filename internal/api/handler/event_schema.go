package handler

import "time"

type locationEventRequest struct {
	ConsignmentNumber string    `json:"consignment_number" validate:"required"`
	Status            string    `json:"status"             validate:"required,oneof=IN_TRANSIT OUT_FOR_DELIVERY DELIVERED CANCELLED"`
	Location          string    `json:"location"           validate:"required"`
	Timestamp         time.Time `json:"timestamp"          validate:"required"`
	Source            string    `json:"source"             validate:"required"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
