package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type bookConsignmentRequest struct {
	Origin            string `json:"origin"             validate:"required"`
	Destination       string `json:"destination"        validate:"required"`
	CurrentLocation   string `json:"current_location"`
	EstimatedDelivery string `json:"estimated_delivery" validate:"required,datetime=2006-01-02"`
}

// --- Response types ---
// Response-only types owned by the transport layer, deliberately separate from
// ports/domain types so the JSON contract is not coupled to internal changes.

type consignmentLinks struct {
	Self   string `json:"self"`
	Events string `json:"events"`
}

type bookConsignmentResponse struct {
	ConsignmentNumber string           `json:"consignment_number"`
	Status            string           `json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
	EstimatedDelivery string           `json:"estimated_delivery"`
	Links             consignmentLinks `json:"_links"`
}

type historyItemResponse struct {
	Status    string    `json:"status"`
	Location  string    `json:"location"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

type consignmentDetailResponse struct {
	ConsignmentNumber string                `json:"consignment_number"`
	Origin            string                `json:"origin"`
	Destination       string                `json:"destination"`
	CurrentLocation   string                `json:"current_location"`
	Status            string                `json:"status"`
	EstimatedDelivery string                `json:"estimated_delivery"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
	History           []historyItemResponse `json:"history"`
	Links             consignmentLinks      `json:"_links"`
}

// consignmentSummaryResponse is the lightweight item used in list responses.
// It intentionally omits history to keep payloads small.
type consignmentSummaryResponse struct {
	ConsignmentNumber string           `json:"consignment_number"`
	Origin            string           `json:"origin"`
	Destination       string           `json:"destination"`
	CurrentLocation   string           `json:"current_location"`
	Status            string           `json:"status"`
	EstimatedDelivery string           `json:"estimated_delivery"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	Links             consignmentLinks `json:"_links"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listConsignmentsResponse struct {
	Data       []consignmentSummaryResponse `json:"data"`
	Pagination paginationResponse           `json:"pagination"`
}
