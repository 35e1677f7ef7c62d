package handler

import (
	"github.com/swiftship/courier-portal/internal/core/ports"
)

// --- Service result → HTTP response ---

func consignmentLinksFor(number string) consignmentLinks {
	return consignmentLinks{
		Self:   "/v1/consignments/" + number,
		Events: "/v1/events",
	}
}

func toBookResponse(r *ports.BookConsignmentResult) bookConsignmentResponse {
	return bookConsignmentResponse{
		ConsignmentNumber: r.ConsignmentNumber,
		Status:            r.Status,
		CreatedAt:         r.CreatedAt.UTC(),
		EstimatedDelivery: r.EstimatedDelivery.UTC().Format(deliveryDateFormat),
		Links:             consignmentLinksFor(r.ConsignmentNumber),
	}
}

func toDetailResponse(d *ports.ConsignmentDetail) consignmentDetailResponse {
	history := make([]historyItemResponse, len(d.History))
	for i, item := range d.History {
		history[i] = historyItemResponse{
			Status:    item.Status,
			Location:  item.Location,
			Timestamp: item.Timestamp.UTC(),
			Notes:     item.Notes,
		}
	}

	return consignmentDetailResponse{
		ConsignmentNumber: d.ConsignmentNumber,
		Origin:            d.Origin,
		Destination:       d.Destination,
		CurrentLocation:   d.CurrentLocation,
		Status:            d.Status,
		EstimatedDelivery: d.EstimatedDelivery.UTC().Format(deliveryDateFormat),
		CreatedAt:         d.CreatedAt.UTC(),
		UpdatedAt:         d.UpdatedAt.UTC(),
		History:           history,
		Links:             consignmentLinksFor(d.ConsignmentNumber),
	}
}

func toListResponse(r *ports.ListConsignmentsResult) listConsignmentsResponse {
	items := make([]consignmentSummaryResponse, len(r.Items))
	for i, s := range r.Items {
		items[i] = consignmentSummaryResponse{
			ConsignmentNumber: s.ConsignmentNumber,
			Origin:            s.Origin,
			Destination:       s.Destination,
			CurrentLocation:   s.CurrentLocation,
			Status:            s.Status,
			EstimatedDelivery: s.EstimatedDelivery.UTC().Format(deliveryDateFormat),
			CreatedAt:         s.CreatedAt.UTC(),
			UpdatedAt:         s.UpdatedAt.UTC(),
			Links:             consignmentLinksFor(s.ConsignmentNumber),
		}
	}
	return listConsignmentsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
