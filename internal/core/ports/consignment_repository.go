package ports

import (
	"context"

	"github.com/swiftship/courier-portal/internal/core/domain"
)

// ListConsignmentsFilter carries all query parameters for listing consignments.
// The filters mirror the columns the back office searches on.
type ListConsignmentsFilter struct {
	Status      string // optional: filter by lifecycle status
	Origin      string // optional: exact match on origin
	Destination string // optional: exact match on destination
	Search      string // optional: partial match on consignment_number
	Page        int    // 1-based
	Limit       int    // max rows per page (capped at 100 by the service)
}

// ConsignmentRepository defines persistence operations for consignments.
type ConsignmentRepository interface {
	Create(ctx context.Context, c *domain.Consignment) error
	FindByNumber(ctx context.Context, consignmentNumber string) (*domain.Consignment, error)
	// List returns a page of consignments matching filter and the total count.
	List(ctx context.Context, filter ListConsignmentsFilter) ([]*domain.Consignment, int64, error)
}
