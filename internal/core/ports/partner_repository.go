package ports

import (
	"context"

	"github.com/swiftship/courier-portal/internal/core/domain"
)

// ListPartnersFilter carries the query parameters for listing partner applications.
type ListPartnersFilter struct {
	PartnerType string // optional: filter by type
	City        string // optional: exact match on city
	Search      string // optional: partial match on name, email or city
	Page        int    // 1-based
	Limit       int
}

// PartnerRepository defines persistence operations for partner applications.
type PartnerRepository interface {
	Create(ctx context.Context, p *domain.Partner) error
	FindByEmail(ctx context.Context, email string) (*domain.Partner, error)
	List(ctx context.Context, filter ListPartnersFilter) ([]*domain.Partner, int64, error)
}
