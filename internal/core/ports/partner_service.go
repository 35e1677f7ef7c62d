package ports

import (
	"context"
	"time"
)

// RegisterPartnerInput carries a join-with-us application.
type RegisterPartnerInput struct {
	Name        string
	PartnerType string
	Phone       string
	Email       string
	City        string
	Experience  string
}

// PartnerView is the partner representation returned to the back office.
type PartnerView struct {
	Name        string
	PartnerType string
	TypeLabel   string
	Phone       string
	Email       string
	City        string
	Experience  string
	CreatedAt   time.Time
}

// ListPartnersInput carries all parameters for the partner list endpoint.
type ListPartnersInput struct {
	PartnerType string
	City        string
	Search      string
	Page        int
	Limit       int
}

// ListPartnersResult is returned by ListPartners.
type ListPartnersResult struct {
	Items      []PartnerView
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PartnerService handles partner onboarding and review.
type PartnerService interface {
	RegisterPartner(ctx context.Context, input RegisterPartnerInput) (*PartnerView, error)
	ListPartners(ctx context.Context, input ListPartnersInput) (*ListPartnersResult, error)
}
