package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/swiftship/courier-portal/internal/core/domain"
	"github.com/swiftship/courier-portal/internal/core/ports"
)

type PartnerService struct {
	repo   ports.PartnerRepository
	logger zerolog.Logger
}

func NewPartnerService(repo ports.PartnerRepository, logger zerolog.Logger) *PartnerService {
	return &PartnerService{repo: repo, logger: logger}
}

// RegisterPartner stores a join-with-us application. Emails are unique: a
// second application with the same address is rejected with ErrPartnerExists.
func (s *PartnerService) RegisterPartner(ctx context.Context, input ports.RegisterPartnerInput) (*ports.PartnerView, error) {
	partnerType := domain.PartnerType(strings.ToUpper(input.PartnerType))
	if !partnerType.IsValid() {
		return nil, domain.ErrInvalidPartnerType
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrPartnerNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrPartnerExists
	}

	partner := &domain.Partner{
		Name:        strings.TrimSpace(input.Name),
		PartnerType: partnerType,
		Phone:       strings.TrimSpace(input.Phone),
		Email:       email,
		City:        strings.TrimSpace(input.City),
		Experience:  strings.TrimSpace(input.Experience),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, partner); err != nil {
		if errors.Is(err, domain.ErrPartnerExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("email", email).Msg("failed to register partner")
		return nil, err
	}

	s.logger.Info().Str("email", email).Str("type", string(partnerType)).Str("city", partner.City).Msg("partner registered")

	view := toPartnerView(partner)
	return &view, nil
}

// ListPartners returns a filtered, paginated page of partner applications.
func (s *PartnerService) ListPartners(ctx context.Context, input ports.ListPartnersInput) (*ports.ListPartnersResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListPartnersFilter{
		PartnerType: strings.ToUpper(input.PartnerType),
		City:        input.City,
		Search:      input.Search,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list partners")
		return nil, err
	}

	views := make([]ports.PartnerView, len(items))
	for i, p := range items {
		views[i] = toPartnerView(p)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ports.ListPartnersResult{
		Items:      views,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func toPartnerView(p *domain.Partner) ports.PartnerView {
	return ports.PartnerView{
		Name:        p.Name,
		PartnerType: string(p.PartnerType),
		TypeLabel:   p.PartnerType.Display(),
		Phone:       p.Phone,
		Email:       p.Email,
		City:        p.City,
		Experience:  p.Experience,
		CreatedAt:   p.CreatedAt,
	}
}
