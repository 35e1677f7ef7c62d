package ports

import (
	"context"

	"github.com/swiftship/courier-portal/internal/core/domain"
)

// ContactRepository persists enquiries from the contact page.
type ContactRepository interface {
	Create(ctx context.Context, m *domain.ContactMessage) error
}
