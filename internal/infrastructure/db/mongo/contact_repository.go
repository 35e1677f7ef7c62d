package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/swiftship/courier-portal/internal/core/domain"
)

const collectionContactMessages = "contact_messages"

type ContactRepository struct {
	col *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{col: db.Collection(collectionContactMessages)}
}

// Create stores an enquiry from the contact page.
func (r *ContactRepository) Create(ctx context.Context, m *domain.ContactMessage) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, m)
	return err
}
