package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/swiftship/courier-portal/internal/core/domain"
	"github.com/swiftship/courier-portal/internal/core/ports"
)

const collectionLocationEvents = "location_events"

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	db *mongo.Database
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) ports.EventRepository {
	return &EventRepository{db: db}
}

// ApplyEvent atomically sets the consignment status, current location and
// updated_at, and appends a history entry.
func (r *EventRepository) ApplyEvent(
	ctx context.Context,
	consignmentNumber string,
	status domain.ConsignmentStatus,
	location string,
	ts time.Time,
	source string,
) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	historyEntry := bson.M{
		"status":    string(status),
		"location":  location,
		"timestamp": ts.UTC(),
		"notes":     source,
	}

	filter := bson.M{"consignment_number": consignmentNumber}
	update := bson.M{
		"$set": bson.M{
			"status":           string(status),
			"current_location": location,
			"updated_at":       ts.UTC(),
		},
		"$push": bson.M{"history": historyEntry},
	}

	_, err := r.db.Collection(collectionConsignments).UpdateOne(ctx, filter, update)
	return err
}

// InsertEvent persists a location event to the audit collection.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.LocationEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"consignment_number": event.ConsignmentNumber,
		"status":             string(event.Status),
		"location":           event.Location,
		"timestamp":          event.Timestamp.UTC(),
		"source":             event.Source,
		"processed_at":       time.Now().UTC(),
	}

	_, err := r.db.Collection(collectionLocationEvents).InsertOne(ctx, doc)
	return err
}
