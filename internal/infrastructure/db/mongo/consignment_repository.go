package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/swiftship/courier-portal/internal/core/domain"
	"github.com/swiftship/courier-portal/internal/core/ports"
)

const collectionConsignments = "consignments"

type ConsignmentRepository struct {
	col *mongo.Collection
}

func NewConsignmentRepository(db *mongo.Database) *ConsignmentRepository {
	return &ConsignmentRepository{col: db.Collection(collectionConsignments)}
}

// Create inserts a new consignment document.
func (r *ConsignmentRepository) Create(ctx context.Context, c *domain.Consignment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateConsignment
		}
		return err
	}
	return nil
}

// FindByNumber retrieves a consignment by its consignment number.
func (r *ConsignmentRepository) FindByNumber(ctx context.Context, consignmentNumber string) (*domain.Consignment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Consignment
	err := r.col.FindOne(ctx, bson.M{"consignment_number": consignmentNumber}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrConsignmentNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns a filtered page of consignments plus the total match count.
func (r *ConsignmentRepository) List(ctx context.Context, f ports.ListConsignmentsFilter) ([]*domain.Consignment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Origin != "" {
		filter["origin"] = f.Origin
	}
	if f.Destination != "" {
		filter["destination"] = f.Destination
	}
	if f.Search != "" {
		filter["consignment_number"] = bson.M{"$regex": f.Search, "$options": "i"}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((f.Page - 1) * f.Limit)
	if skip < 0 {
		skip = 0
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(f.Limit))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var items []*domain.Consignment
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// EnsureIndexes creates the indexes the lookup and list queries rely on.
func (r *ConsignmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "consignment_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "origin", Value: 1}}},
		{Keys: bson.D{{Key: "destination", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
