package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pizzaypunto/pizzeria/internal/ordering"
)

type CourierRepo struct {
	collection *mongo.Collection
}

func NewCourierRepo(db *mongo.Database) *CourierRepo {
	return &CourierRepo{
		collection: db.Collection("couriers"),
	}
}

func (r *CourierRepo) Start(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}},
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("cannot create courier status index: %w", err)
	}
	return nil
}

func (r *CourierRepo) List(ctx context.Context) ([]*ordering.Courier, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("cannot list couriers: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*ordering.Courier
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode couriers: %w", err)
	}

	return result, nil
}

func (r *CourierRepo) ListByStatus(ctx context.Context, status string) ([]*ordering.Courier, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, fmt.Errorf("cannot list couriers by status: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*ordering.Courier
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode couriers: %w", err)
	}

	return result, nil
}

// ReserveAvailable claims one available courier with a single find-and-flip.
// The read and the status write are one operation, so two concurrent
// placements can never both observe the same courier as available. Sorted
// by name for a deterministic pick.
func (r *CourierRepo) ReserveAvailable(ctx context.Context) (*ordering.Courier, error) {
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetReturnDocument(options.After)

	var courier ordering.Courier
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"status": ordering.CourierAvailable},
		bson.M{"$set": bson.M{"status": ordering.CourierBusy}},
		opts,
	).Decode(&courier)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot reserve courier: %w", err)
	}

	return &courier, nil
}
