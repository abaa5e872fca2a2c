package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pizzaypunto/pizzeria/internal/ordering"
)

type InventoryRepo struct {
	collection *mongo.Collection
}

func NewInventoryRepo(db *mongo.Database) *InventoryRepo {
	return &InventoryRepo{
		collection: db.Collection("ingredients"),
	}
}

func (r *InventoryRepo) Start(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("cannot create ingredient name index: %w", err)
	}
	return nil
}

func (r *InventoryRepo) GetMany(ctx context.Context, ids []uuid.UUID) ([]*ordering.Ingredient, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("cannot fetch ingredients: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*ordering.Ingredient
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode ingredients: %w", err)
	}

	return result, nil
}

func (r *InventoryRepo) List(ctx context.Context) ([]*ordering.Ingredient, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("cannot list ingredients: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*ordering.Ingredient
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode ingredients: %w", err)
	}

	return result, nil
}

// DecrementStock applies the whole demand as one bulk of conditional
// updates: each decrement only matches while stock covers the need, so
// stock can never go negative no matter what a prior read said. A partial
// match count means a concurrent placement got there first.
func (r *InventoryRepo) DecrementStock(ctx context.Context, demand map[uuid.UUID]int) error {
	if len(demand) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(demand))
	for id, needed := range demand {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id, "stock": bson.M{"$gte": needed}}).
			SetUpdate(bson.M{"$inc": bson.M{"stock": -needed}}))
	}

	result, err := r.collection.BulkWrite(ctx, models)
	if err != nil {
		return fmt.Errorf("cannot decrement stock: %w", err)
	}

	if result.MatchedCount != int64(len(demand)) {
		return ordering.ErrStockConflict
	}

	return nil
}
