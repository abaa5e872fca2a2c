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

type CatalogRepo struct {
	collection *mongo.Collection
}

func NewCatalogRepo(db *mongo.Database) *CatalogRepo {
	return &CatalogRepo{
		collection: db.Collection("pizzas"),
	}
}

func (r *CatalogRepo) Start(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("cannot create pizza name index: %w", err)
	}
	return nil
}

func (r *CatalogRepo) Get(ctx context.Context, id uuid.UUID) (*ordering.Pizza, error) {
	var pizza ordering.Pizza
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&pizza)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get pizza: %w", err)
	}
	return &pizza, nil
}

func (r *CatalogRepo) GetMany(ctx context.Context, ids []uuid.UUID) ([]*ordering.Pizza, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("cannot fetch pizzas: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*ordering.Pizza
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode pizzas: %w", err)
	}

	return result, nil
}

func (r *CatalogRepo) List(ctx context.Context) ([]*ordering.Pizza, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("cannot list pizzas: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*ordering.Pizza
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode pizzas: %w", err)
	}

	return result, nil
}
