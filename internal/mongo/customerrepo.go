package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pizzaypunto/pizzeria/internal/ordering"
)

type CustomerRepo struct {
	collection *mongo.Collection
}

func NewCustomerRepo(db *mongo.Database) *CustomerRepo {
	return &CustomerRepo{
		collection: db.Collection("customers"),
	}
}

func (r *CustomerRepo) Get(ctx context.Context, id uuid.UUID) (*ordering.Customer, error) {
	var customer ordering.Customer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&customer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get customer: %w", err)
	}
	return &customer, nil
}
