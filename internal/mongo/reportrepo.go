package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pizzaypunto/pizzeria/internal/reporting"
)

// ReportRepo answers the read-side aggregates straight from the catalog and
// the order ledger. Order lines keep their originating pizza ID, so usage
// reports expand them back to recipes with a lookup.
type ReportRepo struct {
	pizzas *mongo.Collection
	orders *mongo.Collection
}

func NewReportRepo(db *mongo.Database) *ReportRepo {
	return &ReportRepo{
		pizzas: db.Collection("pizzas"),
		orders: db.Collection("orders"),
	}
}

func (r *ReportRepo) TopIngredients(ctx context.Context, since time.Time, limit int) ([]reporting.IngredientUsage, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "created_at", Value: bson.D{{Key: "$gte", Value: since}}},
		}}},
		{{Key: "$unwind", Value: "$pizzas"}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "pizzas"},
			{Key: "localField", Value: "pizzas.pizza_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "pizza_data"},
		}}},
		{{Key: "$unwind", Value: "$pizza_data"}},
		{{Key: "$unwind", Value: "$pizza_data.ingredients"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$pizza_data.ingredients.ingredient_id"},
			{Key: "total_used", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$multiply", Value: bson.A{
					"$pizza_data.ingredients.quantity",
					"$pizzas.quantity",
				}},
			}}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "ingredients"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "ingredient"},
		}}},
		{{Key: "$unwind", Value: "$ingredient"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "ingredient", Value: "$ingredient.name"},
			{Key: "type", Value: "$ingredient.type"},
			{Key: "total_used", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total_used", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("cannot aggregate ingredient usage: %w", err)
	}
	defer cursor.Close(ctx)

	var result []reporting.IngredientUsage
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode ingredient usage: %w", err)
	}

	return result, nil
}

func (r *ReportRepo) AveragePriceByCategory(ctx context.Context) ([]reporting.CategoryAverage, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "average_price", Value: bson.D{{Key: "$avg", Value: "$price"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "category", Value: "$_id"},
			{Key: "average_price", Value: bson.D{
				{Key: "$round", Value: bson.A{"$average_price", 2}},
			}},
			{Key: "count", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "average_price", Value: -1}}}},
	}

	cursor, err := r.pizzas.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("cannot aggregate category averages: %w", err)
	}
	defer cursor.Close(ctx)

	var result []reporting.CategoryAverage
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode category averages: %w", err)
	}

	return result, nil
}

func (r *ReportRepo) BestSellingCategory(ctx context.Context) (*reporting.CategorySales, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$pizzas"}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "pizzas"},
			{Key: "localField", Value: "pizzas.pizza_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "pizza_data"},
		}}},
		{{Key: "$unwind", Value: "$pizza_data"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$pizza_data.category"},
			{Key: "total_sold", Value: bson.D{{Key: "$sum", Value: "$pizzas.quantity"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "category", Value: "$_id"},
			{Key: "total_sold", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total_sold", Value: -1}}}},
		{{Key: "$limit", Value: 1}},
	}

	cursor, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("cannot aggregate category sales: %w", err)
	}
	defer cursor.Close(ctx)

	var result []reporting.CategorySales
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode category sales: %w", err)
	}

	if len(result) == 0 {
		return nil, nil
	}
	return &result[0], nil
}
