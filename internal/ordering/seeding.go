package ordering

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/seed"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Seeds returns the bootstrap seeds for the pizzeria: base inventory,
// catalog, courier roster, and customer directory. All upserts key on the
// natural name so reruns are no-ops.
func Seeds(db *mongo.Database) []seed.Seed {
	return []seed.Seed{
		{
			ID:          "2026-08-10_base_inventory",
			Description: "Seed the base ingredient inventory",
			Run: func(ctx context.Context) error {
				return seedInventory(ctx, db)
			},
		},
		{
			ID:          "2026-08-10_pizza_catalog",
			Description: "Seed the pizza catalog with recipes",
			Run: func(ctx context.Context) error {
				return seedCatalog(ctx, db)
			},
		},
		{
			ID:          "2026-08-10_courier_roster",
			Description: "Seed the delivery courier roster",
			Run: func(ctx context.Context) error {
				return seedCouriers(ctx, db)
			},
		},
		{
			ID:          "2026-08-10_customers",
			Description: "Seed the customer directory",
			Run: func(ctx context.Context) error {
				return seedCustomers(ctx, db)
			},
		},
	}
}

func seedInventory(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection("ingredients")

	ingredients := []*Ingredient{
		NewIngredient("Mozzarella", "cheese", 200),
		NewIngredient("Tomato Sauce", "sauce", 200),
		NewIngredient("Pepperoni", "topping", 150),
		NewIngredient("Mushrooms", "topping", 100),
		NewIngredient("Basil", "topping", 80),
	}

	for _, ing := range ingredients {
		filter := bson.M{"name": ing.Name}
		update := bson.M{"$setOnInsert": ing}
		if _, err := collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return fmt.Errorf("seed ingredient %s: %w", ing.Name, err)
		}
	}

	return nil
}

func seedCatalog(ctx context.Context, db *mongo.Database) error {
	ingredients := db.Collection("ingredients")
	pizzas := db.Collection("pizzas")

	findIngredient := func(name string) (*Ingredient, error) {
		var ing Ingredient
		if err := ingredients.FindOne(ctx, bson.M{"name": name}).Decode(&ing); err != nil {
			return nil, fmt.Errorf("find ingredient %s: %w", name, err)
		}
		return &ing, nil
	}

	mozzarella, err := findIngredient("Mozzarella")
	if err != nil {
		return err
	}
	sauce, err := findIngredient("Tomato Sauce")
	if err != nil {
		return err
	}
	pepperoni, err := findIngredient("Pepperoni")
	if err != nil {
		return err
	}
	mushrooms, err := findIngredient("Mushrooms")
	if err != nil {
		return err
	}
	basil, err := findIngredient("Basil")
	if err != nil {
		return err
	}

	catalog := []*Pizza{
		NewPizza("Margarita", "tradicional", 20000, []RecipeLine{
			{IngredientID: mozzarella.ID, Quantity: 2},
			{IngredientID: sauce.ID, Quantity: 1},
			{IngredientID: basil.ID, Quantity: 1},
		}),
		NewPizza("Pepperoni", "especial", 26000, []RecipeLine{
			{IngredientID: mozzarella.ID, Quantity: 2},
			{IngredientID: sauce.ID, Quantity: 1},
			{IngredientID: pepperoni.ID, Quantity: 3},
		}),
		NewPizza("Mushroom Deluxe", "especial", 25000, []RecipeLine{
			{IngredientID: mozzarella.ID, Quantity: 2},
			{IngredientID: sauce.ID, Quantity: 1},
			{IngredientID: mushrooms.ID, Quantity: 2},
		}),
	}

	for _, pizza := range catalog {
		filter := bson.M{"name": pizza.Name}
		update := bson.M{"$setOnInsert": pizza}
		if _, err := pizzas.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return fmt.Errorf("seed pizza %s: %w", pizza.Name, err)
		}
	}

	return nil
}

func seedCouriers(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection("couriers")

	couriers := []*Courier{
		NewCourier("Juan", "Norte"),
		NewCourier("Luis", "Centro"),
		NewCourier("Ana", "Sur"),
	}

	for _, courier := range couriers {
		filter := bson.M{"name": courier.Name}
		update := bson.M{"$setOnInsert": courier}
		if _, err := collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return fmt.Errorf("seed courier %s: %w", courier.Name, err)
		}
	}

	return nil
}

func seedCustomers(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection("customers")

	customers := []*Customer{
		NewCustomer("Carlos", "300111222", "Calle 1 #2-3"),
		NewCustomer("María", "300333444", "Calle 2 #4-5"),
	}

	for _, customer := range customers {
		filter := bson.M{"name": customer.Name}
		update := bson.M{"$setOnInsert": customer}
		if _, err := collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return fmt.Errorf("seed customer %s: %w", customer.Name, err)
		}
	}

	return nil
}

// SeedingFunc returns a function for running seeds during service startup
func SeedingFunc(appName string, dbFn func() *mongo.Database, logger apt.Logger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		logger.Info("Applying pizzeria database seeds...")
		db := dbFn()
		tracker := seed.NewMongoTracker(db)
		seeds := Seeds(db)
		if err := seed.Apply(ctx, tracker, seeds, appName); err != nil {
			return fmt.Errorf("apply seeds: %w", err)
		}
		logger.Info("Pizzeria database seeds applied successfully")
		return nil
	}
}
