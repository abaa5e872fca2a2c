package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"

	mongorepo "github.com/pizzaypunto/pizzeria/internal/mongo"
	"github.com/pizzaypunto/pizzeria/internal/ordering"
)

// PlaceOrder places a demo order for a seeded customer and pizza, looked up
// by name, through the real placement engine.
func PlaceOrder(ctx context.Context, config *apt.Config, logger apt.Logger, customerName, pizzaName string, quantity int) error {
	client, db, err := connect(ctx, config)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	var customer ordering.Customer
	if err := db.Collection("customers").FindOne(ctx, bson.M{"name": customerName}).Decode(&customer); err != nil {
		return fmt.Errorf("find customer %s: %w", customerName, err)
	}

	var pizza ordering.Pizza
	if err := db.Collection("pizzas").FindOne(ctx, bson.M{"name": pizzaName}).Decode(&pizza); err != nil {
		return fmt.Errorf("find pizza %s: %w", pizzaName, err)
	}

	engine := ordering.NewEngine(ordering.EngineDeps{
		Customers: mongorepo.NewCustomerRepo(db),
		Catalog:   mongorepo.NewCatalogRepo(db),
		Inventory: mongorepo.NewInventoryRepo(db),
		Couriers:  mongorepo.NewCourierRepo(db),
		Orders:    mongorepo.NewOrderRepo(db),
		Tx:        mongorepo.NewTxRunner(client),
	}, logger)

	result, err := engine.PlaceOrder(ctx, customer.ID, []ordering.LineRequest{
		{PizzaID: pizza.ID, Quantity: quantity},
	})
	if err != nil {
		return err
	}

	if !result.Success {
		fmt.Printf("Order rejected: %s (%s)\n", result.Failure.Message, result.Failure.Reason)
		return nil
	}

	fmt.Printf("Order placed: %s\n", result.OrderID)
	fmt.Printf("  Courier: %s (%s)\n", result.Courier.Name, result.Courier.Zone)
	fmt.Printf("  Total:   %.2f\n", result.Total)
	return nil
}
