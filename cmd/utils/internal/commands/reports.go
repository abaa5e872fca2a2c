package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"

	mongorepo "github.com/pizzaypunto/pizzeria/internal/mongo"
	"github.com/pizzaypunto/pizzeria/internal/reporting"
)

// TopIngredients prints the most used ingredients over the default window.
func TopIngredients(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	client, db, err := connect(ctx, config)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	service := reporting.NewService(mongorepo.NewReportRepo(db), logger)
	usages, err := service.TopIngredients(ctx, 0, 0)
	if err != nil {
		return err
	}

	if len(usages) == 0 {
		fmt.Println("No ingredient usage recorded yet")
		return nil
	}

	fmt.Printf("%-20s %-10s %s\n", "INGREDIENT", "TYPE", "TOTAL USED")
	for _, usage := range usages {
		fmt.Printf("%-20s %-10s %d\n", usage.Ingredient, usage.Type, usage.TotalUsed)
	}
	return nil
}

// AveragePriceByCategory prints the average catalog price per category.
func AveragePriceByCategory(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	client, db, err := connect(ctx, config)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	service := reporting.NewService(mongorepo.NewReportRepo(db), logger)
	averages, err := service.AveragePriceByCategory(ctx)
	if err != nil {
		return err
	}

	if len(averages) == 0 {
		fmt.Println("Catalog is empty")
		return nil
	}

	fmt.Printf("%-15s %-15s %s\n", "CATEGORY", "AVG PRICE", "PIZZAS")
	for _, avg := range averages {
		fmt.Printf("%-15s %-15.2f %d\n", avg.Category, avg.AveragePrice, avg.Count)
	}
	return nil
}

// BestSellingCategory prints the category with the most pizzas sold.
func BestSellingCategory(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	client, db, err := connect(ctx, config)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	service := reporting.NewService(mongorepo.NewReportRepo(db), logger)
	sales, err := service.BestSellingCategory(ctx)
	if err != nil {
		return err
	}

	if sales == nil {
		fmt.Println("No sales recorded yet")
		return nil
	}

	fmt.Printf("Best selling category: %s (%d pizzas sold)\n", sales.Category, sales.TotalSold)
	return nil
}
