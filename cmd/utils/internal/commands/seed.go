package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/seed"

	"github.com/pizzaypunto/pizzeria/internal/ordering"
)

// Seed applies the bootstrap seeds: inventory, catalog, couriers, customers.
func Seed(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	logger.Info("Starting seeding process...")

	client, db, err := connect(ctx, config)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	logger.Info("Connected to MongoDB")

	tracker := seed.NewMongoTracker(db)
	if err := seed.Apply(ctx, tracker, ordering.Seeds(db), "pizzeria"); err != nil {
		return fmt.Errorf("apply seeds: %w", err)
	}

	return nil
}
