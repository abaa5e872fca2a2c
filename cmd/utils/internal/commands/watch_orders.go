package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/appetiteclub/apt"

	"github.com/pizzaypunto/pizzeria/pkg"
	"github.com/pizzaypunto/pizzeria/pkg/event"
)

// WatchOrders tails the order-placed topic and prints each event as it
// arrives. Blocks until the context is cancelled.
func WatchOrders(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	natsURL, _ := config.GetString("nats.url")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}

	sub, err := pkg.NewNATSSubscriber(natsURL, logger)
	if err != nil {
		return err
	}
	defer sub.Close()

	err = sub.Subscribe(ctx, event.OrdersTopic, func(ctx context.Context, msg []byte) error {
		var evt event.OrderPlacedEvent
		if err := json.Unmarshal(msg, &evt); err != nil {
			return fmt.Errorf("decode event: %w", err)
		}

		fmt.Printf("[%s] order %s for customer %s: %.2f, courier %s (%s)\n",
			evt.OccurredAt.Format("15:04:05"), evt.OrderID, evt.CustomerID,
			evt.Total, evt.CourierName, evt.CourierZone)
		for _, line := range evt.Lines {
			fmt.Printf("  %dx %s (%s) @ %.2f\n", line.Quantity, line.Name, line.Category, line.Price)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Watching for placed orders, press Ctrl+C to stop", "topic", event.OrdersTopic)
	<-ctx.Done()
	return nil
}
