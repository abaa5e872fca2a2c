package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/appetiteclub/apt"

	"github.com/pizzaypunto/pizzeria/cmd/utils/internal/commands"
)

const (
	appName    = "pizzeria-utils"
	appVersion = "0.1.0"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	config, err := apt.LoadConfig("UTILS", nil)
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	logLevel, _ := config.GetString("log.level")
	if logLevel == "" {
		logLevel = "info"
	}
	logger := apt.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := os.Args[1]

	switch command {
	case "seed":
		if err := commands.Seed(ctx, config, logger); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		logger.Info("Seeding completed successfully")

	case "reset-db":
		if err := commands.ResetDB(ctx, config, logger); err != nil {
			log.Fatalf("Database reset failed: %v", err)
		}
		logger.Info("Database reset completed successfully")

	case "place-order":
		if len(os.Args) < 4 {
			fmt.Println("Usage: place-order <customer-name> <pizza-name> [quantity]")
			os.Exit(1)
		}
		qty := 1
		if len(os.Args) > 4 {
			qty, err = strconv.Atoi(os.Args[4])
			if err != nil || qty <= 0 {
				fmt.Printf("Invalid quantity: %s\n", os.Args[4])
				os.Exit(1)
			}
		}
		if err := commands.PlaceOrder(ctx, config, logger, os.Args[2], os.Args[3], qty); err != nil {
			log.Fatalf("Order placement failed: %v", err)
		}

	case "top-ingredients":
		if err := commands.TopIngredients(ctx, config, logger); err != nil {
			log.Fatalf("Report failed: %v", err)
		}

	case "avg-price":
		if err := commands.AveragePriceByCategory(ctx, config, logger); err != nil {
			log.Fatalf("Report failed: %v", err)
		}

	case "watch-orders":
		if err := commands.WatchOrders(ctx, config, logger); err != nil {
			log.Fatalf("Watch failed: %v", err)
		}

	case "best-category":
		if err := commands.BestSellingCategory(ctx, config, logger); err != nil {
			log.Fatalf("Report failed: %v", err)
		}

	case "version":
		fmt.Printf("%s version %s\n", appName, appVersion)

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - Pizzeria utility commands

Usage:
  %s <command> [options]

Commands:
  seed             Apply bootstrap seeding (inventory, catalog, couriers, customers)
  reset-db         Drop the pizzeria database - USE WITH CAUTION
  place-order      Place a demo order: place-order <customer-name> <pizza-name> [quantity]
  top-ingredients  Report: most used ingredients over the last month
  avg-price        Report: average pizza price per category
  best-category    Report: best selling category across all orders
  watch-orders     Tail placed-order events from NATS
  version          Print version information
  help             Show this help message

Environment Variables:
  UTILS_MONGO_URL   MongoDB connection URL (default: mongodb://localhost:27017/?replicaSet=rs0)
  UTILS_MONGO_NAME  Database name (default: pizza_y_punto)
  UTILS_NATS_URL    NATS connection URL (default: nats://localhost:4222)
  UTILS_LOG_LEVEL   Log level: debug, info, warn, error (default: info)

Examples:
  %s seed
  %s place-order Carlos Margarita 2
  %s top-ingredients
`, appName, appName, appName, appName, appName)
}
