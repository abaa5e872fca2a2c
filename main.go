package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/middleware"

	"github.com/pizzaypunto/pizzeria/internal/mongo"
	"github.com/pizzaypunto/pizzeria/internal/ordering"
	"github.com/pizzaypunto/pizzeria/internal/reporting"
	"github.com/pizzaypunto/pizzeria/pkg"
)

const (
	appNamespace = "PIZZERIA"
	appName      = "pizzeria"
	appVersion   = "0.1.0"
)

func main() {
	config, err := apt.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup: %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := apt.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	baseRepo := mongo.NewBaseRepo(config, logger)
	err = baseRepo.Start(ctx)
	if err != nil {
		log.Fatalf("%s(%s) cannot start base repository: %v", appName, appVersion, err)
	}

	db := baseRepo.GetDatabase()
	if db == nil {
		log.Fatalf("%s(%s) cannot initialize repository database: %v", appName, appVersion, errors.New("repository database is nil"))
	}

	catalogRepo := mongo.NewCatalogRepo(db)
	inventoryRepo := mongo.NewInventoryRepo(db)
	courierRepo := mongo.NewCourierRepo(db)
	customerRepo := mongo.NewCustomerRepo(db)
	orderRepo := mongo.NewOrderRepo(db)
	reportRepo := mongo.NewReportRepo(db)

	for _, starter := range []interface {
		Start(ctx context.Context) error
	}{catalogRepo, inventoryRepo, courierRepo, orderRepo} {
		if err := starter.Start(ctx); err != nil {
			log.Fatalf("%s(%s) cannot ensure indexes: %v", appName, appVersion, err)
		}
	}

	txRunner := mongo.NewTxRunner(baseRepo.GetClient())

	engine := ordering.NewEngine(ordering.EngineDeps{
		Customers: customerRepo,
		Catalog:   catalogRepo,
		Inventory: inventoryRepo,
		Couriers:  courierRepo,
		Orders:    orderRepo,
		Tx:        txRunner,
	}, logger)

	natsURL, _ := config.GetString("nats.url")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}

	pub, err := pkg.NewNATSPublisher(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS publisher: %v", appName, appVersion, err)
	}

	publisherLifecycle := apt.LifecycleHooks{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	}

	orderingHandler := ordering.NewHandler(ordering.HandlerDeps{
		Engine:    engine,
		Catalog:   catalogRepo,
		Inventory: inventoryRepo,
		Couriers:  courierRepo,
		Customers: customerRepo,
		Orders:    orderRepo,
		Publisher: pub,
	}, config, logger)

	reportingService := reporting.NewService(reportRepo, logger)
	reportingHandler := reporting.NewHandler(reportingService, config, logger)

	// Setup bootstrap seeding if enabled
	seedEnabled, _ := config.GetString("seeding.demo")
	var seedHooks apt.LifecycleHooks
	if seedEnabled == "true" {
		logger.Info("Bootstrap seeding enabled")
		seedHooks = apt.LifecycleHooks{
			OnStart: ordering.SeedingFunc(appName, baseRepo.GetDatabase, logger),
		}
	}

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger:      logger,
		DisableCORS: true, // Internal API service
	})
	stack = append(stack, middleware.InternalOnly())

	lifecycles := []interface{}{
		apt.LifecycleHooks{OnStop: baseRepo.Stop},
		publisherLifecycle,
	}
	if seedEnabled == "true" {
		lifecycles = append(lifecycles, seedHooks)
	}

	options := []apt.Option{
		apt.WithConfig(config),
		apt.WithLogger(logger),
		apt.WithHTTPMiddleware(stack...),
		apt.WithHTTPServerModules("web.port", orderingHandler, reportingHandler),
		apt.WithLifecycle(lifecycles...),
		apt.WithHealthChecks(appName),
	}

	ms := apt.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	err = ms.Run(ctx)
	if err != nil {
		_ = baseRepo.Stop(context.Background())
		log.Fatalf("%s(%s) stopped: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}
