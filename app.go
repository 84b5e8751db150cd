package main

import (
	"fmt"
	"log"
	"time"

	"omareats/internal/config"
	"omareats/internal/handlers"
	"omareats/internal/middleware"
	"omareats/internal/repositories"
	"omareats/internal/services"
	"omareats/pkg/orderclient"
	"omareats/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// App wires the storefront's services to a Fiber application.
type App struct {
	Fiber    *fiber.App
	Cart     *services.CartService
	Checkout *services.CheckoutService
	Orders   *services.OrderService
	Auth     *services.AuthService

	cartHandler *handlers.CartHandler
	mqClient    *rabbitmq.Client
	closers     []func() error
}

// NewApp builds the database, cart storage, messaging and HTTP layers from cfg.
func NewApp(cfg config.Config) (*App, error) {
	a := &App{}

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, sqlDB.Close)
	}
	if err := repositories.AutoMigrate(db); err != nil {
		a.Close()
		return nil, err
	}

	cartStorage, err := a.newCartStorage(cfg, db)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Order events are optional; the storefront keeps working without a broker.
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
		if err != nil {
			log.Printf("RabbitMQ unavailable, order events disabled: %v", err)
		} else {
			a.mqClient = mqClient
			a.closers = append(a.closers, mqClient.Close)
			publisher = mqClient
		}
	}

	// --- Repositories ---
	productRepo := repositories.NewCatalogRepository(repositories.DefaultMenu)
	orderRepo := repositories.NewGORMOrderRepository(db)
	staffRepo := repositories.NewGORMStaffRepository(db)

	// --- Services ---
	cartStore := services.NewCartStore(cartStorage, cfg.CartStorageKey)
	a.Cart = services.NewCartService(cartStore, productRepo)
	orderClient := orderclient.NewClient(orderclient.Config{Endpoint: cfg.OrderEndpoint, Timeout: cfg.OrderTimeout})
	a.Checkout = services.NewCheckoutService(a.Cart, orderClient)
	a.Orders = services.NewOrderService(orderRepo, publisher)
	a.Auth = services.NewAuthService(staffRepo, cfg.JWTSecret)
	productService := services.NewProductService(productRepo)

	if cfg.StaffPassword != "" {
		if err := a.Auth.EnsureStaffUser(cfg.StaffUsername, cfg.StaffEmail, cfg.StaffPassword); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to register staff user: %w", err)
		}
	} else {
		log.Println("STAFF_PASSWORD not set. Staff order routes have no bootstrap account.")
	}

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	a.cartHandler = handlers.NewCartHandler(a.Cart, a.Checkout)
	orderHandler := handlers.NewOrderHandler(a.Orders)
	authHandler := handlers.NewAuthHandler(a.Auth)

	app := fiber.New(fiber.Config{AppName: "omareats"})
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"cart":     cfg.CartBackend,
			"rabbitmq": a.mqClient != nil,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)
	a.cartHandler.RegisterRoutes(api)
	orderHandler.RegisterPublicRoutes(api)
	authHandler.RegisterRoutes(api)

	staffOrders := api.Group("/orders", middleware.AuthRequired(a.Auth))
	orderHandler.RegisterRoutes(staffOrders)

	a.Fiber = app
	return a, nil
}

// StartKitchenConsumer prints every received order as a kitchen ticket.
// It is a no-op when no broker is configured.
func (a *App) StartKitchenConsumer() error {
	if a.mqClient == nil {
		return nil
	}
	return a.mqClient.ConsumeOrderEvents(func(msg amqp.Delivery) error {
		return services.HandleKitchenTicket(msg.Body)
	})
}

// Shutdown ends open cart event streams and stops the HTTP server, waiting
// at most timeout for in-flight requests.
func (a *App) Shutdown(timeout time.Duration) error {
	a.cartHandler.CloseStreams()
	return a.Fiber.ShutdownWithTimeout(timeout)
}

// Close releases the broker connection, the Redis client and the database.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}
	a.closers = nil
}

func openDatabase(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case config.BackendPostgres:
		dialector = postgres.Open(cfg.DatabaseDSN)
	default:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (a *App) newCartStorage(cfg config.Config, db *gorm.DB) (repositories.CartStorage, error) {
	switch cfg.CartBackend {
	case config.BackendMemory:
		return repositories.NewMemoryCartStorage(), nil
	case config.BackendSQLite, config.BackendPostgres:
		return repositories.NewGORMCartStorage(db), nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		a.closers = append(a.closers, client.Close)
		return repositories.NewRedisCartStorage(client, cfg.CartTTL), nil
	}
	return nil, fmt.Errorf("unknown cart backend %q", cfg.CartBackend)
}
