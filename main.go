package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"kontak/internal/config"
	"kontak/internal/events"
	"kontak/internal/handlers"
	"kontak/internal/logging"
	"kontak/internal/repositories"
	"kontak/internal/services"
	"kontak/internal/validation"
	"kontak/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load(viper.New())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	if err := run(cfg, zl); err != nil {
		zl.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg config.Config, zl *zap.Logger) error {
	// --- Datastore ---
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// --- Events (optional) ---
	var publisher events.Publisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, zl)
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer mqClient.Close()

		if err := mqClient.Consume(events.AuditLog(zl)); err != nil {
			zl.Warn("Failed to start RabbitMQ consumer", zap.Error(err))
		}
		publisher = mqClient
	} else {
		zl.Info("RABBITMQ_URL is empty, events are disabled")
	}

	app := newApp(cfg, store, publisher, zl)

	// --- Start HTTP Server ---
	listenErr := make(chan error, 1)
	go func() {
		zl.Info("Starting server", zap.String("port", cfg.AppPort))
		listenErr <- app.Listen(cfg.AppPort)
	}()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	zl.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zl.Error("Error during Fiber shutdown", zap.Error(err))
	}
	zl.Info("Server gracefully stopped")
	return nil
}

// openStore opens the datastore selected by DB_DRIVER. The returned func
// releases it.
func openStore(cfg config.Config) (repositories.Store, func(), error) {
	if cfg.DBDriver == config.DriverMemory {
		return repositories.NewInMemoryStore(), func() {}, nil
	}

	db, err := repositories.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.Migrate(db); err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return repositories.NewGORMStore(db), closeDB, nil
}

// newApp assembles the services and the Fiber app on top of store.
// publisher may be nil.
func newApp(cfg config.Config, store repositories.Store, publisher events.Publisher, zl *zap.Logger) *fiber.App {
	validator := validation.New()
	hasher := services.NewBcryptHasher(cfg.BcryptCost)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(zl),
	})

	// --- Middleware ---
	app.Use(recover.New()) // Panics become 500 responses
	app.Use(logger.New())  // Request logger

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		_, err := store.Users().ExistsByUsername(ctx, "")
		if err != nil {
			zl.Warn("Health check failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		}
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": publisher != nil,
		})
	})

	// --- API Routes ---
	handlers.RegisterRoutes(app.Group("/api"), handlers.Services{
		Auth:      services.NewAuthService(store, hasher, validator, zl),
		Users:     services.NewUserService(store, hasher, validator, zl),
		Contacts:  services.NewContactService(store, validator, publisher, zl),
		Addresses: services.NewAddressService(store, validator, publisher, zl),
	}, zl)

	return app
}
