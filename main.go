package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/cache"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/payment"
	"storefront/internal/repositories"
	"storefront/internal/server"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"

	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	cfg := config.Load(viper.New())
	ctx := context.Background()

	// --- Initialize Repositories ---
	deps, err := openStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	if err := catalog.Seed(ctx, deps.Products); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	// --- Optional product cache ---
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Printf("Redis unavailable, serving catalog without cache: %v", err)
		} else {
			defer client.Close()
			deps.Cache = cache.NewRedisCache(client, cfg.CacheTTL)
		}
	}

	// --- Optional RabbitMQ publisher and consumer ---
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.OrderQueue})
		if err != nil {
			log.Printf("RabbitMQ unavailable, order events disabled: %v", err)
		} else {
			defer mqClient.Close()
			deps.Events = mqClient
			log.Println("Starting RabbitMQ consumer for orders...")
			if err := mqClient.ConsumeOrderEvents(services.HandleOrderCreated); err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}
	}

	// --- Optional payment provider ---
	if cfg.PaymentsEnabled() {
		deps.Payments = payment.NewStripeProvider(payment.StripeConfig{
			SecretKey: cfg.StripeSecretKey,
			Timeout:   cfg.PaymentTimeout,
		})
	} else {
		log.Println("STRIPE_SECRET_KEY not set; orders will be stored without payment")
	}

	app := server.NewApp(cfg, deps)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openStorage builds the repositories for the configured database driver.
func openStorage(cfg config.Config) (server.Deps, error) {
	switch cfg.DatabaseDriver {
	case "memory":
		return server.Deps{
			Products: repositories.NewMemoryProductRepository(),
			Orders:   repositories.NewMemoryOrderRepository(),
			Users:    repositories.NewMemoryUserRepository(),
		}, nil
	case "sqlite", "postgres":
		db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			return server.Deps{}, err
		}
		return server.Deps{
			Products: repositories.NewGORMProductRepository(db),
			Orders:   repositories.NewGORMOrderRepository(db),
			Users:    repositories.NewGORMUserRepository(db),
		}, nil
	default:
		return server.Deps{}, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}
