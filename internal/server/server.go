// Package server assembles the storefront HTTP application.
package server

import (
	"time"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/payment"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/internal/telemetry"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the application is built from. Cache,
// Payments and Events are optional and may be left nil.
type Deps struct {
	Products repositories.ProductRepository
	Orders   repositories.OrderRepository
	Users    repositories.UserRepository
	Cache    cache.ProductCache
	Payments payment.Provider
	Events   services.EventPublisher
}

// NewApp wires services and handlers into a fiber app.
func NewApp(cfg config.Config, deps Deps) *fiber.App {
	productService := services.NewProductService(deps.Products, deps.Cache)
	orderService := services.NewOrderService(deps.Orders, deps.Products, deps.Events)
	checkoutService := services.NewCheckoutService(orderService, deps.Payments, cfg.PaymentCurrency)
	authService := services.NewAuthService(deps.Users, cfg.JWTSecret, cfg.TokenTTL)

	app := fiber.New(fiber.Config{AppName: "storefront"})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(telemetry.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"payments": deps.Payments != nil,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.NewProductHandler(productService).RegisterRoutes(app)
	handlers.NewOrderHandler(orderService).RegisterRoutes(app)
	handlers.NewCheckoutHandler(checkoutService).RegisterRoutes(app)
	handlers.NewAuthHandler(authService).RegisterRoutes(app)

	return app
}
