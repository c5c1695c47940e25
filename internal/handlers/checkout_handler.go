package handlers

import (
	"log"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles cart submission.
type CheckoutHandler struct {
	service *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// RegisterRoutes registers the checkout route.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)
}

// HandleCheckout creates the order and, if payments are enabled, a payment
// intent. The response carries either clientSecret or message.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	var input services.CheckoutInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}

	result, err := h.service.Checkout(c.UserContext(), input)
	if err != nil {
		log.Printf("Checkout failed for %s: %v", input.Email, err)
		return respondError(c, err)
	}

	if result.ClientSecret != "" {
		return c.JSON(fiber.Map{
			"order":        result.Order,
			"clientSecret": result.ClientSecret,
		})
	}
	return c.JSON(fiber.Map{
		"order":   result.Order,
		"message": result.Message,
	})
}
