package handlers

import (
	"errors"
	"log"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors to a status code and a {message} body.
func respondError(c *fiber.Ctx, err error) error {
	var (
		validationErr *services.ValidationError
		duplicateErr  *services.DuplicateEmailError
		checkoutErr   *services.CheckoutError
	)
	switch {
	case errors.As(err, &checkoutErr):
		return message(c, fiber.StatusBadRequest, checkoutErr.Message)
	case errors.As(err, &validationErr):
		return message(c, fiber.StatusBadRequest, validationErr.Message)
	case errors.As(err, &duplicateErr):
		return message(c, fiber.StatusBadRequest, duplicateErr.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return message(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return message(c, fiber.StatusNotFound, "Not found")
	default:
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
		return message(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

func invalidBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body on %s: %v", c.Path(), err)
	return message(c, fiber.StatusBadRequest, "Invalid request body")
}
