package services

import (
	"errors"
	"fmt"

	"storefront/internal/repositories"
)

var (
	// ErrNotFound is returned when a product, order or user does not exist.
	ErrNotFound = repositories.ErrNotFound
	// ErrInvalidCredentials is returned by Login for any authentication failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports missing or malformed input. Message is safe to
// show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// DuplicateEmailError is returned when registering an email that already exists.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("email '%s' already registered", e.Email)
}

// CheckoutError wraps an order or payment failure during checkout. Message
// is the underlying validator or provider message, unchanged.
type CheckoutError struct {
	Message string
	Err     error
}

func (e *CheckoutError) Error() string { return e.Message }

func (e *CheckoutError) Unwrap() error { return e.Err }
