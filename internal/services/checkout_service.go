package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"storefront/internal/models"
	"storefront/internal/payment"
	"storefront/internal/telemetry"

	"github.com/go-playground/validator/v10"
)

// PaymentNotConfiguredMessage is returned with the order when checkout runs
// without a payment provider.
const PaymentNotConfiguredMessage = "Payment provider not configured; order stored locally."

// CheckoutInput is the checkout request. Unlike OrderInput the shipping
// address is mandatory.
type CheckoutInput struct {
	Email   string          `json:"email" validate:"required,email"`
	Address models.Address  `json:"address"`
	Items   []LineItemInput `json:"items" validate:"required,min=1,dive"`
}

// CheckoutResult holds the created order and either a client secret for
// the payment intent or a message explaining that payment was skipped.
type CheckoutResult struct {
	Order        *models.Order
	ClientSecret string
	Message      string
}

// CheckoutService creates an order and, when a provider is configured, a
// payment intent for its total. Nothing is retried. A resubmitted request
// creates a second order.
type CheckoutService struct {
	orders   *OrderService
	provider payment.Provider
	currency string
	validate *validator.Validate
}

// NewCheckoutService creates a new CheckoutService. provider may be nil.
func NewCheckoutService(orders *OrderService, provider payment.Provider, currency string) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		provider: provider,
		currency: currency,
		validate: newValidator(),
	}
}

// Checkout runs order creation followed by payment intent creation.
func (s *CheckoutService) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	input.Email = strings.TrimSpace(input.Email)
	if err := validateInput(s.validate, input); err != nil {
		telemetry.CheckoutOutcomes.WithLabelValues("invalid").Inc()
		return nil, &CheckoutError{Message: err.Error(), Err: err}
	}

	address := input.Address
	order, err := s.orders.CreateOrder(ctx, OrderInput{
		Email:   input.Email,
		Address: &address,
		Items:   input.Items,
	})
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			telemetry.CheckoutOutcomes.WithLabelValues("invalid").Inc()
			return nil, &CheckoutError{Message: verr.Message, Err: err}
		}
		return nil, err
	}

	if s.provider == nil {
		telemetry.CheckoutOutcomes.WithLabelValues("stored_locally").Inc()
		return &CheckoutResult{Order: order, Message: PaymentNotConfiguredMessage}, nil
	}

	intent, err := s.provider.CreateIntent(ctx, payment.IntentRequest{
		Amount:   payment.ToMinorUnits(order.Total, s.currency),
		Currency: s.currency,
		Email:    order.Email,
		OrderID:  order.ID,
	})
	if err != nil {
		log.Printf("Payment intent for order %s failed: %v", order.ID, err)
		telemetry.CheckoutOutcomes.WithLabelValues("payment_failed").Inc()
		return nil, &CheckoutError{Message: err.Error(), Err: err}
	}

	telemetry.CheckoutOutcomes.WithLabelValues("paid").Inc()
	return &CheckoutResult{Order: order, ClientSecret: intent.ClientSecret}, nil
}
