package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/telemetry"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventPublisher publishes order lifecycle events.
type EventPublisher interface {
	PublishOrderCreated(payload any) error
}

// LineItemInput is one requested (product, quantity) pair. Client-sent
// prices are not part of the input.
type LineItemInput struct {
	ProductID string `json:"id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// OrderInput is the data needed to create an order. Address is optional
// here; when given, every field is required.
type OrderInput struct {
	Email   string          `json:"email" validate:"required,email"`
	Address *models.Address `json:"address" validate:"omitempty"`
	Items   []LineItemInput `json:"items" validate:"required,min=1,dive"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
	validate    *validator.Validate
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
		validate:    newValidator(),
	}
}

// ListOrders retrieves all orders, oldest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

// GetOrder retrieves a single order by its ID.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// CreateOrder validates the input, prices every line from the catalog and
// appends the order. Nothing is stored unless every check passes.
func (s *OrderService) CreateOrder(ctx context.Context, input OrderInput) (*models.Order, error) {
	input.Email = strings.TrimSpace(input.Email)
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	total := decimal.Zero
	for _, item := range input.Items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, &ValidationError{Message: fmt.Sprintf("product %s not found", item.ProductID)}
			}
			return nil, fmt.Errorf("failed to price product %s: %w", item.ProductID, err)
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			LineTotal: lineTotal,
		})
		total = total.Add(lineTotal)
	}

	newOrder := &models.Order{
		ID:              uuid.New().String(),
		Email:           input.Email,
		ShippingAddress: input.Address,
		Items:           items,
		Total:           total,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.orderRepo.Create(ctx, newOrder); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}
	telemetry.OrdersCreated.Inc()

	s.publishCreated(newOrder)
	return newOrder, nil
}

// publishCreated never fails the order; the order is already stored.
func (s *OrderService) publishCreated(order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := models.OrderCreatedEvent{
		OrderID:   order.ID,
		Email:     order.Email,
		Total:     order.Total,
		ItemCount: len(order.Items),
		CreatedAt: order.CreatedAt,
	}
	if err := s.publisher.PublishOrderCreated(event); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
	}
}
