package cache

import (
	"context"
	"errors"

	"storefront/internal/models"
)

// ProductCache stores catalog lookups keyed by an opaque string.
type ProductCache interface {
	GetProduct(ctx context.Context, key string) (*models.Product, error)
	SetProduct(ctx context.Context, key string, product *models.Product) error
	GetProducts(ctx context.Context, key string) ([]models.Product, error)
	SetProducts(ctx context.Context, key string, products []models.Product) error
}

// ErrCacheMiss is returned when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")
