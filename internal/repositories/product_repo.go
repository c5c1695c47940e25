package repositories

import (
	"context"

	"storefront/internal/models"
)

// ProductRepository defines read access to the catalog. Create exists only
// for seeding; the API never mutates products.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Count(ctx context.Context) (int64, error)
}
