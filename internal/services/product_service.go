package services

import (
	"context"
	"errors"
	"log"

	"storefront/internal/cache"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

const allProductsKey = "all"

// ProductService handles read-only catalog queries. When a cache is set,
// lookups read through it; cache failures fall back to the repository.
type ProductService struct {
	repo  repositories.ProductRepository
	cache cache.ProductCache
}

// NewProductService creates a new ProductService. productCache may be nil.
func NewProductService(repo repositories.ProductRepository, productCache cache.ProductCache) *ProductService {
	return &ProductService{
		repo:  repo,
		cache: productCache,
	}
}

// ListProducts retrieves all products.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		products, err := s.cache.GetProducts(ctx, allProductsKey)
		if err == nil {
			return products, nil
		}
		s.logCacheError("read", allProductsKey, err)
	}

	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.logCacheError("write", allProductsKey, s.cache.SetProducts(ctx, allProductsKey, products))
	}
	return products, nil
}

// GetProductBySlug retrieves a single product by its slug.
func (s *ProductService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return s.cachedProduct(ctx, "slug:"+slug, func() (*models.Product, error) {
		return s.repo.GetBySlug(ctx, slug)
	})
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.cachedProduct(ctx, "id:"+id, func() (*models.Product, error) {
		return s.repo.GetByID(ctx, id)
	})
}

func (s *ProductService) cachedProduct(ctx context.Context, key string, load func() (*models.Product, error)) (*models.Product, error) {
	if s.cache != nil {
		product, err := s.cache.GetProduct(ctx, key)
		if err == nil {
			return product, nil
		}
		s.logCacheError("read", key, err)
	}

	product, err := load()
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.logCacheError("write", key, s.cache.SetProduct(ctx, key, product))
	}
	return product, nil
}

func (s *ProductService) logCacheError(op, key string, err error) {
	if err == nil || errors.Is(err, cache.ErrCacheMiss) {
		return
	}
	log.Printf("Catalog cache %s failed for %s: %v", op, key, err)
}
