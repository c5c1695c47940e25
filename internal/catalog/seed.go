// Package catalog holds the storefront's product catalog of record.
package catalog

import (
	"context"
	"fmt"
	"log"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
)

// DefaultProducts returns the products the store ships with.
func DefaultProducts() []models.Product {
	return []models.Product{
		{
			ID:          "p1",
			Slug:        "basic-tee",
			Name:        "Basic Tee",
			Subtitle:    "Heavyweight cotton",
			Description: "A boxy tee in 240gsm organic cotton.",
			Category:    "apparel",
			Price:       decimal.RequireFromString("25.00"),
			Image:       "/images/basic-tee.jpg",
			Colors:      []string{"black", "white", "heather"},
			Sizes:       []string{"XS", "S", "M", "L", "XL"},
		},
		{
			ID:          "p2",
			Slug:        "canvas-tote",
			Name:        "Canvas Tote",
			Subtitle:    "Everyday carry",
			Description: "Undyed canvas tote with an inside pocket.",
			Category:    "accessories",
			Price:       decimal.RequireFromString("18.00"),
			Image:       "/images/canvas-tote.jpg",
			Colors:      []string{"natural"},
			Sizes:       []string{"one-size"},
		},
		{
			ID:          "p3",
			Slug:        "zip-hoodie",
			Name:        "Zip Hoodie",
			Subtitle:    "Brushed fleece",
			Description: "Full-zip hoodie with a brushed fleece lining.",
			Category:    "apparel",
			Price:       decimal.RequireFromString("64.50"),
			Image:       "/images/zip-hoodie.jpg",
			Colors:      []string{"charcoal", "navy"},
			Sizes:       []string{"S", "M", "L", "XL"},
		},
		{
			ID:          "p4",
			Slug:        "wool-beanie",
			Name:        "Wool Beanie",
			Subtitle:    "Merino rib knit",
			Description: "Fine merino beanie with a folded cuff.",
			Category:    "accessories",
			Price:       decimal.RequireFromString("22.00"),
			Image:       "/images/wool-beanie.jpg",
			Colors:      []string{"rust", "forest", "black"},
			Sizes:       []string{"one-size"},
		},
	}
}

// Seed stores the default products when the repository is empty.
func Seed(ctx context.Context, repo repositories.ProductRepository) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	products := DefaultProducts()
	for i := range products {
		if err := repo.Create(ctx, &products[i]); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].Slug, err)
		}
		log.Printf("Seeded product: %s (ID: %s)", products[i].Name, products[i].ID)
	}
	return nil
}
