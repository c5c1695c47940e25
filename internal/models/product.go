package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item. Products are seeded once and never
// mutated through the API.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Slug        string          `json:"slug" gorm:"uniqueIndex;type:varchar(120)"`
	Name        string          `json:"name"`
	Subtitle    string          `json:"subtitle"`
	Description string          `json:"description"`
	Category    string          `json:"category" gorm:"index"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Image       string          `json:"image"`
	Colors      []string        `json:"colors" gorm:"serializer:json"`
	Sizes       []string        `json:"sizes" gorm:"serializer:json"`
	CreatedAt   time.Time       `json:"-"`
}
