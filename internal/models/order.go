package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address is the shipping destination of an order.
type Address struct {
	FullName   string `json:"fullName" validate:"required"`
	Line1      string `json:"line1" validate:"required"`
	City       string `json:"city" validate:"required"`
	Country    string `json:"country" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
}

// OrderItem represents a single line within an order.
type OrderItem struct {
	ID        uint            `json:"-" gorm:"primaryKey"`
	OrderID   string          `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string          `json:"id" gorm:"type:varchar(36)"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" gorm:"type:decimal(10,2)"` // Catalog price at the time of order
	LineTotal decimal.Decimal `json:"lineTotal" gorm:"type:decimal(12,2)"`
}

// Order represents a priced customer order. Orders are append-only.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email           string          `json:"email" gorm:"index;type:varchar(255)"`
	ShippingAddress *Address        `json:"address,omitempty" gorm:"embedded;embeddedPrefix:ship_"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Total           decimal.Decimal `json:"total" gorm:"type:decimal(12,2)"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// OrderCreatedEvent is published once an order has been stored.
type OrderCreatedEvent struct {
	OrderID   string          `json:"orderId"`
	Email     string          `json:"email"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
	CreatedAt time.Time       `json:"createdAt"`
}
