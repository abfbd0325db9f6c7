package domain

import (
	"math"
	"time"
)

// maxPrice bounds prices to 10 integer digits (NUMERIC(12,2) in the schema).
const maxPrice = 1e10

// Product is the core catalog entity.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	Category      string    `json:"category"`
	StockQuantity int       `json:"stock_quantity"`
	Brand         string    `json:"brand,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidPrice reports whether p is positive, within 10 integer digits, and
// carries at most two decimal places.
func ValidPrice(p float64) bool {
	if p <= 0 || p >= maxPrice {
		return false
	}
	cents := p * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}

// ChangePrice sets a new price and refreshes the update timestamp.
func (p *Product) ChangePrice(newPrice float64) error {
	if !ValidPrice(newPrice) {
		return ErrInvalidPrice
	}
	p.Price = newPrice
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateStock replaces the stock quantity.
func (p *Product) UpdateStock(quantity int) error {
	if quantity < 0 {
		return ErrInvalidStock
	}
	p.StockQuantity = quantity
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// IncrementStock adds amount to the stock quantity.
func (p *Product) IncrementStock(amount int) error {
	if amount < 0 {
		return ErrInvalidStock
	}
	p.StockQuantity += amount
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// DecrementStock removes amount from the stock quantity. The quantity never
// goes below zero; over-decrementing is rejected.
func (p *Product) DecrementStock(amount int) error {
	if amount < 0 {
		return ErrInvalidStock
	}
	if p.StockQuantity < amount {
		return ErrInsufficientStock
	}
	p.StockQuantity -= amount
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// InStock reports whether any units remain.
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// LowStock reports whether the stock is at or below threshold.
func (p *Product) LowStock(threshold int) bool {
	return p.StockQuantity <= threshold
}
