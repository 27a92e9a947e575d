package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry owned by exactly one seller.
type Product struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"sellerId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	PriceCents  int64     `json:"priceCents"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"isActive"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Price returns the unit price in currency units.
func (p Product) Price() decimal.Decimal {
	return decimal.New(p.PriceCents, -2)
}

// Validate checks the non-negative price and stock invariants.
func (p Product) Validate() error {
	if p.PriceCents < 0 {
		return Invalidf("price must not be negative")
	}
	if p.Stock < 0 {
		return Invalidf("stock must not be negative")
	}
	return nil
}

// CentsFromDecimal converts a currency amount to cents, rounding half away from zero.
func CentsFromDecimal(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
