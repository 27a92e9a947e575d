// Package pricing computes cart totals and seller-scoped order totals.
//
// Amounts are accumulated unrounded with decimal arithmetic; rounding to
// cents happens only in Rounded and the *Cents helpers.
package pricing

import (
	"github.com/shopspring/decimal"

	"handcrafted-haven/internal/domain"
)

// Config holds the checkout constants.
type Config struct {
	// FreeShippingThreshold: shipping is free when the subtotal is strictly above it.
	FreeShippingThreshold decimal.Decimal
	FlatShipping          decimal.Decimal
	TaxRate               decimal.Decimal
}

func DefaultConfig() Config {
	return Config{
		FreeShippingThreshold: decimal.NewFromInt(100),
		FlatShipping:          decimal.NewFromInt(15),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Rounded returns every field rounded to two decimal places.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal: t.Subtotal.Round(2),
		Shipping: t.Shipping.Round(2),
		Tax:      t.Tax.Round(2),
		Total:    t.Total.Round(2),
	}
}

// CartTotals prices lines under cfg. A line with quantity below one or a
// negative price is rejected; callers drop non-positive quantities first.
func CartTotals(lines []domain.CartLine, cfg Config) (Totals, error) {
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity < 1 {
			return Totals{}, domain.Invalidf("quantity for product %s must be at least 1, got %d", line.Product.ID, line.Quantity)
		}
		if line.Product.PriceCents < 0 {
			return Totals{}, domain.Invalidf("price for product %s must not be negative", line.Product.ID)
		}
		subtotal = subtotal.Add(line.Product.Price().Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return totalsFor(subtotal, cfg), nil
}

func totalsFor(subtotal decimal.Decimal, cfg Config) Totals {
	shipping := cfg.FlatShipping
	if subtotal.GreaterThan(cfg.FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(cfg.TaxRate)
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

// ApplyTo stamps rounded totals onto an order being created.
func (t Totals) ApplyTo(o *domain.Order) {
	r := t.Rounded()
	o.SubtotalCents = domain.CentsFromDecimal(r.Subtotal)
	o.ShippingCents = domain.CentsFromDecimal(r.Shipping)
	o.TaxCents = domain.CentsFromDecimal(r.Tax)
	o.TotalCents = o.SubtotalCents + o.ShippingCents + o.TaxCents
}
