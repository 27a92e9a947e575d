package catalog

import (
	"github.com/shopspring/decimal"

	"handcrafted-haven/internal/domain"
)

var (
	// DefaultPriceBound keeps the slider usable when the catalog is empty.
	DefaultPriceBound = decimal.NewFromInt(1000)

	step    = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Bounds is an inclusive price interval in currency units.
type Bounds struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

func (b Bounds) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(b.Min) && price.LessThanOrEqual(b.Max)
}

// MaxObservedPrice is the highest price in products, DefaultPriceBound for an
// empty collection, and never less than one unit.
func MaxObservedPrice(products []domain.Product) decimal.Decimal {
	if len(products) == 0 {
		return DefaultPriceBound
	}
	var maxCents int64
	for _, p := range products {
		maxCents = max(maxCents, p.PriceCents)
	}
	return decimal.Max(decimal.New(maxCents, -2), step)
}

// PriceRange is the two-handle price filter.
//
// Drag moves keep low < high with a one unit gap. Typed input only keeps
// low <= high. Both paths clamp the incoming value into [0, bound] first.
type PriceRange struct {
	low   decimal.Decimal
	high  decimal.Decimal
	bound decimal.Decimal
}

// NewPriceRange spans [0, MaxObservedPrice(products)].
func NewPriceRange(products []domain.Product) *PriceRange {
	r := &PriceRange{}
	r.Rebase(products)
	return r
}

// Rebase recomputes the bound for a new base collection and resets both handles.
func (r *PriceRange) Rebase(products []domain.Product) {
	r.bound = MaxObservedPrice(products)
	r.low = decimal.Zero
	r.high = r.bound
}

func (r *PriceRange) Low() decimal.Decimal   { return r.low }
func (r *PriceRange) High() decimal.Decimal  { return r.high }
func (r *PriceRange) Bound() decimal.Decimal { return r.bound }

// Bounds returns the current handles as a filter interval.
func (r *PriceRange) Bounds() Bounds {
	return Bounds{Min: r.low, Max: r.high}
}

func (r *PriceRange) DragLow(v decimal.Decimal) {
	r.low = decimal.Min(r.clamp(v), r.high.Sub(step))
}

func (r *PriceRange) DragHigh(v decimal.Decimal) {
	r.high = decimal.Max(r.clamp(v), r.low.Add(step))
}

func (r *PriceRange) InputLow(v decimal.Decimal) {
	r.low = decimal.Min(r.clamp(v), r.high)
}

func (r *PriceRange) InputHigh(v decimal.Decimal) {
	r.high = decimal.Max(r.clamp(v), r.low)
}

// MinPercent and MaxPercent place the handles on a 0-100 track.
func (r *PriceRange) MinPercent() float64 {
	return r.low.Div(r.bound).Mul(hundred).InexactFloat64()
}

func (r *PriceRange) MaxPercent() float64 {
	return r.high.Div(r.bound).Mul(hundred).InexactFloat64()
}

func (r *PriceRange) clamp(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(r.bound) {
		return r.bound
	}
	return v
}
