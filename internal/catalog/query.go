// Package catalog turns a product collection into the page a shopper sees:
// search, category and price filtering, stable price sorting and pagination.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"handcrafted-haven/internal/domain"
)

type SortOrder string

const (
	SortFeatured  SortOrder = "featured"
	SortLowToHigh SortOrder = "lowToHigh"
	SortHighToLow SortOrder = "highToLow"
)

// AllCategories is the category sentinel that disables category filtering.
const AllCategories = "All"

// DefaultPageSize matches the storefront grid.
const DefaultPageSize = 8

// ParseSort maps a wire value to a SortOrder. Empty means featured.
func ParseSort(s string) (SortOrder, error) {
	switch SortOrder(strings.TrimSpace(s)) {
	case "", SortFeatured:
		return SortFeatured, nil
	case SortLowToHigh:
		return SortLowToHigh, nil
	case SortHighToLow:
		return SortHighToLow, nil
	}
	return "", domain.Invalidf("unknown sort order %q", s)
}

// Filters is the live query applied to the catalog.
type Filters struct {
	SearchTerm string
	// Category is an exact label or AllCategories. Empty behaves like AllCategories.
	Category string
	// PriceRange is inclusive on both ends. Nil disables price filtering.
	PriceRange *Bounds
	Sort       SortOrder
}

// Match reports whether p satisfies every predicate of f.
func (f Filters) Match(p domain.Product) bool {
	if f.SearchTerm != "" {
		term := strings.ToLower(f.SearchTerm)
		if !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			return false
		}
	}
	if f.Category != "" && f.Category != AllCategories && p.Category != f.Category {
		return false
	}
	if f.PriceRange != nil && !f.PriceRange.Contains(p.Price()) {
		return false
	}
	return true
}

type Result struct {
	Items      []domain.Product `json:"items"`
	TotalPages int              `json:"totalPages"`
	TotalCount int              `json:"totalCount"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
}

// Query filters, sorts and paginates products. page is 1-based.
// An empty match set yields zero pages. Pages past the end are empty, not errors.
func Query(products []domain.Product, f Filters, page, pageSize int) (Result, error) {
	if page < 1 {
		return Result{}, domain.Invalidf("page must be at least 1, got %d", page)
	}
	if pageSize <= 0 {
		return Result{}, domain.Invalidf("page size must be positive, got %d", pageSize)
	}
	order, err := ParseSort(string(f.Sort))
	if err != nil {
		return Result{}, err
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			filtered = append(filtered, p)
		}
	}
	sortProducts(filtered, order)

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize

	start, end := total, total
	if page-1 < totalPages {
		start = (page - 1) * pageSize
		end = min(start+pageSize, total)
	}

	return Result{
		Items:      filtered[start:end:end],
		TotalPages: totalPages,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// sortProducts is stable so equal prices keep input order. Featured is input order.
func sortProducts(products []domain.Product, order SortOrder) {
	switch order {
	case SortLowToHigh:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(a.PriceCents, b.PriceCents)
		})
	case SortHighToLow:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(b.PriceCents, a.PriceCents)
		})
	}
}

// Categories returns AllCategories followed by distinct labels in first-seen order.
func Categories(products []domain.Product) []string {
	out := []string{AllCategories}
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
