package catalog

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handcrafted-haven/internal/domain"
)

func product(id, name, category string, cents int64) domain.Product {
	return domain.Product{ID: id, Name: name, Category: category, PriceCents: cents, IsActive: true}
}

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func fullRange() *Bounds {
	return &Bounds{Min: decimal.Zero, Max: decimal.NewFromInt(1000)}
}

func TestQuery_VaseAndScarfLowToHigh(t *testing.T) {
	products := []domain.Product{
		product("vase", "Vase", "Ceramics", 4500),
		product("scarf", "Scarf", "Textiles", 8500),
	}
	res, err := Query(products, Filters{Category: AllCategories, PriceRange: fullRange(), Sort: SortLowToHigh}, 1, 8)
	require.NoError(t, err)
	assert.Equal(t, []string{"vase", "scarf"}, ids(res.Items))
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 2, res.TotalCount)
}

func TestQuery_SearchMatchesNameOrDescriptionIgnoringCase(t *testing.T) {
	products := []domain.Product{
		product("a", "Blue Mug", "Ceramics", 1200),
		{ID: "b", Name: "Plate", Description: "glazed in deep BLUE", Category: "Ceramics", PriceCents: 900},
		product("c", "Red Scarf", "Textiles", 3000),
	}
	res, err := Query(products, Filters{SearchTerm: "blue"}, 1, 8)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(res.Items))
}

func TestQuery_CategoryIsExact(t *testing.T) {
	products := []domain.Product{
		product("a", "Mug", "Ceramics", 1200),
		product("b", "Tile", "ceramics", 500),
		product("c", "Scarf", "Textiles", 3000),
	}
	res, err := Query(products, Filters{Category: "Ceramics"}, 1, 8)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(res.Items))
}

func TestQuery_PriceRangeIsInclusive(t *testing.T) {
	products := []domain.Product{
		product("low", "Low", "X", 1000),
		product("mid", "Mid", "X", 1500),
		product("high", "High", "X", 2000),
		product("over", "Over", "X", 2001),
	}
	bounds := &Bounds{Min: decimal.NewFromInt(10), Max: decimal.NewFromInt(20)}
	res, err := Query(products, Filters{PriceRange: bounds}, 1, 8)
	require.NoError(t, err)
	assert.Equal(t, []string{"low", "mid", "high"}, ids(res.Items))
}

func TestQuery_SortIsStableOnEqualPrices(t *testing.T) {
	products := []domain.Product{
		product("a", "A", "X", 500),
		product("b", "B", "X", 100),
		product("c", "C", "X", 500),
		product("d", "D", "X", 100),
		product("e", "E", "X", 500),
	}

	res, err := Query(products, Filters{Sort: SortLowToHigh}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, ids(res.Items))

	res, err = Query(products, Filters{Sort: SortHighToLow}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "e", "b", "d"}, ids(res.Items))

	res, err = Query(products, Filters{Sort: SortFeatured}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(res.Items))
}

func TestQuery_DoesNotReorderInput(t *testing.T) {
	products := []domain.Product{
		product("a", "A", "X", 900),
		product("b", "B", "X", 100),
	}
	_, err := Query(products, Filters{Sort: SortLowToHigh}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(products))
}

func TestQuery_EmptyCatalogHasZeroPages(t *testing.T) {
	res, err := Query(nil, Filters{Category: AllCategories}, 1, 8)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)
	assert.Equal(t, 0, res.TotalPages)
	assert.Equal(t, 0, res.TotalCount)
}

func TestQuery_PageBeyondEndIsEmpty(t *testing.T) {
	products := []domain.Product{product("a", "A", "X", 100)}
	res, err := Query(products, Filters{}, 5, 8)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 1, res.TotalPages)
}

func TestQuery_RejectsInvalidArguments(t *testing.T) {
	_, err := Query(nil, Filters{}, 0, 8)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = Query(nil, Filters{}, 1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = Query(nil, Filters{Sort: "newest"}, 1, 8)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func randomCatalog(rng *rand.Rand, n int) []domain.Product {
	names := []string{"Vase", "Scarf", "Bowl", "Quilt", "Basket", "Candle"}
	cats := []string{"Ceramics", "Textiles", "Woodwork"}
	out := make([]domain.Product, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Product{
			ID:          fmt.Sprintf("p%03d", i),
			Name:        names[rng.Intn(len(names))] + fmt.Sprintf(" %d", i),
			Description: "handmade " + strings.ToLower(cats[rng.Intn(len(cats))]),
			Category:    cats[rng.Intn(len(cats))],
			PriceCents:  int64(rng.Intn(20)) * 500,
		})
	}
	return out
}

func TestQuery_PropertiesOverRandomCatalogs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	terms := []string{"", "vase", "HANDMADE TEXT", "o", "zzz"}
	cats := []string{AllCategories, "Ceramics", "Textiles"}
	sorts := []SortOrder{SortFeatured, SortLowToHigh, SortHighToLow}

	for round := 0; round < 50; round++ {
		products := randomCatalog(rng, rng.Intn(40))
		lo := int64(rng.Intn(50))
		f := Filters{
			SearchTerm: terms[rng.Intn(len(terms))],
			Category:   cats[rng.Intn(len(cats))],
			PriceRange: &Bounds{Min: decimal.NewFromInt(lo), Max: decimal.NewFromInt(lo + int64(rng.Intn(80)))},
			Sort:       sorts[rng.Intn(len(sorts))],
		}
		pageSize := 1 + rng.Intn(7)

		first, err := Query(products, f, 1, pageSize)
		require.NoError(t, err)

		var all []domain.Product
		for page := 1; page <= first.TotalPages; page++ {
			res, err := Query(products, f, page, pageSize)
			require.NoError(t, err)
			require.LessOrEqual(t, len(res.Items), pageSize)
			all = append(all, res.Items...)
		}
		require.Len(t, all, first.TotalCount, "pages must cover the filtered set exactly")

		expected := 0
		inResult := make(map[string]bool, len(all))
		for _, p := range all {
			require.True(t, f.Match(p), "item %s violates filters", p.ID)
			require.False(t, inResult[p.ID], "duplicate %s across pages", p.ID)
			inResult[p.ID] = true
		}
		for _, p := range products {
			if f.Match(p) {
				expected++
				require.True(t, inResult[p.ID], "matching product %s missing", p.ID)
			}
		}
		require.Equal(t, expected, first.TotalCount)

		position := make(map[string]int, len(products))
		for i, p := range products {
			position[p.ID] = i
		}
		for i := 1; i < len(all); i++ {
			prev, cur := all[i-1], all[i]
			switch f.Sort {
			case SortLowToHigh:
				require.LessOrEqual(t, prev.PriceCents, cur.PriceCents)
			case SortHighToLow:
				require.GreaterOrEqual(t, prev.PriceCents, cur.PriceCents)
			}
			if f.Sort == SortFeatured || prev.PriceCents == cur.PriceCents {
				require.Less(t, position[prev.ID], position[cur.ID], "input order lost between %s and %s", prev.ID, cur.ID)
			}
		}
	}
}

func TestCategories_FirstSeenOrder(t *testing.T) {
	products := []domain.Product{
		product("a", "A", "Textiles", 1),
		product("b", "B", "Ceramics", 1),
		product("c", "C", "Textiles", 1),
		product("d", "D", "Jewelry", 1),
	}
	assert.Equal(t, []string{"All", "Textiles", "Ceramics", "Jewelry"}, Categories(products))
	assert.Equal(t, []string{"All"}, Categories(nil))
}

func TestParseSort(t *testing.T) {
	got, err := ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, SortFeatured, got)

	got, err = ParseSort("highToLow")
	require.NoError(t, err)
	assert.Equal(t, SortHighToLow, got)
}
