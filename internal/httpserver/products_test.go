package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"handcrafted-haven/internal/catalog"
	"handcrafted-haven/internal/domain"
	productsvc "handcrafted-haven/internal/service/product"
	reviewsvc "handcrafted-haven/internal/service/review"
)

func TestSearchHandler_ForwardsQuery(t *testing.T) {
	deps := stubDeps()
	products := &stubProductService{result: &productsvc.SearchResult{
		Result: catalog.Result{
			Items:      []domain.Product{{ID: "p1", Name: "Mug", PriceCents: 2450, IsActive: true}},
			TotalPages: 1,
			TotalCount: 1,
			Page:       2,
			PageSize:   4,
		},
		Categories: []string{"All", "Pottery"},
		Bounds:     catalog.Bounds{Min: decimal.Zero, Max: decimal.NewFromInt(25)},
		Applied:    catalog.Bounds{Min: decimal.NewFromInt(10), Max: decimal.NewFromInt(25)},
	}}
	deps.ProductSvc = products
	router := newTestRouter(t, deps)

	rec := do(router, http.MethodGet, "/products?q=mug&category=Pottery&minPrice=10&maxPrice=30.5&sort=highToLow&page=2&pageSize=4", "", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	in := products.search
	if in.Query != "mug" || in.Category != "Pottery" || in.Sort != "highToLow" || in.Page != 2 || in.PageSize != 4 {
		t.Fatalf("unexpected search input: %+v", in)
	}
	if in.MinPrice == nil || !in.MinPrice.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("min price not parsed: %v", in.MinPrice)
	}
	if in.MaxPrice == nil || in.MaxPrice.String() != "30.5" {
		t.Fatalf("max price not parsed: %v", in.MaxPrice)
	}

	var resp searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Price != "24.50" {
		t.Fatalf("unexpected items: %+v", resp.Items)
	}
	if resp.PriceBounds.Max != "25.00" || resp.AppliedPrice.Min != "10.00" {
		t.Fatalf("unexpected bounds: %+v %+v", resp.PriceBounds, resp.AppliedPrice)
	}
}

func TestSearchHandler_NoPriceParams(t *testing.T) {
	deps := stubDeps()
	products := deps.ProductSvc.(*stubProductService)
	router := newTestRouter(t, deps)

	rec := do(router, http.MethodGet, "/products", "", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if products.search.MinPrice != nil || products.search.MaxPrice != nil || products.search.Page != 0 {
		t.Fatalf("expected defaults, got %+v", products.search)
	}
}

func TestSearchHandler_RejectsBadNumbers(t *testing.T) {
	router := newTestRouter(t, stubDeps())

	for _, path := range []string{"/products?minPrice=cheap", "/products?maxPrice=ten", "/products?page=two", "/products?pageSize=x"} {
		rec := do(router, http.MethodGet, path, "", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, rec.Code)
		}
	}
}

func TestGetProductHandler_NotFound(t *testing.T) {
	deps := stubDeps()
	deps.ProductSvc = &stubProductService{err: domain.ErrNotFound}
	router := newTestRouter(t, deps)

	rec := do(router, http.MethodGet, "/products/missing", "", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Fatalf("expected error body, got %s", rec.Body.String())
	}
}

func TestCategoriesHandler(t *testing.T) {
	deps := stubDeps()
	deps.ProductSvc = &stubProductService{categories: []string{"All", "Jewelry"}}
	router := newTestRouter(t, deps)

	rec := do(router, http.MethodGet, "/categories", "", "")

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"Jewelry"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestListReviewsHandler_EmptyIsArray(t *testing.T) {
	deps := stubDeps()
	deps.ReviewSvc = &stubReviewService{summary: reviewsvc.Summary{}}
	router := newTestRouter(t, deps)

	rec := do(router, http.MethodGet, "/products/p1/reviews", "", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"reviews":[]`) {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestCreateReviewHandler(t *testing.T) {
	router := newTestRouter(t, stubDeps())

	rec := do(router, http.MethodPost, "/products/p1/reviews", "buyer", `{"rating":5,"comment":"Lovely glaze"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	var r domain.Review
	if err := json.Unmarshal(rec.Body.Bytes(), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.BuyerID != testBuyer.ID || r.ProductID != "p1" || r.Rating != 5 {
		t.Fatalf("unexpected review: %+v", r)
	}
}

func TestCreateReviewHandler_Duplicate(t *testing.T) {
	deps := stubDeps()
	deps.ReviewSvc = &stubReviewService{err: domain.ErrAlreadyExists}
	router := newTestRouter(t, deps)

	rec := do(router, http.MethodPost, "/products/p1/reviews", "buyer", `{"rating":4}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
