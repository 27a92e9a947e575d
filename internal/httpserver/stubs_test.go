package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/pricing"
	cartsvc "handcrafted-haven/internal/service/cart"
	ordersvc "handcrafted-haven/internal/service/order"
	productsvc "handcrafted-haven/internal/service/product"
	reviewsvc "handcrafted-haven/internal/service/review"
	sellersvc "handcrafted-haven/internal/service/seller"
	usersvc "handcrafted-haven/internal/service/user"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

var (
	testBuyer  = &domain.User{ID: "buyer-1", Email: "bea@example.com", Name: "Bea", Role: domain.RoleBuyer}
	testSeller = &domain.User{ID: "seller-1", Email: "sam@example.com", Name: "Sam", Role: domain.RoleSeller}
)

// stubAuthService maps bearer tokens to users.
type stubAuthService struct {
	users      map[string]*domain.User
	registered *usersvc.RegisterInput
	regErr     error
	loginErr   error
}

func (s *stubAuthService) Register(_ context.Context, in usersvc.RegisterInput) (*domain.User, error) {
	s.registered = &in
	if s.regErr != nil {
		return nil, s.regErr
	}
	return &domain.User{ID: "new-user", Email: in.Email, Name: in.Name, Role: domain.Role(in.Role)}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (*domain.User, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return &domain.User{ID: "u1", Email: email, Role: domain.RoleBuyer}, "signed-token", nil
}

func (s *stubAuthService) LookupByToken(_ context.Context, token string) (*domain.User, error) {
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, usersvc.ErrInvalidToken
}

func (s *stubAuthService) AccessTTLSeconds() int {
	return 3600
}

type stubProductService struct {
	search     productsvc.SearchInput
	result     *productsvc.SearchResult
	product    *domain.Product
	created    *productsvc.Input
	activeSet  *bool
	categories []string
	err        error
}

func (s *stubProductService) Search(_ context.Context, in productsvc.SearchInput) (*productsvc.SearchResult, error) {
	s.search = in
	if s.err != nil {
		return nil, s.err
	}
	if s.result == nil {
		return &productsvc.SearchResult{}, nil
	}
	return s.result, nil
}

func (s *stubProductService) Get(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductService) Categories(_ context.Context) ([]string, error) {
	return s.categories, s.err
}

func (s *stubProductService) ListBySeller(_ context.Context, _ string) ([]domain.Product, error) {
	if s.product == nil {
		return nil, s.err
	}
	return []domain.Product{*s.product}, s.err
}

func (s *stubProductService) Create(_ context.Context, sellerID string, in productsvc.Input) (*domain.Product, error) {
	s.created = &in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Product{ID: "p-new", SellerID: sellerID, Name: in.Name, PriceCents: domain.CentsFromDecimal(in.Price), Stock: in.Stock, IsActive: true}, nil
}

func (s *stubProductService) Update(_ context.Context, _, _ string, _ productsvc.Input) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductService) SetActive(_ context.Context, _, _ string, active bool) (*domain.Product, error) {
	s.activeSet = &active
	return s.product, s.err
}

type stubCartService struct {
	quote   *cartsvc.Quote
	added   int
	cleared bool
	err     error
}

func (s *stubCartService) Quote(_ context.Context, _ string) (*cartsvc.Quote, error) {
	return s.quote, s.err
}

func (s *stubCartService) AddItem(_ context.Context, _, _ string, quantity int) (*cartsvc.Quote, error) {
	s.added = quantity
	return s.quote, s.err
}

func (s *stubCartService) SetQuantity(_ context.Context, _, _ string, _ int) (*cartsvc.Quote, error) {
	return s.quote, s.err
}

func (s *stubCartService) RemoveItem(_ context.Context, _, _ string) (*cartsvc.Quote, error) {
	return s.quote, s.err
}

func (s *stubCartService) Clear(_ context.Context, _ string) error {
	s.cleared = true
	return s.err
}

type stubOrderService struct {
	order     *domain.Order
	views     []pricing.SellerOrderView
	dashboard *ordersvc.Dashboard
	checkout  *ordersvc.CheckoutInput
	status    domain.OrderStatus
	err       error
}

func (s *stubOrderService) Checkout(_ context.Context, _ string, in ordersvc.CheckoutInput) (*domain.Order, error) {
	s.checkout = &in
	return s.order, s.err
}

func (s *stubOrderService) ListForBuyer(_ context.Context, _ string) ([]domain.Order, error) {
	if s.order == nil {
		return nil, s.err
	}
	return []domain.Order{*s.order}, s.err
}

func (s *stubOrderService) Get(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) Cancel(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) UpdateStatus(_ context.Context, _, _ string, to domain.OrderStatus) (*pricing.SellerOrderView, error) {
	s.status = to
	if s.err != nil {
		return nil, s.err
	}
	if len(s.views) > 0 {
		return &s.views[0], nil
	}
	return &pricing.SellerOrderView{Order: *s.order, Items: s.order.Items}, nil
}

func (s *stubOrderService) ListForSeller(_ context.Context, _ string) ([]pricing.SellerOrderView, error) {
	return s.views, s.err
}

func (s *stubOrderService) Dashboard(_ context.Context, _ string) (*ordersvc.Dashboard, error) {
	return s.dashboard, s.err
}

type stubReviewService struct {
	reviews []domain.Review
	summary reviewsvc.Summary
	err     error
}

func (s *stubReviewService) Create(_ context.Context, buyerID, productID string, rating int, comment string) (*domain.Review, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Review{ID: "r1", ProductID: productID, BuyerID: buyerID, Rating: rating, Comment: comment}, nil
}

func (s *stubReviewService) ListForProduct(_ context.Context, _ string) ([]domain.Review, error) {
	return s.reviews, s.err
}

func (s *stubReviewService) Summary(_ context.Context, _ string) (reviewsvc.Summary, error) {
	return s.summary, s.err
}

type stubSellerService struct {
	profile  *domain.SellerProfile
	products []domain.Product
	err      error
}

func (s *stubSellerService) GetProfile(_ context.Context, _ string) (*domain.SellerProfile, error) {
	return s.profile, s.err
}

func (s *stubSellerService) UpsertProfile(_ context.Context, sellerID string, in sellersvc.ProfileInput) (*domain.SellerProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.SellerProfile{SellerID: sellerID, ShopName: in.ShopName, Bio: in.Bio}, nil
}

func (s *stubSellerService) ListSellerProducts(_ context.Context, _ string) ([]domain.Product, error) {
	return s.products, s.err
}

// stubDeps returns a Deps where the tokens "buyer" and "seller" authenticate.
func stubDeps() Deps {
	return Deps{
		AuthSvc:    &stubAuthService{users: map[string]*domain.User{"buyer": testBuyer, "seller": testSeller}},
		ProductSvc: &stubProductService{},
		CartSvc:    &stubCartService{},
		OrderSvc:   &stubOrderService{},
		ReviewSvc:  &stubReviewService{},
		SellerSvc:  &stubSellerService{},
	}
}

func newTestRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, deps, nil)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func do(router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
