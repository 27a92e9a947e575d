package httpserver

import (
	"context"
	"errors"

	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/pricing"
	cartsvc "handcrafted-haven/internal/service/cart"
	ordersvc "handcrafted-haven/internal/service/order"
	productsvc "handcrafted-haven/internal/service/product"
	reviewsvc "handcrafted-haven/internal/service/review"
	sellersvc "handcrafted-haven/internal/service/seller"
	usersvc "handcrafted-haven/internal/service/user"
)

type AuthService interface {
	Register(ctx context.Context, in usersvc.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	AccessTTLSeconds() int
}

type ProductService interface {
	Search(ctx context.Context, in productsvc.SearchInput) (*productsvc.SearchResult, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
	Create(ctx context.Context, sellerID string, in productsvc.Input) (*domain.Product, error)
	Update(ctx context.Context, sellerID, id string, in productsvc.Input) (*domain.Product, error)
	SetActive(ctx context.Context, sellerID, id string, active bool) (*domain.Product, error)
}

type CartService interface {
	Quote(ctx context.Context, buyerID string) (*cartsvc.Quote, error)
	AddItem(ctx context.Context, buyerID, productID string, quantity int) (*cartsvc.Quote, error)
	SetQuantity(ctx context.Context, buyerID, productID string, quantity int) (*cartsvc.Quote, error)
	RemoveItem(ctx context.Context, buyerID, productID string) (*cartsvc.Quote, error)
	Clear(ctx context.Context, buyerID string) error
}

type OrderService interface {
	Checkout(ctx context.Context, buyerID string, in ordersvc.CheckoutInput) (*domain.Order, error)
	ListForBuyer(ctx context.Context, buyerID string) ([]domain.Order, error)
	Get(ctx context.Context, buyerID, id string) (*domain.Order, error)
	Cancel(ctx context.Context, buyerID, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, sellerID, id string, to domain.OrderStatus) (*pricing.SellerOrderView, error)
	ListForSeller(ctx context.Context, sellerID string) ([]pricing.SellerOrderView, error)
	Dashboard(ctx context.Context, sellerID string) (*ordersvc.Dashboard, error)
}

type ReviewService interface {
	Create(ctx context.Context, buyerID, productID string, rating int, comment string) (*domain.Review, error)
	ListForProduct(ctx context.Context, productID string) ([]domain.Review, error)
	Summary(ctx context.Context, productID string) (reviewsvc.Summary, error)
}

type SellerService interface {
	GetProfile(ctx context.Context, sellerID string) (*domain.SellerProfile, error)
	UpsertProfile(ctx context.Context, sellerID string, in sellersvc.ProfileInput) (*domain.SellerProfile, error)
	ListSellerProducts(ctx context.Context, sellerID string) ([]domain.Product, error)
}

// Deps are the services the router dispatches to.
type Deps struct {
	AuthSvc    AuthService
	ProductSvc ProductService
	CartSvc    CartService
	OrderSvc   OrderService
	ReviewSvc  ReviewService
	SellerSvc  SellerService

	// Cache is optional; when set, readiness also pings it.
	Cache Pinger
}

func (d Deps) validate() error {
	switch {
	case d.AuthSvc == nil:
		return errors.New("httpserver: auth service required")
	case d.ProductSvc == nil:
		return errors.New("httpserver: product service required")
	case d.CartSvc == nil:
		return errors.New("httpserver: cart service required")
	case d.OrderSvc == nil:
		return errors.New("httpserver: order service required")
	case d.ReviewSvc == nil:
		return errors.New("httpserver: review service required")
	case d.SellerSvc == nil:
		return errors.New("httpserver: seller service required")
	}
	return nil
}
