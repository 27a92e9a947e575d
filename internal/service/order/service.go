package order

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/pricing"
	orderrepo "handcrafted-haven/internal/repository/order"
)

type cartRepo interface {
	GetOrCreate(ctx context.Context, buyerID string) (*domain.Cart, error)
}

type productRepo interface {
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
}

type Service struct {
	repo     orderrepo.Repository
	carts    cartRepo
	products productRepo
	pricing  pricing.Config
}

func New(repo orderrepo.Repository, carts cartRepo, products productRepo, cfg pricing.Config) *Service {
	return &Service{repo: repo, carts: carts, products: products, pricing: cfg}
}

type CheckoutInput struct {
	CustomerName    string
	ShippingAddress domain.ShippingAddress
}

func (in CheckoutInput) validate() error {
	a := in.ShippingAddress
	for _, f := range []struct{ name, value string }{
		{"fullName", a.FullName},
		{"street", a.Street},
		{"city", a.City},
		{"country", a.Country},
	} {
		if strings.TrimSpace(f.value) == "" {
			return domain.Invalidf("shipping address %s required", f.name)
		}
	}
	return nil
}

// Checkout turns the buyer's cart into a Pending order at current prices and
// empties the cart.
func (s *Service) Checkout(ctx context.Context, buyerID string, in CheckoutInput) (*domain.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	c, err := s.carts.GetOrCreate(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if len(c.Lines) == 0 {
		return nil, domain.Invalidf("cart is empty")
	}
	for _, l := range c.Lines {
		if !l.Product.IsActive {
			return nil, domain.Invalidf("product %s is no longer available", l.Product.Name)
		}
		if l.Quantity > l.Product.Stock {
			return nil, domain.Invalidf("only %d of %s in stock", l.Product.Stock, l.Product.Name)
		}
	}
	totals, err := pricing.CartTotals(c.Lines, s.pricing)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		name = strings.TrimSpace(in.ShippingAddress.FullName)
	}
	o := domain.Order{
		BuyerID:         buyerID,
		CustomerName:    name,
		ShippingAddress: in.ShippingAddress,
		Status:          domain.OrderPending,
		Items:           make([]domain.OrderLineItem, 0, len(c.Lines)),
	}
	for _, l := range c.Lines {
		o.Items = append(o.Items, domain.OrderLineItem{
			ProductID:      l.Product.ID,
			Name:           l.Product.Name,
			ImageURL:       l.Product.ImageURL,
			Quantity:       l.Quantity,
			UnitPriceCents: l.Product.PriceCents,
		})
	}
	totals.ApplyTo(&o)
	return s.repo.Checkout(ctx, o, c.ID)
}

func (s *Service) ListForBuyer(ctx context.Context, buyerID string) ([]domain.Order, error) {
	return s.repo.ListByBuyer(ctx, buyerID)
}

// Get returns one of the buyer's orders. Other buyers' orders are reported as not found.
func (s *Service) Get(ctx context.Context, buyerID, id string) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != buyerID {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// Cancel lets a buyer cancel an order that has not shipped.
func (s *Service) Cancel(ctx context.Context, buyerID, id string) (*domain.Order, error) {
	o, err := s.Get(ctx, buyerID, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, o, domain.OrderCancelled)
}

// UpdateStatus lets a seller with at least one item in the order advance it.
// The result is narrowed to that seller's items.
func (s *Service) UpdateStatus(ctx context.Context, sellerID, id string, to domain.OrderStatus) (*pricing.SellerOrderView, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	owners, err := s.owners(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if len(pricing.SellerView(*o, sellerID, owners).Items) == 0 {
		return nil, domain.ErrForbidden
	}
	updated, err := s.transition(ctx, o, to)
	if err != nil {
		return nil, err
	}
	view := pricing.SellerView(*updated, sellerID, owners)
	return &view, nil
}

func (s *Service) transition(ctx context.Context, o *domain.Order, to domain.OrderStatus) (*domain.Order, error) {
	next, err := o.Status.Transition(to)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateStatus(ctx, o.ID, o.Status, next)
}

// ListForSeller returns each order containing the seller's products, narrowed to those items.
func (s *Service) ListForSeller(ctx context.Context, sellerID string) ([]pricing.SellerOrderView, error) {
	owners, err := s.owners(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.ListContainingSeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	views := make([]pricing.SellerOrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, pricing.SellerView(o, sellerID, owners))
	}
	return views, nil
}

type Dashboard struct {
	ProductCount       int
	ActiveProductCount int
	OrderCount         int
	PendingCount       int
	// Revenue sums the seller's share of every order that was not cancelled.
	Revenue decimal.Decimal
}

func (s *Service) Dashboard(ctx context.Context, sellerID string) (*Dashboard, error) {
	products, err := s.products.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.ListContainingSeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	owners := pricing.OwnersFromProducts(products)

	d := &Dashboard{ProductCount: len(products), OrderCount: len(orders), Revenue: decimal.Zero}
	for _, p := range products {
		if p.IsActive {
			d.ActiveProductCount++
		}
	}
	for _, o := range orders {
		switch o.Status {
		case domain.OrderPending:
			d.PendingCount++
		case domain.OrderCancelled:
			continue
		}
		d.Revenue = d.Revenue.Add(pricing.SellerOrderTotal(o, sellerID, owners))
	}
	return d, nil
}

func (s *Service) owners(ctx context.Context, sellerID string) (pricing.Owners, error) {
	products, err := s.products.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return pricing.OwnersFromProducts(products), nil
}
