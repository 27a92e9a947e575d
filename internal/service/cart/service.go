package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/pricing"
	cartrepo "handcrafted-haven/internal/repository/cart"
)

type Service struct {
	repo        cartrepo.Repository
	productRepo productRepo
	pricing     pricing.Config
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartrepo.Repository, productRepo productRepo, cfg pricing.Config) *Service {
	return &Service{repo: repo, productRepo: productRepo, pricing: cfg}
}

// Quote is a cart together with its computed totals.
type Quote struct {
	Cart   *domain.Cart
	Totals pricing.Totals
}

// Get returns the buyer's cart, creating an empty one on first use.
func (s *Service) Get(ctx context.Context, buyerID string) (*domain.Cart, error) {
	return s.repo.GetOrCreate(ctx, buyerID)
}

// Quote prices the buyer's cart. An empty cart owes nothing, shipping included.
func (s *Service) Quote(ctx context.Context, buyerID string) (*Quote, error) {
	c, err := s.Get(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if len(c.Lines) == 0 {
		zero := decimal.Zero
		return &Quote{Cart: c, Totals: pricing.Totals{Subtotal: zero, Shipping: zero, Tax: zero, Total: zero}}, nil
	}
	totals, err := pricing.CartTotals(c.Lines, s.pricing)
	if err != nil {
		return nil, err
	}
	return &Quote{Cart: c, Totals: totals}, nil
}

// AddItem adds quantity units of an active product, merging with an existing line.
func (s *Service) AddItem(ctx context.Context, buyerID, productID string, quantity int) (*Quote, error) {
	if quantity < 1 {
		return nil, domain.Invalidf("quantity must be at least 1")
	}
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, domain.Invalidf("product %s is not available", p.Name)
	}
	c, err := s.Get(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	inCart := 0
	if line, ok := c.Line(productID); ok {
		inCart = line.Quantity
	}
	if inCart+quantity > p.Stock {
		return nil, domain.Invalidf("only %d of %s in stock", p.Stock, p.Name)
	}
	if err := s.repo.AddLineItem(ctx, c.ID, productID, quantity); err != nil {
		return nil, err
	}
	return s.Quote(ctx, buyerID)
}

// SetQuantity replaces a line's quantity. Zero or less removes the line.
func (s *Service) SetQuantity(ctx context.Context, buyerID, productID string, quantity int) (*Quote, error) {
	c, err := s.Get(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	line, ok := c.Line(productID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if quantity > line.Product.Stock {
		return nil, domain.Invalidf("only %d of %s in stock", line.Product.Stock, line.Product.Name)
	}
	if err := s.repo.ChangeLineItemQuantity(ctx, c.ID, productID, quantity); err != nil {
		return nil, err
	}
	return s.Quote(ctx, buyerID)
}

func (s *Service) RemoveItem(ctx context.Context, buyerID, productID string) (*Quote, error) {
	c, err := s.Get(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if _, ok := c.Line(productID); !ok {
		return nil, domain.ErrNotFound
	}
	if err := s.repo.RemoveLineItem(ctx, c.ID, productID); err != nil {
		return nil, err
	}
	return s.Quote(ctx, buyerID)
}

func (s *Service) Clear(ctx context.Context, buyerID string) error {
	c, err := s.Get(ctx, buyerID)
	if err != nil {
		return err
	}
	return s.repo.Clear(ctx, c.ID)
}
