package product

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"handcrafted-haven/internal/catalog"
	"handcrafted-haven/internal/domain"
	productrepo "handcrafted-haven/internal/repository/product"
)

// Cache holds the active product list between writes.
type Cache interface {
	ActiveProducts(ctx context.Context) ([]domain.Product, bool)
	StoreActiveProducts(ctx context.Context, products []domain.Product)
	Invalidate(ctx context.Context)
}

type Service struct {
	repo     productrepo.Repository
	cache    Cache
	pageSize int
}

// New builds a Service. A nil cache reads straight from the repository.
func New(repo productrepo.Repository, cache Cache, pageSize int) *Service {
	if cache == nil {
		cache = noCache{}
	}
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	return &Service{repo: repo, cache: cache, pageSize: pageSize}
}

// List returns every active product in storefront order.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	if cached, ok := s.cache.ActiveProducts(ctx); ok {
		return cached, nil
	}
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	s.cache.StoreActiveProducts(ctx, products)
	return products, nil
}

// Get returns an active product. Inactive products are hidden from shoppers.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

type SearchInput struct {
	Query    string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     string
	Page     int
	PageSize int
}

type SearchResult struct {
	catalog.Result
	Categories []string
	// Bounds is the slider track, Applied the interval actually filtered on.
	Bounds  catalog.Bounds
	Applied catalog.Bounds
}

// Search runs the storefront query over the active catalog.
func (s *Service) Search(ctx context.Context, in SearchInput) (*SearchResult, error) {
	sort, err := catalog.ParseSort(in.Sort)
	if err != nil {
		return nil, err
	}
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	pr := catalog.NewPriceRange(products)
	filters := catalog.Filters{
		SearchTerm: strings.TrimSpace(in.Query),
		Category:   strings.TrimSpace(in.Category),
		Sort:       sort,
	}
	if in.MinPrice != nil || in.MaxPrice != nil {
		if in.MinPrice != nil {
			pr.InputLow(*in.MinPrice)
		}
		if in.MaxPrice != nil {
			pr.InputHigh(*in.MaxPrice)
		}
		applied := pr.Bounds()
		filters.PriceRange = &applied
	}

	page := in.Page
	if page == 0 {
		page = 1
	}
	pageSize := in.PageSize
	if pageSize == 0 {
		pageSize = s.pageSize
	}
	res, err := catalog.Query(products, filters, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &SearchResult{
		Result:     res,
		Categories: catalog.Categories(products),
		Bounds:     catalog.Bounds{Min: decimal.Zero, Max: pr.Bound()},
		Applied:    pr.Bounds(),
	}, nil
}

// Categories returns "All" followed by the labels of active products.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Categories(products), nil
}

// Input is the seller-editable part of a product.
type Input struct {
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Stock       int
	ImageURL    string
	IsActive    *bool
}

func (in Input) apply(p *domain.Product) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Invalidf("name required")
	}
	p.Name = name
	p.Description = strings.TrimSpace(in.Description)
	p.Category = strings.TrimSpace(in.Category)
	p.PriceCents = domain.CentsFromDecimal(in.Price)
	p.Stock = in.Stock
	p.ImageURL = strings.TrimSpace(in.ImageURL)
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	return p.Validate()
}

// ListBySeller returns all of a seller's products, active or not.
func (s *Service) ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

func (s *Service) Create(ctx context.Context, sellerID string, in Input) (*domain.Product, error) {
	p := domain.Product{SellerID: sellerID, IsActive: true}
	if err := in.apply(&p); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, sellerID, id string, in Input) (*domain.Product, error) {
	p, err := s.owned(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(p); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, *p)
	if err != nil {
		return nil, err
	}
	if in.IsActive != nil && updated.IsActive != *in.IsActive {
		if updated, err = s.repo.SetActive(ctx, id, *in.IsActive); err != nil {
			return nil, err
		}
	}
	s.cache.Invalidate(ctx)
	return updated, nil
}

// SetActive lists or delists a product from the storefront.
func (s *Service) SetActive(ctx context.Context, sellerID, id string, active bool) (*domain.Product, error) {
	if _, err := s.owned(ctx, sellerID, id); err != nil {
		return nil, err
	}
	p, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return p, nil
}

// Import stores a normalized legacy product, keeping its id.
func (s *Service) Import(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	res, err := s.repo.Upsert(ctx, p)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return res, nil
}

func (s *Service) owned(ctx context.Context, sellerID, id string) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.SellerID != sellerID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

type noCache struct{}

func (noCache) ActiveProducts(context.Context) ([]domain.Product, bool) { return nil, false }
func (noCache) StoreActiveProducts(context.Context, []domain.Product)   {}
func (noCache) Invalidate(context.Context)                              {}
