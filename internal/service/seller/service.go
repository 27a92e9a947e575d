package seller

import (
	"context"
	"errors"
	"strings"

	"handcrafted-haven/internal/domain"
	sellerrepo "handcrafted-haven/internal/repository/seller"
)

type userRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type productRepo interface {
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
}

type Service struct {
	repo     sellerrepo.Repository
	users    userRepo
	products productRepo
}

func New(repo sellerrepo.Repository, users userRepo, products productRepo) *Service {
	return &Service{repo: repo, users: users, products: products}
}

// GetProfile returns the seller's storefront. A seller who never saved a
// profile gets one named after their account.
func (s *Service) GetProfile(ctx context.Context, sellerID string) (*domain.SellerProfile, error) {
	u, err := s.seller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.GetProfile(ctx, sellerID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.SellerProfile{SellerID: u.ID, ShopName: u.Name}, nil
	}
	return p, err
}

type ProfileInput struct {
	ShopName  string
	Bio       string
	Location  string
	AvatarURL string
}

func (s *Service) UpsertProfile(ctx context.Context, sellerID string, in ProfileInput) (*domain.SellerProfile, error) {
	shop := strings.TrimSpace(in.ShopName)
	if shop == "" {
		return nil, domain.Invalidf("shop name required")
	}
	if _, err := s.seller(ctx, sellerID); err != nil {
		return nil, err
	}
	return s.repo.UpsertProfile(ctx, domain.SellerProfile{
		SellerID:  sellerID,
		ShopName:  shop,
		Bio:       strings.TrimSpace(in.Bio),
		Location:  strings.TrimSpace(in.Location),
		AvatarURL: strings.TrimSpace(in.AvatarURL),
	})
}

// ListSellerProducts returns the seller's listed products for their public storefront.
func (s *Service) ListSellerProducts(ctx context.Context, sellerID string) ([]domain.Product, error) {
	if _, err := s.seller(ctx, sellerID); err != nil {
		return nil, err
	}
	all, err := s.products.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	active := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

// seller resolves a seller account; buyers are reported as not found.
func (s *Service) seller(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role != domain.RoleSeller {
		return nil, domain.ErrNotFound
	}
	return u, nil
}
