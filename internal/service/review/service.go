package review

import (
	"context"
	"strings"

	"handcrafted-haven/internal/domain"
	reviewrepo "handcrafted-haven/internal/repository/review"
)

// maxCommentLength bounds stored review text.
const maxCommentLength = 2000

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	repo     reviewrepo.Repository
	products productRepo
}

func New(repo reviewrepo.Repository, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

type Summary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// Create records a buyer's single review of a product.
func (s *Service) Create(ctx context.Context, buyerID, productID string, rating int, comment string) (*domain.Review, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, domain.Invalidf("rating must be between %d and %d", domain.MinRating, domain.MaxRating)
	}
	comment = strings.TrimSpace(comment)
	if len(comment) > maxCommentLength {
		return nil, domain.Invalidf("comment must be at most %d characters", maxCommentLength)
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.SellerID == buyerID {
		return nil, domain.ErrForbidden
	}
	return s.repo.Create(ctx, domain.Review{
		ProductID: p.ID,
		BuyerID:   buyerID,
		Rating:    rating,
		Comment:   comment,
	})
}

func (s *Service) ListForProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListByProduct(ctx, productID)
}

func (s *Service) Summary(ctx context.Context, productID string) (Summary, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return Summary{}, err
	}
	sum, err := s.repo.Summary(ctx, productID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Count: sum.Count, Average: sum.Average}, nil
}
