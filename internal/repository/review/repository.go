package review

import (
	"context"

	"handcrafted-haven/internal/domain"
)

type Summary struct {
	Count   int
	Average float64
}

// Repository persists product reviews, at most one per buyer and product.
type Repository interface {
	Create(ctx context.Context, rv domain.Review) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	Summary(ctx context.Context, productID string) (Summary, error)
}
