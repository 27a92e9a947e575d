package product

import (
	"context"

	"handcrafted-haven/internal/domain"
)

// Repository persists products. List methods return storefront order.
type Repository interface {
	ListActive(ctx context.Context) ([]domain.Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Product, error)
	// Upsert inserts or replaces by id, keeping the original position.
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
