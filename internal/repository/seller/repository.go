package seller

import (
	"context"

	"handcrafted-haven/internal/domain"
)

// Repository persists seller storefront profiles.
type Repository interface {
	GetProfile(ctx context.Context, sellerID string) (*domain.SellerProfile, error)
	UpsertProfile(ctx context.Context, p domain.SellerProfile) (*domain.SellerProfile, error)
}
