package cart

import (
	"context"

	"handcrafted-haven/internal/domain"
)

// Repository persists one open cart per buyer. Returned lines carry the
// current product row.
type Repository interface {
	GetOrCreate(ctx context.Context, buyerID string) (*domain.Cart, error)
	// AddLineItem adds quantity to the line for productID, creating it if needed.
	AddLineItem(ctx context.Context, cartID, productID string, quantity int) error
	// ChangeLineItemQuantity sets the line quantity; quantity <= 0 deletes the line.
	ChangeLineItemQuantity(ctx context.Context, cartID, productID string, quantity int) error
	RemoveLineItem(ctx context.Context, cartID, productID string) error
	Clear(ctx context.Context, cartID string) error
}
