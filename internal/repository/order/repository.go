package order

import (
	"context"

	"handcrafted-haven/internal/domain"
)

// Repository persists orders together with their line items.
type Repository interface {
	// Create stores the order and its items atomically. A duplicate id yields ErrAlreadyExists.
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	// Checkout creates the order and empties cartID in one transaction.
	Checkout(ctx context.Context, o domain.Order, cartID string) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error)
	// ListContainingSeller returns orders with at least one item of the seller's products.
	ListContainingSeller(ctx context.Context, sellerID string) ([]domain.Order, error)
	// UpdateStatus moves the order from one status to another. If the stored
	// status is no longer from, ErrInvalidTransition is returned.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (*domain.Order, error)
}
