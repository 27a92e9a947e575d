package order

import (
	"context"
	"errors"
	"testing"

	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/repository/pgtest"
)

func TestPostgres_CreateAndList(t *testing.T) {
	ctx := context.Background()
	pool := pgtest.Pool(t)
	buyerID := pgtest.User(t, pool, "buyer@example.com", "buyer")
	sellerA := pgtest.User(t, pool, "a@example.com", "seller")
	sellerB := pgtest.User(t, pool, "b@example.com", "seller")

	var vase, scarf string
	if err := pool.QueryRow(ctx, `INSERT INTO products (seller_id, name, price_cents) VALUES ($1, 'Vase', 4500) RETURNING id::text`, sellerA).Scan(&vase); err != nil {
		t.Fatalf("insert vase: %v", err)
	}
	if err := pool.QueryRow(ctx, `INSERT INTO products (seller_id, name, price_cents) VALUES ($1, 'Scarf', 2700) RETURNING id::text`, sellerB).Scan(&scarf); err != nil {
		t.Fatalf("insert scarf: %v", err)
	}

	repo := NewPostgres(pool, nil)
	created, err := repo.Create(ctx, domain.Order{
		BuyerID:         buyerID,
		CustomerName:    "Ada",
		ShippingAddress: domain.ShippingAddress{FullName: "Ada", City: "London"},
		Status:          domain.OrderPending,
		Items: []domain.OrderLineItem{
			{ProductID: vase, Name: "Vase", Quantity: 2, UnitPriceCents: 4500},
			{ProductID: scarf, Name: "Scarf", Quantity: 1, UnitPriceCents: 2700},
		},
		SubtotalCents: 11700,
		TaxCents:      936,
		TotalCents:    12636,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("expected id and created_at set, got %+v", created)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Items) != 2 || got.Items[0].ProductID != vase || got.ShippingAddress.City != "London" {
		t.Fatalf("unexpected order %+v", got)
	}

	mine, err := repo.ListByBuyer(ctx, buyerID)
	if err != nil {
		t.Fatalf("ListByBuyer: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 buyer order, got %d", len(mine))
	}

	forB, err := repo.ListContainingSeller(ctx, sellerB)
	if err != nil {
		t.Fatalf("ListContainingSeller: %v", err)
	}
	if len(forB) != 1 || len(forB[0].Items) != 2 {
		t.Fatalf("expected the full order for seller B, got %+v", forB)
	}

	if _, err := repo.Create(ctx, domain.Order{ID: created.ID, BuyerID: buyerID, Status: domain.OrderPending}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestPostgres_UpdateStatusGuardsCurrentStatus(t *testing.T) {
	ctx := context.Background()
	pool := pgtest.Pool(t)
	buyerID := pgtest.User(t, pool, "buyer@example.com", "buyer")

	repo := NewPostgres(pool, nil)
	o, err := repo.Create(ctx, domain.Order{BuyerID: buyerID, Status: domain.OrderPending})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	shipped, err := repo.UpdateStatus(ctx, o.ID, domain.OrderPending, domain.OrderShipped)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if shipped.Status != domain.OrderShipped {
		t.Fatalf("expected Shipped, got %s", shipped.Status)
	}

	if _, err := repo.UpdateStatus(ctx, o.ID, domain.OrderPending, domain.OrderCancelled); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for stale status, got %v", err)
	}
	if _, err := repo.UpdateStatus(ctx, "00000000-0000-0000-0000-000000000000", domain.OrderPending, domain.OrderShipped); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_CheckoutClearsCart(t *testing.T) {
	ctx := context.Background()
	pool := pgtest.Pool(t)
	buyerID := pgtest.User(t, pool, "buyer@example.com", "buyer")
	sellerID := pgtest.User(t, pool, "seller@example.com", "seller")

	var productID, cartID string
	if err := pool.QueryRow(ctx, `INSERT INTO products (seller_id, name, price_cents, stock) VALUES ($1, 'Vase', 4500, 5) RETURNING id::text`, sellerID).Scan(&productID); err != nil {
		t.Fatalf("insert product: %v", err)
	}
	if err := pool.QueryRow(ctx, `INSERT INTO carts (buyer_id) VALUES ($1) RETURNING id::text`, buyerID).Scan(&cartID); err != nil {
		t.Fatalf("insert cart: %v", err)
	}
	if _, err := pool.Exec(ctx, `INSERT INTO cart_lines (cart_id, product_id, quantity) VALUES ($1, $2, 1)`, cartID, productID); err != nil {
		t.Fatalf("insert cart line: %v", err)
	}

	repo := NewPostgres(pool, nil)
	o, err := repo.Checkout(ctx, domain.Order{
		BuyerID:       buyerID,
		Status:        domain.OrderPending,
		Items:         []domain.OrderLineItem{{ProductID: productID, Name: "Vase", Quantity: 1, UnitPriceCents: 4500}},
		SubtotalCents: 4500,
		TaxCents:      360,
		ShippingCents: 1500,
		TotalCents:    6360,
	}, cartID)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	var lines int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM cart_lines WHERE cart_id = $1`, cartID).Scan(&lines); err != nil {
		t.Fatalf("count lines: %v", err)
	}
	if lines != 0 {
		t.Fatalf("expected cart cleared, got %d lines", lines)
	}
	if _, err := repo.GetByID(ctx, o.ID); err != nil {
		t.Fatalf("GetByID: %v", err)
	}
}
