package product

import (
	"context"
	"errors"
	"testing"

	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/repository/pgtest"
)

func TestPostgres_CreateListAndGet(t *testing.T) {
	ctx := context.Background()
	pool := pgtest.Pool(t)
	sellerID := pgtest.User(t, pool, "potter@example.com", "seller")

	repo := NewPostgres(pool, nil)
	vase, err := repo.Create(ctx, domain.Product{SellerID: sellerID, Name: "Vase", Category: "Pottery", PriceCents: 4500, Stock: 3, IsActive: true})
	if err != nil {
		t.Fatalf("Create vase: %v", err)
	}
	if _, err := repo.Create(ctx, domain.Product{SellerID: sellerID, Name: "Hidden", PriceCents: 100, IsActive: false}); err != nil {
		t.Fatalf("Create hidden: %v", err)
	}
	bowl, err := repo.Create(ctx, domain.Product{SellerID: sellerID, Name: "Bowl", Category: "Pottery", PriceCents: 2000, Stock: 1, IsActive: true})
	if err != nil {
		t.Fatalf("Create bowl: %v", err)
	}

	active, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 2 || active[0].ID != vase.ID || active[1].ID != bowl.ID {
		t.Fatalf("expected [vase bowl] in insertion order, got %+v", active)
	}

	mine, err := repo.ListBySeller(ctx, sellerID)
	if err != nil {
		t.Fatalf("ListBySeller: %v", err)
	}
	if len(mine) != 3 {
		t.Fatalf("expected 3 seller products, got %d", len(mine))
	}

	got, err := repo.GetByID(ctx, vase.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.PriceCents != 4500 || got.SellerID != sellerID {
		t.Fatalf("unexpected product %+v", got)
	}

	if _, err := repo.GetByID(ctx, "not-a-uuid"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_UpdateAndSetActive(t *testing.T) {
	ctx := context.Background()
	pool := pgtest.Pool(t)
	sellerID := pgtest.User(t, pool, "weaver@example.com", "seller")

	repo := NewPostgres(pool, nil)
	p, err := repo.Create(ctx, domain.Product{SellerID: sellerID, Name: "Scarf", PriceCents: 3200, Stock: 2, IsActive: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	p.Name = "Wool Scarf"
	p.PriceCents = 3500
	updated, err := repo.Update(ctx, *p)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Wool Scarf" || updated.PriceCents != 3500 {
		t.Fatalf("unexpected updated product %+v", updated)
	}

	hidden, err := repo.SetActive(ctx, p.ID, false)
	if err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if hidden.IsActive {
		t.Fatalf("expected product deactivated")
	}
	active, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active products, got %d", len(active))
	}
}

func TestPostgres_Upsert(t *testing.T) {
	ctx := context.Background()
	pool := pgtest.Pool(t)
	sellerID := pgtest.User(t, pool, "smith@example.com", "seller")

	repo := NewPostgres(pool, nil)
	p, err := repo.Upsert(ctx, domain.Product{SellerID: sellerID, Name: "Knife", PriceCents: 9000, IsActive: true})
	if err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected ID set")
	}

	again, err := repo.Upsert(ctx, domain.Product{ID: p.ID, SellerID: sellerID, Name: "Chef Knife", PriceCents: 9500, IsActive: true})
	if err != nil {
		t.Fatalf("Upsert update: %v", err)
	}
	if again.ID != p.ID || again.Name != "Chef Knife" || again.PriceCents != 9500 {
		t.Fatalf("unexpected upserted product %+v", again)
	}

	if _, err := repo.Create(ctx, domain.Product{SellerID: "00000000-0000-0000-0000-000000000000", Name: "Orphan", PriceCents: 1}); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected unknown seller rejected, got %v", err)
	}
}
