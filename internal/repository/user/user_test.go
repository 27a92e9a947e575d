package user

import (
	"context"
	"errors"
	"testing"

	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/repository/pgtest"
)

func TestPostgres_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	pool := pgtest.Pool(t)

	repo := NewPostgres(pool, nil)
	created, err := repo.Create(ctx, domain.User{Email: "Ada@Example.com", PasswordHash: "hash", Name: "Ada", Role: domain.RoleBuyer})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Email != "ada@example.com" || created.Role != domain.RoleBuyer {
		t.Fatalf("unexpected user %+v", created)
	}

	byEmail, err := repo.GetByEmail(ctx, "ADA@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != created.ID || byEmail.PasswordHash != "hash" {
		t.Fatalf("unexpected user %+v", byEmail)
	}

	if _, err := repo.GetByID(ctx, created.ID); err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if _, err := repo.GetByID(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := repo.Create(ctx, domain.User{Email: "ada@example.com", PasswordHash: "x", Role: domain.RoleSeller}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}
