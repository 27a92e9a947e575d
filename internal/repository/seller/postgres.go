package seller

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"handcrafted-haven/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) GetProfile(ctx context.Context, sellerID string) (*domain.SellerProfile, error) {
	if _, err := uuid.Parse(sellerID); err != nil {
		return nil, domain.ErrNotFound
	}
	const q = `
SELECT seller_id::text, shop_name, bio, location, avatar_url, updated_at
FROM seller_profiles
WHERE seller_id = $1
`
	p, err := scanProfile(r.pool.QueryRow(ctx, q, sellerID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.Printf("seller repo: get seller_id=%s not found", sellerID)
		} else {
			r.logger.Printf("seller repo: get seller_id=%s error=%v", sellerID, err)
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) UpsertProfile(ctx context.Context, p domain.SellerProfile) (*domain.SellerProfile, error) {
	const q = `
INSERT INTO seller_profiles (seller_id, shop_name, bio, location, avatar_url)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (seller_id) DO UPDATE SET
    shop_name = EXCLUDED.shop_name,
    bio = EXCLUDED.bio,
    location = EXCLUDED.location,
    avatar_url = EXCLUDED.avatar_url,
    updated_at = now()
RETURNING seller_id::text, shop_name, bio, location, avatar_url, updated_at
`
	res, err := scanProfile(r.pool.QueryRow(ctx, q, p.SellerID, p.ShopName, p.Bio, p.Location, p.AvatarURL))
	if err != nil {
		r.logger.Printf("seller repo: upsert seller_id=%s error=%v", p.SellerID, err)
		return nil, err
	}
	r.logger.Printf("seller repo: upserted seller_id=%s shop=%q", res.SellerID, res.ShopName)
	return res, nil
}

func scanProfile(row pgx.Row) (*domain.SellerProfile, error) {
	var p domain.SellerProfile
	if err := row.Scan(&p.SellerID, &p.ShopName, &p.Bio, &p.Location, &p.AvatarURL, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
