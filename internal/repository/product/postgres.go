package product

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"handcrafted-haven/internal/domain"
)

const columns = `id::text, seller_id::text, name, description, category, price_cents, stock, is_active, image_url, created_at, updated_at`

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

func (r *postgresRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	q := `SELECT ` + columns + ` FROM products WHERE is_active ORDER BY position ASC`
	result, err := r.list(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list active error=%v", err)
		return nil, err
	}
	r.logger.Printf("product repo: list active count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error) {
	q := `SELECT ` + columns + ` FROM products WHERE seller_id = $1 ORDER BY position ASC`
	result, err := r.list(ctx, q, sellerID)
	if err != nil {
		r.logger.Printf("product repo: list seller_id=%s error=%v", sellerID, err)
		return nil, err
	}
	r.logger.Printf("product repo: list seller_id=%s count=%d", sellerID, len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	q := `SELECT ` + columns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.Printf("product repo: get id=%s not found", id)
		} else {
			r.logger.Printf("product repo: get id=%s error=%v", id, err)
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	q := `
INSERT INTO products (id, seller_id, name, description, category, price_cents, stock, is_active, image_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + columns
	res, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.ID, p.SellerID, p.Name, p.Description, p.Category, p.PriceCents, p.Stock, p.IsActive, p.ImageURL,
	))
	if err != nil {
		r.logger.Printf("product repo: create seller_id=%s name=%q error=%v", p.SellerID, p.Name, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s seller_id=%s", res.ID, res.SellerID)
	return res, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if !validID(p.ID) {
		return nil, domain.ErrNotFound
	}
	q := `
UPDATE products
SET name = $2, description = $3, category = $4, price_cents = $5, stock = $6, image_url = $7, updated_at = now()
WHERE id = $1
RETURNING ` + columns
	res, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.ID, p.Name, p.Description, p.Category, p.PriceCents, p.Stock, p.ImageURL,
	))
	if err != nil {
		r.logger.Printf("product repo: update id=%s error=%v", p.ID, err)
		return nil, err
	}
	r.logger.Printf("product repo: updated id=%s", res.ID)
	return res, nil
}

func (r *postgresRepo) SetActive(ctx context.Context, id string, active bool) (*domain.Product, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	q := `UPDATE products SET is_active = $2, updated_at = now() WHERE id = $1 RETURNING ` + columns
	res, err := scanProduct(r.pool.QueryRow(ctx, q, id, active))
	if err != nil {
		r.logger.Printf("product repo: set active id=%s active=%t error=%v", id, active, err)
		return nil, err
	}
	r.logger.Printf("product repo: set active id=%s active=%t", id, active)
	return res, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	q := `
INSERT INTO products (id, seller_id, name, description, category, price_cents, stock, is_active, image_url, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10::timestamptz, now()))
ON CONFLICT (id) DO UPDATE SET
    seller_id = EXCLUDED.seller_id,
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents,
    stock = EXCLUDED.stock,
    is_active = EXCLUDED.is_active,
    image_url = EXCLUDED.image_url,
    updated_at = now()
RETURNING ` + columns
	var createdAt *time.Time
	if !p.CreatedAt.IsZero() {
		createdAt = &p.CreatedAt
	}
	res, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.ID, p.SellerID, p.Name, p.Description, p.Category, p.PriceCents, p.Stock, p.IsActive, p.ImageURL, createdAt,
	))
	if err != nil {
		r.logger.Printf("product repo: upsert id=%s error=%v", p.ID, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted id=%s seller_id=%s", res.ID, res.SellerID)
	return res, nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...any) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Category, &p.PriceCents, &p.Stock, &p.IsActive, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.Invalidf("unknown seller")
		}
		return nil, err
	}
	return &p, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
