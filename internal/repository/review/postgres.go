package review

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/google/uuid"
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

func (r *postgresRepo) Create(ctx context.Context, rv domain.Review) (*domain.Review, error) {
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	const q = `
INSERT INTO reviews (id, product_id, buyer_id, rating, comment)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at
`
	if err := r.pool.QueryRow(ctx, q, rv.ID, rv.ProductID, rv.BuyerID, rv.Rating, rv.Comment).Scan(&rv.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, domain.ErrAlreadyExists
			case "23503":
				return nil, domain.ErrNotFound
			}
		}
		r.logger.Printf("review repo: create product_id=%s buyer_id=%s error=%v", rv.ProductID, rv.BuyerID, err)
		return nil, err
	}
	r.logger.Printf("review repo: created id=%s product_id=%s rating=%d", rv.ID, rv.ProductID, rv.Rating)
	return &rv, nil
}

func (r *postgresRepo) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	const q = `
SELECT id::text, product_id::text, buyer_id::text, rating, comment, created_at
FROM reviews
WHERE product_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		r.logger.Printf("review repo: list product_id=%s error=%v", productID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.BuyerID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, rv)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("review repo: list rows product_id=%s error=%v", productID, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Summary(ctx context.Context, productID string) (Summary, error) {
	const q = `
SELECT COUNT(*), COALESCE(AVG(rating), 0)::float8
FROM reviews
WHERE product_id = $1
`
	var s Summary
	if err := r.pool.QueryRow(ctx, q, productID).Scan(&s.Count, &s.Average); err != nil {
		r.logger.Printf("review repo: summary product_id=%s error=%v", productID, err)
		return Summary{}, err
	}
	return s, nil
}
