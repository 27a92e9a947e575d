package user

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

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

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	const q = `
INSERT INTO users (id, email, password_hash, name, role)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, email, password_hash, name, role, created_at
`
	res, err := r.scanUser(r.pool.QueryRow(ctx, q, u.ID, strings.ToLower(u.Email), u.PasswordHash, u.Name, string(u.Role)))
	if err != nil {
		return nil, err
	}
	r.logger.Printf("user repo: created id=%s role=%s", res.ID, res.Role)
	return res, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
SELECT id::text, email, password_hash, name, role, created_at
FROM users
WHERE lower(email) = lower($1)
LIMIT 1
`
	return r.scanUser(r.pool.QueryRow(ctx, q, email))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	const q = `
SELECT id::text, email, password_hash, name, role, created_at
FROM users
WHERE id = $1
LIMIT 1
`
	return r.scanUser(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: scan error=%v", err)
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}
