package cart

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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

func (r *postgresRepo) GetOrCreate(ctx context.Context, buyerID string) (*domain.Cart, error) {
	const insert = `
INSERT INTO carts (id, buyer_id)
VALUES ($1, $2)
ON CONFLICT (buyer_id) DO NOTHING
`
	if _, err := r.pool.Exec(ctx, insert, uuid.NewString(), buyerID); err != nil {
		r.logger.Printf("cart repo: create buyer_id=%s error=%v", buyerID, err)
		return nil, err
	}

	var cart domain.Cart
	err := r.pool.QueryRow(ctx, `
SELECT id::text, buyer_id::text, created_at
FROM carts
WHERE buyer_id = $1
`, buyerID).Scan(&cart.ID, &cart.BuyerID, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("cart repo: get buyer_id=%s error=%v", buyerID, err)
		return nil, err
	}

	lines, err := r.lines(ctx, cart.ID)
	if err != nil {
		r.logger.Printf("cart repo: lines cart_id=%s error=%v", cart.ID, err)
		return nil, err
	}
	cart.Lines = lines
	return &cart, nil
}

func (r *postgresRepo) AddLineItem(ctx context.Context, cartID, productID string, quantity int) error {
	const q = `
INSERT INTO cart_lines (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
`
	if _, err := r.pool.Exec(ctx, q, cartID, productID, quantity); err != nil {
		r.logger.Printf("cart repo: add cart_id=%s product_id=%s qty=%d error=%v", cartID, productID, quantity, err)
		return err
	}
	r.logger.Printf("cart repo: add cart_id=%s product_id=%s qty=%d", cartID, productID, quantity)
	return nil
}

func (r *postgresRepo) ChangeLineItemQuantity(ctx context.Context, cartID, productID string, quantity int) error {
	if quantity <= 0 {
		return r.RemoveLineItem(ctx, cartID, productID)
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE cart_lines
SET quantity = $1
WHERE cart_id = $2 AND product_id = $3
`, quantity, cartID, productID)
	if err != nil {
		r.logger.Printf("cart repo: change cart_id=%s product_id=%s error=%v", cartID, productID, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) RemoveLineItem(ctx context.Context, cartID, productID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM cart_lines
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID)
	if err != nil {
		r.logger.Printf("cart repo: remove cart_id=%s product_id=%s error=%v", cartID, productID, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context, cartID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id = $1`, cartID)
	if err != nil {
		r.logger.Printf("cart repo: clear cart_id=%s error=%v", cartID, err)
		return err
	}
	r.logger.Printf("cart repo: cleared cart_id=%s lines=%d", cartID, cmd.RowsAffected())
	return nil
}

func (r *postgresRepo) lines(ctx context.Context, cartID string) ([]domain.CartLine, error) {
	const q = `
SELECT l.quantity,
       p.id::text, p.seller_id::text, p.name, p.description, p.category, p.price_cents, p.stock, p.is_active, p.image_url, p.created_at, p.updated_at
FROM cart_lines l
JOIN products p ON p.id = l.product_id
WHERE l.cart_id = $1
ORDER BY l.created_at ASC, p.position ASC
`
	rows, err := r.pool.Query(ctx, q, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		p := &l.Product
		if err := rows.Scan(&l.Quantity, &p.ID, &p.SellerID, &p.Name, &p.Description, &p.Category, &p.PriceCents, &p.Stock, &p.IsActive, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
