package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"handcrafted-haven/internal/domain"
)

const columns = `o.id::text, o.buyer_id::text, o.customer_name, o.shipping_address, o.status,
       o.subtotal_cents, o.tax_cents, o.shipping_cents, o.total_cents, o.created_at`

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

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	return r.create(ctx, o, "")
}

func (r *postgresRepo) Checkout(ctx context.Context, o domain.Order, cartID string) (*domain.Order, error) {
	return r.create(ctx, o, cartID)
}

func (r *postgresRepo) create(ctx context.Context, o domain.Order, cartID string) (*domain.Order, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	addrJSON, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return nil, err
	}
	var createdAt *time.Time
	if !o.CreatedAt.IsZero() {
		createdAt = &o.CreatedAt
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
INSERT INTO orders (id, buyer_id, customer_name, shipping_address, status, subtotal_cents, tax_cents, shipping_cents, total_cents, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10::timestamptz, now()))
RETURNING created_at
`,
		o.ID, o.BuyerID, o.CustomerName, addrJSON, string(o.Status),
		o.SubtotalCents, o.TaxCents, o.ShippingCents, o.TotalCents, createdAt,
	).Scan(&o.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, domain.ErrAlreadyExists
			case "23503":
				return nil, domain.Invalidf("unknown buyer %s", o.BuyerID)
			case "23514":
				return nil, domain.Invalidf("order violates %s", pgErr.ConstraintName)
			}
		}
		r.logger.Printf("order repo: create id=%s error=%v", o.ID, err)
		return nil, err
	}

	for i, it := range o.Items {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, line_no, product_id, name, image_url, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, o.ID, i+1, it.ProductID, it.Name, it.ImageURL, it.Quantity, it.UnitPriceCents); err != nil {
			r.logger.Printf("order repo: create item id=%s line=%d error=%v", o.ID, i+1, err)
			return nil, fmt.Errorf("insert order item %d: %w", i+1, err)
		}
	}

	if cartID != "" {
		if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id = $1`, cartID); err != nil {
			r.logger.Printf("order repo: clear cart id=%s cart_id=%s error=%v", o.ID, cartID, err)
			return nil, fmt.Errorf("clear cart: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s buyer_id=%s items=%d total_cents=%d", o.ID, o.BuyerID, len(o.Items), o.TotalCents)
	return &o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	orders, err := r.query(ctx, `SELECT `+columns+` FROM orders o WHERE o.id = $1`, id)
	if err != nil {
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	if len(orders) == 0 {
		r.logger.Printf("order repo: get id=%s not found", id)
		return nil, domain.ErrNotFound
	}
	return &orders[0], nil
}

func (r *postgresRepo) ListByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error) {
	orders, err := r.query(ctx, `SELECT `+columns+` FROM orders o WHERE o.buyer_id = $1 ORDER BY o.created_at DESC`, buyerID)
	if err != nil {
		r.logger.Printf("order repo: list buyer_id=%s error=%v", buyerID, err)
		return nil, err
	}
	r.logger.Printf("order repo: list buyer_id=%s count=%d", buyerID, len(orders))
	return orders, nil
}

func (r *postgresRepo) ListContainingSeller(ctx context.Context, sellerID string) ([]domain.Order, error) {
	q := `SELECT ` + columns + `
FROM orders o
WHERE EXISTS (
    SELECT 1
    FROM order_items i
    JOIN products p ON p.id = i.product_id
    WHERE i.order_id = o.id AND p.seller_id = $1
)
ORDER BY o.created_at DESC`
	orders, err := r.query(ctx, q, sellerID)
	if err != nil {
		r.logger.Printf("order repo: list seller_id=%s error=%v", sellerID, err)
		return nil, err
	}
	r.logger.Printf("order repo: list seller_id=%s count=%d", sellerID, len(orders))
	return orders, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET status = $3, updated_at = now()
WHERE id = $1 AND status = $2
`, id, string(from), string(to))
	if err != nil {
		r.logger.Printf("order repo: status id=%s from=%s to=%s error=%v", id, from, to, err)
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		r.logger.Printf("order repo: status id=%s expected=%s actual=%s", id, from, current.Status)
		return nil, fmt.Errorf("%w: order is %s, not %s", domain.ErrInvalidTransition, current.Status, from)
	}
	r.logger.Printf("order repo: status id=%s from=%s to=%s", id, from, to)
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) query(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		orders []domain.Order
		ids    []string
	)
	for rows.Next() {
		var (
			o        domain.Order
			addrJSON []byte
			status   string
		)
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.CustomerName, &addrJSON, &status,
			&o.SubtotalCents, &o.TaxCents, &o.ShippingCents, &o.TotalCents, &o.CreatedAt); err != nil {
			return nil, err
		}
		if len(addrJSON) > 0 {
			if err := json.Unmarshal(addrJSON, &o.ShippingAddress); err != nil {
				r.logger.Printf("order repo: decode address id=%s err=%v", o.ID, err)
				return nil, err
			}
		}
		o.Status = domain.OrderStatus(status)
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	items, err := r.items(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (r *postgresRepo) items(ctx context.Context, orderIDs []string) (map[string][]domain.OrderLineItem, error) {
	rows, err := r.pool.Query(ctx, `
SELECT order_id::text, product_id::text, name, image_url, quantity, unit_price_cents
FROM order_items
WHERE order_id = ANY($1::uuid[])
ORDER BY order_id, line_no
`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.OrderLineItem, len(orderIDs))
	for rows.Next() {
		var (
			orderID string
			it      domain.OrderLineItem
		)
		if err := rows.Scan(&orderID, &it.ProductID, &it.Name, &it.ImageURL, &it.Quantity, &it.UnitPriceCents); err != nil {
			return nil, err
		}
		out[orderID] = append(out[orderID], it)
	}
	return out, rows.Err()
}
