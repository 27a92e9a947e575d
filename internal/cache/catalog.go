// Package cache keeps the active catalog in Redis so storefront queries do
// not hit Postgres on every keystroke.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"handcrafted-haven/internal/domain"
)

const activeProductsKey = "catalog:active_products"

// Connect opens a Redis client and pings it.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

// Catalog caches the JSON-encoded active product list.
type Catalog struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *log.Logger
}

func NewCatalog(client redis.Cmdable, ttl time.Duration, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Catalog{client: client, ttl: ttl, logger: logger}
}

// ActiveProducts returns the cached list. A miss or a broken entry reports false.
func (c *Catalog) ActiveProducts(ctx context.Context) ([]domain.Product, bool) {
	raw, err := c.client.Get(ctx, activeProductsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Printf("catalog cache: get error=%v", err)
		}
		return nil, false
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		c.logger.Printf("catalog cache: decode error=%v", err)
		return nil, false
	}
	return products, true
}

func (c *Catalog) StoreActiveProducts(ctx context.Context, products []domain.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		c.logger.Printf("catalog cache: encode error=%v", err)
		return
	}
	if err := c.client.Set(ctx, activeProductsKey, raw, c.ttl).Err(); err != nil {
		c.logger.Printf("catalog cache: set error=%v", err)
		return
	}
	c.logger.Printf("catalog cache: stored count=%d ttl=%s", len(products), c.ttl)
}

func (c *Catalog) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, activeProductsKey).Err(); err != nil {
		c.logger.Printf("catalog cache: invalidate error=%v", err)
	}
}

// Ping reports whether Redis answers.
func (c *Catalog) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
