package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"handcrafted-haven/internal/adapter"
	"handcrafted-haven/internal/domain"
)

// legacyNamespace seeds the name-based UUIDs given to non-UUID legacy ids.
var legacyNamespace = uuid.MustParse("6f1c2b0e-8d4a-5e7f-9b3c-2a1d0e4f5c6b")

type ProductWriter interface {
	Import(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type OrderWriter interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
}

// Importer loads legacy JSON exports of products and orders.
type Importer struct {
	products      ProductWriter
	orders        OrderWriter
	defaultSeller string
	logger        *log.Logger
}

// New builds an Importer. defaultSellerID owns product records that carry no seller.
func New(products ProductWriter, orders OrderWriter, defaultSellerID string, logger *log.Logger) *Importer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Importer{
		products:      products,
		orders:        orders,
		defaultSeller: defaultSellerID,
		logger:        logger,
	}
}

type Result struct {
	Imported int
	Skipped  int
}

// StableID returns legacy unchanged when it is already a UUID and otherwise a
// name-based UUID derived from kind and legacy, so reruns hit the same rows.
func StableID(kind, legacy string) string {
	legacy = strings.TrimSpace(legacy)
	if legacy == "" {
		return ""
	}
	if id, err := uuid.Parse(legacy); err == nil {
		return id.String()
	}
	return uuid.NewSHA1(legacyNamespace, []byte(kind+":"+legacy)).String()
}

// productKey identifies a product record that has no legacy id.
func productKey(p domain.Product) string {
	return p.SellerID + "/" + strings.ToLower(strings.TrimSpace(p.Name))
}

// orderKey identifies an order record that has no legacy id by buyer, time and lines.
func orderKey(o domain.Order) string {
	var b strings.Builder
	b.WriteString(o.BuyerID)
	b.WriteString("/" + o.CreatedAt.UTC().Format(time.RFC3339Nano))
	for _, it := range o.Items {
		fmt.Fprintf(&b, "/%s*%d@%d", it.ProductID, it.Quantity, it.UnitPriceCents)
	}
	fmt.Fprintf(&b, "/%d", o.TotalCents)
	return b.String()
}

// Products upserts every product in the export. The first failing record aborts the run.
func (i *Importer) Products(ctx context.Context, r io.Reader) (Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read products: %w", err)
	}
	products, err := adapter.NormalizeProducts(raw)
	if err != nil {
		return Result{}, fmt.Errorf("normalize products: %w", err)
	}

	var res Result
	for n, p := range products {
		legacyID := p.ID
		p.ID = StableID("product", p.ID)
		if p.SellerID == "" {
			p.SellerID = i.defaultSeller
		}
		if p.SellerID == "" {
			return res, fmt.Errorf("record %d: %w", n, domain.Invalidf("seller_id is required without a default seller"))
		}
		p.SellerID = StableID("user", p.SellerID)
		if p.ID == "" {
			p.ID = StableID("product-content", productKey(p))
		}

		saved, err := i.products.Import(ctx, p)
		if err != nil {
			return res, fmt.Errorf("import product %q: %w", legacyID, err)
		}
		i.logger.Printf("importer: product legacy_id=%s id=%s", legacyID, saved.ID)
		res.Imported++
	}
	return res, nil
}

// Orders inserts every order in the export. Orders that already exist are skipped.
func (i *Importer) Orders(ctx context.Context, r io.Reader) (Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read orders: %w", err)
	}
	orders, err := adapter.NormalizeOrders(raw)
	if err != nil {
		return Result{}, fmt.Errorf("normalize orders: %w", err)
	}

	var res Result
	for _, o := range orders {
		legacyID := o.ID
		o.ID = StableID("order", o.ID)
		o.BuyerID = StableID("user", o.BuyerID)
		for k := range o.Items {
			o.Items[k].ProductID = StableID("product", o.Items[k].ProductID)
		}
		if o.ID == "" {
			o.ID = StableID("order-content", orderKey(o))
		}

		_, err := i.orders.Create(ctx, o)
		if errors.Is(err, domain.ErrAlreadyExists) {
			i.logger.Printf("importer: order legacy_id=%s skipped=exists", legacyID)
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("import order %q: %w", legacyID, err)
		}
		res.Imported++
	}
	return res, nil
}
