package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the login password of every demo account.
const DefaultPassword = "Handmade1"

// productNamespace keeps demo product ids stable across runs.
var productNamespace = uuid.MustParse("3d5e8a1c-7b2f-5c4d-8e9a-0f1b2c3d4e5f")

type userSeed struct {
	Email string
	Name  string
	Role  string
}

type shopSeed struct {
	Owner    userSeed
	ShopName string
	Bio      string
	Location string
	Products []productSeed
}

type productSeed struct {
	Name        string
	Description string
	Category    string
	PriceCents  int64
	Stock       int
	ImageURL    string
}

var shops = []shopSeed{
	{
		Owner:    userSeed{Email: "maria@handcraftedhaven.test", Name: "Maria Alves", Role: "seller"},
		ShopName: "Clay & Kiln",
		Bio:      "Wheel-thrown stoneware fired in a wood kiln.",
		Location: "Porto",
		Products: []productSeed{
			{Name: "Speckled Mug", Description: "Stoneware mug with a speckled oat glaze.", Category: "Pottery", PriceCents: 2450, Stock: 12, ImageURL: "/images/speckled-mug.jpg"},
			{Name: "Serving Bowl", Description: "Wide bowl for salads and bread.", Category: "Pottery", PriceCents: 6800, Stock: 4, ImageURL: "/images/serving-bowl.jpg"},
			{Name: "Bud Vase", Description: "Small vase with a celadon finish.", Category: "Pottery", PriceCents: 1900, Stock: 9, ImageURL: "/images/bud-vase.jpg"},
		},
	},
	{
		Owner:    userSeed{Email: "tom@handcraftedhaven.test", Name: "Tom Reyes", Role: "seller"},
		ShopName: "Loom Street",
		Bio:      "Hand-woven textiles from natural fibres.",
		Location: "Bath",
		Products: []productSeed{
			{Name: "Wool Scarf", Description: "Merino scarf woven on a floor loom.", Category: "Textiles", PriceCents: 5500, Stock: 6, ImageURL: "/images/wool-scarf.jpg"},
			{Name: "Linen Tea Towel", Description: "Soft washed linen, set of two.", Category: "Textiles", PriceCents: 1800, Stock: 20, ImageURL: "/images/tea-towel.jpg"},
			{Name: "Walnut Spoon", Description: "Carved walnut cooking spoon.", Category: "Woodwork", PriceCents: 2200, Stock: 15, ImageURL: "/images/walnut-spoon.jpg"},
			{Name: "Silver Leaf Earrings", Description: "Hammered sterling silver drops.", Category: "Jewelry", PriceCents: 4200, Stock: 7, ImageURL: "/images/leaf-earrings.jpg"},
		},
	},
}

var buyers = []userSeed{
	{Email: "bea@handcraftedhaven.test", Name: "Bea Lindqvist", Role: "buyer"},
}

// Apply inserts demo sellers, their shops and products, and a buyer.
// It is idempotent via ON CONFLICT; existing passwords are kept.
func Apply(ctx context.Context, pool *pgxpool.Pool, password string) error {
	if password == "" {
		password = DefaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	for _, shop := range shops {
		sellerID, err := ensureUser(ctx, pool, shop.Owner, string(hash))
		if err != nil {
			return fmt.Errorf("ensure seller %s: %w", shop.Owner.Email, err)
		}
		if err := upsertProfile(ctx, pool, sellerID, shop); err != nil {
			return fmt.Errorf("upsert profile %s: %w", shop.ShopName, err)
		}
		for _, p := range shop.Products {
			if err := upsertProduct(ctx, pool, sellerID, ProductID(shop.Owner.Email, p.Name), p); err != nil {
				return fmt.Errorf("upsert product %s: %w", p.Name, err)
			}
		}
	}
	for _, b := range buyers {
		if _, err := ensureUser(ctx, pool, b, string(hash)); err != nil {
			return fmt.Errorf("ensure buyer %s: %w", b.Email, err)
		}
	}
	return nil
}

// ProductID is the stable id given to a demo product.
func ProductID(sellerEmail, name string) string {
	return uuid.NewSHA1(productNamespace, []byte(sellerEmail+"/"+name)).String()
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, u userSeed, hash string) (string, error) {
	const q = `
INSERT INTO users (email, password_hash, name, role)
VALUES ($1, $2, $3, $4)
ON CONFLICT ((lower(email))) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, u.Email, hash, u.Name, u.Role).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProfile(ctx context.Context, pool *pgxpool.Pool, sellerID string, s shopSeed) error {
	const q = `
INSERT INTO seller_profiles (seller_id, shop_name, bio, location)
VALUES ($1, $2, $3, $4)
ON CONFLICT (seller_id) DO UPDATE
SET shop_name = EXCLUDED.shop_name,
    bio = EXCLUDED.bio,
    location = EXCLUDED.location,
    updated_at = now()
`
	_, err := pool.Exec(ctx, q, sellerID, s.ShopName, s.Bio, s.Location)
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, sellerID, id string, p productSeed) error {
	const q = `
INSERT INTO products (id, seller_id, name, description, category, price_cents, stock, image_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents,
    image_url = EXCLUDED.image_url,
    updated_at = now()
`
	_, err := pool.Exec(ctx, q, id, sellerID, p.Name, p.Description, p.Category, p.PriceCents, p.Stock, p.ImageURL)
	return err
}
