package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"handcrafted-haven/internal/cache"
	"handcrafted-haven/internal/config"
	"handcrafted-haven/internal/db"
	"handcrafted-haven/internal/importer"
	orderrepo "handcrafted-haven/internal/repository/order"
	productrepo "handcrafted-haven/internal/repository/product"
	userrepo "handcrafted-haven/internal/repository/user"
	productsvc "handcrafted-haven/internal/service/product"
)

func main() {
	var (
		productsPath string
		ordersPath   string
		sellerEmail  string
	)
	flag.StringVar(&productsPath, "products", "", "Path to a legacy products JSON export")
	flag.StringVar(&ordersPath, "orders", "", "Path to a legacy orders JSON export")
	flag.StringVar(&sellerEmail, "seller", "", "Email of the seller owning products without a seller_id")
	flag.Parse()

	if productsPath == "" && ordersPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	var defaultSeller string
	if sellerEmail != "" {
		u, err := userrepo.NewPostgres(pool, logger).GetByEmail(ctx, sellerEmail)
		if err != nil {
			logger.Fatalf("look up seller %q: %v", sellerEmail, err)
		}
		defaultSeller = u.ID
	}

	var catalogCache productsvc.Cache
	if cfg.RedisAddr != "" {
		client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Printf("catalog cache not invalidated: %v", err)
		} else {
			defer client.Close()
			catalogCache = cache.NewCatalog(client, cfg.CatalogCacheTTL, logger)
		}
	}

	products := productsvc.New(productrepo.NewPostgres(pool, logger), catalogCache, cfg.CatalogPageSize)
	imp := importer.New(products, orderrepo.NewPostgres(pool, logger), defaultSeller, logger)

	start := time.Now()
	if productsPath != "" {
		res, err := runFile(ctx, productsPath, imp.Products)
		if err != nil {
			logger.Fatalf("import products: %v", err)
		}
		fmt.Printf("Imported %d products\n", res.Imported)
	}
	if ordersPath != "" {
		res, err := runFile(ctx, ordersPath, imp.Orders)
		if err != nil {
			logger.Fatalf("import orders: %v", err)
		}
		fmt.Printf("Imported %d orders, skipped %d existing\n", res.Imported, res.Skipped)
	}
	fmt.Printf("Done in %s\n", time.Since(start).Truncate(time.Millisecond))
}

func runFile(ctx context.Context, path string, run func(context.Context, io.Reader) (importer.Result, error)) (importer.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return importer.Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return run(ctx, f)
}
