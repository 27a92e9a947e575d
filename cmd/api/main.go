package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"handcrafted-haven/internal/cache"
	"handcrafted-haven/internal/config"
	"handcrafted-haven/internal/db"
	"handcrafted-haven/internal/httpserver"
	cartrepo "handcrafted-haven/internal/repository/cart"
	orderrepo "handcrafted-haven/internal/repository/order"
	productrepo "handcrafted-haven/internal/repository/product"
	reviewrepo "handcrafted-haven/internal/repository/review"
	sellerrepo "handcrafted-haven/internal/repository/seller"
	userrepo "handcrafted-haven/internal/repository/user"
	cartsvc "handcrafted-haven/internal/service/cart"
	ordersvc "handcrafted-haven/internal/service/order"
	productsvc "handcrafted-haven/internal/service/product"
	reviewsvc "handcrafted-haven/internal/service/review"
	sellersvc "handcrafted-haven/internal/service/seller"
	usersvc "handcrafted-haven/internal/service/user"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var (
		catalogCache productsvc.Cache
		cacheProbe   httpserver.Pinger
	)
	if cfg.RedisAddr != "" {
		client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Printf("catalog cache disabled: %v", err)
		} else {
			defer client.Close()
			c := cache.NewCatalog(client, cfg.CatalogCacheTTL, logger)
			catalogCache, cacheProbe = c, c
			logger.Printf("catalog cache enabled addr=%s ttl=%s", cfg.RedisAddr, cfg.CatalogCacheTTL)
		}
	}

	userRepo := userrepo.NewPostgres(dbpool, logger)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	reviewRepo := reviewrepo.NewPostgres(dbpool, logger)
	sellerRepo := sellerrepo.NewPostgres(dbpool, logger)

	userService, err := usersvc.New(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Fatalf("init user service: %v", err)
	}
	productService := productsvc.New(productRepo, catalogCache, cfg.CatalogPageSize)
	cartService := cartsvc.New(cartRepo, productRepo, cfg.Pricing)
	orderService := ordersvc.New(orderRepo, cartRepo, productRepo, cfg.Pricing)
	reviewService := reviewsvc.New(reviewRepo, productRepo)
	sellerService := sellersvc.New(sellerRepo, userRepo, productRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		AuthSvc:    userService,
		ProductSvc: productService,
		CartSvc:    cartService,
		OrderSvc:   orderService,
		ReviewSvc:  reviewService,
		SellerSvc:  sellerService,
		Cache:      cacheProbe,
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
