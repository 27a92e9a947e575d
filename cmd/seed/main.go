package main

import (
	"context"
	"log"
	"os"

	"handcrafted-haven/internal/config"
	"handcrafted-haven/internal/db"
	"handcrafted-haven/internal/seed"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := seed.Apply(ctx, pool, os.Getenv("SEED_PASSWORD")); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
