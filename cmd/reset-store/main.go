package main

import (
	"context"
	"flag"
	"log"

	"go-farm-store/internal/model"
	"go-farm-store/internal/repository"
	"go-farm-store/pkg/config"
	"go-farm-store/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	purge := flag.Bool("purge", false, "delete both keys instead of writing defaults; the server re-seeds on next start")
	flag.Parse()

	// Prices and totals travel as JSON numbers, on the wire and in storage.
	decimal.MarshalJSONWithoutQuotes = true

	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	zl, err := logger.Install(cfg.LogMode, cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	// 2. Setup Storage
	ctx := context.Background()
	kv, closeKV, err := repository.OpenKV(ctx, cfg)
	if err != nil {
		zap.S().Fatalw("failed to open store backend", "backend", cfg.StoreBackend, "error", err)
	}
	defer closeKV()

	productRepo := repository.NewProductRepo(kv)
	saleRepo := repository.NewSaleRepo(kv)

	// 3. Reset
	if *purge {
		if err := productRepo.Reset(ctx); err != nil {
			zap.S().Fatalw("failed to purge products", "error", err)
		}
		if err := saleRepo.Reset(ctx); err != nil {
			zap.S().Fatalw("failed to purge sales", "error", err)
		}
		zap.S().Infow("store purged", "backend", cfg.StoreBackend)
		return
	}

	catalog := model.DefaultCatalog()
	if err := productRepo.Save(ctx, catalog); err != nil {
		zap.S().Fatalw("failed to write default catalog", "error", err)
	}
	if err := saleRepo.Save(ctx, nil); err != nil {
		zap.S().Fatalw("failed to clear sales history", "error", err)
	}
	zap.S().Infow("store reset to default catalog", "backend", cfg.StoreBackend, "products", len(catalog))
}
