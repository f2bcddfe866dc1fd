package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-farm-store/internal/handler"
	"go-farm-store/internal/repository"
	"go-farm-store/internal/service"
	"go-farm-store/internal/ws"
	"go-farm-store/pkg/config"
	"go-farm-store/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
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

	ctx := context.Background()

	// 2. Setup Storage
	kv, closeKV, err := repository.OpenKV(ctx, cfg)
	if err != nil {
		zap.S().Fatalw("failed to open store backend", "backend", cfg.StoreBackend, "error", err)
	}
	defer closeKV()

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(kv)
	saleRepo := repository.NewSaleRepo(kv)

	storeService, err := service.NewStoreService(ctx, productRepo, saleRepo, wsHub)
	if err != nil {
		zap.S().Fatalw("failed to restore store state", "error", err)
	}
	defer storeService.Close()

	authService, err := service.NewAuthService(cfg.AdminAuthEnabled, cfg.AdminEmail, cfg.AdminPassword, cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		zap.S().Fatalw("failed to configure admin auth", "error", err)
	}

	cartService := service.NewCartService(storeService)
	services := handler.Services{
		Store:     storeService,
		Carts:     cartService,
		Checkout:  service.NewCheckoutService(cartService, wsHub, cfg.CheckoutDelay),
		Shop:      service.NewShopService(storeService),
		Dashboard: service.NewDashboardService(storeService),
		Auth:      authService,
	}

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	// Middleware
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 6. Routes
	handler.SetupRoutes(app, services)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zap.S().Panicw("listen failed", "error", err)
		}
	}()
	zap.S().Infow("store started", "port", cfg.Port, "backend", cfg.StoreBackend, "admin_auth", cfg.AdminAuthEnabled)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.S().Info("shutting down server...")
	if err := app.Shutdown(); err != nil {
		zap.S().Errorw("server forced to shutdown", "error", err)
	}

	zap.S().Info("server exited")
}
