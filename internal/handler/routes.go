package handler

import (
	"go-farm-store/internal/middleware"
	"go-farm-store/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Services bundles what the HTTP layer needs.
type Services struct {
	Store     service.StoreService
	Carts     service.CartService
	Checkout  service.CheckoutService
	Shop      service.ShopService
	Dashboard service.DashboardService
	Auth      service.AuthService
}

// SetupRoutes mounts the storefront API under /api/v1.
func SetupRoutes(app *fiber.App, s Services) {
	invHandler := NewInventoryHandler(s.Store)
	dashHandler := NewDashboardHandler(s.Dashboard)
	shopHandler := NewShopHandler(s.Shop)
	cartHandler := NewCartHandler(s.Carts, s.Store, s.Checkout)
	authHandler := NewAuthHandler(s.Auth)

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	api.Get("/shop", shopHandler.Browse)
	api.Get("/products/:id", shopHandler.GetProduct)

	carts := api.Group("/carts")
	carts.Post("/", cartHandler.CreateCart)
	carts.Get("/:id", cartHandler.GetCart)
	carts.Post("/:id/items", cartHandler.AddItem)
	carts.Delete("/:id/items", cartHandler.ClearCart)
	carts.Put("/:id/items/:productId", cartHandler.UpdateItem)
	carts.Delete("/:id/items/:productId", cartHandler.RemoveItem)
	carts.Post("/:id/checkout", cartHandler.Checkout)

	api.Post("/admin/login", authHandler.Login)

	// ============ ADMIN ROUTES ============
	admin := api.Group("/admin", middleware.RequireAdmin(s.Auth))
	admin.Get("/me", authHandler.Me)

	admin.Get("/products", invHandler.GetProducts)
	admin.Post("/products", invHandler.CreateProduct)
	admin.Get("/products/search", invHandler.SearchProducts)
	admin.Get("/products/popular", invHandler.GetPopularProducts)
	admin.Get("/products/category/:category", invHandler.FilterByCategory)
	admin.Put("/products/:id", invHandler.UpdateProduct)
	admin.Delete("/products/:id", invHandler.DeleteProduct)
	admin.Post("/products/:id/popular", invHandler.TogglePopular)

	admin.Get("/sales", invHandler.GetSales)
	admin.Post("/sales", invHandler.CreateSale)

	admin.Get("/analytics", dashHandler.GetSalesAnalytics)
	admin.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	admin.Get("/dashboard/sales-movement", dashHandler.GetSalesMovement)
}
