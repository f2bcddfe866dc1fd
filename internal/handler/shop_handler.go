package handler

import (
	"go-farm-store/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ShopHandler struct {
	service service.ShopService
}

func NewShopHandler(s service.ShopService) *ShopHandler {
	return &ShopHandler{service: s}
}

// Browse returns one page of the shop
// GET /api/v1/shop?q=&category=&page=&per_page=&view=
func (h *ShopHandler) Browse(c *fiber.Ctx) error {
	var q service.BrowseQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid query"})
	}
	return c.JSON(h.service.Browse(q))
}

// GetProduct returns the product detail
// GET /api/v1/products/:id
func (h *ShopHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.JSON(product)
}
