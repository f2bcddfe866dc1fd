package handler

import (
	"errors"

	"go-farm-store/internal/model"
	"go-farm-store/internal/service"
	"go-farm-store/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// InventoryHandler serves the admin catalog and sales endpoints.
type InventoryHandler struct {
	service service.StoreService
}

func NewInventoryHandler(s service.StoreService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// errorStatus maps service errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrCartNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, validator.ErrValidation),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrEmptyCart):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrAuthDisabled):
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

func errorJSON(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		return c.Status(status).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// GetProducts returns the whole catalog in stored order
// GET /api/v1/admin/products
func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.Products())
}

// CreateProduct
// POST /api/v1/admin/products
func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var input model.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.AddProduct(&input)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

// UpdateProduct merges the given fields into the product
// PUT /api/v1/admin/products/:id
func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	var patch model.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProduct(c.Params("id"), &patch)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

// DeleteProduct
// DELETE /api/v1/admin/products/:id
func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// TogglePopular flips the manual popularity flag
// POST /api/v1/admin/products/:id/popular
func (h *InventoryHandler) TogglePopular(c *fiber.Ctx) error {
	product, err := h.service.ToggleManualPopular(c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"message": "Popularity updated", "data": product})
}

// SearchProducts
// GET /api/v1/admin/products/search?q=
func (h *InventoryHandler) SearchProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.SearchProducts(c.Query("q")))
}

// FilterByCategory
// GET /api/v1/admin/products/category/:category
func (h *InventoryHandler) FilterByCategory(c *fiber.Ctx) error {
	return c.JSON(h.service.FilterProductsByCategory(c.Params("category")))
}

// GetPopularProducts
// GET /api/v1/admin/products/popular
func (h *InventoryHandler) GetPopularProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.GetPopularProducts())
}

// GetSales returns the sales history, most recent first
// GET /api/v1/admin/sales
func (h *InventoryHandler) GetSales(c *fiber.Ctx) error {
	return c.JSON(h.service.SalesHistory())
}

// CreateSale records a sale by hand
// POST /api/v1/admin/sales
func (h *InventoryHandler) CreateSale(c *fiber.Ctx) error {
	var req model.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := validator.Check(&req); err != nil {
		return errorJSON(c, err)
	}

	sale, err := h.service.RecordSale(req.ProductID, req.Quantity, req.CustomerEmail)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}
