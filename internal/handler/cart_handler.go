package handler

import (
	"go-farm-store/internal/model"
	"go-farm-store/internal/service"
	"go-farm-store/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CartHandler struct {
	carts    service.CartService
	store    service.StoreService
	checkout service.CheckoutService
}

func NewCartHandler(carts service.CartService, store service.StoreService, checkout service.CheckoutService) *CartHandler {
	return &CartHandler{carts: carts, store: store, checkout: checkout}
}

// cart resolves the :id param; on failure the response is already written.
func (h *CartHandler) cart(c *fiber.Ctx) (*service.Cart, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, c.Status(400).JSON(fiber.Map{"error": "Invalid cart ID"})
	}
	cart, err := h.carts.Get(id)
	if err != nil {
		return nil, errorJSON(c, err)
	}
	return cart, nil
}

// CreateCart
// POST /api/v1/carts
func (h *CartHandler) CreateCart(c *fiber.Ctx) error {
	cart := h.carts.Create()
	return c.Status(201).JSON(cart.Summary())
}

// GetCart returns lines, total and item count
// GET /api/v1/carts/:id
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	cart, err := h.cart(c)
	if cart == nil {
		return err
	}
	return c.JSON(cart.Summary())
}

// AddItem adds one unit of a catalog product
// POST /api/v1/carts/:id/items
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	cart, err := h.cart(c)
	if cart == nil {
		return err
	}

	var req model.AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := validator.Check(&req); err != nil {
		return errorJSON(c, err)
	}

	product, err := h.store.GetProduct(req.ProductID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}
	cart.AddToCart(*product)

	return c.Status(201).JSON(cart.Summary())
}

// UpdateItem sets a line quantity; zero or less removes the line
// PUT /api/v1/carts/:id/items/:productId
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	cart, err := h.cart(c)
	if cart == nil {
		return err
	}

	var req model.UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	cart.UpdateQuantity(c.Params("productId"), req.Quantity)

	return c.JSON(cart.Summary())
}

// RemoveItem
// DELETE /api/v1/carts/:id/items/:productId
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	cart, err := h.cart(c)
	if cart == nil {
		return err
	}
	cart.RemoveFromCart(c.Params("productId"))
	return c.JSON(cart.Summary())
}

// ClearCart
// DELETE /api/v1/carts/:id/items
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	cart, err := h.cart(c)
	if cart == nil {
		return err
	}
	cart.ClearCart()
	return c.JSON(cart.Summary())
}

// Checkout completes the order after the simulated payment
// POST /api/v1/carts/:id/checkout
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	cart, err := h.cart(c)
	if cart == nil {
		return err
	}

	var form model.CheckoutForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.checkout.Checkout(cart.ID, &form)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Order complete", "data": order})
}
