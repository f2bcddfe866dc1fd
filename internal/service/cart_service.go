package service

import (
	"errors"
	"slices"
	"sync"

	"go-farm-store/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrCartNotFound = errors.New("cart not found")

// Cart is one order in progress. Every AddToCart records exactly one unit
// of sale, so sales counts track add clicks rather than units still held
// in carts.
type Cart struct {
	ID       uuid.UUID
	mu       sync.Mutex
	lines    []model.CartLine
	recorder SaleRecorder
}

func NewCart(id uuid.UUID, recorder SaleRecorder) *Cart {
	return &Cart{ID: id, recorder: recorder}
}

// AddToCart increments the product's line or inserts it with quantity 1.
func (c *Cart) AddToCart(product model.Product) model.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.recorder.RecordSale(product.ID, 1, ""); err != nil {
		zap.S().Debugw("sale not recorded for cart add", "product_id", product.ID, "error", err)
	}

	if i := c.indexOf(product.ID); i >= 0 {
		c.lines[i].Quantity++
		return c.lines[i]
	}
	line := model.CartLine{Product: product.Clone(), Quantity: 1}
	c.lines = append(c.lines, line)
	return line
}

func (c *Cart) RemoveFromCart(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(productID)
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
// No sale is recorded.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.remove(productID)
		return
	}
	if i := c.indexOf(productID); i >= 0 {
		c.lines[i].Quantity = quantity
	}
}

func (c *Cart) ClearCart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []model.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyLines()
}

// Total is the sum of price times quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	return c.Summary().Total
}

// Summary returns the lines together with the derived total and item count.
func (c *Cart) Summary() model.CartSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.Summarize(c.ID, c.copyLines())
}

// ItemCount is the sum of line quantities.
func (c *Cart) ItemCount() int {
	return c.Summary().ItemCount
}

// drain empties the cart and returns what it held.
func (c *Cart) drain() []model.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	lines := c.lines
	c.lines = nil
	return lines
}

func (c *Cart) remove(productID string) {
	if i := c.indexOf(productID); i >= 0 {
		c.lines = slices.Delete(c.lines, i, i+1)
	}
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.lines {
		if c.lines[i].ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) copyLines() []model.CartLine {
	out := make([]model.CartLine, len(c.lines))
	for i, line := range c.lines {
		line.Product = line.Product.Clone()
		out[i] = line
	}
	return out
}

// CartService keeps the carts of all shoppers, keyed by cart id.
type CartService interface {
	Create() *Cart
	Get(id uuid.UUID) (*Cart, error)
	Drop(id uuid.UUID)
}

type cartService struct {
	mu       sync.RWMutex
	carts    map[uuid.UUID]*Cart
	recorder SaleRecorder
}

func NewCartService(recorder SaleRecorder) CartService {
	return &cartService{
		carts:    make(map[uuid.UUID]*Cart),
		recorder: recorder,
	}
}

func (s *cartService) Create() *Cart {
	cart := NewCart(uuid.New(), s.recorder)
	s.mu.Lock()
	s.carts[cart.ID] = cart
	s.mu.Unlock()
	return cart
}

func (s *cartService) Get(id uuid.UUID) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.carts[id]
	if !ok {
		return nil, ErrCartNotFound
	}
	return cart, nil
}

func (s *cartService) Drop(id uuid.UUID) {
	s.mu.Lock()
	delete(s.carts, id)
	s.mu.Unlock()
}
