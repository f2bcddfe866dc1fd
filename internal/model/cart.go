package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is a product snapshot plus the quantity ordered. A line never
// holds a quantity below one; it is removed instead.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal is price times quantity.
func (l *CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartSummary is a read-only view of a cart with derived totals.
type CartSummary struct {
	ID        uuid.UUID       `json:"id"`
	Items     []CartLine      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// Summarize derives totals over lines.
func Summarize(id uuid.UUID, lines []CartLine) CartSummary {
	summary := CartSummary{ID: id, Items: lines, Total: decimal.Zero}
	if summary.Items == nil {
		summary.Items = []CartLine{}
	}
	for i := range lines {
		summary.Total = summary.Total.Add(lines[i].Subtotal())
		summary.ItemCount += lines[i].Quantity
	}
	return summary
}

// AddItemRequest is the body of an add-to-cart call.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// UpdateQuantityRequest is the body of a quantity change.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutForm holds the contact, shipping and card fields of checkout.
// Card data is only checked for presence; no payment is taken.
type CheckoutForm struct {
	Email      string `json:"email" validate:"required,email"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	Zip        string `json:"zip" validate:"required"`
	CardNumber string `json:"card_number" validate:"required"`
	Expiry     string `json:"expiry" validate:"required"`
	CVV        string `json:"cvv" validate:"required"`
}

// Order is the confirmation returned once checkout completes.
type Order struct {
	ID          uuid.UUID       `json:"id"`
	CartID      uuid.UUID       `json:"cart_id"`
	Email       string          `json:"email"`
	FullName    string          `json:"full_name"`
	Items       []CartLine      `json:"items"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"item_count"`
	CompletedAt time.Time       `json:"completed_at"`
}
