package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord is one entry of the sales history. Records are never
// mutated; ProductName is a snapshot so the record survives deletion of
// the product it points at.
type SaleRecord struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"` // Snapshot price * quantity
	Timestamp     time.Time       `json:"timestamp"`
	CustomerEmail string          `json:"customerEmail,omitempty"`
}

// SaleRequest is the admin payload for recording a sale by hand.
type SaleRequest struct {
	ProductID     string `json:"product_id" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,gt=0,lte=100000"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email"`
}
