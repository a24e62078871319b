package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleLineRequest represents one cart line. Product lines reference the
// catalog; custom lines carry their own name, unit price and optional rates.
type SaleLineRequest struct {
	ProductID *uuid.UUID         `json:"product_id"`
	Name      string             `json:"name"`
	Quantity  decimal.Decimal    `json:"quantity"`
	UnitPrice *float64           `json:"unit_price"`
	Rates     map[string]float64 `json:"rates"`
}

// PaymentRequest represents one tender. Amount may be omitted on a single
// payment to mean the full total.
type PaymentRequest struct {
	Method string  `json:"method" binding:"required"`
	Amount float64 `json:"amount"`
}

// CheckoutRequest represents a checkout request
type CheckoutRequest struct {
	Items    []SaleLineRequest `json:"items"`
	Payments []PaymentRequest  `json:"payments"`
}

// RefundRequest carries the PIN gating the refund action
type RefundRequest struct {
	PIN string `json:"pin"`
}

// SummaryFilterRequest represents daily summary query parameters
type SummaryFilterRequest struct {
	Date string `form:"date" binding:"required"`
}
