package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRequest represents a product create/update request
type ProductRequest struct {
	SKU          *string         `json:"sku" binding:"omitempty,max=100"`
	Name         string          `json:"name" binding:"required,min=1,max=255"`
	Price        float64         `json:"price" binding:"min=0"`
	Cost         float64         `json:"cost" binding:"min=0"`
	StockQty     decimal.Decimal `json:"stock_qty"`
	QuickKey     bool            `json:"quick_key"`
	TaxProfileID *uuid.UUID      `json:"tax_profile_id"`
	Active       *bool           `json:"active"`
}

// AdjustStockRequest represents a manual stock correction
type AdjustStockRequest struct {
	Delta decimal.Decimal `json:"delta" binding:"required"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	QuickOnly  bool   `form:"quick_only"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
