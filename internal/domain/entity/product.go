package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalog item sellable at the register. Services are
// products too (zero stock, no SKU). Stock levels are advisory, never
// capacity-constrained.
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SKU          *string         `gorm:"size:100;uniqueIndex" json:"sku,omitempty"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Price        int64           `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Cost         int64           `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	StockQty     decimal.Decimal `gorm:"type:numeric(12,3);default:0" json:"-"`
	QuickKey     bool            `gorm:"default:false" json:"quick_key"`
	TaxProfileID *uuid.UUID      `gorm:"type:uuid;index" json:"tax_profile_id,omitempty"`
	Active       bool            `gorm:"default:true" json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	TaxProfile *TaxProfile `gorm:"foreignKey:TaxProfileID" json:"tax_profile,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price    float64 `json:"price"`
		Cost     float64 `json:"cost"`
		StockQty float64 `json:"stock_qty"`
	}{
		Alias:    Alias(p),
		Price:    float64(p.Price) / 100,
		Cost:     float64(p.Cost) / 100,
		StockQty: p.StockQty.InexactFloat64(),
	})
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetPriceDecimal returns the selling price as a decimal dollar amount.
func (p *Product) GetPriceDecimal() decimal.Decimal {
	return decimal.NewFromInt(p.Price).Div(decimal.NewFromInt(100))
}

// SetPriceFromFloat sets the selling price from a decimal value
func (p *Product) SetPriceFromFloat(price float64) {
	p.Price = decimal.NewFromFloat(price).Round(2).Mul(decimal.NewFromInt(100)).IntPart()
}

// SetCostFromFloat sets the unit cost from a decimal value
func (p *Product) SetCostFromFloat(cost float64) {
	p.Cost = decimal.NewFromFloat(cost).Round(2).Mul(decimal.NewFromInt(100)).IntPart()
}
