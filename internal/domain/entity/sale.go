package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hkpos/hkpos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is the header row of a committed transaction. Totals are stored in
// cents exactly as computed at checkout so receipts and summaries are
// reproducible from stored data alone. SubTotal and TaxTotal are the
// calculator outputs before cash rounding; GrandTotal is the amount tendered
// against (after cash rounding, when it applied).
type Sale struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptNo    int64           `gorm:"uniqueIndex;not null" json:"receipt_no"`
	SoldAt       time.Time       `gorm:"not null;index" json:"sold_at"`
	SubTotal     int64           `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	TaxTotal     int64           `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	GrandTotal   int64           `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	TaxBreakdown CentsMap        `gorm:"not null" json:"tax_breakdown"`
	Status       enum.SaleStatus `gorm:"default:0" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relationships
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	Payments []Payment  `gorm:"foreignKey:SaleID" json:"payments,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	breakdown := make(map[string]float64, len(s.TaxBreakdown))
	for name, cents := range s.TaxBreakdown {
		breakdown[name] = float64(cents) / 100
	}
	return json.Marshal(&struct {
		Alias
		SubTotal     float64            `json:"subtotal"`
		TaxTotal     float64            `json:"tax_total"`
		GrandTotal   float64            `json:"grand_total"`
		TaxBreakdown map[string]float64 `json:"tax_breakdown"`
	}{
		Alias:        Alias(s),
		SubTotal:     float64(s.SubTotal) / 100,
		TaxTotal:     float64(s.TaxTotal) / 100,
		GrandTotal:   float64(s.GrandTotal) / 100,
		TaxBreakdown: breakdown,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is one cart line frozen at commit time: name snapshot, unit price
// and quantity as sold, and the resolved tax rates that applied. Immutable
// after creation.
type SaleItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID    *uuid.UUID      `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Quantity     decimal.Decimal `gorm:"type:numeric(12,3);not null" json:"-"`
	UnitPrice    int64           `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	LineTotal    int64           `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	RateSnapshot RateMap         `gorm:"not null" json:"rate_snapshot"`
	CreatedAt    time.Time       `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		Quantity  float64 `json:"quantity"`
		UnitPrice float64 `json:"unit_price"`
		LineTotal float64 `json:"line_total"`
	}{
		Alias:     Alias(si),
		Quantity:  si.Quantity.InexactFloat64(),
		UnitPrice: float64(si.UnitPrice) / 100,
		LineTotal: float64(si.LineTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// Payment records one tender against a sale. A sale may carry several
// payments; the engine records what it is given and does not enforce that
// they sum to the grand total.
type Payment struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"sale_id"`
	Method    enum.PaymentMethod `gorm:"size:20;not null" json:"method"`
	Amount    int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time          `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// Refund is an append-only ledger entry reversing one sale in full. The
// original sale row is never deleted; its status flips to refunded in the
// same transaction that writes this entry.
type Refund struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"sale_id"`
	Amount    int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r Refund) MarshalJSON() ([]byte, error) {
	type Alias Refund
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(r),
		Amount: float64(r.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new refund
func (r *Refund) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Refund model
func (Refund) TableName() string {
	return "refunds"
}

// ReceiptCounter is the single persisted row holding the next human-facing
// receipt number. It is read and advanced inside the sale-commit transaction,
// so a rolled-back commit never consumes a number.
type ReceiptCounter struct {
	ID   int   `gorm:"primaryKey" json:"id"`
	Next int64 `gorm:"not null" json:"next"`
}

// TableName returns the table name for the ReceiptCounter model
func (ReceiptCounter) TableName() string {
	return "receipt_counters"
}
