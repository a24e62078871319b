package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hkpos/hkpos-api/internal/domain/entity"
	"github.com/hkpos/hkpos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ErrSaleNotRefundable is returned by RefundSale when the guarded status flip
// matches no row: the sale was already refunded by a concurrent request.
var ErrSaleNotRefundable = errors.New("sale is not refundable")

// SaleRepository is the transactional store behind the sale engine. Commit
// and Refund are all-or-nothing: every row they touch lands together or the
// whole transaction rolls back, receipt counter included.
type SaleRepository interface {
	// CommitSale persists the sale header, its items and payments, decrements
	// stock for product-backed items (floored at zero), and assigns the next
	// receipt number, all in one transaction. On success sale.ReceiptNo and
	// all row IDs are populated.
	CommitSale(ctx context.Context, sale *entity.Sale, items []entity.SaleItem, payments []entity.Payment, stockDecrements map[uuid.UUID]decimal.Decimal) error

	// RefundSale restores stock for the given increments, appends the refund
	// ledger entry, and flips the sale status to refunded, atomically.
	RefundSale(ctx context.Context, saleID uuid.UUID, refund *entity.Refund, stockIncrements map[uuid.UUID]decimal.Decimal) error

	GetByReceiptNo(ctx context.Context, receiptNo int64) (*entity.Sale, error)
	GetWithItems(ctx context.Context, receiptNo int64) (*entity.Sale, error)

	// Summarize aggregates paid sales with sold_at in [from, to).
	Summarize(ctx context.Context, from, to time.Time) (*DailySummaryResult, error)
}

// DailySummaryResult is the raw rollup of one calendar day, in cents.
type DailySummaryResult struct {
	Count      int64
	SubTotal   int64
	TaxTotal   int64
	GrandTotal int64
	Tenders    map[enum.PaymentMethod]int64
}
