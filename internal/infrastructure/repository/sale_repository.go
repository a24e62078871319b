package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hkpos/hkpos-api/internal/domain/entity"
	"github.com/hkpos/hkpos-api/internal/domain/enum"
	domainRepo "github.com/hkpos/hkpos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// CommitSale writes the sale, its items and payments, advances the receipt
// counter, and decrements stock in a single transaction. The counter is read
// and advanced inside the transaction so a rollback never consumes a number.
func (r *saleRepository) CommitSale(ctx context.Context, sale *entity.Sale, items []entity.SaleItem, payments []entity.Payment, stockDecrements map[uuid.UUID]decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var counter entity.ReceiptCounter
		if err := tx.First(&counter, 1).Error; err != nil {
			return err
		}
		sale.ReceiptNo = counter.Next
		if err := tx.Model(&entity.ReceiptCounter{}).
			Where("id = ?", counter.ID).
			Update("next", gorm.Expr("next + 1")).Error; err != nil {
			return err
		}

		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].SaleID = sale.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		for i := range payments {
			payments[i].SaleID = sale.ID
		}
		if len(payments) > 0 {
			if err := tx.Create(&payments).Error; err != nil {
				return err
			}
		}

		for id, qty := range stockDecrements {
			if err := tx.Model(&entity.Product{}).
				Where("id = ?", id).
				Update("stock_qty", gorm.Expr(
					"CASE WHEN stock_qty > ? THEN stock_qty - ? ELSE 0 END", qty, qty)).Error; err != nil {
				return err
			}
		}

		sale.Items = items
		sale.Payments = payments
		return nil
	})
}

// RefundSale restores stock, records the refund ledger entry, and flips the
// sale status, atomically. The status flip is guarded so two concurrent
// refunds of the same sale cannot both restore stock.
func (r *saleRepository) RefundSale(ctx context.Context, saleID uuid.UUID, refund *entity.Refund, stockIncrements map[uuid.UUID]decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Sale{}).
			Where("id = ? AND status = ?", saleID, enum.SaleStatusPaid).
			Update("status", enum.SaleStatusRefunded)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainRepo.ErrSaleNotRefundable
		}

		refund.SaleID = saleID
		if err := tx.Create(refund).Error; err != nil {
			return err
		}

		for id, qty := range stockIncrements {
			if err := tx.Model(&entity.Product{}).
				Where("id = ?", id).
				Update("stock_qty", gorm.Expr("stock_qty + ?", qty)).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *saleRepository) GetByReceiptNo(ctx context.Context, receiptNo int64) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "receipt_no = ?", receiptNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithItems(ctx context.Context, receiptNo int64) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		First(&sale, "receipt_no = ?", receiptNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

// Summarize aggregates paid sales with sold_at in [from, to). The tender map
// always carries every payment method, zero-valued when absent.
func (r *saleRepository) Summarize(ctx context.Context, from, to time.Time) (*domainRepo.DailySummaryResult, error) {
	var totals struct {
		Count      int64
		SubTotal   int64
		TaxTotal   int64
		GrandTotal int64
	}
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Select("COUNT(*) AS count, COALESCE(SUM(sub_total), 0) AS sub_total, COALESCE(SUM(tax_total), 0) AS tax_total, COALESCE(SUM(grand_total), 0) AS grand_total").
		Where("status = ? AND sold_at >= ? AND sold_at < ?", enum.SaleStatusPaid, from, to).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	tenders := make(map[enum.PaymentMethod]int64, len(enum.AllPaymentMethods))
	for _, method := range enum.AllPaymentMethods {
		tenders[method] = 0
	}

	var rows []struct {
		Method enum.PaymentMethod
		Total  int64
	}
	err = r.db.WithContext(ctx).Model(&entity.Payment{}).
		Select("payments.method AS method, COALESCE(SUM(payments.amount), 0) AS total").
		Joins("JOIN sales ON sales.id = payments.sale_id").
		Where("sales.status = ? AND sales.sold_at >= ? AND sales.sold_at < ?", enum.SaleStatusPaid, from, to).
		Group("payments.method").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		tenders[row.Method] = row.Total
	}

	return &domainRepo.DailySummaryResult{
		Count:      totals.Count,
		SubTotal:   totals.SubTotal,
		TaxTotal:   totals.TaxTotal,
		GrandTotal: totals.GrandTotal,
		Tenders:    tenders,
	}, nil
}
