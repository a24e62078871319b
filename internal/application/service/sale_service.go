package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hkpos/hkpos-api/internal/domain/entity"
	"github.com/hkpos/hkpos-api/internal/domain/enum"
	"github.com/hkpos/hkpos-api/internal/domain/repository"
	"github.com/hkpos/hkpos-api/pkg/apperror"
	"github.com/hkpos/hkpos-api/pkg/money"
	"github.com/shopspring/decimal"
)

// SaleNotifier receives committed sales for side effects that must never
// affect the transaction outcome, such as receipt printing.
type SaleNotifier interface {
	SaleCommitted(sale *entity.Sale)
}

// SaleService handles checkout, refunds and daily summaries
type SaleService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	settingsRepo repository.SettingsRepository
	calculator   *TaxCalculator
	notifier     SaleNotifier
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	settingsRepo repository.SettingsRepository,
	calculator *TaxCalculator,
	notifier SaleNotifier,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		settingsRepo: settingsRepo,
		calculator:   calculator,
		notifier:     notifier,
	}
}

// SaleLineInput represents one cart line. Product lines carry a product ID;
// custom lines carry a name, unit price, and optionally inline tax rates.
type SaleLineInput struct {
	ProductID *uuid.UUID
	Name      string
	Quantity  decimal.Decimal
	UnitPrice *float64
	Rates     entity.RateMap
}

// PaymentInput represents one tender against the sale. A single payment may
// omit the amount to mean "the full total".
type PaymentInput struct {
	Method string
	Amount float64
}

// CheckoutInput represents the checkout request
type CheckoutInput struct {
	Lines    []SaleLineInput
	Payments []PaymentInput
}

// Checkout validates the cart, computes totals, and commits the sale
// atomically. On success the committed sale carries its receipt number and
// the notifier is invoked in the background.
func (s *SaleService) Checkout(ctx context.Context, input *CheckoutInput) (*entity.Sale, error) {
	if len(input.Lines) == 0 {
		return nil, apperror.NewInvalidSaleError("Sale must contain at least one item")
	}
	if len(input.Payments) == 0 {
		return nil, apperror.NewInvalidSaleError("Sale must carry at least one payment")
	}
	for _, p := range input.Payments {
		if !enum.PaymentMethod(p.Method).IsValid() {
			return nil, apperror.NewInvalidSaleError(fmt.Sprintf("Unknown payment method %q", p.Method))
		}
		if p.Amount < 0 {
			return nil, apperror.NewInvalidSaleError("Payment amount cannot be negative")
		}
	}

	// Batch fetch products referenced by the cart (prevents N+1)
	productIDs := make([]uuid.UUID, 0, len(input.Lines))
	for _, line := range input.Lines {
		if line.ProductID != nil {
			productIDs = append(productIDs, *line.ProductID)
		}
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, apperror.NewStorageFailureError(err)
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	cartLines := make([]CartLine, 0, len(input.Lines))
	stockDecrements := make(map[uuid.UUID]decimal.Decimal)
	for _, line := range input.Lines {
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, apperror.NewInvalidSaleError("Item quantity must be positive")
		}

		if line.ProductID != nil {
			product, exists := productMap[*line.ProductID]
			if !exists {
				return nil, apperror.NewInvalidSaleError(fmt.Sprintf("Unknown product %s", *line.ProductID))
			}
			rates, err := s.calculator.ResolveRates(ctx, product.TaxProfileID)
			if err != nil {
				return nil, apperror.NewStorageFailureError(err)
			}
			cartLines = append(cartLines, CartLine{
				ProductID: line.ProductID,
				Name:      product.Name,
				Quantity:  line.Quantity,
				UnitPrice: product.GetPriceDecimal(),
				Rates:     rates,
			})
			stockDecrements[product.ID] = stockDecrements[product.ID].Add(line.Quantity)
			continue
		}

		// Custom line: name and unit price come from the request
		if line.Name == "" {
			return nil, apperror.NewInvalidSaleError("Custom item requires a name")
		}
		if line.UnitPrice == nil || *line.UnitPrice < 0 {
			return nil, apperror.NewInvalidSaleError("Custom item requires a non-negative unit price")
		}
		rates := line.Rates
		if rates == nil {
			rates = entity.RateMap{}
		}
		cartLines = append(cartLines, CartLine{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: decimal.NewFromFloat(*line.UnitPrice),
			Rates:     rates,
		})
	}

	totals := s.calculator.ComputeCart(cartLines)

	// Cash rounding applies to the grand total when enabled and the tender
	// includes cash. Sub-total and tax totals are stored unrounded.
	grand := totals.GrandTotal
	if s.roundCashEnabled(ctx) && tenderIncludesCash(input.Payments) {
		grand = money.RoundToNickel(grand)
	}

	breakdown := make(entity.CentsMap, len(totals.Breakdown))
	for name, amount := range totals.Breakdown {
		breakdown[name] = money.ToCents(amount)
	}

	sale := &entity.Sale{
		SoldAt:       time.Now(),
		SubTotal:     money.ToCents(totals.SubTotal),
		TaxTotal:     money.ToCents(totals.TaxTotal),
		GrandTotal:   money.ToCents(grand),
		TaxBreakdown: breakdown,
		Status:       enum.SaleStatusPaid,
	}

	items := make([]entity.SaleItem, len(cartLines))
	for i, line := range cartLines {
		items[i] = entity.SaleItem{
			ProductID:    line.ProductID,
			Name:         line.Name,
			Quantity:     line.Quantity,
			UnitPrice:    money.ToCents(line.UnitPrice),
			LineTotal:    money.ToCents(totals.LineTotals[i]),
			RateSnapshot: line.Rates,
		}
	}

	payments := make([]entity.Payment, len(input.Payments))
	for i, p := range input.Payments {
		amount := money.ToCents(decimal.NewFromFloat(p.Amount))
		if amount == 0 && len(input.Payments) == 1 {
			// Single payment with no amount means the full total
			amount = sale.GrandTotal
		}
		payments[i] = entity.Payment{
			Method: enum.PaymentMethod(p.Method),
			Amount: amount,
		}
	}

	if err := s.saleRepo.CommitSale(ctx, sale, items, payments, stockDecrements); err != nil {
		return nil, apperror.NewStorageFailureError(err)
	}

	if s.notifier != nil {
		go s.notifier.SaleCommitted(sale)
	}

	return sale, nil
}

// Refund reverses a sale in full: stock comes back, the refund ledger entry
// is written, and the sale flips to refunded. Stock restoration uses the
// quantities snapshotted on the sale items, never the live cart.
func (s *SaleService) Refund(ctx context.Context, receiptNo int64) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, receiptNo)
	if err != nil {
		return nil, apperror.NewStorageFailureError(err)
	}
	if sale == nil {
		return nil, apperror.NewSaleNotFoundError()
	}
	if sale.Status == enum.SaleStatusRefunded {
		return nil, apperror.NewAlreadyRefundedError()
	}

	stockIncrements := make(map[uuid.UUID]decimal.Decimal)
	for _, item := range sale.Items {
		if item.ProductID != nil {
			stockIncrements[*item.ProductID] = stockIncrements[*item.ProductID].Add(item.Quantity)
		}
	}

	refund := &entity.Refund{Amount: sale.GrandTotal}
	if err := s.saleRepo.RefundSale(ctx, sale.ID, refund, stockIncrements); err != nil {
		if errors.Is(err, repository.ErrSaleNotRefundable) {
			return nil, apperror.NewAlreadyRefundedError()
		}
		return nil, apperror.NewStorageFailureError(err)
	}

	sale.Status = enum.SaleStatusRefunded
	return sale, nil
}

// GetByReceiptNo returns a sale with its items and payments.
func (s *SaleService) GetByReceiptNo(ctx context.Context, receiptNo int64) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, receiptNo)
	if err != nil {
		return nil, apperror.NewStorageFailureError(err)
	}
	if sale == nil {
		return nil, apperror.NewSaleNotFoundError()
	}
	return sale, nil
}

// DailySummary aggregates one calendar day of paid sales. Refunded sales
// drop out of the totals entirely; every tender method is present in the
// result even on a zero-sale day.
func (s *SaleService) DailySummary(ctx context.Context, date string) (*repository.DailySummaryResult, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, apperror.NewInvalidSaleError("Invalid date, expected YYYY-MM-DD")
	}
	result, err := s.saleRepo.Summarize(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, apperror.NewStorageFailureError(err)
	}
	return result, nil
}

func (s *SaleService) roundCashEnabled(ctx context.Context) bool {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil || settings == nil {
		return false
	}
	return settings.RoundCash
}

func tenderIncludesCash(payments []PaymentInput) bool {
	for _, p := range payments {
		if enum.PaymentMethod(p.Method) == enum.MethodCash {
			return true
		}
	}
	return false
}
