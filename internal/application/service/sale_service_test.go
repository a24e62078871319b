package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hkpos/hkpos-api/internal/application/service"
	"github.com/hkpos/hkpos-api/internal/domain/entity"
	"github.com/hkpos/hkpos-api/internal/domain/enum"
	"github.com/hkpos/hkpos-api/internal/infrastructure/repository"
	"github.com/hkpos/hkpos-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSaleService(db *gorm.DB) *service.SaleService {
	taxProfileRepo := repository.NewTaxProfileRepository(db)
	return service.NewSaleService(
		repository.NewSaleRepository(db),
		repository.NewProductRepository(db),
		repository.NewSettingsRepository(db),
		service.NewTaxCalculator(taxProfileRepo),
		nil,
	)
}

func setRoundCash(t *testing.T, db *gorm.DB, on bool) {
	t.Helper()
	require.NoError(t, db.Model(&entity.StoreSettings{}).Where("id = ?", 1).Update("round_cash", on).Error)
}

func cashPayment() []service.PaymentInput {
	return []service.PaymentInput{{Method: "cash"}}
}

func errCode(err error) int {
	return apperror.GetAppError(err).Code
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("computes totals and assigns sequential receipt numbers", func(t *testing.T) {
		db := newTestDB(t)
		svc := newSaleService(db)

		gst := createProfile(t, db, "T-GST", entity.RateMap{"GST": 0.05})
		both := createProfile(t, db, "T-GST-PST", entity.RateMap{"GST": 0.05, "PST": 0.07})
		svc1 := createProduct(t, db, "Service Job", 20.00, 10, &gst.ID)
		cable := createProduct(t, db, "Cable", 9.99, 10, &both.ID)

		sale, err := svc.Checkout(ctx, &service.CheckoutInput{
			Lines: []service.SaleLineInput{
				{ProductID: &svc1.ID, Quantity: decimal.NewFromInt(1)},
				{ProductID: &cable.ID, Quantity: decimal.NewFromInt(1)},
			},
			Payments: []service.PaymentInput{{Method: "card_external"}},
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1000), sale.ReceiptNo)
		assert.Equal(t, int64(2999), sale.SubTotal)
		assert.Equal(t, int64(220), sale.TaxTotal)
		assert.Equal(t, int64(3219), sale.GrandTotal)
		assert.Equal(t, int64(150), sale.TaxBreakdown["GST"])
		assert.Equal(t, int64(70), sale.TaxBreakdown["PST"])
		assert.Equal(t, enum.SaleStatusPaid, sale.Status)

		// Rate snapshots are frozen on the items
		require.Len(t, sale.Items, 2)
		assert.Equal(t, entity.RateMap{"GST": 0.05}, sale.Items[0].RateSnapshot)

		// Defaulted payment covers the full total
		require.Len(t, sale.Payments, 1)
		assert.Equal(t, sale.GrandTotal, sale.Payments[0].Amount)

		second, err := svc.Checkout(ctx, &service.CheckoutInput{
			Lines:    []service.SaleLineInput{{ProductID: &cable.ID, Quantity: decimal.NewFromInt(1)}},
			Payments: cashPayment(),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1001), second.ReceiptNo)
		assert.Equal(t, int64(1002), counterNext(t, db))
	})

	t.Run("cash rounding rounds the grand total to the nickel", func(t *testing.T) {
		db := newTestDB(t)
		svc := newSaleService(db)
		setRoundCash(t, db, true)

		gst := createProfile(t, db, "T-GST", entity.RateMap{"GST": 0.05})
		both := createProfile(t, db, "T-GST-PST", entity.RateMap{"GST": 0.05, "PST": 0.07})
		svc1 := createProduct(t, db, "Service Job", 20.00, 10, &gst.ID)
		cable := createProduct(t, db, "Cable", 9.99, 10, &both.ID)

		lines := []service.SaleLineInput{
			{ProductID: &svc1.ID, Quantity: decimal.NewFromInt(1)},
			{ProductID: &cable.ID, Quantity: decimal.NewFromInt(1)},
		}

		sale, err := svc.Checkout(ctx, &service.CheckoutInput{Lines: lines, Payments: cashPayment()})
		require.NoError(t, err)
		// 32.19 rounds up to 32.20; sub and tax totals stay exact
		assert.Equal(t, int64(3220), sale.GrandTotal)
		assert.Equal(t, int64(2999), sale.SubTotal)
		assert.Equal(t, int64(220), sale.TaxTotal)

		// Card tenders are never rounded
		cardSale, err := svc.Checkout(ctx, &service.CheckoutInput{
			Lines:    lines,
			Payments: []service.PaymentInput{{Method: "card_external"}},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3219), cardSale.GrandTotal)
	})

	t.Run("cash rounding disabled leaves the total exact", func(t *testing.T) {
		db := newTestDB(t)
		svc := newSaleService(db)

		both := createProfile(t, db, "T-GST-PST", entity.RateMap{"GST": 0.05, "PST": 0.07})
		gst := createProfile(t, db, "T-GST", entity.RateMap{"GST": 0.05})
		svc1 := createProduct(t, db, "Service Job", 20.00, 10, &gst.ID)
		cable := createProduct(t, db, "Cable", 9.99, 10, &both.ID)

		sale, err := svc.Checkout(ctx, &service.CheckoutInput{
			Lines: []service.SaleLineInput{
				{ProductID: &svc1.ID, Quantity: decimal.NewFromInt(1)},
				{ProductID: &cable.ID, Quantity: decimal.NewFromInt(1)},
			},
			Payments: cashPayment(),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3219), sale.GrandTotal)
	})

	t.Run("custom items sell with inline rates", func(t *testing.T) {
		db := newTestDB(t)
		svc := newSaleService(db)

		price := 10.00
		sale, err := svc.Checkout(ctx, &service.CheckoutInput{
			Lines: []service.SaleLineInput{{
				Name:      "Open Dept",
				Quantity:  decimal.NewFromInt(2),
				UnitPrice: &price,
				Rates:     entity.RateMap{"GST": 0.05},
			}},
			Payments: cashPayment(),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2000), sale.SubTotal)
		assert.Equal(t, int64(100), sale.TaxTotal)
		require.Len(t, sale.Items, 1)
		assert.Nil(t, sale.Items[0].ProductID)
		assert.Equal(t, "Open Dept", sale.Items[0].Name)
	})

	t.Run("stock decrements and floors at zero", func(t *testing.T) {
		db := newTestDB(t)
		svc := newSaleService(db)

		cable := createProduct(t, db, "Cable", 9.99, 2, nil)

		_, err := svc.Checkout(ctx, &service.CheckoutInput{
			Lines:    []service.SaleLineInput{{ProductID: &cable.ID, Quantity: decimal.NewFromInt(5)}},
			Payments: cashPayment(),
		})
		require.NoError(t, err)
		assert.True(t, stockOf(t, db, cable.ID).IsZero(), "oversold stock clamps to zero")
	})

	t.Run("rejects malformed sales", func(t *testing.T) {
		db := newTestDB(t)
		svc := newSaleService(db)
		cable := createProduct(t, db, "Cable", 9.99, 10, nil)

		tests := []struct {
			name  string
			input *service.CheckoutInput
		}{
			{"empty cart", &service.CheckoutInput{Payments: cashPayment()}},
			{"no payments", &service.CheckoutInput{
				Lines: []service.SaleLineInput{{ProductID: &cable.ID, Quantity: decimal.NewFromInt(1)}},
			}},
			{"unknown payment method", &service.CheckoutInput{
				Lines:    []service.SaleLineInput{{ProductID: &cable.ID, Quantity: decimal.NewFromInt(1)}},
				Payments: []service.PaymentInput{{Method: "cheque"}},
			}},
			{"unknown product", &service.CheckoutInput{
				Lines:    []service.SaleLineInput{{ProductID: ptr(uuid.New()), Quantity: decimal.NewFromInt(1)}},
				Payments: cashPayment(),
			}},
			{"zero quantity", &service.CheckoutInput{
				Lines:    []service.SaleLineInput{{ProductID: &cable.ID, Quantity: decimal.Zero}},
				Payments: cashPayment(),
			}},
			{"custom item without price", &service.CheckoutInput{
				Lines:    []service.SaleLineInput{{Name: "Misc", Quantity: decimal.NewFromInt(1)}},
				Payments: cashPayment(),
			}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Checkout(ctx, tt.input)
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, errCode(err))
			})
		}

		// Nothing was consumed by the rejected attempts
		assert.Equal(t, int64(1000), counterNext(t, db))
		assert.True(t, stockOf(t, db, cable.ID).Equal(decimal.NewFromInt(10)))
	})

	t.Run("failed commit consumes nothing", func(t *testing.T) {
		db := newTestDB(t)
		svc := newSaleService(db)
		cable := createProduct(t, db, "Cable", 9.99, 10, nil)

		// Force the payment insert inside the transaction to fail
		require.NoError(t, db.Migrator().DropTable(&entity.Payment{}))

		_, err := svc.Checkout(ctx, &service.CheckoutInput{
			Lines:    []service.SaleLineInput{{ProductID: &cable.ID, Quantity: decimal.NewFromInt(1)}},
			Payments: cashPayment(),
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, errCode(err))

		// The rollback left no trace: no sale, no stock change, no receipt number
		var saleCount int64
		require.NoError(t, db.Model(&entity.Sale{}).Count(&saleCount).Error)
		assert.Zero(t, saleCount)
		assert.True(t, stockOf(t, db, cable.ID).Equal(decimal.NewFromInt(10)))
		assert.Equal(t, int64(1000), counterNext(t, db))
	})
}

func TestRefund(t *testing.T) {
	ctx := context.Background()

	t.Run("restores stock and flips status exactly once", func(t *testing.T) {
		db := newTestDB(t)
		svc := newSaleService(db)
		cable := createProduct(t, db, "Cable", 9.99, 10, nil)

		sale, err := svc.Checkout(ctx, &service.CheckoutInput{
			Lines:    []service.SaleLineInput{{ProductID: &cable.ID, Quantity: decimal.NewFromInt(3)}},
			Payments: cashPayment(),
		})
		require.NoError(t, err)
		require.True(t, stockOf(t, db, cable.ID).Equal(decimal.NewFromInt(7)))

		refunded, err := svc.Refund(ctx, sale.ReceiptNo)
		require.NoError(t, err)
		assert.Equal(t, enum.SaleStatusRefunded, refunded.Status)
		assert.True(t, stockOf(t, db, cable.ID).Equal(decimal.NewFromInt(10)))

		var refund entity.Refund
		require.NoError(t, db.First(&refund, "sale_id = ?", sale.ID).Error)
		assert.Equal(t, sale.GrandTotal, refund.Amount)

		// A second refund is rejected and must not restore stock again
		_, err = svc.Refund(ctx, sale.ReceiptNo)
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, errCode(err))
		assert.True(t, stockOf(t, db, cable.ID).Equal(decimal.NewFromInt(10)))
	})

	t.Run("unknown receipt number", func(t *testing.T) {
		db := newTestDB(t)
		svc := newSaleService(db)

		_, err := svc.Refund(ctx, 999999)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, errCode(err))
	})
}

func TestDailySummary(t *testing.T) {
	ctx := context.Background()
	today := time.Now().Format("2006-01-02")

	t.Run("zero-sale day still reports every tender", func(t *testing.T) {
		db := newTestDB(t)
		svc := newSaleService(db)

		result, err := svc.DailySummary(ctx, today)
		require.NoError(t, err)
		assert.Zero(t, result.Count)
		assert.Zero(t, result.GrandTotal)
		for _, method := range enum.AllPaymentMethods {
			amount, ok := result.Tenders[method]
			assert.True(t, ok, "tender %s missing", method)
			assert.Zero(t, amount)
		}
	})

	t.Run("aggregates paid sales and drops refunded ones", func(t *testing.T) {
		db := newTestDB(t)
		svc := newSaleService(db)
		cable := createProduct(t, db, "Cable", 10.00, 100, nil)

		sell := func(method string, qty int64) *entity.Sale {
			sale, err := svc.Checkout(ctx, &service.CheckoutInput{
				Lines:    []service.SaleLineInput{{ProductID: &cable.ID, Quantity: decimal.NewFromInt(qty)}},
				Payments: []service.PaymentInput{{Method: method}},
			})
			require.NoError(t, err)
			return sale
		}

		sell("cash", 1)        // 10.00
		sell("card_external", 2) // 20.00
		toRefund := sell("etransfer", 3)

		_, err := svc.Refund(ctx, toRefund.ReceiptNo)
		require.NoError(t, err)

		result, err := svc.DailySummary(ctx, today)
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.Count)
		assert.Equal(t, int64(3000), result.GrandTotal)
		assert.Equal(t, int64(1000), result.Tenders[enum.MethodCash])
		assert.Equal(t, int64(2000), result.Tenders[enum.MethodCardExternal])
		assert.Equal(t, int64(0), result.Tenders[enum.MethodETransfer])
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		db := newTestDB(t)
		svc := newSaleService(db)

		_, err := svc.DailySummary(ctx, "30-08-2026")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, errCode(err))
	})
}

func ptr[T any](v T) *T {
	return &v
}
