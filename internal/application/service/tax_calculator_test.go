package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hkpos/hkpos-api/internal/application/service"
	"github.com/hkpos/hkpos-api/internal/domain/entity"
	"github.com/hkpos/hkpos-api/internal/infrastructure/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRates(t *testing.T) {
	db := newTestDB(t)
	calc := service.NewTaxCalculator(repository.NewTaxProfileRepository(db))
	ctx := context.Background()

	profile := createProfile(t, db, "GST only", entity.RateMap{"GST": 0.05})

	t.Run("resolves a live profile", func(t *testing.T) {
		rates, err := calc.ResolveRates(ctx, &profile.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.RateMap{"GST": 0.05}, rates)
	})

	t.Run("nil reference resolves untaxed", func(t *testing.T) {
		rates, err := calc.ResolveRates(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, rates)
	})

	t.Run("dangling reference resolves untaxed", func(t *testing.T) {
		missing := uuid.New()
		rates, err := calc.ResolveRates(ctx, &missing)
		require.NoError(t, err)
		assert.Empty(t, rates)
	})
}

func TestComputeCart(t *testing.T) {
	db := newTestDB(t)
	calc := service.NewTaxCalculator(repository.NewTaxProfileRepository(db))

	gst := entity.RateMap{"GST": 0.05}
	gstPST := entity.RateMap{"GST": 0.05, "PST": 0.07}

	t.Run("mixed cart totals", func(t *testing.T) {
		// 20.00 under GST only plus 9.99 under GST+PST:
		// GST = 0.05 * 29.99 = 1.4995 -> 1.50
		// PST = 0.07 * 9.99  = 0.6993 -> 0.70
		totals := calc.ComputeCart([]service.CartLine{
			{Name: "Service", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("20.00"), Rates: gst},
			{Name: "Cable", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("9.99"), Rates: gstPST},
		})

		assert.True(t, totals.SubTotal.Equal(decimal.RequireFromString("29.99")), "subtotal %s", totals.SubTotal)
		assert.True(t, totals.Breakdown["GST"].Equal(decimal.RequireFromString("1.50")), "GST %s", totals.Breakdown["GST"])
		assert.True(t, totals.Breakdown["PST"].Equal(decimal.RequireFromString("0.70")), "PST %s", totals.Breakdown["PST"])
		assert.True(t, totals.TaxTotal.Equal(decimal.RequireFromString("2.20")), "tax %s", totals.TaxTotal)
		assert.True(t, totals.GrandTotal.Equal(decimal.RequireFromString("32.19")), "grand %s", totals.GrandTotal)
	})

	t.Run("tax rounds once per name across lines", func(t *testing.T) {
		// Three 0.33 lines at 5%: per-line rounding would give 3 * 0.02 = 0.06;
		// aggregate rounding gives round(0.0495) = 0.05.
		line := service.CartLine{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("0.33"), Rates: gst}
		totals := calc.ComputeCart([]service.CartLine{line, line, line})

		assert.True(t, totals.TaxTotal.Equal(decimal.RequireFromString("0.05")), "tax %s", totals.TaxTotal)
	})

	t.Run("subtotal aggregates before rounding", func(t *testing.T) {
		// Two lines of 1.5 x 0.05: each exact line amount is 0.075, so the
		// persisted line totals round to 0.08, but the subtotal sums the
		// exact amounts (0.15) rather than the rounded lines (0.16).
		line := service.CartLine{Quantity: decimal.RequireFromString("1.5"), UnitPrice: decimal.RequireFromString("0.05"), Rates: entity.RateMap{}}
		totals := calc.ComputeCart([]service.CartLine{line, line})

		assert.True(t, totals.SubTotal.Equal(decimal.RequireFromString("0.15")), "subtotal %s", totals.SubTotal)
		assert.True(t, totals.GrandTotal.Equal(decimal.RequireFromString("0.15")), "grand %s", totals.GrandTotal)
		assert.True(t, totals.LineTotals[0].Equal(decimal.RequireFromString("0.08")), "line %s", totals.LineTotals[0])
		assert.True(t, totals.LineTotals[1].Equal(decimal.RequireFromString("0.08")), "line %s", totals.LineTotals[1])
		assert.True(t, totals.TaxTotal.IsZero())
	})

	t.Run("fractional quantity", func(t *testing.T) {
		totals := calc.ComputeCart([]service.CartLine{
			{Quantity: decimal.RequireFromString("1.5"), UnitPrice: decimal.RequireFromString("3.33"), Rates: gst},
		})
		// 1.5 * 3.33 = 4.995 -> 5.00; tax on the exact amount: 0.24975 -> 0.25
		assert.True(t, totals.SubTotal.Equal(decimal.RequireFromString("5.00")), "subtotal %s", totals.SubTotal)
		assert.True(t, totals.TaxTotal.Equal(decimal.RequireFromString("0.25")), "tax %s", totals.TaxTotal)
	})

	t.Run("empty cart is all zeros", func(t *testing.T) {
		totals := calc.ComputeCart(nil)
		assert.True(t, totals.SubTotal.IsZero())
		assert.True(t, totals.GrandTotal.IsZero())
		assert.Empty(t, totals.Breakdown)
	})
}
