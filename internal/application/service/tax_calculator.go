package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hkpos/hkpos-api/internal/domain/entity"
	"github.com/hkpos/hkpos-api/internal/domain/repository"
	"github.com/hkpos/hkpos-api/pkg/money"
	"github.com/shopspring/decimal"
)

// TaxCalculator resolves tax profiles and computes cart totals. All
// arithmetic runs on decimals; the subtotal and each named tax accumulate
// exactly across the whole cart and round to the cent once at the end,
// not per line.
type TaxCalculator struct {
	taxProfileRepo repository.TaxProfileRepository
}

// NewTaxCalculator creates a new tax calculator
func NewTaxCalculator(taxProfileRepo repository.TaxProfileRepository) *TaxCalculator {
	return &TaxCalculator{taxProfileRepo: taxProfileRepo}
}

// CartLine is one line of a cart with its rate snapshot already resolved.
type CartLine struct {
	ProductID *uuid.UUID
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Rates     entity.RateMap
}

// CartTotals is the calculator output, in dollars.
type CartTotals struct {
	SubTotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
	Breakdown  map[string]decimal.Decimal
	LineTotals []decimal.Decimal
}

// ResolveRates returns the rate map for a tax profile reference. A nil or
// dangling reference resolves to an empty map: the line simply sells untaxed
// rather than blocking the register.
func (c *TaxCalculator) ResolveRates(ctx context.Context, profileID *uuid.UUID) (entity.RateMap, error) {
	if profileID == nil {
		return entity.RateMap{}, nil
	}
	profile, err := c.taxProfileRepo.GetByID(ctx, *profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return entity.RateMap{}, nil
	}
	return profile.Rates, nil
}

// ComputeCart totals a cart. The subtotal and each named tax accumulate the
// exact quantity times unit price across all lines and round once at the
// end, so a cart of many small or fractional lines does not drift from
// per-line rounding. LineTotals round independently; they are kept only for
// per-item persistence and receipts.
func (c *TaxCalculator) ComputeCart(lines []CartLine) *CartTotals {
	totals := &CartTotals{
		Breakdown:  make(map[string]decimal.Decimal),
		LineTotals: make([]decimal.Decimal, len(lines)),
	}

	subTotal := decimal.Zero
	accum := make(map[string]decimal.Decimal)
	for i, line := range lines {
		amount := line.UnitPrice.Mul(line.Quantity)
		totals.LineTotals[i] = money.Round2(amount)
		subTotal = subTotal.Add(amount)

		for name, rate := range line.Rates {
			accum[name] = accum[name].Add(amount.Mul(decimal.NewFromFloat(rate)))
		}
	}

	totals.SubTotal = money.Round2(subTotal)
	totals.TaxTotal = decimal.Zero
	for name, amount := range accum {
		rounded := money.Round2(amount)
		totals.Breakdown[name] = rounded
		totals.TaxTotal = totals.TaxTotal.Add(rounded)
	}

	totals.GrandTotal = totals.SubTotal.Add(totals.TaxTotal)
	return totals
}
