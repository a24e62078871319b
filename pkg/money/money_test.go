package money_test

import (
	"testing"

	"github.com/hkpos/hkpos-api/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundToNickel(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
	}{
		{"already a nickel", "12.00", "12"},
		{"rounds down", "12.02", "12"},
		{"half rounds up", "12.025", "12.05"},
		{"rounds up", "12.03", "12.05"},
		{"rounds up to next dime", "12.08", "12.1"},
		{"grand total case", "32.19", "32.2"},
		{"exact nickel untouched", "0.05", "0.05"},
		{"zero", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := decimal.NewFromString(tt.in)
			assert.NoError(t, err)
			got := money.RoundToNickel(in)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"RoundToNickel(%s) = %s, want %s", tt.in, got, tt.want)
		})
	}
}

func TestToCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"29.99", 2999},
		{"32.20", 3220},
		{"0.005", 1},   // rounds to the cent first
		{"10.004", 1000},
		{"-5.25", -525},
	}

	for _, tt := range tests {
		got := money.ToCents(decimal.RequireFromString(tt.in))
		assert.Equal(t, tt.want, got, "ToCents(%s)", tt.in)
	}
}

func TestFromCentsRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 2999, 3220} {
		assert.Equal(t, cents, money.ToCents(money.FromCents(cents)))
	}
}
