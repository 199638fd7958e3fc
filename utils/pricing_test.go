package utils

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCalculateLineTotal(t *testing.T) {
	tenPct := d("10")
	fullPct := d("100")
	negPct := d("-5")
	overPct := d("120")

	tests := []struct {
		name        string
		qty         int
		unitPrice   decimal.Decimal
		discountPct *decimal.Decimal
		want        decimal.Decimal
	}{
		{"no discount", 4, d("25"), nil, d("100")},
		{"ten percent", 10, d("50"), &tenPct, d("450")},
		{"full discount", 2, d("30"), &fullPct, d("0")},
		{"negative discount ignored", 2, d("30"), &negPct, d("60")},
		{"discount over 100 ignored", 2, d("30"), &overPct, d("60")},
		{"zero qty", 0, d("99.99"), nil, d("0")},
		{"fractional price", 3, d("19.99"), nil, d("59.97")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateLineTotal(tt.qty, tt.unitPrice, tt.discountPct)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestCalculateOrderTotal(t *testing.T) {
	total := CalculateOrderTotal([]decimal.Decimal{d("10.5"), d("20"), d("0.25")})
	assert.True(t, d("30.75").Equal(total), "got %s", total)

	assert.True(t, CalculateOrderTotal(nil).IsZero())
}

func TestApplyAdjustment(t *testing.T) {
	got, err := ApplyAdjustment(d("100"), d("30"))
	require.NoError(t, err)
	assert.True(t, d("70").Equal(got), "got %s", got)

	// adjustment equal to total is allowed
	got, err = ApplyAdjustment(d("100"), d("100"))
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	// zero adjustment is a no-op
	got, err = ApplyAdjustment(d("55.5"), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, d("55.5").Equal(got))

	_, err = ApplyAdjustment(d("100"), d("150"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrorInvalidAdjustment))

	_, err = ApplyAdjustment(d("100"), d("-5"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrorInvalidAdjustment))
}
