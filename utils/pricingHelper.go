package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var decimalOneHundred = decimal.NewFromInt(100)

// CalculateLineTotal computes qty * unitPrice * (1 - discountPct/100).
// A nil or out-of-range discount (outside [0,100]) is treated as no discount.
func CalculateLineTotal(qty int, unitPrice decimal.Decimal, discountPct *decimal.Decimal) decimal.Decimal {

	lineAmount := decimal.NewFromInt(int64(qty)).Mul(unitPrice)

	if discountPct == nil {
		return lineAmount
	}
	if discountPct.IsNegative() || discountPct.GreaterThan(decimalOneHundred) {
		return lineAmount
	}

	discountAmount := lineAmount.Mul(*discountPct).DivRound(decimalOneHundred, 4)
	return lineAmount.Sub(discountAmount)
}

// CalculateOrderTotal sums line totals into the header total.
func CalculateOrderTotal(lineTotals []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, lt := range lineTotals {
		total = total.Add(lt)
	}
	return total
}

// ApplyAdjustment deducts a bounded adjustment from a computed total.
// The adjustment must stay within [0, total]; anything else is rejected so a
// later edit can never push a header total negative or compound a previous
// adjustment.
func ApplyAdjustment(total decimal.Decimal, adjustment decimal.Decimal) (decimal.Decimal, error) {
	if adjustment.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: adjustment cannot be negative", ErrorInvalidAdjustment)
	}
	if adjustment.GreaterThan(total) {
		return decimal.Zero, fmt.Errorf("%w: adjustment cannot exceed the computed total %s", ErrorInvalidAdjustment, total.String())
	}
	return total.Sub(adjustment), nil
}
