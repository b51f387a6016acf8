// Package vat splits VAT-inclusive amounts into their VAT and net parts.
package vat

import (
	"github.com/shopspring/decimal"

	"github.com/postbook-dev/postbook/internal/model"
)

// Standard rate: 15% on the VAT-exclusive price, so the VAT share of an
// inclusive amount is 15/115.
var (
	rateNumerator   = decimal.NewFromInt(15)
	rateDenominator = decimal.NewFromInt(115)
)

// Compute returns (vatAmount, netAmount) for a VAT-inclusive amount.
// The caller supplies the absolute value; amountInclusive is assumed >= 0.
//
// Unrecognized codes are treated as NONE: the function never fails, it is
// the caller's job to flag a suspect code to a reviewer. Rounding is
// half-up to 2 decimal places at each step, and repeated calls with the
// same inputs always return the same outputs.
func Compute(amountInclusive decimal.Decimal, code model.VATCode) (vatAmount, netAmount decimal.Decimal) {
	if code == model.VATStandard {
		vatAmount = amountInclusive.Mul(rateNumerator).Div(rateDenominator).Round(2)
		netAmount = amountInclusive.Sub(vatAmount).Round(2)
		return vatAmount, netAmount
	}
	// ZERO, EXEMPT, NONE and anything unrecognized: no VAT deducted.
	return decimal.Zero, amountInclusive.Round(2)
}
