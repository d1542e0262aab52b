package usecase

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CommissionSplit is the result of dividing a period's revenue between the
// professional and the clinic.
type CommissionSplit struct {
	ProfessionalEarnings decimal.Decimal
	TenseCommission      decimal.Decimal
	TenseCommissionNet   decimal.Decimal
}

// SplitCommission applies the clinic-absorbs-discounts rule: the
// professional earns on the pre-discount base total, so promotional
// discounts never reduce their take. The clinic's share is whatever remains
// of the billed total, which can legitimately go negative on heavily
// discounted days; the sign is preserved, never clamped.
func SplitCommission(basePriceTotal, totalFacturado, rate decimal.Decimal) CommissionSplit {
	earnings := basePriceTotal.Mul(rate).Div(hundred).Round(2)
	commission := totalFacturado.Sub(earnings)
	return CommissionSplit{
		ProfessionalEarnings: earnings,
		TenseCommission:      commission,
		// Already net of the absorbed discount by construction; kept as a
		// separate field so renderers never re-derive it.
		TenseCommissionNet: commission,
	}
}

// validRate bounds a commission percentage to [0, 100].
func validRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && !rate.GreaterThan(hundred)
}
