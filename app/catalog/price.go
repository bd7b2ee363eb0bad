package catalog

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ClampDiscount bounds a discount percentage to [0,100].
func ClampDiscount(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// EffectivePrice applies a clamped percentage discount to a base price and
// rounds to two decimal places. The effective price is the only value ever
// persisted; the discount itself is not stored.
//
// A non-positive base yields zero regardless of discount.
func EffectivePrice(base decimal.Decimal, discountPct float64) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	pct := decimal.NewFromFloat(ClampDiscount(discountPct))
	return base.Mul(hundred.Sub(pct)).Div(hundred).Round(2)
}
