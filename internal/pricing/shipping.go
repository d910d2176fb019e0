package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/invoice-pricing/internal/rules"
)

// US shipping is tiered and does not consult the shipping table.
var (
	usSmallOrderLimit = decimal.NewFromInt(100)
	usSmallOrderFee   = decimal.NewFromInt(15)
	usFreeLimit       = decimal.NewFromInt(300)
	usReducedFee      = decimal.NewFromInt(8)
)

// ShippingFee returns the shipping charge for country at the given subtotal.
func ShippingFee(country string, subtotal decimal.Decimal, cfg *rules.RuleConfig) decimal.Decimal {
	if country == "US" {
		switch {
		case subtotal.LessThan(usSmallOrderLimit):
			return usSmallOrderFee
		case subtotal.LessThan(usFreeLimit):
			return usReducedFee
		default:
			return decimal.Zero
		}
	}
	rule := cfg.Shipping(country)
	if subtotal.LessThan(rule.Threshold) {
		return rule.Fee
	}
	return decimal.Zero
}
