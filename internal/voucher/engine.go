package voucher

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnknownCoupon is returned when a supplied code does not match any known coupon.
var ErrUnknownCoupon = errors.New("unknown coupon")

// RateLookup resolves a normalised coupon code to its discount rate.
type RateLookup interface {
	CouponRate(code string) (decimal.Decimal, bool)
}

// Rule is a resolved percentage coupon.
type Rule struct {
	Code string
	Rate decimal.Decimal
}

// Normalize trims surrounding whitespace. Codes are matched case-sensitively.
func Normalize(code string) string {
	return strings.TrimSpace(code)
}

// Resolve looks up code. The boolean result is false when no coupon was
// supplied; ErrUnknownCoupon means a coupon was supplied but not recognised.
func Resolve(code string, lookup RateLookup) (Rule, bool, error) {
	if code == "" {
		return Rule{}, false, nil
	}
	normalized := Normalize(code)
	rate, ok := lookup.CouponRate(normalized)
	if !ok {
		return Rule{}, true, ErrUnknownCoupon
	}
	return Rule{Code: normalized, Rate: rate}, true, nil
}

// Compute returns the discount granted by r on subtotal.
func Compute(subtotal decimal.Decimal, r Rule) decimal.Decimal {
	if !subtotal.IsPositive() || !r.Rate.IsPositive() {
		return decimal.Zero
	}
	return subtotal.Mul(r.Rate)
}
