package rules

import (
	"errors"
	"fmt"

	validator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/invoice-pricing/internal/config"
)

// DefaultCountry is the shipping table key used for unrecognised countries.
const DefaultCountry = "DEFAULT"

// ErrMissingDefaultShipping is returned when a shipping table omits the DEFAULT row.
var ErrMissingDefaultShipping = errors.New("shipping table requires a DEFAULT entry")

// ShippingRule is the flat fee charged while the subtotal stays below Threshold.
type ShippingRule struct {
	Threshold decimal.Decimal
	Fee       decimal.Decimal
}

// RuleConfig holds the pricing lookup tables. It is never mutated after
// construction, so a single instance may be shared across goroutines.
type RuleConfig struct {
	coupons    map[string]decimal.Decimal
	shipping   map[string]ShippingRule
	membership map[string]decimal.Decimal
	tax        map[string]decimal.Decimal
	defaultTax decimal.Decimal
}

// Default returns the built-in tables.
func Default() *RuleConfig {
	return &RuleConfig{
		coupons: map[string]decimal.Decimal{
			"WELCOME10": decimal.RequireFromString("0.10"),
			"VIP20":     decimal.RequireFromString("0.20"),
			"STUDENT5":  decimal.RequireFromString("0.05"),
		},
		shipping: map[string]ShippingRule{
			"TH":           {Threshold: decimal.NewFromInt(500), Fee: decimal.NewFromInt(60)},
			"JP":           {Threshold: decimal.NewFromInt(4000), Fee: decimal.NewFromInt(600)},
			"US":           {Threshold: decimal.NewFromInt(300), Fee: decimal.NewFromInt(15)},
			DefaultCountry: {Threshold: decimal.NewFromInt(200), Fee: decimal.NewFromInt(25)},
		},
		membership: map[string]decimal.Decimal{
			"gold":     decimal.RequireFromString("0.03"),
			"platinum": decimal.RequireFromString("0.05"),
		},
		tax: map[string]decimal.Decimal{
			"TH": decimal.RequireFromString("0.07"),
			"JP": decimal.RequireFromString("0.10"),
			"US": decimal.RequireFromString("0.08"),
		},
		defaultTax: decimal.RequireFromString("0.05"),
	}
}

// FromSettings builds a RuleConfig starting from Default and replacing every
// table present in s.
func FromSettings(s config.RuleSettings) (*RuleConfig, error) {
	if err := validator.New().Struct(s); err != nil {
		return nil, fmt.Errorf("invalid rule settings: %w", err)
	}
	cfg := Default()
	if s.Coupons != nil {
		cfg.coupons = rateTable(s.Coupons)
	}
	if s.Membership != nil {
		cfg.membership = rateTable(s.Membership)
	}
	if s.Tax != nil {
		cfg.tax = rateTable(s.Tax)
	}
	if s.DefaultTax != nil {
		cfg.defaultTax = decimal.NewFromFloat(*s.DefaultTax)
	}
	if s.Shipping != nil {
		if _, ok := s.Shipping[DefaultCountry]; !ok {
			return nil, ErrMissingDefaultShipping
		}
		cfg.shipping = make(map[string]ShippingRule, len(s.Shipping))
		for country, row := range s.Shipping {
			cfg.shipping[country] = ShippingRule{
				Threshold: decimal.NewFromFloat(row.Threshold),
				Fee:       decimal.NewFromFloat(row.Fee),
			}
		}
	}
	return cfg, nil
}

func rateTable(in map[string]float64) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(in))
	for k, v := range in {
		out[k] = decimal.NewFromFloat(v)
	}
	return out
}

// CouponRate returns the discount rate for an exact coupon code.
func (c *RuleConfig) CouponRate(code string) (decimal.Decimal, bool) {
	rate, ok := c.coupons[code]
	return rate, ok
}

// Shipping returns the shipping row for country, falling back to DEFAULT.
func (c *RuleConfig) Shipping(country string) ShippingRule {
	if rule, ok := c.shipping[country]; ok {
		return rule
	}
	return c.shipping[DefaultCountry]
}

// MembershipRate returns the discount rate for tier, or zero when the tier is not discounted.
func (c *RuleConfig) MembershipRate(tier string) decimal.Decimal {
	if rate, ok := c.membership[tier]; ok {
		return rate
	}
	return decimal.Zero
}

// TaxRate returns the tax rate for country, falling back to the default rate.
func (c *RuleConfig) TaxRate(country string) decimal.Decimal {
	if rate, ok := c.tax[country]; ok {
		return rate
	}
	return c.defaultTax
}
