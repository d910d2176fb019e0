package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/invoice-pricing/internal/invoice"
	"github.com/noah-isme/invoice-pricing/internal/rules"
	"github.com/noah-isme/invoice-pricing/internal/voucher"
)

// Warnings attached to a successful computation.
const (
	WarningUnknownCoupon     = "Unknown coupon"
	WarningMembershipUpgrade = "Consider membership upgrade"
)

var (
	fragileFeePerUnit = decimal.NewFromInt(5)
	// Non-members spending above this receive flatHighSpendDiscount.
	highSpendThreshold    = decimal.NewFromInt(3000)
	flatHighSpendDiscount = decimal.NewFromInt(20)
	upsellThreshold       = decimal.NewFromInt(10000)
)

// Quote aggregates computed pricing components.
type Quote struct {
	Subtotal         decimal.Decimal
	FragileSurcharge decimal.Decimal
	Shipping         decimal.Decimal
	Discount         decimal.Decimal
	Tax              decimal.Decimal
	Total            decimal.Decimal
	Warnings         []string
}

// Engine prices invoices that have already passed validation.
type Engine struct{}

// NewEngine returns a pricing Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Compute prices inv using cfg. The invoice must already be valid; Compute
// never fails.
func (e *Engine) Compute(inv invoice.Invoice, cfg *rules.RuleConfig) Quote {
	warnings := []string{}

	subtotal := decimal.Zero
	fragile := decimal.Zero
	for _, it := range inv.Items {
		subtotal = subtotal.Add(it.Subtotal())
		if it.Fragile {
			fragile = fragile.Add(fragileFeePerUnit.Mul(decimal.NewFromInt(int64(it.Qty))))
		}
	}

	shipping := ShippingFee(inv.Country, subtotal, cfg)

	discount := subtotal.Mul(cfg.MembershipRate(inv.Membership))
	if discount.IsZero() && subtotal.GreaterThan(highSpendThreshold) {
		discount = flatHighSpendDiscount
	}
	rule, supplied, err := voucher.Resolve(inv.Coupon, cfg)
	switch {
	case errors.Is(err, voucher.ErrUnknownCoupon):
		warnings = append(warnings, WarningUnknownCoupon)
	case supplied:
		discount = discount.Add(voucher.Compute(subtotal, rule))
	}

	// Shipping and fragile fees are outside the tax base.
	tax := subtotal.Sub(discount).Mul(cfg.TaxRate(inv.Country))

	total := subtotal.Add(shipping).Add(fragile).Add(tax).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	if subtotal.GreaterThan(upsellThreshold) && !invoice.IsMember(inv.Membership) {
		warnings = append(warnings, WarningMembershipUpgrade)
	}

	return Quote{
		Subtotal:         subtotal,
		FragileSurcharge: fragile,
		Shipping:         shipping,
		Discount:         discount,
		Tax:              tax,
		Total:            total,
		Warnings:         warnings,
	}
}
