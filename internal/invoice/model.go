package invoice

import "github.com/shopspring/decimal"

// Category classifies a line item. Only the values declared below are accepted.
type Category string

const (
	CategoryBook        Category = "book"
	CategoryFood        Category = "food"
	CategoryElectronics Category = "electronics"
	CategoryOther       Category = "other"
)

// Membership tiers that carry a discount. Any other value is treated as no membership.
const (
	MembershipGold     = "gold"
	MembershipPlatinum = "platinum"
)

// LineItem describes a single priced line on an invoice.
type LineItem struct {
	SKU       string          `json:"sku" validate:"required"`
	Category  Category        `json:"category" validate:"oneof=book food electronics other"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gte=0"`
	Qty       int             `json:"qty" validate:"gt=0"`
	Fragile   bool            `json:"fragile"`
}

// Invoice is the input to a total computation. Coupon is optional; an empty
// string means no coupon was supplied.
type Invoice struct {
	InvoiceID  string     `json:"invoice_id" validate:"required"`
	CustomerID string     `json:"customer_id" validate:"required"`
	Country    string     `json:"country"`
	Membership string     `json:"membership"`
	Coupon     string     `json:"coupon,omitempty"`
	Items      []LineItem `json:"items" validate:"min=1"`
}

// IsMember reports whether tier is one of the discounted membership tiers.
func IsMember(tier string) bool {
	return tier == MembershipGold || tier == MembershipPlatinum
}

// Subtotal returns the line value unit price times quantity.
func (it LineItem) Subtotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Qty)))
}
