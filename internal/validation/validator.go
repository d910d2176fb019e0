package validation

import (
	"errors"
	"fmt"
	"reflect"

	validator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/invoice-pricing/internal/invoice"
)

// Problem descriptions reported by Validate.
const (
	ProblemMissingInvoice    = "Invoice is missing"
	ProblemMissingInvoiceID  = "Missing invoice_id"
	ProblemMissingCustomerID = "Missing customer_id"
	ProblemNoItems           = "Invoice must contain items"
	ProblemMissingSKU        = "Item sku is missing"
)

// Validator checks invoices against the struct tags declared on the model.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator that understands decimal amounts.
func New() *Validator {
	v := validator.New()
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	return &Validator{v: v}
}

// decimalValue exposes only the sign of a decimal so that gte=0 and gt=0
// compare exactly, whatever the magnitude.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.Sign()
	}
	return nil
}

// Validate returns every problem found on inv, in a stable order. An empty
// result means the invoice is valid.
func (val *Validator) Validate(inv *invoice.Invoice) []string {
	if inv == nil {
		return []string{ProblemMissingInvoice}
	}

	var problems []string
	failed := val.failedFields(inv)
	if failed["InvoiceID"] {
		problems = append(problems, ProblemMissingInvoiceID)
	}
	if failed["CustomerID"] {
		problems = append(problems, ProblemMissingCustomerID)
	}
	if failed["Items"] {
		problems = append(problems, ProblemNoItems)
	}

	for _, it := range inv.Items {
		failed := val.failedFields(it)
		if failed["SKU"] {
			problems = append(problems, ProblemMissingSKU)
		}
		if failed["Qty"] {
			problems = append(problems, fmt.Sprintf("Invalid qty for %s", it.SKU))
		}
		if failed["UnitPrice"] {
			problems = append(problems, fmt.Sprintf("Invalid price for %s", it.SKU))
		}
		if failed["Category"] {
			problems = append(problems, fmt.Sprintf("Unknown category for %s", it.SKU))
		}
	}
	return problems
}

// failedFields returns the struct field names that failed a tag check.
func (val *Validator) failedFields(s any) map[string]bool {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		out[fe.StructField()] = true
	}
	return out
}
