package common

import (
	"errors"
	"strings"
)

// CodeInvalidInvoice identifies validation failures.
const CodeInvalidInvoice = "INVOICE_INVALID"

// ErrInvalidInvoice matches every ValidationError via errors.Is.
var ErrInvalidInvoice = errors.New("invoice is invalid")

// ValidationError carries every problem found while validating an invoice.
type ValidationError struct {
	Code     string
	Problems []string
}

// NewValidationError constructs a ValidationError for the given problems.
func NewValidationError(problems []string) *ValidationError {
	return &ValidationError{Code: CodeInvalidInvoice, Problems: problems}
}

// Error joins the problems with "; ".
func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return strings.Join(e.Problems, "; ")
}

// Is reports whether target is ErrInvalidInvoice.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInvoice
}

// IsValidationError checks whether the error is a ValidationError.
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
