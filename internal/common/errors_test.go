package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidationErrorJoinsProblems(t *testing.T) {
	err := NewValidationError([]string{"Missing invoice_id", "Unknown category for X"})

	require.Equal(t, "Missing invoice_id; Unknown category for X", err.Error())
	require.Equal(t, CodeInvalidInvoice, err.Code)
	require.ErrorIs(t, err, ErrInvalidInvoice)

	wrapped := fmt.Errorf("compute: %w", err)
	require.True(t, IsValidationError(wrapped))
	require.ErrorIs(t, wrapped, ErrInvalidInvoice)

	require.False(t, IsValidationError(errors.New("boom")))
}
