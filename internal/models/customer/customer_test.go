package customer

import (
	"testing"

	"github.com/arthurmdp/bankledger/internal/models/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	t.Run("valid 11 digits", func(t *testing.T) {
		doc, err := NewDocument("12345678901")

		require.NoError(t, err)
		assert.Equal(t, "12345678901", doc.String())
	})

	tests := []struct {
		name string
		raw  string
	}{
		{"too short", "1234567890"},
		{"too long", "123456789012"},
		{"letters", "12345abc901"},
		{"formatted", "123.456.789-01"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDocument(tt.raw)
			require.ErrorIs(t, err, errs.ErrMalformedInput)
		})
	}
}
