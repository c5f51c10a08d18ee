package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{90, "$0.90"},
		{1090, "$10.90"},
		{209500, "$2095.00"},
		{-50, "-$0.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.cents), "cents=%d", tt.cents)
	}
}
