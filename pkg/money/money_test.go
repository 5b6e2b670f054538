package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"0", "0.00"},
		{"1.005", "1.00"},  // banker's rounding: half to even
		{"1.015", "1.02"},  // half to even rounds up here
		{"1.0151", "1.02"}, // over half always rounds up
		{"-1.005", "-1.00"},
		{"7064.775", "7064.78"},
		{"3961.5", "3961.50"},
	}
	for _, tt := range tests {
		in, err := decimal.NewFromString(tt.in)
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, RoundCents(in).StringFixed(2), "input %s", tt.in)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$0.00", Format(decimal.Zero))
	assert.Equal(t, "$538.50", Format(decimal.NewFromFloat(538.5)))
	assert.Equal(t, "-$812.25", Format(decimal.NewFromFloat(-812.25)))
	assert.Equal(t, "$1000000.00", Format(decimal.NewFromInt(1000000)))
}
