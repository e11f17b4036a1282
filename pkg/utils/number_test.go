package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundWithTwoDecimalPlace_BankersRounding(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2.345", "2.34"},
		{"2.355", "2.36"},
		{"2.3451", "2.35"},
		{"-2.345", "-2.34"},
		{"357.142857", "357.14"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := RoundWithTwoDecimalPlace(decimal.RequireFromString(tt.in))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestRoundWithOneDecimalPlace_BankersRounding(t *testing.T) {
	assert.Equal(t, "0.2", RoundWithOneDecimalPlace(decimal.RequireFromString("0.25")).StringFixed(1))
	assert.Equal(t, "0.4", RoundWithOneDecimalPlace(decimal.RequireFromString("0.35")).StringFixed(1))
	assert.Equal(t, "58.1", RoundWithOneDecimalPlace(decimal.RequireFromString("58.0645")).StringFixed(1))
}

func TestPercentage(t *testing.T) {
	got := Percentage(decimal.NewFromInt(1), decimal.NewFromInt(30))
	assert.Equal(t, "3.3", got.StringFixed(1))

	got = Percentage(decimal.NewFromInt(16500), decimal.NewFromInt(15000))
	assert.Equal(t, "110.0", got.StringFixed(1))
}

func TestMaxZero(t *testing.T) {
	assert.True(t, MaxZero(decimal.NewFromInt(-5)).IsZero())
	assert.True(t, MaxZero(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(5)))
}

func TestFormatZAR(t *testing.T) {
	assert.Equal(t, "R 0.00", FormatZAR(decimal.Zero))
	assert.Equal(t, "R 999.50", FormatZAR(decimal.RequireFromString("999.5")))
	assert.Equal(t, "R 12,345.67", FormatZAR(decimal.RequireFromString("12345.67")))
	assert.Equal(t, "R 1,000,000.00", FormatZAR(decimal.NewFromInt(1000000)))
	assert.Equal(t, "R -25,000.00", FormatZAR(decimal.NewFromInt(-25000)))
}
