package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wallet_tracker/internal/domain/entity"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   entity.Numeric
		want string
	}{
		{entity.NumericFromString("1234.5"), "$1,234.50"},
		{entity.NumericFromString("0"), "$0.00"},
		{entity.NumericFromString("0.005"), "$0.01"},
		{entity.NumericFromFloat(-42.1), "-$42.10"},
		{entity.NumericFromString("1000000"), "$1,000,000.00"},
	}
	for _, tt := range tests {
		got, ok := FormatUSD(tt.in)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got, tt.in.Raw())
	}
}

func TestFormatPercent(t *testing.T) {
	tests := map[string]string{
		"0.05":    "+5.00%",
		"-0.031":  "-3.10%",
		"0":       "0.00%",
		"1.23456": "+123.46%",
	}
	for in, want := range tests {
		got, ok := FormatPercent(entity.NumericFromString(in))
		assert.True(t, ok)
		assert.Equal(t, want, got, in)
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := map[string]string{
		"12":             "12",
		"1234.56789":     "1,234.5679",
		"0.000123456789": "0.00012346",
		"0.5":            "0.5",
		"-2.50":          "-2.5",
	}
	for in, want := range tests {
		got, ok := FormatQuantity(entity.NumericFromString(in))
		assert.True(t, ok)
		assert.Equal(t, want, got, in)
	}
}

func TestFormatters_InvalidValues(t *testing.T) {
	invalid := []entity.Numeric{
		entity.NullNumeric(),
		entity.NumericFromString("abc"),
		entity.NumericFromString(""),
	}
	for _, n := range invalid {
		for name, f := range map[string]func(entity.Numeric) (string, bool){
			"usd":      FormatUSD,
			"percent":  FormatPercent,
			"quantity": FormatQuantity,
		} {
			got, ok := f(n)
			assert.False(t, ok, name)
			assert.Empty(t, got, name)
		}
	}
}
