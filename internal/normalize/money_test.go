package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmountCents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{name: "plain decimal", input: "12.50", want: 1250},
		{name: "negative decimal", input: "-12.50", want: -1250},
		{name: "eu grouping", input: "1.200,50", want: 120050},
		{name: "us grouping", input: "1,200.50", want: 120050},
		{name: "parenthesis negative", input: "(50.00)", want: -5000},
		{name: "trailing sign", input: "50.00-", want: -5000},
		{name: "explicit plus", input: "+25,00", want: 2500},
		{name: "currency symbol", input: "€ 12,50", want: 1250},
		{name: "eur suffix", input: "12,50 EUR", want: 1250},
		{name: "bare integer", input: "1200", want: 120000},
		{name: "zero", input: "0.00", want: 0},
		{name: "single fraction digit", input: "12.5", want: 1250},
		{name: "comma decimal", input: "12,50", want: 1250},
		{name: "eu grouping no decimals", input: "1.200", want: 120000},
		{name: "us grouping no decimals", input: "1,200", want: 120000},
		{name: "millions eu", input: "1.234.567,89", want: 123456789},
		{name: "millions us", input: "1,234,567.89", want: 123456789},
		{name: "leading decimal", input: ",50", want: 50},
		{name: "negative eu grouping", input: "-1.200,50", want: -120050},
		{name: "internal spaces", input: " - 12,50 ", want: -1250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmountCents(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmountCentsRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "-", "€", "()"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseAmountCents(input)
			assert.Error(t, err)
		})
	}
}

func TestParseAmountCentsNoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 style inputs must come out exact.
	got, err := ParseAmountCents("4,10")
	require.NoError(t, err)
	assert.Equal(t, int64(410), got)

	got, err = ParseAmountCents("0,29")
	require.NoError(t, err)
	assert.Equal(t, int64(29), got)
}
