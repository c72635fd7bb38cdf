package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFormatAmountCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{cents: 0, want: "0,00"},
		{cents: 5, want: "0,05"},
		{cents: 1250, want: "12,50"},
		{cents: -1250, want: "-12,50"},
		{cents: 120050, want: "1.200,50"},
		{cents: -120050, want: "-1.200,50"},
		{cents: 123456789, want: "1.234.567,89"},
		{cents: 100000, want: "1.000,00"},
		{cents: 99999, want: "999,99"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmountCents(tt.cents))
	}
}

func TestDirectionOf(t *testing.T) {
	assert.Equal(t, DirectionIncome, DirectionOf(100))
	assert.Equal(t, DirectionExpense, DirectionOf(-100))
	// Zero never reaches the pipeline, but the convention is income.
	assert.Equal(t, DirectionIncome, DirectionOf(0))
}

func TestDateRangeExtend(t *testing.T) {
	var r DateRange
	d1 := date(2024, 3, 12)
	d2 := date(2024, 3, 27)
	d3 := date(2024, 3, 1)

	r = r.Extend(d1)
	assert.Equal(t, d1, r.From)
	assert.Equal(t, d1, r.To)

	r = r.Extend(d2)
	assert.Equal(t, d1, r.From)
	assert.Equal(t, d2, r.To)

	r = r.Extend(d3)
	assert.Equal(t, d3, r.From)
	assert.Equal(t, d2, r.To)
}
