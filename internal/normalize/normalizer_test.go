package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movimenti/internal/model"
	"movimenti/internal/tabular"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "iso", input: "2024-03-12", want: date(2024, 3, 12)},
		{name: "italian slashes", input: "12/03/2024", want: date(2024, 3, 12)},
		{name: "italian dots", input: "12.03.2024", want: date(2024, 3, 12)},
		{name: "italian dashes", input: "12-03-2024", want: date(2024, 3, 12)},
		{name: "single digit day", input: "2/3/2024", want: date(2024, 3, 2)},
		{name: "iso with time", input: "2024-03-12T10:30:00", want: date(2024, 3, 12)},
		{name: "compact", input: "20240312", want: date(2024, 3, 12)},
		{name: "surrounding spaces", input: "  2024-03-12  ", want: date(2024, 3, 12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseDateDayFirstWins(t *testing.T) {
	// An ambiguous 05/03 is read as the 5th of March, not May 3rd.
	got, err := ParseDate("05/03/2024")
	require.NoError(t, err)
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 5, got.Day())
}

func TestParseDateRejects(t *testing.T) {
	for _, input := range []string{"", "not a date", "12/03", "12/03/1024", "12/03/3024"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDate(input)
			assert.Error(t, err)
		})
	}
}

func TestNormalizeAmountColumn(t *testing.T) {
	res := tabularResult(t, "Data;Importo;Descrizione\n12/03/2024;-17,99;NETFLIX.COM\n13/03/2024;1.200,00;STIPENDIO MARZO\n")

	rows, errs := Normalize(res)
	require.Empty(t, errs)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(-1799), rows[0].AmountCents)
	assert.Equal(t, model.DirectionExpense, rows[0].Direction())
	assert.Equal(t, "NETFLIX.COM", rows[0].Description)
	assert.Equal(t, rows[0].Date.Unix(), rows[0].Epoch)

	assert.Equal(t, int64(120000), rows[1].AmountCents)
	assert.Equal(t, model.DirectionIncome, rows[1].Direction())
}

func TestNormalizeDebitCreditColumns(t *testing.T) {
	res := tabularResult(t, "Data;Uscite;Entrate;Causale\n12/03/2024;50,00;;SPESA\n13/03/2024;;1.200,00;STIPENDIO\n")

	rows, errs := Normalize(res)
	require.Empty(t, errs)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(-5000), rows[0].AmountCents)
	assert.Equal(t, int64(120000), rows[1].AmountCents)
}

func TestNormalizeBothDebitAndCredit(t *testing.T) {
	// Malformed exports with both sides populated keep the net value and warn.
	res := tabularResult(t, "Data;Uscite;Entrate;Causale\n12/03/2024;30,00;50,00;STORNO\n")

	rows, errs := Normalize(res)
	require.Len(t, rows, 1)
	require.Len(t, errs, 1)

	assert.Equal(t, int64(2000), rows[0].AmountCents)
	assert.Equal(t, model.SeverityWarning, errs[0].Severity)
}

func TestNormalizeDropsZeroAmounts(t *testing.T) {
	res := tabularResult(t, "Data;Importo;Descrizione\n12/03/2024;0,00;SALDO CONTABILE\n13/03/2024;-10,00;BAR\n")

	rows, errs := Normalize(res)
	assert.Empty(t, errs)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(-1000), rows[0].AmountCents)
}

func TestNormalizeBadRowsAccumulateErrors(t *testing.T) {
	res := tabularResult(t, "Data;Importo;Descrizione\nnon-date;-10,00;A\n12/03/2024;abc;B\n13/03/2024;-5,00;C\n")

	rows, errs := Normalize(res)
	require.Len(t, rows, 1)
	assert.Equal(t, "C", rows[0].Description)

	require.Len(t, errs, 2)
	assert.Equal(t, 2, errs[0].Line)
	assert.Equal(t, model.SeverityError, errs[0].Severity)
	assert.Equal(t, 3, errs[1].Line)
}

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "  PAGAMENTO   POS  ", want: "PAGAMENTO POS"},
		{input: "A\tB\nC", want: "A B C"},
		{input: "NETFLIX.COM", want: "NETFLIX.COM"},
		{input: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanDescription(tt.input))
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tabularResult(t *testing.T, content string) tabular.Result {
	t.Helper()
	res := tabular.Parse(content)
	require.False(t, res.Failed(), "parse failed: %v", res.Errors)
	return res
}
