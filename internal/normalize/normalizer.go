// Package normalize converts header-mapped raw rows into typed rows:
// calendar date, signed minor-unit amount, cleaned description.
package normalize

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"movimenti/internal/model"
	"movimenti/internal/tabular"
)

// dateFormats is the ordered list of layouts tried before the generic
// fallback. Day-first layouts come before month-first: the exports this
// pipeline sees are overwhelmingly European.
var dateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"01/02/2006",
	"02.01.2006",
	"2.1.2006",
	"02-01-2006",
	"2006/01/02",
	"2006-01-02T15:04:05",
}

// fallbackFormats are generic layouts tried last.
var fallbackFormats = []string{
	time.RFC3339,
	"2 Jan 2006",
	"Jan 2, 2006",
	"20060102",
}

// Exported bank data outside this window is an artifact, not a date.
const (
	minYear = 2000
	maxYear = 2100
)

// Normalize converts every raw row into a ParsedRow or a per-row
// ParseError. It never aborts the batch; valid rows and errors accumulate
// independently. Zero-amount rows are dropped silently.
func Normalize(res tabular.Result) ([]model.ParsedRow, []model.ParseError) {
	var rows []model.ParsedRow
	var errs []model.ParseError

	for _, raw := range res.Rows {
		row, rowErrs := normalizeRow(raw, res.Mapping)
		errs = append(errs, rowErrs...)
		if row != nil {
			rows = append(rows, *row)
		}
	}
	return rows, errs
}

// normalizeRow returns nil with no errors for zero-amount rows.
func normalizeRow(raw model.RawRow, mapping tabular.ColumnMapping) (*model.ParsedRow, []model.ParseError) {
	date, err := ParseDate(raw.Fields[mapping.Date])
	if err != nil {
		return nil, []model.ParseError{{
			Line:     raw.Line,
			Severity: model.SeverityError,
			Message:  fmt.Sprintf("Invalid date %q", raw.Fields[mapping.Date]),
		}}
	}

	amount, warnings, err := rowAmount(raw, mapping)
	if err != nil {
		return nil, []model.ParseError{{
			Line:     raw.Line,
			Severity: model.SeverityError,
			Message:  err.Error(),
		}}
	}
	if amount == 0 {
		// Non-movement entry some exports include. Not an error.
		return nil, warnings
	}

	rawDesc := raw.Fields[mapping.Description]
	row := &model.ParsedRow{
		Line:           raw.Line,
		Date:           date,
		Epoch:          date.Unix(),
		AmountCents:    amount,
		Description:    CleanDescription(rawDesc),
		RawDescription: rawDesc,
		Raw:            raw,
	}
	return row, warnings
}

// rowAmount resolves the signed amount from either the explicit amount
// column or the composite debit/credit pair.
func rowAmount(raw model.RawRow, mapping tabular.ColumnMapping) (int64, []model.ParseError, error) {
	if mapping.Amount != "" {
		cents, err := ParseAmountCents(raw.Fields[mapping.Amount])
		if err != nil {
			return 0, nil, fmt.Errorf("Invalid amount %q", raw.Fields[mapping.Amount])
		}
		return cents, nil, nil
	}

	var debit, credit int64
	if mapping.Debit != "" {
		if v := strings.TrimSpace(raw.Fields[mapping.Debit]); v != "" {
			cents, err := ParseAmountCents(v)
			if err != nil {
				return 0, nil, fmt.Errorf("Invalid debit amount %q", v)
			}
			if cents < 0 {
				cents = -cents
			}
			debit = cents
		}
	}
	if mapping.Credit != "" {
		if v := strings.TrimSpace(raw.Fields[mapping.Credit]); v != "" {
			cents, err := ParseAmountCents(v)
			if err != nil {
				return 0, nil, fmt.Errorf("Invalid credit amount %q", v)
			}
			if cents < 0 {
				cents = -cents
			}
			credit = cents
		}
	}

	if debit != 0 && credit != 0 {
		// Malformed export with both sides populated: keep the net value.
		warn := []model.ParseError{{
			Line:     raw.Line,
			Severity: model.SeverityWarning,
			Message:  "both debit and credit are non-zero; using net value",
		}}
		return credit - debit, warn, nil
	}
	if debit != 0 {
		return -debit, nil, nil
	}
	return credit, nil, nil
}

// ParseDate tries the known layouts in order, then the generic fallbacks.
// Years outside [2000, 2100] are rejected as export artifacts.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return checkYear(t)
		}
	}
	for _, layout := range fallbackFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return checkYear(t)
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func checkYear(t time.Time) (time.Time, error) {
	if t.Year() < minYear || t.Year() > maxYear {
		return time.Time{}, fmt.Errorf("year %d out of range", t.Year())
	}
	// Normalize to UTC midnight; time-of-day never matters downstream.
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// CleanDescription trims, collapses runs of whitespace and strips control
// characters from a raw description.
func CleanDescription(raw string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
			}
			lastSpace = true
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}
	return strings.TrimSpace(b.String())
}
