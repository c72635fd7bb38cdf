// Package tabular turns raw bank-export text into header-mapped rows.
//
// Exports arrive with unknown delimiters, arbitrary preamble lines before
// the header, and locale-specific column names. Parsing never panics and
// never aborts on a bad row: row problems accumulate as ParseErrors while
// the rest of the batch continues. Only a missing header or a header with
// no usable date/amount column is fatal to the whole batch, reported as a
// line-0 error with no rows produced.
package tabular

import (
	"fmt"
	"strings"

	"movimenti/internal/model"
)

// candidate delimiters, in preference order for ties.
var delimiters = []rune{',', ';', '\t'}

// headerHints are keyword fragments that make a line plausible as a header.
var headerHints = []string{
	"data", "date", "valuta",
	"importo", "amount", "dare", "avere", "debit", "credit", "entrate", "uscite",
}

// detectionWindow is how many non-blank lines participate in delimiter detection.
const detectionWindow = 8

// ColumnMapping records which lowercase header name serves each logical
// column. Empty string means the column is absent from the export.
type ColumnMapping struct {
	Date        string
	Amount      string
	Debit       string
	Credit      string
	Description string

	// indices into the header row, -1 when absent
	dateIdx, amountIdx, debitIdx, creditIdx, descIdx int
}

// HasAmountColumn reports whether any amount-bearing column was found.
func (m ColumnMapping) HasAmountColumn() bool {
	return m.Amount != "" || m.Debit != "" || m.Credit != ""
}

// requiredColumns is the number of fields a data row must have to cover
// every mapped column.
func (m ColumnMapping) requiredColumns() int {
	maxIdx := m.dateIdx
	for _, idx := range []int{m.amountIdx, m.debitIdx, m.creditIdx, m.descIdx} {
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	return maxIdx + 1
}

// Result is the outcome of parsing one export. A batch-fatal problem
// leaves Rows empty and Errors holding a single line-0 entry.
type Result struct {
	Mapping   ColumnMapping
	Rows      []model.RawRow
	Errors    []model.ParseError
	Delimiter rune
}

// Failed reports whether parsing was fatal for the whole batch.
func (r Result) Failed() bool {
	return len(r.Rows) == 0 && len(r.Errors) > 0 && r.Errors[0].Line == 0
}

// Parse converts raw export text into header-mapped rows.
func Parse(content string) Result {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	delim, ok := detectDelimiter(lines)
	if !ok {
		return fatal("unable to detect a column delimiter")
	}

	headerLine, headers, ok := findHeader(lines, delim)
	if !ok {
		return fatal("no header row found")
	}

	mapping := mapColumns(headers)
	if mapping.Date == "" {
		return fatal("no date column found in header")
	}
	if !mapping.HasAmountColumn() {
		return fatal("no amount, debit or credit column found in header")
	}

	result := Result{Mapping: mapping, Delimiter: delim}
	required := mapping.requiredColumns()

	for i := headerLine + 1; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitLine(line, delim)
		lineNo := i + 1
		if len(fields) < required {
			result.Errors = append(result.Errors, model.ParseError{
				Line:     lineNo,
				Severity: model.SeverityError,
				Message:  fmt.Sprintf("expected at least %d columns, got %d", required, len(fields)),
			})
			continue
		}

		row := model.RawRow{Line: lineNo, Fields: make(map[string]string, len(headers))}
		for j, name := range headers {
			if j < len(fields) {
				row.Fields[name] = strings.TrimSpace(fields[j])
			}
		}
		result.Rows = append(result.Rows, row)
	}

	return result
}

func fatal(msg string) Result {
	return Result{Errors: []model.ParseError{{
		Line:     0,
		Severity: model.SeverityError,
		Message:  msg,
	}}}
}

// detectDelimiter checks which candidate yields a consistent column count
// greater than one across the first few non-blank lines, preferring the
// highest consistent count.
func detectDelimiter(lines []string) (rune, bool) {
	var sample []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sample = append(sample, line)
		if len(sample) == detectionWindow {
			break
		}
	}
	if len(sample) == 0 {
		return 0, false
	}

	best := rune(0)
	bestCount := 1
	for _, d := range delimiters {
		count := len(splitLine(sample[0], d))
		consistent := count > 1
		for _, line := range sample[1:] {
			if len(splitLine(line, d)) != count {
				consistent = false
				break
			}
		}
		if consistent && count > bestCount {
			best, bestCount = d, count
		}
	}
	if best == 0 {
		return 0, false
	}
	return best, true
}

// findHeader scans forward for the first line containing a date- or
// amount-related keyword fragment. Returns the line index and the
// lowercased, trimmed header names.
func findHeader(lines []string, delim rune) (int, []string, bool) {
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, hint := range headerHints {
			if strings.Contains(lower, hint) {
				fields := splitLine(line, delim)
				headers := make([]string, len(fields))
				for j, f := range fields {
					headers[j] = strings.ToLower(strings.TrimSpace(f))
				}
				return i, headers, true
			}
		}
	}
	return 0, nil, false
}

// mapColumns assigns header names to logical columns via substring
// keywords. An explicit amount column wins over composite debit/credit
// columns; balance-like columns never count as amounts.
func mapColumns(headers []string) ColumnMapping {
	m := ColumnMapping{dateIdx: -1, amountIdx: -1, debitIdx: -1, creditIdx: -1, descIdx: -1}

	match := func(h string, keywords ...string) bool {
		for _, k := range keywords {
			if strings.Contains(h, k) {
				return true
			}
		}
		return false
	}

	for i, h := range headers {
		switch {
		case m.Date == "" && match(h, "data", "date"):
			m.Date, m.dateIdx = h, i
		case m.Amount == "" && match(h, "importo", "amount", "ammontare") && !match(h, "saldo", "balance"):
			m.Amount, m.amountIdx = h, i
		case m.Debit == "" && match(h, "dare", "addebit", "uscite", "debit") && !match(h, "saldo", "balance"):
			m.Debit, m.debitIdx = h, i
		case m.Credit == "" && match(h, "avere", "accredit", "entrate", "credit") && !match(h, "saldo", "balance"):
			m.Credit, m.creditIdx = h, i
		case m.Description == "" && match(h, "descrizione", "causale", "description", "dettagli", "movimento"):
			m.Description, m.descIdx = h, i
		}
	}

	// "valuta" alone is a value date; use it only when nothing better exists.
	if m.Date == "" {
		for i, h := range headers {
			if strings.Contains(h, "valuta") {
				m.Date, m.dateIdx = h, i
				break
			}
		}
	}

	return m
}

// splitLine splits one line on the delimiter, respecting quoted fields.
// Quotes may contain the delimiter; doubled quotes are literal quotes.
func splitLine(line string, delim rune) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	runes := []rune(line)

	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == delim && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(c)
		}
	}
	fields = append(fields, cur.String())
	return fields
}
