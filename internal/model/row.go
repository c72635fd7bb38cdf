package model

import "time"

// RawRow is one data row of a tabular export, header-mapped but untyped.
type RawRow struct {
	Fields map[string]string // lowercase column name -> raw value
	Line   int               // 1-based line number in the source file
}

// ParsedRow is a RawRow after normalization: typed date, minor-unit amount
// and a cleaned description. Zero-amount rows are never represented.
type ParsedRow struct {
	Date           time.Time
	Description    string // cleaned
	RawDescription string // as exported
	Raw            RawRow
	Epoch          int64 // unix seconds of Date
	AmountCents    int64 // signed, minor currency units
	Line           int
}

// Direction derives the flow direction from the amount sign.
func (r ParsedRow) Direction() TransactionDirection {
	return DirectionOf(r.AmountCents)
}

// DuplicateStatus is the confidence tier assigned by the duplicate scorer.
type DuplicateStatus string

const (
	// DuplicateUnique means no prior transaction matched.
	DuplicateUnique DuplicateStatus = "unique"
	// DuplicateSuspected means a prior transaction matched above the lower threshold.
	DuplicateSuspected DuplicateStatus = "suspected"
	// DuplicateConfirmed means a prior transaction matched above the upper threshold.
	DuplicateConfirmed DuplicateStatus = "confirmed"
)

// SuggestionSource records where a category suggestion came from.
type SuggestionSource string

const (
	// SuggestionFromHistory means the merchant key matched a prior transaction's category.
	SuggestionFromHistory SuggestionSource = "history"
	// SuggestionFromPattern means a static keyword rule matched.
	SuggestionFromPattern SuggestionSource = "pattern"
	// SuggestionNone means no suggestion could be made.
	SuggestionNone SuggestionSource = "none"
)

// EnrichedRow is a ParsedRow after duplicate scoring, merchant key
// extraction and category enrichment. Immutable once produced; user
// corrections are layered on top as Overrides.
type EnrichedRow struct {
	ParsedRow

	ID                  string
	MerchantKey         string // never empty; sentinel keys cover the no-signal cases
	Duplicate           DuplicateStatus
	MatchedTransaction  string // ID of the matched prior transaction, if any
	SuggestedCategory   string // category ID, empty when Source is none
	Source              SuggestionSource
	Selected            bool // duplicates default to unselected
}

// ErrorSeverity distinguishes skipped rows from recoverable oddities.
type ErrorSeverity string

const (
	// SeverityError marks a row that was skipped.
	SeverityError ErrorSeverity = "error"
	// SeverityWarning marks a row that was kept despite a data oddity.
	SeverityWarning ErrorSeverity = "warning"
)

// ParseError is a row-level (or, with Line 0, batch-level) parse problem.
type ParseError struct {
	Message  string
	Severity ErrorSeverity
	Line     int
}
