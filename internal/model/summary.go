package model

// ImportSummary aggregates one import session for the review surface.
type ImportSummary struct {
	CategoryTotals    map[string]int64 // category ID -> signed total in minor units
	Errors            []ParseError
	Dates             DateRange
	TotalRows         int
	SelectedRows      int
	DuplicatesSkipped int
	IncomeCents       int64
	ExpenseCents      int64 // negative
}
