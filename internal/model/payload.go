package model

import "time"

// ClassificationSource tags how a payload record's category was decided.
type ClassificationSource string

const (
	// SourceManual means a user override applied, or the final category
	// differs from the automatic suggestion.
	SourceManual ClassificationSource = "manual"
	// SourceRuleBased means a static keyword rule decided the category.
	SourceRuleBased ClassificationSource = "ruleBased"
	// SourceAI means the category was carried over from categorized history.
	SourceAI ClassificationSource = "ai"
)

// TransactionRecord is one transaction-creation record handed to the
// storage collaborator's batch-create operation.
type TransactionRecord struct {
	Date          time.Time
	Description   string
	CategoryID    string
	CategoryLabel string
	Source        ClassificationSource
	Direction     TransactionDirection
	AmountCents   int64 // absolute value, minor currency units
	Superfluous   bool  // derived from the category's spending nature
}

// ImportPayload is the final output of one import session.
type ImportPayload struct {
	CreatedAt    time.Time
	ImportID     string
	Transactions []TransactionRecord
}
