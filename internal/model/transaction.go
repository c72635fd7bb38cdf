// Package model defines the core domain models used throughout the application.
package model

import "time"

// TransactionDirection indicates whether money flowed in or out.
type TransactionDirection string

const (
	// DirectionIncome represents money flowing into the account.
	DirectionIncome TransactionDirection = "income"
	// DirectionExpense represents money flowing out of the account.
	DirectionExpense TransactionDirection = "expense"
)

// Transaction is a previously persisted transaction, supplied by the caller
// as import history. It is read-only for the whole pipeline run.
type Transaction struct {
	Date        time.Time
	ID          string
	Description string
	CategoryID  string
	AmountCents int64 // signed, minor currency units
}

// Direction derives the flow direction from the amount sign.
func (t Transaction) Direction() TransactionDirection {
	if t.AmountCents >= 0 {
		return DirectionIncome
	}
	return DirectionExpense
}

// DirectionOf returns the direction implied by a signed minor-unit amount.
func DirectionOf(amountCents int64) TransactionDirection {
	if amountCents >= 0 {
		return DirectionIncome
	}
	return DirectionExpense
}
