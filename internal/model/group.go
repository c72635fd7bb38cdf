package model

import "time"

// DateRange is the closed interval of dates observed in a set of rows.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Extend widens the range to include d.
func (r DateRange) Extend(d time.Time) DateRange {
	if r.From.IsZero() || d.Before(r.From) {
		r.From = d
	}
	if r.To.IsZero() || d.After(r.To) {
		r.To = d
	}
	return r
}

// Subgroup partitions a Group's rows by exact recurring amount. A nil
// AmountCents marks the miscellaneous catch-all partition.
type Subgroup struct {
	ID             string
	Label          string
	RowIDs         []string
	LockedCategory string // category ID; empty when not locked
	TotalCents     int64
	AmountCents    *int64 // the recurring amount, nil for the catch-all
}

// Group clusters enriched rows sharing a merchant key. The sentinel keys
// are additionally split by direction, so Direction is meaningful there.
type Group struct {
	ID             string
	MerchantKey    string
	Direction      TransactionDirection
	RowIDs         []string
	Subgroups      []Subgroup
	LockedCategory string // category ID; empty when not locked
	Dates          DateRange
	TotalCents     int64
	RowCount       int
}
