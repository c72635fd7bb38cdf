// Package dedupe scores normalized rows against prior transaction
// history, assigning each row a duplicate confidence tier.
//
// Weights and thresholds are fixed constants, never learned: the same
// row against the same history always lands in the same tier, which
// keeps the import auditable.
package dedupe

import (
	"time"

	"movimenti/internal/model"
)

// KeyFunc computes the merchant key of a description (see the merchant
// package). Injected so the scorer stays decoupled from the rule tables.
type KeyFunc func(description string) string

// Scoring weights and thresholds.
const (
	dateExactWeight    = 45
	dateAdjacentWeight = 25
	amountExactWeight  = 45
	amountCloseWeight  = 25
	merchantKeyWeight  = 20
	descriptionWeight  = 10

	// ConfirmedThreshold marks a row as a confirmed duplicate.
	ConfirmedThreshold = 90
	// SuspectedThreshold marks a row as a suspected duplicate.
	SuspectedThreshold = 60

	// candidateWindowDays bounds the candidate pre-filter.
	candidateWindowDays = 3
)

// Scorer compares rows against a fixed history snapshot. Merchant keys
// for the history are computed once at construction.
type Scorer struct {
	keyFn       KeyFunc
	history     []model.Transaction
	historyKeys []string
}

// NewScorer builds a scorer over the caller-supplied history.
func NewScorer(history []model.Transaction, keyFn KeyFunc) *Scorer {
	keys := make([]string, len(history))
	for i, tx := range history {
		keys[i] = keyFn(tx.Description)
	}
	return &Scorer{keyFn: keyFn, history: history, historyKeys: keys}
}

// Result is the duplicate outcome for one row.
type Result struct {
	MatchedID string // ID of the best-scoring prior transaction, if any
	Status    model.DuplicateStatus
	Score     int
}

// Score evaluates one row against every pre-filtered candidate and
// returns the tier of the best match. rowKey is the row's merchant key,
// already computed by the caller.
func (s *Scorer) Score(row model.ParsedRow, rowKey string) Result {
	best := Result{Status: model.DuplicateUnique}

	for i, candidate := range s.history {
		// Pre-filter: same direction, within the date window. This
		// bounds comparison cost and drops obviously unrelated rows.
		if candidate.Direction() != row.Direction() {
			continue
		}
		dayDiff := calendarDaysApart(row.Date, candidate.Date)
		if dayDiff > candidateWindowDays {
			continue
		}

		score := s.scoreCandidate(row, rowKey, candidate, s.historyKeys[i], dayDiff)
		if score > best.Score {
			best.Score = score
			best.MatchedID = candidate.ID
		}
	}

	switch {
	case best.Score >= ConfirmedThreshold:
		best.Status = model.DuplicateConfirmed
	case best.Score >= SuspectedThreshold:
		best.Status = model.DuplicateSuspected
	default:
		best.Status = model.DuplicateUnique
		best.MatchedID = ""
	}
	return best
}

func (s *Scorer) scoreCandidate(row model.ParsedRow, rowKey string, candidate model.Transaction, candidateKey string, dayDiff int) int {
	// Amount is the strongest duplicate signal: any mismatch beyond 1%
	// disqualifies the candidate outright.
	amountScore := 0
	rowAbs := abs64(row.AmountCents)
	candAbs := abs64(candidate.AmountCents)
	switch {
	case rowAbs == candAbs:
		amountScore = amountExactWeight
	case withinOnePercent(rowAbs, candAbs):
		amountScore = amountCloseWeight
	default:
		return 0
	}

	score := amountScore
	switch dayDiff {
	case 0:
		score += dateExactWeight
	case 1:
		score += dateAdjacentWeight
	}

	if rowKey == candidateKey {
		score += merchantKeyWeight
	}
	if row.Description == candidate.Description {
		score += descriptionWeight
	}
	return score
}

// withinOnePercent allows tolerance of 1% of the larger amount, with a
// floor of one minor unit.
func withinOnePercent(a, b int64) bool {
	larger := a
	if b > larger {
		larger = b
	}
	tolerance := larger / 100
	if tolerance < 1 {
		tolerance = 1
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

func calendarDaysApart(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	diff := int(au.Sub(bu).Hours() / 24)
	if diff < 0 {
		diff = -diff
	}
	return diff
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
