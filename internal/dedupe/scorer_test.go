package dedupe

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"movimenti/internal/model"
)

// firstToken is a deliberately dumb key function: tests here exercise
// scoring, not merchant extraction.
func firstToken(description string) string {
	fields := strings.Fields(strings.ToUpper(description))
	if len(fields) == 0 {
		return "ALTRO"
	}
	return fields[0]
}

func historyTx(id string, date time.Time, amountCents int64, description string) model.Transaction {
	return model.Transaction{ID: id, Date: date, AmountCents: amountCents, Description: description}
}

func parsedRow(date time.Time, amountCents int64, description string) model.ParsedRow {
	return model.ParsedRow{Date: date, AmountCents: amountCents, Description: description, Epoch: date.Unix()}
}

func TestScoreExactMatchConfirmed(t *testing.T) {
	day := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	history := []model.Transaction{historyTx("tx-1", day, -1799, "NETFLIX ABBONAMENTO")}
	s := NewScorer(history, firstToken)

	row := parsedRow(day, -1799, "NETFLIX ABBONAMENTO")
	res := s.Score(row, firstToken(row.Description))

	assert.Equal(t, model.DuplicateConfirmed, res.Status)
	assert.Equal(t, "tx-1", res.MatchedID)
	assert.GreaterOrEqual(t, res.Score, ConfirmedThreshold)
}

func TestScoreAdjacentDayStillConfirmed(t *testing.T) {
	// Same amount, merchant and description one day apart: the bank
	// posted the same movement on a different date.
	day := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	history := []model.Transaction{historyTx("tx-1", day, -1799, "NETFLIX ABBONAMENTO")}
	s := NewScorer(history, firstToken)

	row := parsedRow(day.AddDate(0, 0, 1), -1799, "NETFLIX ABBONAMENTO")
	res := s.Score(row, firstToken(row.Description))

	assert.Equal(t, model.DuplicateConfirmed, res.Status)
}

func TestScoreSameAmountOnlySuspected(t *testing.T) {
	day := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	history := []model.Transaction{historyTx("tx-1", day, -5000, "BONIFICO VERSO MARIO")}
	s := NewScorer(history, firstToken)

	// Adjacent day and exact amount, different merchant and description.
	row := parsedRow(day.AddDate(0, 0, 1), -5000, "ESSELUNGA MILANO")
	res := s.Score(row, firstToken(row.Description))

	assert.Equal(t, model.DuplicateSuspected, res.Status)
	assert.Equal(t, "tx-1", res.MatchedID)
}

func TestScoreOppositeDirectionNeverMatches(t *testing.T) {
	day := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	history := []model.Transaction{historyTx("tx-1", day, 1799, "NETFLIX RIMBORSO")}
	s := NewScorer(history, firstToken)

	row := parsedRow(day, -1799, "NETFLIX RIMBORSO")
	res := s.Score(row, firstToken(row.Description))

	assert.Equal(t, model.DuplicateUnique, res.Status)
	assert.Empty(t, res.MatchedID)
}

func TestScoreAmountBeyondTolerance(t *testing.T) {
	day := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	history := []model.Transaction{historyTx("tx-1", day, -10000, "ESSELUNGA MILANO")}
	s := NewScorer(history, firstToken)

	// 5% off disqualifies regardless of every other signal.
	row := parsedRow(day, -10500, "ESSELUNGA MILANO")
	res := s.Score(row, firstToken(row.Description))

	assert.Equal(t, model.DuplicateUnique, res.Status)
}

func TestScoreAmountWithinOnePercent(t *testing.T) {
	day := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	history := []model.Transaction{historyTx("tx-1", day, -10000, "ESSELUNGA MILANO")}
	s := NewScorer(history, firstToken)

	row := parsedRow(day, -10050, "ESSELUNGA MILANO")
	res := s.Score(row, firstToken(row.Description))

	// Close amount scores lower than exact but the rest still confirms.
	assert.Equal(t, model.DuplicateConfirmed, res.Status)
	assert.Less(t, res.Score, dateExactWeight+amountExactWeight+merchantKeyWeight+descriptionWeight)
}

func TestScoreOutsideDateWindow(t *testing.T) {
	day := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	history := []model.Transaction{historyTx("tx-1", day, -1799, "NETFLIX ABBONAMENTO")}
	s := NewScorer(history, firstToken)

	row := parsedRow(day.AddDate(0, 0, 10), -1799, "NETFLIX ABBONAMENTO")
	res := s.Score(row, firstToken(row.Description))

	assert.Equal(t, model.DuplicateUnique, res.Status)
}

func TestScoreBestCandidateWins(t *testing.T) {
	day := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	history := []model.Transaction{
		historyTx("weaker", day.AddDate(0, 0, 1), -1799, "ALTRO MOVIMENTO"),
		historyTx("stronger", day, -1799, "NETFLIX ABBONAMENTO"),
	}
	s := NewScorer(history, firstToken)

	row := parsedRow(day, -1799, "NETFLIX ABBONAMENTO")
	res := s.Score(row, firstToken(row.Description))

	assert.Equal(t, "stronger", res.MatchedID)
}

func TestScoreEmptyHistory(t *testing.T) {
	s := NewScorer(nil, firstToken)

	row := parsedRow(time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), -1799, "NETFLIX")
	res := s.Score(row, firstToken(row.Description))

	assert.Equal(t, model.DuplicateUnique, res.Status)
	assert.Zero(t, res.Score)
}

func TestScoreDeterministic(t *testing.T) {
	day := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	history := []model.Transaction{
		historyTx("tx-1", day, -5000, "ESSELUNGA MILANO"),
		historyTx("tx-2", day, -5000, "ESSELUNGA MILANO"),
	}
	s := NewScorer(history, firstToken)

	row := parsedRow(day, -5000, "ESSELUNGA MILANO")
	first := s.Score(row, firstToken(row.Description))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.Score(row, firstToken(row.Description)))
	}
}
