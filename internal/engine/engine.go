// Package engine orchestrates the import pipeline: tabular parsing, row
// normalization, duplicate scoring, merchant key extraction, category
// enrichment, grouping and payload assembly.
//
// The whole pipeline is synchronous, pure data transformation. Each
// stage fully consumes its predecessor's output; nothing is mutated
// after it is produced. Re-running on identical input yields identical
// merchant keys, duplicate statuses and categories — only the generated
// identifiers differ.
package engine

import (
	"log/slog"

	"github.com/google/uuid"

	"movimenti/internal/dedupe"
	"movimenti/internal/enrich"
	"movimenti/internal/grouping"
	"movimenti/internal/merchant"
	"movimenti/internal/model"
	"movimenti/internal/normalize"
	"movimenti/internal/payload"
	"movimenti/internal/tabular"
)

// Options tune an Engine. Zero value means defaults.
type Options struct {
	// Rules replaces the default category pattern rules.
	Rules []enrich.PatternRule
	// Tables replaces the default merchant extraction tables.
	Tables *merchant.Tables
	// Progress, when set, is called after each row is enriched.
	Progress func(done, total int)
}

// Engine runs import sessions. Safe for concurrent use; each session is
// independent state.
type Engine struct {
	extractor *merchant.Extractor
	rules     []enrich.PatternRule
	progress  func(done, total int)
}

// New creates an engine with the default rule tables.
func New() *Engine {
	return NewWithOptions(Options{})
}

// NewWithOptions creates an engine with custom tables or rules.
func NewWithOptions(opts Options) *Engine {
	extractor := merchant.NewExtractor()
	if opts.Tables != nil {
		extractor = merchant.NewExtractorWithTables(*opts.Tables)
	}
	rules := opts.Rules
	if rules == nil {
		rules = enrich.DefaultRules
	}
	return &Engine{extractor: extractor, rules: rules, progress: opts.Progress}
}

// Session is the result of one import run: enriched rows, their groups,
// accumulated parse errors and the review summary. Immutable once
// produced; user corrections arrive later as Overrides.
type Session struct {
	Rows    []model.EnrichedRow
	Groups  []model.Group
	Errors  []model.ParseError
	Summary model.ImportSummary
}

// Failed reports a batch-fatal parse: no rows, one line-0 error.
func (s *Session) Failed() bool {
	return len(s.Rows) == 0 && len(s.Errors) > 0 && s.Errors[0].Line == 0
}

// RowByID finds a session row.
func (s *Session) RowByID(id string) (model.EnrichedRow, bool) {
	for _, r := range s.Rows {
		if r.ID == id {
			return r, true
		}
	}
	return model.EnrichedRow{}, false
}

// Import runs the pipeline over raw export text against the caller's
// transaction history. Batch-fatal problems come back as a failed
// session, never as a panic or an error: the caller shows the errors
// and allows re-upload.
func (e *Engine) Import(content string, history []model.Transaction) *Session {
	parsed := tabular.Parse(content)
	if parsed.Failed() {
		return &Session{Errors: parsed.Errors, Summary: model.ImportSummary{Errors: parsed.Errors}}
	}

	rows, normErrs := normalize.Normalize(parsed)
	errs := append(parsed.Errors, normErrs...)

	scorer := dedupe.NewScorer(history, e.extractor.Extract)
	enricher := enrich.NewEnricher(history, e.extractor.Extract, e.rules)

	enriched := make([]model.EnrichedRow, 0, len(rows))
	for i, row := range rows {
		key := e.extractor.Extract(row.Description)
		dup := scorer.Score(row, key)
		categoryID, source := enricher.Suggest(key)

		enriched = append(enriched, model.EnrichedRow{
			ParsedRow:          row,
			ID:                 uuid.NewString(),
			MerchantKey:        key,
			Duplicate:          dup.Status,
			MatchedTransaction: dup.MatchedID,
			SuggestedCategory:  categoryID,
			Source:             source,
			Selected:           dup.Status == model.DuplicateUnique,
		})
		if e.progress != nil {
			e.progress(i+1, len(rows))
		}
	}

	session := &Session{
		Rows:   enriched,
		Groups: grouping.BuildGroups(enriched),
		Errors: errs,
	}
	session.Summary = summarize(session)

	slog.Info("import session complete",
		"rows", len(session.Rows),
		"groups", len(session.Groups),
		"errors", len(session.Errors),
		"duplicates", session.Summary.DuplicatesSkipped)
	return session
}

// BuildPayload applies the threshold filter and emits the final payload.
// The returned FilterResult is the same value the filter fed to the
// builder, so review display and payload agree on included groups.
func (e *Engine) BuildPayload(s *Session, overrides []model.Override, categories model.CategoryDirectory, thresholdCents int64) (model.ImportPayload, grouping.FilterResult, error) {
	filter := grouping.ByThreshold(s.Groups, thresholdCents)
	out, err := payload.Build(s.Rows, filter, overrides, categories)
	if err != nil {
		return model.ImportPayload{}, grouping.FilterResult{}, err
	}
	return out, filter, nil
}

func summarize(s *Session) model.ImportSummary {
	summary := model.ImportSummary{
		TotalRows:      len(s.Rows),
		Errors:         s.Errors,
		CategoryTotals: make(map[string]int64),
	}

	for _, row := range s.Rows {
		if row.Selected {
			summary.SelectedRows++
		}
		if row.Duplicate != model.DuplicateUnique {
			summary.DuplicatesSkipped++
		}
		if row.AmountCents > 0 {
			summary.IncomeCents += row.AmountCents
		} else {
			summary.ExpenseCents += row.AmountCents
		}
		summary.Dates = summary.Dates.Extend(row.Date)

		category := row.SuggestedCategory
		if category == "" {
			if row.Direction() == model.DirectionIncome {
				category = enrich.CategoryOtherIncome
			} else {
				category = enrich.CategoryOtherExpense
			}
		}
		summary.CategoryTotals[category] += row.AmountCents
	}
	return summary
}
