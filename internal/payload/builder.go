// Package payload assembles the final transaction-creation records,
// resolving each row's category through the override hierarchy.
package payload

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"movimenti/internal/common"
	"movimenti/internal/enrich"
	"movimenti/internal/grouping"
	"movimenti/internal/model"
)

// overrideIndex resolves override lookups per level in O(1). Later
// overrides for the same target replace earlier ones.
type overrideIndex struct {
	row      map[string]string
	subgroup map[string]string
	group    map[string]string
}

func indexOverrides(overrides []model.Override) overrideIndex {
	idx := overrideIndex{
		row:      make(map[string]string),
		subgroup: make(map[string]string),
		group:    make(map[string]string),
	}
	for _, o := range overrides {
		switch o.Level {
		case model.OverrideRow:
			idx.row[o.TargetID] = o.CategoryID
		case model.OverrideSubgroup:
			idx.subgroup[o.TargetID] = o.CategoryID
		case model.OverrideGroup:
			idx.group[o.TargetID] = o.CategoryID
		}
	}
	return idx
}

// Build emits one transaction record per selected row of every included
// group. An unknown category ID or a zero resolved amount is a hard
// error: both signal a broken internal contract, not bad input data.
func Build(rows []model.EnrichedRow, filter grouping.FilterResult, overrides []model.Override, categories model.CategoryDirectory) (model.ImportPayload, error) {
	rowsByID := make(map[string]model.EnrichedRow, len(rows))
	for _, r := range rows {
		rowsByID[r.ID] = r
	}
	idx := indexOverrides(overrides)

	out := model.ImportPayload{
		ImportID:  uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	for _, group := range filter.Included {
		for _, sg := range group.Subgroups {
			for _, rowID := range sg.RowIDs {
				row, ok := rowsByID[rowID]
				if !ok {
					return model.ImportPayload{}, fmt.Errorf("group %s references row %s: %w", group.ID, rowID, common.ErrNotFound)
				}
				if !row.Selected {
					continue
				}

				record, err := buildRecord(row, group, sg, idx, categories)
				if err != nil {
					return model.ImportPayload{}, err
				}
				out.Transactions = append(out.Transactions, record)
			}
		}
	}
	return out, nil
}

func buildRecord(row model.EnrichedRow, group model.Group, sg model.Subgroup, idx overrideIndex, categories model.CategoryDirectory) (model.TransactionRecord, error) {
	categoryID, decidedByUser := resolveCategory(row, group, sg, idx)

	category, known := categories[categoryID]
	if !known {
		return model.TransactionRecord{}, fmt.Errorf("row %s resolved to category %q: %w", row.ID, categoryID, common.ErrUnknownCategory)
	}
	if row.AmountCents == 0 {
		// Structurally impossible after normalization; guard the invariant.
		return model.TransactionRecord{}, fmt.Errorf("row %s (line %d): %w", row.ID, row.Line, common.ErrZeroAmount)
	}

	source := classificationSource(row, categoryID, decidedByUser)
	amount := row.AmountCents
	if amount < 0 {
		amount = -amount
	}

	return model.TransactionRecord{
		Date:          row.Date,
		Description:   row.Description,
		CategoryID:    category.ID,
		CategoryLabel: category.Label,
		Direction:     row.Direction(),
		AmountCents:   amount,
		Superfluous:   category.Nature == model.NatureSuperfluous,
		Source:        source,
	}, nil
}

// resolveCategory walks the strict precedence order and reports whether
// a user decision (override or lock) picked the category.
func resolveCategory(row model.EnrichedRow, group model.Group, sg model.Subgroup, idx overrideIndex) (string, bool) {
	if c, ok := idx.row[row.ID]; ok {
		return c, true
	}
	if sg.LockedCategory != "" {
		return sg.LockedCategory, true
	}
	if group.LockedCategory != "" {
		return group.LockedCategory, true
	}
	if c, ok := idx.subgroup[sg.ID]; ok {
		return c, true
	}
	if c, ok := idx.group[group.ID]; ok {
		return c, true
	}
	if row.SuggestedCategory != "" {
		return row.SuggestedCategory, false
	}
	if row.Direction() == model.DirectionIncome {
		return enrich.CategoryOtherIncome, false
	}
	return enrich.CategoryOtherExpense, false
}

// classificationSource tags the record so downstream consumers can
// distinguish user intent from automation.
func classificationSource(row model.EnrichedRow, finalCategory string, decidedByUser bool) model.ClassificationSource {
	if decidedByUser {
		return model.SourceManual
	}
	if row.SuggestedCategory != "" && finalCategory != row.SuggestedCategory {
		return model.SourceManual
	}
	if row.Source == model.SuggestionFromHistory {
		return model.SourceAI
	}
	return model.SourceRuleBased
}
