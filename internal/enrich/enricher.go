// Package enrich maps merchant keys to suggested categories, consulting
// categorized history first and static keyword rules second.
package enrich

import (
	"strings"

	"movimenti/internal/merchant"
	"movimenti/internal/model"
)

// KeyFunc computes a merchant key for a description.
type KeyFunc func(description string) string

// Enricher suggests categories for merchant keys. The history map is a
// value derived from the caller's snapshot, rebuilt per pipeline
// invocation; nothing is cached across imports.
type Enricher struct {
	history map[string]string // merchant key -> category ID
	rules   []PatternRule
}

// NewEnricher derives the history map from prior transactions and wires
// the pattern rules behind it.
func NewEnricher(history []model.Transaction, keyFn KeyFunc, rules []PatternRule) *Enricher {
	hist := make(map[string]string)
	for _, tx := range history {
		if tx.CategoryID == "" {
			continue
		}
		key := keyFn(tx.Description)
		if key == merchant.KeyNoData {
			// A no-signal key would smear one category over every
			// signal-free row.
			continue
		}
		if _, seen := hist[key]; !seen {
			hist[key] = tx.CategoryID
		}
	}
	return &Enricher{history: hist, rules: rules}
}

// Suggest returns the category for a merchant key and where it came
// from. History wins over pattern rules; no match is not an error.
func (e *Enricher) Suggest(merchantKey string) (string, model.SuggestionSource) {
	if categoryID, ok := e.history[merchantKey]; ok {
		return categoryID, model.SuggestionFromHistory
	}

	upper := strings.ToUpper(merchantKey)
	for _, rule := range e.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(upper, kw) {
				return rule.CategoryID, model.SuggestionFromPattern
			}
		}
	}
	return "", model.SuggestionNone
}
