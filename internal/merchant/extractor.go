// Package merchant reduces noisy bank transaction descriptions to
// canonical merchant keys through a strictly ordered, side-effect-free
// chain of text transformations.
//
// Rail recognition is split from merchant recognition on purpose: rails
// and merchants co-occur in the same string and compete for the same
// token-scoring signals, so rails are stripped first and a card-network
// name can never win as the "merchant".
package merchant

import "strings"

// Extractor runs the key-extraction pipeline over its rule tables. The
// tables are read-only; an Extractor is safe for concurrent use.
type Extractor struct {
	tables Tables
}

// NewExtractor returns an extractor using the built-in rule tables.
func NewExtractor() *Extractor {
	return &Extractor{tables: DefaultTables()}
}

// NewExtractorWithTables returns an extractor over caller-supplied
// tables. Tests use this to exercise single stages in isolation.
func NewExtractorWithTables(t Tables) *Extractor {
	return &Extractor{tables: t}
}

// Extract reduces a raw description to a canonical merchant key. The
// result is never empty: when no merchant text survives it is one of the
// sentinel keys.
func (e *Extractor) Extract(description string) string {
	t := e.tables

	s := collapseSpaces(strings.ToUpper(strings.TrimSpace(description)))
	if s == "" {
		return KeyNoData
	}

	// Exact overrides take absolute priority over every general rule.
	if key, ok := t.Overrides[s]; ok {
		return key
	}

	s, rail := stripRails(s, t.Rails)
	s = stripPrefixes(s, t.Prefixes, t.Boilerplate)
	s = cleanNoise(s)
	s = stripTrailingRegionCodes(s)

	if len(s) < 2 {
		return e.sentinel(rail)
	}

	if primary, sub, ok := marketplaceSplit(s, t); ok {
		if key, found := resolveCandidate(t.Dictionary, primary); found {
			return key
		}
		if key, found := resolveCandidate(t.Dictionary, sub); found {
			return key
		}
		// An unknown sub-merchant behind an explicit separator is still
		// the best signal available: trust the structure.
		if clean := withoutBlacklisted(t, sub); len(clean) > 0 && !purelyNumeric(clean) {
			if len(clean) > 3 {
				clean = clean[:3]
			}
			return strings.Join(clean, " ")
		}
	}

	tokens := strings.Fields(stripSeparatorChars(s))
	if key, ok := scanNGrams(t.Dictionary, tokens); ok {
		return key
	}

	if best := scoreTokens(t, tokens); len(best) > 0 {
		key := strings.Join(best, " ")
		if canonical, ok := t.Dictionary[key]; ok {
			return canonical
		}
		return key
	}

	return e.sentinel(rail)
}

// resolveCandidate checks a candidate first as a whole string, then
// token by token.
func resolveCandidate(dict map[string]string, tokens []string) (string, bool) {
	if len(tokens) == 0 {
		return "", false
	}
	if key, ok := lookupWhole(dict, strings.Join(tokens, " ")); ok {
		return key, true
	}
	return lookupTokens(dict, tokens)
}

func withoutBlacklisted(t Tables, tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		if _, black := t.Blacklist[tok]; black {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// sentinel picks the fallback key: a detected rail implies a real
// payment whose counterparty text did not survive.
func (e *Extractor) sentinel(rail string) string {
	if rail != "" {
		return KeyUnresolved
	}
	return KeyNoData
}
