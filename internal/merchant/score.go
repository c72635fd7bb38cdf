package merchant

import (
	"sort"
	"strings"
)

// Token scoring weights. Fixed constants: the same input must always
// produce the same key.
const (
	positionBase      = 30
	positionStep      = 8
	lengthWeight      = 2
	lengthCap         = 10
	fragmentBonus     = 40
	dictBigramBonus   = 60
	overlapBonus      = 20
	numericPenalty    = -50
	singleCharPenalty = -40
	shortTokenPenalty = -15
	glueWordPenalty   = -3
)

// lookupWhole resolves a full string against the brand dictionary.
func lookupWhole(dict map[string]string, s string) (string, bool) {
	canonical, ok := dict[s]
	return canonical, ok
}

// lookupTokens resolves tokens one by one; the first dictionary hit wins.
func lookupTokens(dict map[string]string, tokens []string) (string, bool) {
	for _, tok := range tokens {
		if canonical, ok := dict[tok]; ok {
			return canonical, true
		}
	}
	return "", false
}

// scanNGrams checks trigrams, then bigrams, then unigrams against the
// dictionary. Longer matches go first so a partial brand name never
// shadows its fuller form.
func scanNGrams(dict map[string]string, tokens []string) (string, bool) {
	for n := 3; n >= 1; n-- {
		for i := 0; i+n <= len(tokens); i++ {
			gram := strings.Join(tokens[i:i+n], " ")
			if canonical, ok := dict[gram]; ok {
				return canonical, true
			}
		}
	}
	return "", false
}

type scoredToken struct {
	text  string
	index int
	score int
}

// scoreTokens is the last-resort heuristic: score every token, keep the
// top 2, and restore their original left-to-right order. Blacklisted
// tokens are excluded outright; tokens scoring zero or below do not
// survive.
func scoreTokens(t Tables, tokens []string) []string {
	var scored []scoredToken
	for i, tok := range tokens {
		if _, black := t.Blacklist[tok]; black {
			continue
		}
		scored = append(scored, scoredToken{text: tok, index: i, score: tokenScore(t, tokens, i)})
	}

	var survivors []scoredToken
	for _, s := range scored {
		if s.score > 0 {
			survivors = append(survivors, s)
		}
	}
	if len(survivors) == 0 {
		return nil
	}

	// Highest score first; ties keep original left-to-right order.
	sort.SliceStable(survivors, func(a, b int) bool {
		return survivors[a].score > survivors[b].score
	})
	if len(survivors) > 2 {
		survivors = survivors[:2]
	}
	sort.Slice(survivors, func(a, b int) bool {
		return survivors[a].index < survivors[b].index
	})

	out := make([]string, len(survivors))
	for i, s := range survivors {
		out[i] = s.text
	}
	return out
}

func tokenScore(t Tables, tokens []string, idx int) int {
	tok := tokens[idx]
	score := 0

	// Earlier tokens are likelier to be the merchant.
	if pos := positionBase - positionStep*idx; pos > 0 {
		score += pos
	}

	length := len(tok)
	if length > lengthCap {
		length = lengthCap
	}
	score += lengthWeight * length

	if containsString(t.Fragments, tok) {
		score += fragmentBonus
	} else if partialOverlap(t.Fragments, tok) {
		score += overlapBonus
	}

	if formsDictBigram(t.Dictionary, tokens, idx) {
		score += dictBigramBonus
	}

	switch {
	case numericRe.MatchString(tok):
		score += numericPenalty
	case len(tok) == 1:
		score += singleCharPenalty
	case len(tok) <= 3:
		if _, glue := t.GlueWords[tok]; glue {
			score += glueWordPenalty
		} else {
			score += shortTokenPenalty
		}
	}

	return score
}

// formsDictBigram reports whether the token joined with either neighbor
// is a dictionary entry.
func formsDictBigram(dict map[string]string, tokens []string, idx int) bool {
	if idx > 0 {
		if _, ok := dict[tokens[idx-1]+" "+tokens[idx]]; ok {
			return true
		}
	}
	if idx+1 < len(tokens) {
		if _, ok := dict[tokens[idx]+" "+tokens[idx+1]]; ok {
			return true
		}
	}
	return false
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// partialOverlap reports a substring relation between the token and any
// brand fragment, requiring at least 4 characters on both sides to avoid
// accidental overlaps.
func partialOverlap(fragments []string, tok string) bool {
	if len(tok) < 4 {
		return false
	}
	for _, f := range fragments {
		if len(f) < 4 {
			continue
		}
		if strings.Contains(tok, f) || strings.Contains(f, tok) {
			return true
		}
	}
	return false
}
