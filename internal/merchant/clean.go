package merchant

import "strings"

// stripPrefixes removes known leading transactional prefixes and then
// applies the bank-boilerplate patterns anywhere in the string.
func stripPrefixes(s string, prefixes []string, boilerplate []NamedPattern) string {
	for changed := true; changed; {
		changed = false
		for _, p := range prefixes {
			if strings.HasPrefix(s, p) {
				s = strings.TrimSpace(s[len(p):])
				changed = true
			}
		}
	}

	for _, rule := range boilerplate {
		s = rule.Re.ReplaceAllString(s, " ")
	}
	return collapseSpaces(s)
}

// cleanNoise removes embedded dates, long digit runs, masked card
// numbers and punctuation. Separator characters survive; the
// sub-merchant extractor still needs them.
func cleanNoise(s string) string {
	s = embeddedDateRe.ReplaceAllString(s, " ")
	s = maskedCardRe.ReplaceAllString(s, " ")
	s = longDigitsRe.ReplaceAllString(s, " ")
	s = punctuationRe.ReplaceAllString(s, " ")
	return collapseSpaces(s)
}

// stripTrailingRegionCodes drops the trailing run of 2-letter tokens
// (country and region codes bank processors append).
func stripTrailingRegionCodes(s string) string {
	tokens := strings.Fields(s)
	for len(tokens) > 0 && regionCodeRe.MatchString(tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

// stripSeparatorChars removes the separator characters kept alive for
// sub-merchant extraction, once that stage is done with them.
func stripSeparatorChars(s string) string {
	return collapseSpaces(strings.Map(func(r rune) rune {
		switch r {
		case '*', '/', ':', '@', '-':
			return ' '
		}
		return r
	}, s))
}
