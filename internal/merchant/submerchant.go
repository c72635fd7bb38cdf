package merchant

import "strings"

// separatorRanking orders the separators that can divide a marketplace
// prefix from its sub-merchant. The first one present wins.
var separatorRanking = []string{
	" *", "* ", "*",
	" - ",
	" / ", "/",
	":",
	"@",
	" PRESSO ",
	" C/O ",
}

// marketplaceSplit detects a known marketplace/aggregator prefix within
// the first 3 tokens and splits the text at the best-matching separator.
// The sub-merchant side comes back with bridge tokens filtered out.
func marketplaceSplit(s string, t Tables) (primary, sub []string, ok bool) {
	tokens := strings.Fields(s)
	limit := len(tokens)
	if limit > 3 {
		limit = 3
	}

	prefixEnd := -1
	for i := 0; i < limit; i++ {
		name := firstWord(tokens[i])
		if _, found := t.Marketplaces[name]; found {
			prefixEnd = strings.Index(s, tokens[i]) + len(name)
			break
		}
	}
	if prefixEnd < 0 {
		return nil, nil, false
	}

	for _, sep := range separatorRanking {
		idx := strings.Index(s[prefixEnd:], sep)
		if idx < 0 {
			continue
		}
		idx += prefixEnd
		primary = strings.Fields(stripSeparatorChars(s[:idx]))
		sub = filterBridgeTokens(strings.Fields(stripSeparatorChars(s[idx+len(sep):])), t)
		return primary, sub, true
	}
	return nil, nil, false
}

// firstWord returns the leading word of a token that may still carry
// separator characters ("PAYPAL*X" -> "PAYPAL").
func firstWord(token string) string {
	fields := strings.Fields(stripSeparatorChars(token))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// filterBridgeTokens drops the noise tokens expected between a
// marketplace prefix and the sub-merchant name.
func filterBridgeTokens(tokens []string, t Tables) []string {
	var out []string
	for _, tok := range tokens {
		if _, bridge := t.BridgeTokens[tok]; bridge {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// purelyNumeric reports whether every token is a bare number.
func purelyNumeric(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if !numericRe.MatchString(tok) {
			return false
		}
	}
	return true
}
