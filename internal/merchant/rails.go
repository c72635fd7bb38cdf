package merchant

import "strings"

// stripRails removes every payment-rail token appearing as a whole word,
// iterating to a fixed point since multiple rails co-occur (a card
// network plus a digital wallet, say). The loop is bounded by the token
// count so adversarial input cannot spin it. Returns the stripped text
// and the first rail removed, which later decides the sentinel fallback.
func stripRails(s string, rails []string) (string, string) {
	firstRail := ""
	maxPasses := len(strings.Fields(s)) + 1

	for pass := 0; pass < maxPasses; pass++ {
		removed := false
		// Longest rails first: a multi-word rail must not be shadowed
		// by a shorter substring rail.
		for _, rail := range rails {
			idx := wordIndex(s, rail)
			if idx < 0 {
				continue
			}
			if firstRail == "" {
				firstRail = rail
			}
			s = collapseSpaces(s[:idx] + " " + s[idx+len(rail):])
			removed = true
			break
		}
		if !removed {
			break
		}
	}
	return s, firstRail
}

// wordIndex finds sub as a whole word (or whole phrase) inside s,
// returning -1 when it only occurs embedded in a longer word.
func wordIndex(s, sub string) int {
	from := 0
	for {
		idx := strings.Index(s[from:], sub)
		if idx < 0 {
			return -1
		}
		idx += from
		if boundaryBefore(s, idx) && boundaryAfter(s, idx+len(sub)) {
			return idx
		}
		from = idx + 1
	}
}

func boundaryBefore(s string, idx int) bool {
	return idx == 0 || !isWordChar(s[idx-1])
}

func boundaryAfter(s string, idx int) bool {
	return idx >= len(s) || !isWordChar(s[idx])
}

func isWordChar(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
