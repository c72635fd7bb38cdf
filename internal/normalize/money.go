package normalize

import (
	"fmt"
	"strings"
)

// ParseAmountCents converts a bank-export amount string into signed minor
// currency units. Handles EU grouping ("1.234,56"), US grouping
// ("1,234.56"), plain ISO decimals ("-12.50") and parenthesis negatives
// ("(50.00)"). Integer arithmetic throughout; no floats, no rounding drift.
func ParseAmountCents(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	// Strip currency markers and spacing; keep digits, sign and separators.
	var b strings.Builder
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c == '.', c == ',', c == '-', c == '+':
			b.WriteRune(c)
		}
	}
	s = b.String()

	switch {
	case strings.HasPrefix(s, "-"):
		negative = !negative
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if strings.HasSuffix(s, "-") { // trailing-sign exports exist
		negative = !negative
		s = s[:len(s)-1]
	}
	if s == "" {
		return 0, fmt.Errorf("no digits in amount %q", raw)
	}

	intPart, fracPart, err := splitDecimal(s)
	if err != nil {
		return 0, fmt.Errorf("malformed amount %q: %w", raw, err)
	}

	var cents int64
	for _, c := range intPart {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("malformed amount %q", raw)
		}
		cents = cents*10 + int64(c-'0')
	}
	cents *= 100

	// Normalize the fraction to exactly two digits.
	switch len(fracPart) {
	case 0:
	case 1:
		fracPart += "0"
	default:
		fracPart = fracPart[:2]
	}
	for _, c := range fracPart {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("malformed amount %q", raw)
		}
	}
	if len(fracPart) == 2 {
		cents += int64(fracPart[0]-'0')*10 + int64(fracPart[1]-'0')
	}

	if negative {
		cents = -cents
	}
	return cents, nil
}

// splitDecimal separates integer digits from fractional digits, deciding
// which separator is decimal and which is grouping.
func splitDecimal(s string) (intPart, fracPart string, err error) {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	var decimalSep byte
	switch {
	case lastDot >= 0 && lastComma >= 0:
		// Both present: the rightmost separator is the decimal one.
		if lastDot > lastComma {
			decimalSep = '.'
		} else {
			decimalSep = ','
		}
	case lastDot >= 0:
		decimalSep = classifySingle(s, ".", lastDot)
	case lastComma >= 0:
		decimalSep = classifySingle(s, ",", lastComma)
	}

	if decimalSep != 0 {
		idx := strings.LastIndexByte(s, decimalSep)
		intPart, fracPart = s[:idx], s[idx+1:]
		if len(fracPart) > 2 {
			return "", "", fmt.Errorf("too many decimal digits")
		}
	} else {
		intPart = s
	}

	intPart = strings.Map(func(r rune) rune {
		if r == '.' || r == ',' {
			return -1
		}
		return r
	}, intPart)

	if intPart == "" && fracPart == "" {
		return "", "", fmt.Errorf("no digits")
	}
	if intPart == "" {
		intPart = "0"
	}
	return intPart, fracPart, nil
}

// classifySingle decides whether a lone separator kind is decimal or
// grouping: a single occurrence followed by one or two digits is a
// decimal point; repeated occurrences or a three-digit tail ("1.234")
// mark thousands grouping.
func classifySingle(s, sep string, lastIdx int) byte {
	if strings.Count(s, sep) > 1 {
		return 0
	}
	tail := len(s) - lastIdx - 1
	if tail == 3 && lastIdx > 0 {
		return 0
	}
	return sep[0]
}
