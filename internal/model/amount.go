package model

import (
	"fmt"
	"strings"
)

// FormatAmountCents renders a signed minor-unit amount in the fixed
// import locale (thousands separated by dots, comma decimal): -120050
// becomes "-1.200,50". Used for subgroup labels and terminal display.
func FormatAmountCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	units := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", units)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return fmt.Sprintf("%s%s,%02d", sign, b.String(), frac)
}
