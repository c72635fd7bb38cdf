package cli

import (
	"fmt"
	"sort"
	"strings"

	"movimenti/internal/engine"
	"movimenti/internal/merchant"
	"movimenti/internal/model"
)

// Amount renders a signed minor-unit amount with a euro suffix, colored
// by direction.
func Amount(cents int64) string {
	s := model.FormatAmountCents(cents) + " €"
	if cents < 0 {
		return ExpenseStyle.Render(s)
	}
	return IncomeStyle.Render("+" + s)
}

// RenderSummary renders an import summary for the terminal.
func RenderSummary(s model.ImportSummary) string {
	var b strings.Builder

	b.WriteString(FormatTitle("Import summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  rows:        %d (%d selected, %d duplicates skipped)\n",
		s.TotalRows, s.SelectedRows, s.DuplicatesSkipped)
	if !s.Dates.From.IsZero() {
		fmt.Fprintf(&b, "  period:      %s — %s\n",
			s.Dates.From.Format("2006-01-02"), s.Dates.To.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "  income:      %s\n", Amount(s.IncomeCents))
	fmt.Fprintf(&b, "  expenses:    %s\n", Amount(s.ExpenseCents))

	if len(s.CategoryTotals) > 0 {
		b.WriteString("  categories:\n")
		for _, categoryID := range sortedKeys(s.CategoryTotals) {
			fmt.Fprintf(&b, "    %-16s %s\n", categoryID, Amount(s.CategoryTotals[categoryID]))
		}
	}

	for _, e := range s.Errors {
		line := fmt.Sprintf("line %d: %s", e.Line, e.Message)
		if e.Severity == model.SeverityWarning {
			b.WriteString("  " + FormatWarning(line) + "\n")
		} else {
			b.WriteString("  " + FormatError(line) + "\n")
		}
	}
	return b.String()
}

// RenderGroups renders the grouped review listing.
func RenderGroups(session *engine.Session, groups []model.Group) string {
	var b strings.Builder
	for _, g := range groups {
		fmt.Fprintf(&b, "%s  %s  (%d rows)\n",
			TitleStyle.Render(groupLabel(g)), Amount(g.TotalCents), g.RowCount)
		for _, sg := range g.Subgroups {
			fmt.Fprintf(&b, "  %-24s %s  (%d rows)\n",
				sg.Label, Amount(sg.TotalCents), len(sg.RowIDs))
			for _, rowID := range sg.RowIDs {
				row, ok := session.RowByID(rowID)
				if !ok {
					continue
				}
				marker := " "
				if row.Duplicate != model.DuplicateUnique {
					marker = SubtleStyle.Render("d")
				}
				fmt.Fprintf(&b, "   %s %s  %s  %s\n",
					marker,
					row.Date.Format("2006-01-02"),
					Amount(row.AmountCents),
					SubtleStyle.Render(truncate(row.Description, 48)))
			}
		}
	}
	return b.String()
}

func groupLabel(g model.Group) string {
	if g.MerchantKey == merchant.KeyUnresolved || g.MerchantKey == merchant.KeyNoData {
		return fmt.Sprintf("%s (%s)", g.MerchantKey, g.Direction)
	}
	return g.MerchantKey
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
