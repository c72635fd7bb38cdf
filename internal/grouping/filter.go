package grouping

import (
	"sort"

	"movimenti/internal/model"
)

// FilterResult is the single source of truth for which groups are
// visible at review time and represented in the final payload. Both
// consumers read the same value, so they agree by construction.
type FilterResult struct {
	Included    []model.Group
	ExcludedIDs []string
}

// ByThreshold selects groups whose absolute total meets the threshold,
// sorted by descending absolute total, and reports the complement as
// excluded group IDs.
func ByThreshold(groups []model.Group, thresholdCents int64) FilterResult {
	var result FilterResult
	for _, g := range groups {
		if abs64(g.TotalCents) >= thresholdCents {
			result.Included = append(result.Included, g)
		} else {
			result.ExcludedIDs = append(result.ExcludedIDs, g.ID)
		}
	}
	sort.SliceStable(result.Included, func(a, b int) bool {
		return abs64(result.Included[a].TotalCents) > abs64(result.Included[b].TotalCents)
	})
	return result
}
