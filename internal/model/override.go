package model

// OverrideLevel is the scope an override applies to.
type OverrideLevel string

const (
	// OverrideRow targets a single enriched row.
	OverrideRow OverrideLevel = "row"
	// OverrideSubgroup targets every row of a subgroup.
	OverrideSubgroup OverrideLevel = "subgroup"
	// OverrideGroup targets every row of a group.
	OverrideGroup OverrideLevel = "group"
)

// Override is a user decision layered on top of the enrichment output.
// Entities are never mutated in place; corrections accumulate as overrides.
type Override struct {
	TargetID   string
	Level      OverrideLevel
	CategoryID string
}
