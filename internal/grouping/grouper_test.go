package grouping

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movimenti/internal/merchant"
	"movimenti/internal/model"
)

func row(id, key string, amountCents int64) model.EnrichedRow {
	return model.EnrichedRow{
		ParsedRow: model.ParsedRow{
			Date:        time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
			AmountCents: amountCents,
		},
		ID:          id,
		MerchantKey: key,
		Duplicate:   model.DuplicateUnique,
		Selected:    true,
	}
}

func TestBuildGroupsClustersByMerchantKey(t *testing.T) {
	rows := []model.EnrichedRow{
		row("r1", "NETFLIX", -1799),
		row("r2", "ESSELUNGA", -5000),
		row("r3", "NETFLIX", -1799),
	}

	groups := BuildGroups(rows)
	require.Len(t, groups, 2)

	// Sorted by descending row count.
	assert.Equal(t, "NETFLIX", groups[0].MerchantKey)
	assert.Equal(t, 2, groups[0].RowCount)
	assert.Equal(t, int64(-3598), groups[0].TotalCents)
	assert.ElementsMatch(t, []string{"r1", "r3"}, groups[0].RowIDs)

	assert.Equal(t, "ESSELUNGA", groups[1].MerchantKey)
	assert.Equal(t, model.DirectionExpense, groups[1].Direction)
}

func TestBuildGroupsRecurringAmountSubgroups(t *testing.T) {
	rows := []model.EnrichedRow{
		row("r1", "NETFLIX", -1799),
		row("r2", "NETFLIX", -1799),
		row("r3", "NETFLIX", -1799),
		row("r4", "NETFLIX", -999),
		row("r5", "NETFLIX", -500),
	}

	groups := BuildGroups(rows)
	require.Len(t, groups, 1)

	subgroups := groups[0].Subgroups
	require.Len(t, subgroups, 2)

	// Recurring -17,99 first (largest absolute total), then the catch-all.
	require.NotNil(t, subgroups[0].AmountCents)
	assert.Equal(t, int64(-1799), *subgroups[0].AmountCents)
	assert.Equal(t, "-17,99", subgroups[0].Label)
	assert.Len(t, subgroups[0].RowIDs, 3)

	assert.Equal(t, CatchAllLabel, subgroups[1].Label)
	assert.Nil(t, subgroups[1].AmountCents)
	assert.ElementsMatch(t, []string{"r4", "r5"}, subgroups[1].RowIDs)
}

func TestBuildGroupsNoRecurrenceSingleCatchAll(t *testing.T) {
	rows := []model.EnrichedRow{
		row("r1", "ESSELUNGA", -5000),
		row("r2", "ESSELUNGA", -7250),
	}

	groups := BuildGroups(rows)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Subgroups, 1)
	assert.Equal(t, CatchAllLabel, groups[0].Subgroups[0].Label)
	assert.Len(t, groups[0].Subgroups[0].RowIDs, 2)
}

func TestBuildGroupsSubgroupsPartitionGroup(t *testing.T) {
	var rows []model.EnrichedRow
	for i := 0; i < 20; i++ {
		amount := int64(-100 * (i%4 + 1))
		rows = append(rows, row(fmt.Sprintf("r%d", i), "COOP", amount))
	}

	groups := BuildGroups(rows)
	require.Len(t, groups, 1)
	group := groups[0]

	seen := make(map[string]int)
	var subTotal int64
	for _, sg := range group.Subgroups {
		for _, id := range sg.RowIDs {
			seen[id]++
		}
		subTotal += sg.TotalCents
	}

	// Every row appears in exactly one subgroup; totals agree.
	assert.Len(t, seen, len(rows))
	for id, count := range seen {
		assert.Equal(t, 1, count, "row %s in %d subgroups", id, count)
	}
	assert.Equal(t, group.TotalCents, subTotal)
}

func TestBuildGroupsSentinelKeysSplitByDirection(t *testing.T) {
	rows := []model.EnrichedRow{
		row("r1", merchant.KeyUnresolved, -1000),
		row("r2", merchant.KeyUnresolved, 2000),
		row("r3", merchant.KeyNoData, -300),
	}

	groups := BuildGroups(rows)
	require.Len(t, groups, 3)

	byKey := make(map[string][]model.TransactionDirection)
	for _, g := range groups {
		byKey[g.MerchantKey] = append(byKey[g.MerchantKey], g.Direction)
	}
	assert.ElementsMatch(t, []model.TransactionDirection{model.DirectionExpense, model.DirectionIncome}, byKey[merchant.KeyUnresolved])
	assert.Len(t, byKey[merchant.KeyNoData], 1)
}

func TestBuildGroupsRealKeysNotSplitByDirection(t *testing.T) {
	// A refund and a purchase from the same merchant stay together.
	rows := []model.EnrichedRow{
		row("r1", "ZALANDO", -8000),
		row("r2", "ZALANDO", 3000),
	}

	groups := BuildGroups(rows)
	require.Len(t, groups, 1)
	assert.Equal(t, int64(-5000), groups[0].TotalCents)
}

func TestBuildGroupsEmpty(t *testing.T) {
	assert.Empty(t, BuildGroups(nil))
}

func TestByThreshold(t *testing.T) {
	groups := BuildGroups([]model.EnrichedRow{
		row("r1", "NETFLIX", -1799),
		row("r2", "ESSELUNGA", -15000),
		row("r3", "BAR ROSSI", -250),
	})

	result := ByThreshold(groups, 1000)

	require.Len(t, result.Included, 2)
	assert.Equal(t, "ESSELUNGA", result.Included[0].MerchantKey)
	assert.Equal(t, "NETFLIX", result.Included[1].MerchantKey)
	require.Len(t, result.ExcludedIDs, 1)

	var barID string
	for _, g := range groups {
		if g.MerchantKey == "BAR ROSSI" {
			barID = g.ID
		}
	}
	assert.Equal(t, barID, result.ExcludedIDs[0])
}

func TestByThresholdBoundaryIncluded(t *testing.T) {
	groups := BuildGroups([]model.EnrichedRow{row("r1", "BAR ROSSI", -1000)})

	result := ByThreshold(groups, 1000)
	assert.Len(t, result.Included, 1)
	assert.Empty(t, result.ExcludedIDs)
}

func TestByThresholdZeroKeepsAll(t *testing.T) {
	groups := BuildGroups([]model.EnrichedRow{
		row("r1", "A", -1),
		row("r2", "B", -20000),
	})

	result := ByThreshold(groups, 0)
	assert.Len(t, result.Included, 2)
	assert.Empty(t, result.ExcludedIDs)
}
