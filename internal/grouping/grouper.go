// Package grouping clusters enriched rows by merchant key and partitions
// each cluster by recurring exact amount, surfacing likely subscriptions
// and fixed charges.
package grouping

import (
	"sort"

	"github.com/google/uuid"

	"movimenti/internal/merchant"
	"movimenti/internal/model"
)

// CatchAllLabel names the subgroup holding non-recurring amounts.
const CatchAllLabel = "Varie"

// BuildGroups clusters rows by merchant key. The two sentinel keys are
// split further by direction: they hold heterogeneous, unrelated
// movements that must not be visually merged. Groups come back sorted by
// descending row count.
func BuildGroups(rows []model.EnrichedRow) []model.Group {
	type clusterKey struct {
		key       string
		direction model.TransactionDirection
	}

	clusters := make(map[clusterKey][]model.EnrichedRow)
	var order []clusterKey
	for _, row := range rows {
		ck := clusterKey{key: row.MerchantKey}
		if row.MerchantKey == merchant.KeyUnresolved || row.MerchantKey == merchant.KeyNoData {
			ck.direction = row.Direction()
		}
		if _, seen := clusters[ck]; !seen {
			order = append(order, ck)
		}
		clusters[ck] = append(clusters[ck], row)
	}

	groups := make([]model.Group, 0, len(order))
	for _, ck := range order {
		members := clusters[ck]
		group := model.Group{
			ID:          uuid.NewString(),
			MerchantKey: ck.key,
			Direction:   directionOf(members),
			RowCount:    len(members),
		}
		for _, row := range members {
			group.RowIDs = append(group.RowIDs, row.ID)
			group.TotalCents += row.AmountCents
			group.Dates = group.Dates.Extend(row.Date)
		}
		group.Subgroups = buildSubgroups(members)
		groups = append(groups, group)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].RowCount > groups[b].RowCount
	})
	return groups
}

func directionOf(rows []model.EnrichedRow) model.TransactionDirection {
	var total int64
	for _, row := range rows {
		total += row.AmountCents
	}
	return model.DirectionOf(total)
}

// buildSubgroups partitions rows by exact signed amount. Any amount
// occurring at least twice becomes its own subgroup labeled with the
// formatted amount; everything that occurs once merges into the
// catch-all. Sorted by descending absolute total.
func buildSubgroups(rows []model.EnrichedRow) []model.Subgroup {
	byAmount := make(map[int64][]model.EnrichedRow)
	var amountOrder []int64
	for _, row := range rows {
		if _, seen := byAmount[row.AmountCents]; !seen {
			amountOrder = append(amountOrder, row.AmountCents)
		}
		byAmount[row.AmountCents] = append(byAmount[row.AmountCents], row)
	}

	var subgroups []model.Subgroup
	var catchAll []model.EnrichedRow
	for _, amount := range amountOrder {
		members := byAmount[amount]
		if len(members) < 2 {
			catchAll = append(catchAll, members...)
			continue
		}
		amount := amount
		sg := model.Subgroup{
			ID:          uuid.NewString(),
			Label:       model.FormatAmountCents(amount),
			AmountCents: &amount,
		}
		for _, row := range members {
			sg.RowIDs = append(sg.RowIDs, row.ID)
			sg.TotalCents += row.AmountCents
		}
		subgroups = append(subgroups, sg)
	}

	// With no recurrence at all the group collapses to one catch-all.
	if len(catchAll) > 0 || len(subgroups) == 0 {
		sg := model.Subgroup{
			ID:    uuid.NewString(),
			Label: CatchAllLabel,
		}
		for _, row := range catchAll {
			sg.RowIDs = append(sg.RowIDs, row.ID)
			sg.TotalCents += row.AmountCents
		}
		subgroups = append(subgroups, sg)
	}

	sort.SliceStable(subgroups, func(a, b int) bool {
		return abs64(subgroups[a].TotalCents) > abs64(subgroups[b].TotalCents)
	})
	return subgroups
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
