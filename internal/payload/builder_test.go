package payload

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movimenti/internal/common"
	"movimenti/internal/enrich"
	"movimenti/internal/grouping"
	"movimenti/internal/model"
)

func testCategories() model.CategoryDirectory {
	return model.NewCategoryDirectory([]model.Category{
		{ID: enrich.CategoryGroceries, Label: "Spesa", Type: model.CategoryTypeExpense, Nature: model.NatureEssential},
		{ID: enrich.CategorySubscriptions, Label: "Abbonamenti", Type: model.CategoryTypeExpense, Nature: model.NatureSuperfluous},
		{ID: enrich.CategorySalary, Label: "Stipendio", Type: model.CategoryTypeIncome, Nature: model.NatureNeutral},
		{ID: enrich.CategoryDining, Label: "Ristoranti", Type: model.CategoryTypeExpense, Nature: model.NatureSuperfluous},
		{ID: enrich.CategoryOtherExpense, Label: "Altre uscite", Type: model.CategoryTypeExpense, Nature: model.NatureNeutral},
		{ID: enrich.CategoryOtherIncome, Label: "Altre entrate", Type: model.CategoryTypeIncome, Nature: model.NatureNeutral},
	})
}

func enrichedRow(id, key string, amountCents int64, suggested string, source model.SuggestionSource) model.EnrichedRow {
	return model.EnrichedRow{
		ParsedRow: model.ParsedRow{
			Date:        time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
			AmountCents: amountCents,
			Description: key,
		},
		ID:                id,
		MerchantKey:       key,
		Duplicate:         model.DuplicateUnique,
		SuggestedCategory: suggested,
		Source:            source,
		Selected:          true,
	}
}

func buildFilter(rows []model.EnrichedRow) grouping.FilterResult {
	return grouping.ByThreshold(grouping.BuildGroups(rows), 0)
}

func TestBuildSuggestedCategories(t *testing.T) {
	rows := []model.EnrichedRow{
		enrichedRow("r1", "ESSELUNGA", -5000, enrich.CategoryGroceries, model.SuggestionFromPattern),
		enrichedRow("r2", "NETFLIX", -1799, enrich.CategorySubscriptions, model.SuggestionFromHistory),
	}

	out, err := Build(rows, buildFilter(rows), nil, testCategories())
	require.NoError(t, err)
	require.Len(t, out.Transactions, 2)
	assert.NotEmpty(t, out.ImportID)

	byCategory := make(map[string]model.TransactionRecord)
	for _, rec := range out.Transactions {
		byCategory[rec.CategoryID] = rec
	}

	groceries := byCategory[enrich.CategoryGroceries]
	assert.Equal(t, "Spesa", groceries.CategoryLabel)
	assert.Equal(t, int64(5000), groceries.AmountCents, "payload amounts are absolute")
	assert.Equal(t, model.DirectionExpense, groceries.Direction)
	assert.False(t, groceries.Superfluous)
	assert.Equal(t, model.SourceRuleBased, groceries.Source)

	subs := byCategory[enrich.CategorySubscriptions]
	assert.True(t, subs.Superfluous)
	assert.Equal(t, model.SourceAI, subs.Source)
}

func TestBuildDirectionFallbacks(t *testing.T) {
	rows := []model.EnrichedRow{
		enrichedRow("r1", "SCONOSCIUTO", -4200, "", model.SuggestionNone),
		enrichedRow("r2", "ACCREDITO IGNOTO", 4200, "", model.SuggestionNone),
	}

	out, err := Build(rows, buildFilter(rows), nil, testCategories())
	require.NoError(t, err)
	require.Len(t, out.Transactions, 2)

	for _, rec := range out.Transactions {
		if rec.Direction == model.DirectionExpense {
			assert.Equal(t, enrich.CategoryOtherExpense, rec.CategoryID)
		} else {
			assert.Equal(t, enrich.CategoryOtherIncome, rec.CategoryID)
		}
		assert.Equal(t, model.SourceRuleBased, rec.Source)
	}
}

func TestBuildOverridePrecedence(t *testing.T) {
	rows := []model.EnrichedRow{
		enrichedRow("r1", "NETFLIX", -1799, enrich.CategorySubscriptions, model.SuggestionFromPattern),
		enrichedRow("r2", "NETFLIX", -1799, enrich.CategorySubscriptions, model.SuggestionFromPattern),
	}
	filter := buildFilter(rows)
	require.Len(t, filter.Included, 1)
	group := filter.Included[0]

	// Row override on r1 beats the group override; r2 takes the group's.
	overrides := []model.Override{
		{TargetID: group.ID, Level: model.OverrideGroup, CategoryID: enrich.CategoryDining},
		{TargetID: "r1", Level: model.OverrideRow, CategoryID: enrich.CategoryGroceries},
	}

	out, err := Build(rows, filter, overrides, testCategories())
	require.NoError(t, err)
	require.Len(t, out.Transactions, 2)

	categories := make(map[string]bool)
	for _, rec := range out.Transactions {
		categories[rec.CategoryID] = true
		assert.Equal(t, model.SourceManual, rec.Source)
	}
	assert.True(t, categories[enrich.CategoryGroceries])
	assert.True(t, categories[enrich.CategoryDining])
}

func TestBuildSubgroupOverride(t *testing.T) {
	rows := []model.EnrichedRow{
		enrichedRow("r1", "NETFLIX", -1799, enrich.CategorySubscriptions, model.SuggestionFromPattern),
		enrichedRow("r2", "NETFLIX", -1799, enrich.CategorySubscriptions, model.SuggestionFromPattern),
	}
	filter := buildFilter(rows)
	require.Len(t, filter.Included, 1)
	require.NotEmpty(t, filter.Included[0].Subgroups)
	sg := filter.Included[0].Subgroups[0]

	overrides := []model.Override{
		{TargetID: sg.ID, Level: model.OverrideSubgroup, CategoryID: enrich.CategoryDining},
	}

	out, err := Build(rows, filter, overrides, testCategories())
	require.NoError(t, err)
	for _, rec := range out.Transactions {
		assert.Equal(t, enrich.CategoryDining, rec.CategoryID)
		assert.Equal(t, model.SourceManual, rec.Source)
	}
}

func TestBuildLockBeatsOverride(t *testing.T) {
	rows := []model.EnrichedRow{
		enrichedRow("r1", "NETFLIX", -1799, enrich.CategorySubscriptions, model.SuggestionFromPattern),
	}
	filter := buildFilter(rows)
	require.Len(t, filter.Included, 1)
	filter.Included[0].LockedCategory = enrich.CategoryDining

	overrides := []model.Override{
		{TargetID: filter.Included[0].ID, Level: model.OverrideGroup, CategoryID: enrich.CategoryGroceries},
	}

	out, err := Build(rows, filter, overrides, testCategories())
	require.NoError(t, err)
	require.Len(t, out.Transactions, 1)
	assert.Equal(t, enrich.CategoryDining, out.Transactions[0].CategoryID)
}

func TestBuildSkipsUnselectedRows(t *testing.T) {
	r1 := enrichedRow("r1", "NETFLIX", -1799, enrich.CategorySubscriptions, model.SuggestionFromPattern)
	r2 := enrichedRow("r2", "NETFLIX", -1799, enrich.CategorySubscriptions, model.SuggestionFromPattern)
	r2.Duplicate = model.DuplicateConfirmed
	r2.Selected = false
	rows := []model.EnrichedRow{r1, r2}

	out, err := Build(rows, buildFilter(rows), nil, testCategories())
	require.NoError(t, err)
	require.Len(t, out.Transactions, 1)
}

func TestBuildSkipsExcludedGroups(t *testing.T) {
	rows := []model.EnrichedRow{
		enrichedRow("r1", "ESSELUNGA", -15000, enrich.CategoryGroceries, model.SuggestionFromPattern),
		enrichedRow("r2", "BAR ROSSI", -250, enrich.CategoryDining, model.SuggestionFromPattern),
	}
	filter := grouping.ByThreshold(grouping.BuildGroups(rows), 1000)

	out, err := Build(rows, filter, nil, testCategories())
	require.NoError(t, err)
	require.Len(t, out.Transactions, 1)
	assert.Equal(t, enrich.CategoryGroceries, out.Transactions[0].CategoryID)
}

func TestBuildUnknownCategoryIsHardError(t *testing.T) {
	rows := []model.EnrichedRow{
		enrichedRow("r1", "NETFLIX", -1799, "no-such-category", model.SuggestionFromPattern),
	}

	_, err := Build(rows, buildFilter(rows), nil, testCategories())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnknownCategory))
}

func TestBuildManualWhenFinalDiffersFromSuggestion(t *testing.T) {
	rows := []model.EnrichedRow{
		enrichedRow("r1", "NETFLIX", -1799, enrich.CategorySubscriptions, model.SuggestionFromHistory),
	}
	overrides := []model.Override{
		{TargetID: "r1", Level: model.OverrideRow, CategoryID: enrich.CategoryDining},
	}

	out, err := Build(rows, buildFilter(rows), overrides, testCategories())
	require.NoError(t, err)
	require.Len(t, out.Transactions, 1)
	assert.Equal(t, model.SourceManual, out.Transactions[0].Source)
}

func TestBuildEmptySession(t *testing.T) {
	out, err := Build(nil, grouping.FilterResult{}, nil, testCategories())
	require.NoError(t, err)
	assert.Empty(t, out.Transactions)
	assert.NotEmpty(t, out.ImportID)
}
