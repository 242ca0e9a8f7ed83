package order

import (
	"testing"

	"github.com/piwi3910/SibGlass/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upper(source string) string { return "R" + source }

// ─── Aggregate Tests ───────────────────────────────────────

func TestAggregate_KeepsOrderAndSkipsUnresolved(t *testing.T) {
	items := []model.FormulaItem{
		{Formula: "4-16-4", Width: 1200, Height: 800, Count: 2},
		{Formula: "СПД 32", Width: 500, Height: 500, Count: 1},
		{Formula: "4-10-4-10-4", Width: 600, Height: 600, Count: 3},
		{Formula: "4-16-4", Width: 300, Height: 300, Count: 1},
	}
	resolved := map[string]string{
		"4-16-4":      "4Пл4-16TPS-4Пл4",
		"4-10-4-10-4": "4Пл4-10TPS-4Пл4-10TPS-4Пл4",
		"СПД 32":      "   ",
	}

	orders := Aggregate(items, resolved)

	require.Len(t, orders, 3)
	assert.Equal(t, model.OrderItem{Index: 1, Formula: "4Пл4-16TPS-4Пл4", Width: 1200, Height: 800, Count: 2}, orders[0])
	assert.Equal(t, 2, orders[1].Index)
	assert.Equal(t, "4Пл4-10TPS-4Пл4-10TPS-4Пл4", orders[1].Formula)
	assert.Equal(t, 3, orders[2].Index)
	assert.Equal(t, 300, orders[2].Width)
}

// Every emitted row has a resolved source item, and the number of rows
// equals the number of such items.
func TestAggregate_Property(t *testing.T) {
	items := []model.FormulaItem{
		{Formula: "a", Count: 1}, {Formula: "b", Count: 1}, {Formula: "a", Count: 4},
		{Formula: "c", Count: 1}, {Formula: "", Count: 1}, {Formula: "b", Count: 2},
	}
	resolved := map[string]string{"a": "A", "c": "C"}

	orders := Aggregate(items, resolved)

	expected := 0
	for _, it := range items {
		if resolved[it.Formula] != "" {
			expected++
		}
	}
	require.Len(t, orders, expected)
	for i, o := range orders {
		assert.Equal(t, i+1, o.Index)
		assert.NotEmpty(t, o.Formula)
	}
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil, nil))
	assert.Empty(t, Aggregate([]model.FormulaItem{{Formula: "4-16-4", Count: 1}}, nil))
}

// ─── Row State Tests ───────────────────────────────────────

func TestNewRowStates(t *testing.T) {
	items := []model.FormulaItem{
		{Formula: "4-16-4"}, {Formula: " СПД "}, {Formula: "4-16-4 "},
		{Formula: "4-10-4-10-4"}, {Formula: ""},
	}

	rows := NewRowStates(items, upper)

	require.Len(t, rows, 3)
	assert.Equal(t, "4-10-4-10-4", rows[0].SourceFormula)
	assert.Equal(t, "R4-10-4-10-4", rows[0].ResolvedFormula)
	assert.Equal(t, "4-16-4", rows[1].SourceFormula)
	assert.Equal(t, "СПД", rows[2].SourceFormula)
	assert.Empty(t, rows[2].ResolvedFormula, "non-numeric formulas are left for manual entry")
	for _, r := range rows {
		assert.False(t, r.Modified)
	}
}

func TestResolutionMap(t *testing.T) {
	rows := []model.FormulaRowState{
		{SourceFormula: "a", ResolvedFormula: "A"},
		{SourceFormula: "b", ResolvedFormula: " "},
		{SourceFormula: "c"},
	}
	assert.Equal(t, map[string]string{"a": "A"}, ResolutionMap(rows))
}

func TestSetResolvedAndRebuild(t *testing.T) {
	rows := NewRowStates([]model.FormulaItem{{Formula: "4-16-4"}, {Formula: "6-12-6"}}, upper)

	rows, ok := SetResolved(rows, "6-12-6", "  hand  ")
	require.True(t, ok)
	assert.Equal(t, "hand", rows[1].ResolvedFormula)
	assert.True(t, rows[1].Modified)

	_, ok = SetResolved(rows, "missing", "x")
	assert.False(t, ok)

	rebuilt := Rebuild(rows, func(s string) string { return "N" + s })
	assert.Equal(t, "N4-16-4", rebuilt[0].ResolvedFormula)
	assert.Equal(t, "hand", rebuilt[1].ResolvedFormula)
	assert.Equal(t, "R4-16-4", rows[0].ResolvedFormula, "input slice is not modified")
}

func TestSetResolved_SameValueIsNotAnEdit(t *testing.T) {
	rows := NewRowStates([]model.FormulaItem{{Formula: "4-16-4"}}, upper)
	rows, ok := SetResolved(rows, "4-16-4", "R4-16-4")
	require.True(t, ok)
	assert.False(t, rows[0].Modified)
}

func TestApplyOverrides(t *testing.T) {
	rows := NewRowStates([]model.FormulaItem{{Formula: "4-16-4"}, {Formula: "СПД"}}, upper)

	rows, unknown := ApplyOverrides(rows, map[string]string{
		"СПД": "СПД 32мм",
		"z":   "1",
		"8-8": "2",
	})

	assert.Equal(t, []string{"8-8", "z"}, unknown)
	assert.Equal(t, "СПД 32мм", rows[1].ResolvedFormula)
	assert.True(t, rows[1].Modified)
	assert.False(t, rows[0].Modified)
}

func TestMergeEdited(t *testing.T) {
	previous := []model.FormulaRowState{
		{SourceFormula: "4-16-4", ResolvedFormula: "old auto"},
		{SourceFormula: "СПД", ResolvedFormula: "СПД 32мм", Modified: true},
		{SourceFormula: "gone", ResolvedFormula: "x", Modified: true},
	}
	rows := NewRowStates([]model.FormulaItem{{Formula: "4-16-4"}, {Formula: "СПД"}}, upper)

	merged := MergeEdited(rows, previous)

	require.Len(t, merged, 2)
	assert.Equal(t, "R4-16-4", merged[0].ResolvedFormula)
	assert.Equal(t, "СПД 32мм", merged[1].ResolvedFormula)
	assert.True(t, merged[1].Modified)
}
