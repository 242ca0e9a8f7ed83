// Package order turns extracted formula items into numbered order rows and
// manages the per-formula resolution state the user edits between the two.
package order

import (
	"sort"
	"strings"

	"github.com/piwi3910/SibGlass/internal/model"
	"github.com/piwi3910/SibGlass/internal/textutil"
)

// Resolver maps a source formula to its resolved form, "" when it cannot.
type Resolver func(source string) string

// Aggregate builds order rows from items in file order. Items without a
// non-blank resolution are dropped and do not consume an index.
func Aggregate(items []model.FormulaItem, resolved map[string]string) []model.OrderItem {
	orders := make([]model.OrderItem, 0, len(items))
	idx := 1
	for _, it := range items {
		formula := strings.TrimSpace(resolved[strings.TrimSpace(it.Formula)])
		if formula == "" {
			continue
		}
		orders = append(orders, model.OrderItem{
			Index:   idx,
			Formula: formula,
			Width:   it.Width,
			Height:  it.Height,
			Count:   it.Count,
		})
		idx++
	}
	return orders
}

// ResolutionMap collects the non-blank resolutions of rows.
func ResolutionMap(rows []model.FormulaRowState) map[string]string {
	m := make(map[string]string, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r.ResolvedFormula) == "" {
			continue
		}
		m[r.SourceFormula] = r.ResolvedFormula
	}
	return m
}

// NewRowStates returns one row per distinct non-empty formula of items,
// sorted. Numeric codes are resolved with resolve; others are left blank for
// manual entry.
func NewRowStates(items []model.FormulaItem, resolve Resolver) []model.FormulaRowState {
	seen := make(map[string]bool)
	var unique []string
	for _, it := range items {
		f := strings.TrimSpace(it.Formula)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		unique = append(unique, f)
	}
	sort.Strings(unique)

	rows := make([]model.FormulaRowState, 0, len(unique))
	for _, f := range unique {
		row := model.FormulaRowState{SourceFormula: f}
		if resolve != nil && textutil.IsNumericFormula(f) {
			row.ResolvedFormula = resolve(f)
		}
		rows = append(rows, row)
	}
	return rows
}

// Rebuild re-resolves every row the user has not edited, for instance after
// the material selection changed. Hand-edited rows are kept.
func Rebuild(rows []model.FormulaRowState, resolve Resolver) []model.FormulaRowState {
	out := make([]model.FormulaRowState, len(rows))
	for i, r := range rows {
		if !r.Modified && textutil.IsNumericFormula(r.SourceFormula) {
			r.ResolvedFormula = resolve(r.SourceFormula)
		}
		out[i] = r
	}
	return out
}

// SetResolved records a user edit of one row and marks it modified. It
// reports false when no row has that source formula.
func SetResolved(rows []model.FormulaRowState, source, value string) ([]model.FormulaRowState, bool) {
	source = strings.TrimSpace(source)
	out := make([]model.FormulaRowState, len(rows))
	copy(out, rows)
	for i := range out {
		if out[i].SourceFormula != source {
			continue
		}
		value = strings.TrimSpace(value)
		if out[i].ResolvedFormula != value {
			out[i].ResolvedFormula = value
			out[i].Modified = true
		}
		return out, true
	}
	return out, false
}

// ApplyOverrides applies a batch of user edits. It returns the updated rows
// and the overrides whose source formula is unknown, sorted.
func ApplyOverrides(rows []model.FormulaRowState, overrides map[string]string) ([]model.FormulaRowState, []string) {
	var unknown []string
	for source, value := range overrides {
		var ok bool
		rows, ok = SetResolved(rows, source, value)
		if !ok {
			unknown = append(unknown, source)
		}
	}
	sort.Strings(unknown)
	return rows, unknown
}

// MergeEdited carries hand edits from previous rows (for example rows saved
// from an earlier session) into rows built for the current file.
func MergeEdited(rows, previous []model.FormulaRowState) []model.FormulaRowState {
	edited := make(map[string]string)
	for _, p := range previous {
		if p.Modified {
			edited[p.SourceFormula] = p.ResolvedFormula
		}
	}
	out := make([]model.FormulaRowState, len(rows))
	for i, r := range rows {
		if v, ok := edited[r.SourceFormula]; ok {
			r.ResolvedFormula = v
			r.Modified = true
		}
		out[i] = r
	}
	return out
}
