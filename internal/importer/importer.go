// Package importer extracts glass order lines from AluPro spreadsheet
// exports. Two strategies are tried in order: a header-driven column mapping
// and, when no header is found, a scan of the free-text "fillings" block.
// Rows that cannot yield a formula are skipped, never fatal.
package importer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/piwi3910/SibGlass/internal/model"
	"github.com/piwi3910/SibGlass/internal/sheet"
	"github.com/piwi3910/SibGlass/internal/textutil"
)

// Strategy names the extraction strategy that produced a result.
type Strategy string

const (
	StrategyNone   Strategy = "none"
	StrategyHeader Strategy = "header"
	StrategyBlock  Strategy = "block"
)

// Section and footer markers, folded.
const (
	blockStartMarker = "заполнения"
	footerMarker     = "сумма:"
)

// ImportResult holds the results of an extraction.
type ImportResult struct {
	Items    []model.FormulaItem
	Strategy Strategy
	Skipped  int // non-empty rows that did not yield a formula
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name   int
	Width  int
	Height int
	Count  int
}

// Complete reports whether all four roles were found.
func (m ColumnMapping) Complete() bool {
	return m.Name >= 0 && m.Width >= 0 && m.Height >= 0 && m.Count >= 0
}

// headerAliases maps column roles to their accepted header words (folded).
var headerAliases = map[string][]string{
	"name":   {"наименование", "формула", "заполнение", "заполнения", "name", "formula"},
	"width":  {"ширина", "width"},
	"height": {"высота", "height"},
	"count":  {"кол-во", "кол во", "кол.", "количество", "count", "qty"},
}

var roleOrder = []string{"name", "width", "height", "count"}

// headerWords are cell texts that repeat a header inside the data and must
// never be taken for a formula.
var headerWords = map[string]bool{
	"ширина":       true,
	"высота":       true,
	"площадь":      true,
	"наименование": true,
	"формула":      true,
	"кол-во":       true,
	"количество":   true,
}

// RejectCandidate reports whether a formula candidate must be skipped: it is
// empty, has no digit, carries a section or footer marker, or is a repeated
// header word. Both strategies share it.
func RejectCandidate(candidate string) bool {
	folded := textutil.Fold(candidate)
	switch {
	case folded == "":
		return true
	case !textutil.HasDigit(folded):
		return true
	case strings.Contains(folded, blockStartMarker), strings.Contains(folded, footerMarker):
		return true
	case headerWords[strings.TrimSuffix(folded, ":")]:
		return true
	}
	return false
}

// matchesAlias reports whether a folded header cell is alias, optionally
// followed by a unit or remark ("ширина, мм", "кол-во (шт)").
func matchesAlias(cell, alias string) bool {
	if cell == alias {
		return true
	}
	if !strings.HasPrefix(cell, alias) {
		return false
	}
	next, _ := utf8.DecodeRuneInString(cell[len(alias):])
	return strings.ContainsRune(" ,.(:/", next)
}

// DetectColumns examines a row and returns the column of each role.
// The row is a header only when all four roles are present.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Name: -1, Width: -1, Height: -1, Count: -1}

	for i, cell := range row {
		normalized := textutil.Fold(cell)
		if normalized == "" {
			continue
		}
		for _, role := range roleOrder {
			for _, alias := range headerAliases[role] {
				if !matchesAlias(normalized, alias) {
					continue
				}
				switch role {
				case "name":
					if mapping.Name == -1 {
						mapping.Name = i
					}
				case "width":
					if mapping.Width == -1 {
						mapping.Width = i
					}
				case "height":
					if mapping.Height == -1 {
						mapping.Height = i
					}
				case "count":
					if mapping.Count == -1 {
						mapping.Count = i
					}
				}
			}
		}
	}

	return mapping, mapping.Complete()
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isFooter(row []string) bool {
	return strings.Contains(textutil.Fold(strings.Join(row, " ")), footerMarker)
}

// beforeComma returns the trimmed text before the first comma.
func beforeComma(s string) string {
	if i := strings.Index(s, ","); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// ExtractByHeader maps columns from the first row that names all four roles
// and reads the rows below it until the "Сумма:" footer.
func ExtractByHeader(rows [][]string) ImportResult {
	result := ImportResult{Strategy: StrategyNone}

	headerIdx := -1
	var mapping ColumnMapping
	for i, row := range rows {
		if m, ok := DetectColumns(row); ok {
			headerIdx, mapping = i, m
			break
		}
	}
	if headerIdx < 0 {
		return result
	}
	result.Strategy = StrategyHeader

	for _, row := range rows[headerIdx+1:] {
		if isEmptyRow(row) {
			continue
		}
		if isFooter(row) {
			break
		}

		candidate := beforeComma(getCell(row, mapping.Name))
		if RejectCandidate(candidate) {
			result.Skipped++
			continue
		}

		width, _ := textutil.ParseCellInt(getCell(row, mapping.Width))
		height, _ := textutil.ParseCellInt(getCell(row, mapping.Height))
		count, ok := textutil.ParseCellInt(getCell(row, mapping.Count))
		if !ok {
			count = 1
		}
		result.Items = append(result.Items, model.NewFormulaItem(candidate, width, height, count))
	}

	return result
}

// ExtractByBlock reads the rows between the "Заполнения" section title and
// the "Сумма:" footer, recovering formula, size and count from free text.
func ExtractByBlock(rows [][]string) ImportResult {
	result := ImportResult{Strategy: StrategyNone}

	started := false
	for _, row := range rows {
		folded := textutil.Fold(strings.Join(row, " "))
		if strings.Contains(folded, blockStartMarker) {
			started = true
			result.Strategy = StrategyBlock
			continue
		}
		if !started {
			continue
		}
		if strings.Contains(folded, footerMarker) {
			break
		}

		cells := sheet.NonEmptyCells(row)
		if len(cells) == 0 {
			continue
		}
		item, ok := parseBlockLine(cells)
		if !ok {
			result.Skipped++
			continue
		}
		result.Items = append(result.Items, item)
	}

	return result
}

// parseBlockLine turns the non-empty cells of one block row into an item.
// When the first cell holds commas its first part is the formula and the
// other parts join the remaining cells as size and count text.
func parseBlockLine(cells []string) (model.FormulaItem, bool) {
	first := cells[0]
	var candidate string
	var parts []string
	if strings.Contains(first, ",") {
		pieces := strings.Split(first, ",")
		candidate = strings.TrimSpace(pieces[0])
		for _, p := range pieces[1:] {
			parts = append(parts, strings.TrimSpace(p))
		}
		parts = append(parts, cells[1:]...)
	} else {
		candidate = strings.TrimSpace(first)
		parts = cells[1:]
	}

	if RejectCandidate(candidate) {
		return model.FormulaItem{}, false
	}

	width, height := textutil.ExtractDimensionPair(strings.Join(parts, " "))

	next := sizeEnd(parts)
	hint, context := "", ""
	if next < len(parts) {
		hint = parts[next]
		context = strings.Join(parts[next:], " ")
	}
	count := textutil.ExtractCountIn(hint, context)

	return model.NewFormulaItem(candidate, width, height, count), true
}

// sizeEnd returns the index of the first part after the size-bearing ones:
// the part holding an explicit "WxH" pair, or the part holding the second
// number. Without a size the count is searched from the second part on.
func sizeEnd(parts []string) int {
	for i, p := range parts {
		if textutil.HasDimensionPair(p) {
			return i + 1
		}
	}
	seen := 0
	for i, p := range parts {
		seen += len(textutil.DigitRuns(p))
		if seen >= 2 {
			return i + 1
		}
	}
	if len(parts) == 0 {
		return 0
	}
	return 1
}

// ExtractRows tries the header strategy, then the block strategy, and
// returns the first result with items.
func ExtractRows(rows [][]string) ImportResult {
	byHeader := ExtractByHeader(rows)
	if len(byHeader.Items) > 0 {
		return byHeader
	}

	byBlock := ExtractByBlock(rows)
	if len(byBlock.Items) > 0 {
		return byBlock
	}

	result := ImportResult{Strategy: StrategyNone}
	result.Skipped = byHeader.Skipped + byBlock.Skipped
	switch {
	case byHeader.Strategy == StrategyHeader:
		result.Warnings = append(result.Warnings, "Header row found but no formula rows below it")
	case byBlock.Strategy == StrategyBlock:
		result.Warnings = append(result.Warnings, "No formula rows found in the 'Заполнения' block")
	default:
		result.Warnings = append(result.Warnings, "Neither an item header nor a 'Заполнения' block was found")
	}
	return result
}

// ExtractOrders returns the order lines recovered from a grid of cells.
func ExtractOrders(rows [][]string) []model.FormulaItem {
	return ExtractRows(rows).Items
}

// ImportAluPro reads, validates and extracts the AluPro export at path.
// Only structural problems (format, unreadable file, missing marker) are
// returned as errors.
func ImportAluPro(path string) (ImportResult, error) {
	if err := sheet.ValidateExtension(path); err != nil {
		return ImportResult{}, err
	}
	rows, err := sheet.ReadRows(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("cannot read AluPro file: %w", err)
	}
	if !sheet.LinesContain(sheet.JoinLines(rows), sheet.SourceMarker) {
		return ImportResult{}, &sheet.MarkerError{Path: path, Marker: sheet.SourceMarker}
	}
	return ExtractRows(rows), nil
}
