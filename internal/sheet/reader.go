// Package sheet implements the spreadsheet read and write contract: reading
// a workbook as a grid of string cells, opening a request template for
// writing, and validating files against the marker of their role.
package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/piwi3910/SibGlass/internal/textutil"
	"github.com/xuri/excelize/v2"
)

// Extension returns the lower-cased extension of path.
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// ReadRows returns every row of every sheet of the workbook at path.
// Empty cells are kept as empty strings.
func ReadRows(path string) ([][]string, error) {
	switch Extension(path) {
	case ".xlsx":
		return readXLSXRows(path)
	case ".xls":
		return readXLSRows(path)
	default:
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
	}
}

// ReadLines returns the non-blank rows of the workbook at path, each joined
// into one space-separated line.
func ReadLines(path string) ([]string, error) {
	rows, err := ReadRows(path)
	if err != nil {
		return nil, err
	}
	return JoinLines(rows), nil
}

// JoinLines flattens rows into space-joined lines and drops blank rows.
func JoinLines(rows [][]string) []string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		line := strings.TrimSpace(strings.Join(row, " "))
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// NonEmptyCells returns the non-empty cells of row in column order.
func NonEmptyCells(row []string) []string {
	var cells []string
	for _, cell := range row {
		if c := strings.TrimSpace(cell); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open Excel file: %w", err)
	}
	defer f.Close()

	var rows [][]string
	for _, name := range f.GetSheetList() {
		sheetRows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("cannot read sheet %q: %w", name, err)
		}
		for _, row := range sheetRows {
			rows = append(rows, normalizeRow(row))
		}
	}
	return rows, nil
}

// maxXLSRows bounds ReadAllCells; BIFF8 sheets hold at most 65536 rows.
const maxXLSRows = 1 << 20

func readXLSRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open Excel 97 file: %w", err)
	}
	defer file.Close()

	wb, err := xls.OpenReader(file, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("cannot open Excel 97 file: %w", err)
	}
	if wb == nil {
		return nil, fmt.Errorf("%s: no workbook stream found", filepath.Base(path))
	}

	cells := wb.ReadAllCells(maxXLSRows)
	rows := make([][]string, 0, len(cells))
	for _, row := range cells {
		rows = append(rows, normalizeRow(row))
	}
	return rows, nil
}

func normalizeRow(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = textutil.NormalizeCell(cell)
	}
	return out
}
