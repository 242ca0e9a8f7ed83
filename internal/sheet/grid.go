package sheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/piwi3910/SibGlass/internal/textutil"
	"github.com/xuri/excelize/v2"
)

// Grid is a writable cell grid addressed by 1-based row and column.
type Grid interface {
	// Cell returns the trimmed text of a cell, or "" when it is empty.
	Cell(row, col int) string
	// IsEmpty reports whether a cell holds no value at all. A cell holding
	// only whitespace is not empty.
	IsEmpty(row, col int) bool
	SetCell(row, col int, value any) error
	ClearCell(row, col int) error
	// Bounds returns the last used row and column.
	Bounds() (rows, cols int)
}

// SheetGrid is a Grid backed by one sheet of an excelize workbook.
type SheetGrid struct {
	f    *excelize.File
	name string
}

// NewSheetGrid wraps the named sheet of f.
func NewSheetGrid(f *excelize.File, name string) *SheetGrid {
	return &SheetGrid{f: f, name: name}
}

// Name returns the sheet name.
func (g *SheetGrid) Name() string {
	return g.name
}

func (g *SheetGrid) Cell(row, col int) string {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	v, err := g.f.GetCellValue(g.name, ref)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

func (g *SheetGrid) IsEmpty(row, col int) bool {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return true
	}
	v, err := g.f.GetCellValue(g.name, ref)
	return err != nil || v == ""
}

func (g *SheetGrid) SetCell(row, col int, value any) error {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return g.f.SetCellValue(g.name, ref, value)
}

func (g *SheetGrid) ClearCell(row, col int) error {
	return g.SetCell(row, col, nil)
}

func (g *SheetGrid) Bounds() (rows, cols int) {
	all, err := g.f.GetRows(g.name)
	if err != nil {
		return 0, 0
	}
	for _, r := range all {
		if len(r) > cols {
			cols = len(r)
		}
	}
	return len(all), cols
}

// MemGrid is an in-memory Grid. The zero value is not usable; call NewMemGrid.
type MemGrid struct {
	cells map[[2]int]any
}

// NewMemGrid returns an empty grid.
func NewMemGrid() *MemGrid {
	return &MemGrid{cells: make(map[[2]int]any)}
}

// MemGridFromRows builds a grid whose row i, column j holds rows[i-1][j-1].
func MemGridFromRows(rows [][]string) *MemGrid {
	g := NewMemGrid()
	for i, row := range rows {
		for j, v := range row {
			if v != "" {
				g.cells[[2]int{i + 1, j + 1}] = v
			}
		}
	}
	return g
}

// Value returns the raw value stored in a cell, or nil.
func (g *MemGrid) Value(row, col int) any {
	return g.cells[[2]int{row, col}]
}

func (g *MemGrid) Cell(row, col int) string {
	switch v := g.cells[[2]int{row, col}].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func (g *MemGrid) IsEmpty(row, col int) bool {
	return g.cells[[2]int{row, col}] == nil
}

func (g *MemGrid) SetCell(row, col int, value any) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("invalid cell coordinates (%d, %d)", row, col)
	}
	if value == nil || value == "" {
		delete(g.cells, [2]int{row, col})
		return nil
	}
	if f, ok := value.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return fmt.Errorf("invalid numeric value %v", f)
	}
	g.cells[[2]int{row, col}] = value
	return nil
}

func (g *MemGrid) ClearCell(row, col int) error {
	return g.SetCell(row, col, nil)
}

func (g *MemGrid) Bounds() (rows, cols int) {
	for k := range g.cells {
		if k[0] > rows {
			rows = k[0]
		}
		if k[1] > cols {
			cols = k[1]
		}
	}
	return rows, cols
}

// Rows returns the grid content as text, padded to its bounds.
func (g *MemGrid) Rows() [][]string {
	maxRow, maxCol := g.Bounds()
	out := make([][]string, maxRow)
	for r := 1; r <= maxRow; r++ {
		out[r-1] = make([]string, maxCol)
		for c := 1; c <= maxCol; c++ {
			out[r-1][c-1] = g.Cell(r, c)
		}
	}
	return out
}

// FindCell returns the first cell, in row-major order, whose trimmed text
// equals needle ignoring case.
func FindCell(g Grid, needle string) (row, col int, ok bool) {
	maxRow, maxCol := g.Bounds()
	for r := 1; r <= maxRow; r++ {
		for c := 1; c <= maxCol; c++ {
			if textutil.EqualFold(g.Cell(r, c), needle) {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
