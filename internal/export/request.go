package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/piwi3910/SibGlass/internal/model"
	"github.com/piwi3910/SibGlass/internal/sheet"
)

// ErrSaveFailed wraps I/O failures while saving the request workbook.
var ErrSaveFailed = errors.New("cannot save the request workbook")

// Request template anchors.
const (
	customerAnchor = "Заказчик"
	addressAnchor  = "Адрес доставки"
	tableMarker    = "№"

	fallbackStartRow = 15
	requestColumns   = 8
)

// WriteRequest fills the request template held by grid: customer and address
// go to the right of their anchor cells, items are written from the row
// below the "№" header and rows left over from an earlier, longer request
// are cleared.
func WriteRequest(grid sheet.Grid, customer, address string, items []model.OrderItem) error {
	if err := fillAnchor(grid, customerAnchor, customer); err != nil {
		return err
	}
	if err := fillAnchor(grid, addressAnchor, address); err != nil {
		return err
	}

	row := tableStart(grid)
	for _, it := range items {
		values := []any{
			it.Index,
			nil,
			it.Formula,
			it.Width,
			it.Height,
			it.Count,
			roundArea(it.Area()),
			roundArea(it.TotalArea()),
		}
		for col, v := range values {
			var err error
			if v == nil {
				err = grid.ClearCell(row, col+1)
			} else {
				err = grid.SetCell(row, col+1, v)
			}
			if err != nil {
				return fmt.Errorf("writing item %d: %w", it.Index, err)
			}
		}
		row++
	}

	return clearStaleRows(grid, row)
}

func fillAnchor(grid sheet.Grid, anchor, value string) error {
	r, c, ok := sheet.FindCell(grid, anchor)
	if !ok {
		return nil
	}
	if err := grid.SetCell(r, c+1, value); err != nil {
		return fmt.Errorf("writing %q: %w", anchor, err)
	}
	return nil
}

// tableStart returns the first data row: one below the "№" cell of column
// one, or the fallback row when the template has none.
func tableStart(grid sheet.Grid) int {
	maxRow, _ := grid.Bounds()
	for r := 1; r <= maxRow; r++ {
		if grid.Cell(r, 1) == tableMarker {
			return r + 1
		}
	}
	return fallbackStartRow
}

// clearStaleRows blanks the first eight columns of every row from first on
// whose first column still holds a value, whitespace included.
func clearStaleRows(grid sheet.Grid, first int) error {
	maxRow, _ := grid.Bounds()
	last := max(first+1, maxRow)
	for r := first; r <= last; r++ {
		if grid.IsEmpty(r, 1) {
			continue
		}
		for c := 1; c <= requestColumns; c++ {
			if err := grid.ClearCell(r, c); err != nil {
				return fmt.Errorf("clearing row %d: %w", r, err)
			}
		}
	}
	return nil
}

func roundArea(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// GenerateRequest writes order into the .xlsx template at path and saves it
// in place.
func GenerateRequest(path string, order model.Order) error {
	wb, err := sheet.OpenWorkbook(path)
	if err != nil {
		return err
	}
	defer wb.Close()

	grid := wb.Active()
	if err := WriteRequest(grid, order.Customer, order.Address, order.Items); err != nil {
		return fmt.Errorf("sheet %q: %w", grid.Name(), err)
	}
	if err := wb.Save(wb.Path()); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return nil
}
