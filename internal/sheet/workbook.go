package sheet

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Workbook is an .xlsx request template opened for writing.
type Workbook struct {
	f    *excelize.File
	path string
}

// OpenWorkbook opens the .xlsx workbook at path. Legacy .xls templates are
// rejected with ErrLegacyDestination.
func OpenWorkbook(path string) (*Workbook, error) {
	switch Extension(path) {
	case ".xlsx":
	case ".xls":
		return nil, ErrLegacyDestination
	default:
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open Excel file: %w", err)
	}
	return &Workbook{f: f, path: path}, nil
}

// Path returns the file the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// Active returns the active sheet as a Grid.
func (w *Workbook) Active() *SheetGrid {
	return NewSheetGrid(w.f, w.f.GetSheetName(w.f.GetActiveSheetIndex()))
}

// Save writes the workbook to path.
func (w *Workbook) Save(path string) error {
	if Extension(path) != ".xlsx" {
		return ErrLegacyDestination
	}
	return w.f.SaveAs(path)
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.f.Close()
}
