package sheet

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrUnsupportedFormat indicates a file extension other than .xlsx or .xls.
var ErrUnsupportedFormat = errors.New("only .xlsx and .xls files are supported")

// ErrLegacyDestination indicates an attempt to write into an .xls workbook.
var ErrLegacyDestination = errors.New("the request template must be an .xlsx file; save the template as .xlsx and select it again")

// ErrMissingMarker is matched by every MarkerError.
var ErrMissingMarker = errors.New("required marker not found")

// MarkerError reports a workbook that lacks the content marker of its role.
type MarkerError struct {
	Path   string
	Marker string
}

func (e *MarkerError) Error() string {
	return fmt.Sprintf("file %s does not contain the required marker %q", filepath.Base(e.Path), e.Marker)
}

func (e *MarkerError) Unwrap() error {
	return ErrMissingMarker
}
