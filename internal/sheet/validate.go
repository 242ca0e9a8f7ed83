package sheet

import (
	"fmt"
	"path/filepath"

	"github.com/piwi3910/SibGlass/internal/textutil"
)

// Role is the part a workbook plays in a conversion.
type Role string

const (
	RoleSource      Role = "source"
	RoleDestination Role = "destination"
)

// Content markers that identify each role.
const (
	SourceMarker      = "Заполнения"
	DestinationMarker = "ЗАЯВКА НА РАСЧЕТ СТЕКЛОПАКЕТОВ"
)

// Marker returns the content marker required for the role.
func (r Role) Marker() string {
	if r == RoleDestination {
		return DestinationMarker
	}
	return SourceMarker
}

// ParseRole parses "source" or "destination".
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSource, RoleDestination:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q, expected %q or %q", s, RoleSource, RoleDestination)
}

// ValidateExtension accepts .xlsx and .xls files.
func ValidateExtension(path string) error {
	switch Extension(path) {
	case ".xlsx", ".xls":
		return nil
	}
	return fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
}

// ValidateContains checks that one of the workbook's lines contains marker,
// ignoring case.
func ValidateContains(path, marker string) error {
	lines, err := ReadLines(path)
	if err != nil {
		return err
	}
	if !LinesContain(lines, marker) {
		return &MarkerError{Path: path, Marker: marker}
	}
	return nil
}

// LinesContain reports whether any line contains marker, ignoring case.
func LinesContain(lines []string, marker string) bool {
	for _, line := range lines {
		if textutil.ContainsFold(line, marker) {
			return true
		}
	}
	return false
}

// Validate runs the extension and marker checks for role.
func Validate(path string, role Role) error {
	if err := ValidateExtension(path); err != nil {
		return err
	}
	return ValidateContains(path, role.Marker())
}
