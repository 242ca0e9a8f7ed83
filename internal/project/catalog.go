package project

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/SibGlass/internal/model"
	"github.com/piwi3910/SibGlass/internal/textutil"
)

// sectionForHeader returns the section a catalog line opens, if any. Colons
// and case are ignored.
func sectionForHeader(line string) (model.CatalogSection, bool) {
	key := strings.ReplaceAll(line, ":", "")
	for _, s := range model.CatalogSections {
		if textutil.EqualFold(key, s.Title()) {
			return s, true
		}
	}
	return 0, false
}

// ParseCatalog reads the sectioned text format: a "Title:" line opens a
// section and every following non-blank line is one value of it. Lines
// before the first header are ignored.
func ParseCatalog(r io.Reader) (model.GlassCatalog, error) {
	var catalog model.GlassCatalog
	var current *model.CatalogSection

	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if s, ok := sectionForHeader(line); ok {
			current = &s
			continue
		}
		if current != nil {
			catalog.Add(*current, line)
		}
	}
	if err := sc.Err(); err != nil {
		return model.GlassCatalog{}, err
	}
	return catalog, nil
}

// FormatCatalog renders catalog in the text format read by ParseCatalog,
// sections separated by a blank line.
func FormatCatalog(catalog model.GlassCatalog) string {
	var b strings.Builder
	for i, s := range model.CatalogSections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Title() + ":\n")
		for _, v := range catalog.Values(s) {
			b.WriteString(v + "\n")
		}
	}
	return b.String()
}

// LoadCatalog reads the catalog file at path. A missing file yields an empty
// catalog and exists=false.
func LoadCatalog(path string) (model.GlassCatalog, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.GlassCatalog{}, false, nil
		}
		return model.GlassCatalog{}, false, err
	}
	defer f.Close()

	catalog, err := ParseCatalog(f)
	if err != nil {
		return model.GlassCatalog{}, true, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return catalog, true, nil
}

// SaveCatalog writes the catalog to path, creating parent directories.
func SaveCatalog(path string, catalog model.GlassCatalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(FormatCatalog(catalog)), 0644)
}

// ImportCatalog merges the catalog file at path into existing and returns the
// result and the number of values added. Values already present are skipped.
func ImportCatalog(path string, existing model.GlassCatalog) (model.GlassCatalog, int, error) {
	imported, ok, err := LoadCatalog(path)
	if err != nil {
		return existing, 0, err
	}
	if !ok {
		return existing, 0, fmt.Errorf("catalog %s: %w", path, os.ErrNotExist)
	}
	added := existing.Merge(imported)
	return existing, added, nil
}
