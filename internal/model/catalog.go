package model

import (
	"fmt"
	"strings"
)

// CatalogSection identifies one of the four material lists of a GlassCatalog.
type CatalogSection int

const (
	SectionOuterGlass CatalogSection = iota
	SectionMiddleGlass
	SectionInnerGlass
	SectionSpacers
)

// CatalogSections lists the sections in file order.
var CatalogSections = []CatalogSection{
	SectionOuterGlass,
	SectionMiddleGlass,
	SectionInnerGlass,
	SectionSpacers,
}

// Title returns the localized header used in the catalog text file.
func (s CatalogSection) Title() string {
	switch s {
	case SectionOuterGlass:
		return "Стекло наружное"
	case SectionMiddleGlass:
		return "Стекло среднее"
	case SectionInnerGlass:
		return "Стекло внутреннее"
	default:
		return "Рамки"
	}
}

// Key returns the short command-line name of the section.
func (s CatalogSection) Key() string {
	switch s {
	case SectionOuterGlass:
		return "outer"
	case SectionMiddleGlass:
		return "middle"
	case SectionInnerGlass:
		return "inner"
	default:
		return "spacer"
	}
}

func (s CatalogSection) String() string {
	return s.Title()
}

// ParseCatalogSection resolves a section by key or by title, ignoring case
// and a trailing colon.
func ParseCatalogSection(name string) (CatalogSection, error) {
	needle := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(name), ":")))
	for _, s := range CatalogSections {
		if needle == s.Key() || needle == strings.ToLower(s.Title()) {
			return s, nil
		}
	}
	if needle == "spacers" {
		return SectionSpacers, nil
	}
	return 0, fmt.Errorf("unknown catalog section %q", name)
}

// GlassCatalog holds the user's material lists. Values are only ever added.
type GlassCatalog struct {
	OuterGlass  []string `json:"outer_glass"`
	MiddleGlass []string `json:"middle_glass"`
	InnerGlass  []string `json:"inner_glass"`
	Spacers     []string `json:"spacers"`
}

// Values returns the list stored for the given section.
func (c GlassCatalog) Values(s CatalogSection) []string {
	switch s {
	case SectionOuterGlass:
		return c.OuterGlass
	case SectionMiddleGlass:
		return c.MiddleGlass
	case SectionInnerGlass:
		return c.InnerGlass
	default:
		return c.Spacers
	}
}

func (c *GlassCatalog) list(s CatalogSection) *[]string {
	switch s {
	case SectionOuterGlass:
		return &c.OuterGlass
	case SectionMiddleGlass:
		return &c.MiddleGlass
	case SectionInnerGlass:
		return &c.InnerGlass
	default:
		return &c.Spacers
	}
}

// Add appends value to the section unless it is blank or already present.
// It reports whether the catalog changed.
func (c *GlassCatalog) Add(s CatalogSection, value string) bool {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return false
	}
	target := c.list(s)
	for _, existing := range *target {
		if existing == cleaned {
			return false
		}
	}
	*target = append(*target, cleaned)
	return true
}

// Contains reports whether value is present in the section.
func (c GlassCatalog) Contains(s CatalogSection, value string) bool {
	for _, v := range c.Values(s) {
		if v == value {
			return true
		}
	}
	return false
}

// Merge adds every value of other that is not yet present and returns the
// number of values added.
func (c *GlassCatalog) Merge(other GlassCatalog) int {
	added := 0
	for _, s := range CatalogSections {
		for _, v := range other.Values(s) {
			if c.Add(s, v) {
				added++
			}
		}
	}
	return added
}

// IsEmpty reports whether all four sections are empty.
func (c GlassCatalog) IsEmpty() bool {
	return len(c.OuterGlass) == 0 && len(c.MiddleGlass) == 0 &&
		len(c.InnerGlass) == 0 && len(c.Spacers) == 0
}

// DefaultSelection picks the first entry of every section, which is what a
// freshly filled material picker shows. Flags are all off.
func (c GlassCatalog) DefaultSelection() Selection {
	first := func(values []string) string {
		if len(values) == 0 {
			return ""
		}
		return values[0]
	}
	return Selection{
		Outer:  first(c.OuterGlass),
		Middle: first(c.MiddleGlass),
		Inner:  first(c.InnerGlass),
		Spacer: first(c.Spacers),
	}
}
