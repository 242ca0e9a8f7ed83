package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlassCatalogAddSuppressesDuplicates(t *testing.T) {
	var c GlassCatalog

	assert.True(t, c.Add(SectionOuterGlass, "  Пл4 "))
	assert.False(t, c.Add(SectionOuterGlass, "Пл4"))
	assert.False(t, c.Add(SectionOuterGlass, "   "))
	assert.True(t, c.Add(SectionSpacers, "TPS"))

	assert.Equal(t, []string{"Пл4"}, c.OuterGlass)
	assert.Equal(t, []string{"TPS"}, c.Spacers)
	assert.Empty(t, c.MiddleGlass)
	assert.True(t, c.Contains(SectionOuterGlass, "Пл4"))
	assert.False(t, c.Contains(SectionInnerGlass, "Пл4"))
}

func TestGlassCatalogMerge(t *testing.T) {
	c := GlassCatalog{OuterGlass: []string{"Пл4"}}
	other := GlassCatalog{
		OuterGlass: []string{"Пл4", "И4"},
		Spacers:    []string{"Al", "TPS"},
	}

	added := c.Merge(other)

	assert.Equal(t, 3, added)
	assert.Equal(t, []string{"Пл4", "И4"}, c.OuterGlass)
	assert.Equal(t, []string{"Al", "TPS"}, c.Spacers)
}

func TestGlassCatalogDefaultSelection(t *testing.T) {
	c := GlassCatalog{
		OuterGlass: []string{"Пл4", "И4"},
		InnerGlass: []string{"И4"},
		Spacers:    []string{"TPS"},
	}

	sel := c.DefaultSelection()
	assert.Equal(t, "Пл4", sel.Outer)
	assert.Equal(t, "", sel.Middle)
	assert.Equal(t, "И4", sel.Inner)
	assert.Equal(t, "TPS", sel.Spacer)
	assert.False(t, sel.Argon)
}

func TestParseCatalogSection(t *testing.T) {
	tests := []struct {
		in   string
		want CatalogSection
	}{
		{"outer", SectionOuterGlass},
		{"Middle", SectionMiddleGlass},
		{"Стекло внутреннее:", SectionInnerGlass},
		{"рамки", SectionSpacers},
		{"spacers", SectionSpacers},
	}
	for _, tt := range tests {
		got, err := ParseCatalogSection(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseCatalogSection("frames")
	assert.Error(t, err)
}

func TestGlassCatalogIsEmpty(t *testing.T) {
	assert.True(t, GlassCatalog{}.IsEmpty())
	assert.False(t, GlassCatalog{Spacers: []string{"Al"}}.IsEmpty())
}
