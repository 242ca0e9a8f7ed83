package formula

import (
	"strings"
	"testing"

	"github.com/piwi3910/SibGlass/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestBuildDoubleGlazedUnit(t *testing.T) {
	got := BuildWith("4-16-4", "Пл4", "", "Пл4", "TPS", true, false, false, true)

	assert.Equal(t, "4SGTemp Пл4-16TPSAr-4Пл4", got)
	parts := strings.Split(got, "-")
	assert.Len(t, parts, 3)
	assert.Contains(t, parts[0], TemperMarker)
	assert.True(t, strings.HasSuffix(parts[1], GasMarker))
	assert.NotContains(t, parts[2], TemperMarker)
}

func TestBuildThreeSegmentsSkipsMiddleMaterial(t *testing.T) {
	got := BuildWith("4-16-4", "A", "MIDDLE", "C", "S", false, true, false, false)
	assert.Equal(t, "4A-16S-4C", got)
	assert.NotContains(t, got, "MIDDLE")
}

func TestBuildTripleGlazedUnit(t *testing.T) {
	sel := model.Selection{
		Outer: "И4", Middle: "М1", Inner: "Пл4", Spacer: "Al",
		TemperMiddle: true, Argon: false,
	}
	got := Build("4-12-4-12-4", sel)
	assert.Equal(t, "4И4-12Al-4SGTemp М1-12Al-4Пл4", got)
}

func TestBuildSinglePane(t *testing.T) {
	assert.Equal(t, "6SGTemp Пл6", BuildWith("6", "Пл6", "", "", "", true, false, false, false))
	assert.Equal(t, "6", BuildWith("6", "", "", "", "", false, false, false, false))
}

func TestBuildRejectsNonComposableCodes(t *testing.T) {
	for _, src := range []string{"4-16", "4-16-4-16", "", "СПД", "4-16-4И"} {
		assert.Equal(t, "", BuildWith(src, "A", "B", "C", "S", true, true, true, true), "source %q", src)
	}
}

func TestBuildWithoutMaterials(t *testing.T) {
	got := Build("4-16-4", model.Selection{Argon: true, TemperInner: true})
	assert.Equal(t, "4-16Ar-4SGTemp", got)
}

func TestBuilderResolve(t *testing.T) {
	b := NewBuilder(model.Selection{Outer: "A", Inner: "C", Spacer: "S"})
	assert.Equal(t, "4A-16S-4C", b.Resolve(" 4 - 16 - 4 "))
	assert.Equal(t, "", b.Resolve("4-16"))
}
