// Package formula composes descriptive glass-unit formulas from numeric
// thickness codes such as "4-16-4".
package formula

import (
	"fmt"
	"strings"

	"github.com/piwi3910/SibGlass/internal/model"
	"github.com/piwi3910/SibGlass/internal/textutil"
)

const (
	// TemperMarker is inserted between the thickness and the material of a
	// tempered pane.
	TemperMarker = "SGTemp "
	// GasMarker is appended to an argon-filled spacer.
	GasMarker = "Ar"
)

// Builder composes formulas for a fixed material selection.
type Builder struct {
	Selection model.Selection
}

// NewBuilder returns a Builder bound to sel.
func NewBuilder(sel model.Selection) Builder {
	return Builder{Selection: sel}
}

// Resolve composes source with the builder's selection. It has the shape of
// the resolver functions used by the order package.
func (b Builder) Resolve(source string) string {
	return Build(source, b.Selection)
}

// Build composes source using the materials and flags of sel.
// Non-composable codes yield an empty string.
func Build(source string, sel model.Selection) string {
	return BuildWith(source,
		sel.Outer, sel.Middle, sel.Inner, sel.Spacer,
		sel.TemperOuter, sel.TemperMiddle, sel.TemperInner, sel.Argon)
}

// BuildWith is Build with every material and flag passed explicitly.
//
// A 3-segment code is a double-glazed unit: its last pane takes the inner
// material and the middle material is not used.
func BuildWith(source, outer, middle, inner, spacer string, zakOuter, zakMiddle, zakInner, argon bool) string {
	if !textutil.IsNumericFormula(source) {
		return ""
	}

	t := textutil.DecomposeThicknesses(source)
	switch len(t) {
	case 1:
		return glassPart(t[0], outer, zakOuter)
	case 3:
		return strings.Join([]string{
			glassPart(t[0], outer, zakOuter),
			spacerPart(t[1], spacer, argon),
			glassPart(t[2], inner, zakInner),
		}, "-")
	case 5:
		return strings.Join([]string{
			glassPart(t[0], outer, zakOuter),
			spacerPart(t[1], spacer, argon),
			glassPart(t[2], middle, zakMiddle),
			spacerPart(t[3], spacer, argon),
			glassPart(t[4], inner, zakInner),
		}, "-")
	default:
		return ""
	}
}

func glassPart(thickness int, name string, tempered bool) string {
	marker := ""
	if tempered {
		marker = TemperMarker
	}
	return strings.TrimSpace(fmt.Sprintf("%d%s%s", thickness, marker, name))
}

func spacerPart(thickness int, name string, gasFilled bool) string {
	marker := ""
	if gasFilled {
		marker = GasMarker
	}
	return strings.TrimSpace(fmt.Sprintf("%d%s%s", thickness, name, marker))
}
