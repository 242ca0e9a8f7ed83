package main

import (
	"github.com/piwi3910/SibGlass/internal/model"
	"github.com/spf13/cobra"
)

// selectionFlags are the material and treatment flags shared by the
// commands that compose formulas.
type selectionFlags struct {
	sel model.Selection
}

func (f *selectionFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.sel.Outer, "outer", "", "Outer glass (default: first catalog entry)")
	fs.StringVar(&f.sel.Middle, "middle", "", "Middle glass (default: first catalog entry)")
	fs.StringVar(&f.sel.Inner, "inner", "", "Inner glass (default: first catalog entry)")
	fs.StringVar(&f.sel.Spacer, "spacer", "", "Spacer frame (default: first catalog entry)")
	fs.BoolVar(&f.sel.TemperOuter, "temper-outer", false, "Tempered outer pane")
	fs.BoolVar(&f.sel.TemperMiddle, "temper-middle", false, "Tempered middle pane")
	fs.BoolVar(&f.sel.TemperInner, "temper-inner", false, "Tempered inner pane")
	fs.BoolVar(&f.sel.Argon, "argon", false, "Argon-filled spacers")
}

// resolve builds the effective selection: the first catalog entries, then
// the restored snapshot (materials only when still in the catalog), then
// every flag given on the command line.
func (f *selectionFlags) resolve(cmd *cobra.Command, catalog model.GlassCatalog, restored *model.Selection) model.Selection {
	sel := catalog.DefaultSelection()

	if restored != nil {
		pick := func(dst *string, s model.CatalogSection, v string) {
			if catalog.Contains(s, v) {
				*dst = v
			}
		}
		pick(&sel.Outer, model.SectionOuterGlass, restored.Outer)
		pick(&sel.Middle, model.SectionMiddleGlass, restored.Middle)
		pick(&sel.Inner, model.SectionInnerGlass, restored.Inner)
		pick(&sel.Spacer, model.SectionSpacers, restored.Spacer)
		sel.TemperOuter = restored.TemperOuter
		sel.TemperMiddle = restored.TemperMiddle
		sel.TemperInner = restored.TemperInner
		sel.Argon = restored.Argon
	}

	changed := cmd.Flags().Changed
	if changed("outer") {
		sel.Outer = f.sel.Outer
	}
	if changed("middle") {
		sel.Middle = f.sel.Middle
	}
	if changed("inner") {
		sel.Inner = f.sel.Inner
	}
	if changed("spacer") {
		sel.Spacer = f.sel.Spacer
	}
	if changed("temper-outer") {
		sel.TemperOuter = f.sel.TemperOuter
	}
	if changed("temper-middle") {
		sel.TemperMiddle = f.sel.TemperMiddle
	}
	if changed("temper-inner") {
		sel.TemperInner = f.sel.TemperInner
	}
	if changed("argon") {
		sel.Argon = f.sel.Argon
	}
	return sel
}
