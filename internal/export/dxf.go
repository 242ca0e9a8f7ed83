package export

import (
	"fmt"

	"github.com/piwi3910/SibGlass/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

// DXF layer names.
const (
	LayerPanes = "PANES"
	LayerText  = "TEXT"
)

const (
	dxfGap        = 200.0 // mm between panes
	dxfTextHeight = 40.0
)

// ExportDXF lays the order items out left to right as closed rectangles at
// full scale, with the item number above each pane and its size inside.
// Items without a known size are left out.
func ExportDXF(path string, items []model.OrderItem) error {
	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerPanes, color.White, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("adding layer %s: %w", LayerPanes, err)
	}
	if _, err := d.AddLayer(LayerText, color.Red, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("adding layer %s: %w", LayerText, err)
	}

	x := 0.0
	drawn := 0
	for _, it := range items {
		if it.Width <= 0 || it.Height <= 0 {
			continue
		}
		w, h := float64(it.Width), float64(it.Height)

		if err := d.ChangeLayer(LayerPanes); err != nil {
			return err
		}
		corners := [][2]float64{{x, 0}, {x + w, 0}, {x + w, h}, {x, h}}
		for i, c := range corners {
			n := corners[(i+1)%len(corners)]
			if _, err := d.Line(c[0], c[1], 0, n[0], n[1], 0); err != nil {
				return fmt.Errorf("drawing item %d: %w", it.Index, err)
			}
		}

		if err := d.ChangeLayer(LayerText); err != nil {
			return err
		}
		if _, err := d.Text(fmt.Sprintf("%d", it.Index), x, h+dxfTextHeight/2, 0, dxfTextHeight); err != nil {
			return fmt.Errorf("labelling item %d: %w", it.Index, err)
		}
		size := fmt.Sprintf("%dx%d x%d", it.Width, it.Height, it.Count)
		if _, err := d.Text(size, x+dxfTextHeight/2, h/2, 0, dxfTextHeight); err != nil {
			return fmt.Errorf("labelling item %d: %w", it.Index, err)
		}

		x += w + dxfGap
		drawn++
	}
	if drawn == 0 {
		return fmt.Errorf("no order items with a known size to draw")
	}

	return d.SaveAs(path)
}
