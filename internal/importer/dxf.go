package importer

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// ErrNoPanes is returned when a DXF file holds no closed pane outline.
var ErrNoPanes = errors.New("no closed pane outlines found")

// Pane is the bounding box of one closed outline read back from a DXF layout.
type Pane struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type point struct{ x, y float64 }

// segment is a line between two points, used for chaining loose LINE
// entities into closed outlines.
type segment struct {
	start point
	end   point
}

// ReadPanes reads a DXF layout and returns one Pane per closed outline,
// ordered left to right. Outlines come from LWPOLYLINE entities or from
// LINE entities whose endpoints chain into a loop. Text is ignored.
func ReadPanes(path string) ([]Pane, error) {
	drawing, err := dxf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open DXF file: %w", err)
	}

	var outlines [][]point
	var segments []segment
	for _, ent := range drawing.Entities() {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			var outline []point
			for _, v := range e.Vertices {
				outline = append(outline, point{v[0], v[1]})
			}
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			}
		case *entity.Line:
			segments = append(segments, segment{
				start: point{e.Start[0], e.Start[1]},
				end:   point{e.End[0], e.End[1]},
			})
		}
	}
	outlines = append(outlines, chainSegments(segments, 0.01)...)

	var panes []Pane
	for _, o := range outlines {
		p := boundingPane(o)
		if p.Width < 0.01 || p.Height < 0.01 {
			continue
		}
		panes = append(panes, p)
	}
	if len(panes) == 0 {
		return nil, ErrNoPanes
	}

	sort.SliceStable(panes, func(i, j int) bool {
		if panes[i].X != panes[j].X {
			return panes[i].X < panes[j].X
		}
		return panes[i].Y < panes[j].Y
	})
	return panes, nil
}

func boundingPane(o []point) Pane {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range o {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}
	return Pane{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// chainSegments connects segments into closed outlines. tolerance is the
// maximum distance between endpoints to consider them connected. Chains that
// do not close are dropped.
func chainSegments(segs []segment, tolerance float64) [][]point {
	used := make([]bool, len(segs))
	var outlines [][]point

	for start := range segs {
		if used[start] {
			continue
		}
		chain := []point{segs[start].start, segs[start].end}
		used[start] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]
			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
				} else if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
				} else {
					continue
				}
				used[i] = true
				changed = true
				break
			}
		}

		if len(chain) < 4 || !pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			continue
		}
		outlines = append(outlines, chain[:len(chain)-1])
	}

	return outlines
}

func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.x-b.x, a.y-b.y) <= tolerance
}
