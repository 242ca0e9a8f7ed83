package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

func writeDrawing(t *testing.T, build func(d *drawing.Drawing)) string {
	t.Helper()
	d := dxf.NewDrawing()
	build(d)
	path := filepath.Join(t.TempDir(), "layout.dxf")
	require.NoError(t, d.SaveAs(path))
	return path
}

func rect(t *testing.T, d *drawing.Drawing, x, y, w, h float64) {
	t.Helper()
	// Edges are drawn out of order and reversed to exercise chaining.
	_, err := d.Line(x, y, 0, x+w, y, 0)
	require.NoError(t, err)
	_, err = d.Line(x, y+h, 0, x+w, y+h, 0)
	require.NoError(t, err)
	_, err = d.Line(x+w, y+h, 0, x+w, y, 0)
	require.NoError(t, err)
	_, err = d.Line(x, y+h, 0, x, y, 0)
	require.NoError(t, err)
}

func TestReadPanes_ChainsLines(t *testing.T) {
	path := writeDrawing(t, func(d *drawing.Drawing) {
		rect(t, d, 1400, 0, 600, 400)
		rect(t, d, 0, 0, 1200, 800)
		_, err := d.Text("1", 0, 820, 0, 40)
		require.NoError(t, err)
	})

	panes, err := ReadPanes(path)

	require.NoError(t, err)
	require.Len(t, panes, 2)
	assert.InDelta(t, 0, panes[0].X, 1e-9)
	assert.InDelta(t, 1200, panes[0].Width, 1e-9)
	assert.InDelta(t, 800, panes[0].Height, 1e-9)
	assert.InDelta(t, 1400, panes[1].X, 1e-9)
	assert.InDelta(t, 600, panes[1].Width, 1e-9)
}

func TestReadPanes_OpenChainIgnored(t *testing.T) {
	path := writeDrawing(t, func(d *drawing.Drawing) {
		_, err := d.Line(0, 0, 0, 100, 0, 0)
		require.NoError(t, err)
		_, err = d.Line(100, 0, 0, 100, 100, 0)
		require.NoError(t, err)
	})

	_, err := ReadPanes(path)

	assert.ErrorIs(t, err, ErrNoPanes)
}

func TestReadPanes_MissingFile(t *testing.T) {
	_, err := ReadPanes(filepath.Join(t.TempDir(), "missing.dxf"))
	assert.Error(t, err)
}
