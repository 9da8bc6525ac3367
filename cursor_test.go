package aspen

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// Ragged rows: coordinates beyond a row's length are authored-absent and
// never drawn or cleared.
func TestRaggedRowsSkipAbsentCells(t *testing.T) {
	g := staticGrid(t, [][]Cell{
		{{0, 0}, {0, 1}},
		{{0, 2}},
	})
	if err := g.Render(); err != nil {
		t.Fatal(err)
	}
	drawn, skipped, _, _ := g.Stats()
	if drawn != 3 {
		t.Errorf("drawn = %d, want 3", drawn)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0 (absent cells are not visited)", skipped)
	}
}

// A chipset with chips larger than the logical cell is right/bottom-aligned:
// chip pixels overhang up and left of the cell origin.
func TestOversizedChipAlignment(t *testing.T) {
	sheet := ebiten.NewImage(32, 32)
	cs, err := NewChipSet(sheet, 32, 32)
	if err != nil {
		t.Fatal(err)
	}
	cells := [][]Cell{
		{EmptyCell, EmptyCell},
		{EmptyCell, {0, 0}},
	}
	area := &Rect{X: 0, Y: 0, Width: 8, Height: 8}
	g, err := NewTileGrid(GridConfig{
		TileWidth:  16,
		TileHeight: 16,
		Cells:      cells,
		ChipSets:   []*ChipSet{cs},
		RedrawArea: area,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Cell (1,1) has its 32x32 chip aligned to end at (32,32), so the
	// destination rect starts at (0,0) and intersects the tiny redraw area.
	// Without the alignment shift it would start at (16,16) and be clipped.
	if err := g.Render(); err != nil {
		t.Fatal(err)
	}
	if drawn, _, _, _ := g.Stats(); drawn != 1 {
		t.Errorf("drawn = %d, want 1", drawn)
	}
}

func TestDebugRenderAfterDestroyPanics(t *testing.T) {
	g := staticGrid(t, [][]Cell{{{0, 0}}})
	g.SetDebug(true)
	g.Destroy(false)

	defer func() {
		if recover() == nil {
			t.Error("expected panic rendering a destroyed grid in debug mode")
		}
	}()
	_ = g.Render()
}
