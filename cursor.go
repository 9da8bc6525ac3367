package aspen

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// tileCursor resolves one cell per call during a render pass. It carries the
// resolved state (cell value, chipset, destination) that the chipset render
// methods consume. A single cursor is owned by the grid and reused across
// passes; no per-cell allocation.
type tileCursor struct {
	grid   *TileGrid
	target *ebiten.Image

	// Resolved state for the current cell.
	x, y         int
	cell         Cell
	chipSet      *ChipSet
	chip         int
	destX, destY int
}

// resolve renders the cell at (x, y) if it needs redrawing. It reports true
// when pixels were touched (cleared and/or blitted) and false when the cell
// was skipped: absent, unbound, unchanged since the last pass, or outside
// the configured redraw area. A cell referencing a chipset index outside the
// grid's chipset list is a fatal pass error.
func (cur *tileCursor) resolve(x, y int) (bool, error) {
	g := cur.grid

	// Ragged rows are allowed; coordinates beyond a row are authored-absent.
	if y < 0 || y >= len(g.cells) {
		return false, nil
	}
	row := g.cells[y]
	if x < 0 || x >= len(row) {
		return false, nil
	}

	cell := g.effectiveCell(row[x])
	if cell.Set < 0 {
		return false, nil // no chipset binding, nothing to draw or clear
	}
	if cell.Set >= len(g.chipSets) || g.chipSets[cell.Set] == nil {
		return false, fmt.Errorf("%w: cell (%d, %d) references chipset %d of %d",
			ErrInvalidChipSet, x, y, cell.Set, len(g.chipSets))
	}
	cs := g.chipSets[cell.Set]

	// Dirty-check against the shadow slot. This is the fast path that lets
	// an unchanged map render in zero blits.
	if g.shadow[y][x] == cell {
		return false, nil
	}

	// Oversized chips are right/bottom-aligned within the logical cell, so a
	// tall chip (e.g. a tree) overhangs upward rather than downward.
	destX := x*g.tileWidth - (cs.chipWidth - g.tileWidth)
	destY := y*g.tileHeight - (cs.chipHeight - g.tileHeight)

	if g.redrawArea != nil {
		dest := Rect{
			X:      float64(destX),
			Y:      float64(destY),
			Width:  float64(cs.chipWidth),
			Height: float64(cs.chipHeight),
		}
		// Skipped cells keep a stale shadow slot, so they redraw once the
		// redraw area moves over them.
		if !dest.Intersects(*g.redrawArea) {
			return false, nil
		}
	}

	cur.x, cur.y = x, y
	cur.cell = cell
	cur.chipSet = cs
	cur.chip = cell.Chip
	cur.destX, cur.destY = destX, destY

	// Clear first so transparency in the new chip does not composite over
	// the previous cell contents.
	clearRect := image.Rect(destX, destY, destX+cs.chipWidth, destY+cs.chipHeight)
	cur.target.SubImage(clearRect).(*ebiten.Image).Clear()
	g.pass.clears++

	if cell.Chip >= 0 {
		cs.render(cur)
	}

	g.shadow[y][x] = cell
	return true, nil
}
