package aspen

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// autoVariants is the number of blend variants per auto-tile group. The
// sheet holds them as five consecutive rows per column.
const autoVariants = 5

// autoTileOffset computes the blend variant for one quadrant of an auto-tile
// cell. dx and dy are -1 or +1 and select which corner the quadrant faces.
// Three neighbors are inspected: vertical (x, y+dy), horizontal (x+dx, y),
// and diagonal (x+dx, y+dy). A neighbor is connected when it is in bounds,
// holds the same chipset index, and is occupied (Chip >= 0); out-of-bounds
// neighbors count as unconnected, so border cells degrade to open edges.
//
// The offset encodes the connection pattern:
//
//	0 = isolated corner, 1 = vertical only, 2 = horizontal only,
//	3 = both edges but an open diagonal, 4 = fully surrounded.
func autoTileOffset(g *TileGrid, x, y, set, dx, dy int) int {
	offset := 0
	if g.connected(x, y+dy, set) {
		offset++
	}
	if g.connected(x+dx, y, set) {
		offset += 2
	}
	// The diagonal only matters when both edges are already connected:
	// it distinguishes a solid interior (4) from an inner corner (3).
	if offset == 3 && g.connected(x+dx, y+dy, set) {
		offset++
	}
	return offset
}

// connected reports whether the cell at (x, y) counts as an auto-tile
// neighbor for the given chipset index.
func (g *TileGrid) connected(x, y, set int) bool {
	if y < 0 || y >= len(g.cells) {
		return false
	}
	row := g.cells[y]
	if x < 0 || x >= len(row) {
		return false
	}
	n := row[x]
	return n.Set == set && n.Chip >= 0
}

// renderAuto blits the four quadrants of an auto-tile cell, each picked from
// the blend variant its own neighbors select. Variant v of chip k lives at
// sheet row (k+v) mod 5, column (k+v) / 5.
//
// All animation frames of an auto-tile group must share one chipset index;
// connectivity is tested against the chipset index alone, so a group split
// across chipsets blends against itself incorrectly and silently.
func (c *ChipSet) renderAuto(cur *tileCursor) {
	halfW := c.chipWidth / 2
	halfH := c.chipHeight / 2

	for j := 0; j < 2; j++ {
		for i := 0; i < 2; i++ {
			dx := i*2 - 1 // -1 = left neighbor, +1 = right
			dy := j*2 - 1 // -1 = above, +1 = below
			offset := autoTileOffset(cur.grid, cur.x, cur.y, cur.cell.Set, dx, dy)

			variant := cur.chip + offset
			sx := (variant/autoVariants)*c.chipWidth + i*halfW
			sy := (variant%autoVariants)*c.chipHeight + j*halfH

			sub := c.image.SubImage(image.Rect(sx, sy, sx+halfW, sy+halfH)).(*ebiten.Image)
			var op ebiten.DrawImageOptions
			op.GeoM.Translate(float64(cur.destX+i*halfW), float64(cur.destY+j*halfH))
			cur.target.DrawImage(sub, &op)
			cur.grid.pass.blits++
		}
	}
}
