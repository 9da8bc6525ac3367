package aspen

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridConfig holds the construction parameters for a TileGrid.
type GridConfig struct {
	// TileWidth and TileHeight are the logical cell dimensions in pixels.
	// Chipsets whose chip size differs are right/bottom-aligned per cell.
	TileWidth  int
	TileHeight int

	// Cells is the map data in row-major order. Rows may be ragged; missing
	// cells are treated as absent. The grid takes ownership of the slice.
	Cells [][]Cell

	// ChipSets is the ordered chipset list that Cell.Set indexes into.
	ChipSets []*ChipSet

	// RedrawArea optionally restricts drawing to cells whose destination
	// rectangle intersects it. Nil means no restriction.
	RedrawArea *Rect
}

// passStats holds per-pass draw metrics. Populated every pass; logged to
// stderr when debug mode is on.
type passStats struct {
	drawn   int // cells that touched pixels this pass
	skipped int // cells skipped by absence, dirty-check, or clipping
	clears  int // destination rect clears
	blits   int // chip sub-image draws (4 per auto-tile cell)
}

// TileGrid owns the cell array, the chipset list, the per-cell shadow of the
// last rendered values, and the cached offscreen surface the map renders
// into. All methods must be called from the engine's update/draw goroutine.
type TileGrid struct {
	tileWidth  int
	tileHeight int
	cells      [][]Cell
	chipSets   []*ChipSet
	redrawArea *Rect

	// shadow mirrors cells with the value last rendered at each coordinate,
	// or shadowNone. The dirty-check compares whole Cell pairs, so changing
	// either index alone is always detected.
	shadow [][]Cell

	cols  int // widest row, fixed at construction
	cache *ebiten.Image

	view     *View
	lastView *View

	anims       map[Cell][]AnimFrame
	animElapsed int

	cur   tileCursor
	pass  passStats
	debug bool

	destroyed bool
}

// NewTileGrid creates a grid from the given configuration.
func NewTileGrid(cfg GridConfig) (*TileGrid, error) {
	if cfg.TileWidth <= 0 || cfg.TileHeight <= 0 {
		return nil, fmt.Errorf("aspen: tile size %dx%d must be positive", cfg.TileWidth, cfg.TileHeight)
	}
	g := &TileGrid{
		tileWidth:  cfg.TileWidth,
		tileHeight: cfg.TileHeight,
		cells:      cfg.Cells,
		chipSets:   cfg.ChipSets,
		redrawArea: cfg.RedrawArea,
	}
	for _, row := range g.cells {
		if len(row) > g.cols {
			g.cols = len(row)
		}
	}
	g.shadow = newShadow(g.cells)
	return g, nil
}

// newShadow builds a same-shape grid with every slot at shadowNone.
func newShadow(cells [][]Cell) [][]Cell {
	shadow := make([][]Cell, len(cells))
	for y, row := range cells {
		s := make([]Cell, len(row))
		for x := range s {
			s[x] = shadowNone
		}
		shadow[y] = s
	}
	return shadow
}

// Width returns the map width in pixels (widest row times tile width).
func (g *TileGrid) Width() int {
	return g.cols * g.tileWidth
}

// Height returns the map height in pixels.
func (g *TileGrid) Height() int {
	return len(g.cells) * g.tileHeight
}

// CellAt returns the cell at (row, col) and whether the coordinate exists.
func (g *TileGrid) CellAt(row, col int) (Cell, bool) {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[row]) {
		return Cell{}, false
	}
	return g.cells[row][col], true
}

// SetRedrawArea replaces the redraw restriction. Pass nil to draw everywhere.
func (g *TileGrid) SetRedrawArea(area *Rect) {
	g.redrawArea = area
}

// SetView binds the grid to a view. The cached surface is keyed on the view's
// identity: binding a different view forces a full re-render, while moving
// the bound view only changes where the cache is blitted.
func (g *TileGrid) SetView(v *View) {
	g.view = v
}

// SetDebug enables per-pass stats logging to stderr and destroyed-use checks.
func (g *TileGrid) SetDebug(enabled bool) {
	g.debug = enabled
}

// --- Mutation ---

// SetChip updates the chip index of the cell at (row, col). The change is
// picked up by the next render pass through the normal dirty-check; no
// explicit invalidation is needed. Out-of-range coordinates are ignored.
func (g *TileGrid) SetChip(row, col, chip int) {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[row]) {
		return
	}
	g.cells[row][col].Chip = chip
}

// SetChipSet updates the chipset index of the cell at (row, col) and resets
// its shadow slot, forcing a redraw even if the chip index is unchanged.
func (g *TileGrid) SetChipSet(row, col, set int) {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[row]) {
		return
	}
	g.cells[row][col].Set = set
	g.shadow[row][col] = shadowNone
}

// SetChipWithNear updates the chip index at (row, col) and invalidates the
// shadow slots of the cell and its eight neighbors. Auto-tile rendering of a
// neighbor depends on this cell's occupancy, so neighbor pixels must be
// recomputed even though the neighbors' own values did not change.
func (g *TileGrid) SetChipWithNear(row, col, chip int) {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[row]) {
		return
	}
	g.cells[row][col].Chip = chip
	for dy := -1; dy <= 1; dy++ {
		y := row + dy
		if y < 0 || y >= len(g.shadow) {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			x := col + dx
			if x < 0 || x >= len(g.shadow[y]) {
				continue
			}
			g.shadow[y][x] = shadowNone
		}
	}
}

// FullInvalidate resets every shadow slot so the next pass redraws the whole
// map. Use it when state the shadow cannot see changes externally, such as
// the pixel contents of a chipset's sheet image.
func (g *TileGrid) FullInvalidate() {
	for _, row := range g.shadow {
		for x := range row {
			row[x] = shadowNone
		}
	}
}

// --- Rendering ---

// Render brings the cached surface up to date, allocating or growing it as
// needed. Only cells whose value changed since the last pass are redrawn.
func (g *TileGrid) Render() error {
	if g.debug && g.destroyed {
		panic("aspen debug: Render on destroyed TileGrid")
	}
	g.ensureCache()
	if g.view != g.lastView {
		g.lastView = g.view
		g.FullInvalidate()
	}
	return g.renderPass(g.cache)
}

// RenderCache fully re-renders the map into a host-provided target. This is
// the fill routine for engines that own the cache surface themselves: the
// target's previous contents are not assumed, so every cell is redrawn.
func (g *TileGrid) RenderCache(target *ebiten.Image) error {
	g.FullInvalidate()
	return g.renderPass(target)
}

// Draw updates the cached surface and blits it to screen, offset by the
// bound view. Returns the first render error encountered.
func (g *TileGrid) Draw(screen *ebiten.Image) error {
	if err := g.Render(); err != nil {
		return err
	}
	var op ebiten.DrawImageOptions
	if g.view != nil {
		op.GeoM.Translate(-g.view.X, -g.view.Y)
	}
	screen.DrawImage(g.cache, &op)
	return nil
}

// renderPass runs the cursor over every cell in row-major order.
func (g *TileGrid) renderPass(target *ebiten.Image) error {
	g.pass = passStats{}
	cur := &g.cur
	cur.grid = g
	cur.target = target

	for y := range g.cells {
		for x := range g.cells[y] {
			drew, err := cur.resolve(x, y)
			if err != nil {
				return err
			}
			if drew {
				g.pass.drawn++
			} else {
				g.pass.skipped++
			}
		}
	}

	if g.debug {
		g.debugLog()
	}
	return nil
}

// ensureCache allocates or grows the cached surface. Dimensions are rounded
// up to the next power of two so gradual map growth rarely reallocates.
// A reallocation discards the old pixels, so the shadow is reset with it.
func (g *TileGrid) ensureCache() {
	w, h := g.Width(), g.Height()
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	if g.cache != nil {
		b := g.cache.Bounds()
		if w <= b.Dx() && h <= b.Dy() {
			return
		}
		g.cache.Deallocate()
	}
	g.cache = ebiten.NewImageWithOptions(
		image.Rect(0, 0, nextPowerOfTwo(w), nextPowerOfTwo(h)),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
	g.FullInvalidate()
}

// nextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// --- Teardown ---

// Destroy releases the grid. When releaseImages is true, each owned chipset
// is destroyed along with its sheet image; images shared between chipsets
// are deallocated once. With releaseImages false the chipsets' images stay
// intact for reuse elsewhere. A second Destroy call is a no-op.
func (g *TileGrid) Destroy(releaseImages bool) {
	if g.destroyed {
		return
	}
	g.destroyed = true

	released := make(map[*ebiten.Image]bool)
	for _, cs := range g.chipSets {
		if cs == nil || cs.Destroyed() {
			continue
		}
		img := cs.Image()
		cs.Destroy(releaseImages && img != nil && !released[img])
		if img != nil {
			released[img] = true
		}
	}

	if g.cache != nil {
		g.cache.Deallocate()
		g.cache = nil
	}
	g.cells = nil
	g.shadow = nil
	g.chipSets = nil
	g.view = nil
	g.lastView = nil
	g.anims = nil
}

// Destroyed reports whether Destroy has been called on this grid.
func (g *TileGrid) Destroyed() bool {
	return g.destroyed
}
