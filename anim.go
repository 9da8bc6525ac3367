package aspen

// AnimFrame describes a single frame in a chip animation sequence.
type AnimFrame struct {
	Chip     int // chip index displayed for this frame
	Duration int // milliseconds
}

// SetAnimations sets the chip animation table, keyed by authored cell value.
// Cells whose value matches a key display the sequence's current frame chip
// instead of their authored chip; frame changes flow through the normal
// dirty-check, so only cells whose frame flipped are re-blitted.
//
// Auto-tile connectivity is computed from the authored values, which an
// animation never changes, so neighbors stay stable across frames.
func (g *TileGrid) SetAnimations(anims map[Cell][]AnimFrame) {
	g.anims = anims
}

// AdvanceAnimations advances the shared animation clock by dtMs milliseconds.
// Takes effect on the next render pass.
func (g *TileGrid) AdvanceAnimations(dtMs int) {
	if dtMs > 0 {
		g.animElapsed += dtMs
	}
}

// effectiveCell substitutes the current animation frame chip for cells with
// an animation sequence. Cells without one pass through unchanged.
func (g *TileGrid) effectiveCell(c Cell) Cell {
	if g.anims == nil || c.Chip < 0 {
		return c
	}
	frames, ok := g.anims[c]
	if !ok || len(frames) == 0 {
		return c
	}

	totalDuration := 0
	for _, f := range frames {
		totalDuration += f.Duration
	}
	if totalDuration == 0 {
		return c
	}

	elapsed := g.animElapsed % totalDuration
	acc := 0
	for _, f := range frames {
		acc += f.Duration
		if elapsed < acc {
			c.Chip = f.Chip
			break
		}
	}
	return c
}
