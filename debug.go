package aspen

import (
	"fmt"
	"os"
)

// debugLog prints the last pass's draw metrics to stderr.
// Only called when debug mode is on.
func (g *TileGrid) debugLog() {
	_, _ = fmt.Fprintf(os.Stderr,
		"[aspen] pass: drawn %d | skipped %d | clears %d | blits %d\n",
		g.pass.drawn, g.pass.skipped, g.pass.clears, g.pass.blits)
}

// Stats returns the draw metrics of the most recent render pass:
// cells drawn, cells skipped, destination clears, and chip blits.
func (g *TileGrid) Stats() (drawn, skipped, clears, blits int) {
	return g.pass.drawn, g.pass.skipped, g.pass.clears, g.pass.blits
}
