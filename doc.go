// Package aspen renders chipset-based tile maps for [Ebitengine].
//
// A map is a grid of cells, each referencing a chip (a fixed-size sprite cut
// from a sheet image) by chipset index and flat chip index. Aspen renders the
// grid into a cached offscreen surface and, on subsequent passes, redraws
// only the cells whose value changed since the last pass. For large maps this
// reduces per-frame work from thousands of blits to zero when nothing moved.
//
// # Quick start
//
//	field, _ := aspen.NewChipSet(sheetImage, 16, 16)
//	grid, err := aspen.NewTileGrid(aspen.GridConfig{
//		TileWidth:  16,
//		TileHeight: 16,
//		Cells:      cells,
//		ChipSets:   []*aspen.ChipSet{field},
//	})
//
// Call [TileGrid.Draw] from your game's Draw function. Mutate the map with
// [TileGrid.SetChip] and [TileGrid.SetChipSet]. For auto-tile terrain use
// [TileGrid.SetChipWithNear], which also invalidates the eight neighboring
// cells so their blend edges are recomputed.
//
// # Auto-tiles
//
// A chipset created with [NewAutoChipSet] treats its sheet as a 2x2
// subdivided auto-tile sheet: each quadrant of a rendered tile is picked from
// one of five blend variants depending on which of its three adjacent
// neighbors hold an occupied cell of the same chipset. Seamless terrain edges
// fall out of neighbor occupancy; no explicit edge tiles are authored.
//
// # Threading and blending
//
// Aspen is single-threaded: all mutation and rendering must happen on the
// engine's update/draw goroutine, matching Ebitengine's own model. The render
// pass clears each dirty cell's destination rect before blitting and assumes
// the target's composite state is caller-managed; it only ever overwrites
// pixels it owns.
//
// [Ebitengine]: https://ebitengine.org
package aspen
