package aspen

import (
	"encoding/json"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Map document JSON format:
//
//	{
//	  "tileWidth": 16, "tileHeight": 16,
//	  "chipSets": [
//	    {"image": "field", "chipWidth": 16, "chipHeight": 16},
//	    {"image": "water", "chipWidth": 16, "chipHeight": 16, "auto": true}
//	  ],
//	  "cells": [
//	    [[0, 1], [0, 2], null],
//	    [[1, 0], null,  [0, 3]]
//	  ],
//	  "redrawArea": {"x": 0, "y": 0, "width": 320, "height": 240}
//	}
//
// Each cell is a [chipSetIndex, chipIndex] pair; null is an absent cell.

type jsonMap struct {
	TileWidth  int           `json:"tileWidth"`
	TileHeight int           `json:"tileHeight"`
	ChipSets   []jsonChipSet `json:"chipSets"`
	Cells      [][]*[2]int   `json:"cells"`
	RedrawArea *jsonRect     `json:"redrawArea"`
}

type jsonChipSet struct {
	Image      string `json:"image"`
	ChipWidth  int    `json:"chipWidth"`
	ChipHeight int    `json:"chipHeight"`
	Auto       bool   `json:"auto"`
}

type jsonRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LoadTileMap parses a map document and builds a TileGrid. The images map
// resolves each chipset's "image" name to its loaded sheet; a name with no
// entry is an error. The grid owns the chipsets it creates but shares the
// provided images, so Destroy(false) leaves them usable.
func LoadTileMap(jsonData []byte, images map[string]*ebiten.Image) (*TileGrid, error) {
	var doc jsonMap
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("aspen: failed to parse map JSON: %w", err)
	}
	if len(doc.ChipSets) == 0 {
		return nil, fmt.Errorf("aspen: map document has no chipsets")
	}

	chipSets := make([]*ChipSet, len(doc.ChipSets))
	for i, def := range doc.ChipSets {
		img, ok := images[def.Image]
		if !ok {
			return nil, fmt.Errorf("aspen: chipset %d references unknown image %q", i, def.Image)
		}
		var (
			cs  *ChipSet
			err error
		)
		if def.Auto {
			cs, err = NewAutoChipSet(img, def.ChipWidth, def.ChipHeight)
		} else {
			cs, err = NewChipSet(img, def.ChipWidth, def.ChipHeight)
		}
		if err != nil {
			return nil, fmt.Errorf("aspen: chipset %d (%q): %w", i, def.Image, err)
		}
		chipSets[i] = cs
	}

	cells := make([][]Cell, len(doc.Cells))
	for y, row := range doc.Cells {
		cells[y] = make([]Cell, len(row))
		for x, pair := range row {
			if pair == nil {
				cells[y][x] = EmptyCell
				continue
			}
			if pair[0] >= len(chipSets) {
				return nil, fmt.Errorf("aspen: cell (%d, %d) references chipset %d of %d",
					x, y, pair[0], len(chipSets))
			}
			cells[y][x] = Cell{Set: pair[0], Chip: pair[1]}
		}
	}

	cfg := GridConfig{
		TileWidth:  doc.TileWidth,
		TileHeight: doc.TileHeight,
		Cells:      cells,
		ChipSets:   chipSets,
	}
	if doc.RedrawArea != nil {
		cfg.RedrawArea = &Rect{
			X:      doc.RedrawArea.X,
			Y:      doc.RedrawArea.Y,
			Width:  doc.RedrawArea.Width,
			Height: doc.RedrawArea.Height,
		}
	}
	return NewTileGrid(cfg)
}
