package aspen

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrInvalidChipSet is returned from a render pass when a cell references a
// chipset index that is not present in the grid's chipset list. There is no
// fallback visual for a missing chipset, so the pass aborts.
var ErrInvalidChipSet = errors.New("aspen: invalid chipset")

// ChipSetKind selects the rendering behavior of a ChipSet.
type ChipSetKind uint8

const (
	ChipSetStatic ChipSetKind = iota // one chip per index, blitted whole
	ChipSetAuto                      // 2x2 auto-tile sheet, blended per quadrant
)

// ChipSet is a sheet image plus the chip size used to address sprites within
// it by flat index. Chip index k maps to the source rectangle
//
//	((k % chipsPerRow)*chipW, (k / chipsPerRow)*chipH, chipW, chipH)
//
// where chipsPerRow is the sheet width divided by the chip width, floored.
type ChipSet struct {
	Kind ChipSetKind

	image       *ebiten.Image
	chipWidth   int
	chipHeight  int
	chipsPerRow int
	destroyed   bool
}

// NewChipSet creates a static chipset over the given sheet image. The chip
// dimensions must be positive and no larger than the image.
func NewChipSet(img *ebiten.Image, chipWidth, chipHeight int) (*ChipSet, error) {
	return newChipSet(img, chipWidth, chipHeight, ChipSetStatic)
}

// NewAutoChipSet creates an auto-tile chipset over the given sheet image.
// The sheet is organized column-major in groups of five rows, one row per
// blend variant; see the package documentation for the layout.
func NewAutoChipSet(img *ebiten.Image, chipWidth, chipHeight int) (*ChipSet, error) {
	return newChipSet(img, chipWidth, chipHeight, ChipSetAuto)
}

func newChipSet(img *ebiten.Image, chipWidth, chipHeight int, kind ChipSetKind) (*ChipSet, error) {
	if img == nil {
		return nil, fmt.Errorf("aspen: chipset image is nil")
	}
	b := img.Bounds()
	if chipWidth <= 0 || chipHeight <= 0 {
		return nil, fmt.Errorf("aspen: chip size %dx%d must be positive", chipWidth, chipHeight)
	}
	if chipWidth > b.Dx() || chipHeight > b.Dy() {
		return nil, fmt.Errorf("aspen: chip size %dx%d exceeds sheet size %dx%d",
			chipWidth, chipHeight, b.Dx(), b.Dy())
	}
	c := &ChipSet{
		Kind:       kind,
		image:      img,
		chipWidth:  chipWidth,
		chipHeight: chipHeight,
	}
	c.Invalidate()
	return c, nil
}

// Invalidate recomputes the chips-per-row count from the current image and
// chip dimensions. Call it after replacing the sheet image contents with an
// image of a different width; there is no automatic change detection.
func (c *ChipSet) Invalidate() {
	c.chipsPerRow = c.image.Bounds().Dx() / c.chipWidth
}

// Image returns the underlying sheet image, or nil after Destroy.
func (c *ChipSet) Image() *ebiten.Image {
	return c.image
}

// ChipWidth returns the chip width in pixels.
func (c *ChipSet) ChipWidth() int {
	return c.chipWidth
}

// ChipHeight returns the chip height in pixels.
func (c *ChipSet) ChipHeight() int {
	return c.chipHeight
}

// SetChipSize changes the chip dimensions and recomputes the chip layout.
func (c *ChipSet) SetChipSize(chipWidth, chipHeight int) error {
	b := c.image.Bounds()
	if chipWidth <= 0 || chipHeight <= 0 || chipWidth > b.Dx() || chipHeight > b.Dy() {
		return fmt.Errorf("aspen: chip size %dx%d invalid for sheet size %dx%d",
			chipWidth, chipHeight, b.Dx(), b.Dy())
	}
	c.chipWidth = chipWidth
	c.chipHeight = chipHeight
	c.Invalidate()
	return nil
}

// Destroy releases the chipset. When releaseImage is true the underlying
// sheet image is deallocated; pass false when the image is shared with
// another chipset still in use. A second Destroy call is a no-op.
func (c *ChipSet) Destroy(releaseImage bool) {
	if c.destroyed {
		return
	}
	c.destroyed = true
	if releaseImage && c.image != nil {
		c.image.Deallocate()
	}
	c.image = nil
}

// Destroyed reports whether Destroy has been called on this chipset.
// Rendering through a destroyed chipset is undefined.
func (c *ChipSet) Destroyed() bool {
	return c.destroyed
}

// sourceRect returns the sheet rectangle for the given flat chip index.
func (c *ChipSet) sourceRect(chip int) image.Rectangle {
	x := (chip % c.chipsPerRow) * c.chipWidth
	y := (chip / c.chipsPerRow) * c.chipHeight
	return image.Rect(x, y, x+c.chipWidth, y+c.chipHeight)
}

// render blits the cursor's resolved chip to the cursor's destination.
func (c *ChipSet) render(cur *tileCursor) {
	switch c.Kind {
	case ChipSetAuto:
		c.renderAuto(cur)
	default:
		c.renderStatic(cur)
	}
}

func (c *ChipSet) renderStatic(cur *tileCursor) {
	sub := c.image.SubImage(c.sourceRect(cur.chip)).(*ebiten.Image)
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(cur.destX), float64(cur.destY))
	cur.target.DrawImage(sub, &op)
	cur.grid.pass.blits++
}
