package aspen

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for view X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// View is a scroll offset into a rendered map. X and Y are the world-space
// pixel coordinates of the top-left visible corner; TileGrid.Draw subtracts
// them when blitting the cached surface. A grid bound to a View re-renders
// fully when the bound View instance changes, not when its offset moves.
type View struct {
	// X and Y are the world-space position of the top-left visible corner.
	X, Y float64

	// ViewportW and ViewportH are the visible area dimensions in pixels.
	// Used by bounds clamping and ScrollToTile centering.
	ViewportW, ViewportH float64

	// BoundsEnabled clamps the offset so the visible area stays in Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the view is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	scrollTween *scrollAnim
}

// NewView creates a view with the given viewport dimensions.
func NewView(viewportW, viewportH float64) *View {
	return &View{ViewportW: viewportW, ViewportH: viewportH}
}

// ScrollTo animates the view offset to (x, y) over duration seconds.
func (v *View) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	v.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(v.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(v.Y), float32(y), duration, easeFn),
	}
}

// ScrollToTile scrolls so the given tile is centered in the viewport.
func (v *View) ScrollToTile(tileX, tileY int, tileW, tileH float64, duration float32, easeFn ease.TweenFunc) {
	x := float64(tileX)*tileW + tileW/2 - v.ViewportW/2
	y := float64(tileY)*tileH + tileH/2 - v.ViewportH/2
	v.ScrollTo(x, y, duration, easeFn)
}

// SetBounds enables offset clamping to the given world-space rectangle.
func (v *View) SetBounds(bounds Rect) {
	v.BoundsEnabled = true
	v.Bounds = bounds
}

// ClearBounds disables offset clamping.
func (v *View) ClearBounds() {
	v.BoundsEnabled = false
}

// ClampToBounds immediately clamps the offset. Call it after modifying X/Y
// directly (e.g. in a drag callback) to avoid a single out-of-bounds frame.
// No-op if BoundsEnabled is false.
func (v *View) ClampToBounds() {
	if v.BoundsEnabled {
		v.clampToBounds()
	}
}

// Update advances the scroll animation and bounds clamping.
// Call once per frame with the elapsed time in seconds.
func (v *View) Update(dt float32) {
	if v.scrollTween != nil {
		if !v.scrollTween.doneX {
			val, done := v.scrollTween.tweenX.Update(dt)
			v.X = float64(val)
			v.scrollTween.doneX = done
		}
		if !v.scrollTween.doneY {
			val, done := v.scrollTween.tweenY.Update(dt)
			v.Y = float64(val)
			v.scrollTween.doneY = done
		}
		if v.scrollTween.doneX && v.scrollTween.doneY {
			v.scrollTween = nil
		}
	}

	if v.BoundsEnabled {
		v.clampToBounds()
	}
}

// Scrolling reports whether a scroll animation is in progress.
func (v *View) Scrolling() bool {
	return v.scrollTween != nil
}

// clampToBounds restricts the offset so the visible area stays within Bounds.
// If the bounds are smaller than the viewport, the view centers on them.
func (v *View) clampToBounds() {
	maxX := v.Bounds.X + v.Bounds.Width - v.ViewportW
	maxY := v.Bounds.Y + v.Bounds.Height - v.ViewportH

	if maxX < v.Bounds.X {
		v.X = v.Bounds.X + (v.Bounds.Width-v.ViewportW)/2
	} else {
		v.X = math.Max(v.Bounds.X, math.Min(v.X, maxX))
	}
	if maxY < v.Bounds.Y {
		v.Y = v.Bounds.Y + (v.Bounds.Height-v.ViewportH)/2
	} else {
		v.Y = math.Max(v.Bounds.Y, math.Min(v.Y, maxY))
	}
}
