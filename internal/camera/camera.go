// Package camera maps world coordinates onto a terminal viewport and keeps
// a followed target in view.
package camera

import (
	"math"

	"github.com/vovakirdan/stardrop/internal/core"
)

// Camera is a viewport onto the world. Scroll is the world position of
// the viewport's top-left corner.
type Camera struct {
	ScrollX, ScrollY float64

	worldW, worldH float64
	cols, rows     int
	target         func() core.Vec
}

// New creates a camera over a world of the given size with a viewport of
// cols x rows cells.
func New(worldW, worldH float64, cols, rows int) *Camera {
	c := &Camera{worldW: worldW, worldH: worldH}
	c.SetViewport(cols, rows)
	return c
}

// SetViewport resizes the viewport, e.g. after a terminal resize.
func (c *Camera) SetViewport(cols, rows int) {
	c.cols = max(cols, 0)
	c.rows = max(rows, 0)
	c.clamp()
}

// ViewSize returns the viewport size in world units.
func (c *Camera) ViewSize() (w, h float64) {
	return float64(c.cols * core.PixelsPerCol), float64(c.rows * core.PixelsPerRow)
}

// Follow makes Update keep the given point centered.
func (c *Camera) Follow(target func() core.Vec) {
	c.target = target
}

// StopFollow detaches the camera from its target.
func (c *Camera) StopFollow() {
	c.target = nil
}

// CenterOn scrolls so (x, y) is in the middle of the viewport.
func (c *Camera) CenterOn(x, y float64) {
	vw, vh := c.ViewSize()
	c.ScrollX = x - vw/2
	c.ScrollY = y - vh/2
	c.clamp()
}

// Update re-centers on the followed target.
func (c *Camera) Update() {
	if c.target == nil {
		return
	}
	p := c.target()
	c.CenterOn(p.X, p.Y)
}

// clamp keeps the viewport inside the world. A viewport larger than the
// world on an axis centers the world on that axis instead.
func (c *Camera) clamp() {
	vw, vh := c.ViewSize()
	c.ScrollX = clampAxis(c.ScrollX, c.worldW, vw)
	c.ScrollY = clampAxis(c.ScrollY, c.worldH, vh)
}

func clampAxis(scroll, world, view float64) float64 {
	if view >= world {
		return (world - view) / 2
	}
	return core.ClampF(scroll, 0, world-view)
}

// ToScreen converts a world point to the cell containing it.
func (c *Camera) ToScreen(x, y float64) (col, row int) {
	col = int(math.Floor((x - c.ScrollX) / core.PixelsPerCol))
	row = int(math.Floor((y - c.ScrollY) / core.PixelsPerRow))
	return col, row
}
