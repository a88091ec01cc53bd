package physics

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/stardrop/internal/core"
)

const (
	// cellSize is the side of a broad-phase cell in world units.
	cellSize = 16

	// margin pads each broad-phase object so that sub-pixel overlaps across
	// a cell border still share a cell. Overlaps is the exact test.
	margin = 1.0

	tagStatic  = "static"
	tagDynamic = "dynamic"
)

func newSpace(width, height float64) *resolv.Space {
	return resolv.NewSpace(int(math.Ceil(width)), int(math.Ceil(height)), cellSize, cellSize)
}

// track registers b with the world's broad phase.
func (w *World) track(b *Body) {
	tag := tagDynamic
	if b.static {
		tag = tagStatic
	}
	obj := resolv.NewObject(b.Left()-margin, b.Top()-margin, b.W+2*margin, b.H+2*margin, tag)
	obj.SetShape(resolv.NewRectangle(0, 0, b.W+2*margin, b.H+2*margin))
	obj.Data = b
	w.space.Add(obj)
	b.obj = obj
}

// sync moves b's broad-phase object to its current position.
func (b *Body) sync() {
	if b.obj == nil {
		return
	}
	b.obj.Position.X = b.Left() - margin
	b.obj.Position.Y = b.Top() - margin
	b.obj.Update()
}

// pushOut returns the move that brings d, overlapping s, to rest against
// the side of s it faces. dx, dy point from d toward s, one of them zero.
func pushOut(d, s *Body, dx, dy float64) core.Vec {
	if d.obj != nil && s.obj != nil {
		if c := d.obj.Check(dx, dy, tagStatic); c != nil {
			for _, o := range c.Objects {
				if o != s.obj {
					continue
				}
				// Both objects carry the margin on every side.
				v := c.ContactWithObject(s.obj)
				return core.Vec{X: v.X + 2*margin*dx, Y: v.Y + 2*margin*dy}
			}
		}
	}

	// s lies outside the space.
	switch {
	case dy > 0:
		return core.Vec{Y: s.Top() - d.Bottom()}
	case dy < 0:
		return core.Vec{Y: s.Bottom() - d.Top()}
	case dx > 0:
		return core.Vec{X: s.Left() - d.Right()}
	default:
		return core.Vec{X: s.Right() - d.Left()}
	}
}

// nearby returns the bodies sharing a broad-phase cell with b. Parts of a
// body outside the world rectangle have no cells.
func (b *Body) nearby() map[*Body]bool {
	near := make(map[*Body]bool)
	if b.obj == nil {
		return near
	}
	if c := b.obj.Check(0, 0); c != nil {
		for _, o := range c.Objects {
			if other, ok := o.Data.(*Body); ok {
				near[other] = true
			}
		}
	}
	return near
}
