package physics

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/stardrop/internal/core"
)

// Object is anything a collider can be attached to: a Body or a Group.
type Object interface {
	bodies() []*Body
}

// Callback receives the two bodies of a collision or overlap, in the
// order the objects were registered.
type Callback func(a, b *Body)

// Collider watches two objects for contact. Separating colliders push the
// bodies apart; overlaps only report.
type Collider struct {
	a, b     Object
	separate bool
	callback Callback
}

// Bounds is the world rectangle in world units.
type Bounds struct {
	X, Y, W, H float64
}

// World owns all bodies and steps them. Candidate pairs come from a
// resolv space covering the world rectangle.
type World struct {
	Gravity core.Vec
	Bounds  Bounds

	space     *resolv.Space
	groups    []*Group
	sprites   []*Body
	colliders []*Collider
	paused    bool
}

// NewWorld creates a world of the given size with gravity pulling down (+y).
func NewWorld(width, height, gravity float64) *World {
	return &World{
		Gravity: core.Vec{Y: gravity},
		Bounds:  Bounds{W: width, H: height},
		space:   newSpace(width, height),
	}
}

// StaticGroup creates a group of immovable bodies.
func (w *World) StaticGroup() *Group {
	g := &Group{world: w, static: true}
	w.groups = append(w.groups, g)
	return g
}

// Group creates a group of dynamic bodies.
func (w *World) Group() *Group {
	g := &Group{world: w}
	w.groups = append(w.groups, g)
	return g
}

// Sprite creates a standalone dynamic body.
func (w *World) Sprite(key string, x, y, width, height float64) *Body {
	b := newBody(x, y, width, height, false)
	b.Key = key
	w.track(b)
	w.sprites = append(w.sprites, b)
	return b
}

// AddCollider separates overlapping bodies of a and b, then calls cb.
func (w *World) AddCollider(a, b Object, cb Callback) *Collider {
	return w.addCollider(a, b, true, cb)
}

// AddOverlap calls cb while bodies of a and b intersect, without separating them.
func (w *World) AddOverlap(a, b Object, cb Callback) *Collider {
	return w.addCollider(a, b, false, cb)
}

func (w *World) addCollider(a, b Object, separate bool, cb Callback) *Collider {
	c := &Collider{a: a, b: b, separate: separate, callback: cb}
	w.colliders = append(w.colliders, c)
	return c
}

// Pause freezes the simulation. Step does nothing until Resume.
func (w *World) Pause() { w.paused = true }

// Resume unfreezes the simulation.
func (w *World) Resume() { w.paused = false }

// Paused reports whether the simulation is frozen.
func (w *World) Paused() bool { return w.paused }

// Step advances the simulation by dt seconds: integrate every enabled
// dynamic body, clamp to world bounds, then run colliders in registration
// order. A callback that pauses the world stops the remaining checks.
func (w *World) Step(dt float64) {
	if w.paused || dt <= 0 {
		return
	}

	w.eachDynamic(func(b *Body) {
		w.integrate(b, dt)
	})
	w.eachBody((*Body).sync)

	for _, c := range w.colliders {
		if w.paused {
			return
		}
		w.runCollider(c)
	}
}

// eachBody visits every body, enabled or not. Game code may move any of
// them between steps.
func (w *World) eachBody(fn func(*Body)) {
	for _, b := range w.sprites {
		fn(b)
	}
	for _, g := range w.groups {
		for _, b := range g.children {
			fn(b)
		}
	}
}

func (w *World) eachDynamic(fn func(*Body)) {
	for _, b := range w.sprites {
		if b.Enabled {
			fn(b)
		}
	}
	for _, g := range w.groups {
		if g.static {
			continue
		}
		for _, b := range g.children {
			if b.Enabled {
				fn(b)
			}
		}
	}
}

func (w *World) integrate(b *Body, dt float64) {
	b.Touching = Facing{}
	b.Blocked = Facing{}
	b.prev = b.Pos

	if b.AllowGravity {
		b.Vel = b.Vel.Add(w.Gravity.Scale(dt))
	}
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))

	if b.CollideWorldBounds {
		w.clampToBounds(b)
	}
}

func (w *World) clampToBounds(b *Body) {
	bd := w.Bounds
	if b.Left() < bd.X {
		b.Pos.X = bd.X + b.W/2
		b.Vel.X = math.Abs(b.Vel.X) * b.Bounce.X
		b.Blocked.Left = true
	} else if b.Right() > bd.X+bd.W {
		b.Pos.X = bd.X + bd.W - b.W/2
		b.Vel.X = -math.Abs(b.Vel.X) * b.Bounce.X
		b.Blocked.Right = true
	}
	if b.Top() < bd.Y {
		b.Pos.Y = bd.Y + b.H/2
		b.Vel.Y = math.Abs(b.Vel.Y) * b.Bounce.Y
		b.Blocked.Up = true
	} else if b.Bottom() > bd.Y+bd.H {
		b.Pos.Y = bd.Y + bd.H - b.H/2
		b.Vel.Y = -math.Abs(b.Vel.Y) * b.Bounce.Y
		b.Blocked.Down = true
	}
}

// runCollider checks each body of a against the bodies of b that share a
// broad-phase cell with it, keeping b's registration order.
func (w *World) runCollider(c *Collider) {
	as := c.a.bodies()
	bs := c.b.bodies()
	for _, a := range as {
		if !a.Enabled {
			continue
		}
		near := a.nearby()
		for _, b := range bs {
			if w.paused {
				return
			}
			if a == b || !a.Enabled || !b.Enabled || !near[b] {
				continue
			}
			if a.static && b.static {
				continue
			}
			if !a.Overlaps(b) {
				continue
			}
			if c.separate {
				separate(a, b)
				a.sync()
				b.sync()
				near = a.nearby()
			}
			if c.callback != nil {
				c.callback(a, b)
			}
		}
	}
}

// separate pushes a and b apart along the axis they met on. Static bodies
// never move; two dynamic bodies share the correction.
func separate(a, b *Body) {
	switch {
	case b.static:
		separateFromStatic(a, b)
	case a.static:
		separateFromStatic(b, a)
	default:
		separateDynamic(a, b)
	}
}

// contactAxis decides whether d met s vertically, using d's position
// before this step. Bodies that were already overlapping fall back to the
// axis of least penetration.
func contactAxis(d, s *Body) (vertical bool) {
	prevTop := d.prev.Y - d.H/2
	prevBottom := d.prev.Y + d.H/2
	prevLeft := d.prev.X - d.W/2
	prevRight := d.prev.X + d.W/2

	if prevBottom <= s.Top() || prevTop >= s.Bottom() {
		return true
	}
	if prevRight <= s.Left() || prevLeft >= s.Right() {
		return false
	}

	overlapX := math.Min(d.Right(), s.Right()) - math.Max(d.Left(), s.Left())
	overlapY := math.Min(d.Bottom(), s.Bottom()) - math.Max(d.Top(), s.Top())
	return overlapY <= overlapX
}

func separateFromStatic(d, s *Body) {
	if contactAxis(d, s) {
		if d.Pos.Y < s.Pos.Y {
			d.Pos.Y += pushOut(d, s, 0, 1).Y
			d.Vel.Y = -math.Abs(d.Vel.Y) * d.Bounce.Y
			d.Touching.Down = true
		} else {
			d.Pos.Y += pushOut(d, s, 0, -1).Y
			d.Vel.Y = math.Abs(d.Vel.Y) * d.Bounce.Y
			d.Touching.Up = true
		}
		return
	}

	if d.Pos.X < s.Pos.X {
		d.Pos.X += pushOut(d, s, 1, 0).X
		d.Vel.X = -math.Abs(d.Vel.X) * d.Bounce.X
		d.Touching.Right = true
	} else {
		d.Pos.X += pushOut(d, s, -1, 0).X
		d.Vel.X = math.Abs(d.Vel.X) * d.Bounce.X
		d.Touching.Left = true
	}
}

func separateDynamic(a, b *Body) {
	if contactAxis(a, b) {
		overlap := math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Top(), b.Top())
		upper, lower := a, b
		if a.Pos.Y > b.Pos.Y {
			upper, lower = b, a
		}
		upper.Pos.Y -= overlap / 2
		lower.Pos.Y += overlap / 2
		uv, lv := upper.Vel.Y, lower.Vel.Y
		upper.Vel.Y = lv * upper.Bounce.Y
		lower.Vel.Y = uv * lower.Bounce.Y
		upper.Touching.Down = true
		lower.Touching.Up = true
		return
	}

	overlap := math.Min(a.Right(), b.Right()) - math.Max(a.Left(), b.Left())
	left, right := a, b
	if a.Pos.X > b.Pos.X {
		left, right = b, a
	}
	left.Pos.X -= overlap / 2
	right.Pos.X += overlap / 2
	lv, rv := left.Vel.X, right.Vel.X
	left.Vel.X = rv * left.Bounce.X
	right.Vel.X = lv * right.Bounce.X
	left.Touching.Right = true
	right.Touching.Left = true
}
