// Package physics is a small arcade physics world: axis-aligned bodies with
// velocity, gravity, bounce and world-bound collision, grouped into static
// and dynamic groups, with collider and overlap callbacks. Velocities are
// set directly by game code, as in classic arcade platformers.
package physics

import (
	"github.com/solarlune/resolv"

	"github.com/vovakirdan/stardrop/internal/core"
)

// Facing records which sides of a body were in contact during the last step.
type Facing struct {
	Up, Down, Left, Right bool
}

// Body is a rectangular physics body positioned by its center.
type Body struct {
	Key  string // texture key of the owning sprite
	Data any    // owner-defined payload

	Pos    core.Vec
	Vel    core.Vec
	W, H   float64
	Bounce core.Vec

	CollideWorldBounds bool
	AllowGravity       bool

	// Touching is set by collisions with other bodies, Blocked by world bounds.
	Touching Facing
	Blocked  Facing

	Enabled bool
	Visible bool

	static bool
	prev   core.Vec
	obj    *resolv.Object
}

func newBody(x, y, w, h float64, static bool) *Body {
	return &Body{
		Pos:          core.Vec{X: x, Y: y},
		prev:         core.Vec{X: x, Y: y},
		W:            w,
		H:            h,
		AllowGravity: !static,
		Enabled:      true,
		Visible:      true,
		static:       static,
	}
}

// Static reports whether the body is immovable.
func (b *Body) Static() bool { return b.static }

// Left returns the left edge.
func (b *Body) Left() float64 { return b.Pos.X - b.W/2 }

// Right returns the right edge.
func (b *Body) Right() float64 { return b.Pos.X + b.W/2 }

// Top returns the top edge.
func (b *Body) Top() float64 { return b.Pos.Y - b.H/2 }

// Bottom returns the bottom edge.
func (b *Body) Bottom() float64 { return b.Pos.Y + b.H/2 }

// SetVelocity sets both velocity components.
func (b *Body) SetVelocity(x, y float64) {
	b.Vel = core.Vec{X: x, Y: y}
}

// SetVelocityX sets the horizontal velocity.
func (b *Body) SetVelocityX(x float64) { b.Vel.X = x }

// SetVelocityY sets the vertical velocity.
func (b *Body) SetVelocityY(y float64) { b.Vel.Y = y }

// SetBounce sets the restitution on both axes.
func (b *Body) SetBounce(v float64) {
	b.Bounce = core.Vec{X: v, Y: v}
}

// SetBounceY sets the vertical restitution.
func (b *Body) SetBounceY(v float64) { b.Bounce.Y = v }

// SetCollideWorldBounds keeps the body inside the world rectangle.
func (b *Body) SetCollideWorldBounds(v bool) { b.CollideWorldBounds = v }

// Disable removes the body from simulation. With hide it is also not drawn.
func (b *Body) Disable(hide bool) {
	b.Enabled = false
	if hide {
		b.Visible = false
	}
}

// Enable returns the body to simulation at (x, y) with zero velocity.
func (b *Body) Enable(x, y float64) {
	b.Pos = core.Vec{X: x, Y: y}
	b.prev = b.Pos
	b.Vel = core.Vec{}
	b.Touching = Facing{}
	b.Blocked = Facing{}
	b.Enabled = true
	b.Visible = true
	b.sync()
}

// Overlaps reports whether two bodies intersect. Touching edges do not count.
func (b *Body) Overlaps(o *Body) bool {
	return b.Left() < o.Right() && o.Left() < b.Right() &&
		b.Top() < o.Bottom() && o.Top() < b.Bottom()
}

func (b *Body) bodies() []*Body { return []*Body{b} }
