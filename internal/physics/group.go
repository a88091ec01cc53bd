package physics

// XY places the children of a group config, starting at X, Y and stepping
// by StepX, StepY for each additional child.
type XY struct {
	X, Y         float64
	StepX, StepY float64
}

// GroupConfig describes a batch of identical bodies.
type GroupConfig struct {
	Key    string
	Repeat int // number of extra children beyond the first
	SetXY  XY
	W, H   float64

	Bounce             float64
	CollideWorldBounds bool
}

// Group is a set of bodies sharing a static or dynamic role.
type Group struct {
	world    *World
	static   bool
	children []*Body
}

// Create adds one body centered at (x, y).
func (g *Group) Create(key string, x, y, w, h float64) *Body {
	b := newBody(x, y, w, h, g.static)
	b.Key = key
	g.world.track(b)
	g.children = append(g.children, b)
	return b
}

// CreateMultiple adds Repeat+1 bodies laid out by cfg.SetXY.
func (g *Group) CreateMultiple(cfg GroupConfig) []*Body {
	n := cfg.Repeat + 1
	if n < 1 {
		return nil
	}
	created := make([]*Body, 0, n)
	for i := 0; i < n; i++ {
		x := cfg.SetXY.X + float64(i)*cfg.SetXY.StepX
		y := cfg.SetXY.Y + float64(i)*cfg.SetXY.StepY
		b := g.Create(cfg.Key, x, y, cfg.W, cfg.H)
		b.SetBounce(cfg.Bounce)
		b.CollideWorldBounds = cfg.CollideWorldBounds
		created = append(created, b)
	}
	return created
}

// Iterate calls fn for every child, active or not.
func (g *Group) Iterate(fn func(*Body)) {
	for _, b := range g.children {
		fn(b)
	}
}

// Len returns the number of children.
func (g *Group) Len() int {
	return len(g.children)
}

// CountActive returns the number of enabled children.
func (g *Group) CountActive() int {
	n := 0
	for _, b := range g.children {
		if b.Enabled {
			n++
		}
	}
	return n
}

// Static reports whether the group holds immovable bodies.
func (g *Group) Static() bool {
	return g.static
}

func (g *Group) bodies() []*Body {
	out := make([]*Body, len(g.children))
	copy(out, g.children)
	return out
}
