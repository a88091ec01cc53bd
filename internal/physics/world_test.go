package physics

import (
	"math"
	"testing"
)

const dt = 1.0 / 60.0

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestGravityIntegration(t *testing.T) {
	w := NewWorld(800, 600, 300)
	b := w.Sprite("dude", 100, 100, 32, 48)

	w.Step(0.1)

	if !approx(b.Vel.Y, 30) {
		t.Errorf("Vel.Y = %f, expected 30", b.Vel.Y)
	}
	if !approx(b.Pos.Y, 103) {
		t.Errorf("Pos.Y = %f, expected 103", b.Pos.Y)
	}
}

func TestRestingOnStaticBody(t *testing.T) {
	w := NewWorld(800, 600, 300)
	platforms := w.StaticGroup()
	platforms.Create("ground", 400, 568, 800, 48) // top edge at 544

	player := w.Sprite("dude", 100, 544-24, 32, 48)
	player.SetBounce(0.2)
	w.AddCollider(player, platforms, nil)

	w.Step(dt)

	if !player.Touching.Down {
		t.Error("player resting on the ground should be touching down")
	}
	if !approx(player.Bottom(), 544) {
		t.Errorf("Bottom() = %f, expected 544", player.Bottom())
	}
	if !approx(player.Vel.Y, -1) {
		t.Errorf("Vel.Y = %f, expected -1 (gravity step reflected with bounce 0.2)", player.Vel.Y)
	}
}

func TestFallingBodyLands(t *testing.T) {
	w := NewWorld(800, 600, 300)
	platforms := w.StaticGroup()
	platforms.Create("ground", 400, 568, 800, 48)

	player := w.Sprite("dude", 100, 450, 32, 48)
	player.SetBounce(0.2)
	w.AddCollider(player, platforms, nil)

	landed := false
	for i := 0; i < 120; i++ {
		w.Step(dt)
		if player.Touching.Down {
			landed = true
			if !approx(player.Bottom(), 544) {
				t.Fatalf("landed with Bottom() = %f, expected 544", player.Bottom())
			}
		}
		if player.Bottom() > 544+1e-9 {
			t.Fatalf("step %d: player sank into the ground, Bottom() = %f", i, player.Bottom())
		}
	}
	if !landed {
		t.Error("player should land within two seconds")
	}
}

func TestFullBounceReflectsVelocity(t *testing.T) {
	w := NewWorld(800, 600, 0)
	platforms := w.StaticGroup()
	platforms.Create("ground", 400, 568, 800, 48)

	bomb := w.Sprite("bomb", 400, 530, 16, 24) // bottom at 542
	bomb.SetBounce(1)
	bomb.SetVelocity(0, 180) // moves 3 px per step
	w.AddCollider(bomb, platforms, nil)

	w.Step(dt)

	if !approx(bomb.Vel.Y, -180) {
		t.Errorf("Vel.Y = %f, expected -180", bomb.Vel.Y)
	}
	if !approx(bomb.Bottom(), 544) {
		t.Errorf("Bottom() = %f, expected 544", bomb.Bottom())
	}
}

func TestSideContactBlocksHorizontally(t *testing.T) {
	w := NewWorld(800, 600, 0)
	walls := w.StaticGroup()
	walls.Create("ground", 500, 300, 100, 100) // left edge at 450

	b := w.Sprite("dude", 430, 300, 32, 48) // right edge at 446
	b.SetVelocityX(600)                     // 10 px per step
	w.AddCollider(b, walls, nil)

	w.Step(dt)

	if !b.Touching.Right {
		t.Error("body should touch the wall on its right")
	}
	if !approx(b.Right(), 450) {
		t.Errorf("Right() = %f, expected 450", b.Right())
	}
	if b.Vel.X != 0 {
		t.Errorf("Vel.X = %f, expected 0 with no bounce", b.Vel.X)
	}
}

func TestWorldBounds(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		vx, vy  float64
		check   func(b *Body) bool
		message string
	}{
		{"left", 20, 300, -1200, 0, func(b *Body) bool { return b.Blocked.Left && approx(b.Left(), 0) }, "clamped to left edge"},
		{"right", 780, 300, 1200, 0, func(b *Body) bool { return b.Blocked.Right && approx(b.Right(), 800) }, "clamped to right edge"},
		{"top", 400, 20, 0, -1200, func(b *Body) bool { return b.Blocked.Up && approx(b.Top(), 0) }, "clamped to top edge"},
		{"bottom", 400, 580, 0, 1200, func(b *Body) bool { return b.Blocked.Down && approx(b.Bottom(), 600) }, "clamped to bottom edge"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld(800, 600, 0)
			b := w.Sprite("bomb", tc.x, tc.y, 16, 24)
			b.SetCollideWorldBounds(true)
			b.SetBounce(1)
			b.SetVelocity(tc.vx, tc.vy)

			w.Step(dt)

			if !tc.check(b) {
				t.Errorf("expected body %s, got pos %+v blocked %+v", tc.message, b.Pos, b.Blocked)
			}
			if !approx(math.Abs(b.Vel.X)+math.Abs(b.Vel.Y), 1200) {
				t.Errorf("bounce 1 should keep speed, got %+v", b.Vel)
			}
		})
	}
}

func TestOverlapDoesNotSeparate(t *testing.T) {
	w := NewWorld(800, 600, 0)
	player := w.Sprite("dude", 100, 100, 32, 48)
	stars := w.Group()
	star := stars.Create("star", 110, 100, 24, 24)

	calls := 0
	w.AddOverlap(player, stars, func(a, b *Body) {
		calls++
		if a != player || b != star {
			t.Error("callback should receive bodies in registration order")
		}
		b.Disable(true)
	})

	w.Step(dt)
	w.Step(dt)

	if calls != 1 {
		t.Errorf("overlap callback fired %d times, expected 1 (star disabled after first)", calls)
	}
	if !approx(star.Pos.X, 110) {
		t.Errorf("overlap must not move bodies, star x = %f", star.Pos.X)
	}
	if star.Visible {
		t.Error("Disable(true) should hide the star")
	}
}

func TestBroadPhaseFollowsMovedBodies(t *testing.T) {
	w := NewWorld(800, 600, 0)
	player := w.Sprite("dude", 100, 100, 32, 48)
	stars := w.Group()
	star := stars.Create("star", 700, 500, 24, 24)

	calls := 0
	w.AddOverlap(player, stars, func(a, b *Body) { calls++ })

	w.Step(dt)
	if calls != 0 {
		t.Fatalf("distant star reported %d overlaps", calls)
	}
	if player.nearby()[star] {
		t.Error("distant star should not share a broad-phase cell with the player")
	}

	star.Pos.X, star.Pos.Y = 110, 100 // moved by game code between steps
	w.Step(dt)
	if calls != 1 {
		t.Errorf("moved star reported %d overlaps, expected 1", calls)
	}

	star.Disable(true)
	star.Enable(700, 500)
	w.Step(dt)
	if calls != 1 {
		t.Errorf("re-enabled star far away reported %d overlaps in total, expected 1", calls)
	}
}

func TestBroadPhaseSubPixelOverlapAcrossCells(t *testing.T) {
	tests := []struct {
		name   string
		ax, ay float64
		bx, by float64
	}{
		// 16x16 bodies meeting on the x=32 cell border by a quarter pixel.
		{"horizontal", 24.25, 100, 40, 100},
		// Same on the y=112 border.
		{"vertical", 100, 104.25, 100, 120},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld(800, 600, 0)
			a := w.Sprite("a", tc.ax, tc.ay, 16, 16)
			group := w.Group()
			group.Create("b", tc.bx, tc.by, 16, 16)

			calls := 0
			w.AddOverlap(a, group, func(_, _ *Body) { calls++ })
			w.Step(dt)

			if calls != 1 {
				t.Errorf("quarter-pixel overlap reported %d times, expected 1", calls)
			}
		})
	}
}

func TestPushOutRestsAgainstStatic(t *testing.T) {
	tests := []struct {
		name   string
		sx     float64 // static block center x; 900 lies outside the space
		x, y   float64
		dx, dy float64
		want   float64
	}{
		{"from above", 400, 400, 245, 0, 1, -5},
		{"from below", 400, 400, 355, 0, -1, 5},
		{"from the left", 400, 345, 300, 1, 0, -5},
		{"from the right", 400, 455, 300, -1, 0, 5},
		{"outside the space", 900, 845, 300, 1, 0, -5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld(800, 600, 0)
			s := w.StaticGroup().Create("ground", tc.sx, 300, 100, 100)
			d := w.Sprite("dude", tc.x, tc.y, 20, 20)

			move := pushOut(d, s, tc.dx, tc.dy)
			got := move.X + move.Y
			if !approx(got, tc.want) {
				t.Errorf("pushOut = %+v, expected %v along the contact axis", move, tc.want)
			}
		})
	}
}

func TestPauseFreezesAndStopsColliders(t *testing.T) {
	w := NewWorld(800, 600, 300)
	player := w.Sprite("dude", 100, 100, 32, 48)
	bombs := w.Group()
	bombs.Create("bomb", 100, 100, 16, 24)
	bombs.Create("bomb", 100, 100, 16, 24)

	hits := 0
	w.AddCollider(player, bombs, func(a, b *Body) {
		hits++
		w.Pause()
	})

	w.Step(dt)
	if hits != 1 {
		t.Errorf("pausing inside the callback should stop further checks, got %d hits", hits)
	}

	y := player.Pos.Y
	w.Step(dt)
	if player.Pos.Y != y {
		t.Error("paused world should not move bodies")
	}

	w.Resume()
	if w.Paused() {
		t.Error("Resume should clear the pause")
	}
}

func TestGroupCreateMultiple(t *testing.T) {
	w := NewWorld(800, 600, 300)
	stars := w.Group()
	created := stars.CreateMultiple(GroupConfig{
		Key:    "star",
		Repeat: 11,
		SetXY:  XY{X: 12, Y: 0, StepX: 70},
		W:      24,
		H:      24,
	})

	if len(created) != 12 || stars.Len() != 12 {
		t.Fatalf("expected 12 stars, got %d", len(created))
	}
	if created[11].Pos.X != 12+11*70 {
		t.Errorf("last star x = %f, expected %d", created[11].Pos.X, 12+11*70)
	}

	created[3].Disable(true)
	if stars.CountActive() != 11 {
		t.Errorf("CountActive() = %d, expected 11", stars.CountActive())
	}

	created[3].Enable(created[3].Pos.X, 0)
	if stars.CountActive() != 12 || !created[3].Visible {
		t.Error("Enable should reactivate and show the star")
	}
}

func TestDisabledBodiesAreNotSimulated(t *testing.T) {
	w := NewWorld(800, 600, 300)
	b := w.Sprite("bomb", 100, 100, 16, 24)
	b.Disable(false)

	w.Step(dt)

	if b.Pos.Y != 100 || b.Vel.Y != 0 {
		t.Error("disabled body should not move")
	}
	if !b.Visible {
		t.Error("Disable(false) should keep the body visible")
	}
}
