// Package game implements the star-collecting platform scene: the player
// runs and jumps across ledges picking up falling stars, and every star
// collected drops a bouncing bomb. Touching a bomb ends the run.
package game

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/stardrop/internal/anim"
	"github.com/vovakirdan/stardrop/internal/assets"
	"github.com/vovakirdan/stardrop/internal/camera"
	"github.com/vovakirdan/stardrop/internal/config"
	"github.com/vovakirdan/stardrop/internal/core"
	"github.com/vovakirdan/stardrop/internal/physics"
	"github.com/vovakirdan/stardrop/internal/registry"
	"github.com/vovakirdan/stardrop/internal/scene"
)

const (
	// Key is the scene key the game registers under.
	Key = "Game"
	// ID names the game in the scores database.
	ID = "stardrop"

	menuKey = "MainMenu"
)

// Scene is the game scene. One instance lives for a whole session; Create
// rebuilds the level on it while the high score carries over.
type Scene struct {
	ctx *scene.Context
	cfg config.Config

	world     *physics.World
	platforms *physics.Group
	stars     *physics.Group
	bombs     *physics.Group
	player    *physics.Body
	anims     *anim.State
	cam       *camera.Camera
	platColor map[*physics.Body]core.Color

	score     int
	scoreText string
	highScore int
	gameOver  bool
	paused    bool
	tint      core.Color

	seeded     bool
	cols, rows int
}

// New creates the game scene.
func New() *Scene {
	return &Scene{}
}

// Key returns "Game".
func (s *Scene) Key() string {
	return Key
}

// Preload queues the game textures.
func (s *Scene) Preload(load *assets.Loader) {
	load.Image("sky", "sky.txt")
	load.Image("ground", "platform.txt")
	load.Image("star", "star.txt")
	load.Image("bomb", "bomb.txt")
	load.Spritesheet("dude", "dude.txt", assets.SpritesheetConfig{FrameWidth: 4, FrameHeight: 2})
}

// Create builds the level, the player, the stars and an empty bomb group.
func (s *Scene) Create(ctx *scene.Context) error {
	if ctx.Level.ID == "" {
		return errors.New("game: no level loaded")
	}
	s.ctx = ctx
	s.cfg = ctx.Config
	ctx.Level.ApplyTo(&s.cfg)
	s.seedHighScore()

	s.score = 0
	s.scoreText = "Score: 0"
	s.gameOver = false
	s.paused = false
	s.tint = core.ColorBrightWhite
	if s.cols == 0 {
		s.cols, s.rows = ctx.Runtime.ScreenW, ctx.Runtime.ScreenH
	}

	lvl := ctx.Level
	s.world = physics.NewWorld(lvl.World.W, lvl.World.H, s.cfg.Physics.Gravity)

	ground, err := ctx.Loader.Frame("ground", 0)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	s.platforms = s.world.StaticGroup()
	s.platColor = make(map[*physics.Body]core.Color, len(lvl.Platforms))
	for _, p := range lvl.Platforms {
		w, h := ground.Size(p.Scale)
		b := s.platforms.Create("ground", p.X, p.Y, w, h)
		b.Data = p.Scale
		c, ok := core.ParseColor(p.Color)
		if !ok {
			c = core.ColorGreen
		}
		s.platColor[b] = c
	}

	dude, err := ctx.Loader.Frame("dude", 0)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	w, h := dude.Size(1)
	s.player = s.world.Sprite("dude", lvl.Player.X, lvl.Player.Y, w, h)
	s.player.SetBounce(s.cfg.Player.Bounce)
	s.player.SetCollideWorldBounds(true)

	if err := s.createAnims(); err != nil {
		return err
	}
	s.anims = anim.NewState(ctx.Anims)
	if err := s.anims.Play("turn", false); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	s.world.AddCollider(s.player, s.platforms, nil)

	star, err := ctx.Loader.Frame("star", 0)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	sw, sh := star.Size(1)
	s.stars = s.world.Group()
	s.stars.CreateMultiple(physics.GroupConfig{
		Key:    "star",
		Repeat: s.cfg.Stars.Repeat,
		SetXY:  physics.XY{X: s.cfg.Stars.StartX, Y: s.cfg.Stars.StartY, StepX: s.cfg.Stars.StepX},
		W:      sw,
		H:      sh,
	})
	s.stars.Iterate(func(b *physics.Body) {
		b.SetBounceY(s.floatBetween(s.cfg.Stars.MinBounce, s.cfg.Stars.MaxBounce))
	})
	s.world.AddCollider(s.stars, s.platforms, nil)
	s.world.AddOverlap(s.player, s.stars, s.collectStar)

	s.bombs = s.world.Group()
	s.world.AddCollider(s.bombs, s.platforms, nil)
	s.world.AddCollider(s.player, s.bombs, s.hitBomb)

	s.cam = camera.New(lvl.World.W, lvl.World.H, s.cols, s.rows)
	s.cam.Follow(func() core.Vec { return s.player.Pos })
	s.cam.Update()

	ctx.Logger.Debug("game created", "level", lvl.ID, "stars", s.stars.Len(), "highScore", s.highScore)
	return nil
}

func (s *Scene) createAnims() error {
	defs := []anim.Config{
		{Key: "left", Frames: anim.GenerateFrameNumbers("dude", 0, 3), FrameRate: 10, Repeat: anim.RepeatForever},
		{Key: "turn", Frames: []anim.FrameRef{{Key: "dude", Frame: 4}}, FrameRate: 20},
		{Key: "right", Frames: anim.GenerateFrameNumbers("dude", 5, 8), FrameRate: 10, Repeat: anim.RepeatForever},
	}
	for _, d := range defs {
		if err := s.ctx.Anims.Create(d); err != nil {
			return fmt.Errorf("game: %w", err)
		}
	}
	return nil
}

// seedHighScore loads the stored best score for the session's level once.
func (s *Scene) seedHighScore() {
	if s.seeded {
		return
	}
	s.seeded = true
	if s.ctx.Store == nil {
		return
	}
	best, err := s.ctx.Store.HighScore(ID, s.ctx.Level.ID)
	if err != nil {
		s.ctx.Logger.Warn("could not read stored high score", "err", err)
		return
	}
	s.highScore = max(s.highScore, best)
}

// Update runs one frame: read the cursors, set the player's velocity and
// animation, then step physics.
func (s *Scene) Update(in core.InputFrame) {
	if s.world == nil {
		return
	}
	if s.gameOver {
		s.handleGameOverInput(in)
		return
	}

	if in.Has(core.ActionPause) {
		s.paused = !s.paused
		if s.paused {
			s.world.Pause()
		} else {
			s.world.Resume()
		}
	}
	if s.paused {
		return
	}

	cur := in.Cursors()
	switch {
	case cur.Left:
		s.player.SetVelocityX(-s.cfg.Player.Speed)
		s.play("left", true)
	case cur.Right:
		s.player.SetVelocityX(s.cfg.Player.Speed)
		s.play("right", true)
	default:
		s.player.SetVelocityX(0)
		s.play("turn", false)
	}

	if cur.Up && s.player.Touching.Down {
		s.player.SetVelocityY(-s.cfg.Player.JumpVelocity)
	}

	dt := s.ctx.Runtime.DT()
	s.world.Step(dt)
	if !s.gameOver {
		s.anims.Update(dt)
	}
	s.cam.Update()
}

func (s *Scene) handleGameOverInput(in core.InputFrame) {
	var target string
	switch {
	case in.Has(core.ActionRestart):
		target = Key
	case in.Has(core.ActionBack):
		target = menuKey
	default:
		return
	}
	if err := s.ctx.Scenes.Start(target); err != nil {
		s.ctx.Logger.Error("scene switch failed", "target", target, "err", err)
	}
}

func (s *Scene) play(key string, ignoreIfPlaying bool) {
	if err := s.anims.Play(key, ignoreIfPlaying); err != nil {
		s.ctx.Logger.Error("animation", "err", err)
	}
}

// collectStar removes the star, scores it, refills the stars once all are
// gone, and drops one bomb on the side away from the player.
func (s *Scene) collectStar(player, star *physics.Body) {
	star.Disable(true)

	s.score += s.cfg.Stars.Points
	s.scoreText = fmt.Sprintf("Score: %d", s.score)

	if s.stars.CountActive() == 0 {
		s.stars.Iterate(func(b *physics.Body) {
			b.Enable(b.Pos.X, 0)
		})
	}

	var x float64
	if player.Pos.X < s.cfg.Bombs.SplitX {
		x = s.intBetween(s.cfg.Bombs.SplitX, s.cfg.Bombs.MaxX)
	} else {
		x = s.intBetween(0, s.cfg.Bombs.SplitX)
	}
	w, h := s.bombSize()
	bomb := s.bombs.Create("bomb", x, s.cfg.Bombs.SpawnY, w, h)
	bomb.SetBounce(s.cfg.Bombs.Bounce)
	bomb.SetCollideWorldBounds(true)
	vx := float64(s.ctx.Rand.Intn(2*s.cfg.Bombs.MaxVelocityX+1) - s.cfg.Bombs.MaxVelocityX)
	bomb.SetVelocity(vx, s.cfg.Bombs.VelocityY)

	s.ctx.Logger.Debug("star collected", "score", s.score, "bombs", s.bombs.Len(), "bombX", x)
}

// hitBomb freezes the world and ends the run.
func (s *Scene) hitBomb(player, bomb *physics.Body) {
	s.world.Pause()
	s.tint = core.ColorRed
	s.play("turn", false)
	s.gameOver = true

	if s.score > s.highScore {
		s.highScore = s.score
	}
	s.ctx.Logger.Debug("game over", "score", s.score, "highScore", s.highScore)
}

func (s *Scene) bombSize() (w, h float64) {
	f, err := s.ctx.Loader.Frame("bomb", 0)
	if err != nil {
		return core.PixelsPerCol, core.PixelsPerRow
	}
	return f.Size(1)
}

// intBetween returns an integer in [lo, hi), as a float.
func (s *Scene) intBetween(lo, hi float64) float64 {
	n := int(hi - lo)
	if n <= 0 {
		return lo
	}
	return lo + float64(s.ctx.Rand.Intn(n))
}

// floatBetween returns a float in [lo, hi).
func (s *Scene) floatBetween(lo, hi float64) float64 {
	return lo + s.ctx.Rand.Float64()*(hi-lo)
}

// Resize changes the camera viewport. The level keeps running.
func (s *Scene) Resize(cols, rows int) {
	s.cols, s.rows = cols, rows
	if s.cam != nil {
		s.cam.SetViewport(cols, rows)
		s.cam.Update()
	}
}

// Shutdown stops the camera from following a player that is about to be
// replaced.
func (s *Scene) Shutdown() {
	if s.cam != nil {
		s.cam.StopFollow()
	}
}

// HighScore returns the best score seen by this scene instance.
func (s *Scene) HighScore() int {
	return s.highScore
}

// State reports score and game over to the platform.
func (s *Scene) State() core.GameState {
	return core.GameState{
		Score:     s.score,
		HighScore: s.highScore,
		GameOver:  s.gameOver,
		Paused:    s.paused,
	}
}

func init() {
	registry.Register(Key, func() scene.Scene {
		return New()
	})
}
