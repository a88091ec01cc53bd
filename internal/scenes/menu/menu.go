// Package menu implements the title scene: the logo, the best score of the
// session and a START button that launches the game.
package menu

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/stardrop/internal/assets"
	"github.com/vovakirdan/stardrop/internal/core"
	"github.com/vovakirdan/stardrop/internal/registry"
	"github.com/vovakirdan/stardrop/internal/scene"
)

const (
	// Key is the scene key the menu registers under.
	Key = "MainMenu"

	gameKey   = "Game"
	startText = "START"
)

// Vertical offsets from the screen center, in world units.
const (
	logoOffset       = -165
	titleOffset      = 60
	scoreOffset      = 90
	startOffset      = 160
	startZonePadding = 16
)

// highScorer is satisfied by the game scene.
type highScorer interface {
	HighScore() int
}

// Scene is the main menu.
type Scene struct {
	ctx *scene.Context

	highScore  int
	cols, rows int
	startZone  core.Rect
	started    bool
}

// New creates the main menu scene.
func New() *Scene {
	return &Scene{}
}

// Key returns "MainMenu".
func (s *Scene) Key() string {
	return Key
}

// Preload queues the logo.
func (s *Scene) Preload(load *assets.Loader) {
	load.Image("logo", "logo.txt")
}

// Create reads the high score from the live game scene and lays out the
// menu for the current viewport.
func (s *Scene) Create(ctx *scene.Context) error {
	s.ctx = ctx
	s.started = false
	s.highScore = 0
	if g, ok := ctx.Scenes.Get(gameKey); ok {
		if hs, ok := g.(highScorer); ok {
			s.highScore = hs.HighScore()
		}
	}
	s.Resize(ctx.Runtime.ScreenW, ctx.Runtime.ScreenH)
	return nil
}

// Update starts the game on a pointer release inside the START zone, or on
// Enter. The switch happens at most once per menu visit.
func (s *Scene) Update(in core.InputFrame) {
	if s.started || s.ctx == nil {
		return
	}
	clicked := in.Pointer.Released && s.startZone.Contains(in.Pointer.X, in.Pointer.Y)
	if !clicked && !in.Has(core.ActionConfirm) {
		return
	}
	if err := s.ctx.Scenes.Start(gameKey); err != nil {
		s.ctx.Logger.Error("could not start game", "err", err)
		return
	}
	s.started = true
}

// Resize recomputes the START hit zone around the centered text.
func (s *Scene) Resize(cols, rows int) {
	s.cols, s.rows = cols, rows
	w := utf8.RuneCountInString(startText)
	x := (cols - w) / 2
	y := s.row(startOffset)
	padX := int(math.Round(startZonePadding / float64(core.PixelsPerCol)))
	padY := int(math.Ceil(startZonePadding / float64(core.PixelsPerRow)))
	s.startZone = core.NewRect(x, y, w, 1).Expand(padX, padY)
}

// row converts a world-unit offset from the screen center into a row.
func (s *Scene) row(offset float64) int {
	return s.rows/2 + int(math.Round(offset/core.PixelsPerRow))
}

// Render draws the logo, the high score and the START button.
func (s *Scene) Render(dst *core.Screen) {
	if s.ctx == nil {
		return
	}

	if logo, err := s.ctx.Loader.Frame("logo", 0); err == nil {
		x := (s.cols - logo.W) / 2
		y := s.row(logoOffset) - logo.H/2
		logo.Draw(dst, x, max(y, 0), core.ColorBrightYellow)
	}

	drawCentered(dst, s.row(titleOffset), "HIGH SCORE", core.ColorBrightCyan)
	drawCentered(dst, s.row(scoreOffset), fmt.Sprintf("%d POINTS", s.highScore), core.ColorBrightWhite)

	dst.DrawBox(s.startZone)
	drawCentered(dst, s.startZone.Y+s.startZone.H/2, startText, core.ColorBrightGreen)

	help := "Enter/click start  |  Tab scores  |  Q quit"
	drawCentered(dst, s.rows-1, help, core.ColorGray)
}

func drawCentered(dst *core.Screen, y int, text string, c core.Color) {
	x := (dst.Width() - utf8.RuneCountInString(text)) / 2
	dst.DrawTextColored(x, y, text, c)
}

// HighScore returns the score shown on the menu.
func (s *Scene) HighScore() int {
	return s.highScore
}

func init() {
	registry.Register(Key, func() scene.Scene {
		return New()
	})
}
