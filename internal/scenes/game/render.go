package game

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/stardrop/internal/core"
	"github.com/vovakirdan/stardrop/internal/physics"
)

// Render draws the world through the camera, then the HUD on top.
func (s *Scene) Render(dst *core.Screen) {
	if s.world == nil {
		return
	}

	s.drawSky(dst)
	s.platforms.Iterate(func(b *physics.Body) {
		scale, _ := b.Data.(float64)
		s.drawBody(dst, b, 0, scale, s.platColor[b])
	})
	s.stars.Iterate(func(b *physics.Body) {
		s.drawBody(dst, b, 0, 1, core.ColorBrightYellow)
	})
	s.bombs.Iterate(func(b *physics.Body) {
		s.drawBody(dst, b, 0, 1, core.ColorGray)
	})
	if ref, ok := s.anims.Frame(); ok {
		s.drawBody(dst, s.player, ref.Frame, 1, s.tint)
	}

	dst.DrawTextColored(2, 0, " "+s.scoreText+" ", core.ColorBrightWhite)
	if s.highScore > 0 {
		best := fmt.Sprintf(" Best: %d ", s.highScore)
		dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(best)-2, 0, best, core.ColorYellow)
	}

	switch {
	case s.gameOver:
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Best: %d", s.score, s.highScore),
			"R restart  |  B menu")
	case s.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawSky tiles the background across the world, starting at its left edge.
func (s *Scene) drawSky(dst *core.Screen) {
	sky, err := s.ctx.Loader.Frame("sky", 0)
	if err != nil {
		return
	}
	w, h := sky.Size(1)
	worldW := s.world.Bounds.W
	top := (s.world.Bounds.H - h) / 2
	for x := 0.0; x < worldW; x += w {
		col, row := s.cam.ToScreen(x, top)
		sky.Draw(dst, col, row, core.ColorBlue)
	}
}

// drawBody draws frame i of the body's texture with the body's center at
// its world position.
func (s *Scene) drawBody(dst *core.Screen, b *physics.Body, i int, scale float64, c core.Color) {
	if !b.Visible {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	f, err := s.ctx.Loader.Frame(b.Key, i)
	if err != nil {
		return
	}
	w, h := f.Size(scale)
	col, row := s.cam.ToScreen(b.Pos.X-w/2, b.Pos.Y-h/2)
	f.DrawScaled(dst, col, row, scale, c)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	boxW := utf8.RuneCountInString(title)
	for _, l := range lines {
		boxW = max(boxW, utf8.RuneCountInString(l))
	}
	boxW += 4
	boxH := 4 + len(lines)
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawTextColored(boxX+(boxW-utf8.RuneCountInString(title))/2, boxY+1, title, core.ColorBrightRed)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-utf8.RuneCountInString(l))/2, boxY+3+i, l)
	}
}
