package assets

import (
	"bufio"
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/stardrop/internal/core"
)

// Transparent marks a cell that does not overwrite what is underneath.
const Transparent = '.'

// Image is a rectangular block of text art.
type Image struct {
	w, h  int
	cells [][]rune
}

// parseImage reads text art. Rows shorter than the widest row are padded
// with transparent cells.
func parseImage(data []byte) (*Image, error) {
	var rows [][]rune
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("row %d is not valid UTF-8", len(rows)+1)
		}
		rows = append(rows, []rune(line))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	img := &Image{h: len(rows)}
	for _, r := range rows {
		img.w = max(img.w, len(r))
	}
	if img.w == 0 || img.h == 0 {
		return nil, fmt.Errorf("image is empty")
	}

	img.cells = make([][]rune, img.h)
	for y, r := range rows {
		row := make([]rune, img.w)
		for x := range row {
			row[x] = Transparent
		}
		copy(row, r)
		img.cells[y] = row
	}
	return img, nil
}

// Width returns the width in cells.
func (img *Image) Width() int { return img.w }

// Height returns the height in cells.
func (img *Image) Height() int { return img.h }

// Frame is a rectangular region of an image.
type Frame struct {
	img        *Image
	X, Y, W, H int
}

// Size returns the frame size in world units at the given scale.
func (f Frame) Size(scale float64) (w, h float64) {
	return float64(f.W*core.PixelsPerCol) * scale, float64(f.H*core.PixelsPerRow) * scale
}

// Draw blits the frame with its top-left cell at (x, y).
func (f Frame) Draw(dst *core.Screen, x, y int, c core.Color) {
	f.DrawScaled(dst, x, y, 1, c)
}

// DrawScaled blits the frame enlarged by an integer-ish factor using
// nearest-neighbour sampling. Transparent cells are skipped.
func (f Frame) DrawScaled(dst *core.Screen, x, y int, scale float64, c core.Color) {
	if f.img == nil || scale <= 0 {
		return
	}
	w := int(float64(f.W)*scale + 0.5)
	h := int(float64(f.H)*scale + 0.5)
	for dy := 0; dy < h; dy++ {
		sy := f.Y + min(int(float64(dy)/scale), f.H-1)
		for dx := 0; dx < w; dx++ {
			sx := f.X + min(int(float64(dx)/scale), f.W-1)
			r := f.img.cells[sy][sx]
			if r == Transparent {
				continue
			}
			dst.SetColored(x+dx, y+dy, r, c)
		}
	}
}
