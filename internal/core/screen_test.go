package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(80, 24)
	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	want := strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", 80)+"\n", 24), "\n")
	if s.String() != want {
		t.Error("new screen should be all spaces")
	}
}

func TestScreenClipsOutOfBounds(t *testing.T) {
	s := NewScreen(10, 4)

	// None of these may panic.
	for _, p := range [][2]int{{-1, 0}, {10, 0}, {0, -1}, {0, 4}} {
		s.Set(p[0], p[1], 'A')
		if got := s.Get(p[0], p[1]); got != ' ' {
			t.Errorf("Get(%d, %d) = %q, expected a space", p[0], p[1], got)
		}
	}

	s.DrawText(8, 1, "Hello")
	if got := s.Row(1); got != "        He" {
		t.Errorf("clipped text row = %q", got)
	}
	if got := s.Row(-1); got != strings.Repeat(" ", 10) {
		t.Errorf("out of range row = %q", got)
	}
}

func TestScreenDrawing(t *testing.T) {
	tests := []struct {
		name string
		draw func(s *Screen)
		want []string
	}{
		{
			name: "text",
			draw: func(s *Screen) { s.DrawText(1, 1, "Hi") },
			want: []string{"      ", " Hi   ", "      "},
		},
		{
			name: "rect",
			draw: func(s *Screen) { s.DrawRect(NewRect(2, 0, 3, 2), '#') },
			want: []string{"  ### ", "  ### ", "      "},
		},
		{
			name: "box",
			draw: func(s *Screen) { s.DrawBox(NewRect(0, 0, 5, 3)) },
			want: []string{"┌───┐ ", "│   │ ", "└───┘ "},
		},
		{
			name: "fill then clear",
			draw: func(s *Screen) { s.Fill('x'); s.Clear() },
			want: []string{"      ", "      ", "      "},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(6, 3)
			tc.draw(s)
			if got := s.String(); got != strings.Join(tc.want, "\n") {
				t.Errorf("screen =\n%s\nexpected\n%s", got, strings.Join(tc.want, "\n"))
			}
		})
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawTextColored(1, 1, "Hi", ColorRed)

	if cell := s.GetCell(1, 1); cell.Rune != 'H' || cell.Color != ColorRed {
		t.Errorf("GetCell(1, 1) = %+v, expected red 'H'", cell)
	}
	if s.GetCell(0, 1).Color != ColorDefault {
		t.Error("untouched cell should keep the default color")
	}

	s.Clear()
	if cell := s.GetCell(1, 1); cell != (Cell{Rune: ' '}) {
		t.Errorf("Clear left %+v", cell)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{" Green ", ColorGreen, true},
		{"BRIGHT_YELLOW", ColorBrightYellow, true},
		{"chartreuse", ColorDefault, false},
	}
	for _, tc := range tests {
		c, ok := ParseColor(tc.in)
		if ok != tc.ok || (ok && c != tc.want) {
			t.Errorf("ParseColor(%q) = %v, %v; expected %v, %v", tc.in, c, ok, tc.want, tc.ok)
		}
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 8x4", s.Width(), s.Height())
	}
	if got := s.Row(0); got != "Hello   " {
		t.Errorf("row 0 = %q", got)
	}

	s.Resize(12, 8)
	if got := s.Row(0); got != "Hello       " {
		t.Errorf("row 0 after enlarging = %q", got)
	}
	if got := s.Row(5); strings.TrimSpace(got) != "" {
		t.Errorf("rows cut by shrinking should come back blank, got %q", got)
	}
}
