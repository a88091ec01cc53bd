package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBuiltinMeadow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	l, err := LoadLevel("meadow")
	if err != nil {
		t.Fatalf("LoadLevel(meadow) failed: %v", err)
	}
	if l.Source != "builtin" {
		t.Errorf("Source = %q, expected builtin", l.Source)
	}
	if l.World.W != 800 || l.World.H != 600 {
		t.Errorf("world = %vx%v, expected 800x600", l.World.W, l.World.H)
	}
	if len(l.Platforms) != 4 {
		t.Fatalf("expected 4 platforms, got %d", len(l.Platforms))
	}
	if l.Platforms[0].Scale != 2 || l.Platforms[1].Scale != 1 {
		t.Errorf("scales = %v, %v, expected 2 and default 1", l.Platforms[0].Scale, l.Platforms[1].Scale)
	}
	if l.Player.X != 100 || l.Player.Y != 450 {
		t.Errorf("player start = %+v, expected (100, 450)", l.Player)
	}
}

func TestLoadLevelRejectsBadIDs(t *testing.T) {
	for _, id := range []string{"", "../etc/passwd", `a\b`, "nope"} {
		if _, err := LoadLevel(id); err == nil {
			t.Errorf("LoadLevel(%q) should fail", id)
		}
	}
}

func TestUserLevelShadowsBuiltin(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, Dir, "levels")
	os.MkdirAll(dir, 0o755)
	data := "id: meadow\nworld: {w: 400, h: 300}\nplayer: {x: 50, y: 50}\nplatforms:\n  - {x: 200, y: 290}\n"
	os.WriteFile(filepath.Join(dir, "meadow.yaml"), []byte(data), 0o600)

	l, err := LoadLevel("meadow")
	if err != nil {
		t.Fatalf("LoadLevel failed: %v", err)
	}
	if l.World.W != 400 {
		t.Errorf("user level should win, world width = %v", l.World.W)
	}

	levels, err := ListLevels()
	if err != nil {
		t.Fatalf("ListLevels failed: %v", err)
	}
	if len(levels) != 2 || levels[0].ID != "canyon" || levels[1].ID != "meadow" {
		t.Fatalf("ListLevels = %+v, expected canyon and meadow", levels)
	}
	if levels[1].Source == "builtin" {
		t.Error("listed meadow should come from the user directory")
	}
}

func TestParseLevelValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no id", "world: {w: 10, h: 10}\nplatforms: [{x: 1, y: 1}]\n"},
		{"no platforms", "id: x\nworld: {w: 10, h: 10}\n"},
		{"zero world", "id: x\nplatforms: [{x: 1, y: 1}]\n"},
		{"player outside", "id: x\nworld: {w: 10, h: 10}\nplayer: {x: 20, y: 1}\nplatforms: [{x: 1, y: 1}]\n"},
		{"bad bomb band", "id: x\nworld: {w: 10, h: 10}\nplatforms: [{x: 1, y: 1}]\nbombs: {split_x: 9, max_x: 5}\n"},
		{"malformed", "id: [x"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseLevel([]byte(tc.yaml)); err == nil {
				t.Error("ParseLevel should fail")
			}
		})
	}
}

func TestLevelApplyTo(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	l, err := LoadLevel("canyon")
	if err != nil {
		t.Fatalf("LoadLevel(canyon) failed: %v", err)
	}

	cfg := Default()
	l.ApplyTo(&cfg)
	if cfg.Bombs.SplitX != 800 || cfg.Bombs.MaxX != 1600 {
		t.Errorf("bomb band = [%v, %v), expected [800, 1600)", cfg.Bombs.SplitX, cfg.Bombs.MaxX)
	}
	if cfg.Stars.StepX != 140 {
		t.Errorf("Stars.StepX = %v, expected 140", cfg.Stars.StepX)
	}
	if cfg.Stars.Points != 10 {
		t.Error("fields without overrides must keep config values")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("canyon config should validate: %v", err)
	}
}
