package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stardrop/internal/scenes/game"
	"github.com/vovakirdan/stardrop/internal/storage"
)

func openBoardStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, run := range []struct {
		level string
		score int
	}{
		{"meadow", 50},
		{"meadow", 120},
		{"canyon", 80},
	} {
		if _, err := store.SaveScore(game.ID, run.level, run.score); err != nil {
			t.Fatal(err)
		}
	}
	return store
}

func boardUpdate(t *testing.T, m ScoreboardModel, msg tea.Msg) (ScoreboardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sb, cmd
}

func TestScoreboardTabs(t *testing.T) {
	m := NewScoreboardModel(openBoardStore(t), 100, 30)

	if m.tabs[0].ID != "" {
		t.Fatalf("first tab should cover all levels, got %q", m.tabs[0].ID)
	}
	if len(m.scores) != 3 {
		t.Errorf("all levels shows %d scores, expected 3", len(m.scores))
	}
	if !strings.Contains(m.statsLine(), "Runs: 3  Best: 120") {
		t.Errorf("stats line = %q", m.statsLine())
	}

	// Walk to the meadow tab.
	for m.tabs[m.tab].ID != "meadow" {
		m, _ = boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.tab == 0 {
			t.Fatal("meadow tab not found")
		}
	}
	if len(m.scores) != 2 || m.scores[0].Score != 120 {
		t.Errorf("meadow scores = %+v", m.scores)
	}
	if !strings.Contains(m.statsLine(), "Runs: 2  Best: 120") {
		t.Errorf("meadow stats line = %q", m.statsLine())
	}
}

func TestScoreboardTabsWrap(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	last := len(m.tabs) - 1

	m, _ = boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.tab != last {
		t.Errorf("tab = %d, expected wrap to %d", m.tab, last)
	}
	m, _ = boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.tab != 0 {
		t.Errorf("tab = %d, expected wrap to 0", m.tab)
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if len(m.scores) != 0 {
		t.Errorf("expected no scores, got %d", len(m.scores))
	}
	view := m.View()
	if !strings.Contains(view, "No scores recorded yet") {
		t.Errorf("expected empty message in view:\n%s", view)
	}
	if m.statsLine() != "No runs yet" {
		t.Errorf("stats line = %q", m.statsLine())
	}
}

func TestScoreboardBack(t *testing.T) {
	tests := []struct {
		name       string
		standalone bool
		wantQuit   bool
	}{
		{"embedded", false, false},
		{"standalone", true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewScoreboardModel(nil, 80, 24)
			m.standalone = tc.standalone

			m, cmd := boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
			if !m.IsGoingBack() {
				t.Error("expected going back")
			}
			if m.IsQuitting() {
				t.Error("back is not quit")
			}
			if (cmd != nil) != tc.wantQuit {
				t.Errorf("cmd = %v, expected quit %v", cmd, tc.wantQuit)
			}
		})
	}
}

func TestScoreboardResize(t *testing.T) {
	m := NewScoreboardModel(openBoardStore(t), 60, 20)
	if m.wide() {
		t.Fatal("60 columns should use the narrow layout")
	}

	m, _ = boardUpdate(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if !m.wide() {
		t.Error("120 columns should use the wide layout")
	}
	if len(m.scores) != 3 {
		t.Errorf("resize dropped scores, got %d", len(m.scores))
	}
	if !strings.Contains(m.View(), "Levels") {
		t.Error("wide layout should list levels")
	}
}
