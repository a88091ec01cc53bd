package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stardrop/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to actions. Space both jumps and
// confirms, so it starts the game from the menu and jumps in play.
// Returns whether the key is a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return []core.Action{core.ActionQuit}, true
	case "a", "left":
		return []core.Action{core.ActionLeft}, false
	case "d", "right":
		return []core.Action{core.ActionRight}, false
	case "w", "up":
		return []core.Action{core.ActionUp}, false
	case "s", "down":
		return []core.Action{core.ActionDown}, false
	case " ", "space":
		return []core.Action{core.ActionUp, core.ActionConfirm}, false
	case "enter":
		return []core.Action{core.ActionConfirm}, false
	case "b", "esc":
		return []core.Action{core.ActionBack}, false
	case "p":
		return []core.Action{core.ActionPause}, false
	case "r":
		return []core.Action{core.ActionRestart}, false
	}
	return nil, false
}

// MapMouse records a left-button release in the frame. Reports whether the
// message was a release.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, frame *core.InputFrame) bool {
	if msg.Action != tea.MouseActionRelease {
		return false
	}
	if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonNone {
		return false
	}
	frame.Release(msg.X, msg.Y)
	return true
}

// isDirection reports whether a is one of the four cursor directions.
func isDirection(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown:
		return true
	}
	return false
}

// HeldKeys turns key presses into held directions. Terminals never report
// a key release, only the press and its auto-repeat. A first press is held
// long enough to bridge the keyboard's initial repeat delay; once repeats
// arrive each one extends the hold by a short window.
type HeldKeys struct {
	hold   time.Duration
	repeat time.Duration
	until  map[core.Action]time.Time
}

// NewHeldKeys creates a tracker that holds a first press for hold and each
// auto-repeat press for repeat.
func NewHeldKeys(hold, repeat time.Duration) *HeldKeys {
	return &HeldKeys{
		hold:   hold,
		repeat: repeat,
		until:  make(map[core.Action]time.Time),
	}
}

// Press holds a direction. A press while the direction is still held is an
// auto-repeat and gets the repeat window. Pressing one direction releases
// the opposite one.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	switch a {
	case core.ActionLeft:
		delete(h.until, core.ActionRight)
	case core.ActionRight:
		delete(h.until, core.ActionLeft)
	case core.ActionUp:
		delete(h.until, core.ActionDown)
	case core.ActionDown:
		delete(h.until, core.ActionUp)
	}
	d := h.hold
	if t, ok := h.until[a]; ok && !now.After(t) {
		d = h.repeat
	}
	h.until[a] = now.Add(d)
}

// Apply sets every direction still held at now into the frame and forgets
// the expired ones.
func (h *HeldKeys) Apply(frame *core.InputFrame, now time.Time) {
	for a, t := range h.until {
		if now.After(t) {
			delete(h.until, a)
			continue
		}
		frame.Set(a)
	}
}

// Reset releases everything.
func (h *HeldKeys) Reset() {
	clear(h.until)
}
