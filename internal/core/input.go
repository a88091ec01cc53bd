package core

// Action is a semantic input, decoupled from the physical key.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionUp             // W, Up arrow, Space
	ActionDown           // S, Down arrow
	ActionConfirm        // Enter
	ActionBack           // B, Escape
	ActionRestart        // R
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Pointer describes a mouse release that happened during a tick, in cells.
type Pointer struct {
	X, Y     int
	Released bool
}

// InputFrame is the input state for one simulation tick. Direction actions
// are level-triggered (held); the rest are edge-triggered presses.
type InputFrame struct {
	Actions map[Action]bool
	Pointer Pointer
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether the action is active this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Release records a pointer release at (x, y).
func (f *InputFrame) Release(x, y int) {
	f.Pointer = Pointer{X: x, Y: y, Released: true}
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = Pointer{}
}

// Cursors is the four-direction signal set polled once per frame.
type Cursors struct {
	Left, Right, Up, Down bool
}

// Cursors extracts the held direction signals.
func (f InputFrame) Cursors() Cursors {
	return Cursors{
		Left:  f.Has(ActionLeft),
		Right: f.Has(ActionRight),
		Up:    f.Has(ActionUp),
		Down:  f.Has(ActionDown),
	}
}
