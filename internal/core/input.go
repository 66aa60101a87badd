package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - walk left
	ActionRight          // D, Right arrow - walk right
	ActionUp             // W, Up arrow, Space - jump
	ActionDown           // S, Down arrow
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart the round
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
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

// InputFrame is the input snapshot for one simulation tick.
//
// Held reports level state (the key is down this frame). Pressed reports
// edges: the key went from up to down between the previous frame and this one.
type InputFrame struct {
	Held    map[Action]bool
	Pressed map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Held:    make(map[Action]bool),
		Pressed: make(map[Action]bool),
	}
}

// Hold marks an action as held for this frame.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Press marks an action as held and newly pressed for this frame.
func (f *InputFrame) Press(a Action) {
	f.Hold(a)
	if f.Pressed == nil {
		f.Pressed = make(map[Action]bool)
	}
	f.Pressed[a] = true
}

// IsDown returns true if the action is held this frame.
func (f InputFrame) IsDown(a Action) bool {
	return f.Held[a]
}

// JustPressed returns true if the action went down this frame.
func (f InputFrame) JustPressed(a Action) bool {
	return f.Pressed[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Held)
	clear(f.Pressed)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	for k, v := range f.Held {
		c.Held[k] = v
	}
	for k, v := range f.Pressed {
		c.Pressed[k] = v
	}
	return c
}

// InputTracker turns consecutive raw key states into input frames.
// It remembers the previous raw state so that Pressed is set only on the
// frame an action transitions from up to down.
type InputTracker struct {
	prev map[Action]bool
}

// NewInputTracker creates a tracker with every action up.
func NewInputTracker() *InputTracker {
	return &InputTracker{prev: make(map[Action]bool)}
}

// Next builds the frame for the given raw down state.
func (t *InputTracker) Next(down map[Action]bool) InputFrame {
	frame := NewInputFrame()
	for a, isDown := range down {
		if !isDown {
			continue
		}
		frame.Held[a] = true
		if !t.prev[a] {
			frame.Pressed[a] = true
		}
	}

	clear(t.prev)
	for a := range frame.Held {
		t.prev[a] = true
	}
	return frame
}

// Reset forgets the previous state, so keys still held count as new presses.
func (t *InputTracker) Reset() {
	clear(t.prev)
}
