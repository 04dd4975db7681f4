package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // Left, H - shift piece left
	ActionRight            // Right, L - shift piece right
	ActionSoftDrop         // Down, J - move piece down one row
	ActionHardDrop         // Space - drop and lock
	ActionRotateCW         // Up, X, K - rotate clockwise
	ActionRotateCCW        // Z - rotate counterclockwise
	ActionUp               // menu navigation
	ActionDown             // menu navigation
	ActionConfirm          // Enter
	ActionBack             // Escape, B
	ActionRestart          // R
	ActionQuit             // Q, Ctrl+C
	ActionPause            // P
	ActionSave             // Ctrl+S
)

var actionNames = [...]string{
	ActionNone:      "None",
	ActionLeft:      "Left",
	ActionRight:     "Right",
	ActionSoftDrop:  "SoftDrop",
	ActionHardDrop:  "HardDrop",
	ActionRotateCW:  "RotateCW",
	ActionRotateCCW: "RotateCCW",
	ActionUp:        "Up",
	ActionDown:      "Down",
	ActionConfirm:   "Confirm",
	ActionBack:      "Back",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
	ActionPause:     "Pause",
	ActionSave:      "Save",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
