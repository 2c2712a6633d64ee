package core

import "strconv"

// Action is a semantic input, decoupled from the physical key.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionDrop           // Space, Enter
	ActionConfirm        // Enter in menus
	ActionBack           // B, Escape
	ActionRestart        // R
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
	ActionHelp           // H, ?

	// ActionColumn1 is followed by one action per digit key up to column 9.
	ActionColumn1
)

// MaxColumnActions is the number of digit-key column actions.
const MaxColumnActions = 9

// ColumnAction returns the action selecting the given zero-based column.
// Columns beyond the digit keys return ActionNone.
func ColumnAction(col int) Action {
	if col < 0 || col >= MaxColumnActions {
		return ActionNone
	}
	return ActionColumn1 + Action(col)
}

// Column returns the zero-based column for a column action.
func (a Action) Column() (int, bool) {
	if a < ActionColumn1 || a >= ActionColumn1+MaxColumnActions {
		return 0, false
	}
	return int(a - ActionColumn1), true
}

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionDrop:    "Drop",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
	ActionHelp:    "Help",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if col, ok := a.Column(); ok {
		return "Column" + strconv.Itoa(col+1)
	}
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame holds the actions triggered during one tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// SelectedColumn returns the first column picked by a digit key this frame.
func (f InputFrame) SelectedColumn() (int, bool) {
	for col := 0; col < MaxColumnActions; col++ {
		if f.Has(ColumnAction(col)) {
			return col, true
		}
	}
	return 0, false
}

// Clear removes all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone returns an independent copy of the frame.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	for k, v := range f.Actions {
		c.Actions[k] = v
	}
	return c
}
