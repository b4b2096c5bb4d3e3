package ui

import "github.com/gdamore/tcell/v2"

// ConfirmResult is the outcome of a yes/no prompt
type ConfirmResult uint8

const (
	ConfirmPending ConfirmResult = iota
	ConfirmYes
	ConfirmNo
	ConfirmCancel
)

func (r ConfirmResult) String() string {
	switch r {
	case ConfirmYes:
		return "Yes"
	case ConfirmNo:
		return "No"
	case ConfirmCancel:
		return "Cancel"
	default:
		return "Pending"
	}
}

// ConfirmState tracks keyboard focus and outcome of a yes/no prompt
type ConfirmState struct {
	FocusYes   bool
	Result     ConfirmResult
	defaultYes bool
}

// NewConfirmState creates a pending prompt with Yes or No focused
func NewConfirmState(defaultYes bool) *ConfirmState {
	return &ConfirmState{FocusYes: defaultYes, defaultYes: defaultYes}
}

// Reset returns to pending with the default focus
func (c *ConfirmState) Reset() {
	c.FocusYes = c.defaultYes
	c.Result = ConfirmPending
}

// Toggle moves focus to the other choice
func (c *ConfirmState) Toggle() {
	c.FocusYes = !c.FocusYes
}

// Confirm resolves to the focused choice
func (c *ConfirmState) Confirm() {
	if c.FocusYes {
		c.Result = ConfirmYes
	} else {
		c.Result = ConfirmNo
	}
}

func (c *ConfirmState) SelectYes() { c.Result = ConfirmYes }
func (c *ConfirmState) SelectNo()  { c.Result = ConfirmNo }
func (c *ConfirmState) Cancel()    { c.Result = ConfirmCancel }

// Done reports whether the prompt has an outcome
func (c *ConfirmState) Done() bool {
	return c.Result != ConfirmPending
}

// HandleEvent applies keyboard input; returns true when the event was used
// Arrows and Tab move focus, Enter confirms, Escape cancels, y/n answer directly
func (c *ConfirmState) HandleEvent(ev UIEvent) bool {
	switch ev.Type {
	case KeyPressed:
		switch ev.Key {
		case tcell.KeyLeft, tcell.KeyRight, tcell.KeyTab, tcell.KeyBacktab:
			c.Toggle()
		case tcell.KeyEnter:
			c.Confirm()
		case tcell.KeyEscape:
			c.Cancel()
		default:
			return false
		}
		return true
	case TextInput:
		switch ev.Rune {
		case 'y', 'Y':
			c.SelectYes()
		case 'n', 'N':
			c.SelectNo()
		case 'h':
			c.FocusYes = true
		case 'l':
			c.FocusYes = false
		default:
			return false
		}
		return true
	}
	return false
}
