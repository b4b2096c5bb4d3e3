package menu

import (
	"fmt"

	"github.com/lixenwraith/gamesvc-samples/event"
	"github.com/lixenwraith/gamesvc-samples/ui"
	"github.com/lixenwraith/gamesvc-samples/vmath"
)

// NotificationLines is how many notifications stay listed
const NotificationLines = 4

// NotificationDialog lists recent invites and purchases; F2 toggles it
type NotificationDialog struct {
	*ui.Dialog
	view *ui.TextView
}

// NewNotificationDialog creates the hidden-by-menu notification dialog
func NewNotificationDialog() *NotificationDialog {
	d := &NotificationDialog{
		Dialog: ui.NewDialog(vmath.Vec2{}, vmath.V2(40, NotificationLines+2), NotificationLayer, "Notifications"),
	}
	d.view = ui.NewTextView(vmath.Vec2{}, vmath.Vec2{}, NotificationLayer-1, NotificationLines)
	d.AddWidget(d.view)
	d.SetOnLayout(func() {
		inner := d.Inner()
		d.view.SetPosition(inner.Pos)
		d.view.SetSize(inner.Size)
	})
	d.view.AddStyled("No notifications", ui.DefaultTheme.Hint)
	return d
}

// Lines returns the listed notifications
func (d *NotificationDialog) Lines() []ui.Line { return d.view.Lines() }

// Notify appends text
func (d *NotificationDialog) Notify(text string) {
	if d.view.Len() == 1 && d.view.Lines()[0].Style == ui.DefaultTheme.Hint {
		d.view.Clear()
	}
	d.view.AddLine(text)
}

func (d *NotificationDialog) OnGameEvent(ev event.Event) {
	switch ev.Type() {
	case event.EventLobbyInviteReceived:
		d.Notify(fmt.Sprintf("Lobby invite from %s", ev.UserID()))
	case event.EventSessionInviteReceived:
		d.Notify(fmt.Sprintf("Session invite from %s", ev.Text()))
	case event.EventCheckoutComplete:
		d.Notify(fmt.Sprintf("Purchase complete (%s)", ev.Text()))
	}
}

// PopupDialog shows one message with an OK button
type PopupDialog struct {
	*ui.Dialog
	label *ui.Label
	ok    *ui.Button
}

// NewPopupDialog creates the popup
func NewPopupDialog() *PopupDialog {
	d := &PopupDialog{
		Dialog: ui.NewDialog(vmath.Vec2{}, vmath.V2(50, 7), PopupLayer, "Message"),
	}
	d.label = ui.NewLabel(vmath.Vec2{}, vmath.Vec2{}, PopupLayer-1, "")
	d.ok = ui.NewButton(vmath.Vec2{}, vmath.V2(8, 1), PopupLayer-1, "OK")
	d.ok.SetOnPressed(d.Hide)
	d.AddWidget(d.label)
	d.AddWidget(d.ok)
	d.SetOnLayout(func() {
		inner := d.Inner()
		d.label.SetPosition(inner.Pos.Add(vmath.V2(1, 0)))
		d.label.SetSize(vmath.V2(inner.Size.X-2, max(inner.Size.Y-2, 1)))
		d.ok.SetPosition(vmath.V2(inner.Pos.X+inner.Size.X/2-4, inner.Pos.Y+inner.Size.Y-1))
	})
	return d
}

// SetText replaces the message, wrapped to the label width
func (d *PopupDialog) SetText(text string) {
	d.label.SetText(wrap(text, int(d.label.Size().X)))
}

// Text returns the shown message
func (d *PopupDialog) Text() string { return d.label.Text }

// OK returns the dismiss button
func (d *PopupDialog) OK() *ui.Button { return d.ok }

// SetFocused gives the OK button Enter
func (d *PopupDialog) SetFocused(focused bool) {
	d.Dialog.SetFocused(focused)
	d.ok.SetFocused(focused)
}

func (d *PopupDialog) OnGameEvent(event.Event) {}

// ExitDialog asks for exit confirmation; Yes requests a direct exit
type ExitDialog struct {
	*ui.Dialog
	bus   event.Emitter
	state *ui.ConfirmState
	yes   *ui.Button
	no    *ui.Button
}

// NewExitDialog creates the exit prompt
func NewExitDialog(bus event.Emitter) *ExitDialog {
	d := &ExitDialog{
		Dialog: ui.NewDialog(vmath.Vec2{}, vmath.V2(36, 6), ExitLayer, "Exit"),
		bus:    bus,
		state:  ui.NewConfirmState(false),
	}
	msg := ui.NewLabel(vmath.Vec2{}, vmath.Vec2{}, ExitLayer-1, "Are you sure you want to exit?")
	msg.Align = ui.AlignCenter
	d.yes = ui.NewButton(vmath.Vec2{}, vmath.V2(8, 1), ExitLayer-1, "Yes")
	d.no = ui.NewButton(vmath.Vec2{}, vmath.V2(8, 1), ExitLayer-1, "No")
	d.yes.SetOnPressed(func() {
		d.state.SelectYes()
		d.resolve()
	})
	d.no.SetOnPressed(func() {
		d.state.SelectNo()
		d.resolve()
	})
	d.AddWidget(msg)
	d.AddWidget(d.yes)
	d.AddWidget(d.no)
	d.SetOnLayout(func() {
		inner := d.Inner()
		msg.SetPosition(inner.Pos)
		msg.SetSize(vmath.V2(inner.Size.X, 1))
		y := inner.Pos.Y + inner.Size.Y - 1
		mid := inner.Pos.X + inner.Size.X/2
		d.yes.SetPosition(vmath.V2(mid-9, y))
		d.no.SetPosition(vmath.V2(mid+1, y))
	})
	return d
}

// Result returns the prompt outcome
func (d *ExitDialog) Result() ui.ConfirmResult { return d.state.Result }

// Reset restores the pending prompt with No focused
func (d *ExitDialog) Reset() {
	d.state.Reset()
	d.syncFocus()
}

func (d *ExitDialog) syncFocus() {
	d.yes.SetFocused(d.state.FocusYes)
	d.no.SetFocused(!d.state.FocusYes)
}

func (d *ExitDialog) resolve() {
	if d.state.Result == ui.ConfirmYes && d.bus != nil {
		d.bus.Emit(event.NewText(event.EventExitRequested, "", "", 1))
	}
	d.Hide()
}

// OnUIEvent handles pointer input on the buttons and keyboard input through ConfirmState
func (d *ExitDialog) OnUIEvent(ev ui.UIEvent) bool {
	if !d.Visible() {
		return false
	}
	if ev.IsMouse() {
		return d.Dialog.OnUIEvent(ev)
	}
	if !d.state.HandleEvent(ev) {
		return false
	}
	if d.state.Done() {
		d.resolve()
	} else {
		d.syncFocus()
	}
	return true
}

func (d *ExitDialog) OnGameEvent(event.Event) {}

// wrap breaks text into lines of at most width runes on spaces
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []rune
	line := 0
	lastSpace := -1
	for _, r := range text {
		if r == '\n' {
			out = append(out, r)
			line, lastSpace = 0, -1
			continue
		}
		out = append(out, r)
		line++
		if r == ' ' {
			lastSpace = len(out) - 1
		}
		if line > width {
			if lastSpace >= 0 {
				out[lastSpace] = '\n'
				line = len(out) - 1 - lastSpace
				lastSpace = -1
			} else {
				last := out[len(out)-1]
				out = append(out[:len(out)-1], '\n', last)
				line = 1
			}
		}
	}
	return string(out)
}
