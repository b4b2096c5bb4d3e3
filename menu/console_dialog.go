package menu

import (
	"sync"
	"time"

	"github.com/lixenwraith/gamesvc-samples/console"
	"github.com/lixenwraith/gamesvc-samples/event"
	"github.com/lixenwraith/gamesvc-samples/logging"
	"github.com/lixenwraith/gamesvc-samples/ui"
	"github.com/lixenwraith/gamesvc-samples/vmath"
)

// ConsoleScrollback is the number of log lines the console keeps
const ConsoleScrollback = 1000

// ConsoleDialog shows the debug log and feeds typed lines to the console
// It is a logging.Sink; entries may arrive from any goroutine and are moved
// into the view on Update
type ConsoleDialog struct {
	*ui.Dialog
	con   *console.Console
	view  *ui.TextView
	input *ui.TextField

	mu      sync.Mutex
	pending []logging.Entry
}

// NewConsoleDialog creates the console dialog running lines through con
func NewConsoleDialog(con *console.Console) *ConsoleDialog {
	d := &ConsoleDialog{
		Dialog: ui.NewDialog(vmath.Vec2{}, vmath.V2(60, 20), ConsoleLayer, "Console"),
		con:    con,
	}
	d.view = ui.NewTextView(vmath.Vec2{}, vmath.Vec2{}, ConsoleLayer-1, ConsoleScrollback)
	d.input = ui.NewTextField(vmath.Vec2{}, vmath.Vec2{}, ConsoleLayer-1, "> ")
	d.input.Placeholder = "Type HELP for commands"
	d.input.SetOnSubmit(func(line string) {
		d.view.ScrollToBottom()
		d.con.Run(line)
	})
	con.SetOnClear(d.view.Clear)

	d.AddWidget(d.view)
	d.AddWidget(d.input)
	d.SetOnLayout(d.layout)
	d.layout()
	return d
}

func (d *ConsoleDialog) layout() {
	inner := d.Inner()
	rows := max(inner.Size.Y-1, 0)
	d.view.SetPosition(inner.Pos)
	d.view.SetSize(vmath.V2(inner.Size.X, rows))
	d.input.SetPosition(vmath.V2(inner.Pos.X, inner.Pos.Y+rows))
	d.input.SetSize(vmath.V2(inner.Size.X, 1))
}

// View returns the log output view
func (d *ConsoleDialog) View() *ui.TextView { return d.view }

// Input returns the command line
func (d *ConsoleDialog) Input() *ui.TextField { return d.input }

// Write queues a log entry for display
func (d *ConsoleDialog) Write(e logging.Entry) {
	d.mu.Lock()
	d.pending = append(d.pending, e)
	d.mu.Unlock()
}

// Flush moves queued log entries into the view
func (d *ConsoleDialog) Flush() {
	d.mu.Lock()
	entries := d.pending
	d.pending = nil
	d.mu.Unlock()

	for _, e := range entries {
		style := ui.DefaultTheme.Text
		switch e.Level {
		case logging.LevelWarning:
			style = ui.DefaultTheme.Warning
		case logging.LevelError:
			style = ui.DefaultTheme.Error
		}
		d.view.AddStyled(e.Message, style)
	}
}

// Update flushes log entries even while hidden so nothing is lost
func (d *ConsoleDialog) Update(dt time.Duration) {
	d.Flush()
	d.Dialog.Update(dt)
}

// SetFocused also gives the command line keyboard focus
func (d *ConsoleDialog) SetFocused(focused bool) {
	d.Dialog.SetFocused(focused)
	d.input.SetFocused(focused)
	d.view.SetFocused(focused)
}

func (d *ConsoleDialog) OnGameEvent(ev event.Event) {
	switch ev.Type() {
	case event.EventUserLoginRequiresMFA:
		d.view.AddStyled("Multi-factor authentication required: enter MFA <code>", ui.DefaultTheme.Warning)
	case event.EventNewUserLogin:
		d.view.AddStyled("Log in another user with: LOGIN <id> <token>", ui.DefaultTheme.Hint)
	}
}
