// Package menu is the root of the widget tree. It owns every dialog, lays them
// out from the window size, routes input to the topmost dialog and broadcasts
// game events to all dialogs in creation order.
package menu

import (
	"fmt"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gamesvc-samples/console"
	"github.com/lixenwraith/gamesvc-samples/event"
	"github.com/lixenwraith/gamesvc-samples/sdk"
	"github.com/lixenwraith/gamesvc-samples/ui"
	"github.com/lixenwraith/gamesvc-samples/vmath"
)

// DefaultMargin is the gap between dialogs and the window edge in layout units
const DefaultMargin = 10

// Layers of the top-level dialogs; smaller is nearer
const (
	ConsoleLayer      = ui.DefaultLayer
	SampleLayer       = ui.DefaultLayer - 2
	NotificationLayer = 50
	InviteLayer       = 40
	PopupLayer        = 30
	ExitLayer         = 20
)

// Sample selects which sample dialog sits beside the console
type Sample int

const (
	SampleStore Sample = iota
	SampleLobbies
	SampleSessions
)

// Dialog is a top-level dialog owned by the menu
type Dialog interface {
	ui.Drawable
	ui.Updatable
	ui.Interactive
	OnGameEvent(ev event.Event)
}

// Catalog is the store state the store dialog presents
type Catalog interface {
	User() sdk.AccountID
	Offers() []sdk.Offer
	Entitlements() []sdk.Entitlement
	Owned(offerID string) int
}

// LobbyView is the lobby state and actions the lobby dialog uses
type LobbyView interface {
	CurrentLobby() (sdk.Lobby, bool)
	SearchResults() []sdk.Lobby
	Search(lobbyID string, maxResults int) bool
	CreateLobby(maxMembers int) bool
	JoinLobby(lobbyID string) bool
	LeaveLobby() bool
}

// SessionView is the session state and actions the session dialogs use
type SessionView interface {
	LocalSessions() []sdk.Session
	SearchResults() []sdk.Session
	Search(sessionID string, maxResults int) bool
	PendingInvite() (sdk.SessionInvite, bool)
	HasPresenceSession() bool
	CreateSession(name, level string, maxPlayers int, presence bool) bool
	JoinSession(handle sdk.Handle, presence bool) bool
	DestroySession(name string) bool
	DeclineInvite()
}

// PlayerCount reports how many users are logged in
type PlayerCount interface {
	Num() int
}

// Options wires the menu to the rest of the game
type Options struct {
	Sample   Sample
	Console  *console.Console
	Bus      event.Emitter
	Players  PlayerCount
	Store    Catalog
	Lobbies  LobbyView
	Sessions SessionView
	// Margin overrides DefaultMargin; a terminal window uses a single cell
	Margin float64
}

// Menu is the root dispatcher
type Menu struct {
	opts   Options
	margin float64
	window vmath.Vec2

	console      *ConsoleDialog
	store        *StoreDialog
	lobbies      *LobbyDialog
	sessions     *SessionsDialog
	notification *NotificationDialog
	invite       *SessionInviteReceivedDialog
	popup        *PopupDialog
	exit         *ExitDialog

	dialogs []Dialog
	focused Dialog
	created bool
}

// New builds the dialogs for opts.Sample; Create must run before the first frame
func New(opts Options) *Menu {
	if opts.Console == nil {
		opts.Console = console.New(nil)
	}
	m := &Menu{opts: opts, margin: opts.Margin}
	if m.margin <= 0 {
		m.margin = DefaultMargin
	}

	m.console = NewConsoleDialog(opts.Console)
	m.add(m.console)

	switch opts.Sample {
	case SampleStore:
		if opts.Store != nil {
			m.store = NewStoreDialog(opts.Store, opts.Players, opts.Bus)
			m.add(m.store)
		}
	case SampleLobbies:
		if opts.Lobbies != nil {
			m.lobbies = NewLobbyDialog(opts.Lobbies)
			m.add(m.lobbies)
		}
	case SampleSessions:
		if opts.Sessions != nil {
			m.sessions = NewSessionsDialog(opts.Sessions)
			m.add(m.sessions)
			m.invite = NewSessionInviteReceivedDialog(opts.Sessions, opts.Bus)
			m.add(m.invite)
			m.invite.Hide()
		}
	}

	m.notification = NewNotificationDialog()
	m.add(m.notification)
	m.notification.Hide()

	m.popup = NewPopupDialog()
	m.add(m.popup)
	m.popup.Hide()

	m.exit = NewExitDialog(opts.Bus)
	m.add(m.exit)
	m.exit.Hide()

	m.focus(m.console)
	return m
}

func (m *Menu) add(d Dialog) {
	m.dialogs = append(m.dialogs, d)
}

// Dialogs returns the dialogs in creation order
func (m *Menu) Dialogs() []Dialog {
	return m.dialogs
}

func (m *Menu) Console() *ConsoleDialog              { return m.console }
func (m *Menu) Store() *StoreDialog                  { return m.store }
func (m *Menu) Lobbies() *LobbyDialog                { return m.lobbies }
func (m *Menu) Sessions() *SessionsDialog            { return m.sessions }
func (m *Menu) Notification() *NotificationDialog    { return m.notification }
func (m *Menu) Invite() *SessionInviteReceivedDialog { return m.invite }
func (m *Menu) Popup() *PopupDialog                  { return m.popup }
func (m *Menu) Exit() *ExitDialog                    { return m.exit }
func (m *Menu) Focused() Dialog                      { return m.focused }
func (m *Menu) WindowSize() vmath.Vec2               { return m.window }

// sampleDialog returns the dialog beside the console, nil if none
func (m *Menu) sampleDialog() Dialog {
	switch {
	case m.store != nil:
		return m.store
	case m.lobbies != nil:
		return m.lobbies
	case m.sessions != nil:
		return m.sessions
	}
	return nil
}

// Create creates every dialog in creation order
func (m *Menu) Create() {
	for _, d := range m.dialogs {
		d.Create()
	}
	m.created = true
}

// Release releases every dialog in creation order
func (m *Menu) Release() {
	if !m.created {
		return
	}
	for _, d := range m.dialogs {
		d.Release()
	}
	m.created = false
}

// Update advances every shown dialog
func (m *Menu) Update(dt time.Duration) {
	for _, d := range m.dialogs {
		d.Update(dt)
	}
}

// Render enqueues every shown dialog in creation order; the batch orders by layer
func (m *Menu) Render(b *ui.Batch) {
	for _, d := range m.dialogs {
		d.Render(b)
	}
}

// UpdateLayout recomputes every dialog's geometry from the window size
func (m *Menu) UpdateLayout(width, height int) {
	win := vmath.V2(float64(width), float64(height))
	m.window = win
	gap := m.margin

	consoleSize := vmath.V2(win.X*0.7, win.Y*0.75)
	m.console.SetSize(consoleSize)
	m.console.SetPosition(vmath.V2(gap, win.Y-consoleSize.Y-gap))

	if s := m.sampleDialog(); s != nil {
		cp, cs := m.console.Position(), m.console.Size()
		s.SetSize(vmath.V2(win.X-cs.X-3*gap, cs.Y))
		s.SetPosition(vmath.V2(cp.X+cs.X+gap, cp.Y))
	}

	ns := m.notification.Size()
	m.notification.SetPosition(vmath.V2(win.X-ns.X-3*gap, 3*gap))

	centreAbove(m.popup, win)
	centreAbove(m.exit, win)
	if m.invite != nil {
		centreAbove(m.invite, win)
	}
}

// centreAbove centres d horizontally with its bottom edge on the vertical centre
func centreAbove(d ui.Widget, win vmath.Vec2) {
	size := d.Size()
	d.SetPosition(vmath.V2(win.X/2-size.X/2, win.Y/2-size.Y))
}

// ShowDialog shows d
func (m *Menu) ShowDialog(d ui.Widget) {
	d.Show()
}

// HideDialog hides d and moves focus back to the console if d had it
func (m *Menu) HideDialog(d ui.Widget) {
	d.Hide()
	if dd, ok := d.(Dialog); ok && m.focused == dd {
		m.focus(m.console)
	}
}

// IsShown reports whether d is visible
func (m *Menu) IsShown(d ui.Widget) bool {
	return d.Visible()
}

func (m *Menu) focus(d Dialog) {
	if m.focused == d {
		return
	}
	for _, other := range m.dialogs {
		other.SetFocused(other == d)
	}
	m.focused = d
}

// modal returns the shown popup or exit dialog, which take all input
func (m *Menu) modal() Dialog {
	switch {
	case m.exit.Visible():
		return m.exit
	case m.popup.Visible():
		return m.popup
	case m.invite != nil && m.invite.Visible():
		return m.invite
	}
	return nil
}

// OnUIEvent routes input
// Pointer input goes to the nearest shown dialog under the pointer and focuses it;
// keys go to the focused dialog. Escape closes the modal dialog, declining a
// session invite, or asks to exit. F2 toggles notifications
func (m *Menu) OnUIEvent(ev ui.UIEvent) {
	if ev.Type == ui.KeyPressed {
		switch ev.Key {
		case tcell.KeyEscape:
			if d := m.modal(); d != nil {
				if d == Dialog(m.invite) && m.opts.Sessions != nil {
					m.opts.Sessions.DeclineInvite()
				}
				m.HideDialog(d)
				return
			}
			m.emit(event.New(event.EventExitRequested))
			return
		case tcell.KeyF2:
			m.emit(event.New(event.EventToggleNotification))
			return
		}
	}

	if d := m.modal(); d != nil {
		m.focus(d)
		d.OnUIEvent(ev)
		return
	}

	if !ev.IsMouse() {
		if m.focused == nil || !m.focused.Visible() {
			m.focus(m.console)
		}
		m.focused.OnUIEvent(ev)
		return
	}

	for _, d := range m.hitOrder() {
		if !d.Visible() || !d.Contains(ev.Pos) {
			continue
		}
		if ev.Type == ui.MousePressed {
			m.focus(d)
		}
		d.OnUIEvent(ev)
		return
	}
	// a release outside every dialog still ends a press held by the focused one
	if ev.Type == ui.MouseReleased && m.focused != nil {
		m.focused.OnUIEvent(ev)
	}
}

// hitOrder returns dialogs nearest first; later creation wins on equal layers
func (m *Menu) hitOrder() []Dialog {
	out := slices.Clone(m.dialogs)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b Dialog) int {
		return a.Layer() - b.Layer()
	})
	return out
}

func (m *Menu) emit(ev event.Event) {
	if m.opts.Bus != nil {
		m.opts.Bus.Emit(ev)
	}
}

// OnGameEvent reacts to menu-level events, then broadcasts to every dialog in creation order
func (m *Menu) OnGameEvent(ev event.Event) {
	switch ev.Type() {
	case event.EventToggleNotification:
		if m.IsShown(m.notification) {
			m.HideDialog(m.notification)
		} else {
			m.ShowDialog(m.notification)
		}
	case event.EventShowPopup:
		m.showPopup(ev.Text())
	case event.EventCheckoutFailed:
		m.showPopup(fmt.Sprintf("Checkout failed for offer %s (%s).", ev.Text(), sdk.Result(ev.IntOr(0, int(sdk.UnexpectedError)))))
	case event.EventUserLoginFailed:
		m.showPopup("Login failed: " + ev.Text())
	case event.EventExitRequested:
		if ev.IntOr(0, 0) == 0 {
			m.exit.Reset()
			m.ShowDialog(m.exit)
			m.focus(m.exit)
		}
	case event.EventSessionInviteReceived:
		if m.invite != nil {
			m.invite.SetInviteInfo(ev.Text())
			m.ShowDialog(m.invite)
			m.focus(m.invite)
		}
	case event.EventShowPrevUser, event.EventShowNextUser, event.EventCancelLogin:
		m.updateSample()
	}

	for _, d := range m.dialogs {
		d.OnGameEvent(ev)
	}
}

func (m *Menu) showPopup(text string) {
	m.popup.SetText(text)
	m.ShowDialog(m.popup)
	m.focus(m.popup)
}

// updateSample re-anchors the sample dialog to the console after a user switch
func (m *Menu) updateSample() {
	s := m.sampleDialog()
	if s == nil {
		return
	}
	cp, cs := m.console.Position(), m.console.Size()
	s.SetPosition(vmath.V2(cp.X+cs.X+m.margin, s.Position().Y))
}
