package menu

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/gamesvc-samples/event"
	"github.com/lixenwraith/gamesvc-samples/sdk"
	"github.com/lixenwraith/gamesvc-samples/session"
	"github.com/lixenwraith/gamesvc-samples/ui"
	"github.com/lixenwraith/gamesvc-samples/vmath"
)

// SessionsDialog lists local sessions and session search results
type SessionsDialog struct {
	*ui.Dialog
	sessions SessionView

	create   *ui.TextField
	presence *ui.Checkbox
	local    *ui.List
	destroy  *ui.Button
	search   *ui.TextField
	results  *ui.List
	join     *ui.Button
}

// NewSessionsDialog creates the session sample dialog
func NewSessionsDialog(sessions SessionView) *SessionsDialog {
	d := &SessionsDialog{
		Dialog:   ui.NewDialog(vmath.Vec2{}, vmath.V2(40, 20), SampleLayer, "Sessions"),
		sessions: sessions,
	}
	layer := SampleLayer - 1

	d.create = ui.NewTextField(vmath.Vec2{}, vmath.Vec2{}, layer, "New: ")
	d.create.Placeholder = "name [level]"
	d.create.SetOnSubmit(d.createSession)
	d.presence = ui.NewCheckbox(vmath.Vec2{}, vmath.Vec2{}, layer, "Presence")
	d.local = ui.NewList(vmath.Vec2{}, vmath.Vec2{}, layer)
	d.local.SetOnSelect(func(int) { d.refreshButtons() })
	d.destroy = ui.NewButton(vmath.Vec2{}, vmath.V2(10, 1), layer, "Destroy")
	d.destroy.SetOnPressed(d.destroySelected)

	d.search = ui.NewTextField(vmath.Vec2{}, vmath.Vec2{}, layer, "Find: ")
	d.search.Placeholder = "session id"
	d.search.SetOnSubmit(func(id string) {
		d.search.SetValue(id)
		d.sessions.Search(id, session.DefaultSearchResults)
	})
	d.results = ui.NewList(vmath.Vec2{}, vmath.Vec2{}, layer)
	d.results.SetOnSelect(func(int) { d.refreshButtons() })
	d.join = ui.NewButton(vmath.Vec2{}, vmath.V2(8, 1), layer, "Join")
	d.join.SetOnPressed(d.joinSelected)

	d.AddWidget(d.create)
	d.AddWidget(d.presence)
	d.AddWidget(d.local)
	d.AddWidget(d.destroy)
	d.AddWidget(d.search)
	d.AddWidget(d.results)
	d.AddWidget(d.join)
	d.SetOnLayout(d.layout)
	d.Refresh()
	return d
}

func (d *SessionsDialog) layout() {
	inner := d.Inner()
	x, y, w := inner.Pos.X, inner.Pos.Y, inner.Size.X
	half := max(float64(int((inner.Size.Y-6)/2)), 0)

	d.create.SetPosition(vmath.V2(x, y))
	d.create.SetSize(vmath.V2(w, 1))
	d.presence.SetPosition(vmath.V2(x, y+1))
	d.presence.SetSize(vmath.V2(w, 1))
	d.local.SetPosition(vmath.V2(x, y+2))
	d.local.SetSize(vmath.V2(w, half))
	d.destroy.SetPosition(vmath.V2(x, y+2+half))

	y += 3 + half
	d.search.SetPosition(vmath.V2(x, y))
	d.search.SetSize(vmath.V2(w, 1))
	d.results.SetPosition(vmath.V2(x, y+1))
	d.results.SetSize(vmath.V2(w, half))
	d.join.SetPosition(vmath.V2(x, y+1+half))
}

// Local returns the local session list
func (d *SessionsDialog) Local() *ui.List { return d.local }

// Results returns the search result list
func (d *SessionsDialog) Results() *ui.List { return d.results }

// CreateField returns the new-session field
func (d *SessionsDialog) CreateField() *ui.TextField { return d.create }

// Presence returns the presence checkbox used for create and join
func (d *SessionsDialog) Presence() *ui.Checkbox { return d.presence }

// DestroyButton returns the destroy button
func (d *SessionsDialog) DestroyButton() *ui.Button { return d.destroy }

// JoinButton returns the join button
func (d *SessionsDialog) JoinButton() *ui.Button { return d.join }

func (d *SessionsDialog) createSession(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	level := ""
	if len(fields) > 1 {
		level = fields[1]
	}
	if d.sessions.CreateSession(fields[0], level, session.DefaultMaxPlayers, d.presence.IsTicked()) {
		d.create.Clear()
	}
}

func (d *SessionsDialog) destroySelected() {
	local := d.sessions.LocalSessions()
	if i := d.local.Selected(); i >= 0 && i < len(local) {
		d.sessions.DestroySession(local[i].Name)
	}
}

func (d *SessionsDialog) joinSelected() {
	found := d.sessions.SearchResults()
	if i := d.results.Selected(); i >= 0 && i < len(found) {
		d.sessions.JoinSession(found[i].Handle, d.presence.IsTicked())
	}
}

// Refresh redraws both lists from the session facade
func (d *SessionsDialog) Refresh() {
	fill := func(list *ui.List, sessions []sdk.Session, key func(sdk.Session) string) {
		list.Clear()
		for _, s := range sessions {
			list.AddRow(key(s), ui.NewLabel(vmath.Vec2{}, vmath.V2(list.Size().X, 1), 0, DescribeSession(s)))
		}
		if len(list.Shown()) > 0 {
			list.Select(0)
		}
	}
	fill(d.local, d.sessions.LocalSessions(), func(s sdk.Session) string { return s.Name })
	fill(d.results, d.sessions.SearchResults(), func(s sdk.Session) string { return s.ID })

	if d.sessions.HasPresenceSession() {
		d.presence.SetTicked(false)
		d.presence.Disable()
	} else {
		d.presence.Enable()
	}
	d.refreshButtons()
}

func (d *SessionsDialog) refreshButtons() {
	if d.local.Selected() >= 0 {
		d.destroy.Enable()
	} else {
		d.destroy.Disable()
	}
	if d.results.Selected() >= 0 {
		d.join.Enable()
	} else {
		d.join.Disable()
	}
}

// DescribeSession renders a one-line summary of s
func DescribeSession(s sdk.Session) string {
	var b strings.Builder
	if s.Name != "" {
		fmt.Fprintf(&b, "%s ", s.Name)
	}
	fmt.Fprintf(&b, "[%s] %s %d/%d", s.ID, s.State, s.NumPlayers, s.MaxPlayers)
	if level, ok := s.Attribute(session.LevelAttribute); ok {
		fmt.Fprintf(&b, " %s", level)
	}
	if s.Presence {
		b.WriteString(" *")
	}
	return b.String()
}

func (d *SessionsDialog) OnGameEvent(ev event.Event) {
	switch ev.Type() {
	case event.EventSessionsUpdated, event.EventSessionJoined, event.EventSessionSearchFinished,
		event.EventUserLoggedIn, event.EventUserLoggedOut, event.EventShowPrevUser, event.EventShowNextUser:
		d.Refresh()
	}
}

// SessionInviteReceivedDialog asks whether to join the session behind a pending invite
type SessionInviteReceivedDialog struct {
	*ui.Dialog
	sessions SessionView
	bus      event.Emitter

	info     *ui.Label
	presence *ui.Checkbox
	accept   *ui.Button
	decline  *ui.Button
}

// NewSessionInviteReceivedDialog creates the invite prompt
func NewSessionInviteReceivedDialog(sessions SessionView, bus event.Emitter) *SessionInviteReceivedDialog {
	d := &SessionInviteReceivedDialog{
		Dialog:   ui.NewDialog(vmath.Vec2{}, vmath.V2(50, 7), InviteLayer, "Session invite"),
		sessions: sessions,
		bus:      bus,
	}
	layer := InviteLayer - 1
	d.info = ui.NewLabel(vmath.Vec2{}, vmath.Vec2{}, layer, "")
	d.presence = ui.NewCheckbox(vmath.Vec2{}, vmath.Vec2{}, layer, "Presence")
	d.accept = ui.NewButton(vmath.Vec2{}, vmath.V2(10, 1), layer, "Accept")
	d.accept.SetOnPressed(d.Accept)
	d.decline = ui.NewButton(vmath.Vec2{}, vmath.V2(10, 1), layer, "Decline")
	d.decline.SetOnPressed(d.Decline)

	d.AddWidget(d.info)
	d.AddWidget(d.presence)
	d.AddWidget(d.accept)
	d.AddWidget(d.decline)
	d.SetOnLayout(func() {
		inner := d.Inner()
		x, y, w := inner.Pos.X, inner.Pos.Y, inner.Size.X
		d.info.SetPosition(vmath.V2(x, y))
		d.info.SetSize(vmath.V2(w, 2))
		d.presence.SetPosition(vmath.V2(x, y+2))
		d.presence.SetSize(vmath.V2(w, 1))
		bottom := y + inner.Size.Y - 1
		d.accept.SetPosition(vmath.V2(x+w/2-11, bottom))
		d.decline.SetPosition(vmath.V2(x+w/2+1, bottom))
	})
	return d
}

// SetInviteInfo fills the prompt from the pending invite sent by friendName
// Presence is offered only while no local session carries it
func (d *SessionInviteReceivedDialog) SetInviteInfo(friendName string) {
	level := ""
	if inv, ok := d.sessions.PendingInvite(); ok {
		level, _ = inv.Session.Attribute(session.LevelAttribute)
	}
	d.info.SetText(fmt.Sprintf("Session invite received from: %s Level: %s", friendName, level))

	if d.sessions.HasPresenceSession() {
		d.presence.SetTicked(false)
		d.presence.Disable()
	} else {
		d.presence.Enable()
		d.presence.SetTicked(true)
	}
}

// Text returns the prompt text
func (d *SessionInviteReceivedDialog) Text() string { return d.info.Text }

// Presence returns the presence checkbox
func (d *SessionInviteReceivedDialog) Presence() *ui.Checkbox { return d.presence }

// Accept joins the invited session and closes the prompt
func (d *SessionInviteReceivedDialog) Accept() {
	presence := 0
	if d.presence.IsTicked() {
		presence = 1
	}
	if d.bus != nil {
		d.bus.Emit(event.NewText(event.EventSessionInviteAccepted, "", "", presence))
	}
	d.Hide()
}

// Decline drops the invite and closes the prompt
func (d *SessionInviteReceivedDialog) Decline() {
	d.sessions.DeclineInvite()
	d.Hide()
}

// SetFocused gives Accept the Enter key
func (d *SessionInviteReceivedDialog) SetFocused(focused bool) {
	d.Dialog.SetFocused(focused)
	d.accept.SetFocused(focused)
}

func (d *SessionInviteReceivedDialog) OnGameEvent(event.Event) {}
