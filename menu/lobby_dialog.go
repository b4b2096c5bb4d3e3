package menu

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/gamesvc-samples/event"
	"github.com/lixenwraith/gamesvc-samples/lobby"
	"github.com/lixenwraith/gamesvc-samples/sdk"
	"github.com/lixenwraith/gamesvc-samples/ui"
	"github.com/lixenwraith/gamesvc-samples/vmath"
)

// LobbyDialog shows the current lobby and lobby search results
type LobbyDialog struct {
	*ui.Dialog
	lobbies LobbyView

	current *ui.Label
	create  *ui.Button
	leave   *ui.Button
	search  *ui.TextField
	results *ui.List
	join    *ui.Button
}

// NewLobbyDialog creates the lobby sample dialog
func NewLobbyDialog(lobbies LobbyView) *LobbyDialog {
	d := &LobbyDialog{
		Dialog:  ui.NewDialog(vmath.Vec2{}, vmath.V2(40, 20), SampleLayer, "Lobbies"),
		lobbies: lobbies,
	}
	layer := SampleLayer - 1
	d.current = ui.NewLabel(vmath.Vec2{}, vmath.Vec2{}, layer, "")
	d.create = ui.NewButton(vmath.Vec2{}, vmath.V2(10, 1), layer, "Create")
	d.create.SetOnPressed(func() { d.lobbies.CreateLobby(lobby.DefaultMaxMembers) })
	d.leave = ui.NewButton(vmath.Vec2{}, vmath.V2(9, 1), layer, "Leave")
	d.leave.SetOnPressed(func() { d.lobbies.LeaveLobby() })

	d.search = ui.NewTextField(vmath.Vec2{}, vmath.Vec2{}, layer, "Find: ")
	d.search.Placeholder = "lobby id"
	d.search.SetOnSubmit(func(id string) {
		d.search.SetValue(id)
		d.lobbies.Search(id, 1)
	})
	d.results = ui.NewList(vmath.Vec2{}, vmath.Vec2{}, layer)
	d.results.SetOnSelect(func(int) { d.refreshButtons() })
	d.join = ui.NewButton(vmath.Vec2{}, vmath.V2(8, 1), layer, "Join")
	d.join.SetOnPressed(d.joinSelected)

	d.AddWidget(d.current)
	d.AddWidget(d.create)
	d.AddWidget(d.leave)
	d.AddWidget(d.search)
	d.AddWidget(d.results)
	d.AddWidget(d.join)
	d.SetOnLayout(d.layout)
	d.Refresh()
	return d
}

func (d *LobbyDialog) layout() {
	inner := d.Inner()
	x, y, w := inner.Pos.X, inner.Pos.Y, inner.Size.X
	d.current.SetPosition(vmath.V2(x, y))
	d.current.SetSize(vmath.V2(w, 4))
	d.create.SetPosition(vmath.V2(x, y+4))
	d.leave.SetPosition(vmath.V2(x+11, y+4))
	d.search.SetPosition(vmath.V2(x, y+6))
	d.search.SetSize(vmath.V2(w, 1))
	listH := max(inner.Size.Y-9, 0)
	d.results.SetPosition(vmath.V2(x, y+7))
	d.results.SetSize(vmath.V2(w, listH))
	d.join.SetPosition(vmath.V2(x, y+7+listH+1))
}

// Current returns the current-lobby label
func (d *LobbyDialog) Current() *ui.Label { return d.current }

// Results returns the search result list
func (d *LobbyDialog) Results() *ui.List { return d.results }

// CreateButton returns the create button
func (d *LobbyDialog) CreateButton() *ui.Button { return d.create }

// LeaveButton returns the leave button
func (d *LobbyDialog) LeaveButton() *ui.Button { return d.leave }

// JoinButton returns the join button
func (d *LobbyDialog) JoinButton() *ui.Button { return d.join }

func (d *LobbyDialog) joinSelected() {
	found := d.lobbies.SearchResults()
	if i := d.results.Selected(); i >= 0 && i < len(found) {
		d.lobbies.JoinLobby(found[i].ID)
	}
}

// Refresh redraws the dialog from the lobby facade
func (d *LobbyDialog) Refresh() {
	if l, ok := d.lobbies.CurrentLobby(); ok {
		d.current.SetText(DescribeLobby(l))
	} else {
		d.current.SetText("Not in a lobby")
	}

	d.results.Clear()
	for _, l := range d.lobbies.SearchResults() {
		text := fmt.Sprintf("%s  %s  %d/%d", l.ID, l.Owner, len(l.Members), l.MaxMembers)
		d.results.AddRow(l.ID, ui.NewLabel(vmath.Vec2{}, vmath.V2(d.results.Size().X, 1), 0, text))
	}
	if len(d.results.Shown()) > 0 {
		d.results.Select(0)
	}
	d.refreshButtons()
}

func (d *LobbyDialog) refreshButtons() {
	_, in := d.lobbies.CurrentLobby()
	if in {
		d.create.Disable()
		d.leave.Enable()
	} else {
		d.create.Enable()
		d.leave.Disable()
	}
	if d.results.Selected() >= 0 {
		d.join.Enable()
	} else {
		d.join.Disable()
	}
}

// DescribeLobby renders the lobby id, owner and members on separate lines
func DescribeLobby(l sdk.Lobby) string {
	members := make([]string, len(l.Members))
	for i, m := range l.Members {
		members[i] = string(m)
	}
	return fmt.Sprintf("Lobby: %s\nOwner: %s\nMembers: %d/%d\n%s",
		l.ID, l.Owner, len(l.Members), l.MaxMembers, strings.Join(members, ", "))
}

func (d *LobbyDialog) OnGameEvent(ev event.Event) {
	switch ev.Type() {
	case event.EventLobbyJoined, event.EventLobbyLeft, event.EventLobbyUpdated, event.EventLobbySearchFinished,
		event.EventUserLoggedIn, event.EventUserLoggedOut, event.EventShowPrevUser, event.EventShowNextUser:
		d.Refresh()
	}
}
