// Package account tracks logged-in users and drives the login flows:
// credential login with optional MFA, logout, and login through an
// external platform ticket.
package account

import (
	"slices"

	"github.com/lixenwraith/gamesvc-samples/event"
	"github.com/lixenwraith/gamesvc-samples/sdk"
)

// Player is a logged-in user
type Player struct {
	ID          sdk.AccountID
	DisplayName string
}

// Players keeps logged-in users in login order and the current selection
// Subscribe it before any component that reads Current during the same event
type Players struct {
	list    []Player
	current int
}

// NewPlayers creates an empty list
func NewPlayers() *Players {
	return &Players{current: -1}
}

// OnGameEvent maintains the list
func (p *Players) OnGameEvent(ev event.Event) {
	id := sdk.AccountID(ev.UserID())
	switch ev.Type() {
	case event.EventUserLoggedIn:
		if i := p.index(id); i >= 0 {
			p.current = i
			return
		}
		p.list = append(p.list, Player{ID: id, DisplayName: string(id)})
		p.current = len(p.list) - 1
	case event.EventUserLoggedOut:
		i := p.index(id)
		if i < 0 {
			return
		}
		p.list = slices.Delete(p.list, i, i+1)
		switch {
		case len(p.list) == 0:
			p.current = -1
		case p.current >= i && p.current > 0:
			p.current--
		}
	case event.EventUserInfoRetrieved:
		if i := p.index(id); i >= 0 && ev.Text() != "" {
			p.list[i].DisplayName = ev.Text()
		}
	case event.EventShowNextUser:
		p.step(1)
	case event.EventShowPrevUser:
		p.step(-1)
	}
}

func (p *Players) step(dir int) {
	if len(p.list) == 0 {
		return
	}
	p.current = (p.current + dir + len(p.list)) % len(p.list)
}

func (p *Players) index(id sdk.AccountID) int {
	return slices.IndexFunc(p.list, func(pl Player) bool { return pl.ID == id })
}

// Current returns the selected user, empty when nobody is logged in
func (p *Players) Current() sdk.AccountID {
	if p.current < 0 || p.current >= len(p.list) {
		return ""
	}
	return p.list[p.current].ID
}

// CurrentPlayer returns the selected player
func (p *Players) CurrentPlayer() (Player, bool) {
	if p.current < 0 || p.current >= len(p.list) {
		return Player{}, false
	}
	return p.list[p.current], true
}

// Num returns how many users are logged in
func (p *Players) Num() int { return len(p.list) }

// All returns the players in login order
func (p *Players) All() []Player { return slices.Clone(p.list) }

// Get looks up a player by id
func (p *Players) Get(id sdk.AccountID) (Player, bool) {
	if i := p.index(id); i >= 0 {
		return p.list[i], true
	}
	return Player{}, false
}
