package local

import (
	"slices"
	"strconv"

	"github.com/google/uuid"

	"github.com/lixenwraith/gamesvc-samples/sdk"
)

type lobbyAPI struct{ b *Backend }

func cloneLobby(l *sdk.Lobby) sdk.Lobby {
	c := *l
	c.Members = slices.Clone(l.Members)
	c.Attributes = slices.Clone(l.Attributes)
	return c
}

func (a *lobbyAPI) CreateLobby(user sdk.AccountID, maxMembers int, cb func(sdk.Result, sdk.Lobby)) {
	b := a.b
	b.request(sdk.OpLobbyCreate, user, []string{strconv.Itoa(maxMembers)}, func(r sdk.Result) {
		b.mu.Lock()
		var out sdk.Lobby
		switch {
		case r != sdk.Success:
		case !b.loggedIn(user):
			r = sdk.InvalidUser
		case maxMembers < 1:
			r = sdk.InvalidParameters
		default:
			l := &sdk.Lobby{ID: uuid.NewString(), Owner: user, MaxMembers: maxMembers, Members: []sdk.AccountID{user}}
			b.lobbies[l.ID] = l
			out = cloneLobby(l)
		}
		b.mu.Unlock()
		cb(r, out)
	})
}

func (a *lobbyAPI) JoinLobby(user sdk.AccountID, lobbyID string, cb func(sdk.Result, sdk.Lobby)) {
	b := a.b
	b.request(sdk.OpLobbyJoin, user, []string{lobbyID}, func(r sdk.Result) {
		b.mu.Lock()
		var out sdk.Lobby
		joined := false
		l, ok := b.lobbies[lobbyID]
		switch {
		case r != sdk.Success:
		case !b.loggedIn(user):
			r = sdk.InvalidUser
		case !ok:
			r = sdk.NotFound
		case slices.Contains(l.Members, user):
			out = cloneLobby(l)
		case len(l.Members) >= l.MaxMembers:
			r = sdk.LimitExceeded
		default:
			l.Members = append(l.Members, user)
			out = cloneLobby(l)
			joined = true
		}
		b.mu.Unlock()
		cb(r, out)
		if joined {
			b.lobbyUpdates.Notify(out)
		}
	})
}

func (a *lobbyAPI) LeaveLobby(user sdk.AccountID, lobbyID string, cb func(sdk.Result)) {
	b := a.b
	b.request(sdk.OpLobbyLeave, user, []string{lobbyID}, func(r sdk.Result) {
		b.mu.Lock()
		var update *sdk.Lobby
		l, ok := b.lobbies[lobbyID]
		switch {
		case r != sdk.Success:
		case !ok || !slices.Contains(l.Members, user):
			r = sdk.NotFound
		default:
			i := slices.Index(l.Members, user)
			l.Members = slices.Delete(l.Members, i, i+1)
			if len(l.Members) == 0 {
				delete(b.lobbies, lobbyID)
			} else {
				if l.Owner == user {
					l.Owner = l.Members[0]
				}
				c := cloneLobby(l)
				update = &c
			}
		}
		b.mu.Unlock()
		cb(r)
		if update != nil {
			b.lobbyUpdates.Notify(*update)
		}
	})
}

func (a *lobbyAPI) CopyLobby(user sdk.AccountID, lobbyID string, cb func(sdk.Result, sdk.Lobby)) {
	b := a.b
	b.request(sdk.OpLobbyCopy, user, []string{lobbyID}, func(r sdk.Result) {
		b.mu.Lock()
		var out sdk.Lobby
		l, ok := b.lobbies[lobbyID]
		switch {
		case r != sdk.Success:
		case !ok || !slices.Contains(l.Members, user):
			r = sdk.NotFound
		default:
			out = cloneLobby(l)
		}
		b.mu.Unlock()
		cb(r, out)
	})
}

func (a *lobbyAPI) Search(user sdk.AccountID, lobbyID string, maxResults int, cb func(sdk.Result, []sdk.Lobby)) {
	b := a.b
	b.request(sdk.OpLobbySearch, user, []string{lobbyID, strconv.Itoa(maxResults)}, func(r sdk.Result) {
		b.mu.Lock()
		var found []sdk.Lobby
		switch {
		case r != sdk.Success:
		case !b.loggedIn(user):
			r = sdk.InvalidUser
		case lobbyID == "" || maxResults < 1:
			r = sdk.InvalidParameters
		default:
			if l, ok := b.lobbies[lobbyID]; ok {
				found = append(found, cloneLobby(l))
			}
		}
		b.mu.Unlock()
		cb(r, found)
	})
}

func (a *lobbyAPI) SubscribeInvites(fn func(sdk.LobbyInvite)) func() {
	return a.b.lobbyInvites.Add(fn)
}

func (a *lobbyAPI) SubscribeUpdates(fn func(sdk.Lobby)) func() {
	return a.b.lobbyUpdates.Add(fn)
}

// InviteToLobby pushes a lobby invite to the subscribers on the next Tick
// Safe from any goroutine
func (b *Backend) InviteToLobby(from, to sdk.AccountID, lobbyID string) sdk.Handle {
	inv := sdk.LobbyInvite{InviteID: sdk.Handle(uuid.NewString()), LobbyID: lobbyID, From: from, To: to}
	b.completions.Defer(func() { b.lobbyInvites.Notify(inv) })
	return inv.InviteID
}
