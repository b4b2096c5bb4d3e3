// Package lobby tracks the current lobby of the local user, lobby search
// results and incoming invites.
package lobby

import (
	"time"

	"github.com/lixenwraith/gamesvc-samples/cache"
	"github.com/lixenwraith/gamesvc-samples/event"
	"github.com/lixenwraith/gamesvc-samples/logging"
	"github.com/lixenwraith/gamesvc-samples/sdk"
	"github.com/lixenwraith/gamesvc-samples/status"
)

// DefaultRefreshInterval is how often the current lobby is re-read
const DefaultRefreshInterval = 10 * time.Second

// DefaultMaxMembers is used when CREATELOBBY omits the size
const DefaultMaxMembers = 4

// Lobbies is the lobby facade
type Lobbies struct {
	api     sdk.Lobbies
	bus     event.Emitter
	log     logging.Logger
	current func() sdk.AccountID
	user    sdk.AccountID

	lobby      sdk.Lobby
	inLobby    bool
	refresh    *cache.Cache[sdk.Lobby]
	results    []sdk.Lobby
	searching  bool
	lastSearch string
	joining    bool
	leaving    bool
	shutdown   bool
	invites    []sdk.LobbyInvite
	cancels    []func()
}

// New creates the facade; interval <= 0 selects DefaultRefreshInterval
func New(api sdk.Lobbies, bus event.Emitter, current func() sdk.AccountID, interval time.Duration, reg *status.Registry, log logging.Logger) *Lobbies {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if log == nil {
		log = logging.Nop()
	}
	l := &Lobbies{api: api, bus: bus, log: log, current: current}
	l.refresh = cache.New("lobby", interval, l.queryCurrent, reg, log)
	l.refresh.OnUpdate(func(items []sdk.Lobby) {
		if len(items) == 1 && l.inLobby && items[0].ID == l.lobby.ID {
			l.setLobby(items[0])
		}
	})
	l.refresh.OnFailure(func(r sdk.Result) {
		if r == sdk.NotFound && l.inLobby {
			l.log.LogWarning("Lobby %s no longer exists", l.lobby.ID)
			l.forget()
		}
	})
	return l
}

func (l *Lobbies) queryCurrent(done func(sdk.Result, []sdk.Lobby)) bool {
	if !l.inLobby || l.leaving || l.user == "" {
		return false
	}
	l.api.CopyLobby(l.user, l.lobby.ID, func(r sdk.Result, lobby sdk.Lobby) {
		done(r, []sdk.Lobby{lobby})
	})
	return true
}

// Subscribe starts listening for invites and pushed lobby updates
func (l *Lobbies) Subscribe() {
	l.cancels = append(l.cancels,
		l.api.SubscribeInvites(l.onInvite),
		l.api.SubscribeUpdates(l.onUpdate),
	)
}

// Unsubscribe stops both subscriptions
func (l *Lobbies) Unsubscribe() {
	for _, cancel := range l.cancels {
		cancel()
	}
	l.cancels = nil
}

func (l *Lobbies) onInvite(inv sdk.LobbyInvite) {
	if inv.To != l.user {
		return
	}
	l.invites = append(l.invites, inv)
	l.log.Log("Lobby invite to %s from %s", inv.LobbyID, inv.From)
	l.bus.Emit(event.NewText(event.EventLobbyInviteReceived, string(inv.From), inv.LobbyID))
}

func (l *Lobbies) onUpdate(lobby sdk.Lobby) {
	if l.inLobby && lobby.ID == l.lobby.ID {
		l.setLobby(lobby)
	}
}

// Update drives the periodic refresh of the current lobby
func (l *Lobbies) Update(dt time.Duration) {
	l.refresh.Update(dt)
}

// OnGameEvent follows the current user
func (l *Lobbies) OnGameEvent(ev event.Event) {
	switch ev.Type() {
	case event.EventUserLoggedIn, event.EventShowPrevUser, event.EventShowNextUser, event.EventUserLoggedOut:
		next := sdk.AccountID("")
		if l.current != nil {
			next = l.current()
		}
		if next == l.user {
			return
		}
		if l.inLobby && !l.leaving {
			prev, id := l.user, l.lobby.ID
			l.api.LeaveLobby(prev, id, func(r sdk.Result) {
				if r != sdk.Success {
					l.log.LogWarning("Leave lobby %s for %s: %s", id, prev, r)
				}
			})
		}
		if l.inLobby {
			l.forget()
		}
		l.user = next
		l.results = nil
		l.invites = nil
	}
}

// CurrentLobby returns the lobby the user is in
func (l *Lobbies) CurrentLobby() (sdk.Lobby, bool) {
	return l.lobby, l.inLobby
}

// SearchResults returns the last search results
func (l *Lobbies) SearchResults() []sdk.Lobby { return l.results }

// LastSearch returns the id of the most recent search
func (l *Lobbies) LastSearch() string { return l.lastSearch }

// Invites returns received, unanswered invites
func (l *Lobbies) Invites() []sdk.LobbyInvite { return l.invites }

// Search looks up lobbies by id; results replace the previous ones
func (l *Lobbies) Search(lobbyID string, maxResults int) bool {
	if !l.requireUser("Search") {
		return false
	}
	if l.searching {
		l.log.LogWarning("Lobby search already in progress")
		return false
	}
	l.searching = true
	l.lastSearch = lobbyID
	user := l.user
	l.api.Search(user, lobbyID, maxResults, func(r sdk.Result, found []sdk.Lobby) {
		l.searching = false
		if user != l.user {
			return
		}
		if r != sdk.Success {
			l.log.LogError("Lobby search for %s failed: %s", lobbyID, r)
			return
		}
		l.results = found
		if len(found) == 0 {
			l.log.Log("No lobby found for %s", lobbyID)
		}
		l.bus.Emit(event.NewText(event.EventLobbySearchFinished, string(user), lobbyID, len(found)))
	})
	return true
}

// CreateLobby creates a lobby owned by the current user and enters it
func (l *Lobbies) CreateLobby(maxMembers int) bool {
	if !l.canEnter("CreateLobby") {
		return false
	}
	l.joining = true
	user := l.user
	l.api.CreateLobby(user, maxMembers, func(r sdk.Result, lobby sdk.Lobby) {
		l.entered("Create lobby", user, r, lobby)
	})
	return true
}

// JoinLobby enters an existing lobby
func (l *Lobbies) JoinLobby(lobbyID string) bool {
	if !l.canEnter("JoinLobby") {
		return false
	}
	l.joining = true
	user := l.user
	l.api.JoinLobby(user, lobbyID, func(r sdk.Result, lobby sdk.Lobby) {
		l.entered("Join lobby "+lobbyID, user, r, lobby)
	})
	return true
}

// AcceptInvite joins the lobby of the oldest pending invite
func (l *Lobbies) AcceptInvite() bool {
	if len(l.invites) == 0 {
		l.log.LogError("No pending lobby invite.")
		return false
	}
	inv := l.invites[0]
	if !l.JoinLobby(inv.LobbyID) {
		return false
	}
	l.invites = l.invites[1:]
	return true
}

func (l *Lobbies) canEnter(op string) bool {
	if !l.requireUser(op) {
		return false
	}
	if l.inLobby || l.joining {
		l.log.LogError("%s: already in a lobby", op)
		return false
	}
	return true
}

func (l *Lobbies) entered(what string, user sdk.AccountID, r sdk.Result, lobby sdk.Lobby) {
	l.joining = false
	if r != sdk.Success {
		l.log.LogError("%s failed: %s", what, r)
		return
	}
	if user != l.user {
		// User switched while in flight; leave what we just entered
		l.api.LeaveLobby(user, lobby.ID, func(sdk.Result) {})
		return
	}
	l.inLobby = true
	l.lobby = lobby
	l.refresh.Clear()
	l.log.Log("Entered lobby %s", lobby.ID)
	l.bus.Emit(event.NewText(event.EventLobbyJoined, string(user), lobby.ID, len(lobby.Members)))
	if l.shutdown {
		l.LeaveLobby()
	}
}

// LeaveLobby leaves the current lobby
func (l *Lobbies) LeaveLobby() bool {
	if !l.inLobby {
		l.log.LogError("No current lobby.")
		return false
	}
	if l.leaving {
		return false
	}
	l.leaving = true
	id := l.lobby.ID
	l.api.LeaveLobby(l.user, id, func(r sdk.Result) {
		l.leaving = false
		if r != sdk.Success && r != sdk.NotFound {
			l.log.LogError("Leave lobby %s failed: %s", id, r)
			return
		}
		if l.inLobby && l.lobby.ID == id {
			l.forget()
		}
	})
	return true
}

// OnShutdown leaves the current lobby before the platform is released
// A create or join still in flight leaves the lobby once it is entered
func (l *Lobbies) OnShutdown() {
	l.shutdown = true
	l.Unsubscribe()
	if l.inLobby && !l.leaving {
		l.LeaveLobby()
	}
}

// IsReadyToShutdown reports whether no lobby is held and no enter or leave is pending
func (l *Lobbies) IsReadyToShutdown() bool {
	return !l.inLobby && !l.leaving && !l.joining
}

func (l *Lobbies) setLobby(lobby sdk.Lobby) {
	l.lobby = lobby
	l.bus.Emit(event.NewText(event.EventLobbyUpdated, string(l.user), lobby.ID, len(lobby.Members)))
}

func (l *Lobbies) forget() {
	id := l.lobby.ID
	l.inLobby = false
	l.lobby = sdk.Lobby{}
	l.refresh.Clear()
	l.bus.Emit(event.NewText(event.EventLobbyLeft, string(l.user), id))
}

func (l *Lobbies) requireUser(op string) bool {
	if l.user == "" {
		l.log.LogError("%s: no user logged in", op)
		return false
	}
	return true
}
