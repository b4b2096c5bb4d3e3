// Package session tracks the matchmaking sessions held by the local user,
// session search results and the pending session invite.
package session

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/lixenwraith/gamesvc-samples/cache"
	"github.com/lixenwraith/gamesvc-samples/event"
	"github.com/lixenwraith/gamesvc-samples/logging"
	"github.com/lixenwraith/gamesvc-samples/sdk"
	"github.com/lixenwraith/gamesvc-samples/status"
)

// DefaultRefreshInterval is how often local sessions are re-read
const DefaultRefreshInterval = 15 * time.Second

// DefaultMaxPlayers is used when CREATESESSION omits it
const DefaultMaxPlayers = 4

// DefaultSearchResults bounds FINDSESSION results
const DefaultSearchResults = 10

// LevelAttribute is the session attribute carrying the level name
const LevelAttribute = "Level"

// Matchmaking is the session facade
type Matchmaking struct {
	api     sdk.Sessions
	bus     event.Emitter
	log     logging.Logger
	current func() sdk.AccountID
	user    sdk.AccountID

	local     map[string]sdk.Session
	refresh   *cache.Cache[sdk.Session]
	results   []sdk.Session
	searching bool
	invite    *sdk.SessionInvite
	pending   int
	joined    int
	shutdown  bool
	cancel    func()
}

// New creates the facade; interval <= 0 selects DefaultRefreshInterval
func New(api sdk.Sessions, bus event.Emitter, current func() sdk.AccountID, interval time.Duration, reg *status.Registry, log logging.Logger) *Matchmaking {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if log == nil {
		log = logging.Nop()
	}
	m := &Matchmaking{api: api, bus: bus, log: log, current: current, local: make(map[string]sdk.Session)}
	m.refresh = cache.New("sessions", interval, m.queryLocal, reg, log)
	m.refresh.OnUpdate(func(sessions []sdk.Session) {
		local := make(map[string]sdk.Session, len(sessions))
		for _, s := range sessions {
			local[s.Name] = s
		}
		m.local = local
		m.changed()
	})
	return m
}

func (m *Matchmaking) queryLocal(done func(sdk.Result, []sdk.Session)) bool {
	if m.user == "" || m.shutdown || m.pending > 0 {
		return false
	}
	m.api.QuerySessions(m.user, done)
	return true
}

// SubscribeToGameInvites starts listening for session invites
func (m *Matchmaking) SubscribeToGameInvites() {
	if m.cancel == nil {
		m.cancel = m.api.SubscribeInvites(m.onInvite)
	}
}

func (m *Matchmaking) onInvite(inv sdk.SessionInvite) {
	if inv.To != m.user {
		return
	}
	m.invite = &inv
	name := inv.FromName
	if name == "" {
		name = string(inv.From)
	}
	m.log.Log("Session invite received from %s", name)
	m.bus.Emit(event.NewText(event.EventSessionInviteReceived, string(inv.From), name))
}

// Update drives the periodic refresh of local sessions
func (m *Matchmaking) Update(dt time.Duration) {
	if m.shutdown {
		return
	}
	m.refresh.Update(dt)
}

// OnGameEvent follows the current user and accepts invites
func (m *Matchmaking) OnGameEvent(ev event.Event) {
	switch ev.Type() {
	case event.EventUserLoggedIn, event.EventShowPrevUser, event.EventShowNextUser, event.EventUserLoggedOut:
		next := sdk.AccountID("")
		if m.current != nil {
			next = m.current()
		}
		if next == m.user {
			return
		}
		m.user = next
		m.local = make(map[string]sdk.Session)
		m.results = nil
		m.invite = nil
		m.refresh.Clear()
		if next != "" {
			m.refresh.SetDirty()
		}
		m.changed()
	case event.EventSessionInviteAccepted:
		if m.invite == nil {
			m.log.LogError("No pending session invite.")
			return
		}
		m.JoinSession(m.invite.InviteID, ev.IntOr(0, 0) == 1)
		m.invite = nil
	}
}

// CreateSession creates a session under a local name
func (m *Matchmaking) CreateSession(name, level string, maxPlayers int, presence bool) bool {
	if !m.requireUser("CreateSession") {
		return false
	}
	if _, exists := m.local[name]; exists {
		m.log.LogError("Session %s already exists.", name)
		return false
	}
	var attrs []sdk.Attribute
	if level != "" {
		attrs = append(attrs, sdk.Attribute{Key: LevelAttribute, Value: level})
	}
	user := m.user
	m.pending++
	m.api.CreateSession(user, name, maxPlayers, presence, attrs, func(r sdk.Result, s sdk.Session) {
		m.pending--
		m.added("Create session "+name, user, r, s)
	})
	return true
}

// Search looks up a session by id; results replace the previous ones
func (m *Matchmaking) Search(sessionID string, maxResults int) bool {
	if !m.requireUser("Search") {
		return false
	}
	if m.searching {
		m.log.LogWarning("Session search already in progress")
		return false
	}
	m.searching = true
	user := m.user
	m.api.Search(user, sessionID, maxResults, func(r sdk.Result, found []sdk.Session) {
		m.searching = false
		if user != m.user {
			return
		}
		if r != sdk.Success {
			m.log.LogError("Session search for %s failed: %s", sessionID, r)
			return
		}
		m.results = found
		m.bus.Emit(event.NewText(event.EventSessionSearchFinished, string(user), sessionID, len(found)))
	})
	return true
}

// JoinSession joins the session behind handle, taken from search results or an invite
func (m *Matchmaking) JoinSession(handle sdk.Handle, presence bool) bool {
	if !m.requireUser("JoinSession") {
		return false
	}
	if handle == "" {
		m.log.LogError("JoinSession: invalid session handle")
		return false
	}
	if presence && m.HasPresenceSession() {
		m.log.LogWarning("Presence session already exists, joining without presence")
		presence = false
	}
	m.joined++
	name := fmt.Sprintf("Joined%d", m.joined)
	user := m.user
	m.pending++
	m.api.JoinSession(user, name, handle, presence, func(r sdk.Result, s sdk.Session) {
		m.pending--
		m.added("Join session", user, r, s)
	})
	return true
}

func (m *Matchmaking) added(what string, user sdk.AccountID, r sdk.Result, s sdk.Session) {
	if r != sdk.Success {
		m.log.LogError("%s failed: %s", what, r)
		return
	}
	if user != m.user || m.shutdown {
		m.api.DestroySession(user, s.Name, func(sdk.Result) {})
		return
	}
	m.local[s.Name] = s
	m.log.Log("%s succeeded: %s (%s)", what, s.Name, s.ID)
	m.bus.Emit(event.NewText(event.EventSessionJoined, string(user), s.Name))
	m.changed()
}

// DestroySession destroys a local session by name
func (m *Matchmaking) DestroySession(name string) bool {
	if _, ok := m.local[name]; !ok {
		m.log.LogError("No session named %s.", name)
		return false
	}
	user := m.user
	m.pending++
	m.api.DestroySession(user, name, func(r sdk.Result) {
		m.pending--
		if r != sdk.Success && r != sdk.NotFound {
			m.log.LogError("Destroy session %s failed: %s", name, r)
			return
		}
		if user == m.user {
			delete(m.local, name)
			m.changed()
		}
	})
	return true
}

// OnShutdown destroys every local session
func (m *Matchmaking) OnShutdown() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.refresh.Clear()
	m.shutdown = true
	for _, name := range slices.Sorted(maps.Keys(m.local)) {
		m.DestroySession(name)
	}
}

// HasActiveLocalSessions reports whether sessions remain or requests are outstanding
func (m *Matchmaking) HasActiveLocalSessions() bool {
	return len(m.local) > 0 || m.pending > 0
}

// HasPresenceSession reports whether a local session carries presence
func (m *Matchmaking) HasPresenceSession() bool {
	for _, s := range m.local {
		if s.Presence {
			return true
		}
	}
	return false
}

// Session returns a local session by name
func (m *Matchmaking) Session(name string) (sdk.Session, bool) {
	s, ok := m.local[name]
	return s, ok
}

// LocalSessions returns local sessions sorted by name
func (m *Matchmaking) LocalSessions() []sdk.Session {
	out := make([]sdk.Session, 0, len(m.local))
	for _, name := range slices.Sorted(maps.Keys(m.local)) {
		out = append(out, m.local[name])
	}
	return out
}

// SearchResults returns the last search results
func (m *Matchmaking) SearchResults() []sdk.Session { return m.results }

// PendingInvite returns the invite awaiting an answer
func (m *Matchmaking) PendingInvite() (sdk.SessionInvite, bool) {
	if m.invite == nil {
		return sdk.SessionInvite{}, false
	}
	return *m.invite, true
}

// InviteSessionHandle returns the handle of the pending invite, empty if none
func (m *Matchmaking) InviteSessionHandle() sdk.Handle {
	if m.invite == nil {
		return ""
	}
	return m.invite.InviteID
}

// DeclineInvite drops the pending invite
func (m *Matchmaking) DeclineInvite() {
	m.invite = nil
}

func (m *Matchmaking) changed() {
	m.bus.Emit(event.NewText(event.EventSessionsUpdated, string(m.user), "", len(m.local)))
}

func (m *Matchmaking) requireUser(op string) bool {
	if m.user == "" {
		m.log.LogError("%s: no user logged in", op)
		return false
	}
	if m.shutdown {
		m.log.LogError("%s: shutting down", op)
		return false
	}
	return true
}
