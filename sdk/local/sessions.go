package local

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/google/uuid"

	"github.com/lixenwraith/gamesvc-samples/sdk"
)

type sessionAPI struct{ b *Backend }

// view returns s as seen through the local name; b.mu must be held
func view(s *sdk.Session, name string) sdk.Session {
	c := *s
	c.Name = name
	c.Attributes = slices.Clone(s.Attributes)
	return c
}

func (a *sessionAPI) CreateSession(user sdk.AccountID, name string, maxPlayers int, presence bool, attrs []sdk.Attribute, cb func(sdk.Result, sdk.Session)) {
	b := a.b
	attrs = slices.Clone(attrs)
	b.request(sdk.OpSessionCreate, user, []string{name, strconv.Itoa(maxPlayers), strconv.FormatBool(presence)}, func(r sdk.Result) {
		b.mu.Lock()
		var out sdk.Session
		switch {
		case r != sdk.Success:
		case !b.loggedIn(user):
			r = sdk.InvalidUser
		case name == "" || maxPlayers < 1:
			r = sdk.InvalidParameters
		case b.localID(user, name) != "":
			r = sdk.InvalidParameters
		case presence && b.hasPresence(user):
			r = sdk.LimitExceeded
		default:
			s := &sdk.Session{
				ID:         uuid.NewString(),
				Handle:     sdk.Handle(uuid.NewString()),
				Owner:      user,
				State:      sdk.SessionPending,
				MaxPlayers: maxPlayers,
				NumPlayers: 1,
				Presence:   presence,
				Attributes: attrs,
			}
			b.sessions[s.ID] = s
			b.bind(user, name, s.ID)
			out = view(s, name)
		}
		b.mu.Unlock()
		cb(r, out)
	})
}

func (a *sessionAPI) QuerySessions(user sdk.AccountID, cb func(sdk.Result, []sdk.Session)) {
	b := a.b
	b.request(sdk.OpSessionQuery, user, nil, func(r sdk.Result) {
		b.mu.Lock()
		var out []sdk.Session
		if r == sdk.Success {
			if !b.loggedIn(user) {
				r = sdk.InvalidUser
			} else {
				for name, id := range b.local[user] {
					if s, ok := b.sessions[id]; ok {
						out = append(out, view(s, name))
					}
				}
				slices.SortFunc(out, func(x, y sdk.Session) int { return cmp.Compare(x.Name, y.Name) })
			}
		}
		b.mu.Unlock()
		cb(r, out)
	})
}

func (a *sessionAPI) Search(user sdk.AccountID, sessionID string, maxResults int, cb func(sdk.Result, []sdk.Session)) {
	b := a.b
	b.request(sdk.OpSessionSearch, user, []string{sessionID, strconv.Itoa(maxResults)}, func(r sdk.Result) {
		b.mu.Lock()
		var out []sdk.Session
		switch {
		case r != sdk.Success:
		case !b.loggedIn(user):
			r = sdk.InvalidUser
		case sessionID == "" || maxResults < 1:
			r = sdk.InvalidParameters
		default:
			if s, ok := b.sessions[sessionID]; ok {
				out = append(out, view(s, ""))
			}
		}
		b.mu.Unlock()
		cb(r, out)
	})
}

func (a *sessionAPI) JoinSession(user sdk.AccountID, name string, handle sdk.Handle, presence bool, cb func(sdk.Result, sdk.Session)) {
	b := a.b
	b.request(sdk.OpSessionJoin, user, []string{name, string(handle), strconv.FormatBool(presence)}, func(r sdk.Result) {
		b.mu.Lock()
		var out sdk.Session
		s := b.byHandle(handle)
		switch {
		case r != sdk.Success:
		case !b.loggedIn(user):
			r = sdk.InvalidUser
		case s == nil:
			r = sdk.NotFound
		case name == "" || b.localID(user, name) != "":
			r = sdk.InvalidParameters
		case s.NumPlayers >= s.MaxPlayers:
			r = sdk.LimitExceeded
		case presence && b.hasPresence(user):
			r = sdk.LimitExceeded
		default:
			s.NumPlayers++
			b.bind(user, name, s.ID)
			delete(b.inviteTarget, handle)
			out = view(s, name)
			out.Presence = presence
		}
		b.mu.Unlock()
		cb(r, out)
	})
}

func (a *sessionAPI) DestroySession(user sdk.AccountID, name string, cb func(sdk.Result)) {
	b := a.b
	b.request(sdk.OpSessionDestroy, user, []string{name}, func(r sdk.Result) {
		b.mu.Lock()
		if r == sdk.Success {
			id := b.localID(user, name)
			if id == "" {
				r = sdk.NotFound
			} else {
				delete(b.local[user], name)
				if s, ok := b.sessions[id]; ok {
					s.NumPlayers--
					if s.Owner == user || s.NumPlayers <= 0 {
						delete(b.sessions, id)
					}
				}
			}
		}
		b.mu.Unlock()
		cb(r)
	})
}

func (a *sessionAPI) SubscribeInvites(fn func(sdk.SessionInvite)) func() {
	return a.b.sessionInvites.Add(fn)
}

// InviteToSession pushes an invite to sessionID on the next Tick
// Returns an empty handle when the session does not exist; safe from any goroutine
func (b *Backend) InviteToSession(from sdk.AccountID, fromName string, to sdk.AccountID, sessionID string) sdk.Handle {
	b.mu.Lock()
	s, ok := b.sessions[sessionID]
	if !ok {
		b.mu.Unlock()
		return ""
	}
	h := sdk.Handle(uuid.NewString())
	b.inviteTarget[h] = sessionID
	inv := sdk.SessionInvite{InviteID: h, From: from, FromName: fromName, To: to, Session: view(s, "")}
	b.mu.Unlock()

	b.completions.Defer(func() { b.sessionInvites.Notify(inv) })
	return h
}

func (b *Backend) localID(user sdk.AccountID, name string) string {
	return b.local[user][name]
}

func (b *Backend) bind(user sdk.AccountID, name, id string) {
	m := b.local[user]
	if m == nil {
		m = make(map[string]string)
		b.local[user] = m
	}
	m[name] = id
}

func (b *Backend) hasPresence(user sdk.AccountID) bool {
	for _, id := range b.local[user] {
		if s, ok := b.sessions[id]; ok && s.Presence && s.Owner == user {
			return true
		}
	}
	return false
}

// byHandle resolves a search handle or an invite handle
func (b *Backend) byHandle(h sdk.Handle) *sdk.Session {
	if id, ok := b.inviteTarget[h]; ok {
		return b.sessions[id]
	}
	for _, s := range b.sessions {
		if s.Handle == h {
			return s
		}
	}
	return nil
}
