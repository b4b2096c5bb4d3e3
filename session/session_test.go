package session

import (
	"testing"

	"github.com/lixenwraith/gamesvc-samples/event"
	"github.com/lixenwraith/gamesvc-samples/logging"
	"github.com/lixenwraith/gamesvc-samples/sdk"
	"github.com/lixenwraith/gamesvc-samples/sdk/local"
)

type fixture struct {
	backend *local.Backend
	rec     *event.Recorder
	log     *logging.Recorder
	mm      *Matchmaking
	user    sdk.AccountID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{backend: local.New(local.Options{}), rec: &event.Recorder{}, log: logging.NewRecorder()}
	f.mm = New(f.backend.Sessions(), f.rec, func() sdk.AccountID { return f.user }, 0, nil, f.log)
	f.mm.SubscribeToGameInvites()
	return f
}

func (f *fixture) login(t *testing.T, id string) sdk.AccountID {
	t.Helper()
	var acc sdk.AccountID
	f.backend.Auth().Login(sdk.Credentials{ID: id, Token: "pw"}, func(_ sdk.Result, a sdk.AccountID) { acc = a })
	f.backend.Tick()
	if acc == "" {
		t.Fatalf("Login %s failed", id)
	}
	return acc
}

func (f *fixture) loginCurrent(t *testing.T, id string) {
	t.Helper()
	f.user = f.login(t, id)
	f.mm.OnGameEvent(event.NewUser(event.EventUserLoggedIn, string(f.user)))
}

func TestCreateSessionAndPresence(t *testing.T) {
	f := newFixture(t)
	f.loginCurrent(t, "alice")

	if !f.mm.CreateSession("Main", "Forest", DefaultMaxPlayers, true) {
		t.Fatal("Create not issued")
	}
	if !f.mm.HasActiveLocalSessions() {
		t.Error("Pending create not counted as active")
	}
	f.backend.Tick()

	s, ok := f.mm.Session("Main")
	if !ok {
		t.Fatal("Session missing")
	}
	if lvl, _ := s.Attribute("LEVEL"); lvl != "Forest" {
		t.Errorf("Level = %q", lvl)
	}
	if !f.mm.HasPresenceSession() {
		t.Error("HasPresenceSession = false")
	}
	if f.rec.Count(event.EventSessionJoined) != 1 {
		t.Errorf("Events = %v", f.rec.Types())
	}
	if f.mm.CreateSession("Main", "", 2, false) {
		t.Error("Duplicate name accepted")
	}
}

func TestInviteAcceptJoinsWithPresence(t *testing.T) {
	f := newFixture(t)
	alice := f.login(t, "alice")
	var host sdk.Session
	f.backend.Sessions().CreateSession(alice, "Host", 4, false, nil, func(_ sdk.Result, s sdk.Session) { host = s })
	f.backend.Tick()

	f.loginCurrent(t, "bob")
	h := f.backend.InviteToSession(alice, "Alice", f.user, host.ID)
	f.backend.Tick()

	inv, ok := f.mm.PendingInvite()
	if !ok || inv.InviteID != h || f.mm.InviteSessionHandle() != h {
		t.Fatalf("PendingInvite = %+v, %v", inv, ok)
	}
	if ev, ok := f.rec.Last(event.EventSessionInviteReceived); !ok || ev.Text() != "Alice" {
		t.Errorf("Invite event = %v", ev)
	}

	f.mm.OnGameEvent(event.NewText(event.EventSessionInviteAccepted, "", "", 1))
	if _, ok := f.mm.PendingInvite(); ok {
		t.Error("Invite still pending after accept")
	}
	f.backend.Tick()

	sessions := f.mm.LocalSessions()
	if len(sessions) != 1 || sessions[0].ID != host.ID || !sessions[0].Presence {
		t.Errorf("LocalSessions = %+v", sessions)
	}
}

func TestAcceptWithoutInvite(t *testing.T) {
	f := newFixture(t)
	f.loginCurrent(t, "alice")
	f.mm.OnGameEvent(event.New(event.EventSessionInviteAccepted))
	if f.backend.CallCount(sdk.OpSessionJoin) != 0 {
		t.Error("Join issued without invite")
	}
	if !f.log.Contains(logging.LevelError, "No pending session invite") {
		t.Error("Missing error")
	}
}

func TestShutdownDestroysEverySession(t *testing.T) {
	f := newFixture(t)
	f.loginCurrent(t, "alice")
	f.mm.CreateSession("A", "", 2, false)
	f.mm.CreateSession("B", "", 2, false)
	f.backend.Tick()

	f.mm.OnShutdown()
	if n := f.backend.CallCount(sdk.OpSessionDestroy); n != 2 {
		t.Errorf("Destroy calls = %d", n)
	}
	if !f.mm.HasActiveLocalSessions() {
		t.Fatal("Inactive before destroys completed")
	}
	f.backend.Tick()
	if f.mm.HasActiveLocalSessions() {
		t.Errorf("Still active: %+v", f.mm.LocalSessions())
	}
	if f.mm.CreateSession("C", "", 2, false) {
		t.Error("Create accepted during shutdown")
	}
}

func TestSearchReplacesResults(t *testing.T) {
	f := newFixture(t)
	f.loginCurrent(t, "alice")
	f.mm.CreateSession("Main", "", 2, false)
	f.backend.Tick()
	s, _ := f.mm.Session("Main")

	f.mm.Search(s.ID, DefaultSearchResults)
	f.backend.Tick()
	if len(f.mm.SearchResults()) != 1 {
		t.Fatalf("Results = %+v", f.mm.SearchResults())
	}
	f.mm.Search("missing", DefaultSearchResults)
	f.backend.Tick()
	if len(f.mm.SearchResults()) != 0 {
		t.Errorf("Results not replaced: %+v", f.mm.SearchResults())
	}
}

func TestUserSwitchResets(t *testing.T) {
	f := newFixture(t)
	f.loginCurrent(t, "alice")
	f.mm.CreateSession("Main", "", 2, false)
	f.backend.Tick()

	f.loginCurrent(t, "bob")
	if len(f.mm.LocalSessions()) != 0 {
		t.Error("Sessions of the previous user kept")
	}
	ev, ok := f.rec.Last(event.EventSessionsUpdated)
	if !ok || ev.IntOr(0, -1) != 0 {
		t.Errorf("SessionsUpdated = %v", ev)
	}
}
