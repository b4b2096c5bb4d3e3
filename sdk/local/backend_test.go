package local

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/gamesvc-samples/sdk"
)

func login(t *testing.T, b *Backend, id string) sdk.AccountID {
	t.Helper()
	var got sdk.AccountID
	var res sdk.Result = -1
	b.Auth().Login(sdk.Credentials{Type: sdk.CredentialDevToken, ID: id, Token: "tok"}, func(r sdk.Result, acc sdk.AccountID) {
		res, got = r, acc
	})
	b.Tick()
	if res != sdk.Success {
		t.Fatalf("Login %s: %v", id, res)
	}
	return got
}

func TestLatencyInTicks(t *testing.T) {
	b := New(Options{LatencyTicks: 3})
	done := false
	b.Auth().Login(sdk.Credentials{ID: "a", Token: "p"}, func(sdk.Result, sdk.AccountID) { done = true })

	for i := 1; i <= 2; i++ {
		b.Tick()
		if done {
			t.Fatalf("Completed after %d ticks", i)
		}
	}
	b.Tick()
	if !done {
		t.Fatal("Not completed after 3 ticks")
	}
	if b.Pending() != 0 {
		t.Errorf("Pending = %d", b.Pending())
	}
}

func TestCallbacksOnlyRunInTick(t *testing.T) {
	b := New(Options{})
	done := false
	b.Auth().Login(sdk.Credentials{ID: "a", Token: "p"}, func(sdk.Result, sdk.AccountID) { done = true })
	if done {
		t.Fatal("Callback ran synchronously")
	}
	b.Tick()
	if !done {
		t.Fatal("Callback did not run in Tick")
	}
}

func TestLoginMFA(t *testing.T) {
	b := New(Options{MFA: map[string]string{"alice": "1234"}})
	var results []sdk.Result
	cb := func(r sdk.Result, _ sdk.AccountID) { results = append(results, r) }

	b.Auth().Login(sdk.Credentials{ID: "alice", Token: "pw"}, cb)
	b.Auth().Login(sdk.Credentials{ID: "alice", Token: "pw", MFACode: "0000"}, cb)
	b.Auth().Login(sdk.Credentials{ID: "alice", Token: "pw", MFACode: "1234"}, cb)
	b.Auth().Login(sdk.Credentials{ID: "bob"}, cb)
	b.Tick()

	want := []sdk.Result{sdk.AuthMFARequired, sdk.InvalidAuth, sdk.Success, sdk.InvalidAuth}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("Results mismatch (-want +got):\n%s", diff)
	}
}

func TestFailureInjectionIsOneShot(t *testing.T) {
	b := New(Options{})
	user := login(t, b, "alice")
	b.Fail(sdk.OpOffers, sdk.NoConnection)

	var results []sdk.Result
	cb := func(r sdk.Result, _ []sdk.Offer) { results = append(results, r) }
	b.Ecom().QueryOffers(user, cb)
	b.Ecom().QueryOffers(user, cb)
	b.Tick()

	if diff := cmp.Diff([]sdk.Result{sdk.NoConnection, sdk.Success}, results); diff != "" {
		t.Errorf("Results mismatch (-want +got):\n%s", diff)
	}
	if n := b.CallCount(sdk.OpOffers); n != 2 {
		t.Errorf("CallCount = %d", n)
	}
}

func TestCheckoutGrantsEntitlementAndEnforcesLimit(t *testing.T) {
	b := New(Options{})
	user := login(t, b, "alice")

	var results []sdk.Result
	cb := func(r sdk.Result, _ string) { results = append(results, r) }
	b.Ecom().Checkout(user, []string{"offer-sword"}, cb)
	b.Ecom().Checkout(user, []string{"offer-sword"}, cb)
	b.Ecom().Checkout(user, []string{"missing"}, cb)
	b.Ecom().Checkout(user, []string{"offer-season"}, cb)
	b.Tick()

	want := []sdk.Result{sdk.Success, sdk.LimitExceeded, sdk.NotFound, sdk.InvalidParameters}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("Results mismatch (-want +got):\n%s", diff)
	}

	var ents []sdk.Entitlement
	b.Ecom().QueryEntitlements(user, func(_ sdk.Result, e []sdk.Entitlement) { ents = e })
	b.Tick()
	if len(ents) != 1 || ents[0].CatalogItemID != "offer-sword" {
		t.Errorf("Entitlements = %+v", ents)
	}
}

func TestOffersRequireLogin(t *testing.T) {
	b := New(Options{})
	var res sdk.Result
	b.Ecom().QueryOffers("nobody", func(r sdk.Result, _ []sdk.Offer) { res = r })
	b.Tick()
	if res != sdk.InvalidUser {
		t.Errorf("Result = %v", res)
	}
}

func TestLobbyLifecycle(t *testing.T) {
	b := New(Options{})
	alice := login(t, b, "alice")
	bob := login(t, b, "bob")

	var updates []sdk.Lobby
	b.Lobbies().SubscribeUpdates(func(l sdk.Lobby) { updates = append(updates, l) })

	var lobby sdk.Lobby
	b.Lobbies().CreateLobby(alice, 2, func(r sdk.Result, l sdk.Lobby) { lobby = l })
	b.Tick()
	if lobby.ID == "" || lobby.Owner != alice {
		t.Fatalf("Created lobby = %+v", lobby)
	}

	var found []sdk.Lobby
	b.Lobbies().Search(bob, lobby.ID, 1, func(_ sdk.Result, ls []sdk.Lobby) { found = ls })
	b.Tick()
	if len(found) != 1 {
		t.Fatalf("Search found %d", len(found))
	}

	var joinRes sdk.Result
	b.Lobbies().JoinLobby(bob, lobby.ID, func(r sdk.Result, _ sdk.Lobby) { joinRes = r })
	b.Tick()
	if joinRes != sdk.Success || len(updates) != 1 || len(updates[0].Members) != 2 {
		t.Fatalf("Join = %v, updates = %+v", joinRes, updates)
	}

	b.Lobbies().LeaveLobby(alice, lobby.ID, func(sdk.Result) {})
	b.Tick()
	if len(updates) != 2 || updates[1].Owner != bob {
		t.Errorf("Owner not transferred: %+v", updates)
	}
}

func TestSessionInviteAndJoin(t *testing.T) {
	b := New(Options{})
	alice := login(t, b, "alice")
	bob := login(t, b, "bob")

	var created sdk.Session
	b.Sessions().CreateSession(alice, "Main", 4, true, []sdk.Attribute{{Key: "Level", Value: "Forest"}}, func(_ sdk.Result, s sdk.Session) { created = s })
	b.Tick()

	var invites []sdk.SessionInvite
	b.Sessions().SubscribeInvites(func(inv sdk.SessionInvite) { invites = append(invites, inv) })
	h := b.InviteToSession(alice, "alice", bob, created.ID)
	if h == "" {
		t.Fatal("Invite handle empty")
	}
	b.Tick()
	if len(invites) != 1 || invites[0].InviteID != h {
		t.Fatalf("Invites = %+v", invites)
	}

	var joined sdk.Session
	b.Sessions().JoinSession(bob, "Joined", h, true, func(_ sdk.Result, s sdk.Session) { joined = s })
	b.Tick()
	if joined.ID != created.ID || joined.NumPlayers != 2 || !joined.Presence {
		t.Fatalf("Joined = %+v", joined)
	}

	var local []sdk.Session
	b.Sessions().QuerySessions(bob, func(_ sdk.Result, ss []sdk.Session) { local = ss })
	b.Tick()
	if len(local) != 1 || local[0].Name != "Joined" {
		t.Errorf("Local sessions = %+v", local)
	}

	var destroyRes sdk.Result = -1
	b.Sessions().DestroySession(alice, "Main", func(r sdk.Result) { destroyRes = r })
	b.Tick()
	if destroyRes != sdk.Success {
		t.Errorf("Destroy = %v", destroyRes)
	}
}

func TestTicketRequestAndCancel(t *testing.T) {
	b := New(Options{})
	var responses []sdk.TicketResponse
	b.Tickets().OnTicketResponse(func(r sdk.TicketResponse) { responses = append(responses, r) })

	h, err := b.Tickets().RequestTicket()
	if err != nil {
		t.Fatal(err)
	}
	b.Tick()
	if len(responses) != 1 || responses[0].Handle != h || len(responses[0].Ticket) != TicketSize {
		t.Fatalf("Responses = %+v", responses)
	}
	if b.ActiveTickets() != 1 {
		t.Errorf("ActiveTickets = %d", b.ActiveTickets())
	}
	b.Tickets().CancelTicket(h)
	if b.ActiveTickets() != 0 {
		t.Errorf("ActiveTickets after cancel = %d", b.ActiveTickets())
	}
}

func TestReleaseFailsRequests(t *testing.T) {
	b := New(Options{})
	b.Release()
	if b.IsInitialized() {
		t.Fatal("Still initialized")
	}
	if _, err := b.Tickets().RequestTicket(); err == nil {
		t.Error("Expected error from released backend")
	}
}
