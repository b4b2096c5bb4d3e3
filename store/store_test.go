package store

import (
	"testing"
	"time"

	"github.com/lixenwraith/gamesvc-samples/event"
	"github.com/lixenwraith/gamesvc-samples/logging"
	"github.com/lixenwraith/gamesvc-samples/sdk"
	"github.com/lixenwraith/gamesvc-samples/sdk/local"
)

const frame = 16 * time.Millisecond

type fixture struct {
	backend *local.Backend
	rec     *event.Recorder
	store   *Store
	user    sdk.AccountID
	log     *logging.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{backend: local.New(local.Options{}), rec: &event.Recorder{}, log: logging.NewRecorder()}
	f.store = New(f.backend.Ecom(), f.rec, func() sdk.AccountID { return f.user }, 0, nil, f.log)
	return f
}

func (f *fixture) login(t *testing.T, id string) {
	t.Helper()
	f.backend.Auth().Login(sdk.Credentials{ID: id, Token: "pw"}, func(r sdk.Result, acc sdk.AccountID) {
		if r != sdk.Success {
			t.Fatalf("Login: %v", r)
		}
		f.user = acc
	})
	f.backend.Tick()
	f.store.OnGameEvent(event.NewUser(event.EventUserLoggedIn, string(f.user)))
}

// step runs one frame: SDK tick then store update
func (f *fixture) step() {
	f.backend.Tick()
	f.store.Update(frame)
}

func TestNoQueryWithoutUser(t *testing.T) {
	f := newFixture(t)
	f.step()
	f.step()
	if n := f.backend.CallCount(sdk.OpOffers); n != 0 {
		t.Errorf("Queried offers %d times without a user", n)
	}
}

func TestLoginRefreshesCatalogAndEntitlements(t *testing.T) {
	f := newFixture(t)
	f.login(t, "alice")
	if !f.store.IsDirty() {
		t.Fatal("Store not dirty after login")
	}

	f.step() // issue
	f.step() // complete

	if len(f.store.Offers()) != len(local.DefaultCatalog()) {
		t.Errorf("Offers = %d", len(f.store.Offers()))
	}
	if f.rec.Count(event.EventCatalogUpdated) != 1 || f.rec.Count(event.EventEntitlementsUpdated) != 1 {
		t.Errorf("Events = %v", f.rec.Types())
	}
	if f.store.IsDirty() {
		t.Error("Still dirty after refresh")
	}

	// No refresh before the interval elapses
	f.step()
	if n := f.backend.CallCount(sdk.OpOffers); n != 1 {
		t.Errorf("Offers queried %d times", n)
	}
}

func TestTimedRefresh(t *testing.T) {
	f := newFixture(t)
	f.login(t, "alice")
	f.step()
	f.step()

	f.store.Update(DefaultRefreshInterval)
	if n := f.backend.CallCount(sdk.OpOffers); n != 2 {
		t.Errorf("Offers queried %d times after interval", n)
	}
}

func TestCheckoutFlow(t *testing.T) {
	f := newFixture(t)
	f.login(t, "alice")
	f.step()
	f.step()

	f.store.OnGameEvent(event.NewText(event.EventCheckoutRequested, "", "offer-sword"))
	if f.store.PendingCheckouts() != 1 {
		t.Fatal("Checkout not issued")
	}
	f.step() // checkout completes, entitlements re-queried
	f.step() // entitlements arrive

	if _, ok := f.rec.Last(event.EventCheckoutComplete); !ok {
		t.Fatalf("No CheckoutComplete in %v", f.rec.Types())
	}
	if f.store.Owned("offer-sword") != 1 {
		t.Errorf("Owned = %d", f.store.Owned("offer-sword"))
	}

	f.store.Checkout("offer-sword")
	f.step()
	ev, ok := f.rec.Last(event.EventCheckoutFailed)
	if !ok || ev.Text() != "offer-sword" || ev.IntOr(0, -1) != int(sdk.LimitExceeded) {
		t.Errorf("CheckoutFailed = %v, %v", ev, ok)
	}
	if !f.log.Contains(logging.LevelError, "failed") {
		t.Error("Failure not logged")
	}
}

func TestCheckoutWithoutUser(t *testing.T) {
	f := newFixture(t)
	if f.store.Checkout("offer-sword") {
		t.Error("Checkout issued without a user")
	}
	if !f.log.Contains(logging.LevelError, "no user") {
		t.Error("Missing error log")
	}
}

func TestLogoutClearsData(t *testing.T) {
	f := newFixture(t)
	f.login(t, "alice")
	f.step()
	f.step()

	prev := f.user
	f.user = ""
	f.store.OnGameEvent(event.NewUser(event.EventUserLoggedOut, string(prev)))

	if len(f.store.Offers()) != 0 || f.store.User() != "" {
		t.Errorf("Data kept after logout: %d offers, user %q", len(f.store.Offers()), f.store.User())
	}
}

func TestQueryFailureKeepsCatalog(t *testing.T) {
	f := newFixture(t)
	f.login(t, "alice")
	f.step()
	f.step()
	before := f.store.CatalogVersion()

	f.backend.Fail(sdk.OpOffers, sdk.NoConnection)
	f.store.SetDirty()
	f.step()
	f.step()

	if f.store.CatalogVersion() != before {
		t.Error("Catalog replaced by a failed query")
	}
	if len(f.store.Offers()) == 0 {
		t.Error("Catalog dropped on failure")
	}
}
