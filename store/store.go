// Package store keeps the catalog and entitlements of the current user and
// places checkout requests.
package store

import (
	"slices"
	"time"

	"github.com/lixenwraith/gamesvc-samples/cache"
	"github.com/lixenwraith/gamesvc-samples/event"
	"github.com/lixenwraith/gamesvc-samples/logging"
	"github.com/lixenwraith/gamesvc-samples/sdk"
	"github.com/lixenwraith/gamesvc-samples/status"
)

// DefaultRefreshInterval is how often the store re-queries without a dirty trigger
const DefaultRefreshInterval = 300 * time.Second

// CurrentUserFunc reports the user the store serves, empty when nobody is logged in
type CurrentUserFunc func() sdk.AccountID

// Store is the store facade
type Store struct {
	ecom    sdk.Ecom
	bus     event.Emitter
	log     logging.Logger
	current CurrentUserFunc
	user    sdk.AccountID

	catalog      *cache.Cache[sdk.Offer]
	entitlements *cache.Cache[sdk.Entitlement]
	checkouts    int
}

// New creates a store; interval <= 0 selects DefaultRefreshInterval
func New(ecom sdk.Ecom, bus event.Emitter, current CurrentUserFunc, interval time.Duration, reg *status.Registry, log logging.Logger) *Store {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if log == nil {
		log = logging.Nop()
	}
	s := &Store{ecom: ecom, bus: bus, log: log, current: current}

	s.catalog = cache.New("catalog", interval, s.queryOffers, reg, log)
	s.catalog.OnUpdate(func(offers []sdk.Offer) {
		s.log.Log("Store: %d offer(s) for %s", len(offers), s.user)
		s.bus.Emit(event.NewText(event.EventCatalogUpdated, string(s.user), "", len(offers)))
	})
	s.entitlements = cache.New("entitlements", interval, s.queryEntitlements, reg, log)
	s.entitlements.OnUpdate(func(ents []sdk.Entitlement) {
		s.bus.Emit(event.NewText(event.EventEntitlementsUpdated, string(s.user), "", len(ents)))
	})
	return s
}

func (s *Store) queryOffers(done func(sdk.Result, []sdk.Offer)) bool {
	if s.user == "" {
		return false
	}
	s.ecom.QueryOffers(s.user, done)
	return true
}

func (s *Store) queryEntitlements(done func(sdk.Result, []sdk.Entitlement)) bool {
	if s.user == "" {
		return false
	}
	s.ecom.QueryEntitlements(s.user, done)
	return true
}

// Update drives both caches
func (s *Store) Update(dt time.Duration) {
	s.catalog.Update(dt)
	s.entitlements.Update(dt)
}

// OnGameEvent reacts to account and checkout events
func (s *Store) OnGameEvent(ev event.Event) {
	switch ev.Type() {
	case event.EventUserLoggedIn, event.EventShowPrevUser, event.EventShowNextUser:
		s.follow()
	case event.EventUserLoggedOut:
		if sdk.AccountID(ev.UserID()) == s.user {
			s.follow()
		}
	case event.EventCheckoutRequested:
		s.Checkout(ev.Text())
	}
}

// follow switches to the current user, dropping data that belonged to the previous one
func (s *Store) follow() {
	next := sdk.AccountID("")
	if s.current != nil {
		next = s.current()
	}
	if next != s.user {
		s.catalog.Clear()
		s.entitlements.Clear()
		s.user = next
	}
	if s.user != "" {
		s.SetDirty()
	}
}

// SetDirty forces both caches to refresh on the next Update
func (s *Store) SetDirty() {
	s.catalog.SetDirty()
	s.entitlements.SetDirty()
}

// IsDirty reports whether either cache is waiting to refresh
func (s *Store) IsDirty() bool {
	return s.catalog.Dirty() || s.entitlements.Dirty()
}

// Checkout requests purchase of offerID for the current user
// Completion emits CheckoutComplete or CheckoutFailed; returns false if not issued
func (s *Store) Checkout(offerID string) bool {
	if s.user == "" {
		s.log.LogError("Checkout: no user logged in")
		return false
	}
	if offerID == "" {
		s.log.LogError("Checkout: offer id is required")
		return false
	}
	user := s.user
	s.checkouts++
	s.log.Log("Checkout of %s for %s", offerID, user)
	s.ecom.Checkout(user, []string{offerID}, func(r sdk.Result, txn string) {
		s.checkouts--
		if r != sdk.Success {
			s.log.LogError("Checkout of %s failed: %s", offerID, r)
			s.bus.Emit(event.NewText(event.EventCheckoutFailed, string(user), offerID, int(r)))
			return
		}
		s.log.Log("Checkout of %s complete, transaction %s", offerID, txn)
		if user == s.user {
			s.entitlements.SetDirty()
		}
		s.bus.Emit(event.NewText(event.EventCheckoutComplete, string(user), txn))
	})
	return true
}

// PendingCheckouts returns how many checkouts await completion
func (s *Store) PendingCheckouts() int { return s.checkouts }

// User returns the user the store currently serves
func (s *Store) User() sdk.AccountID { return s.user }

// Offers returns the cached catalog
func (s *Store) Offers() []sdk.Offer { return s.catalog.Items() }

// Entitlements returns the cached entitlements
func (s *Store) Entitlements() []sdk.Entitlement { return s.entitlements.Items() }

// Offer looks up a cached offer by id
func (s *Store) Offer(id string) (sdk.Offer, bool) {
	i := slices.IndexFunc(s.catalog.Items(), func(o sdk.Offer) bool { return o.ID == id })
	if i < 0 {
		return sdk.Offer{}, false
	}
	return s.catalog.Items()[i], true
}

// Owned returns how many entitlements the current user holds for offerID
func (s *Store) Owned(offerID string) int {
	n := 0
	for _, e := range s.entitlements.Items() {
		if e.CatalogItemID == offerID {
			n++
		}
	}
	return n
}

// CatalogVersion changes whenever the catalog is replaced
func (s *Store) CatalogVersion() uint64 { return s.catalog.Version() }

// EntitlementsVersion changes whenever the entitlements are replaced
func (s *Store) EntitlementsVersion() uint64 { return s.entitlements.Version() }
