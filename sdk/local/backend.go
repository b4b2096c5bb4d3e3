// Package local is an in-process game-services backend.
// Requests complete after a configurable number of ticks, and any operation
// can be made to fail once, which lets the samples and their tests run
// without a network.
package local

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/lixenwraith/gamesvc-samples/sdk"
)

// Options configures a Backend
type Options struct {
	// LatencyTicks is how many Tick calls a request waits before completing
	LatencyTicks int
	// Catalog replaces DefaultCatalog when non-nil
	Catalog []sdk.Offer
	// MFA maps login ids to the code they must supply
	MFA map[string]string
	// Lobbies seeds existing lobbies for search tests and demos
	Lobbies []sdk.Lobby
	// Sessions seeds existing sessions for search tests and demos
	Sessions []sdk.Session
}

// Call records one request for inspection
type Call struct {
	Op   string
	User sdk.AccountID
	Args []string
}

type scheduled struct {
	due uint64
	fn  func()
}

// Backend implements sdk.Platform in memory
type Backend struct {
	mu          sync.Mutex
	initialized bool
	tick        uint64
	latency     uint64
	queue       []scheduled
	completions sdk.Completions
	failures    map[string][]sdk.Result
	calls       []Call

	mfa          map[string]string
	accounts     map[sdk.AccountID]account
	catalog      []sdk.Offer
	entitlements map[sdk.AccountID][]sdk.Entitlement
	lobbies      map[string]*sdk.Lobby
	sessions     map[string]*sdk.Session
	local        map[sdk.AccountID]map[string]string // user -> local name -> session id
	inviteTarget map[sdk.Handle]string               // invite handle -> session id
	tickets      map[sdk.Handle]bool

	lobbyInvites   sdk.Subscribers[sdk.LobbyInvite]
	lobbyUpdates   sdk.Subscribers[sdk.Lobby]
	sessionInvites sdk.Subscribers[sdk.SessionInvite]
	ticketSubs     sdk.Subscribers[sdk.TicketResponse]

	auth     *authAPI
	ecom     *ecomAPI
	lobbyAPI *lobbyAPI
	sessAPI  *sessionAPI
	tickAPI  *ticketAPI
}

type account struct {
	id       sdk.AccountID
	login    string
	external sdk.ExternalType
	loggedIn bool
}

// accountNamespace derives stable account ids from login ids
var accountNamespace = uuid.MustParse("6f1d0c6e-3b0a-4f5e-9a55-0b7c3c1e2d4a")

// New creates an initialized backend
func New(opts Options) *Backend {
	b := &Backend{
		initialized:  true,
		latency:      uint64(max(opts.LatencyTicks, 0)),
		failures:     make(map[string][]sdk.Result),
		mfa:          opts.MFA,
		accounts:     make(map[sdk.AccountID]account),
		catalog:      opts.Catalog,
		entitlements: make(map[sdk.AccountID][]sdk.Entitlement),
		lobbies:      make(map[string]*sdk.Lobby),
		sessions:     make(map[string]*sdk.Session),
		local:        make(map[sdk.AccountID]map[string]string),
		inviteTarget: make(map[sdk.Handle]string),
		tickets:      make(map[sdk.Handle]bool),
	}
	if b.catalog == nil {
		b.catalog = DefaultCatalog()
	}
	for _, l := range opts.Lobbies {
		l := l
		l.Members = slices.Clone(l.Members)
		b.lobbies[l.ID] = &l
	}
	for _, s := range opts.Sessions {
		s := s
		if s.Handle == "" {
			s.Handle = sdk.Handle(uuid.NewString())
		}
		b.sessions[s.ID] = &s
	}
	b.auth = &authAPI{b}
	b.ecom = &ecomAPI{b}
	b.lobbyAPI = &lobbyAPI{b}
	b.sessAPI = &sessionAPI{b}
	b.tickAPI = &ticketAPI{b}
	return b
}

// AccountFor returns the account id a login id maps to
func AccountFor(login string) sdk.AccountID {
	return sdk.AccountID(uuid.NewSHA1(accountNamespace, []byte(login)).String())
}

func (b *Backend) IsInitialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initialized
}

// Tick completes every request whose latency has elapsed, then runs pushed notifications
func (b *Backend) Tick() {
	b.mu.Lock()
	b.tick++
	var due []func()
	rest := b.queue[:0]
	for _, s := range b.queue {
		if s.due <= b.tick {
			due = append(due, s.fn)
		} else {
			rest = append(rest, s)
		}
	}
	b.queue = rest
	b.mu.Unlock()

	for _, fn := range due {
		fn()
	}
	b.completions.Drain()
}

// Release marks the platform uninitialized and drops outstanding requests
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = false
	b.queue = nil
}

func (b *Backend) Auth() sdk.Auth                 { return b.auth }
func (b *Backend) Ecom() sdk.Ecom                 { return b.ecom }
func (b *Backend) Lobbies() sdk.Lobbies           { return b.lobbyAPI }
func (b *Backend) Sessions() sdk.Sessions         { return b.sessAPI }
func (b *Backend) Tickets() sdk.TicketSource      { return b.tickAPI }
func (b *Backend) Completions() *sdk.Completions { return &b.completions }

// Fail makes the next request for op complete with r
// Repeated calls queue further failures
func (b *Backend) Fail(op string, r sdk.Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[op] = append(b.failures[op], r)
}

// Calls returns every request issued so far
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.calls)
}

// CallCount returns how many requests for op were issued
func (b *Backend) CallCount(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Pending returns how many requests have not completed
func (b *Backend) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// request records a call and schedules complete with the injected or computed result
// complete runs on the loop thread inside Tick with b.mu not held
func (b *Backend) request(op string, user sdk.AccountID, args []string, complete func(injected sdk.Result)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, Call{Op: op, User: user, Args: args})

	injected := sdk.Success
	if q := b.failures[op]; len(q) > 0 {
		injected = q[0]
		b.failures[op] = q[1:]
	}
	if !b.initialized {
		injected = sdk.NotConfigured
	}
	b.queue = append(b.queue, scheduled{
		due: b.tick + b.latency,
		fn:  func() { complete(injected) },
	})
}

// loggedIn reports whether user has an active login; b.mu must be held
func (b *Backend) loggedIn(user sdk.AccountID) bool {
	a, ok := b.accounts[user]
	return ok && a.loggedIn
}
