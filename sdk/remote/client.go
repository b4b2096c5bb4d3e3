package remote

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/gamesvc-samples/clock"
	"github.com/lixenwraith/gamesvc-samples/logging"
	"github.com/lixenwraith/gamesvc-samples/sdk"
)

// DefaultCallTimeout applies when Options.CallTimeout is zero
const DefaultCallTimeout = 10 * time.Second

// Options configures a Client
type Options struct {
	CallTimeout time.Duration
	Clock       clock.Provider
	Log         logging.Logger
}

type pendingCall struct {
	op       string
	deadline time.Time
	done     func(sdk.Result, json.RawMessage)
}

// Client implements sdk.Platform over a Transport
type Client struct {
	transport   Transport
	timeout     time.Duration
	clock       clock.Provider
	log         logging.Logger
	completions sdk.Completions
	initialized atomic.Bool

	mu      sync.Mutex
	pending map[string]pendingCall

	lobbyInvites   sdk.Subscribers[sdk.LobbyInvite]
	lobbyUpdates   sdk.Subscribers[sdk.Lobby]
	sessionInvites sdk.Subscribers[sdk.SessionInvite]
	ticketSubs     sdk.Subscribers[sdk.TicketResponse]

	readDone chan struct{}
}

// NewClient starts reading from t and returns an initialized client
func NewClient(t Transport, opts Options) *Client {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = DefaultCallTimeout
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewReal()
	}
	if opts.Log == nil {
		opts.Log = logging.Nop()
	}
	c := &Client{
		transport: t,
		timeout:   opts.CallTimeout,
		clock:     opts.Clock,
		log:       opts.Log,
		pending:   make(map[string]pendingCall),
		readDone:  make(chan struct{}),
	}
	c.initialized.Store(true)
	go c.readLoop()
	return c
}

func (c *Client) IsInitialized() bool { return c.initialized.Load() }

// Tick fails expired calls with TimedOut, then runs completed callbacks
func (c *Client) Tick() {
	now := c.clock.Now()
	var expired []pendingCall
	c.mu.Lock()
	for id, p := range c.pending {
		if now.After(p.deadline) {
			expired = append(expired, p)
			delete(c.pending, id)
		}
	}
	c.mu.Unlock()

	for _, p := range expired {
		c.log.LogWarning("Request %s timed out", p.op)
		p.done(sdk.TimedOut, nil)
	}
	c.completions.Drain()
}

// Release closes the transport; outstanding calls complete with NoConnection on the next Tick
func (c *Client) Release() {
	if !c.initialized.Swap(false) {
		return
	}
	if err := c.transport.Close(); err != nil {
		c.log.LogWarning("Transport close: %v", err)
	}
	<-c.readDone
}

func (c *Client) Auth() sdk.Auth            { return authAPI{c} }
func (c *Client) Ecom() sdk.Ecom            { return ecomAPI{c} }
func (c *Client) Lobbies() sdk.Lobbies      { return lobbyAPI{c} }
func (c *Client) Sessions() sdk.Sessions    { return sessionAPI{c} }
func (c *Client) Tickets() sdk.TicketSource { return ticketAPI{c} }

// Pending returns how many calls await a response
func (c *Client) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// call sends op and arranges for done to run on the loop thread with the outcome
func (c *Client) call(op string, args Args, done func(sdk.Result, json.RawMessage)) string {
	if !c.initialized.Load() {
		c.completions.Defer(func() { done(sdk.NotConfigured, nil) })
		return ""
	}
	id := uuid.NewString()
	env, err := NewRequest(id, op, args)
	if err != nil {
		c.log.LogError("Encode %s: %v", op, err)
		c.completions.Defer(func() { done(sdk.InvalidParameters, nil) })
		return ""
	}

	c.mu.Lock()
	c.pending[id] = pendingCall{op: op, deadline: c.clock.Now().Add(c.timeout), done: done}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	if err := c.transport.Send(ctx, env); err != nil {
		c.log.LogError("Send %s: %v", op, err)
		if p, ok := c.take(id); ok {
			c.completions.Defer(func() { p.done(sdk.NoConnection, nil) })
		}
	}
	return id
}

func (c *Client) take(id string) (pendingCall, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}
	return p, ok
}

func (c *Client) readLoop() {
	defer close(c.readDone)
	for env := range c.transport.Incoming() {
		switch env.Kind {
		case KindResponse:
			p, ok := c.take(env.ID)
			if !ok {
				c.log.LogWarning("Ignoring response for unknown request %s (%s)", env.ID, env.Op)
				continue
			}
			c.completions.Defer(func() { p.done(env.Result, env.Payload) })
		case KindNotify:
			c.notify(env)
		default:
			c.log.LogWarning("Ignoring %q envelope", env.Kind)
		}
	}

	// Connection gone: fail everything still waiting
	c.mu.Lock()
	orphans := c.pending
	c.pending = make(map[string]pendingCall)
	c.mu.Unlock()
	for _, p := range orphans {
		c.completions.Defer(func() { p.done(sdk.NoConnection, nil) })
	}
}

func (c *Client) notify(env Envelope) {
	switch env.Op {
	case sdk.NotifyLobbyInvite:
		var inv sdk.LobbyInvite
		if decode(c.log, env, &inv) {
			c.completions.Defer(func() { c.lobbyInvites.Notify(inv) })
		}
	case sdk.NotifyLobbyUpdate:
		var l sdk.Lobby
		if decode(c.log, env, &l) {
			c.completions.Defer(func() { c.lobbyUpdates.Notify(l) })
		}
	case sdk.NotifySessInvite:
		var inv sdk.SessionInvite
		if decode(c.log, env, &inv) {
			c.completions.Defer(func() { c.sessionInvites.Notify(inv) })
		}
	default:
		c.log.LogWarning("Ignoring notification %s", env.Op)
	}
}

func decode(log logging.Logger, env Envelope, v any) bool {
	if len(env.Payload) == 0 {
		return false
	}
	if err := json.Unmarshal(env.Payload, v); err != nil {
		log.LogError("Decode %s: %v", env.Op, err)
		return false
	}
	return true
}

// reply decodes a successful payload into v, downgrading the result on a bad payload
func (c *Client) reply(op string, r sdk.Result, payload json.RawMessage, v any) sdk.Result {
	if r != sdk.Success || v == nil {
		return r
	}
	if !decode(c.log, Envelope{Op: op, Payload: payload}, v) {
		return sdk.UnexpectedError
	}
	return r
}
