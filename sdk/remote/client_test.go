package remote

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/gamesvc-samples/clock"
	"github.com/lixenwraith/gamesvc-samples/logging"
	"github.com/lixenwraith/gamesvc-samples/sdk"
)

// pipe is an in-memory Transport; the test plays the backend
type pipe struct {
	mu       sync.Mutex
	sent     []Envelope
	sentCh   chan Envelope
	incoming chan Envelope
	once     sync.Once
	failSend error
}

func newPipe() *pipe {
	return &pipe{sentCh: make(chan Envelope, 16), incoming: make(chan Envelope, 16)}
}

func (p *pipe) Send(_ context.Context, env Envelope) error {
	if p.failSend != nil {
		return p.failSend
	}
	p.mu.Lock()
	p.sent = append(p.sent, env)
	p.mu.Unlock()
	p.sentCh <- env
	return nil
}

func (p *pipe) Incoming() <-chan Envelope { return p.incoming }

func (p *pipe) Close() error {
	p.once.Do(func() { close(p.incoming) })
	return nil
}

func (p *pipe) next(t *testing.T) Envelope {
	t.Helper()
	select {
	case env := <-p.sentCh:
		return env
	case <-time.After(2 * time.Second):
		t.Fatal("No request sent")
	}
	return Envelope{}
}

// tickUntil ticks c until cond holds
func tickUntil(t *testing.T, c *Client, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("Condition not reached")
		}
		c.Tick()
		time.Sleep(time.Millisecond)
	}
}

func TestClientRequestResponse(t *testing.T) {
	p := newPipe()
	c := NewClient(p, Options{})
	defer c.Release()

	var got []sdk.Offer
	var res sdk.Result = -1
	c.Ecom().QueryOffers("u1", func(r sdk.Result, offers []sdk.Offer) { res, got = r, offers })

	req := p.next(t)
	if req.Kind != KindRequest || req.Op != sdk.OpOffers {
		t.Fatalf("Request = %+v", req)
	}
	var args Args
	if err := json.Unmarshal(req.Payload, &args); err != nil || args.User != "u1" {
		t.Fatalf("Args = %+v, %v", args, err)
	}

	resp, err := NewResponse(req, sdk.Success, []sdk.Offer{{ID: "o1", Title: "Sword"}})
	if err != nil {
		t.Fatal(err)
	}
	p.incoming <- resp

	tickUntil(t, c, func() bool { return res != -1 })
	if res != sdk.Success || len(got) != 1 || got[0].ID != "o1" {
		t.Errorf("Result %v offers %+v", res, got)
	}
	if c.Pending() != 0 {
		t.Errorf("Pending = %d", c.Pending())
	}
}

func TestClientCallbackWaitsForTick(t *testing.T) {
	p := newPipe()
	c := NewClient(p, Options{})
	defer c.Release()

	done := false
	c.Auth().Logout("u1", func(sdk.Result) { done = true })
	req := p.next(t)
	resp, _ := NewResponse(req, sdk.Success, nil)
	p.incoming <- resp

	deadline := time.Now().Add(2 * time.Second)
	for c.completions.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Response never queued")
		}
		time.Sleep(time.Millisecond)
	}
	if done {
		t.Fatal("Callback ran outside Tick")
	}
	c.Tick()
	if !done {
		t.Fatal("Callback did not run in Tick")
	}
}

func TestClientTimeout(t *testing.T) {
	p := newPipe()
	clk := clock.NewMock(time.Unix(0, 0))
	rec := logging.NewRecorder()
	c := NewClient(p, Options{CallTimeout: time.Second, Clock: clk, Log: rec})
	defer c.Release()

	var res sdk.Result = -1
	c.Lobbies().LeaveLobby("u1", "l1", func(r sdk.Result) { res = r })
	p.next(t)

	c.Tick()
	if res != -1 {
		t.Fatal("Completed before timeout")
	}
	clk.Advance(2 * time.Second)
	c.Tick()
	if res != sdk.TimedOut {
		t.Errorf("Result = %v, want TimedOut", res)
	}
	if !rec.Contains(logging.LevelWarning, "timed out") {
		t.Error("Timeout not logged")
	}
}

func TestClientSendFailure(t *testing.T) {
	p := newPipe()
	p.failSend = ErrClosed
	c := NewClient(p, Options{})
	defer c.Release()

	var res sdk.Result = -1
	c.Sessions().DestroySession("u1", "Main", func(r sdk.Result) { res = r })
	c.Tick()
	if res != sdk.NoConnection {
		t.Errorf("Result = %v", res)
	}
}

func TestClientNotifications(t *testing.T) {
	p := newPipe()
	c := NewClient(p, Options{})
	defer c.Release()

	var invites []sdk.SessionInvite
	c.Sessions().SubscribeInvites(func(inv sdk.SessionInvite) { invites = append(invites, inv) })

	env, err := NewNotify(sdk.NotifySessInvite, sdk.SessionInvite{InviteID: "h1", FromName: "alice"})
	if err != nil {
		t.Fatal(err)
	}
	p.incoming <- env
	tickUntil(t, c, func() bool { return len(invites) == 1 })
	if invites[0].FromName != "alice" {
		t.Errorf("Invite = %+v", invites[0])
	}
}

func TestClientReleaseFailsPending(t *testing.T) {
	p := newPipe()
	c := NewClient(p, Options{})

	var res sdk.Result = -1
	c.Lobbies().Search("u1", "abc", 1, func(r sdk.Result, _ []sdk.Lobby) { res = r })
	p.next(t)

	c.Release()
	c.Tick()
	if res != sdk.NoConnection {
		t.Errorf("Result = %v, want NoConnection", res)
	}
	if c.IsInitialized() {
		t.Error("Still initialized after Release")
	}

	var after sdk.Result = -1
	c.Lobbies().LeaveLobby("u1", "abc", func(r sdk.Result) { after = r })
	c.Tick()
	if after != sdk.NotConfigured {
		t.Errorf("Call after release = %v", after)
	}
}
