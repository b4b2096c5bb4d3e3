package event

import (
	"sync/atomic"

	"github.com/lixenwraith/gamesvc-samples/status"
)

// Listener receives every broadcast event
// Listeners must treat the event as read-only and must not block
type Listener interface {
	OnGameEvent(ev Event)
}

// Emitter is the publishing side of the bus handed to components
type Emitter interface {
	Emit(ev Event)
}

// ListenerFunc adapts a function to Listener
type ListenerFunc func(ev Event)

func (f ListenerFunc) OnGameEvent(ev Event) { f(ev) }

// Bus broadcasts events to listeners in subscription order
//
// Architecture:
//   - Single-threaded, synchronous broadcast on the loop thread
//   - Every listener sees every event; no listener can stop propagation
//   - Emit from inside a listener is queued and delivered after the current
//     broadcast reaches all listeners, in FIFO order
//   - Post is the only goroutine-safe entry; posted events are delivered by Pump
type Bus struct {
	listeners   []Listener
	pending     []Event
	dispatching bool
	inbox       *Queue

	dispatched *atomic.Int64
	deferred   *atomic.Int64
}

// NewBus creates a bus; reg may be nil
func NewBus(reg *status.Registry) *Bus {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Bus{
		inbox:      NewQueue(),
		dispatched: reg.Ints.Get("bus.dispatched"),
		deferred:   reg.Ints.Get("bus.deferred"),
	}
}

// Subscribe appends l to the broadcast order
// A listener added during a broadcast first sees the next event
func (b *Bus) Subscribe(l Listener) {
	b.listeners = append(b.listeners, l)
}

// Len returns the number of listeners
func (b *Bus) Len() int {
	return len(b.listeners)
}

// Dispatching reports whether a broadcast is in progress
func (b *Bus) Dispatching() bool {
	return b.dispatching
}

// Emit broadcasts ev to all listeners, or queues it when called from a listener
// Loop thread only
func (b *Bus) Emit(ev Event) {
	if b.dispatching {
		b.pending = append(b.pending, ev)
		b.deferred.Add(1)
		return
	}

	b.dispatching = true
	defer func() { b.dispatching = false }()

	b.broadcast(ev)
	for len(b.pending) > 0 {
		next := b.pending[0]
		b.pending[0] = Event{}
		b.pending = b.pending[1:]
		b.broadcast(next)
	}
	b.pending = b.pending[:0]
}

// Post queues ev for delivery on the next Pump; safe from any goroutine
func (b *Bus) Post(ev Event) {
	b.inbox.Push(ev)
}

// Pump delivers events posted from other goroutines and returns how many were delivered
// Loop thread only, once per frame
func (b *Bus) Pump() int {
	evs := b.inbox.Consume()
	for _, ev := range evs {
		b.Emit(ev)
	}
	return len(evs)
}

func (b *Bus) broadcast(ev Event) {
	listeners := b.listeners
	for _, l := range listeners {
		l.OnGameEvent(ev)
	}
	b.dispatched.Add(1)
}
