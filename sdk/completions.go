package sdk

import "sync"

// Completions queues callbacks from any goroutine and runs them on the loop thread
// Backends Defer from transport goroutines; Platform.Tick calls Drain
type Completions struct {
	mu      sync.Mutex
	pending []func()
	spare   []func()
}

// Defer queues fn; safe for concurrent use
func (c *Completions) Defer(fn func()) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.pending = append(c.pending, fn)
	c.mu.Unlock()
}

// Len returns the number of queued callbacks
func (c *Completions) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Drain runs the callbacks queued before the call, in order, and returns how many ran
// Callbacks deferred while draining run on the next Drain
func (c *Completions) Drain() int {
	c.mu.Lock()
	batch := c.pending
	c.pending = c.spare[:0]
	c.mu.Unlock()

	for i, fn := range batch {
		fn()
		batch[i] = nil
	}

	c.mu.Lock()
	c.spare = batch[:0]
	c.mu.Unlock()
	return len(batch)
}

// Subscribers is an ordered set of push callbacks with cancel funcs
type Subscribers[T any] struct {
	mu   sync.Mutex
	next int
	subs []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Add registers fn and returns its cancel func
func (s *Subscribers[T]) Add(fn func(T)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := s.next
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Notify calls every subscriber with v in registration order
func (s *Subscribers[T]) Notify(v T) {
	s.mu.Lock()
	fns := make([]func(T), len(s.subs))
	for i, sub := range s.subs {
		fns[i] = sub.fn
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Len returns the number of subscribers
func (s *Subscribers[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
