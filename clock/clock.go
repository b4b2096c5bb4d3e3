package clock

import (
	"sync"
	"time"
)

// Provider supplies the current time
// Frame deltas, cache timers and the shutdown drain all read from one Provider
type Provider interface {
	Now() time.Time
}

// Real provides the system time with monotonic clock readings
type Real struct{}

// NewReal creates a system time provider
func NewReal() Real {
	return Real{}
}

// Now returns time.Now()
func (Real) Now() time.Time {
	return time.Now()
}

// Mock provides a controllable time source for testing
type Mock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMock creates a mock provider starting at start
func NewMock(start time.Time) *Mock {
	return &Mock{currentTime: start}
}

// Now returns the current mocked time
func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Set sets the current time
func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance moves the current time forward by d
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// Stopwatch measures elapsed time since the last Lap against a Provider
type Stopwatch struct {
	p    Provider
	last time.Time
}

// NewStopwatch starts a stopwatch at p.Now()
func NewStopwatch(p Provider) *Stopwatch {
	return &Stopwatch{p: p, last: p.Now()}
}

// Lap returns time elapsed since the previous Lap (or creation) and restarts
// Negative deltas from a rewound clock are reported as zero
func (s *Stopwatch) Lap() time.Duration {
	now := s.p.Now()
	d := now.Sub(s.last)
	s.last = now
	if d < 0 {
		return 0
	}
	return d
}
