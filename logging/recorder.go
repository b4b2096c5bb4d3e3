package logging

import (
	"fmt"
	"strings"
	"sync"
)

// Recorder is a Logger that keeps entries in memory, used by tests across packages
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(l Level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: l, Message: fmt.Sprintf(format, args...)})
}

func (r *Recorder) Log(format string, args ...any)        { r.add(LevelInfo, format, args...) }
func (r *Recorder) LogWarning(format string, args ...any) { r.add(LevelWarning, format, args...) }
func (r *Recorder) LogError(format string, args ...any)   { r.add(LevelError, format, args...) }

// Entries returns a copy of everything recorded
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Count returns how many entries of level l were recorded
func (r *Recorder) Count(l Level) int {
	n := 0
	for _, e := range r.Entries() {
		if e.Level == l {
			n++
		}
	}
	return n
}

// Contains reports whether any entry of level l contains substr
func (r *Recorder) Contains(l Level, substr string) bool {
	for _, e := range r.Entries() {
		if e.Level == l && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// Reset drops all recorded entries
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.entries = nil
	r.mu.Unlock()
}
