package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxStringLen caps stored strings in bytes; ids and short labels fit
const MaxStringLen = 64

// AtomicString is a string metric safe for concurrent Store and Load
// The zero value holds ""
type AtomicString struct {
	v atomic.Pointer[string]
}

// Store replaces the value, cut to MaxStringLen bytes on a rune boundary
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		cut := MaxStringLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	s.v.Store(&val)
}

func (s *AtomicString) Load() string {
	p := s.v.Load()
	if p == nil {
		return ""
	}
	return *p
}
