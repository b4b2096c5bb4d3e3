// Package crash restores the terminal before a panic is reported.
// The frame loop and every helper goroutine defer Recover, or are started
// through Go, so a panic never leaves the terminal in raw mode.
package crash

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

// Finalizer releases the terminal; tcell.Screen satisfies it
type Finalizer interface {
	Fini()
}

var (
	mu     sync.Mutex
	screen Finalizer
	report io.Writer = os.Stderr
	exit             = os.Exit
	once   sync.Once
)

// SetScreen registers the screen finalized on crash; nil clears it
func SetScreen(s Finalizer) {
	mu.Lock()
	screen = s
	mu.Unlock()
}

// Handle finalizes the screen, prints r with the stack and exits with status 1
// A nil r is ignored. Only the first crash is reported
func Handle(r any) {
	if r == nil {
		return
	}
	once.Do(func() {
		mu.Lock()
		s, w, quit := screen, report, exit
		mu.Unlock()
		if s != nil {
			s.Fini()
		}
		fmt.Fprintf(w, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
		fmt.Fprintf(w, "Stack Trace:\r\n%s\r\n", debug.Stack())
		quit(1)
	})
}

// Recover is deferred at the top of a goroutine to route panics to Handle
func Recover() {
	Handle(recover())
}

// Go runs fn in a new goroutine with crash handling
func Go(fn func()) {
	go func() {
		defer Recover()
		fn()
	}()
}
