// Package logging is the debug log shared by every component.
// Messages are formatted printf-style and fanned out to the log file
// and to any in-app sinks such as the console dialog.
package logging

import (
	"fmt"
	"io"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Logger is the logging collaborator handed to every component
type Logger interface {
	Log(format string, args ...any)
	LogWarning(format string, args ...any)
	LogError(format string, args ...any)
}

// Level of a log entry
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Entry is one formatted log message
type Entry struct {
	Level   Level
	Message string
}

// Sink receives every entry written through a DebugLog
// Called on the goroutine that logged
type Sink interface {
	Write(e Entry)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(e Entry)

func (f SinkFunc) Write(e Entry) { f(e) }

// DebugLog is the hclog-backed Logger
type DebugLog struct {
	hl hclog.InterceptLogger

	mu    sync.Mutex
	sinks map[int]hclog.SinkAdapter
	next  int
}

// New creates a DebugLog writing to out; pass io.Discard to keep only sinks
func New(name string, out io.Writer) *DebugLog {
	if out == nil {
		out = io.Discard
	}
	hl := hclog.NewInterceptLogger(&hclog.LoggerOptions{
		Name:   name,
		Level:  hclog.Info,
		Output: out,
	})
	return &DebugLog{
		hl:    hl,
		sinks: make(map[int]hclog.SinkAdapter),
	}
}

// AddSink registers s and returns a function that removes it
func (d *DebugLog) AddSink(s Sink) (remove func()) {
	adapter := &sinkAdapter{sink: s}

	d.mu.Lock()
	id := d.next
	d.next++
	d.sinks[id] = adapter
	d.mu.Unlock()

	d.hl.RegisterSink(adapter)
	return func() {
		d.mu.Lock()
		a, ok := d.sinks[id]
		delete(d.sinks, id)
		d.mu.Unlock()
		if ok {
			d.hl.DeregisterSink(a)
		}
	}
}

func (d *DebugLog) Log(format string, args ...any) {
	d.hl.Info(fmt.Sprintf(format, args...))
}

func (d *DebugLog) LogWarning(format string, args ...any) {
	d.hl.Warn(fmt.Sprintf(format, args...))
}

func (d *DebugLog) LogError(format string, args ...any) {
	d.hl.Error(fmt.Sprintf(format, args...))
}

// sinkAdapter bridges hclog's intercept sinks to Sink
type sinkAdapter struct {
	sink Sink
}

func (a *sinkAdapter) Accept(_ string, level hclog.Level, msg string, _ ...interface{}) {
	l := LevelInfo
	switch {
	case level >= hclog.Error:
		l = LevelError
	case level == hclog.Warn:
		l = LevelWarning
	}
	a.sink.Write(Entry{Level: l, Message: msg})
}

type nop struct{}

func (nop) Log(string, ...any)        {}
func (nop) LogWarning(string, ...any) {}
func (nop) LogError(string, ...any)   {}

// Nop returns a Logger that drops everything
func Nop() Logger { return nop{} }
