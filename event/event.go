package event

import (
	"fmt"
	"strings"
)

// MaxInts is the number of integer payload slots an Event carries
const MaxInts = 2

// Event is an immutable broadcast notification
// Fields are unexported; listeners read through accessors and cannot mutate a shared event
type Event struct {
	typ    Type
	user   string
	text   string
	ints   [MaxInts]int
	numInt uint8
}

// New creates an event carrying only its type
func New(t Type) Event {
	return Event{typ: t}
}

// NewUser creates an event about an account
func NewUser(t Type, user string) Event {
	return Event{typ: t, user: user}
}

// NewText creates an event with a text payload and up to MaxInts integers
// Integers beyond MaxInts are dropped
func NewText(t Type, user, text string, ints ...int) Event {
	ev := Event{typ: t, user: user, text: text}
	n := copy(ev.ints[:], ints)
	ev.numInt = uint8(n)
	return ev
}

// Type returns the event tag
func (e Event) Type() Type { return e.typ }

// UserID returns the account the event refers to, empty if none
func (e Event) UserID() string { return e.user }

// Text returns the string payload
func (e Event) Text() string { return e.text }

// NumInts returns how many integer payloads are set
func (e Event) NumInts() int { return int(e.numInt) }

// Int returns integer payload i and whether it is set
func (e Event) Int(i int) (int, bool) {
	if i < 0 || i >= int(e.numInt) {
		return 0, false
	}
	return e.ints[i], true
}

// IntOr returns integer payload i, or def if unset
func (e Event) IntOr(i, def int) int {
	if v, ok := e.Int(i); ok {
		return v
	}
	return def
}

func (e Event) String() string {
	var b strings.Builder
	b.WriteString(e.typ.String())
	if e.user != "" {
		fmt.Fprintf(&b, " user=%s", e.user)
	}
	if e.text != "" {
		fmt.Fprintf(&b, " text=%q", e.text)
	}
	for i := 0; i < int(e.numInt); i++ {
		fmt.Fprintf(&b, " int%d=%d", i, e.ints[i])
	}
	return b.String()
}
