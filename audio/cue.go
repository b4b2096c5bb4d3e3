// Package audio plays short chimes for game events through the beep speaker.
// Audio is optional: when disabled or when no output device can be opened the
// player stays silent and the game runs unchanged.
package audio

import "github.com/lixenwraith/gamesvc-samples/event"

// Cue is a chime
type Cue int

const (
	CueError  Cue = iota // low buzz for rejected logins and purchases
	CueBell              // ding for incoming invites
	CueWhoosh            // noise sweep for login and logout
	CueCoin              // two-note chime for completed purchases
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueError:
		return "error"
	case CueBell:
		return "bell"
	case CueWhoosh:
		return "whoosh"
	case CueCoin:
		return "coin"
	}
	return "unknown"
}

// cues maps game events to the chime they play
var cues = map[event.Type]Cue{
	event.EventUserLoginFailed:       CueError,
	event.EventCheckoutFailed:        CueError,
	event.EventLobbyInviteReceived:   CueBell,
	event.EventSessionInviteReceived: CueBell,
	event.EventUserLoggedIn:          CueWhoosh,
	event.EventUserLoggedOut:         CueWhoosh,
	event.EventCheckoutComplete:      CueCoin,
}

// CueFor returns the chime for an event type
func CueFor(t event.Type) (Cue, bool) {
	c, ok := cues[t]
	return c, ok
}
