package event

// Recorder is an Emitter and Listener that keeps every event it sees
type Recorder struct {
	events []Event
}

func (r *Recorder) Emit(ev Event)        { r.events = append(r.events, ev) }
func (r *Recorder) OnGameEvent(ev Event) { r.events = append(r.events, ev) }

// Events returns the recorded events in order
func (r *Recorder) Events() []Event { return r.events }

// Types returns the recorded event types in order
func (r *Recorder) Types() []Type {
	types := make([]Type, len(r.events))
	for i, ev := range r.events {
		types[i] = ev.Type()
	}
	return types
}

// Last returns the most recent event of type t
func (r *Recorder) Last(t Type) (Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type() == t {
			return r.events[i], true
		}
	}
	return Event{}, false
}

// Count returns how many events of type t were recorded
func (r *Recorder) Count(t Type) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type() == t {
			n++
		}
	}
	return n
}

// Reset drops all recorded events
func (r *Recorder) Reset() { r.events = nil }
