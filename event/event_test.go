package event

import (
	"strings"
	"testing"
)

func TestEventPayloadAccessors(t *testing.T) {
	ev := NewText(EventStartUserLogin, "", "ticket", int(LoginExternalAuth), int(ExternalSteam), 99)

	if ev.Type() != EventStartUserLogin {
		t.Errorf("Type = %v", ev.Type())
	}
	if ev.Text() != "ticket" {
		t.Errorf("Text = %q", ev.Text())
	}
	if ev.NumInts() != MaxInts {
		t.Fatalf("Expected extra ints dropped, NumInts = %d", ev.NumInts())
	}
	if v, ok := ev.Int(0); !ok || v != int(LoginExternalAuth) {
		t.Errorf("Int(0) = %d, %v", v, ok)
	}
	if v, ok := ev.Int(1); !ok || v != int(ExternalSteam) {
		t.Errorf("Int(1) = %d, %v", v, ok)
	}
	if _, ok := ev.Int(2); ok {
		t.Error("Int(2) should be unset")
	}
	if got := New(EventCancelLogin).IntOr(0, -1); got != -1 {
		t.Errorf("IntOr default = %d", got)
	}
}

func TestEventValueSemantics(t *testing.T) {
	orig := NewText(EventCheckoutRequested, "u1", "offer-1", 5)
	copyEv := orig
	// A listener only ever holds a copy; there is no setter to reach the original
	if copyEv != orig {
		t.Error("Copies of an event must compare equal")
	}
}

func TestEventString(t *testing.T) {
	s := NewText(EventLobbyJoined, "u1", "lobby-9", 3).String()
	for _, want := range []string{"LobbyJoined", "user=u1", `text="lobby-9"`, "int0=3"} {
		if !strings.Contains(s, want) {
			t.Errorf("String %q missing %q", s, want)
		}
	}
}

func TestRegistryParse(t *testing.T) {
	for _, name := range Names() {
		typ, ok := Parse(strings.ToLower(name))
		if !ok {
			t.Errorf("Parse(%q) failed", name)
			continue
		}
		if typ.String() != name {
			t.Errorf("Round trip %q -> %v", name, typ)
		}
	}
	if _, ok := Parse("NoSuchEvent"); ok {
		t.Error("Parse accepted unknown name")
	}
	if got := Type(9999).String(); got != "Event(9999)" {
		t.Errorf("Unknown type String = %q", got)
	}
	if len(Names()) != int(typeCount)-1 {
		t.Errorf("Expected every type registered, got %d of %d", len(Names()), int(typeCount)-1)
	}
}
