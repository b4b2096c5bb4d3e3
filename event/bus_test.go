package event

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/gamesvc-samples/status"
)

type traceListener struct {
	name  string
	trace *[]string
	on    func(ev Event)
}

func (l traceListener) OnGameEvent(ev Event) {
	*l.trace = append(*l.trace, l.name+":"+ev.Type().String())
	if l.on != nil {
		l.on(ev)
	}
}

func TestBusBroadcastOrder(t *testing.T) {
	bus := NewBus(nil)
	var trace []string
	for _, name := range []string{"console", "store", "popup"} {
		bus.Subscribe(traceListener{name: name, trace: &trace})
	}

	bus.Emit(New(EventUserLoggedIn))

	want := []string{"console:UserLoggedIn", "store:UserLoggedIn", "popup:UserLoggedIn"}
	if diff := cmp.Diff(want, trace); diff != "" {
		t.Errorf("Order mismatch (-want +got):\n%s", diff)
	}
}

func TestBusReentrantEmitIsQueued(t *testing.T) {
	reg := status.NewRegistry()
	bus := NewBus(reg)
	var trace []string

	bus.Subscribe(traceListener{name: "a", trace: &trace, on: func(ev Event) {
		if ev.Type() == EventCheckoutRequested {
			bus.Emit(New(EventCheckoutComplete))
			bus.Emit(New(EventEntitlementsUpdated))
		}
	}})
	bus.Subscribe(traceListener{name: "b", trace: &trace})

	bus.Emit(New(EventCheckoutRequested))

	want := []string{
		"a:CheckoutRequested", "b:CheckoutRequested",
		"a:CheckoutComplete", "b:CheckoutComplete",
		"a:EntitlementsUpdated", "b:EntitlementsUpdated",
	}
	if diff := cmp.Diff(want, trace); diff != "" {
		t.Errorf("Order mismatch (-want +got):\n%s", diff)
	}
	if bus.Dispatching() {
		t.Error("Still dispatching after Emit returned")
	}
	if got := reg.Ints.Get("bus.dispatched").Load(); got != 3 {
		t.Errorf("dispatched = %d, want 3", got)
	}
	if got := reg.Ints.Get("bus.deferred").Load(); got != 2 {
		t.Errorf("deferred = %d, want 2", got)
	}
}

func TestBusSubscribeDuringBroadcast(t *testing.T) {
	bus := NewBus(nil)
	var trace []string
	late := traceListener{name: "late", trace: &trace}
	added := false
	bus.Subscribe(traceListener{name: "first", trace: &trace, on: func(Event) {
		if !added {
			added = true
			bus.Subscribe(late)
		}
	}})

	bus.Emit(New(EventShowPopup))
	bus.Emit(New(EventCancelLogin))

	want := []string{"first:ShowPopup", "first:CancelLogin", "late:CancelLogin"}
	if diff := cmp.Diff(want, trace); diff != "" {
		t.Errorf("Order mismatch (-want +got):\n%s", diff)
	}
}

func TestBusPostAndPump(t *testing.T) {
	bus := NewBus(nil)
	rec := &Recorder{}
	bus.Subscribe(rec)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Post(New(EventSessionInviteReceived))
		}()
	}
	wg.Wait()

	if len(rec.Events()) != 0 {
		t.Fatal("Posted events delivered before Pump")
	}
	if n := bus.Pump(); n != 4 {
		t.Errorf("Pump delivered %d, want 4", n)
	}
	if rec.Count(EventSessionInviteReceived) != 4 {
		t.Errorf("Recorded %d", rec.Count(EventSessionInviteReceived))
	}
	if n := bus.Pump(); n != 0 {
		t.Errorf("Second Pump delivered %d", n)
	}
}

func TestListenerFunc(t *testing.T) {
	bus := NewBus(nil)
	got := EventNone
	bus.Subscribe(ListenerFunc(func(ev Event) { got = ev.Type() }))
	bus.Emit(New(EventToggleNotification))
	if got != EventToggleNotification {
		t.Errorf("got %v", got)
	}
	if bus.Len() != 1 {
		t.Errorf("Len = %d", bus.Len())
	}
}
