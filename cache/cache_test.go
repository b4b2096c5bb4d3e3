package cache

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/gamesvc-samples/logging"
	"github.com/lixenwraith/gamesvc-samples/sdk"
	"github.com/lixenwraith/gamesvc-samples/status"
)

// fakeQuery records issued queries and lets the test complete them
type fakeQuery struct {
	decline bool
	issued  int
	pending []func(sdk.Result, []string)
}

func (f *fakeQuery) query(done func(sdk.Result, []string)) bool {
	if f.decline {
		return false
	}
	f.issued++
	f.pending = append(f.pending, done)
	return true
}

func (f *fakeQuery) complete(r sdk.Result, items []string) {
	done := f.pending[0]
	f.pending = f.pending[1:]
	done(r, items)
}

func TestFirstUpdateRefreshes(t *testing.T) {
	q := &fakeQuery{}
	c := New("offers", time.Minute, q.query, nil, nil)

	c.Update(16 * time.Millisecond)
	if q.issued != 1 || !c.InFlight() {
		t.Fatalf("issued=%d inflight=%v", q.issued, c.InFlight())
	}
}

func TestInFlightIgnoresTriggers(t *testing.T) {
	q := &fakeQuery{}
	c := New("offers", time.Minute, q.query, nil, nil)

	c.Refresh()
	c.SetDirty()
	c.Update(2 * time.Minute)
	if c.Refresh() {
		t.Error("Second Refresh issued while in flight")
	}
	if q.issued != 1 {
		t.Errorf("issued = %d, want 1", q.issued)
	}
}

func TestSuccessReplacesItems(t *testing.T) {
	q := &fakeQuery{}
	reg := status.NewRegistry()
	c := New("offers", time.Minute, q.query, reg, nil)
	var updates [][]string
	c.OnUpdate(func(items []string) { updates = append(updates, items) })

	c.SetDirty()
	c.Refresh()
	q.complete(sdk.Success, []string{"a", "b"})

	c.SetDirty()
	c.Refresh()
	q.complete(sdk.Success, []string{"c"})

	if diff := cmp.Diff([]string{"c"}, c.Items()); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
	if c.Dirty() || c.InFlight() {
		t.Errorf("dirty=%v inflight=%v", c.Dirty(), c.InFlight())
	}
	if c.Remaining() != time.Minute {
		t.Errorf("Remaining = %v", c.Remaining())
	}
	if c.Version() != 2 || len(updates) != 2 {
		t.Errorf("version=%d updates=%d", c.Version(), len(updates))
	}
	if got := reg.Ints.Get("cache.offers.refreshes").Load(); got != 2 {
		t.Errorf("refreshes metric = %d", got)
	}
	if got := reg.Ints.Get("cache.offers.items").Load(); got != 1 {
		t.Errorf("items metric = %d", got)
	}
}

func TestFailureRetainsItems(t *testing.T) {
	q := &fakeQuery{}
	rec := logging.NewRecorder()
	c := New("entitlements", time.Minute, q.query, nil, rec)
	var failed sdk.Result
	c.OnFailure(func(r sdk.Result) { failed = r })

	c.Refresh()
	q.complete(sdk.Success, []string{"sword"})
	c.SetDirty()
	c.Refresh()
	q.complete(sdk.NoConnection, nil)

	if diff := cmp.Diff([]string{"sword"}, c.Items()); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
	if failed != sdk.NoConnection {
		t.Errorf("OnFailure got %v", failed)
	}
	if !rec.Contains(logging.LevelError, "entitlements") {
		t.Error("Failure not logged")
	}
	if c.Dirty() || c.InFlight() {
		t.Error("Cache not idle after failure")
	}

	// Eligible again once the interval elapses
	c.Update(30 * time.Second)
	if q.issued != 2 {
		t.Fatalf("Refreshed early, issued = %d", q.issued)
	}
	c.Update(30 * time.Second)
	if q.issued != 3 {
		t.Errorf("Timer did not trigger retry, issued = %d", q.issued)
	}
}

func TestDeclinedQueryStaysIdle(t *testing.T) {
	q := &fakeQuery{decline: true}
	c := New("lobby", time.Second, q.query, nil, nil)

	c.SetDirty()
	c.Update(time.Millisecond)
	if c.InFlight() {
		t.Error("Declined query entered in-flight state")
	}
	if !c.Dirty() {
		t.Error("Declined query cleared dirty")
	}

	q.decline = false
	c.Update(time.Millisecond)
	if q.issued != 1 {
		t.Errorf("issued = %d after accepting", q.issued)
	}
}

func TestClearDiscardsStaleResult(t *testing.T) {
	q := &fakeQuery{}
	c := New("offers", time.Minute, q.query, nil, nil)

	c.Refresh()
	c.Clear()
	q.complete(sdk.Success, []string{"stale"})

	if c.Len() != 0 {
		t.Errorf("Stale result applied: %v", c.Items())
	}
	if c.InFlight() {
		t.Error("Still in flight after Clear")
	}
	c.SetDirty()
	if !c.Refresh() {
		t.Error("Refresh after Clear not issued")
	}
}

func TestClearKeepsQueryInFlight(t *testing.T) {
	q := &fakeQuery{}
	c := New("offers", time.Minute, q.query, nil, nil)

	c.SetDirty()
	c.Update(time.Millisecond)
	c.Clear()
	c.SetDirty()
	c.Update(time.Millisecond)

	if q.issued != 1 {
		t.Fatalf("issued = %d before the first result arrived, want 1", q.issued)
	}
	if !c.InFlight() {
		t.Error("Cleared cache not in flight while its query is outstanding")
	}

	q.complete(sdk.Success, []string{"stale"})
	if diff := cmp.Diff([]string(nil), c.Items()); diff != "" {
		t.Errorf("Stale result applied (-want +got):\n%s", diff)
	}
	if !c.Dirty() {
		t.Error("Dirty flag lost with the stale result")
	}

	c.Update(time.Millisecond)
	if q.issued != 2 {
		t.Fatalf("issued = %d after the stale result, want 2", q.issued)
	}
	q.complete(sdk.Success, []string{"fresh"})
	if diff := cmp.Diff([]string{"fresh"}, c.Items()); diff != "" {
		t.Errorf("Items (-want +got):\n%s", diff)
	}
}
