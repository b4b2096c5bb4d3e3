package status

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMetricMapGetReturnsStablePointer(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	a := m.Get("fps")
	b := m.Get("fps")
	if a != b {
		t.Fatal("Expected the same pointer for repeated Get")
	}
	if !m.Has("fps") || m.Has("missing") {
		t.Error("Has reported wrong membership")
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Ints.Get("cache.catalog.refreshes").Add(1)
			}
		}()
	}
	wg.Wait()

	if got := r.Ints.Get("cache.catalog.refreshes").Load(); got != 1600 {
		t.Errorf("Expected 1600, got %d", got)
	}
	if r.TotalCount() != 1 {
		t.Errorf("Expected 1 metric, got %d", r.TotalCount())
	}
}

func TestRegistryLinesSorted(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("z.count").Store(3)
	r.Ints.Get("a.count").Store(1)
	r.Bools.Get("cache.store.inflight").Store(true)
	r.Floats.Get("frame.ms").Set(16.5)
	r.Strings.Get("lobby.current").Store(strings.Repeat("x", MaxStringLen+10))

	want := []string{
		"a.count = 1",
		"z.count = 3",
		"cache.store.inflight = true",
		"frame.ms = 16.500",
		`lobby.current = "` + strings.Repeat("x", MaxStringLen) + `"`,
	}
	if diff := cmp.Diff(want, r.Lines()); diff != "" {
		t.Errorf("Lines mismatch (-want +got):\n%s", diff)
	}
}

func TestAtomicFloatAdd(t *testing.T) {
	var f AtomicFloat
	f.Set(1.5)
	if got := f.Add(2.25); got != 3.75 {
		t.Errorf("Add = %v", got)
	}
	if f.Get() != 3.75 {
		t.Errorf("Get = %v", f.Get())
	}
}

func TestAtomicStringTruncatesOnRuneBoundary(t *testing.T) {
	var s AtomicString
	if s.Load() != "" {
		t.Fatalf("Zero value = %q", s.Load())
	}
	val := strings.Repeat("a", MaxStringLen-1) + "é"
	s.Store(val)
	if got, want := s.Load(), strings.Repeat("a", MaxStringLen-1); got != want {
		t.Errorf("Load = %q, want %q", got, want)
	}
}
