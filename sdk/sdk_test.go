package sdk

import (
	"errors"
	"sync"
	"testing"
)

func TestResultErr(t *testing.T) {
	if err := Success.Err(); err != nil {
		t.Errorf("Success.Err() = %v", err)
	}
	err := TimedOut.Err()
	if !errors.Is(err, ErrFailed) {
		t.Errorf("Expected ErrFailed in chain, got %v", err)
	}
	if got := err.Error(); got != "sdk: request failed: TimedOut" {
		t.Errorf("Error() = %q", got)
	}
	if got := Result(200).String(); got != "Result(200)" {
		t.Errorf("Unknown result String = %q", got)
	}
}

func TestCompletionsDrainOrder(t *testing.T) {
	var c Completions
	var got []int
	for i := 0; i < 3; i++ {
		c.Defer(func() { got = append(got, i) })
	}
	c.Defer(nil)

	if n := c.Drain(); n != 3 {
		t.Fatalf("Drain ran %d, want 3", n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("Order %v", got)
		}
	}
}

func TestCompletionsDeferDuringDrainRunsNextTick(t *testing.T) {
	var c Completions
	ran := 0
	c.Defer(func() {
		c.Defer(func() { ran++ })
	})

	c.Drain()
	if ran != 0 {
		t.Fatal("Nested callback ran in the same drain")
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
	c.Drain()
	if ran != 1 {
		t.Fatal("Nested callback did not run on the next drain")
	}
}

func TestCompletionsConcurrentDefer(t *testing.T) {
	var c Completions
	var wg sync.WaitGroup
	count := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				c.Defer(func() { count++ })
			}
		}()
	}
	wg.Wait()
	c.Drain()
	if count != 200 {
		t.Errorf("count = %d, want 200", count)
	}
}

func TestSubscribersCancel(t *testing.T) {
	var s Subscribers[int]
	var a, b int
	cancelA := s.Add(func(v int) { a += v })
	s.Add(func(v int) { b += v })

	s.Notify(1)
	cancelA()
	cancelA()
	s.Notify(2)

	if a != 1 || b != 3 {
		t.Errorf("a=%d b=%d", a, b)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d", s.Len())
	}
}

func TestSessionAttributeCaseInsensitive(t *testing.T) {
	s := Session{Attributes: []Attribute{{Key: "LEVEL", Value: "Forest"}}}
	if v, ok := s.Attribute("Level"); !ok || v != "Forest" {
		t.Errorf("Attribute = %q, %v", v, ok)
	}
	if _, ok := s.Attribute("Mode"); ok {
		t.Error("Unexpected attribute")
	}
}
