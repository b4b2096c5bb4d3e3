package clock

import (
	"testing"
	"time"
)

func TestRealProvider(t *testing.T) {
	p := NewReal()

	t1 := p.Now()
	time.Sleep(10 * time.Millisecond)
	t2 := p.Now()

	if !t2.After(t1) {
		t.Errorf("Expected t2 to be after t1, got t1=%v, t2=%v", t1, t2)
	}
}

func TestMock(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMock(start)

	if !m.Now().Equal(start) {
		t.Errorf("Expected initial time %v, got %v", start, m.Now())
	}

	next := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	m.Set(next)
	if !m.Now().Equal(next) {
		t.Errorf("Expected %v after Set, got %v", next, m.Now())
	}

	m.Advance(time.Hour)
	m.Advance(30 * time.Minute)
	if want := next.Add(90 * time.Minute); !m.Now().Equal(want) {
		t.Errorf("Expected %v after Advance, got %v", want, m.Now())
	}
}

func TestStopwatchLap(t *testing.T) {
	m := NewMock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	sw := NewStopwatch(m)

	m.Advance(16 * time.Millisecond)
	if d := sw.Lap(); d != 16*time.Millisecond {
		t.Errorf("Lap = %v, want 16ms", d)
	}
	if d := sw.Lap(); d != 0 {
		t.Errorf("Lap without advance = %v, want 0", d)
	}

	m.Advance(-time.Second)
	if d := sw.Lap(); d != 0 {
		t.Errorf("Lap after rewind = %v, want 0", d)
	}
}
