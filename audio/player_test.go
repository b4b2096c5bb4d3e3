package audio

import (
	"errors"
	"testing"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/gamesvc-samples/event"
)

type fakeOutput struct {
	startErr error
	started  bool
	stopped  bool
	played   []beep.Streamer
}

func (o *fakeOutput) Start(beep.SampleRate) error {
	o.started = o.startErr == nil
	return o.startErr
}

func (o *fakeOutput) Play(s beep.Streamer) { o.played = append(o.played, s) }
func (o *fakeOutput) Stop()                { o.stopped = true }

// drain streams s to the end and returns the sample count
func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("streamer did not end")
	return 0
}

func TestChimesAreFinite(t *testing.T) {
	cfg := DefaultConfig()
	for c := Cue(0); c < cueCount; c++ {
		s := Chime(c, cfg)
		if s == nil {
			t.Fatalf("no chime for %s", c)
		}
		n := drain(t, s)
		if n == 0 || n > cfg.SampleRate {
			t.Errorf("%s: %d samples", c, n)
		}
	}
	if Chime(cueCount, cfg) != nil {
		t.Error("chime for unknown cue")
	}
}

func TestCoinIsTwoNotes(t *testing.T) {
	cfg := DefaultConfig()
	rate := beep.SampleRate(cfg.SampleRate)
	want := rate.N(80e6) + rate.N(250e6)
	if got := drain(t, Chime(CueCoin, cfg)); got != want {
		t.Errorf("coin length = %d samples, want %d", got, want)
	}
}

func TestPlayerPlaysCueForEvents(t *testing.T) {
	out := &fakeOutput{}
	p := NewPlayer(DefaultConfig(), out, nil)
	if err := p.Start(); err != nil {
		t.Fatal(err)
	}

	p.OnGameEvent(event.NewText(event.EventCheckoutComplete, "u1", "tx1"))
	p.OnGameEvent(event.NewText(event.EventSessionInviteReceived, "u2", "Friend"))
	p.OnGameEvent(event.New(event.EventToggleNotification))

	if len(out.played) != 2 {
		t.Fatalf("played %d chimes, want 2", len(out.played))
	}
	if p.Played(CueCoin) != 1 || p.Played(CueBell) != 1 {
		t.Errorf("coin=%d bell=%d", p.Played(CueCoin), p.Played(CueBell))
	}

	p.Stop()
	if !out.stopped || p.IsRunning() {
		t.Error("Stop did not close the output")
	}
	if p.Play(CueCoin) {
		t.Error("played after Stop")
	}
}

func TestPlayerSilentWhenUnavailable(t *testing.T) {
	out := &fakeOutput{startErr: errors.New("no device")}
	p := NewPlayer(DefaultConfig(), out, nil)
	if err := p.Start(); err == nil {
		t.Fatal("Start hid the device error")
	}
	if p.Play(CueBell) || len(out.played) != 0 {
		t.Error("played without an output")
	}

	cfg := DefaultConfig()
	cfg.Enabled = false
	off := &fakeOutput{}
	p = NewPlayer(cfg, off, nil)
	if err := p.Start(); !errors.Is(err, ErrDisabled) {
		t.Errorf("Start = %v, want ErrDisabled", err)
	}
	if off.started {
		t.Error("disabled player opened the output")
	}
}

func TestPlayerMute(t *testing.T) {
	out := &fakeOutput{}
	p := NewPlayer(DefaultConfig(), out, nil)
	p.Init(true)
	p.Start()

	if p.Play(CueError) {
		t.Error("played while muted")
	}
	if !p.ToggleMute() {
		t.Error("ToggleMute did not unmute")
	}
	if !p.Play(CueError) {
		t.Error("not played after unmute")
	}
}

func TestNoteFreq(t *testing.T) {
	if f := NoteFreq(69); f != 440 {
		t.Errorf("A4 = %v", f)
	}
	if f := NoteFreq(NoteA5); f < 879.99 || f > 880.01 {
		t.Errorf("A5 = %v", f)
	}
	if NoteFreq(-1) != 0 || NoteFreq(128) != 0 {
		t.Error("out of range note has a frequency")
	}
}
