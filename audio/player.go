package audio

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/gamesvc-samples/event"
	"github.com/lixenwraith/gamesvc-samples/logging"
)

// Config holds playback settings
type Config struct {
	Enabled      bool
	SampleRate   int
	MasterVolume float64
	CueVolumes   [cueCount]float64
}

// DefaultConfig returns enabled audio at 44.1 kHz
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		SampleRate:   44100,
		MasterVolume: 0.5,
		CueVolumes:   [cueCount]float64{CueError: 0.6, CueBell: 0.8, CueWhoosh: 0.4, CueCoin: 0.6},
	}
}

// Volume returns the linear gain for c
func (c Config) Volume(cue Cue) float64 {
	if cue < 0 || cue >= cueCount {
		return 0
	}
	return c.CueVolumes[cue] * c.MasterVolume
}

// Output is where chimes are played
type Output interface {
	Start(rate beep.SampleRate) error
	Play(s beep.Streamer)
	Stop()
}

// Speaker is the beep speaker Output
type Speaker struct{}

// Start opens the default device with a 100 ms buffer
func (Speaker) Start(rate beep.SampleRate) error {
	return speaker.Init(rate, rate.N(100*time.Millisecond))
}

func (Speaker) Play(s beep.Streamer) { speaker.Play(s) }

func (Speaker) Stop() {
	speaker.Clear()
	speaker.Close()
}

// ErrDisabled is returned by Start when audio is turned off in the config
var ErrDisabled = errors.New("audio disabled")

// Player is the audio service and a bus listener that plays a chime per event
type Player struct {
	mu     sync.Mutex
	cfg    Config
	out    Output
	log    logging.Logger
	played [cueCount]int

	running atomic.Bool
	muted   atomic.Bool
}

// NewPlayer creates a player writing to out; a nil out uses the Speaker
func NewPlayer(cfg Config, out Output, log logging.Logger) *Player {
	if out == nil {
		out = Speaker{}
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Player{cfg: cfg, out: out, log: log}
}

func (p *Player) Name() string           { return "audio" }
func (p *Player) Dependencies() []string { return nil }
func (p *Player) Optional() bool         { return true }

// Init accepts an optional bool muting the player
func (p *Player) Init(args ...any) error {
	if len(args) > 0 {
		if muted, ok := args[0].(bool); ok {
			p.muted.Store(muted)
		}
	}
	return nil
}

// Start opens the output; on failure the player stays silent
func (p *Player) Start() error {
	if p.running.Load() {
		return nil
	}
	if !p.cfg.Enabled {
		return ErrDisabled
	}
	if err := p.out.Start(beep.SampleRate(p.cfg.SampleRate)); err != nil {
		return err
	}
	p.running.Store(true)
	p.log.Log("Audio output started at %d Hz", p.cfg.SampleRate)
	return nil
}

func (p *Player) Stop() error {
	if p.running.CompareAndSwap(true, false) {
		p.out.Stop()
	}
	return nil
}

// IsRunning reports whether an output is open
func (p *Player) IsRunning() bool { return p.running.Load() }

// ToggleMute flips muting and reports whether sound is now on
func (p *Player) ToggleMute() bool {
	muted := !p.muted.Load()
	p.muted.Store(muted)
	return !muted
}

func (p *Player) IsMuted() bool { return p.muted.Load() }

// Play queues c; it returns false when nothing is played
func (p *Player) Play(c Cue) bool {
	if !p.running.Load() || p.muted.Load() {
		return false
	}
	s := Chime(c, p.cfg)
	if s == nil {
		return false
	}
	p.mu.Lock()
	p.played[c]++
	p.mu.Unlock()
	p.out.Play(s)
	return true
}

// Played returns how many times c was played
func (p *Player) Played(c Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c < 0 || c >= cueCount {
		return 0
	}
	return p.played[c]
}

func (p *Player) OnGameEvent(ev event.Event) {
	if c, ok := CueFor(ev.Type()); ok {
		p.Play(c)
	}
}
