package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Wave is an oscillator shape
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator produces a fixed-length tone
type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     Wave
	rate     beep.SampleRate
}

// Tone returns a streamer of d worth of wave at freq Hz
func Tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, length: rate.N(d), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = rand.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// sine returns d of a pure sine tone from the beep generators
func sine(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	s, err := generators.SineTone(rate, freq)
	if err != nil {
		return Tone(freq, d, WaveSine, rate)
	}
	return beep.Take(rate.N(d), s)
}

// envelope fades a streamer in over attack and out over release
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// Shape applies a linear attack/release envelope to s, which lasts d
func Shape(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; e.release > 0 && left < e.release {
			vol = math.Max(float64(left)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// gain scales s linearly; beep volume is logarithmic so zero maps to silent
func gain(s beep.Streamer, g float64) beep.Streamer {
	if g <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(g)}
}

// Chime builds the streamer for c at the configured volume
func Chime(c Cue, cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	var s beep.Streamer

	switch c {
	case CueError:
		d := 150 * time.Millisecond
		s = Shape(Tone(NoteFreq(NoteG2), d, WaveSaw, rate), d, 5*time.Millisecond, 60*time.Millisecond, rate)

	case CueBell:
		d := 600 * time.Millisecond
		fund := Shape(sine(NoteFreq(NoteA5), d, rate), d, 5*time.Millisecond, 550*time.Millisecond, rate)
		over := Shape(sine(NoteFreq(NoteA6), d, rate), d, 5*time.Millisecond, 300*time.Millisecond, rate)
		s = beep.Mix(gain(fund, 0.7), gain(over, 0.3))

	case CueWhoosh:
		d := 200 * time.Millisecond
		s = Shape(Tone(0, d, WaveNoise, rate), d, 80*time.Millisecond, 110*time.Millisecond, rate)

	case CueCoin:
		d1, d2 := 80*time.Millisecond, 250*time.Millisecond
		n1 := Shape(Tone(NoteFreq(NoteB5), d1, WaveSquare, rate), d1, 2*time.Millisecond, 20*time.Millisecond, rate)
		n2 := Shape(Tone(NoteFreq(NoteE6), d2, WaveSquare, rate), d2, 2*time.Millisecond, 200*time.Millisecond, rate)
		s = beep.Seq(n1, n2)

	default:
		return nil
	}
	return gain(s, cfg.Volume(c))
}
