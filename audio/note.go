package audio

import "math"

// noteFreqs holds equal-tempered frequencies for MIDI notes 0-127, A4 (69) = 440 Hz
var noteFreqs [128]float64

func init() {
	for i := range noteFreqs {
		noteFreqs[i] = 440 * math.Exp2((float64(i)-69)/12)
	}
}

// NoteFreq returns the frequency in Hz of a MIDI note, 0 when out of range
func NoteFreq(midi int) float64 {
	if midi < 0 || midi >= len(noteFreqs) {
		return 0
	}
	return noteFreqs[midi]
}

// Notes used by the chimes
const (
	NoteA5 = 81
	NoteB5 = 83
	NoteE6 = 88
	NoteA6 = 93
	NoteG2 = 43
)
