package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// A minor pentatonic, in Hz.
var noteFreq = map[string]float64{
	"A3": 220.00,
	"C4": 261.63,
	"D4": 293.66,
	"E4": 329.63,
	"G4": 392.00,
	"A4": 440.00,
	"C5": 523.25,
	"D5": 587.33,
	"E5": 659.25,
	"G5": 783.99,
	"A5": 880.00,
}

// ScoreNote is one note placed on the loop timeline.
type ScoreNote struct {
	Note     string
	Duration time.Duration
	Delay    time.Duration // offset from the loop start
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// LoopLength is the length of one pass of the background music.
const LoopLength = 15200 * time.Millisecond

const (
	melodyVelocity = 0.15
	bassVelocity   = 0.08
	cueVelocity    = 0.25
)

// Melody is four phrases of gentle arpeggios.
var Melody = []ScoreNote{
	{"A4", ms(800), 0},
	{"E4", ms(800), ms(400)},
	{"C4", ms(800), ms(800)},
	{"E4", ms(800), ms(1200)},
	{"A4", ms(1200), ms(1600)},

	{"C5", ms(800), ms(3200)},
	{"A4", ms(800), ms(3600)},
	{"E4", ms(800), ms(4000)},
	{"A4", ms(800), ms(4400)},
	{"C5", ms(1200), ms(4800)},

	{"D5", ms(800), ms(6400)},
	{"C5", ms(800), ms(6800)},
	{"A4", ms(800), ms(7200)},
	{"E4", ms(800), ms(7600)},
	{"D4", ms(1600), ms(8000)},

	{"E4", ms(800), ms(10000)},
	{"A4", ms(800), ms(10400)},
	{"C5", ms(800), ms(10800)},
	{"E5", ms(1200), ms(11200)},
	{"A4", ms(2000), ms(12800)},
}

// Bass holds one long note per phrase.
var Bass = []ScoreNote{
	{"A3", ms(3200), 0},
	{"C4", ms(3200), ms(3200)},
	{"D4", ms(3200), ms(6400)},
	{"A3", ms(3200), ms(9600)},
	{"E4", ms(2400), ms(12800)},
}

// feedCue is a single bright note.
var feedCue = []ScoreNote{
	{"A5", ms(250), 0},
}

// growthCue is a rising arpeggio.
var growthCue = []ScoreNote{
	{"A4", ms(300), 0},
	{"C5", ms(300), ms(90)},
	{"E5", ms(300), ms(180)},
	{"A5", ms(500), ms(270)},
}

// schedule mixes notes at their delays. The result lasts at least length.
func schedule(rate beep.SampleRate, velocity float64, length time.Duration, notes ...[]ScoreNote) beep.Streamer {
	streamers := []beep.Streamer{beep.Silence(rate.N(length))}
	for _, group := range notes {
		for _, n := range group {
			note := NewPianoNote(noteFreq[n.Note], n.Duration, velocity, rate)
			streamers = append(streamers, beep.Seq(beep.Silence(rate.N(n.Delay)), note))
		}
	}
	return beep.Mix(streamers...)
}

// format returns the stereo stream format used throughout the package.
func format(rate beep.SampleRate) beep.Format {
	return beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
}

// RenderLoop renders one pass of melody and bass into a seekable buffer.
func RenderLoop(rate beep.SampleRate) *beep.Buffer {
	melody := schedule(rate, melodyVelocity, LoopLength, Melody)
	bass := schedule(rate, bassVelocity, LoopLength, Bass)

	buf := beep.NewBuffer(format(rate))
	buf.Append(beep.Take(rate.N(LoopLength), beep.Mix(melody, bass)))
	return buf
}

// FeedCue returns a fresh feed cue streamer.
func FeedCue(rate beep.SampleRate) beep.Streamer {
	return schedule(rate, cueVelocity, 0, feedCue)
}

// GrowthCue returns a fresh growth cue streamer.
func GrowthCue(rate beep.SampleRate) beep.Streamer {
	return schedule(rate, cueVelocity, 0, growthCue)
}
