// Package audio synthesizes the aquarium's piano sounds with beep: a
// looping background melody and short cues for feeding and growth.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const (
	attackTime = 10 * time.Millisecond
	decayTime  = 100 * time.Millisecond
	floorGain  = 0.001 // exponential ramps cannot reach zero
)

// partial is one sine component of a piano tone.
type partial struct {
	mult float64 // frequency multiple of the fundamental
	gain float64 // share of the note velocity
	full bool    // fundamental uses the full attack-decay-sustain envelope
}

var pianoPartials = []partial{
	{mult: 1, gain: 1, full: true},
	{mult: 2, gain: 0.3},
	{mult: 3, gain: 0.15},
}

// pianoNote streams a fundamental plus two harmonics, each with its own
// envelope.
type pianoNote struct {
	freq     float64
	velocity float64
	rate     beep.SampleRate
	length   int
	position int
}

// NewPianoNote creates a piano-like tone. velocity is the peak linear gain
// of the fundamental.
func NewPianoNote(freq float64, duration time.Duration, velocity float64, rate beep.SampleRate) beep.Streamer {
	return &pianoNote{
		freq:     freq,
		velocity: velocity,
		rate:     rate,
		length:   rate.N(duration),
	}
}

func (n *pianoNote) Stream(samples [][2]float64) (int, bool) {
	if n.position >= n.length {
		return 0, false
	}
	dur := float64(n.length) / float64(n.rate)
	for i := range samples {
		if n.position >= n.length {
			return i, true
		}
		t := float64(n.position) / float64(n.rate)

		var val float64
		for _, p := range pianoPartials {
			peak := n.velocity * p.gain
			var g float64
			if p.full {
				g = fundamentalEnvelope(t, dur, peak)
			} else {
				g = harmonicEnvelope(t, dur, peak)
			}
			val += g * math.Sin(2*math.Pi*n.freq*p.mult*t)
		}

		samples[i][0] = val
		samples[i][1] = val
		n.position++
	}
	return len(samples), true
}

func (n *pianoNote) Err() error { return nil }

// fundamentalEnvelope: fast linear attack, decay to 70%, sag to 30% by
// 70% of the note, then release to silence.
func fundamentalEnvelope(t, dur, peak float64) float64 {
	attack := attackTime.Seconds()
	decay := decayTime.Seconds()
	sustainEnd := dur * 0.7
	switch {
	case t < attack:
		return peak * t / attack
	case t < decay:
		return expRamp(peak, peak*0.7, attack, decay, t)
	case t < sustainEnd:
		return expRamp(peak*0.7, peak*0.3, decay, sustainEnd, t)
	case t < dur:
		return expRamp(peak*0.3, floorGain, sustainEnd, dur, t)
	}
	return 0
}

// harmonicEnvelope: fast linear attack, then one long release.
func harmonicEnvelope(t, dur, peak float64) float64 {
	attack := attackTime.Seconds()
	switch {
	case t < attack:
		return peak * t / attack
	case t < dur:
		return expRamp(peak, floorGain, attack, dur, t)
	}
	return 0
}

// expRamp interpolates exponentially from v0 at t0 to v1 at t1.
func expRamp(v0, v1, t0, t1, t float64) float64 {
	if t1 <= t0 || v0 <= 0 || v1 <= 0 {
		return v1
	}
	frac := (t - t0) / (t1 - t0)
	return v0 * math.Pow(v1/v0, frac)
}

// newVolume wraps s in a linear gain. Zero or less is silent, since
// log2(0) is -Inf.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
