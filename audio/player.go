package audio

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/ypthao011/aquarium/config"
)

// Player mixes the background loop and cues behind one master volume.
// Without Start it produces no sound but still accepts cues, so headless
// runs can share the code path.
type Player struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	mixer   *beep.Mixer
	master  *effects.Volume
	music   *beep.Ctrl
	loop    *beep.Buffer
	volume  float64
	started bool
}

// NewPlayer creates a player from the audio config.
func NewPlayer(cfg config.AudioConfig) *Player {
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = 44100
	}
	mixer := &beep.Mixer{}
	p := &Player{
		rate:   rate,
		mixer:  mixer,
		master: newVolume(mixer, cfg.Volume),
		volume: clampVolume(cfg.Volume),
	}
	if cfg.Music {
		p.loop = RenderLoop(rate)
		p.music = &beep.Ctrl{Streamer: beep.Loop(-1, p.loop.Streamer(0, p.loop.Len())), Paused: false}
		p.mixer.Add(p.music)
	}
	return p
}

// Start opens the audio device and begins playback.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(p.master)
	p.started = true
	slog.Info("audio started", "sample_rate", int(p.rate), "volume", p.volume)
	return nil
}

// locked runs fn while the speaker is not reading the mixer.
func (p *Player) locked(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

// PlayFeedCue plays the feeding chime.
func (p *Player) PlayFeedCue() {
	p.locked(func() { p.mixer.Add(FeedCue(p.rate)) })
}

// PlayGrowthCue plays the level-up arpeggio.
func (p *Player) PlayGrowthCue() {
	p.locked(func() { p.mixer.Add(GrowthCue(p.rate)) })
}

// SetMusicPaused pauses or resumes the background loop.
func (p *Player) SetMusicPaused(paused bool) {
	if p.music == nil {
		return
	}
	p.locked(func() { p.music.Paused = paused })
}

// SetVolume sets the linear master gain, clamped to [0, 1].
func (p *Player) SetVolume(v float64) {
	v = clampVolume(v)
	p.locked(func() {
		p.volume = v
		if v <= 0 {
			p.master.Silent = true
			return
		}
		p.master.Silent = false
		p.master.Volume = math.Log2(v)
	})
}

// Volume returns the linear master gain.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Active returns the number of streams in the mixer.
func (p *Player) Active() int {
	var n int
	p.locked(func() { n = p.mixer.Len() })
	return n
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.started = false
}

func clampVolume(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
