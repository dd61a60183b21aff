package audio

import (
	"fmt"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// WriteWAV renders d of background music, with the cues mixed in at fixed
// offsets, to a WAV file at path.
func WriteWAV(path string, rate beep.SampleRate, volume float64, d time.Duration) error {
	loop := RenderLoop(rate)
	music := beep.Loop(-1, loop.Streamer(0, loop.Len()))

	mixed := beep.Mix(
		music,
		beep.Seq(beep.Silence(rate.N(time.Second)), FeedCue(rate)),
		beep.Seq(beep.Silence(rate.N(2*time.Second)), GrowthCue(rate)),
	)
	out := newVolume(beep.Take(rate.N(d), mixed), volume)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating wav: %w", err)
	}
	if err := wav.Encode(f, out, format(rate)); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding wav: %w", err)
	}
	return f.Close()
}
