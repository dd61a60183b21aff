package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// WaterBackground renders the tank water: a vertical gradient with slowly
// drifting light bands near the surface.
type WaterBackground struct {
	x, y, width, height float32
	top, bottom         rl.Color
	bands               int
}

// NewWaterBackground creates a water background covering the given area.
func NewWaterBackground(x, y, width, height int32) *WaterBackground {
	return &WaterBackground{
		x:      float32(x),
		y:      float32(y),
		width:  float32(width),
		height: float32(height),
		top:    rl.Color{R: 46, G: 139, B: 190, A: 255},
		bottom: rl.Color{R: 8, G: 48, B: 86, A: 255},
		bands:  5,
	}
}

// Draw renders the water at the given time in seconds.
func (w *WaterBackground) Draw(time float32) {
	rl.DrawRectangleGradientV(int32(w.x), int32(w.y), int32(w.width), int32(w.height), w.top, w.bottom)

	// Light bands sway with time and fade with depth
	for i := 0; i < w.bands; i++ {
		phase := float64(time)*0.3 + float64(i)*1.7
		cx := w.x + w.width*float32(i+1)/float32(w.bands+1) + float32(math.Sin(phase))*40
		bandW := float32(30 + 15*math.Sin(phase*0.7))
		rl.DrawTriangle(
			rl.Vector2{X: cx - bandW, Y: w.y},
			rl.Vector2{X: cx - bandW*3, Y: w.y + w.height*0.8},
			rl.Vector2{X: cx + bandW, Y: w.y},
			rl.Color{R: 255, G: 255, B: 255, A: 10},
		)
	}
}
