package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Bubble is one decorative bubble rising through the tank.
type Bubble struct {
	X, Y   float32
	Radius float32
	Speed  float32 // px per second
	Phase  float32 // wobble offset
}

// Bubbles spawns and rises decorative bubbles. It is presentation only and
// never touches the simulation.
type Bubbles struct {
	rng           *rand.Rand
	list          []Bubble
	width, height float32
	interval      float32 // seconds between spawns
	accum         float32
	maxBubbles    int
}

// NewBubbles creates a bubble emitter for a tank of the given size.
func NewBubbles(rng *rand.Rand, width, height float32) *Bubbles {
	return &Bubbles{
		rng:        rng,
		width:      width,
		height:     height,
		interval:   0.5,
		maxBubbles: 40,
	}
}

// Update advances bubbles by dt seconds, spawning new ones at the bottom
// and dropping those that reached the surface.
func (b *Bubbles) Update(dt float32) {
	b.accum += dt
	for b.accum >= b.interval {
		b.accum -= b.interval
		if len(b.list) < b.maxBubbles {
			b.list = append(b.list, Bubble{
				X:      b.rng.Float32() * b.width,
				Y:      b.height,
				Radius: 2 + b.rng.Float32()*6,
				Speed:  30 + b.rng.Float32()*50,
				Phase:  b.rng.Float32() * 2 * math.Pi,
			})
		}
	}

	kept := b.list[:0]
	for _, bb := range b.list {
		bb.Y -= bb.Speed * dt
		bb.Phase += dt * 2
		if bb.Y+bb.Radius < 0 {
			continue
		}
		kept = append(kept, bb)
	}
	b.list = kept
}

// Len returns the number of live bubbles.
func (b *Bubbles) Len() int {
	return len(b.list)
}

// Draw renders the bubbles offset by the tank origin.
func (b *Bubbles) Draw(originX, originY float32) {
	for _, bb := range b.list {
		x := originX + bb.X + float32(math.Sin(float64(bb.Phase)))*3
		y := originY + bb.Y
		rl.DrawCircleLines(int32(x), int32(y), bb.Radius, rl.Color{R: 220, G: 240, B: 255, A: 140})
		rl.DrawCircle(int32(x-bb.Radius/3), int32(y-bb.Radius/3), bb.Radius/4, rl.Color{R: 255, G: 255, B: 255, A: 120})
	}
}
