package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ypthao011/aquarium/components"
)

// MotionParams bundles the per-creature movement inputs for one tick.
type MotionParams struct {
	Friction  float64 // Velocity multiplier applied every tick
	MaxSpeed  float64 // Speed cap after friction
	Width     float64 // Playfield width
	Height    float64 // Playfield height
	Footprint float64 // Creature footprint in px
	Padding   float64 // Inner wall padding
}

// MaxSpeed returns the speed cap for a species, boosted while hungry.
func MaxSpeed(speciesSpeed float64, hungry bool, hungryMult float64) float64 {
	if hungry {
		return speciesSpeed * hungryMult
	}
	return speciesSpeed
}

// ClampSpeed scales vel down so its magnitude does not exceed maxSpeed.
func ClampSpeed(vel *components.Velocity, maxSpeed float64) {
	v := r2.Vec{X: vel.X, Y: vel.Y}
	speed := r2.Norm(v)
	if speed <= maxSpeed || speed == 0 {
		return
	}
	v = r2.Scale(maxSpeed/speed, v)
	vel.X, vel.Y = v.X, v.Y
}

// Integrate runs one motion tick: friction, position update, wall bounce,
// then the speed clamp. The step taken this tick uses the unclamped
// velocity; the clamp applies from the next tick on.
func Integrate(pos *components.Position, vel *components.Velocity, p MotionParams) {
	vel.X *= p.Friction
	vel.Y *= p.Friction

	pos.X += vel.X
	pos.Y += vel.Y

	Bounce(pos, vel, p)

	ClampSpeed(vel, p.MaxSpeed)
}

// Bounce keeps pos inside the padded playfield and points the offending
// velocity component back inward.
func Bounce(pos *components.Position, vel *components.Velocity, p MotionParams) {
	minX, minY := p.Padding, p.Padding
	maxX := math.Max(minX, p.Width-p.Footprint-p.Padding)
	maxY := math.Max(minY, p.Height-p.Footprint-p.Padding)

	if pos.X < minX {
		pos.X = minX
		vel.X = math.Abs(vel.X)
	} else if pos.X > maxX {
		pos.X = maxX
		vel.X = -math.Abs(vel.X)
	}
	if pos.Y < minY {
		pos.Y = minY
		vel.Y = math.Abs(vel.Y)
	} else if pos.Y > maxY {
		pos.Y = maxY
		vel.Y = -math.Abs(vel.Y)
	}
}

// FacingFlipped reports whether a creature sprite should be mirrored.
func FacingFlipped(vel components.Velocity) bool {
	return vel.X > 0
}

// ClampToField clamps a dragged creature's position so its footprint stays
// inside the playfield.
func ClampToField(x, y, footprint, width, height float64) components.Position {
	return components.Position{
		X: clampFloat(x, 0, math.Max(0, width-footprint)),
		Y: clampFloat(y, 0, math.Max(0, height-footprint)),
	}
}
