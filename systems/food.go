package systems

import "github.com/ypthao011/aquarium/components"

// Rect is an axis-aligned box in playfield coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether two boxes intersect. Shared edges count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X <= o.X+o.W && r.X+r.W >= o.X &&
		r.Y <= o.Y+o.H && r.Y+r.H >= o.Y
}

// Footprint returns the square box at pos with the given side length.
func Footprint(pos components.Position, side float64) Rect {
	return Rect{X: pos.X, Y: pos.Y, W: side, H: side}
}

// FoodParams bundles falling food tunables.
type FoodParams struct {
	FallSpeed   float64
	MaxFall     float64
	Size        float64
	FieldHeight float64
}

// FallFood moves a pellet down one tick.
func FallFood(pos *components.Position, p FoodParams) {
	pos.Y += p.FallSpeed
}

// FoodTooFar reports whether a pellet has fallen past its distance limit.
func FoodTooFar(pos components.Position, food *components.Food, p FoodParams) bool {
	return pos.Y-food.OriginY > p.MaxFall
}

// FoodOffscreen reports whether a pellet has left the bottom of the playfield.
func FoodOffscreen(pos components.Position, p FoodParams) bool {
	return pos.Y > p.FieldHeight
}
