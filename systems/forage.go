package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/ypthao011/aquarium/components"
)

// FoodCandidate is an active pellet a creature may lock onto.
type FoodCandidate struct {
	Entity ecs.Entity
	X, Y   float64
}

// NearestFood returns the candidate closest to (x, y).
// On equal distance the earliest candidate wins.
func NearestFood(x, y float64, foods []FoodCandidate) (FoodCandidate, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, f := range foods {
		d := distance(x, y, f.X, f.Y)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best < 0 {
		return FoodCandidate{}, false
	}
	return foods[best], true
}

// SteerToward adds accel to vel along the direction from pos to (tx, ty).
func SteerToward(vel *components.Velocity, pos components.Position, tx, ty, accel float64) {
	a := heading(pos.X, pos.Y, tx, ty)
	vel.X += math.Cos(a) * accel
	vel.Y += math.Sin(a) * accel
}

// Jitter perturbs each velocity axis by a uniform value in [-scale/2, scale/2).
func Jitter(vel *components.Velocity, rng *rand.Rand, scale float64) {
	vel.X += (rng.Float64() - 0.5) * scale
	vel.Y += (rng.Float64() - 0.5) * scale
}
