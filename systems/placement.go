package systems

import (
	"math/rand"

	"github.com/ypthao011/aquarium/components"
)

// SpawnParams controls rejection-sampled spawn placement.
type SpawnParams struct {
	Width       float64
	Height      float64
	Margin      float64
	MinDistance float64
	MaxAttempts int
}

// PlaceSpawn samples candidate positions with x in [margin, width-margin)
// and y in [margin, height/2+margin), returning the first one at least
// MinDistance from every existing position. When no candidate qualifies the
// last one is returned with ok=false.
func PlaceSpawn(rng *rand.Rand, existing []components.Position, p SpawnParams) (pos components.Position, ok bool) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		pos = components.Position{
			X: rng.Float64()*(p.Width-2*p.Margin) + p.Margin,
			Y: rng.Float64()*(p.Height*0.5) + p.Margin,
		}
		if farFromAll(pos, existing, p.MinDistance) {
			return pos, true
		}
	}
	return pos, false
}

func farFromAll(pos components.Position, existing []components.Position, minDist float64) bool {
	for _, other := range existing {
		if distance(pos.X, pos.Y, other.X, other.Y) < minDist {
			return false
		}
	}
	return true
}
