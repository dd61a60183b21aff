// Package components defines ECS components for the aquarium simulation.
package components

import (
	"time"

	"github.com/mlange-42/ark/ecs"
)

// Creature identifies a purchasable animal.
type Creature struct {
	ID      uint32 // Stable presentation ID
	Species uint8  // Index into config species catalog
}

// Hunger tracks the Fed/Hungry state machine.
// Elapsed only advances while fed and resets to zero on a successful feed.
type Hunger struct {
	Hungry  bool
	Elapsed time.Duration
	Timeout time.Duration
}

// Growth tracks feeding history and level.
// Level and FeedCount never decrease.
type Growth struct {
	Level     int
	FeedCount int
	CreatedAt time.Time
}

// Forager holds a creature's current food target.
// The target is a weak handle: it must be checked against the world
// and the food state before every use.
type Forager struct {
	Target    ecs.Entity
	HasTarget bool
}

// ClearTarget drops the current target.
func (f *Forager) ClearTarget() {
	f.Target = ecs.Entity{}
	f.HasTarget = false
}

// FoodState is the lifecycle state of a food pellet.
type FoodState uint8

const (
	FoodActive FoodState = iota
	FoodEaten
	FoodExpired
)

// String returns the display name for a FoodState.
func (s FoodState) String() string {
	switch s {
	case FoodActive:
		return "active"
	case FoodEaten:
		return "eaten"
	case FoodExpired:
		return "expired"
	}
	return "unknown"
}

// Food holds per-pellet state. Position is stored separately.
type Food struct {
	ID      uint32
	OriginY float64 // y at spawn, used for the fall-distance limit
	State   FoodState
}

// Active reports whether the pellet can still be targeted or eaten.
func (f *Food) Active() bool {
	return f.State == FoodActive
}
