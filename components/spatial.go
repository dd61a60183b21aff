package components

// Position represents the top-left corner of an entity's footprint.
type Position struct {
	X, Y float64
}

// Velocity represents an entity's velocity in units per tick.
type Velocity struct {
	X, Y float64
}
