package components

// Body holds the visual size of a creature.
// Footprint in px is Size * playfield.pixels_per_size.
type Body struct {
	BaseSize float64 // species size at level 0
	Size     float64 // BaseSize * (1 + Level*size_step)
}
