package systems

import (
	"math/rand"
	"testing"

	"github.com/ypthao011/aquarium/components"
)

func TestPlaceSpawnBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := SpawnParams{Width: 1280, Height: 720, Margin: 50, MinDistance: 150, MaxAttempts: 50}

	for i := 0; i < 500; i++ {
		pos, _ := PlaceSpawn(rng, nil, p)
		if pos.X < 50 || pos.X >= 1230 {
			t.Fatalf("x out of range: %v", pos.X)
		}
		if pos.Y < 50 || pos.Y >= 410 {
			t.Fatalf("y out of range: %v", pos.Y)
		}
	}
}

func TestPlaceSpawnRespectsDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := SpawnParams{Width: 1280, Height: 720, Margin: 50, MinDistance: 150, MaxAttempts: 50}

	var placed []components.Position
	for i := 0; i < 6; i++ {
		pos, ok := PlaceSpawn(rng, placed, p)
		if ok {
			for _, other := range placed {
				if d := distance(pos.X, pos.Y, other.X, other.Y); d < 150 {
					t.Fatalf("spawn %d accepted at distance %v", i, d)
				}
			}
		}
		placed = append(placed, pos)
	}
}

func TestPlaceSpawnFallsBack(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	// Field too small for any candidate to clear the existing creature
	p := SpawnParams{Width: 200, Height: 200, Margin: 50, MinDistance: 500, MaxAttempts: 50}
	existing := []components.Position{{X: 100, Y: 100}}

	pos, ok := PlaceSpawn(rng, existing, p)
	if ok {
		t.Fatal("expected fallback")
	}
	if pos.X < 50 || pos.X >= 150 || pos.Y < 50 || pos.Y >= 150 {
		t.Errorf("fallback outside sampling range: %+v", pos)
	}
}
