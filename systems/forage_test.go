package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ypthao011/aquarium/components"
)

func TestNearestFood(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		foods   []FoodCandidate
		wantIdx int // -1 for no result
	}{
		{
			name:    "no food",
			x:       0,
			y:       0,
			wantIdx: -1,
		},
		{
			name:    "single",
			x:       0,
			y:       0,
			foods:   []FoodCandidate{{X: 10, Y: 10}},
			wantIdx: 0,
		},
		{
			name:    "closest wins",
			x:       100,
			y:       100,
			foods:   []FoodCandidate{{X: 0, Y: 0}, {X: 90, Y: 100}, {X: 300, Y: 100}},
			wantIdx: 1,
		},
		{
			name:    "tie keeps first seen",
			x:       50,
			y:       50,
			foods:   []FoodCandidate{{X: 40, Y: 50}, {X: 60, Y: 50}},
			wantIdx: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NearestFood(tt.x, tt.y, tt.foods)
			if tt.wantIdx < 0 {
				if ok {
					t.Errorf("expected no target, got %+v", got)
				}
				return
			}
			if !ok {
				t.Fatal("expected a target")
			}
			want := tt.foods[tt.wantIdx]
			if got.X != want.X || got.Y != want.Y {
				t.Errorf("got (%v, %v), want (%v, %v)", got.X, got.Y, want.X, want.Y)
			}
		})
	}
}

func TestSteerToward(t *testing.T) {
	tests := []struct {
		name         string
		tx, ty       float64
		wantX, wantY float64
	}{
		{"right", 100, 0, 0.2, 0},
		{"down", 0, 100, 0, 0.2},
		{"up-left", -100, -100, -0.2 / math.Sqrt2, -0.2 / math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var vel components.Velocity
			SteerToward(&vel, components.Position{}, tt.tx, tt.ty, 0.2)
			if math.Abs(vel.X-tt.wantX) > 1e-9 || math.Abs(vel.Y-tt.wantY) > 1e-9 {
				t.Errorf("got (%v, %v), want (%v, %v)", vel.X, vel.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestJitterBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		var vel components.Velocity
		Jitter(&vel, rng, 0.2)
		if vel.X < -0.1 || vel.X >= 0.1 || vel.Y < -0.1 || vel.Y >= 0.1 {
			t.Fatalf("jitter out of range: %+v", vel)
		}
	}
}
