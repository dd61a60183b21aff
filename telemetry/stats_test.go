package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestComputeLevelStats(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantP50  float64
		wantP90  float64
	}{
		{"empty", nil, 0, 0, 0},
		{"single", []float64{3}, 3, 3, 3},
		{"spread", []float64{4, 0, 2, 1, 3}, 2, 2, 4},
		{"all zero", []float64{0, 0, 0}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, p50, p90 := ComputeLevelStats(tt.values)
			if math.Abs(mean-tt.wantMean) > 1e-9 {
				t.Errorf("mean = %v, want %v", mean, tt.wantMean)
			}
			if p50 != tt.wantP50 {
				t.Errorf("p50 = %v, want %v", p50, tt.wantP50)
			}
			if p90 != tt.wantP90 {
				t.Errorf("p90 = %v, want %v", p90, tt.wantP90)
			}
		})
	}
}

func TestComputeLevelStatsDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeLevelStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input mutated: %v", values)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(time.Second, time.Second/60)
	if c.WindowDurationTicks() != 60 {
		t.Fatalf("ticks per window: got %d, want 60", c.WindowDurationTicks())
	}

	c.Record(NewPurchaseEvent(1, 1, 0, 30))
	c.Record(NewFoodEvent(EventFoodDropped, 2, 2, 1))
	c.Record(NewFoodEvent(EventFoodDropped, 3, 3, 1))
	c.Record(NewFoodEvent(EventFoodEaten, 10, 1, 8))
	c.Record(NewFoodEvent(EventFoodExpired, 40, 3, 0))
	c.Record(NewGrowthEvent(10, 1, 0, 1))
	c.Record(NewPassiveEvent(50, 2))

	if c.ShouldFlush(59) {
		t.Error("flush requested before window end")
	}
	if !c.ShouldFlush(60) {
		t.Fatal("flush not requested at window end")
	}

	stats := c.Flush(60, TankState{Population: 2, Balance: 29, Levels: []float64{0, 1}})

	if stats.Purchases != 1 || stats.FoodDropped != 2 || stats.FoodEaten != 1 || stats.FoodExpired != 1 {
		t.Errorf("counts: %+v", stats)
	}
	if stats.EatRate != 0.5 {
		t.Errorf("eat rate: got %v, want 0.5", stats.EatRate)
	}
	if stats.GoldSpent != 32 || stats.GoldEarned != 10 {
		t.Errorf("gold flow: spent %d earned %d", stats.GoldSpent, stats.GoldEarned)
	}
	if stats.NetGold() != -22 {
		t.Errorf("net gold: got %d, want -22", stats.NetGold())
	}
	if math.Abs(stats.SimTimeSec-1) > 1e-6 {
		t.Errorf("sim time: got %v, want 1", stats.SimTimeSec)
	}

	// Counters reset
	next := c.Flush(120, TankState{})
	if next.Purchases != 0 || next.GoldSpent != 0 || next.WindowStartTick != 60 {
		t.Errorf("window not reset: %+v", next)
	}
}
