package main

import (
	"math"
	"testing"
	"time"

	"github.com/ypthao011/aquarium/config"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(raw[i]-back[i]) > 1e-9 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestClamp(t *testing.T) {
	pv := NewParamVector()
	low := make([]float64, pv.Dim())
	high := make([]float64, pv.Dim())
	for i := range low {
		low[i] = -1e6
		high[i] = 1e6
	}
	for i, v := range pv.Clamp(low) {
		if v != pv.Specs[i].Min {
			t.Errorf("%s: low clamp = %v, want %v", pv.Specs[i].Name, v, pv.Specs[i].Min)
		}
	}
	for i, v := range pv.Clamp(high) {
		if v != pv.Specs[i].Max {
			t.Errorf("%s: high clamp = %v, want %v", pv.Specs[i].Name, v, pv.Specs[i].Max)
		}
	}
}

func TestApplyToConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	pv.ApplyToConfig(cfg, []float64{11.6, 2.2, 3, 14.4, 99.5})

	if cfg.Economy.FeedReward != 12 {
		t.Errorf("FeedReward = %d, want 12", cfg.Economy.FeedReward)
	}
	if cfg.Economy.FoodCost != 2 {
		t.Errorf("FoodCost = %d, want 2", cfg.Economy.FoodCost)
	}
	if cfg.Economy.PassiveRate != 3 {
		t.Errorf("PassiveRate = %d, want 3", cfg.Economy.PassiveRate)
	}
	if cfg.Economy.PassiveInterval != 14*time.Second {
		t.Errorf("PassiveInterval = %v, want 14s", cfg.Economy.PassiveInterval)
	}
	if cfg.Economy.StartingBalance != 100 {
		t.Errorf("StartingBalance = %d, want 100", cfg.Economy.StartingBalance)
	}
}

func TestExtractMatchesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	got := pv.ExtractFromConfig(cfg)
	want := pv.DefaultVector()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: config %v, default %v", pv.Specs[i].Name, got[i], want[i])
		}
	}
}

func TestSimulateGrowsTank(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	// Two simulated minutes with the default economy buys at least one fish.
	ticks := int32(2 * time.Minute / cfg.Derived.FrameDT)
	r := simulate(cfg, 42, ticks)
	if r.population < 2 {
		t.Errorf("population = %d, want >= 2", r.population)
	}
	if len(r.windowStats) == 0 {
		t.Error("expected window stats")
	}
}
