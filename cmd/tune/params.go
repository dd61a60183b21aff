package main

import (
	"math"
	"time"

	"github.com/ypthao011/aquarium/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of economy parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "feed_reward", Path: "economy.feed_reward", Min: 2, Max: 20, Default: 8},
			{Name: "food_cost", Path: "economy.food_cost", Min: 1, Max: 5, Default: 1},
			{Name: "passive_rate", Path: "economy.passive_rate", Min: 0, Max: 5, Default: 1},
			{Name: "passive_interval_sec", Path: "economy.passive_interval", Min: 5, Max: 30, Default: 10},
			{Name: "starting_balance", Path: "economy.starting_balance", Min: 10, Max: 150, Default: 50},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = max(spec.Min, min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToConfig writes parameter values into cfg. Gold amounts are rounded
// to whole coins. Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Economy.FeedReward = int64(math.Round(clamped[0]))
	cfg.Economy.FoodCost = int64(math.Round(clamped[1]))
	cfg.Economy.PassiveRate = int64(math.Round(clamped[2]))
	cfg.Economy.PassiveInterval = time.Duration(math.Round(clamped[3])) * time.Second
	cfg.Economy.StartingBalance = int64(math.Round(clamped[4]))
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Economy.FeedReward),
		float64(cfg.Economy.FoodCost),
		float64(cfg.Economy.PassiveRate),
		cfg.Economy.PassiveInterval.Seconds(),
		float64(cfg.Economy.StartingBalance),
	}
}
