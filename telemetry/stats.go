package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Tank state at window end
	Population int   `csv:"population"`
	Hungry     int   `csv:"hungry"`
	Foods      int   `csv:"foods"`
	Balance    int64 `csv:"balance"`

	// Events during window
	Purchases      int     `csv:"purchases"`
	Sales          int     `csv:"sales"`
	FoodDropped    int     `csv:"food_dropped"`
	FoodEaten      int     `csv:"food_eaten"`
	FoodExpired    int     `csv:"food_expired"`
	EatRate        float64 `csv:"eat_rate"` // eaten / (eaten + expired)
	Growths        int     `csv:"growths"`
	HungerOnsets   int     `csv:"hunger_onsets"`
	PassivePayouts int     `csv:"passive_payouts"`

	// Gold flow
	GoldSpent  int64 `csv:"gold_spent"`
	GoldEarned int64 `csv:"gold_earned"`

	// Level distribution (sampled at window end)
	LevelMean float64 `csv:"level_mean"`
	LevelP50  float64 `csv:"level_p50"`
	LevelP90  float64 `csv:"level_p90"`
}

// ComputeLevelStats calculates mean and percentiles from creature levels.
func ComputeLevelStats(values []float64) (mean, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p50, p90
}

// NetGold returns earned minus spent for the window.
func (s WindowStats) NetGold() int64 {
	return s.GoldEarned - s.GoldSpent
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("population", s.Population),
		slog.Int("hungry", s.Hungry),
		slog.Int("foods", s.Foods),
		slog.Int64("balance", s.Balance),
		slog.Int("purchases", s.Purchases),
		slog.Int("sales", s.Sales),
		slog.Int("food_dropped", s.FoodDropped),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Int("food_expired", s.FoodExpired),
		slog.Float64("eat_rate", s.EatRate),
		slog.Int("growths", s.Growths),
		slog.Int("hunger_onsets", s.HungerOnsets),
		slog.Int("passive_payouts", s.PassivePayouts),
		slog.Int64("gold_spent", s.GoldSpent),
		slog.Int64("gold_earned", s.GoldEarned),
		slog.Float64("level_mean", s.LevelMean),
		slog.Float64("level_p50", s.LevelP50),
		slog.Float64("level_p90", s.LevelP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"population", s.Population,
		"hungry", s.Hungry,
		"balance", s.Balance,
		"food_eaten", s.FoodEaten,
		"food_expired", s.FoodExpired,
		"eat_rate", s.EatRate,
		"growths", s.Growths,
		"net_gold", s.NetGold(),
		"level_mean", s.LevelMean,
	)
}
