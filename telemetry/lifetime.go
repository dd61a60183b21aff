package telemetry

import "log/slog"

// LifetimeStats tracks per-creature statistics from purchase to sale.
type LifetimeStats struct {
	CreatureID    uint32  `csv:"creature_id"`
	Species       string  `csv:"species"`
	BirthTick     int32   `csv:"birth_tick"`
	SaleTick      int32   `csv:"sale_tick"`
	TankTimeSec   float64 `csv:"tank_time_sec"`
	PurchasePrice int64   `csv:"purchase_price"`
	SaleValue     int64   `csv:"sale_value"`
	FeedCount     int     `csv:"feeds"`
	FeedRewards   int64   `csv:"feed_rewards"` // gold credited for this creature's meals
	Level         int     `csv:"level"`
	HungerOnsets  int     `csv:"hunger_onsets"`
}

// Profit returns everything the creature earned minus its price.
func (s *LifetimeStats) Profit() int64 {
	return s.SaleValue + s.FeedRewards - s.PurchasePrice
}

// LogValue implements slog.LogValuer.
func (s *LifetimeStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("creature_id", s.CreatureID),
		slog.String("species", s.Species),
		slog.Float64("tank_time_sec", s.TankTimeSec),
		slog.Int("feeds", s.FeedCount),
		slog.Int("level", s.Level),
		slog.Int64("profit", s.Profit()),
	)
}

// LifetimeTracker manages per-creature lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a newly bought creature.
// Creatures placed at startup register with price 0.
func (lt *LifetimeTracker) Register(creatureID uint32, birthTick int32, species string, price int64) {
	lt.stats[creatureID] = &LifetimeStats{
		CreatureID:    creatureID,
		Species:       species,
		BirthTick:     birthTick,
		PurchasePrice: price,
	}
}

// Get returns the lifetime stats for a creature, or nil if not found.
func (lt *LifetimeTracker) Get(creatureID uint32) *LifetimeStats {
	return lt.stats[creatureID]
}

// Remove finalizes and removes a creature's stats.
func (lt *LifetimeTracker) Remove(creatureID uint32, saleTick int32, saleValue int64, tankTimeSec float64) *LifetimeStats {
	s := lt.stats[creatureID]
	if s == nil {
		return nil
	}
	delete(lt.stats, creatureID)
	s.SaleTick = saleTick
	s.SaleValue = saleValue
	s.TankTimeSec = tankTimeSec
	return s
}

// RecordFeed counts a meal and the reward it paid.
func (lt *LifetimeTracker) RecordFeed(creatureID uint32, reward int64) {
	if s := lt.stats[creatureID]; s != nil {
		s.FeedCount++
		s.FeedRewards += reward
	}
}

// RecordGrowth stores the creature's new level.
func (lt *LifetimeTracker) RecordGrowth(creatureID uint32, level int) {
	if s := lt.stats[creatureID]; s != nil && level > s.Level {
		s.Level = level
	}
}

// RecordHungry counts a fed-to-hungry transition.
func (lt *LifetimeTracker) RecordHungry(creatureID uint32) {
	if s := lt.stats[creatureID]; s != nil {
		s.HungerOnsets++
	}
}

// Count returns the number of tracked creatures.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
