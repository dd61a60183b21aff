package telemetry

import "time"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDuration      time.Duration
	windowDurationTicks int32
	dt                  time.Duration

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	purchases      int
	sales          int
	foodDropped    int
	foodEaten      int
	foodExpired    int
	growths        int
	hungerOnsets   int
	passivePayouts int

	goldSpent  int64
	goldEarned int64
}

// NewCollector creates a new stats collector.
// window: how long each stats window lasts in simulated time
// dt: simulated time per tick
func NewCollector(window, dt time.Duration) *Collector {
	ticksPerWindow := int32(1)
	if dt > 0 {
		ticksPerWindow = int32(window / dt)
	}
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDuration:      window,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record folds an event into the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventPurchase:
		c.purchases++
		c.goldSpent += ev.Amount
	case EventSale:
		c.sales++
		c.goldEarned += ev.Amount
	case EventFoodDropped:
		c.foodDropped++
		c.goldSpent += ev.Amount
	case EventFoodEaten:
		c.foodEaten++
		c.goldEarned += ev.Amount
	case EventFoodExpired:
		c.foodExpired++
	case EventGrowth:
		c.growths++
	case EventHungry:
		c.hungerOnsets++
	case EventPassivePayout:
		c.passivePayouts++
		c.goldEarned += ev.Amount
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// TankState is the population snapshot sampled at window end.
type TankState struct {
	Population int
	Hungry     int
	Foods      int
	Balance    int64
	Levels     []float64 // one entry per creature
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, tank TankState) WindowStats {
	var eatRate float64
	if settled := c.foodEaten + c.foodExpired; settled > 0 {
		eatRate = float64(c.foodEaten) / float64(settled)
	}

	levelMean, levelP50, levelP90 := ComputeLevelStats(tank.Levels)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      (time.Duration(currentTick) * c.dt).Seconds(),

		Population: tank.Population,
		Hungry:     tank.Hungry,
		Foods:      tank.Foods,
		Balance:    tank.Balance,

		Purchases:      c.purchases,
		Sales:          c.sales,
		FoodDropped:    c.foodDropped,
		FoodEaten:      c.foodEaten,
		FoodExpired:    c.foodExpired,
		EatRate:        eatRate,
		Growths:        c.growths,
		HungerOnsets:   c.hungerOnsets,
		PassivePayouts: c.passivePayouts,

		GoldSpent:  c.goldSpent,
		GoldEarned: c.goldEarned,

		LevelMean: levelMean,
		LevelP50:  levelP50,
		LevelP90:  levelP90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.purchases = 0
	c.sales = 0
	c.foodDropped = 0
	c.foodEaten = 0
	c.foodExpired = 0
	c.growths = 0
	c.hungerOnsets = 0
	c.passivePayouts = 0
	c.goldSpent = 0
	c.goldEarned = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
