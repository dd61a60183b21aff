package systems

import (
	"time"

	"github.com/ypthao011/aquarium/components"
)

// GrowthParams controls level-ups on feeding.
type GrowthParams struct {
	FeedsPerLevel int
	TimePerLevel  time.Duration
	MaxLevel      int
	SizeStep      float64
}

// FeedResult describes the outcome of a feed attempt.
type FeedResult struct {
	Fed   bool
	Grew  bool
	Level int
}

// AdvanceHunger advances the hunger clock by one fixed step while fed.
// Returns true on the tick the creature becomes hungry.
func AdvanceHunger(h *components.Hunger, step time.Duration) bool {
	if h.Hungry {
		return false
	}
	h.Elapsed += step
	if h.Elapsed >= h.Timeout {
		h.Hungry = true
		return true
	}
	return false
}

// HungerFraction reports how far the hunger clock has run, from 0 just after
// a feed to 1 once hungry.
func HungerFraction(h components.Hunger) float64 {
	if h.Hungry || h.Timeout <= 0 {
		return 1
	}
	f := float64(h.Elapsed) / float64(h.Timeout)
	if f > 1 {
		return 1
	}
	return f
}

// Feed attempts to feed a creature. Only hungry creatures eat; a successful
// feed resets the hunger clock, drops the forage target and may grow the
// creature by one level.
func Feed(h *components.Hunger, g *components.Growth, body *components.Body, f *components.Forager, now time.Time, p GrowthParams) FeedResult {
	if !h.Hungry {
		return FeedResult{Level: g.Level}
	}

	h.Hungry = false
	h.Elapsed = 0
	f.ClearTarget()
	g.FeedCount++

	grew := CheckGrowth(g, body, now, p)
	return FeedResult{Fed: true, Grew: grew, Level: g.Level}
}

// CheckGrowth commits at most one level when both the feed count and the
// time in tank allow it.
func CheckGrowth(g *components.Growth, body *components.Body, now time.Time, p GrowthParams) bool {
	if g.Level >= p.MaxLevel {
		return false
	}
	potential := g.FeedCount / p.FeedsPerLevel
	if potential <= g.Level {
		return false
	}
	required := time.Duration(g.Level+1) * p.TimePerLevel
	if now.Sub(g.CreatedAt) < required {
		return false
	}

	g.Level++
	body.Size = BodySize(body.BaseSize, g.Level, p.SizeStep)
	return true
}

// BodySize returns the visual size for a base size at a given level.
func BodySize(base float64, level int, step float64) float64 {
	return base * (1 + float64(level)*step)
}
