package game

import (
	"log/slog"
	"time"

	"github.com/ypthao011/aquarium/telemetry"
)

// logPerfStats logs performance statistics with a per-phase breakdown.
func (g *Game) logPerfStats(perf telemetry.PerfStats) {
	perf.LogStats()

	total := perf.AvgTickDuration
	for ph := telemetry.Phase(0); ph < telemetry.NumPhases; ph++ {
		slog.Debug("phase",
			"name", ph.Name(),
			"avg", perf.PhaseAvg[ph].Round(time.Microsecond),
			"pct", perf.PhasePct[ph],
			"total", total.Round(time.Microsecond),
		)
	}
}

// LogWorldState logs a one-line summary of the tank.
func (g *Game) LogWorldState() {
	hungry, levels := g.pop.Sample()
	var maxLevel float64
	for _, l := range levels {
		maxLevel = max(maxLevel, l)
	}
	slog.Info("tank",
		"tick", g.tick,
		"population", g.pop.Len(),
		"hungry", hungry,
		"foods", len(g.pop.Foods()),
		"balance", g.ledger.Balance(),
		"max_level", int(maxLevel),
		"passive_in", g.ledger.SecondsToPayout(),
	)
}
