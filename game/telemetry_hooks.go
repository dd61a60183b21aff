package game

import (
	"log/slog"

	"github.com/ypthao011/aquarium/telemetry"
)

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	hungry, levels := g.pop.Sample()
	stats := g.collector.Flush(g.tick, telemetry.TankState{
		Population: g.pop.Len(),
		Hungry:     hungry,
		Foods:      len(g.pop.Foods()),
		Balance:    g.ledger.Balance(),
		Levels:     levels,
	})
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		g.logPerfStats(perfStats)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
