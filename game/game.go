// Package game runs the aquarium simulation: creatures, food, the gold
// ledger and the inputs that drive them.
package game

import (
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ypthao011/aquarium/config"
	"github.com/ypthao011/aquarium/economy"
	"github.com/ypthao011/aquarium/systems"
	"github.com/ypthao011/aquarium/telemetry"
)

// Options configures a Game beyond the loaded config.
type Options struct {
	Seed          int64
	Presenter     Presenter                   // nil = NopPresenter
	Clock         Clock                       // nil = SystemClock
	Pricer        SellPricer                  // optional resale override
	Output        *telemetry.OutputManager    // optional CSV output, closed by Game.Close
	Journal       *telemetry.Journal          // optional transaction journal, closed by Game.Close
	LogStats      bool                        // log window stats via slog
	StatsCallback func(telemetry.WindowStats) // called on every stats flush
}

// Placement is the pending purchase awaiting a playfield click.
type Placement struct {
	Active  bool
	Species string
}

// Game holds the complete simulation state. It is not safe for concurrent
// use; drive it from one goroutine (see Scheduler).
type Game struct {
	cfg       *config.Config
	rng       *rand.Rand
	clock     Clock
	pop       *Population
	ledger    *economy.Ledger
	presenter Presenter
	printer   *message.Printer

	placement Placement
	drag      dragState

	// State
	tick         int32
	passiveAccum time.Duration
	candidates   []systems.FoodCandidate // reused each frame

	// Telemetry
	collector       *telemetry.Collector
	lifetimeTracker *telemetry.LifetimeTracker
	perfCollector   *telemetry.PerfCollector
	outputManager   *telemetry.OutputManager
	journal         *telemetry.Journal
	logStats        bool
	statsCallback   func(telemetry.WindowStats)
}

// NewGame creates a game with the configured starting population.
func NewGame(cfg *config.Config, opts Options) *Game {
	presenter := opts.Presenter
	if presenter == nil {
		presenter = NopPresenter{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Game{
		cfg:             cfg,
		rng:             rng,
		clock:           clock,
		pop:             NewPopulation(cfg, rng, clock),
		ledger:          economy.NewLedger(cfg.Economy),
		presenter:       presenter,
		printer:         message.NewPrinter(language.English),
		collector:       telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.FrameDT),
		lifetimeTracker: telemetry.NewLifetimeTracker(),
		perfCollector:   telemetry.NewPerfCollector(cfg.Telemetry.PerfWindowSize, cfg.Derived.FrameDT),
		outputManager:   opts.Output,
		journal:         opts.Journal,
		logStats:        opts.LogStats,
		statsCallback:   opts.StatsCallback,
	}
	g.pop.SetPricer(opts.Pricer)

	if g.journal != nil {
		g.ledger.OnTransaction(g.journalTransaction)
	}

	for _, name := range cfg.InitialPopulation {
		if _, err := g.spawnCreature(name, nil, 0); err != nil {
			slog.Error("failed to spawn initial creature", "species", name, "error", err)
		}
	}

	return g
}

// Tick returns the number of simulation frames run.
func (g *Game) Tick() int32 {
	return g.tick
}

// Balance returns the current gold.
func (g *Game) Balance() int64 {
	return g.ledger.Balance()
}

// Ledger exposes the gold ledger.
func (g *Game) Ledger() *economy.Ledger {
	return g.ledger
}

// Population exposes the creature and food collections.
func (g *Game) Population() *Population {
	return g.pop
}

// Placement returns the pending placement, if any.
func (g *Game) Placement() Placement {
	return g.placement
}

// Config returns the game's configuration.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// PerfStats returns timing over the perf window.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// HUD returns the current economy readout.
func (g *Game) HUD() HUD {
	return HUD{
		Tick:          g.tick,
		Balance:       g.ledger.Balance(),
		Population:    g.pop.Len(),
		PassiveIncome: g.ledger.PassivePreview(g.pop.Len()),
		Countdown:     g.ledger.SecondsToPayout(),
		Placement:     g.placement.Species,
	}
}

// notify formats with thousands separators and forwards to the presenter.
func (g *Game) notify(severity Severity, format string, args ...any) {
	g.presenter.Notify(g.printer.Sprintf(format, args...), severity)
}

// Close flushes and closes run output.
func (g *Game) Close() error {
	var firstErr error
	if g.journal != nil {
		if err := g.journal.Close(); err != nil {
			firstErr = err
		}
	}
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
