package main

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/ypthao011/aquarium/config"
	"github.com/ypthao011/aquarium/game"
	"github.com/ypthao011/aquarium/telemetry"
)

// Gold the scripted player keeps back for food before buying.
const foodReserve = 5

// FitnessEvaluator runs headless games with a scripted player and scores how
// close the resulting tank comes to the target size.
type FitnessEvaluator struct {
	params     *ParamVector
	configPath string
	maxTicks   int32
	seeds      []int64
	target     int

	mu          sync.Mutex
	lastHungry  float64
	lastCreates float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, configPath string, maxTicks int32, seeds []int64, target int) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		configPath: configPath,
		maxTicks:   maxTicks,
		seeds:      seeds,
		target:     target,
	}
}

// LastRun returns the mean final population and hungry fraction from the
// most recent evaluation.
func (fe *FitnessEvaluator) LastRun() (population, hungryFrac float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastCreates, fe.lastHungry
}

// runResult holds the results from a single simulation run.
type runResult struct {
	population  int
	balance     int64
	windowStats []telemetry.WindowStats
}

// hungryFraction is the share of creature-windows spent hungry.
func (r runResult) hungryFraction() float64 {
	var hungry, total int
	for _, w := range r.windowStats {
		hungry += w.Hungry
		total += w.Population
	}
	if total == 0 {
		return 1
	}
	return float64(hungry) / float64(total)
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			cfg, err := config.Load(fe.configPath)
			if err != nil {
				return
			}
			fe.params.ApplyToConfig(cfg, x)
			results[idx] = simulate(cfg, s, fe.maxTicks)
		}(i, seed)
	}
	wg.Wait()

	var fitness, pop, hungry float64
	for _, r := range results {
		miss := float64(r.population - fe.target)
		h := r.hungryFraction()
		fitness += miss*miss + 10*h*h
		pop += float64(r.population)
		hungry += h
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastCreates = pop / n
	fe.lastHungry = hungry / n
	fe.mu.Unlock()

	return fitness / n
}

// simulate plays one game with a greedy player: it drops food above a
// creature whenever any are hungry and no food is falling, and buys the
// cheapest species it can afford while keeping a food reserve.
func simulate(cfg *config.Config, seed int64, maxTicks int32) runResult {
	cfg.Economy.PlacementMode = false

	result := runResult{}
	clock := game.NewSimClock(time.Unix(0, 0))
	g := game.NewGame(cfg, game.Options{
		Seed:  seed,
		Clock: clock,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	defer g.Close()

	rng := rand.New(rand.NewSource(seed))
	cheapest := cheapestSpecies(cfg)
	frame := cfg.Derived.FrameDT
	ticksPerSecond := int32(time.Second / frame)

	for g.Tick() < maxTicks {
		if g.Tick()%ticksPerSecond == 0 {
			pop := g.Population()
			hungry, _ := pop.Sample()
			if creatures := pop.Creatures(); hungry > 0 && len(pop.Foods()) == 0 && len(creatures) > 0 {
				at := pop.Position(creatures[rng.Intn(len(creatures))])
				g.PlayfieldClick(at.X, math.Max(0, at.Y-60))
			}
			if cheapest.Name != "" && g.Balance() >= cheapest.Price+foodReserve {
				_ = g.PurchaseRequested(cheapest.Name)
			}
		}

		g.Step()
		clock.Advance(frame)
		g.Advance(frame)
	}

	result.population = g.Population().Len()
	result.balance = g.Balance()
	return result
}

func cheapestSpecies(cfg *config.Config) config.SpeciesConfig {
	var best config.SpeciesConfig
	for _, sp := range cfg.Species {
		if best.Name == "" || sp.Price < best.Price {
			best = sp
		}
	}
	return best
}
