package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies one timed section of Game.Step.
type Phase uint8

const (
	PhaseCreatures Phase = iota
	PhaseFoods
	PhaseRender
	PhaseTelemetry
	NumPhases
)

var phaseInfo = [NumPhases]struct {
	id, name, description string
}{
	PhaseCreatures: {"creatures", "Creatures", "Forage steering, movement and the hunger clock"},
	PhaseFoods:     {"foods", "Food", "Falls pellets and resolves feeding"},
	PhaseRender:    {"render", "Render", "Emits entity views to the presenter"},
	PhaseTelemetry: {"telemetry", "Telemetry", "Window stats and run output"},
}

// String returns the snake_case id used in logs and CSV columns.
func (p Phase) String() string {
	if p >= NumPhases {
		return "unknown"
	}
	return phaseInfo[p].id
}

// Name returns the display name.
func (p Phase) Name() string {
	if p >= NumPhases {
		return "Unknown"
	}
	return phaseInfo[p].name
}

// Description says what the phase covers.
func (p Phase) Description() string {
	if p >= NumPhases {
		return ""
	}
	return phaseInfo[p].description
}

type perfSample struct {
	tick   time.Duration
	phases [NumPhases]time.Duration
}

// PerfCollector keeps step timings over a rolling window of ticks.
type PerfCollector struct {
	budget  time.Duration // ticks longer than this count as slow
	samples []perfSample
	next    int
	filled  int

	current    perfSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
// A zero budget disables slow-tick counting.
func NewPerfCollector(windowSize int, budget time.Duration) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		budget:  budget,
		samples: make([]perfSample, windowSize),
	}
}

// StartTick begins timing a new step.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = perfSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase < NumPhases {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the step and stores it in the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.inPhase = false
	p.current.tick = now.Sub(p.tickStart)

	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	p.filled = min(p.filled+1, len(p.samples))
}

// PerfStats summarizes the window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	SlowTicks       int // ticks over the frame budget
	Samples         int

	PhaseAvg [NumPhases]time.Duration
	PhasePct [NumPhases]float64 // share of the average tick

	TicksPerSecond float64 // throughput if steps ran back to back
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Samples: p.filled}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [NumPhases]time.Duration
	for i, sample := range p.samples[:p.filled] {
		total += sample.tick
		if i == 0 || sample.tick < s.MinTickDuration {
			s.MinTickDuration = sample.tick
		}
		s.MaxTickDuration = max(s.MaxTickDuration, sample.tick)
		if p.budget > 0 && sample.tick > p.budget {
			s.SlowTicks++
		}
		for ph, d := range sample.phases {
			phaseSum[ph] += d
		}
	}

	n := time.Duration(p.filled)
	s.AvgTickDuration = total / n
	for ph := range phaseSum {
		s.PhaseAvg[ph] = phaseSum[ph] / n
		if s.AvgTickDuration > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgTickDuration) * 100
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("slow_ticks", s.SlowTicks),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	for ph := Phase(0); ph < NumPhases; ph++ {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	SlowTicks    int     `csv:"slow_ticks"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	CreaturesPct float64 `csv:"creatures_pct"`
	FoodsPct     float64 `csv:"foods_pct"`
	RenderPct    float64 `csv:"render_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for export.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		SlowTicks:    s.SlowTicks,
		TicksPerSec:  s.TicksPerSecond,
		CreaturesPct: s.PhasePct[PhaseCreatures],
		FoodsPct:     s.PhasePct[PhaseFoods],
		RenderPct:    s.PhasePct[PhaseRender],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
