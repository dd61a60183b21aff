package game

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler owns a Game and drives it from a single goroutine: one Step per
// frame tick, one PassiveSecond per second, and queued inputs in between.
type Scheduler struct {
	game   *Game
	frame  time.Duration
	inputs chan Input
	onStep func(*Game) // optional, runs after every Step
}

// NewScheduler creates a scheduler running at the configured frame rate.
func NewScheduler(g *Game, inputBuffer int) *Scheduler {
	if inputBuffer < 1 {
		inputBuffer = 1
	}
	frame := g.cfg.Derived.FrameDT
	if frame <= 0 {
		frame = time.Second / 60
	}
	return &Scheduler{
		game:   g,
		frame:  frame,
		inputs: make(chan Input, inputBuffer),
	}
}

// OnStep installs a hook that runs on the simulation goroutine after every
// frame.
func (s *Scheduler) OnStep(fn func(*Game)) {
	s.onStep = fn
}

// Submit queues an input. It never blocks; when the queue is full the input
// is dropped and false is returned.
func (s *Scheduler) Submit(in Input) bool {
	select {
	case s.inputs <- in:
		return true
	default:
		slog.Warn("input queue full, dropping input")
		return false
	}
}

// Run drives the game until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	frameTicker := time.NewTicker(s.frame)
	defer frameTicker.Stop()
	passiveTicker := time.NewTicker(time.Second)
	defer passiveTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in := <-s.inputs:
			in.Apply(s.game)
		case <-frameTicker.C:
			s.game.Step()
			if s.onStep != nil {
				s.onStep(s.game)
			}
		case <-passiveTicker.C:
			s.game.PassiveSecond()
		}
	}
}
