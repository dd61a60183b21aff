package game

import (
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/ypthao011/aquarium/components"
	"github.com/ypthao011/aquarium/economy"
	"github.com/ypthao011/aquarium/systems"
	"github.com/ypthao011/aquarium/telemetry"
)

// Step runs one simulation frame: every creature in insertion order, then
// every pellet, then render output.
func (g *Game) Step() {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseCreatures)
	g.updateCreatures()

	g.perfCollector.StartPhase(telemetry.PhaseFoods)
	g.updateFoods()

	g.perfCollector.StartPhase(telemetry.PhaseRender)
	g.render()

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// PassiveSecond advances the 1-second passive income timer.
func (g *Game) PassiveSecond() {
	earned, paid := g.ledger.Countdown(g.pop.Len())
	if paid && earned > 0 {
		g.collector.Record(telemetry.NewPassiveEvent(g.tick, earned))
		g.notify(SeverityInfo, "+%d Passive Gold!", earned)
	}
}

// Advance feeds elapsed time to the passive timer. At most one
// PassiveSecond runs per call; whole seconds beyond the first are dropped,
// not replayed.
func (g *Game) Advance(elapsed time.Duration) {
	g.passiveAccum += elapsed
	if g.passiveAccum >= time.Second {
		g.passiveAccum %= time.Second
		g.PassiveSecond()
	}
}

// activeFoodCandidates lists targetable pellets in insertion order.
func (g *Game) activeFoodCandidates() []systems.FoodCandidate {
	g.candidates = g.candidates[:0]
	for _, e := range g.pop.foods {
		pos, food := g.pop.foodMapper.Get(e)
		if !food.Active() {
			continue
		}
		g.candidates = append(g.candidates, systems.FoodCandidate{Entity: e, X: pos.X, Y: pos.Y})
	}
	return g.candidates
}

// updateCreatures runs foraging, motion and hunger for every creature that
// is not being dragged.
func (g *Game) updateCreatures() {
	agent := g.cfg.Agent
	field := g.cfg.Playfield
	candidates := g.activeFoodCandidates()

	for _, e := range g.pop.creatures {
		if g.drag.active && g.drag.entity == e {
			continue
		}
		pos, vel, body, hunger, _, forager, cr := g.pop.creatureMapper.Get(e)
		sp := g.cfg.Species[cr.Species]

		if hunger.Hungry && !forager.HasTarget {
			if target, ok := systems.NearestFood(pos.X, pos.Y, candidates); ok {
				forager.Target = target.Entity
				forager.HasTarget = true
			}
		}

		// Targets are weak handles; eaten or expired food reads as inactive
		if forager.HasTarget && g.pop.IsActiveFood(forager.Target) {
			tp := g.pop.posMap.Get(forager.Target)
			systems.SteerToward(vel, *pos, tp.X, tp.Y, agent.ForageAccel)
		} else {
			forager.ClearTarget()
			systems.Jitter(vel, g.rng, agent.Jitter)
		}

		systems.Integrate(pos, vel, systems.MotionParams{
			Friction:  agent.Friction,
			MaxSpeed:  systems.MaxSpeed(sp.Speed, hunger.Hungry, agent.HungrySpeedMult),
			Width:     field.Width,
			Height:    field.Height,
			Footprint: body.Size * field.PixelsPerSize,
			Padding:   field.Padding,
		})

		if systems.AdvanceHunger(hunger, agent.HungerStep) {
			g.collector.Record(telemetry.NewHungryEvent(g.tick, cr.ID, cr.Species))
			g.lifetimeTracker.RecordHungry(cr.ID)
		}
	}
}

func (g *Game) foodParams() systems.FoodParams {
	return systems.FoodParams{
		FallSpeed:   g.cfg.Food.FallSpeed,
		MaxFall:     g.cfg.Food.MaxFall,
		Size:        g.cfg.Food.Size,
		FieldHeight: g.cfg.Playfield.Height,
	}
}

// updateFoods advances every pellet, newest first. Removal checks run in
// order: fall distance, creature contact, leaving the playfield.
func (g *Game) updateFoods() {
	fp := g.foodParams()
	foods := g.pop.foods
	for i := len(foods) - 1; i >= 0; i-- {
		e := foods[i]
		pos, food := g.pop.foodMapper.Get(e)

		systems.FallFood(pos, fp)

		if systems.FoodTooFar(*pos, food, fp) {
			g.expireFood(e, food)
			continue
		}
		if g.feedFirstTouching(systems.Footprint(*pos, fp.Size)) {
			g.consumeFood(e, food)
			continue
		}
		if systems.FoodOffscreen(*pos, fp) {
			g.expireFood(e, food)
		}
	}
}

// feedFirstTouching offers the pellet to creatures in insertion order and
// stops at the first one that eats it.
func (g *Game) feedFirstTouching(foodBox systems.Rect) bool {
	ppx := g.cfg.Playfield.PixelsPerSize
	for _, e := range g.pop.creatures {
		pos, _, body, _, _, _, _ := g.pop.creatureMapper.Get(e)
		if !systems.Footprint(*pos, body.Size*ppx).Overlaps(foodBox) {
			continue
		}
		if g.feed(e) {
			return true
		}
	}
	return false
}

// feed runs the Fed transition on a creature and pays the reward.
func (g *Game) feed(e ecs.Entity) bool {
	_, _, body, hunger, growth, forager, cr := g.pop.creatureMapper.Get(e)
	res := systems.Feed(hunger, growth, body, forager, g.clock.Now(), g.growthParams())
	if !res.Fed {
		return false
	}

	reward := g.cfg.Economy.FeedReward
	g.ledger.Credit(reward, economy.ReasonFeedReward)
	g.notify(SeveritySuccess, "+%d Gold!", reward)
	g.presenter.PlayFeedCue()
	g.collector.Record(telemetry.NewFoodEvent(telemetry.EventFoodEaten, g.tick, cr.ID, reward))
	g.lifetimeTracker.RecordFeed(cr.ID, reward)

	if res.Grew {
		name := g.cfg.Species[cr.Species].Name
		g.notify(SeveritySuccess, "%s grew bigger! (Lv.%d)", name, res.Level)
		g.presenter.PlayGrowthCue()
		g.collector.Record(telemetry.NewGrowthEvent(g.tick, cr.ID, cr.Species, res.Level))
		g.lifetimeTracker.RecordGrowth(cr.ID, res.Level)
	}
	return true
}

func (g *Game) growthParams() systems.GrowthParams {
	return systems.GrowthParams{
		FeedsPerLevel: g.cfg.Growth.FeedsPerLevel,
		TimePerLevel:  g.cfg.Growth.TimePerLevel,
		MaxLevel:      g.cfg.Growth.MaxLevel,
		SizeStep:      g.cfg.Growth.SizeStep,
	}
}

func (g *Game) consumeFood(e ecs.Entity, food *components.Food) {
	food.State = components.FoodEaten
	id := food.ID
	g.pop.RemoveFood(e)
	g.presenter.RemoveEntity(id)
}

func (g *Game) expireFood(e ecs.Entity, food *components.Food) {
	food.State = components.FoodExpired
	id := food.ID
	g.collector.Record(telemetry.NewFoodEvent(telemetry.EventFoodExpired, g.tick, id, 0))
	g.pop.RemoveFood(e)
	g.presenter.RemoveEntity(id)
}

// render emits one command per entity plus the HUD.
func (g *Game) render() {
	ppx := g.cfg.Playfield.PixelsPerSize
	for _, e := range g.pop.creatures {
		pos, vel, body, hunger, growth, _, cr := g.pop.creatureMapper.Get(e)
		g.presenter.RenderEntityAt(EntityView{
			ID:      cr.ID,
			Kind:    KindCreature,
			Species: g.cfg.Species[cr.Species].Name,
			X:       pos.X,
			Y:       pos.Y,
			Size:    body.Size * ppx,
			Flipped: systems.FacingFlipped(*vel),
			Hungry:  hunger.Hungry,
			Hunger:  systems.HungerFraction(*hunger),
			Level:   growth.Level,
			Dragged: g.drag.active && g.drag.entity == e,
		})
	}
	for _, e := range g.pop.foods {
		pos, food := g.pop.foodMapper.Get(e)
		g.presenter.RenderEntityAt(EntityView{
			ID:   food.ID,
			Kind: KindFood,
			X:    pos.X,
			Y:    pos.Y,
			Size: g.cfg.Food.Size,
		})
	}
	g.presenter.SetHUD(g.HUD())
}
