package game

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/ypthao011/aquarium/components"
	"github.com/ypthao011/aquarium/config"
	"github.com/ypthao011/aquarium/scripting"
	"github.com/ypthao011/aquarium/systems"
)

var (
	// ErrUnknownSpecies is returned for species missing from the catalog.
	ErrUnknownSpecies = errors.New("unknown species")
	// ErrUnknownEntity is returned for IDs that are not (or no longer) in the tank.
	ErrUnknownEntity = errors.New("unknown entity")
)

// SellPricer can override the built-in resale formula.
type SellPricer interface {
	SellValue(ctx scripting.SellContext) (int64, bool)
}

// Population owns every creature and food entity. Both collections keep
// insertion order, which decides update order and collision priority.
type Population struct {
	cfg    *config.Config
	world  *ecs.World
	rng    *rand.Rand
	clock  Clock
	pricer SellPricer

	creatureMapper *ecs.Map7[
		components.Position,
		components.Velocity,
		components.Body,
		components.Hunger,
		components.Growth,
		components.Forager,
		components.Creature,
	]
	foodMapper *ecs.Map2[components.Position, components.Food]

	// Individual component mappers for lookups
	posMap      *ecs.Map[components.Position]
	bodyMap     *ecs.Map[components.Body]
	growthMap   *ecs.Map[components.Growth]
	creatureMap *ecs.Map[components.Creature]
	foodMap     *ecs.Map[components.Food]

	tankFilter *ecs.Filter2[components.Hunger, components.Growth]

	creatures []ecs.Entity
	foods     []ecs.Entity
	byID      map[uint32]ecs.Entity
	nextID    uint32
}

// NewPopulation creates an empty tank.
func NewPopulation(cfg *config.Config, rng *rand.Rand, clock Clock) *Population {
	world := ecs.NewWorld()
	return &Population{
		cfg:   cfg,
		world: world,
		rng:   rng,
		clock: clock,
		creatureMapper: ecs.NewMap7[
			components.Position,
			components.Velocity,
			components.Body,
			components.Hunger,
			components.Growth,
			components.Forager,
			components.Creature,
		](world),
		foodMapper:  ecs.NewMap2[components.Position, components.Food](world),
		posMap:      ecs.NewMap[components.Position](world),
		bodyMap:     ecs.NewMap[components.Body](world),
		growthMap:   ecs.NewMap[components.Growth](world),
		creatureMap: ecs.NewMap[components.Creature](world),
		foodMap:     ecs.NewMap[components.Food](world),
		tankFilter:  ecs.NewFilter2[components.Hunger, components.Growth](world),
		byID:        make(map[uint32]ecs.Entity),
		nextID:      1,
	}
}

// SetPricer installs a resale override. nil restores the built-in formula.
func (p *Population) SetPricer(pricer SellPricer) {
	p.pricer = pricer
}

// Spawn adds a creature of the named species. With a nil position the spawn
// point is chosen by rejection sampling away from existing creatures.
func (p *Population) Spawn(species string, at *components.Position) (ecs.Entity, error) {
	sp, idx, ok := p.cfg.SpeciesByName(species)
	if !ok {
		return ecs.Entity{}, fmt.Errorf("spawn %q: %w", species, ErrUnknownSpecies)
	}

	var pos components.Position
	if at != nil {
		pos = *at
	} else {
		pos = p.placeSpawn()
	}

	id := p.nextID
	p.nextID++

	vel := components.Velocity{
		X: (p.rng.Float64() - 0.5) * sp.Speed,
		Y: (p.rng.Float64() - 0.5) * sp.Speed,
	}
	body := components.Body{BaseSize: sp.Size, Size: sp.Size}
	// Newborns arrive hungry
	hunger := components.Hunger{Hungry: true, Elapsed: sp.HungerTime, Timeout: sp.HungerTime}
	growth := components.Growth{CreatedAt: p.clock.Now()}
	forager := components.Forager{}
	cr := components.Creature{ID: id, Species: idx}

	e := p.creatureMapper.NewEntity(&pos, &vel, &body, &hunger, &growth, &forager, &cr)
	p.creatures = append(p.creatures, e)
	p.byID[id] = e
	return e, nil
}

// placeSpawn runs rejection sampling against current creature positions.
func (p *Population) placeSpawn() components.Position {
	existing := make([]components.Position, 0, len(p.creatures))
	for _, e := range p.creatures {
		existing = append(existing, *p.posMap.Get(e))
	}
	pos, _ := systems.PlaceSpawn(p.rng, existing, systems.SpawnParams{
		Width:       p.cfg.Playfield.Width,
		Height:      p.cfg.Playfield.Height,
		Margin:      p.cfg.Spawn.Margin,
		MinDistance: p.cfg.Spawn.MinDistance,
		MaxAttempts: p.cfg.Spawn.MaxAttempts,
	})
	return pos
}

// SpawnFood drops a pellet at (x, y). The caller pays for it first.
func (p *Population) SpawnFood(x, y float64) ecs.Entity {
	id := p.nextID
	p.nextID++

	pos := components.Position{X: x, Y: y}
	food := components.Food{ID: id, OriginY: y, State: components.FoodActive}
	e := p.foodMapper.NewEntity(&pos, &food)
	p.foods = append(p.foods, e)
	p.byID[id] = e
	return e
}

// Remove takes a creature out of the tank and returns its sale value.
// The caller credits the ledger.
func (p *Population) Remove(e ecs.Entity) (int64, bool) {
	if !p.IsCreature(e) {
		return 0, false
	}
	value := p.SellValue(e)
	id := p.creatureMap.Get(e).ID

	p.creatures = removeOrdered(p.creatures, e)
	delete(p.byID, id)
	p.world.RemoveEntity(e)
	return value, true
}

// RemoveFood destroys a pellet. Forage targets pointing at it go stale.
func (p *Population) RemoveFood(e ecs.Entity) {
	if !p.IsFood(e) {
		return
	}
	delete(p.byID, p.foodMap.Get(e).ID)
	p.foods = removeOrdered(p.foods, e)
	p.world.RemoveEntity(e)
}

func removeOrdered(list []ecs.Entity, e ecs.Entity) []ecs.Entity {
	i := slices.Index(list, e)
	if i < 0 {
		return list
	}
	return slices.Delete(list, i, i+1)
}

// SellValue returns what a creature would fetch right now.
func (p *Population) SellValue(e ecs.Entity) int64 {
	sp := p.SpeciesOf(e)
	growth := p.growthMap.Get(e)
	value := systems.SellValue(sp.Price, growth.Level, systems.SellParams{
		Fraction:   p.cfg.Economy.SellFraction,
		LevelBonus: p.cfg.Economy.SellLevelBonus,
	})
	if p.pricer != nil {
		if v, ok := p.pricer.SellValue(scripting.SellContext{
			Species:   sp.Name,
			Price:     sp.Price,
			Level:     growth.Level,
			FeedCount: growth.FeedCount,
			Default:   value,
		}); ok {
			value = v
		}
	}
	return value
}

// Lookup resolves a presentation ID.
func (p *Population) Lookup(id uint32) (ecs.Entity, bool) {
	e, ok := p.byID[id]
	return e, ok
}

// IsCreature reports whether e is a live creature.
func (p *Population) IsCreature(e ecs.Entity) bool {
	return e != (ecs.Entity{}) && p.world.Alive(e) && p.creatureMap.Has(e)
}

// IsFood reports whether e is a live pellet.
func (p *Population) IsFood(e ecs.Entity) bool {
	return e != (ecs.Entity{}) && p.world.Alive(e) && p.foodMap.Has(e)
}

// IsActiveFood reports whether e can still be targeted.
func (p *Population) IsActiveFood(e ecs.Entity) bool {
	return p.IsFood(e) && p.foodMap.Get(e).Active()
}

// SpeciesOf returns the species config of a creature.
func (p *Population) SpeciesOf(e ecs.Entity) config.SpeciesConfig {
	return p.cfg.Species[p.creatureMap.Get(e).Species]
}

// Footprint returns a creature's side length in playfield units.
func (p *Population) Footprint(e ecs.Entity) float64 {
	return p.bodyMap.Get(e).Size * p.cfg.Playfield.PixelsPerSize
}

// TimeInTank returns how long a creature has been in the tank.
func (p *Population) TimeInTank(e ecs.Entity) time.Duration {
	return p.clock.Now().Sub(p.growthMap.Get(e).CreatedAt)
}

// Position returns a pointer to an entity's position.
func (p *Population) Position(e ecs.Entity) *components.Position {
	return p.posMap.Get(e)
}

// Creatures returns live creatures in insertion order. Do not modify.
func (p *Population) Creatures() []ecs.Entity {
	return p.creatures
}

// Foods returns live pellets in insertion order. Do not modify.
func (p *Population) Foods() []ecs.Entity {
	return p.foods
}

// Len returns the creature count.
func (p *Population) Len() int {
	return len(p.creatures)
}

// Sample counts hungry creatures and collects every creature's level.
func (p *Population) Sample() (hungry int, levels []float64) {
	levels = make([]float64, 0, len(p.creatures))
	query := p.tankFilter.Query()
	for query.Next() {
		hunger, growth := query.Get()
		if hunger.Hungry {
			hungry++
		}
		levels = append(levels, float64(growth.Level))
	}
	return hungry, levels
}
