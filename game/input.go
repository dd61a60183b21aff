package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/ypthao011/aquarium/components"
	"github.com/ypthao011/aquarium/economy"
	"github.com/ypthao011/aquarium/systems"
	"github.com/ypthao011/aquarium/telemetry"
)

// dragState tracks the creature held by the pointer.
type dragState struct {
	active  bool
	entity  ecs.Entity
	offsetX float64 // pointer minus creature position at grab time
	offsetY float64
}

// PurchaseRequested handles a shop button press. In placement mode the
// purchase waits for a playfield click; otherwise it is bought right away.
func (g *Game) PurchaseRequested(species string) error {
	sp, _, ok := g.cfg.SpeciesByName(species)
	if !ok {
		g.notify(SeverityError, "Unknown species: %s", species)
		return fmt.Errorf("purchase %q: %w", species, ErrUnknownSpecies)
	}

	if !g.ledger.CanAfford(sp.Price) {
		g.notify(SeverityError, "Not enough gold!")
		return nil
	}

	if !g.cfg.Economy.PlacementMode {
		_, err := g.buy(sp.Name, nil)
		return err
	}

	g.placement = Placement{Active: true, Species: sp.Name}
	g.notify(SeverityInfo, "Click anywhere to place your %s!", sp.Name)
	return nil
}

// CancelPlacement leaves placement mode without buying.
func (g *Game) CancelPlacement() {
	g.placement = Placement{}
}

// PlayfieldClick places the pending purchase, or drops a pellet.
func (g *Game) PlayfieldClick(x, y float64) {
	if g.placement.Active {
		species := g.placement.Species
		g.placement = Placement{}
		off := g.cfg.Economy.PlacementOffset
		if _, err := g.buy(species, &components.Position{X: x - off, Y: y - off}); err != nil {
			slog.Error("placement failed", "species", species, "error", err)
		}
		return
	}

	cost := g.cfg.Economy.FoodCost
	if !g.ledger.Debit(cost, economy.ReasonFood) {
		g.notify(SeverityError, "Not enough gold to feed!")
		return
	}
	e := g.pop.SpawnFood(x, y)
	id := g.pop.foodMap.Get(e).ID
	g.collector.Record(telemetry.NewFoodEvent(telemetry.EventFoodDropped, g.tick, id, cost))
}

// buy debits the species price and spawns the creature. A nil position
// uses rejection-sampled placement. Returns false when gold ran out.
func (g *Game) buy(species string, at *components.Position) (bool, error) {
	sp, _, ok := g.cfg.SpeciesByName(species)
	if !ok {
		return false, fmt.Errorf("buy %q: %w", species, ErrUnknownSpecies)
	}
	if !g.ledger.Debit(sp.Price, economy.ReasonPurchase) {
		g.notify(SeverityError, "Not enough gold!")
		return false, nil
	}
	if _, err := g.spawnCreature(sp.Name, at, sp.Price); err != nil {
		return false, err
	}
	g.notify(SeveritySuccess, "Bought a %s!", sp.Name)
	return true, nil
}

// spawnCreature adds a creature and registers its telemetry.
func (g *Game) spawnCreature(species string, at *components.Position, price int64) (ecs.Entity, error) {
	e, err := g.pop.Spawn(species, at)
	if err != nil {
		return ecs.Entity{}, err
	}
	cr := g.pop.creatureMap.Get(e)
	g.lifetimeTracker.Register(cr.ID, g.tick, species, price)
	if price > 0 {
		g.collector.Record(telemetry.NewPurchaseEvent(g.tick, cr.ID, cr.Species, price))
	}

	pos := g.pop.posMap.Get(e)
	slog.Debug("creature added",
		"id", cr.ID,
		"species", species,
		"x", pos.X,
		"y", pos.Y,
		"price", price,
	)
	return e, nil
}

// PointerDown grabs the creature with the given presentation ID.
func (g *Game) PointerDown(id uint32, x, y float64) error {
	e, ok := g.pop.Lookup(id)
	if !ok || !g.pop.IsCreature(e) {
		return fmt.Errorf("grab %d: %w", id, ErrUnknownEntity)
	}
	pos := g.pop.posMap.Get(e)
	g.drag = dragState{
		active:  true,
		entity:  e,
		offsetX: x - pos.X,
		offsetY: y - pos.Y,
	}
	g.notify(SeverityInfo, "Dragging %s... Drop on sell zone to sell!", g.pop.SpeciesOf(e).Name)
	return nil
}

// PointerMove drags the held creature, keeping its footprint in the tank.
func (g *Game) PointerMove(x, y float64) {
	if !g.drag.active || !g.pop.IsCreature(g.drag.entity) {
		g.drag = dragState{}
		return
	}
	pos := g.pop.posMap.Get(g.drag.entity)
	*pos = systems.ClampToField(
		x-g.drag.offsetX,
		y-g.drag.offsetY,
		g.pop.Footprint(g.drag.entity),
		g.cfg.Playfield.Width,
		g.cfg.Playfield.Height,
	)
}

// PointerUp releases the held creature. Releasing over the sell zone sells it.
func (g *Game) PointerUp(x, y float64) {
	if !g.drag.active {
		return
	}
	e := g.drag.entity
	g.drag = dragState{}
	if !g.pop.IsCreature(e) {
		return
	}

	cr := g.pop.creatureMap.Get(e)
	if g.cfg.SellZone.Contains(x, y) {
		if _, err := g.Sell(cr.ID); err != nil {
			slog.Error("sell failed", "id", cr.ID, "error", err)
		}
		return
	}
	g.notify(SeveritySuccess, "%s placed!", g.cfg.Species[cr.Species].Name)
}

// Sell removes a creature and credits its value.
func (g *Game) Sell(id uint32) (int64, error) {
	e, ok := g.pop.Lookup(id)
	if !ok || !g.pop.IsCreature(e) {
		return 0, fmt.Errorf("sell %d: %w", id, ErrUnknownEntity)
	}

	cr := *g.pop.creatureMap.Get(e)
	growth := *g.pop.growthMap.Get(e)
	name := g.cfg.Species[cr.Species].Name
	tankTime := g.pop.TimeInTank(e)

	value, _ := g.pop.Remove(e)
	if g.drag.entity == e {
		g.drag = dragState{}
	}

	g.ledger.Credit(value, economy.ReasonSale)
	if growth.Level > 0 {
		g.notify(SeveritySuccess, "Sold %s (Lv.%d) for %d gold!", name, growth.Level, value)
	} else {
		g.notify(SeveritySuccess, "Sold %s for %d gold!", name, value)
	}
	g.presenter.RemoveEntity(id)

	g.collector.Record(telemetry.NewSaleEvent(g.tick, cr.ID, cr.Species, value, growth.Level))
	if s := g.lifetimeTracker.Remove(cr.ID, g.tick, value, tankTime.Seconds()); s != nil {
		s.Level = growth.Level
		s.FeedCount = growth.FeedCount
		if err := g.outputManager.WriteSale(s); err != nil {
			slog.Error("failed to write sale", "error", err)
		}
		slog.Info("creature sold", "stats", s)
	}
	return value, nil
}

// journalTransaction appends a ledger transaction to the journal.
func (g *Game) journalTransaction(tx economy.Transaction) {
	err := g.journal.Write(telemetry.JournalEntry{
		Tick:    g.tick,
		Reason:  tx.Reason.String(),
		Amount:  tx.Amount,
		Balance: tx.Balance,
	})
	if err != nil {
		slog.Error("failed to write journal", "error", err)
	}
}

// Input is one player action queued for the simulation goroutine.
type Input interface {
	Apply(g *Game)
}

// PointerDownInput grabs a creature.
type PointerDownInput struct {
	ID   uint32
	X, Y float64
}

func (in PointerDownInput) Apply(g *Game) {
	if err := g.PointerDown(in.ID, in.X, in.Y); err != nil {
		g.notify(SeverityError, "Nothing to grab there")
		slog.Debug("pointer down ignored", "error", err)
	}
}

// PointerMoveInput drags the held creature.
type PointerMoveInput struct {
	X, Y float64
}

func (in PointerMoveInput) Apply(g *Game) { g.PointerMove(in.X, in.Y) }

// PointerUpInput releases the held creature.
type PointerUpInput struct {
	X, Y float64
}

func (in PointerUpInput) Apply(g *Game) { g.PointerUp(in.X, in.Y) }

// ClickInput is a plain playfield click.
type ClickInput struct {
	X, Y float64
}

func (in ClickInput) Apply(g *Game) { g.PlayfieldClick(in.X, in.Y) }

// PurchaseInput is a shop button press.
type PurchaseInput struct {
	Species string
}

func (in PurchaseInput) Apply(g *Game) {
	if err := g.PurchaseRequested(in.Species); err != nil {
		slog.Debug("purchase rejected", "error", err)
	}
}

// CancelPlacementInput leaves placement mode.
type CancelPlacementInput struct{}

func (CancelPlacementInput) Apply(g *Game) { g.CancelPlacement() }

// StatSheetInput asks for a creature's stat sheet. Reply runs on the
// simulation goroutine.
type StatSheetInput struct {
	ID    uint32
	Reply func(StatSheet, error)
}

func (in StatSheetInput) Apply(g *Game) {
	sheet, err := g.StatSheet(in.ID)
	if in.Reply != nil {
		in.Reply(sheet, err)
	}
}
