package game

import (
	"fmt"

	"github.com/ypthao011/aquarium/systems"
)

// StatSheet is the readout shown when a creature is inspected.
type StatSheet struct {
	ID         uint32 `json:"id"`
	Species    string `json:"species"`
	TimeInTank string `json:"time_in_tank"`
	FeedCount  int    `json:"feed_count"`
	Level      int    `json:"level"`
	Worth      int64  `json:"worth"`
	Hungry     bool   `json:"hungry"`
}

// StatSheet returns the current stat sheet for a creature.
func (g *Game) StatSheet(id uint32) (StatSheet, error) {
	e, ok := g.pop.Lookup(id)
	if !ok || !g.pop.IsCreature(e) {
		return StatSheet{}, fmt.Errorf("stat sheet %d: %w", id, ErrUnknownEntity)
	}
	_, _, _, hunger, growth, _, _ := g.pop.creatureMapper.Get(e)
	return StatSheet{
		ID:         id,
		Species:    g.pop.SpeciesOf(e).Name,
		TimeInTank: systems.FormatTimeInTank(g.pop.TimeInTank(e)),
		FeedCount:  growth.FeedCount,
		Level:      growth.Level,
		Worth:      g.pop.SellValue(e),
		Hungry:     hunger.Hungry,
	}, nil
}
