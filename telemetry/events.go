// Package telemetry provides tank statistics, per-creature lifetimes,
// performance timing and run output.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventPurchase EventType = iota
	EventSale
	EventFoodDropped
	EventFoodEaten
	EventFoodExpired
	EventGrowth
	EventHungry
	EventPassivePayout
)

// String returns the snake_case name used in logs.
func (t EventType) String() string {
	switch t {
	case EventPurchase:
		return "purchase"
	case EventSale:
		return "sale"
	case EventFoodDropped:
		return "food_dropped"
	case EventFoodEaten:
		return "food_eaten"
	case EventFoodExpired:
		return "food_expired"
	case EventGrowth:
		return "growth"
	case EventHungry:
		return "hungry"
	case EventPassivePayout:
		return "passive_payout"
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int32
	EntityID uint32

	// Optional fields depending on event type
	Species uint8
	Amount  int64 // gold moved, when any
	Level   int   // new level for growth events
}

// NewPurchaseEvent creates a purchase event.
func NewPurchaseEvent(tick int32, creatureID uint32, species uint8, price int64) Event {
	return Event{Type: EventPurchase, Tick: tick, EntityID: creatureID, Species: species, Amount: price}
}

// NewSaleEvent creates a sale event.
func NewSaleEvent(tick int32, creatureID uint32, species uint8, value int64, level int) Event {
	return Event{Type: EventSale, Tick: tick, EntityID: creatureID, Species: species, Amount: value, Level: level}
}

// NewFoodEvent creates a food lifecycle event. For eaten food EntityID is
// the creature that ate it.
func NewFoodEvent(t EventType, tick int32, entityID uint32, amount int64) Event {
	return Event{Type: t, Tick: tick, EntityID: entityID, Amount: amount}
}

// NewGrowthEvent creates a level-up event.
func NewGrowthEvent(tick int32, creatureID uint32, species uint8, level int) Event {
	return Event{Type: EventGrowth, Tick: tick, EntityID: creatureID, Species: species, Level: level}
}

// NewHungryEvent records a creature's fed-to-hungry transition.
func NewHungryEvent(tick int32, creatureID uint32, species uint8) Event {
	return Event{Type: EventHungry, Tick: tick, EntityID: creatureID, Species: species}
}

// NewPassiveEvent records a passive income payout.
func NewPassiveEvent(tick int32, amount int64) Event {
	return Event{Type: EventPassivePayout, Tick: tick, Amount: amount}
}
