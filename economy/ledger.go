// Package economy holds the gold ledger and passive income countdown.
package economy

import (
	"log/slog"
	"time"

	"github.com/ypthao011/aquarium/config"
)

// Reason labels why gold moved.
type Reason uint8

const (
	ReasonFood Reason = iota
	ReasonFeedReward
	ReasonPurchase
	ReasonSale
	ReasonPassive
)

// String returns the display name for a Reason.
func (r Reason) String() string {
	switch r {
	case ReasonFood:
		return "food"
	case ReasonFeedReward:
		return "feed_reward"
	case ReasonPurchase:
		return "purchase"
	case ReasonSale:
		return "sale"
	case ReasonPassive:
		return "passive"
	}
	return "unknown"
}

// Transaction is one applied balance change.
type Transaction struct {
	Reason  Reason
	Amount  int64 // Positive for credits, negative for debits
	Balance int64 // Balance after the change
}

// LogValue implements slog.LogValuer.
func (t Transaction) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("reason", t.Reason.String()),
		slog.Int64("amount", t.Amount),
		slog.Int64("balance", t.Balance),
	)
}

// Ledger tracks the gold balance and the passive income countdown.
// It is not safe for concurrent use; the owning game loop serializes access.
type Ledger struct {
	balance   int64
	rate      int64
	interval  int // seconds between payouts
	countdown int // seconds until the next payout

	observers []func(Transaction)
}

// NewLedger creates a ledger with the configured starting balance.
func NewLedger(cfg config.EconomyConfig) *Ledger {
	interval := int(cfg.PassiveInterval / time.Second)
	if interval < 1 {
		interval = 1
	}
	return &Ledger{
		balance:   cfg.StartingBalance,
		rate:      cfg.PassiveRate,
		interval:  interval,
		countdown: interval,
	}
}

// OnTransaction registers fn to be called after every applied transaction.
func (l *Ledger) OnTransaction(fn func(Transaction)) {
	l.observers = append(l.observers, fn)
}

// Balance returns the current gold.
func (l *Ledger) Balance() int64 {
	return l.balance
}

// CanAfford reports whether a debit of amount would succeed.
func (l *Ledger) CanAfford(amount int64) bool {
	return amount >= 0 && l.balance >= amount
}

// Credit adds a non-negative amount.
func (l *Ledger) Credit(amount int64, reason Reason) {
	if amount <= 0 {
		return
	}
	l.balance += amount
	l.emit(Transaction{Reason: reason, Amount: amount, Balance: l.balance})
}

// Debit removes amount if the balance covers it. On false nothing changes.
func (l *Ledger) Debit(amount int64, reason Reason) bool {
	if !l.CanAfford(amount) {
		return false
	}
	if amount == 0 {
		return true
	}
	l.balance -= amount
	l.emit(Transaction{Reason: reason, Amount: -amount, Balance: l.balance})
	return true
}

// TickPassive pays rate * population immediately and restarts the countdown.
func (l *Ledger) TickPassive(population int) int64 {
	earned := l.PassivePreview(population)
	l.Credit(earned, ReasonPassive)
	l.countdown = l.interval
	return earned
}

// Countdown advances the passive timer by one second. When it reaches zero
// the payout is made and the timer resets to the full interval, so a late
// call never pays twice.
func (l *Ledger) Countdown(population int) (earned int64, paid bool) {
	l.countdown--
	if l.countdown > 0 {
		return 0, false
	}
	return l.TickPassive(population), true
}

// SecondsToPayout returns the remaining countdown.
func (l *Ledger) SecondsToPayout() int {
	return l.countdown
}

// Interval returns the full payout interval in seconds.
func (l *Ledger) Interval() int {
	return l.interval
}

// PassivePreview returns what the next payout would be for a population.
func (l *Ledger) PassivePreview(population int) int64 {
	if population < 0 {
		population = 0
	}
	return l.rate * int64(population)
}

func (l *Ledger) emit(t Transaction) {
	for _, fn := range l.observers {
		fn(t)
	}
}
