package game

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/ypthao011/aquarium/components"
	"github.com/ypthao011/aquarium/config"
	"github.com/ypthao011/aquarium/systems"
	"github.com/ypthao011/aquarium/telemetry"
)

// recorder is a Presenter that keeps everything it is told.
type recorder struct {
	renders    []EntityView
	removed    []uint32
	notices    []string
	severities []Severity
	feedCues   int
	growthCues int
	hud        HUD
}

func (r *recorder) RenderEntityAt(v EntityView) { r.renders = append(r.renders, v) }
func (r *recorder) RemoveEntity(id uint32)      { r.removed = append(r.removed, id) }
func (r *recorder) Notify(msg string, s Severity) {
	r.notices = append(r.notices, msg)
	r.severities = append(r.severities, s)
}
func (r *recorder) PlayGrowthCue() { r.growthCues++ }
func (r *recorder) PlayFeedCue()   { r.feedCues++ }
func (r *recorder) SetHUD(h HUD)   { r.hud = h }

func (r *recorder) lastNotice() string {
	if len(r.notices) == 0 {
		return ""
	}
	return r.notices[len(r.notices)-1]
}

func (r *recorder) count(msg string) int {
	n := 0
	for _, m := range r.notices {
		if m == msg {
			n++
		}
	}
	return n
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.InitialPopulation = nil
	return cfg
}

func newTestGame(t *testing.T, cfg *config.Config) (*Game, *recorder, *SimClock) {
	t.Helper()
	rec := &recorder{}
	clock := NewSimClock(time.Unix(1_700_000_000, 0))
	g := NewGame(cfg, Options{Seed: 1, Presenter: rec, Clock: clock})
	return g, rec, clock
}

// addCreature places a free creature at (x, y) and returns it with its ID.
func addCreature(t *testing.T, g *Game, species string, x, y float64) (ecs.Entity, uint32) {
	t.Helper()
	e, err := g.spawnCreature(species, &components.Position{X: x, Y: y}, 0)
	if err != nil {
		t.Fatalf("spawnCreature(%q): %v", species, err)
	}
	return e, g.pop.creatureMap.Get(e).ID
}

func TestNewGameInitialPopulation(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	g := NewGame(cfg, Options{Seed: 7})

	if g.pop.Len() != 1 {
		t.Fatalf("population: got %d, want 1", g.pop.Len())
	}
	if g.Balance() != 50 {
		t.Errorf("balance: got %d, want 50", g.Balance())
	}
	e := g.pop.Creatures()[0]
	if got := g.pop.SpeciesOf(e).Name; got != "fish" {
		t.Errorf("species: got %q, want fish", got)
	}
	_, _, _, hunger, _, _, _ := g.pop.creatureMapper.Get(e)
	if !hunger.Hungry {
		t.Error("newborn should be hungry")
	}
}

func TestFeedFlow(t *testing.T) {
	g, rec, _ := newTestGame(t, testConfig(t))
	e, _ := addCreature(t, g, "fish", 100, 100)

	g.PlayfieldClick(100, 100)
	if g.Balance() != 49 {
		t.Fatalf("balance after food: got %d, want 49", g.Balance())
	}
	foodID := g.pop.foodMap.Get(g.pop.Foods()[0]).ID

	g.Step()

	if g.Balance() != 57 {
		t.Errorf("balance after feed: got %d, want 57", g.Balance())
	}
	if len(g.pop.Foods()) != 0 {
		t.Errorf("food should be consumed, %d left", len(g.pop.Foods()))
	}
	if rec.count("+8 Gold!") != 1 {
		t.Errorf("notices: %v", rec.notices)
	}
	if rec.feedCues != 1 {
		t.Errorf("feed cues: got %d, want 1", rec.feedCues)
	}
	if len(rec.removed) != 1 || rec.removed[0] != foodID {
		t.Errorf("removed: got %v, want [%d]", rec.removed, foodID)
	}

	_, _, _, hunger, growth, forager, _ := g.pop.creatureMapper.Get(e)
	if hunger.Hungry {
		t.Error("creature should be fed")
	}
	if growth.FeedCount != 1 {
		t.Errorf("feed count: got %d, want 1", growth.FeedCount)
	}
	if forager.HasTarget {
		t.Error("target should be cleared after eating")
	}
}

func TestStaleTargetCleared(t *testing.T) {
	g, _, _ := newTestGame(t, testConfig(t))
	e, _ := addCreature(t, g, "fish", 100, 100)

	g.PlayfieldClick(900, 100)
	food := g.pop.Foods()[0]

	g.Step()
	_, _, _, _, _, forager, _ := g.pop.creatureMapper.Get(e)
	if !forager.HasTarget || forager.Target != food {
		t.Fatal("hungry creature should target the only pellet")
	}

	g.pop.RemoveFood(food)
	g.Step()

	_, _, _, _, _, forager, _ = g.pop.creatureMapper.Get(e)
	if forager.HasTarget {
		t.Error("target should be cleared once the pellet is gone")
	}
}

func TestFirstCreatureWinsFood(t *testing.T) {
	g, rec, _ := newTestGame(t, testConfig(t))
	first, _ := addCreature(t, g, "fish", 200, 200)
	second, _ := addCreature(t, g, "crab", 200, 200)

	g.PlayfieldClick(210, 210)
	g.Step()

	_, _, _, h1, _, _, _ := g.pop.creatureMapper.Get(first)
	_, _, _, h2, _, _, _ := g.pop.creatureMapper.Get(second)
	if h1.Hungry {
		t.Error("first creature should have eaten")
	}
	if !h2.Hungry {
		t.Error("second creature should still be hungry")
	}
	if rec.count("+8 Gold!") != 1 {
		t.Errorf("one pellet should pay once, notices: %v", rec.notices)
	}
	if g.Balance() != 57 {
		t.Errorf("balance: got %d, want 57", g.Balance())
	}
}

func TestFoodRemoval(t *testing.T) {
	tests := []struct {
		name      string
		x, y      float64
		survives  int // steps the pellet is still present after
		removedAt int
	}{
		{"falls too far", 600, 50, 200, 201},
		{"leaves playfield", 600, 715, 5, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, rec, _ := newTestGame(t, testConfig(t))
			g.PlayfieldClick(tt.x, tt.y)

			for i := 0; i < tt.survives; i++ {
				g.Step()
			}
			if len(g.pop.Foods()) != 1 {
				t.Fatalf("pellet gone after %d steps", tt.survives)
			}
			for i := tt.survives; i < tt.removedAt; i++ {
				g.Step()
			}
			if len(g.pop.Foods()) != 0 {
				t.Fatalf("pellet still present after %d steps", tt.removedAt)
			}
			if len(rec.removed) != 1 {
				t.Errorf("removed: got %v", rec.removed)
			}
			if g.Balance() != 49 {
				t.Errorf("expired food must not pay, balance %d", g.Balance())
			}
		})
	}
}

func TestGrowthOnThirdFeed(t *testing.T) {
	g, rec, clock := newTestGame(t, testConfig(t))
	e, _ := addCreature(t, g, "fish", 100, 100)
	clock.Advance(31 * time.Second)

	for i := 0; i < 3; i++ {
		_, _, _, hunger, _, _, _ := g.pop.creatureMapper.Get(e)
		hunger.Hungry = true
		if !g.feed(e) {
			t.Fatalf("feed %d rejected", i+1)
		}
	}

	_, _, body, _, growth, _, _ := g.pop.creatureMapper.Get(e)
	if growth.Level != 1 {
		t.Fatalf("level: got %d, want 1", growth.Level)
	}
	if want := systems.BodySize(3, 1, 0.2); math.Abs(body.Size-want) > 1e-9 {
		t.Errorf("size: got %v, want %v", body.Size, want)
	}
	if rec.count("fish grew bigger! (Lv.1)") != 1 {
		t.Errorf("notices: %v", rec.notices)
	}
	if rec.growthCues != 1 {
		t.Errorf("growth cues: got %d, want 1", rec.growthCues)
	}
	if g.Balance() != 50+3*8 {
		t.Errorf("balance: got %d, want %d", g.Balance(), 50+3*8)
	}
}

func TestFedCreatureIgnoresFood(t *testing.T) {
	g, _, _ := newTestGame(t, testConfig(t))
	e, _ := addCreature(t, g, "fish", 100, 100)
	_, _, _, hunger, _, _, _ := g.pop.creatureMapper.Get(e)
	hunger.Hungry = false
	hunger.Elapsed = 0

	if g.feed(e) {
		t.Error("fed creature should not eat")
	}
	if g.Balance() != 50 {
		t.Errorf("balance: got %d, want 50", g.Balance())
	}
}

func TestPassiveIncome(t *testing.T) {
	tests := []struct {
		name    string
		advance func(g *Game)
	}{
		{"ten seconds", func(g *Game) {
			for i := 0; i < 10; i++ {
				g.PassiveSecond()
			}
		}},
		{"advance per frame", func(g *Game) {
			for i := 0; i < 625; i++ {
				g.Advance(16 * time.Millisecond)
			}
		}},
		{"advance per second", func(g *Game) {
			for i := 0; i < 10; i++ {
				g.Advance(time.Second)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, rec, _ := newTestGame(t, testConfig(t))
			for i := 0; i < 3; i++ {
				addCreature(t, g, "fish", float64(100+200*i), 100)
			}

			tt.advance(g)

			if g.Balance() != 53 {
				t.Errorf("balance: got %d, want 53", g.Balance())
			}
			if got := g.ledger.SecondsToPayout(); got != 10 {
				t.Errorf("countdown: got %d, want 10", got)
			}
			if got := rec.count("+3 Passive Gold!"); got != 1 {
				t.Errorf("passive notices: got %d, want 1 in %v", got, rec.notices)
			}
			if rec.severities[len(rec.severities)-1] != SeverityInfo {
				t.Errorf("severity: got %v, want info", rec.severities[len(rec.severities)-1])
			}
		})
	}
}

func TestLateAdvancePaysOnce(t *testing.T) {
	g, rec, _ := newTestGame(t, testConfig(t))
	addCreature(t, g, "fish", 100, 100)
	start := g.Balance()

	g.Advance(25 * time.Second)

	if got := g.Balance() - start; got > 1 {
		t.Errorf("paid %d after one late advance, want at most 1", got)
	}
	if got := g.ledger.SecondsToPayout(); got != 9 {
		t.Errorf("countdown: got %d, want 9", got)
	}
	if len(rec.notices) != 0 {
		t.Errorf("unexpected notices %v", rec.notices)
	}

	// A stalled frame consumed one second only; the rest of the
	// countdown still runs at one second per advance.
	for i := 0; i < 9; i++ {
		g.Advance(time.Second)
	}
	if got := g.Balance() - start; got != 1 {
		t.Errorf("paid %d after the full interval, want 1", got)
	}
	if rec.lastNotice() != "+1 Passive Gold!" {
		t.Errorf("notice: got %q", rec.lastNotice())
	}
}

func TestPurchaseFlow(t *testing.T) {
	g, rec, _ := newTestGame(t, testConfig(t))

	if err := g.PurchaseRequested("fish"); err != nil {
		t.Fatalf("PurchaseRequested: %v", err)
	}
	if !g.Placement().Active || g.Placement().Species != "fish" {
		t.Fatalf("placement: got %+v", g.Placement())
	}
	if rec.lastNotice() != "Click anywhere to place your fish!" {
		t.Errorf("notice: got %q", rec.lastNotice())
	}
	if g.Balance() != 50 {
		t.Errorf("placement must not charge yet, balance %d", g.Balance())
	}

	g.PlayfieldClick(300, 300)

	if g.Placement().Active {
		t.Error("placement should end after the click")
	}
	if g.Balance() != 20 {
		t.Errorf("balance: got %d, want 20", g.Balance())
	}
	if g.pop.Len() != 1 || len(g.pop.Foods()) != 0 {
		t.Fatalf("got %d creatures %d foods", g.pop.Len(), len(g.pop.Foods()))
	}
	pos := g.pop.Position(g.pop.Creatures()[0])
	if pos.X != 270 || pos.Y != 270 {
		t.Errorf("position: got (%v, %v), want (270, 270)", pos.X, pos.Y)
	}
	if rec.lastNotice() != "Bought a fish!" {
		t.Errorf("notice: got %q", rec.lastNotice())
	}

	if err := g.PurchaseRequested("dolphin"); err != nil {
		t.Fatalf("PurchaseRequested: %v", err)
	}
	if g.Placement().Active {
		t.Error("unaffordable purchase should not enter placement")
	}
	if rec.lastNotice() != "Not enough gold!" || rec.severities[len(rec.severities)-1] != SeverityError {
		t.Errorf("notice: got %q", rec.lastNotice())
	}
}

func TestCancelPlacement(t *testing.T) {
	g, _, _ := newTestGame(t, testConfig(t))
	_ = g.PurchaseRequested("crab")
	g.CancelPlacement()

	g.PlayfieldClick(300, 300)
	if g.pop.Len() != 0 || len(g.pop.Foods()) != 1 {
		t.Errorf("click after cancel should drop food, got %d creatures", g.pop.Len())
	}
	if g.Balance() != 49 {
		t.Errorf("balance: got %d, want 49", g.Balance())
	}
}

func TestImmediatePurchase(t *testing.T) {
	cfg := testConfig(t)
	cfg.Economy.PlacementMode = false
	g, rec, _ := newTestGame(t, cfg)

	if err := g.PurchaseRequested("jellyfish"); err != nil {
		t.Fatalf("PurchaseRequested: %v", err)
	}
	if g.pop.Len() != 1 {
		t.Fatalf("population: got %d, want 1", g.pop.Len())
	}
	if g.Balance() != 0 {
		t.Errorf("balance: got %d, want 0", g.Balance())
	}
	if rec.lastNotice() != "Bought a jellyfish!" {
		t.Errorf("notice: got %q", rec.lastNotice())
	}
}

func TestBuyThenSellLosesGold(t *testing.T) {
	cfg := testConfig(t)
	cfg.Economy.PlacementMode = false
	g, rec, _ := newTestGame(t, cfg)

	_ = g.PurchaseRequested("jellyfish")
	id := g.pop.creatureMap.Get(g.pop.Creatures()[0]).ID

	value, err := g.Sell(id)
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}
	if value != 25 {
		t.Errorf("sale value: got %d, want 25", value)
	}
	if g.Balance() >= 50 {
		t.Errorf("buy then sell should lose gold, balance %d", g.Balance())
	}
	if rec.lastNotice() != "Sold jellyfish for 25 gold!" {
		t.Errorf("notice: got %q", rec.lastNotice())
	}
	if g.pop.Len() != 0 {
		t.Errorf("population: got %d, want 0", g.pop.Len())
	}
}

func TestDragAndDrop(t *testing.T) {
	g, rec, _ := newTestGame(t, testConfig(t))
	e, id := addCreature(t, g, "fish", 100, 100)

	if err := g.PointerDown(id, 110, 110); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	if rec.lastNotice() != "Dragging fish... Drop on sell zone to sell!" || rec.severities[len(rec.severities)-1] != SeverityInfo {
		t.Errorf("grab notice: got %q", rec.lastNotice())
	}
	g.PointerMove(5000, 5000)

	pos := g.pop.Position(e)
	if pos.X != 1280-48 || pos.Y != 720-48 {
		t.Fatalf("clamped position: got (%v, %v)", pos.X, pos.Y)
	}

	g.Step()
	if pos.X != 1280-48 || pos.Y != 720-48 {
		t.Errorf("dragged creature moved on its own: (%v, %v)", pos.X, pos.Y)
	}
	if !rec.renders[0].Dragged {
		t.Error("render should mark the dragged creature")
	}

	g.PointerMove(410, 410)
	if pos.X != 400 || pos.Y != 400 {
		t.Errorf("drag keeps grab offset: got (%v, %v)", pos.X, pos.Y)
	}
	g.PointerUp(410, 410)
	if rec.lastNotice() != "fish placed!" || rec.severities[len(rec.severities)-1] != SeveritySuccess {
		t.Errorf("notice: got %q", rec.lastNotice())
	}
	if g.pop.Len() != 1 {
		t.Error("drop outside the sell zone must keep the creature")
	}
}

func TestDropInSellZone(t *testing.T) {
	g, rec, _ := newTestGame(t, testConfig(t))
	_, id := addCreature(t, g, "fish", 100, 100)

	if err := g.PointerDown(id, 100, 100); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	g.PointerMove(1150, 620)
	g.PointerUp(1150, 620)

	if g.pop.Len() != 0 {
		t.Fatal("creature should be sold")
	}
	if g.Balance() != 65 {
		t.Errorf("balance: got %d, want 65", g.Balance())
	}
	if rec.lastNotice() != "Sold fish for 15 gold!" {
		t.Errorf("notice: got %q", rec.lastNotice())
	}
	if g.drag.active {
		t.Error("drag should end on release")
	}
}

func TestSaleNoticeLevel(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  string
	}{
		{"unleveled", 0, "Sold crab for %d gold!"},
		{"leveled", 3, "Sold crab (Lv.3) for %d gold!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, rec, _ := newTestGame(t, testConfig(t))
			e, id := addCreature(t, g, "crab", 100, 100)
			g.pop.growthMap.Get(e).Level = tt.level

			value, err := g.Sell(id)
			if err != nil {
				t.Fatalf("Sell: %v", err)
			}
			if want := fmt.Sprintf(tt.want, value); rec.lastNotice() != want {
				t.Errorf("got %q, want %q", rec.lastNotice(), want)
			}
			if rec.severities[len(rec.severities)-1] != SeveritySuccess {
				t.Errorf("severity: got %v, want success", rec.severities[len(rec.severities)-1])
			}
		})
	}
}

func TestUnknownIDs(t *testing.T) {
	g, _, _ := newTestGame(t, testConfig(t))
	g.PlayfieldClick(500, 100)
	foodID := g.pop.foodMap.Get(g.pop.Foods()[0]).ID

	tests := []struct {
		name string
		call func() error
	}{
		{"sell missing", func() error { _, err := g.Sell(999); return err }},
		{"sell food", func() error { _, err := g.Sell(foodID); return err }},
		{"grab missing", func() error { return g.PointerDown(999, 0, 0) }},
		{"stat sheet missing", func() error { _, err := g.StatSheet(999); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, ErrUnknownEntity) {
				t.Errorf("got %v, want ErrUnknownEntity", err)
			}
		})
	}

	if err := g.PurchaseRequested("kraken"); !errors.Is(err, ErrUnknownSpecies) {
		t.Errorf("unknown species: got %v", err)
	}
}

func TestStatSheet(t *testing.T) {
	g, _, clock := newTestGame(t, testConfig(t))
	_, id := addCreature(t, g, "octopus", 100, 100)
	clock.Advance(75 * time.Second)

	sheet, err := g.StatSheet(id)
	if err != nil {
		t.Fatalf("StatSheet: %v", err)
	}
	want := StatSheet{ID: id, Species: "octopus", TimeInTank: "1m 15s", Worth: 40, Hungry: true}
	if sheet != want {
		t.Errorf("got %+v, want %+v", sheet, want)
	}
}

func TestTimeInTank(t *testing.T) {
	g, _, clock := newTestGame(t, testConfig(t))
	e, id := addCreature(t, g, "fish", 100, 100)

	if got := g.pop.TimeInTank(e); got != 0 {
		t.Errorf("fresh creature: got %v, want 0", got)
	}
	clock.Advance(3*time.Minute + 5*time.Second)
	if got := g.pop.TimeInTank(e); got != 185*time.Second {
		t.Errorf("got %v, want 3m5s", got)
	}

	sheet, err := g.StatSheet(id)
	if err != nil {
		t.Fatalf("StatSheet: %v", err)
	}
	if want := systems.FormatTimeInTank(g.pop.TimeInTank(e)); sheet.TimeInTank != want {
		t.Errorf("stat sheet: got %q, want %q", sheet.TimeInTank, want)
	}
}

func TestRenderHungerFraction(t *testing.T) {
	g, rec, _ := newTestGame(t, testConfig(t))
	fed, _ := addCreature(t, g, "fish", 100, 100)
	addCreature(t, g, "crab", 400, 100)

	_, _, _, hunger, _, _, _ := g.pop.creatureMapper.Get(fed)
	hunger.Hungry = false
	hunger.Elapsed = hunger.Timeout / 2

	g.Step()

	if len(rec.renders) < 2 {
		t.Fatalf("renders: got %d, want 2", len(rec.renders))
	}
	if got := rec.renders[0].Hunger; math.Abs(got-0.5) > 0.01 {
		t.Errorf("fed creature: got %v, want about 0.5", got)
	}
	if got := rec.renders[1].Hunger; got != 1 {
		t.Errorf("hungry creature: got %v, want 1", got)
	}
}

func TestHUD(t *testing.T) {
	g, rec, _ := newTestGame(t, testConfig(t))
	addCreature(t, g, "fish", 100, 100)
	addCreature(t, g, "crab", 400, 100)
	_ = g.PurchaseRequested("fish")

	g.Step()

	// HUD is emitted during render, before the tick counter advances
	want := HUD{Tick: 0, Balance: 50, Population: 2, PassiveIncome: 2, Countdown: 10, Placement: "fish"}
	if rec.hud != want {
		t.Errorf("got %+v, want %+v", rec.hud, want)
	}
}

func TestJournalRecordsTransactions(t *testing.T) {
	dir := t.TempDir()
	journal, err := telemetry.OpenJournal(dir)
	if err != nil {
		t.Fatalf("OpenJournal: %v", err)
	}
	g := NewGame(testConfig(t), Options{Seed: 1, Journal: journal, Clock: NewSimClock(time.Unix(0, 0))})

	g.PlayfieldClick(100, 100)
	if err := g.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries, err := telemetry.ReadJournal(filepath.Join(dir, telemetry.JournalFile))
	if err != nil {
		t.Fatalf("ReadJournal: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries: got %d, want 1", len(entries))
	}
	want := telemetry.JournalEntry{Reason: "food", Amount: -1, Balance: 49}
	if entries[0] != want {
		t.Errorf("got %+v, want %+v", entries[0], want)
	}
}

func TestSchedulerAppliesInputs(t *testing.T) {
	g, _, _ := newTestGame(t, testConfig(t))
	s := NewScheduler(g, 4)

	if !s.Submit(PurchaseInput{Species: "fish"}) {
		t.Fatal("Submit rejected")
	}
	if !s.Submit(ClickInput{X: 300, Y: 300}) {
		t.Fatal("Submit rejected")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := s.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run: got %v", err)
	}

	if g.pop.Len() != 1 {
		t.Errorf("population: got %d, want 1", g.pop.Len())
	}
	if g.Tick() == 0 {
		t.Error("scheduler should have stepped the game")
	}
}

func TestSchedulerSubmitFull(t *testing.T) {
	g, _, _ := newTestGame(t, testConfig(t))
	s := NewScheduler(g, 1)

	if !s.Submit(CancelPlacementInput{}) {
		t.Fatal("first Submit rejected")
	}
	if s.Submit(CancelPlacementInput{}) {
		t.Error("Submit should drop when the queue is full")
	}
}
