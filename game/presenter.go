package game

// EntityKind distinguishes render commands.
type EntityKind uint8

const (
	KindCreature EntityKind = iota
	KindFood
)

// String returns the wire name for an EntityKind.
func (k EntityKind) String() string {
	if k == KindFood {
		return "food"
	}
	return "creature"
}

// Severity grades a notification.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

// String returns the wire name for a Severity.
func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	}
	return "info"
}

// EntityView is one render command. X and Y are the top-left of the
// footprint and Size is its side length in playfield units.
type EntityView struct {
	ID      uint32
	Kind    EntityKind
	Species string
	X, Y    float64
	Size    float64
	Flipped bool // sprite mirrored, moving right
	Hungry  bool
	Hunger  float64 // hunger clock fraction, 1 when hungry
	Level   int
	Dragged bool
}

// HUD is the economy readout pushed after every frame.
type HUD struct {
	Tick          int32
	Balance       int64
	Population    int
	PassiveIncome int64  // next payout at the current population
	Countdown     int    // seconds to the next payout
	Placement     string // species awaiting placement, empty when none
}

// Presenter receives render commands and feedback from the simulation.
// All methods are called from the simulation goroutine.
type Presenter interface {
	RenderEntityAt(v EntityView)
	RemoveEntity(id uint32)
	Notify(message string, severity Severity)
	PlayGrowthCue()
	PlayFeedCue()
	SetHUD(h HUD)
}

// CuePlayer plays audio cues.
type CuePlayer interface {
	PlayGrowthCue()
	PlayFeedCue()
}

// NopPresenter discards everything. Embed it to implement a subset.
type NopPresenter struct{}

func (NopPresenter) RenderEntityAt(EntityView) {}
func (NopPresenter) RemoveEntity(uint32)       {}
func (NopPresenter) Notify(string, Severity)   {}
func (NopPresenter) PlayGrowthCue()            {}
func (NopPresenter) PlayFeedCue()              {}
func (NopPresenter) SetHUD(HUD)                {}

// WithCues returns a presenter that sends cues to c as well as p.
func WithCues(p Presenter, c CuePlayer) Presenter {
	if c == nil {
		return p
	}
	return cuePresenter{Presenter: p, cues: c}
}

type cuePresenter struct {
	Presenter
	cues CuePlayer
}

func (p cuePresenter) PlayGrowthCue() {
	p.Presenter.PlayGrowthCue()
	p.cues.PlayGrowthCue()
}

func (p cuePresenter) PlayFeedCue() {
	p.Presenter.PlayFeedCue()
	p.cues.PlayFeedCue()
}
