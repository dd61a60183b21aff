package server

import (
	"encoding/json"
	"log/slog"

	"github.com/ypthao011/aquarium/game"
	"github.com/ypthao011/aquarium/protocol"
)

// FramePresenter collects one frame of presenter calls and hands the
// finished FRAME to the hub. SetHUD closes the frame, since the game emits
// it last.
type FramePresenter struct {
	hub   *Hub
	frame protocol.FrameMsg
}

// NewFramePresenter creates a presenter that broadcasts on hub.
func NewFramePresenter(hub *Hub) *FramePresenter {
	return &FramePresenter{hub: hub}
}

func (p *FramePresenter) RenderEntityAt(v game.EntityView) {
	p.frame.Entities = append(p.frame.Entities, protocol.EntityState{
		ID:      v.ID,
		Kind:    v.Kind.String(),
		Species: v.Species,
		X:       v.X,
		Y:       v.Y,
		Size:    v.Size,
		Flipped: v.Flipped,
		Hungry:  v.Hungry,
		Hunger:  v.Hunger,
		Level:   v.Level,
		Dragged: v.Dragged,
	})
}

func (p *FramePresenter) RemoveEntity(id uint32) {
	p.frame.Removed = append(p.frame.Removed, id)
}

func (p *FramePresenter) Notify(msg string, severity game.Severity) {
	p.frame.Notices = append(p.frame.Notices, protocol.Notice{Message: msg, Severity: severity.String()})
}

func (p *FramePresenter) PlayGrowthCue() { p.frame.Cues = append(p.frame.Cues, "growth") }
func (p *FramePresenter) PlayFeedCue()   { p.frame.Cues = append(p.frame.Cues, "feed") }

func (p *FramePresenter) SetHUD(h game.HUD) {
	p.frame.Type = protocol.TypeFrame
	p.frame.Tick = h.Tick
	p.frame.HUD = protocol.HUD{
		Balance:          h.Balance,
		Population:       h.Population,
		PassiveIncome:    h.PassiveIncome,
		PassiveCountdown: h.Countdown,
		Placement:        h.Placement,
	}
	if p.frame.Entities == nil {
		p.frame.Entities = []protocol.EntityState{}
	}

	b, err := json.Marshal(p.frame)
	if err != nil {
		slog.Error("failed to encode frame", "error", err)
	} else {
		p.hub.Broadcast(b)
	}

	// Keep capacity for the next frame
	p.frame = protocol.FrameMsg{
		Entities: p.frame.Entities[:0],
		Removed:  p.frame.Removed[:0],
		Notices:  p.frame.Notices[:0],
		Cues:     p.frame.Cues[:0],
	}
}
