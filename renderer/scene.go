// Package renderer draws the aquarium with raylib.
package renderer

import (
	"fmt"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ypthao011/aquarium/config"
	"github.com/ypthao011/aquarium/game"
)

const (
	noticeLifetime = 2.0 // seconds
	maxNotices     = 6
)

type notice struct {
	text     string
	severity game.Severity
	age      float32
}

// Scene is a game.Presenter that keeps the latest frame for drawing. The
// simulation and the draw calls share the raylib main goroutine.
type Scene struct {
	cfg         *config.Config
	originX     float32 // playfield top-left on screen
	originY     float32
	water       *WaterBackground
	bubbles     *Bubbles
	pending     []game.EntityView
	current     []game.EntityView
	notices     []notice
	hud         game.HUD
	colors      map[string]rl.Color
	feedFlash   float32
	growthFlash float32
}

// NewScene creates a scene drawing the playfield at (originX, originY).
func NewScene(cfg *config.Config, originX, originY float32, rng *rand.Rand) *Scene {
	colors := make(map[string]rl.Color, len(cfg.Species))
	for _, sp := range cfg.Species {
		colors[sp.Name] = rl.Color{R: sp.Color[0], G: sp.Color[1], B: sp.Color[2], A: 255}
	}
	w, h := float32(cfg.Playfield.Width), float32(cfg.Playfield.Height)
	return &Scene{
		cfg:     cfg,
		originX: originX,
		originY: originY,
		water:   NewWaterBackground(int32(originX), int32(originY), int32(w), int32(h)),
		bubbles: NewBubbles(rng, w, h),
		colors:  colors,
	}
}

func (s *Scene) RenderEntityAt(v game.EntityView) {
	s.pending = append(s.pending, v)
}

// RemoveEntity needs no work; entities vanish from the next frame.
func (s *Scene) RemoveEntity(uint32) {}

func (s *Scene) Notify(message string, severity game.Severity) {
	s.notices = append(s.notices, notice{text: message, severity: severity})
	if len(s.notices) > maxNotices {
		s.notices = s.notices[len(s.notices)-maxNotices:]
	}
}

func (s *Scene) PlayGrowthCue() { s.growthFlash = 1 }
func (s *Scene) PlayFeedCue()   { s.feedFlash = 0.4 }

// SetHUD closes the frame.
func (s *Scene) SetHUD(h game.HUD) {
	s.hud = h
	s.current, s.pending = s.pending, s.current[:0]
}

// HUD returns the last economy readout.
func (s *Scene) HUD() game.HUD {
	return s.hud
}

// ToPlayfield converts screen coordinates to playfield coordinates.
func (s *Scene) ToPlayfield(sx, sy float32) (x, y float64, inside bool) {
	x = float64(sx - s.originX)
	y = float64(sy - s.originY)
	inside = x >= 0 && y >= 0 && x <= s.cfg.Playfield.Width && y <= s.cfg.Playfield.Height
	return x, y, inside
}

// HitTest returns the topmost creature under a playfield point.
func (s *Scene) HitTest(x, y float64) (uint32, bool) {
	for i := len(s.current) - 1; i >= 0; i-- {
		v := s.current[i]
		if v.Kind != game.KindCreature {
			continue
		}
		if x >= v.X && x <= v.X+v.Size && y >= v.Y && y <= v.Y+v.Size {
			return v.ID, true
		}
	}
	return 0, false
}

// Update ages notices and decorations by dt seconds.
func (s *Scene) Update(dt float32) {
	kept := s.notices[:0]
	for _, n := range s.notices {
		n.age += dt
		if n.age < noticeLifetime {
			kept = append(kept, n)
		}
	}
	s.notices = kept
	s.feedFlash = max(0, s.feedFlash-dt)
	s.growthFlash = max(0, s.growthFlash-dt)
	s.bubbles.Update(dt)
}

// Draw renders water, the sell zone, every entity and the notices.
func (s *Scene) Draw(time float32) {
	s.water.Draw(time)
	s.bubbles.Draw(s.originX, s.originY)
	s.drawSellZone()

	for _, v := range s.current {
		if v.Kind == game.KindFood {
			s.drawFood(v)
		}
	}
	for _, v := range s.current {
		if v.Kind == game.KindCreature {
			s.drawCreature(v)
		}
	}

	if s.growthFlash > 0 {
		rl.DrawRectangleLinesEx(s.playfieldRect(), 4, rl.Fade(rl.Gold, s.growthFlash))
	}
	s.drawNotices()
}

func (s *Scene) playfieldRect() rl.Rectangle {
	return rl.Rectangle{
		X:      s.originX,
		Y:      s.originY,
		Width:  float32(s.cfg.Playfield.Width),
		Height: float32(s.cfg.Playfield.Height),
	}
}

func (s *Scene) drawSellZone() {
	z := s.cfg.SellZone
	rect := rl.Rectangle{X: s.originX + float32(z.X), Y: s.originY + float32(z.Y), Width: float32(z.Width), Height: float32(z.Height)}
	rl.DrawRectangleRec(rect, rl.Color{R: 255, G: 215, B: 0, A: 50})
	rl.DrawRectangleLinesEx(rect, 2, rl.Color{R: 255, G: 215, B: 0, A: 160})
	rl.DrawText("SELL", int32(rect.X)+8, int32(rect.Y)+6, 16, rl.Gold)
}

func (s *Scene) drawFood(v game.EntityView) {
	r := float32(v.Size) / 4
	cx := s.originX + float32(v.X+v.Size/2)
	cy := s.originY + float32(v.Y+v.Size/2)
	rl.DrawCircleV(rl.Vector2{X: cx, Y: cy}, r, rl.Color{R: 201, G: 139, B: 74, A: 255})
}

func (s *Scene) drawCreature(v game.EntityView) {
	size := float32(v.Size)
	x := s.originX + float32(v.X)
	y := s.originY + float32(v.Y)
	cx, cy := x+size/2, y+size/2

	color, ok := s.colors[v.Species]
	if !ok {
		color = rl.LightGray
	}

	// Body faces left unless flipped; the tail trails behind
	dir := float32(-1)
	if v.Flipped {
		dir = 1
	}
	bodyW, bodyH := size*0.4, size*0.25
	tailX := cx - dir*bodyW
	rl.DrawTriangle(
		rl.Vector2{X: tailX, Y: cy},
		rl.Vector2{X: tailX - dir*size*0.2, Y: cy - bodyH*dir},
		rl.Vector2{X: tailX - dir*size*0.2, Y: cy + bodyH*dir},
		rl.ColorBrightness(color, -0.2),
	)
	rl.DrawEllipse(int32(cx), int32(cy), bodyW, bodyH, color)
	rl.DrawCircle(int32(cx+dir*bodyW*0.5), int32(cy-bodyH*0.3), size*0.04+1, rl.Black)

	if v.Dragged {
		rl.DrawRectangleLinesEx(rl.Rectangle{X: x, Y: y, Width: size, Height: size}, 2, rl.White)
	}
	if v.Hungry {
		rl.DrawText("!", int32(cx)-3, int32(y)-16, 18, rl.Red)
	} else if v.Hunger > 0.5 {
		// fills toward hungry
		rl.DrawRectangle(int32(x), int32(y)-6, int32(size*float32(v.Hunger)), 3, rl.Orange)
	}
	if v.Level > 0 {
		rl.DrawText(fmt.Sprintf("Lv.%d", v.Level), int32(x), int32(y+size), 12, rl.RayWhite)
	}
}

func (s *Scene) drawNotices() {
	y := int32(s.originY) + 10
	right := int32(s.originX + float32(s.cfg.Playfield.Width) - 10)
	for i := len(s.notices) - 1; i >= 0; i-- {
		n := s.notices[i]
		alpha := 1 - n.age/noticeLifetime
		width := rl.MeasureText(n.text, 18)
		rl.DrawText(n.text, right-width, y, 18, rl.Fade(severityColor(n.severity), alpha))
		y += 22
	}
	if s.feedFlash > 0 {
		rl.DrawCircle(right-6, int32(s.originY)+6, 5, rl.Fade(rl.Gold, s.feedFlash/0.4))
	}
}

func severityColor(sev game.Severity) rl.Color {
	switch sev {
	case game.SeveritySuccess:
		return rl.Color{R: 143, G: 227, B: 136, A: 255}
	case game.SeverityError:
		return rl.Color{R: 255, G: 128, B: 128, A: 255}
	}
	return rl.Color{R: 207, G: 230, B: 255, A: 255}
}
