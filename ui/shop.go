package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ypthao011/aquarium/config"
)

// ShopAction is what the player did in the shop this frame.
type ShopAction struct {
	Purchase string  // species name, empty when no button was pressed
	Volume   float32 // current slider value
	Muted    bool
}

// Shop renders the species buttons and the sound controls.
type Shop struct {
	renderer *Renderer
	species  []config.SpeciesConfig
	x, y     float32
	width    float32
	volume   float32
	muted    bool
}

// NewShop creates a shop panel at (x, y).
func NewShop(species []config.SpeciesConfig, x, y, width float32, volume float64) *Shop {
	return &Shop{
		renderer: NewRenderer(),
		species:  species,
		x:        x,
		y:        y,
		width:    width,
		volume:   float32(volume),
	}
}

// Draw renders the shop and reports the player's action. Unaffordable
// species are drawn dimmed but still clickable; the game decides.
func (s *Shop) Draw(balance int64) ShopAction {
	t := s.renderer.Theme
	pad := float32(t.Padding)
	rowH := float32(44)
	height := pad*3 + float32(t.LineHeight) + rowH*float32(len(s.species)) + 110
	s.renderer.DrawPanel(int32(s.x), int32(s.y), int32(s.width), int32(height))

	y := s.renderer.DrawSectionHeader(int32(s.x+pad), int32(s.y+pad), "Shop")

	var action ShopAction
	for _, sp := range s.species {
		bounds := rl.Rectangle{X: s.x + pad, Y: float32(y), Width: s.width - 2*pad, Height: rowH - 8}
		label := fmt.Sprintf("%s %s - %d gold", sp.Glyph, sp.Name, sp.Price)
		if gui.Button(bounds, label) {
			action.Purchase = sp.Name
		}
		if balance < sp.Price {
			rl.DrawRectangleRec(bounds, rl.Color{R: 0, G: 0, B: 0, A: 90})
		}
		y += int32(rowH)
	}

	// Sound controls
	y += int32(pad)
	rl.DrawText("Volume", int32(s.x+pad), y, t.FontSize, t.LabelColor)
	y += t.LineHeight
	s.volume = gui.SliderBar(
		rl.Rectangle{X: s.x + pad + 10, Y: float32(y), Width: s.width - 2*pad - 50, Height: 18},
		"0", "1",
		s.volume, 0, 1,
	)
	rl.DrawText(fmt.Sprintf("%.0f%%", s.volume*100), int32(s.x+s.width-pad-30), y+2, t.FontSize, t.ValueColor)
	y += 30

	if gui.Button(rl.Rectangle{X: s.x + pad, Y: float32(y), Width: 100, Height: 28}, toggleText(s.muted, "Unmute", "Mute")) {
		s.muted = !s.muted
	}

	action.Volume = s.volume
	action.Muted = s.muted
	return action
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
