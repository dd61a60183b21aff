package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ypthao011/aquarium/game"
)

// StatSheetPanel shows the inspected creature's details.
type StatSheetPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatSheetPanel creates a panel at (x, y).
func NewStatSheetPanel(x, y, width int32) *StatSheetPanel {
	return &StatSheetPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the sheet.
func (p *StatSheetPanel) Draw(sheet game.StatSheet) {
	r := p.renderer
	pad := r.Theme.Padding
	r.DrawPanel(p.x, p.y, p.width, 6*r.Theme.LineHeight+2*pad+8)

	x := p.x + pad
	y := r.DrawSectionHeader(x, p.y+pad, sheet.Species)
	y = r.DrawLabelValue(x, y, "In tank", sheet.TimeInTank)
	y = r.DrawLabelValue(x, y, "Fed", fmt.Sprintf("%d times", sheet.FeedCount))
	y = r.DrawLabelValue(x, y, "Level", fmt.Sprintf("%d", sheet.Level))
	y = r.DrawLabelValue(x, y, "Worth", fmt.Sprintf("%d gold", sheet.Worth))
	status := "Content"
	if sheet.Hungry {
		status = "Hungry"
	}
	r.DrawLabelValue(x, y, "Mood", status)
}
