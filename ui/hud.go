package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ypthao011/aquarium/game"
	"github.com/ypthao011/aquarium/telemetry"
)

// HUD renders the economy bar across the top of the screen.
type HUD struct {
	renderer *Renderer
	width    int32
	height   int32
}

// NewHUD creates a HUD spanning width pixels.
func NewHUD(width, height int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		width:    width,
		height:   height,
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data game.HUD, interval int, fps int32) {
	t := h.renderer.Theme
	rl.DrawRectangle(0, 0, h.width, h.height, t.PanelBg)
	rl.DrawLine(0, h.height, h.width, h.height, t.PanelBorder)

	rl.DrawText(fmt.Sprintf("Gold: %d", data.Balance), 12, 10, 24, t.GoldColor)
	rl.DrawText(fmt.Sprintf("Fish: %d", data.Population), 200, 14, 18, t.ValueColor)

	// Passive income countdown
	passive := fmt.Sprintf("+%d gold in %ds", data.PassiveIncome, data.Countdown)
	rl.DrawText(passive, 320, 14, 18, t.LabelColor)
	if interval > 0 {
		progress := 1 - float32(data.Countdown)/float32(interval)
		h.renderer.DrawBar(320, 36, "Passive", progress, 200)
	}

	if data.Placement != "" {
		rl.DrawText(fmt.Sprintf("Click to place your %s (Esc to cancel)", data.Placement), 560, 14, 18, rl.Yellow)
	}

	rl.DrawText(fmt.Sprintf("FPS %d", fps), h.width-70, 14, 14, rl.Gray)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-20, 14, rl.Gray)
}

// PerfPanel renders per-phase frame timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x, y := p.x, p.y
	p.renderer.DrawPanel(x-6, y-6, 280, int32(56+16*int(telemetry.NumPhases)))

	rl.DrawText("Frame Timing", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s", stats.AvgTickDuration.Round(time.Microsecond), stats.MaxTickDuration.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16
	rl.DrawText(fmt.Sprintf("Slow: %d/%d ticks", stats.SlowTicks, stats.Samples), x, y, 12, rl.LightGray)
	y += 16

	for ph := telemetry.Phase(0); ph < telemetry.NumPhases; ph++ {
		pct := stats.PhasePct[ph]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", ph.Name(), stats.PhaseAvg[ph].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 16
	}
}
