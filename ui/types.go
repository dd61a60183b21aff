// Package ui draws the aquarium's HUD, shop and info panels with raylib
// and raygui.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	GoldColor      rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 10, G: 30, B: 48, A: 235},
		PanelBorder:    rl.Color{R: 60, G: 110, B: 150, A: 255},
		SectionHeader:  rl.Color{R: 255, G: 215, B: 0, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		GoldColor:      rl.Gold,
		BarBg:          rl.Color{R: 30, G: 50, B: 70, A: 255},
		BarFill:        rl.Color{R: 100, G: 180, B: 230, A: 255},
		Padding:        10,
		LineHeight:     20,
		LabelWidth:     90,
		BarHeight:      10,
		FontSize:       14,
		HeaderFontSize: 18,
	}
}
