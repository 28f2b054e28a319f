package config

import "github.com/iburimskiy/ghosthunt/internal/hat"

// Palette is every colour the game draws with. Renderers receive it explicitly.
type Palette struct {
	Background  hat.RGB
	FocusDim    hat.RGB
	FocusBright hat.RGB
	Ghost       hat.RGB
	Charge      hat.RGB
	Glyph       hat.RGB
	Accent      hat.RGB
	// Proximity runs from closest (index 0) to farthest (index 7).
	Proximity [8]hat.RGB
}

func DefaultPalette() Palette {
	return Palette{
		Background:  hat.RGB{R: 0, G: 0, B: 0},
		FocusDim:    hat.RGB{R: 20, G: 20, B: 40},
		FocusBright: hat.RGB{R: 90, G: 90, B: 160},
		Ghost:       hat.RGB{R: 255, G: 255, B: 255},
		Charge:      hat.RGB{R: 0, G: 200, B: 255},
		Glyph:       hat.RGB{R: 180, G: 180, B: 255},
		Accent:      hat.RGB{R: 255, G: 160, B: 0},
		Proximity: [8]hat.RGB{
			{R: 255, G: 0, B: 0},
			{R: 255, G: 64, B: 0},
			{R: 255, G: 128, B: 0},
			{R: 255, G: 192, B: 0},
			{R: 192, G: 255, B: 0},
			{R: 0, G: 255, B: 64},
			{R: 0, G: 160, B: 255},
			{R: 0, G: 0, B: 255},
		},
	}
}
