package game

import (
	"github.com/iburimskiy/ghosthunt/internal/config"
	"github.com/iburimskiy/ghosthunt/internal/hat"
)

// Glyph is an 8x8 bitmap, '#' lit and anything else dark.
type Glyph [hat.Height]string

var (
	glyphGhost = Glyph{
		"..####..",
		".######.",
		"##.##.##",
		"########",
		"########",
		"########",
		"#.#..#.#",
		"........",
	}
	glyphPause = Glyph{
		"........",
		".##..##.",
		".##..##.",
		".##..##.",
		".##..##.",
		".##..##.",
		".##..##.",
		"........",
	}
	glyphVictory = Glyph{
		"........",
		".......#",
		"......##",
		"#....##.",
		"##..##..",
		".####...",
		"..##....",
		"........",
	}
)

func (gl Glyph) Pixels(c hat.RGB) []hat.Pixel {
	var px []hat.Pixel
	for y, row := range gl {
		for x := 0; x < len(row) && x < hat.Width; x++ {
			if row[x] == '#' {
				px = append(px, hat.Pixel{X: x, Y: y, Color: c})
			}
		}
	}
	return px
}

// dimensionRow marks every dimension along the bottom row, the current one in the accent colour.
func dimensionRow(current int, pal config.Palette) []hat.Pixel {
	px := make([]hat.Pixel, 0, config.NumDims)
	for i := 0; i < config.NumDims; i++ {
		c := dim(pal.Glyph, 0.3)
		if i == current {
			c = pal.Accent
		}
		px = append(px, hat.Pixel{X: 2*i + 1, Y: hat.Height - 1, Color: c})
	}
	return px
}

// dimensionBars draws one column pair per dimension, the current one full height.
func dimensionBars(current int, pal config.Palette) []hat.Pixel {
	var px []hat.Pixel
	for i := 0; i < config.NumDims; i++ {
		height := 3
		c := dim(pal.Glyph, 0.4)
		if i == current {
			height = hat.Height - 1
			c = pal.Accent
		}
		x := 1 + i*2 + i/2
		for y := hat.Height - 1; y >= hat.Height-height; y-- {
			px = append(px, hat.Pixel{X: x, Y: y, Color: c})
		}
	}
	return px
}
