package game

import (
	"fmt"
	"math"
	"time"

	"github.com/iburimskiy/ghosthunt/internal/hat"
)

// hsv converts a hue in degrees plus saturation and value in [0,1] to an LED colour.
func hsv(h, s, v float64) hat.RGB {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s, v = clamp01(s), clamp01(v)

	chroma := v * s
	second := chroma * (1 - math.Abs(math.Mod(h/60, 2)-1))
	base := v - chroma

	var r, g, b float64
	switch int(h / 60) {
	case 0:
		r, g = chroma, second
	case 1:
		r, g = second, chroma
	case 2:
		g, b = chroma, second
	case 3:
		g, b = second, chroma
	case 4:
		r, b = second, chroma
	default:
		r, b = chroma, second
	}
	return hat.RGB{R: channel(r + base), G: channel(g + base), B: channel(b + base)}
}

func channel(f float64) uint8 {
	return uint8(clamp01(f) * 255)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// dim scales a colour by f in [0,1].
func dim(c hat.RGB, f float64) hat.RGB {
	f = clamp01(f)
	return hat.RGB{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f)}
}

// pulse swings between lo and 1 with the given period.
func pulse(now time.Time, period time.Duration, lo float64) float64 {
	phase := float64(now.UnixNano()%int64(period)) / float64(period)
	return lo + (1-lo)*math.Abs(math.Sin(phase*math.Pi))
}

// formatDuration formats a round time as MM:SS; negative durations read as zero.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
