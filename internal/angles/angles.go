// Package angles maps the direction of a target and the attitude of the board onto the LED matrix.
//
// Horizontal angles live on a circle of 360 degrees. Vertical angles run from 0 (straight down)
// to 180 (straight up) and do not wrap.
package angles

import (
	"math"

	"github.com/iburimskiy/ghosthunt/internal/hat"
)

// AngularDisplacement returns the shortest signed rotation from current to target, in [-180, 180].
// Positive values put the target to the right of the board.
func AngularDisplacement(target, current float64) float64 {
	d := math.Mod(target-current, 360)
	switch {
	case d > 180:
		d -= 360
	case d < -180:
		d += 360
	}
	return d
}

// VerticalDisplacement returns target minus the sensed vertical angle. The sensed angle is folded
// into [0, 180] first: (180, 270] reads as 180 and (270, 360] reads as 0.
func VerticalDisplacement(target, sense float64) float64 {
	return target - FoldVertical(sense)
}

func FoldVertical(sense float64) float64 {
	switch {
	case sense > 180 && sense <= 270:
		return 180
	case sense > 270 && sense <= 360:
		return 0
	}
	return sense
}

func Distance(xDisp, yDisp float64) float64 {
	return math.Hypot(xDisp, yDisp)
}

// PixelPosition maps a displacement onto matrix coordinates with round(4*disp/rng + 3). The vertical
// axis is inverted so that targets above the board land on the top rows. The result is not clamped.
//
// Halves round to even.
func PixelPosition(xDisp, yDisp, rng float64) (int, int) {
	px := math.RoundToEven(4*xDisp/rng + 3)
	py := math.RoundToEven(4*-yDisp/rng + 3)
	return int(px), int(py)
}

// InBounds reports whether (x, y) is at least margin pixels away from every edge of the matrix.
func InBounds(x, y, margin int) bool {
	return margin <= x && x <= hat.Width-1-margin && margin <= y && y <= hat.Height-1-margin
}

// Finite reports whether every value can be mapped onto the matrix.
func Finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
