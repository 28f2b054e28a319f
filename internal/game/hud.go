package game

import (
	"errors"
	"math"
	"time"

	"github.com/iburimskiy/ghosthunt/internal/config"
	"github.com/iburimskiy/ghosthunt/internal/hat"
)

var ErrNoEntities = errors.New("game: no entities")

// ProximityBar is a column on one edge that grows as the nearest entity gets closer.
type ProximityBar struct {
	MaxDistance float64
	Range       float64
	Column      int
}

func NewProximityBar() ProximityBar {
	return ProximityBar{
		MaxDistance: config.MaxDistance,
		Range:       config.Range,
		Column:      hat.Width - 1,
	}
}

// Nearest returns the smallest distance among entities with a valid snapshot, or +Inf when none has one.
func (b ProximityBar) Nearest(es []Entity) (float64, error) {
	if len(es) == 0 {
		return 0, ErrNoEntities
	}
	nearest := math.Inf(1)
	for _, e := range es {
		s := e.Snapshot()
		if s.Valid && s.Distance < nearest {
			nearest = s.Distance
		}
	}
	return nearest, nil
}

// Height interpolates between (MaxDistance, 0) and (sqrt(2)*Range, 7). It returns -1 when
// nothing should be drawn.
func (b ProximityBar) Height(distance float64) int {
	if !(distance <= b.MaxDistance) {
		return -1
	}
	h := 7 * (b.MaxDistance - distance) / (b.MaxDistance - math.Sqrt2*b.Range)
	if h > 7 {
		h = 7
	}
	h = math.Round(h)
	if h < 0 {
		return -1
	}
	return int(h)
}

func (b ProximityBar) Render(es []Entity, pal config.Palette) ([]hat.Pixel, error) {
	d, err := b.Nearest(es)
	if err != nil {
		return nil, err
	}
	h := b.Height(d)
	if h < 0 {
		return nil, nil
	}
	c := pal.Proximity[7-h]
	px := make([]hat.Pixel, 0, h+1)
	for y := hat.Height - 1; y >= hat.Height-1-h; y-- {
		px = append(px, hat.Pixel{X: b.Column, Y: y, Color: c})
	}
	return px, nil
}

type Intensity int

const (
	IntensityOff Intensity = iota
	IntensityDim
	IntensityBright
)

func (i Intensity) String() string {
	switch i {
	case IntensityDim:
		return "dim"
	case IntensityBright:
		return "bright"
	}
	return "off"
}

// AttackSystem tracks the attack cooldown. Ready only looks; Consume restarts the cooldown.
type AttackSystem struct {
	Cooldown time.Duration
	Column   int
	last     time.Time
}

func NewAttackSystem(cooldown time.Duration, now time.Time) *AttackSystem {
	return &AttackSystem{Cooldown: cooldown, last: now}
}

func (a *AttackSystem) Elapsed(now time.Time) time.Duration {
	return now.Sub(a.last)
}

func (a *AttackSystem) Remaining(now time.Time) time.Duration {
	r := a.Cooldown - a.Elapsed(now)
	if r < 0 {
		return 0
	}
	return r
}

func (a *AttackSystem) Ready(now time.Time) bool {
	return a.Elapsed(now) > a.Cooldown
}

// Consume restarts the cooldown if the attack was ready and reports whether it was.
func (a *AttackSystem) Consume(now time.Time) bool {
	if !a.Ready(now) {
		return false
	}
	a.last = now
	return true
}

// Charge is whole seconds since the last attack, capped at the cooldown.
func (a *AttackSystem) Charge(now time.Time) int {
	e := a.Elapsed(now)
	if e > a.Cooldown {
		e = a.Cooldown
	}
	if e < 0 {
		return 0
	}
	return int(e / time.Second)
}

func (a *AttackSystem) RenderCharge(now time.Time, pal config.Palette) []hat.Pixel {
	h := a.Charge(now)
	if h > hat.Height {
		h = hat.Height
	}
	px := make([]hat.Pixel, 0, h)
	for i := 0; i < h; i++ {
		px = append(px, hat.Pixel{X: a.Column, Y: hat.Height - 1 - i, Color: pal.Charge})
	}
	return px
}

// FocusFrame is the full-screen targeting square: an outer border of background, a ring of focus
// colour one pixel in, and background inside.
func FocusFrame(i Intensity, pal config.Palette) hat.Frame {
	var f hat.Frame
	fc := pal.Background
	switch i {
	case IntensityDim:
		fc = pal.FocusDim
	case IntensityBright:
		fc = pal.FocusBright
	}
	for y := 0; y < hat.Height; y++ {
		for x := 0; x < hat.Width; x++ {
			c := pal.Background
			onRing := (x == 1 || x == hat.Width-2) && y >= 1 && y <= hat.Height-2 ||
				(y == 1 || y == hat.Height-2) && x >= 1 && x <= hat.Width-2
			if onRing {
				c = fc
			}
			f.Set(x, y, c)
		}
	}
	return f
}
