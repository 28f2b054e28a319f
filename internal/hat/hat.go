// Package hat holds the vocabulary shared between the game and the board it runs on:
// orientation readings, joystick events and the 8x8 RGB matrix.
package hat

import (
	"fmt"
	"math"
)

const (
	Width  = 8
	Height = 8
	Pixels = Width * Height
)

// Orientation is one attitude sample in degrees, each axis in [0,360).
type Orientation struct {
	Yaw   float64
	Pitch float64
	Roll  float64
}

type Action int

const (
	Pressed Action = iota
	Released
	Held
)

func (a Action) String() string {
	switch a {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	case Held:
		return "held"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	Middle
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Middle:
		return "middle"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Event is a single joystick transition.
type Event struct {
	Action    Action
	Direction Direction
}

func (e Event) String() string {
	return e.Direction.String() + " " + e.Action.String()
}

type RGB struct {
	R, G, B uint8
}

var Black = RGB{}

type Pixel struct {
	X, Y  int
	Color RGB
}

// Frame is the full matrix in row-major order, index y*Width+x.
type Frame [Pixels]RGB

func InMatrix(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Set writes c at (x, y) and ignores coordinates outside the matrix.
func (f *Frame) Set(x, y int, c RGB) {
	if !InMatrix(x, y) {
		return
	}
	f[y*Width+x] = c
}

// At reads (x, y); coordinates outside the matrix read as Black.
func (f *Frame) At(x, y int) RGB {
	if !InMatrix(x, y) {
		return Black
	}
	return f[y*Width+x]
}

func (f *Frame) Apply(px []Pixel) {
	for _, p := range px {
		f.Set(p.X, p.Y, p.Color)
	}
}

func (f *Frame) Clear() {
	*f = Frame{}
}

// Rotate turns o by the given deltas and wraps every axis back into [0,360).
func (o Orientation) Rotate(dyaw, dpitch, droll float64) Orientation {
	return Orientation{
		Yaw:   wrap(o.Yaw + dyaw),
		Pitch: wrap(o.Pitch + dpitch),
		Roll:  wrap(o.Roll + droll),
	}
}

func wrap(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Tap is a full press and release, for inputs that cannot report the two separately.
func Tap(d Direction) []Event {
	return []Event{{Action: Pressed, Direction: d}, {Action: Released, Direction: d}}
}
