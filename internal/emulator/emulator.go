// Package emulator stands in for the board on a desktop: an ebiten window draws the LED matrix,
// the keyboard plays the joystick and the keyboard or mouse turns the board.
package emulator

import (
	"bytes"
	"image/color"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/iburimskiy/ghosthunt/internal/config"
	"github.com/iburimskiy/ghosthunt/internal/hat"
)

const (
	rotateSpeed    = 1.5 // degrees per tick while a key is held
	dragSpeed      = 0.3 // degrees per pixel of mouse drag
	heldRepeatTick = 10
	fontSize       = 13
)

var textColor = color.RGBA{R: 200, G: 205, B: 215, A: 255}

// joystickKeys is scanned in this order every tick, so events from one frame come out in a fixed order.
var joystickKeys = []struct {
	key ebiten.Key
	dir hat.Direction
}{
	{ebiten.KeyArrowUp, hat.Up},
	{ebiten.KeyArrowDown, hat.Down},
	{ebiten.KeyArrowLeft, hat.Left},
	{ebiten.KeyArrowRight, hat.Right},
	{ebiten.KeyEnter, hat.Middle},
	{ebiten.KeySpace, hat.Middle},
}

type Board struct {
	scale float64

	mu          sync.Mutex
	orientation hat.Orientation
	events      []hat.Event
	frame       hat.Frame

	tick   func() error
	status func() string

	// nil when the font failed to load; text then falls back to the debug printer
	face *text.GoTextFace

	// input edge detection
	prevKey map[ebiten.Key]bool

	dragging   bool
	lastMouseX int
	lastMouseY int
}

func New(scale float64) *Board {
	b := &Board{
		scale:       scale,
		orientation: hat.Orientation{Yaw: 0, Pitch: 45},
		prevKey:     map[ebiten.Key]bool{},
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		log.Printf("status font: %v, using debug text", err)
	} else {
		b.face = &text.GoTextFace{Source: src, Size: fontSize}
	}
	return b
}

// Orientation is the emulated attitude sensor.
func (b *Board) Orientation() (hat.Orientation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.orientation, nil
}

// Events drains the joystick events gathered since the last call.
func (b *Board) Events() []hat.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.events
	b.events = nil
	return out
}

func (b *Board) Clear() {
	b.mu.Lock()
	b.frame.Clear()
	b.mu.Unlock()
}

func (b *Board) SetPixel(x, y int, c hat.RGB) {
	b.mu.Lock()
	b.frame.Set(x, y, c)
	b.mu.Unlock()
}

func (b *Board) SetPixels(f hat.Frame) {
	b.mu.Lock()
	b.frame = f
	b.mu.Unlock()
}

// Run opens the window and calls tick once per frame until tick fails or the window is closed.
func (b *Board) Run(tick func() error, status func() string) error {
	b.tick = tick
	b.status = status

	ebiten.SetWindowSize(int(config.WindowWidth*b.scale), int(config.WindowHeight*b.scale))
	ebiten.SetWindowTitle("Ghost Hunt - WASD/QE or drag: turn, arrows/Enter: joystick, Esc: quit")
	ebiten.SetTPS(config.TicksPerSecond)
	return ebiten.RunGame(b)
}

func (b *Board) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !b.prevKey[k]
		b.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	recenter := justPressed(ebiten.KeyR)

	b.mu.Lock()
	if recenter {
		b.orientation = hat.Orientation{Yaw: 0, Pitch: 45}
	}
	b.updateOrientation()
	b.updateJoystick()
	b.mu.Unlock()

	if b.tick == nil {
		return nil
	}
	return b.tick()
}

func (b *Board) updateOrientation() {
	var dyaw, dpitch, droll float64
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		dyaw -= rotateSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		dyaw += rotateSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		dpitch += rotateSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		dpitch -= rotateSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		droll -= rotateSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		droll += rotateSpeed
	}

	mouseX, mouseY := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		b.dragging = true
		b.lastMouseX, b.lastMouseY = mouseX, mouseY
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		b.dragging = false
	}
	if b.dragging {
		dyaw += float64(mouseX-b.lastMouseX) * dragSpeed
		dpitch -= float64(mouseY-b.lastMouseY) * dragSpeed
		b.lastMouseX, b.lastMouseY = mouseX, mouseY
	}

	if dyaw != 0 || dpitch != 0 || droll != 0 {
		b.orientation = b.orientation.Rotate(dyaw, dpitch, droll)
	}
}

func (b *Board) updateJoystick() {
	b.events = append(b.events, scanJoystick(keyReader{
		justPressed:  inpututil.IsKeyJustPressed,
		justReleased: inpututil.IsKeyJustReleased,
		duration:     inpututil.KeyPressDuration,
	})...)
}

// keyReader is the slice of inpututil the joystick scan needs.
type keyReader struct {
	justPressed  func(ebiten.Key) bool
	justReleased func(ebiten.Key) bool
	duration     func(ebiten.Key) int
}

// scanJoystick turns this tick's key transitions into joystick events, in joystickKeys order.
func scanJoystick(r keyReader) []hat.Event {
	var out []hat.Event
	for _, jk := range joystickKeys {
		switch {
		case r.justPressed(jk.key):
			out = append(out, hat.Event{Action: hat.Pressed, Direction: jk.dir})
		case r.justReleased(jk.key):
			out = append(out, hat.Event{Action: hat.Released, Direction: jk.dir})
		default:
			if d := r.duration(jk.key); d > 0 && d%heldRepeatTick == 0 {
				out = append(out, hat.Event{Action: hat.Held, Direction: jk.dir})
			}
		}
	}
	return out
}

func (b *Board) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 20, A: 255})

	b.mu.Lock()
	frame := b.frame
	b.mu.Unlock()

	// Board outline
	side := float32(hat.Width * config.LEDSpacing)
	vector.DrawFilledRect(screen, config.MatrixX, config.MatrixY, side, side, color.RGBA{R: 20, G: 25, B: 35, A: 255}, false)
	vector.StrokeRect(screen, config.MatrixX, config.MatrixY, side, side, 2, color.RGBA{R: 60, G: 70, B: 90, A: 255}, false)

	for y := 0; y < hat.Height; y++ {
		for x := 0; x < hat.Width; x++ {
			cx, cy := ledCenter(x, y)
			c := frame.At(x, y)
			if c == hat.Black {
				vector.StrokeCircle(screen, cx, cy, config.LEDRadius, 1, color.RGBA{R: 40, G: 45, B: 60, A: 255}, true)
				continue
			}
			vector.DrawFilledCircle(screen, cx, cy, config.LEDRadius, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}, true)
		}
	}

	textY := config.MatrixY + hat.Height*config.LEDSpacing + 8
	if b.status != nil {
		b.print(screen, b.status(), config.MatrixX, textY)
	}
	b.print(screen, "Enter: start/attack  Up: pause  Left/Right: dimension  R: recenter", config.MatrixX, textY+18)
}

func (b *Board) print(screen *ebiten.Image, s string, x, y int) {
	if b.face == nil {
		ebitenutil.DebugPrintAt(screen, s, x, y)
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, s, b.face, op)
}

func ledCenter(x, y int) (float32, float32) {
	half := float32(config.LEDSpacing) / 2
	return config.MatrixX + float32(x*config.LEDSpacing) + half, config.MatrixY + float32(y*config.LEDSpacing) + half
}

func (b *Board) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}
