// Package terminal runs the board inside a terminal: each LED is two character cells wide.
package terminal

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/ghosthunt/internal/config"
	"github.com/iburimskiy/ghosthunt/internal/hat"
)

const (
	rotateStep = 3.0
	cellWidth  = 2
	originX    = 2
	originY    = 1
)

var (
	offStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(40, 45, 60))
	textStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

type Board struct {
	screen tcell.Screen

	mu          sync.Mutex
	orientation hat.Orientation
	events      []hat.Event
	frame       hat.Frame
}

func New() (*Board, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen wraps an already initialised screen.
func NewWithScreen(screen tcell.Screen) *Board {
	return &Board{
		screen:      screen,
		orientation: hat.Orientation{Yaw: 0, Pitch: 45},
	}
}

func (b *Board) Orientation() (hat.Orientation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.orientation, nil
}

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

// Run drives tick at the configured rate until tick fails or the player quits.
func (b *Board) Run(tick func() error, status func() string) error {
	defer b.screen.Fini()

	ticker := time.NewTicker(time.Second / config.TicksPerSecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := b.screen.PollEvent()
			if ev == nil {
				// screen finalised
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !b.handleInput(ev) {
				return nil
			}
		case <-ticker.C:
			if err := tick(); err != nil {
				return err
			}
			b.draw(status())
		}
	}
}

// handleInput returns false when the player asked to quit.
func (b *Board) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		b.mu.Lock()
		defer b.mu.Unlock()

		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			b.events = append(b.events, hat.Tap(hat.Up)...)
		case tcell.KeyDown:
			b.events = append(b.events, hat.Tap(hat.Down)...)
		case tcell.KeyLeft:
			b.events = append(b.events, hat.Tap(hat.Left)...)
		case tcell.KeyRight:
			b.events = append(b.events, hat.Tap(hat.Right)...)
		case tcell.KeyEnter:
			b.events = append(b.events, hat.Tap(hat.Middle)...)
		case tcell.KeyRune:
			b.turn(ev.Rune())
		}
	case *tcell.EventResize:
		b.screen.Sync()
	}
	return true
}

func (b *Board) turn(r rune) {
	switch r {
	case ' ':
		b.events = append(b.events, hat.Tap(hat.Middle)...)
	case 'a':
		b.orientation = b.orientation.Rotate(-rotateStep, 0, 0)
	case 'd':
		b.orientation = b.orientation.Rotate(rotateStep, 0, 0)
	case 'w':
		b.orientation = b.orientation.Rotate(0, rotateStep, 0)
	case 's':
		b.orientation = b.orientation.Rotate(0, -rotateStep, 0)
	case 'q':
		b.orientation = b.orientation.Rotate(0, 0, -rotateStep)
	case 'e':
		b.orientation = b.orientation.Rotate(0, 0, rotateStep)
	case 'r':
		b.orientation = hat.Orientation{Yaw: 0, Pitch: 45}
	}
}

func (b *Board) draw(status string) {
	b.mu.Lock()
	frame := b.frame
	b.mu.Unlock()

	b.screen.Clear()
	for y := 0; y < hat.Height; y++ {
		for x := 0; x < hat.Width; x++ {
			c := frame.At(x, y)
			ch, style := '█', tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			if c == hat.Black {
				ch, style = '·', offStyle
			}
			for i := 0; i < cellWidth; i++ {
				b.screen.SetContent(originX+x*cellWidth+i, originY+y, ch, nil, style)
			}
		}
	}
	b.print(originX, originY+hat.Height+1, status)
	b.print(originX, originY+hat.Height+2, "wasd/qe turn  arrows/enter joystick  r recenter  esc quit")
	b.screen.Show()
}

func (b *Board) print(x, y int, s string) {
	for _, r := range s {
		b.screen.SetContent(x, y, r, nil, textStyle)
		x++
	}
}
