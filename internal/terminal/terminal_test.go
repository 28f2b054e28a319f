package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/ghosthunt/internal/hat"
)

func newSimBoard(t *testing.T) (*Board, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(40, 20)
	t.Cleanup(screen.Fini)
	return NewWithScreen(screen), screen
}

func TestTurnKeysRotateBoard(t *testing.T) {
	b, _ := newSimBoard(t)
	b.turn('d')
	b.turn('d')
	b.turn('s')

	o, err := b.Orientation()
	if err != nil {
		t.Fatal(err)
	}
	if o.Yaw != 2*rotateStep || o.Pitch != 45-rotateStep {
		t.Fatalf("orientation = %+v", o)
	}

	b.turn('a')
	b.turn('a')
	b.turn('a')
	o, _ = b.Orientation()
	if o.Yaw != 360-rotateStep {
		t.Fatalf("yaw = %v, want wrap to %v", o.Yaw, 360-rotateStep)
	}

	b.turn('r')
	o, _ = b.Orientation()
	if o.Yaw != 0 || o.Pitch != 45 {
		t.Fatalf("recenter = %+v", o)
	}
}

func TestSpaceIsMiddleTap(t *testing.T) {
	b, _ := newSimBoard(t)
	b.turn(' ')
	ev := b.Events()
	if len(ev) != 2 || ev[0] != (hat.Event{Action: hat.Pressed, Direction: hat.Middle}) || ev[1].Action != hat.Released {
		t.Fatalf("events = %v", ev)
	}
	if len(b.Events()) != 0 {
		t.Fatal("events not drained")
	}
}

func TestDrawPaintsLitCells(t *testing.T) {
	b, screen := newSimBoard(t)
	var f hat.Frame
	f.Set(3, 2, hat.RGB{R: 255})
	b.SetPixels(f)
	b.draw("status")

	for i := 0; i < cellWidth; i++ {
		r, _, style, _ := screen.GetContent(originX+3*cellWidth+i, originY+2)
		if r != '█' {
			t.Fatalf("lit cell rune = %q", r)
		}
		fg, _, _ := style.Decompose()
		if fg != tcell.NewRGBColor(255, 0, 0) {
			t.Fatalf("lit cell colour = %v", fg)
		}
	}
	if r, _, _, _ := screen.GetContent(originX, originY); r != '·' {
		t.Fatalf("dark cell rune = %q", r)
	}
	if r, _, _, _ := screen.GetContent(originX, originY+hat.Height+1); r != 's' {
		t.Fatalf("status line starts with %q", r)
	}

	b.Clear()
	b.draw("")
	if r, _, _, _ := screen.GetContent(originX+3*cellWidth, originY+2); r != '·' {
		t.Fatalf("cleared cell rune = %q", r)
	}
}
