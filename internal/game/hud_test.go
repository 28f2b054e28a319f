package game

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/iburimskiy/ghosthunt/internal/config"
	"github.com/iburimskiy/ghosthunt/internal/hat"
)

// stubEntity reports a fixed snapshot.
type stubEntity struct {
	snap    Snapshot
	dim     int
	damaged float64
	health  float64
}

func (s *stubEntity) Update(time.Time, hat.Orientation, bool)      {}
func (s *stubEntity) Move()                                        {}
func (s *stubEntity) Panic()                                       {}
func (s *stubEntity) Damage(a float64)                             { s.damaged += a; s.health -= a }
func (s *stubEntity) Snapshot() Snapshot                           { return s.snap }
func (s *stubEntity) State() PanicState                            { return Passive }
func (s *stubEntity) Sprite(config.Palette, time.Time) []hat.Pixel { return nil }
func (s *stubEntity) Alive() bool                                  { return s.health > 0 }
func (s *stubEntity) Dimension() int                               { return s.dim }

func atDistance(d float64) *stubEntity {
	return &stubEntity{snap: Snapshot{Distance: d, Valid: true}, health: 1}
}

func TestProximityBarSelectsNearest(t *testing.T) {
	bar := ProximityBar{MaxDistance: 150, Range: 20, Column: 7}
	es := []Entity{atDistance(200), atDistance(50), atDistance(300)}

	d, err := bar.Nearest(es)
	if err != nil {
		t.Fatal(err)
	}
	if d != 50 {
		t.Fatalf("nearest = %v, want 50", d)
	}

	want := int(math.Round(7 * (150 - 50) / (150 - math.Sqrt2*20)))
	if h := bar.Height(d); h != want || h != 6 {
		t.Fatalf("height = %d, want %d", h, want)
	}

	px, err := bar.Render(es, config.DefaultPalette())
	if err != nil {
		t.Fatal(err)
	}
	if len(px) != 7 {
		t.Fatalf("rendered %d pixels, want 7", len(px))
	}
	wantColor := config.DefaultPalette().Proximity[1]
	for _, p := range px {
		if p.X != 7 || p.Y < 1 || p.Y > 7 || p.Color != wantColor {
			t.Fatalf("unexpected pixel %+v", p)
		}
	}
}

func TestProximityBarHeight(t *testing.T) {
	bar := ProximityBar{MaxDistance: 150, Range: 20}
	tests := []struct {
		d    float64
		want int
	}{
		{150, 0},
		{151, -1},
		{math.Inf(1), -1},
		{math.NaN(), -1},
		{math.Sqrt2 * 20, 7},
		{0, 7},
	}
	for _, tt := range tests {
		if got := bar.Height(tt.d); got != tt.want {
			t.Errorf("Height(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}

func TestProximityBarEmptySet(t *testing.T) {
	bar := NewProximityBar()
	if _, err := bar.Render(nil, config.DefaultPalette()); !errors.Is(err, ErrNoEntities) {
		t.Fatalf("err = %v, want ErrNoEntities", err)
	}
}

func TestProximityBarFarAwayDrawsNothing(t *testing.T) {
	bar := NewProximityBar()
	px, err := bar.Render([]Entity{atDistance(170)}, config.DefaultPalette())
	if err != nil || px != nil {
		t.Fatalf("px = %v err = %v", px, err)
	}
}

func TestAttackReadyDoesNotConsume(t *testing.T) {
	a := NewAttackSystem(3*time.Second, epoch)
	now := epoch.Add(time.Second)
	for i := 0; i < 3; i++ {
		if a.Ready(now) {
			t.Fatal("ready before cooldown")
		}
	}
	if a.Consume(now) {
		t.Fatal("consumed before cooldown")
	}

	now = epoch.Add(3*time.Second + time.Millisecond)
	if !a.Ready(now) || !a.Ready(now) {
		t.Fatal("polling Ready changed the cooldown")
	}
	if !a.Consume(now) {
		t.Fatal("consume failed when ready")
	}
	if a.Ready(now.Add(time.Second)) {
		t.Fatal("cooldown not restarted by consume")
	}
	if r := a.Remaining(now.Add(time.Second)); r != 2*time.Second {
		t.Fatalf("remaining = %v, want 2s", r)
	}
}

func TestAttackChargeBar(t *testing.T) {
	a := NewAttackSystem(3*time.Second, epoch)
	pal := config.DefaultPalette()

	if px := a.RenderCharge(epoch.Add(900*time.Millisecond), pal); len(px) != 0 {
		t.Fatalf("charge after 0.9s = %d pixels", len(px))
	}
	px := a.RenderCharge(epoch.Add(2500*time.Millisecond), pal)
	if len(px) != 2 || px[0].Y != 7 || px[1].Y != 6 || px[0].X != 0 {
		t.Fatalf("charge after 2.5s = %+v", px)
	}
	if got := a.Charge(epoch.Add(time.Minute)); got != 3 {
		t.Fatalf("charge capped at %d, want 3", got)
	}
}

func TestFocusFrame(t *testing.T) {
	pal := config.DefaultPalette()

	off := FocusFrame(IntensityOff, pal)
	for i, c := range off {
		if c != pal.Background {
			t.Fatalf("off frame pixel %d = %v", i, c)
		}
	}

	f := FocusFrame(IntensityBright, pal)
	ring := 0
	for y := 0; y < hat.Height; y++ {
		for x := 0; x < hat.Width; x++ {
			if f.At(x, y) == pal.FocusBright {
				ring++
			}
		}
	}
	if ring != 20 {
		t.Fatalf("ring has %d pixels, want 20", ring)
	}
	for _, p := range [][2]int{{0, 0}, {3, 3}, {7, 4}, {1, 0}} {
		if f.At(p[0], p[1]) != pal.Background {
			t.Fatalf("pixel %v should be background", p)
		}
	}
	for _, p := range [][2]int{{1, 1}, {6, 6}, {1, 4}, {4, 6}} {
		if f.At(p[0], p[1]) != pal.FocusBright {
			t.Fatalf("pixel %v should be on the ring", p)
		}
	}
}
