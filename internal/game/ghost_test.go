package game

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/iburimskiy/ghosthunt/internal/config"
	"github.com/iburimskiy/ghosthunt/internal/hat"
)

// fixedStep always proposes the same change.
type fixedStep struct {
	dh, dv float64
}

func (f fixedStep) PassiveStep(Snapshot, *rand.Rand) (float64, float64) { return f.dh, f.dv }
func (f fixedStep) PanicStep(Snapshot, *rand.Rand) (float64, float64)   { return 2 * f.dh, 2 * f.dv }

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestGhost(a Angle, b Behaviour) *Ghost {
	return NewGhost(1, a, 0, b, rand.New(rand.NewSource(1)), epoch)
}

func TestChangeAngleRejectsVerticalOverflow(t *testing.T) {
	g := newTestGhost(Angle{H: 100, V: 180}, fixedStep{})
	g.ChangeAngle(5, 10)
	if g.Angle().V != 180 {
		t.Fatalf("vertical = %v, want unchanged 180", g.Angle().V)
	}
	if g.Angle().H != 105 {
		t.Fatalf("horizontal = %v, want 105", g.Angle().H)
	}

	g = newTestGhost(Angle{H: 358, V: 3}, fixedStep{})
	g.ChangeAngle(4, -5)
	if g.Angle().V != 3 {
		t.Fatalf("vertical = %v, want unchanged 3", g.Angle().V)
	}
	if math.Abs(g.Angle().H-2) > 1e-9 {
		t.Fatalf("horizontal = %v, want wrapped to 2", g.Angle().H)
	}
}

func TestGhostSnapshotFollowsOrientation(t *testing.T) {
	g := newTestGhost(Angle{H: 10, V: 90}, fixedStep{})
	g.Update(epoch, hat.Orientation{Yaw: 0, Pitch: 90}, true)

	s := g.Snapshot()
	if !s.Valid || s.XDisp != 10 || s.YDisp != 0 {
		t.Fatalf("snapshot = %+v", s)
	}
	if s.X != 5 || s.Y != 3 {
		t.Fatalf("pixel = (%d, %d), want (5, 3)", s.X, s.Y)
	}
	if !s.OnScreen() {
		t.Fatal("ghost should be on screen")
	}

	g.Update(epoch, hat.Orientation{Yaw: 180, Pitch: 90}, true)
	if g.Snapshot().OnScreen() {
		t.Fatalf("ghost behind the player is on screen: %+v", g.Snapshot())
	}
}

func TestGhostNaNOrientationIsNotDrawn(t *testing.T) {
	g := newTestGhost(Angle{H: 0, V: 90}, fixedStep{})
	g.Update(epoch, hat.Orientation{Yaw: math.NaN(), Pitch: 90}, true)

	if g.Snapshot().Valid || g.Snapshot().OnScreen() {
		t.Fatalf("NaN orientation produced a drawable snapshot: %+v", g.Snapshot())
	}
	if px := g.Sprite(config.DefaultPalette(), epoch); px != nil {
		t.Fatalf("sprite = %v, want nil", px)
	}
}

func TestGhostPanicsAfterDwellAndCalmsOffScreen(t *testing.T) {
	g := newTestGhost(Angle{H: 0, V: 90}, fixedStep{})
	facing := hat.Orientation{Yaw: 0, Pitch: 90}
	away := hat.Orientation{Yaw: 180, Pitch: 90}

	now := epoch
	g.Update(now, facing, true)
	for i := 0; i < 4; i++ {
		now = now.Add(250 * time.Millisecond)
		g.Update(now, facing, true)
	}
	if g.State() != Panicked {
		t.Fatalf("state after 1s on screen = %v (progress %v)", g.State(), g.PanicProgress())
	}

	// the first tick away still sees last tick's on-screen position
	now = now.Add(250 * time.Millisecond)
	g.Update(now, away, true)
	for i := 0; i < 5; i++ {
		now = now.Add(250 * time.Millisecond)
		g.Update(now, away, true)
	}
	if g.State() != Passive || g.PanicProgress() != 0 {
		t.Fatalf("state after leaving = %v (progress %v)", g.State(), g.PanicProgress())
	}
}

func TestHiddenGhostDoesNotPanic(t *testing.T) {
	g := newTestGhost(Angle{H: 0, V: 90}, fixedStep{})
	facing := hat.Orientation{Yaw: 0, Pitch: 90}

	now := epoch
	for i := 0; i < 12; i++ {
		g.Update(now, facing, false)
		now = now.Add(250 * time.Millisecond)
	}
	if !g.Snapshot().OnScreen() {
		t.Fatalf("ghost not in view: %+v", g.Snapshot())
	}
	if g.State() != Passive || g.PanicProgress() != 0 {
		t.Fatalf("hidden ghost state = %v (progress %v)", g.State(), g.PanicProgress())
	}
}

func TestGhostMovementCadence(t *testing.T) {
	g := newTestGhost(Angle{H: 100, V: 90}, fixedStep{dh: 1})
	away := hat.Orientation{Yaw: 300, Pitch: 90}

	now := epoch.Add(config.PassiveMoveDelay - time.Millisecond)
	g.Update(now, away, true)
	if g.Angle().H != 100 {
		t.Fatalf("moved before passive delay: %v", g.Angle().H)
	}

	now = epoch.Add(config.PassiveMoveDelay)
	g.Update(now, away, true)
	if g.Angle().H != 101 {
		t.Fatalf("passive move: H = %v, want 101", g.Angle().H)
	}

	// only one movement per tick, and the cooldown restarts
	g.Update(now.Add(time.Millisecond), away, true)
	if g.Angle().H != 101 {
		t.Fatalf("moved twice within the cooldown: %v", g.Angle().H)
	}
}

func TestGhostPanickedMovesFaster(t *testing.T) {
	g := newTestGhost(Angle{H: 0, V: 90}, fixedStep{dh: 1})
	facing := hat.Orientation{Yaw: 0, Pitch: 90}
	g.Update(epoch, facing, true)
	g.Damage(0)

	g.Update(epoch.Add(config.PanickedMoveDelay), facing, true)
	if g.Angle().H != 2 {
		t.Fatalf("panicked move: H = %v, want 2", g.Angle().H)
	}
}

func TestDamageForcesPanic(t *testing.T) {
	g := newTestGhost(Angle{H: 0, V: 90}, fixedStep{})
	if g.PanicProgress() != 0 {
		t.Fatalf("fresh ghost progress = %v", g.PanicProgress())
	}
	g.Damage(1)
	if g.State() != Panicked || g.PanicProgress() < config.PanicThreshold {
		t.Fatalf("damage did not panic: %v %v", g.State(), g.PanicProgress())
	}
	if g.Health() != config.MaxHealth-1 {
		t.Fatalf("health = %v", g.Health())
	}

	g.Damage(config.MaxHealth + 5)
	if g.Alive() {
		t.Fatalf("ghost alive with health %v", g.Health())
	}
}

func TestSkitterDartsAwayFromCentre(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := Skitter{Passive: 2, Panicked: 10}
	for i := 0; i < 50; i++ {
		if dh, _ := s.PanicStep(Snapshot{XDisp: 3}, rng); dh < 5 || dh > 10 {
			t.Fatalf("right of centre: dh = %v", dh)
		}
		if dh, _ := s.PanicStep(Snapshot{XDisp: -3}, rng); dh > -5 || dh < -10 {
			t.Fatalf("left of centre: dh = %v", dh)
		}
	}
}

func TestDriftStaysWithinJitter(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	d := Drift{Passive: 2, Panicked: 5}
	for i := 0; i < 100; i++ {
		dh, dv := d.PassiveStep(Snapshot{}, rng)
		if math.Abs(dh) > 2 || math.Abs(dv) > 2 {
			t.Fatalf("passive step (%v, %v) exceeds 2", dh, dv)
		}
		dh, dv = d.PanicStep(Snapshot{}, rng)
		if math.Abs(dh) > 5 || math.Abs(dv) > 5 {
			t.Fatalf("panic step (%v, %v) exceeds 5", dh, dv)
		}
	}
}

func TestSpawnGhostRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		g := SpawnGhost(i, rng, epoch)
		a := g.Angle()
		if a.H < 0 || a.H >= 360 || a.V < 0 || a.V > config.SpawnVerticalMax {
			t.Fatalf("spawn angle out of range: %+v", a)
		}
		if g.Dimension() < 0 || g.Dimension() >= config.NumDims {
			t.Fatalf("spawn dimension %d", g.Dimension())
		}
		if !g.Alive() {
			t.Fatal("spawned dead ghost")
		}
	}
}
