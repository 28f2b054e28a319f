package game

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/iburimskiy/ghosthunt/internal/angles"
	"github.com/iburimskiy/ghosthunt/internal/config"
	"github.com/iburimskiy/ghosthunt/internal/hat"
)

// Angle is a direction around the player: H in [0,360), V in [0,180] with 0 straight down.
type Angle struct {
	H, V float64
}

// Snapshot is where an entity sits relative to the board for the current tick.
type Snapshot struct {
	XDisp, YDisp float64
	Distance     float64
	X, Y         int
	// Valid is false when the orientation could not be mapped (NaN or Inf).
	Valid bool
}

func (s Snapshot) OnScreen() bool {
	return s.Valid && hat.InMatrix(s.X, s.Y)
}

func locate(a Angle, o hat.Orientation, rng float64) Snapshot {
	xd := angles.AngularDisplacement(a.H, o.Yaw)
	yd := angles.VerticalDisplacement(a.V, o.Pitch)
	s := Snapshot{XDisp: xd, YDisp: yd, Distance: angles.Distance(xd, yd)}
	if !angles.Finite(xd, yd) {
		return s
	}
	s.X, s.Y = angles.PixelPosition(xd, yd, rng)
	s.Valid = true
	return s
}

// Entity is anything the player hunts.
type Entity interface {
	// Update advances one tick. visible is false for entities outside the player's dimension,
	// which then count as off screen for panic.
	Update(now time.Time, o hat.Orientation, visible bool)
	Move()
	Panic()
	Damage(amount float64)
	Snapshot() Snapshot
	State() PanicState
	Sprite(pal config.Palette, now time.Time) []hat.Pixel
	Alive() bool
	Dimension() int
}

// Behaviour picks the angle change for a single movement.
type Behaviour interface {
	PassiveStep(s Snapshot, rng *rand.Rand) (dh, dv float64)
	PanicStep(s Snapshot, rng *rand.Rand) (dh, dv float64)
}

// Drift wanders uniformly in both axes.
type Drift struct {
	Passive  float64
	Panicked float64
}

func (d Drift) PassiveStep(_ Snapshot, rng *rand.Rand) (float64, float64) {
	return spread(rng, d.Passive), spread(rng, d.Passive)
}

func (d Drift) PanicStep(_ Snapshot, rng *rand.Rand) (float64, float64) {
	return spread(rng, d.Panicked), spread(rng, d.Panicked)
}

// Skitter barely moves until panicked, then darts sideways away from the centre of view.
type Skitter struct {
	Passive  float64
	Panicked float64
}

func (s Skitter) PassiveStep(_ Snapshot, rng *rand.Rand) (float64, float64) {
	return spread(rng, s.Passive/2), spread(rng, s.Passive/2)
}

func (s Skitter) PanicStep(snap Snapshot, rng *rand.Rand) (float64, float64) {
	dir := 1.0
	switch {
	case snap.XDisp < 0:
		dir = -1
	case snap.XDisp == 0 && rng.Intn(2) == 0:
		dir = -1
	}
	dh := dir * s.Panicked * (0.5 + rng.Float64()/2)
	return dh, spread(rng, s.Panicked/2)
}

func spread(rng *rand.Rand, max float64) float64 {
	return (rng.Float64()*2 - 1) * max
}

// Ghost is the only concrete Entity; its movement style comes from a Behaviour.
type Ghost struct {
	ID int

	angle     Angle
	dimension int

	maxHealth float64
	health    float64

	panic         *PanicTracker
	passiveDelay  time.Duration
	panickedDelay time.Duration
	lastMoved     time.Time
	lastUpdate    time.Time

	behaviour Behaviour
	rng       *rand.Rand
	viewRange float64
	snap      Snapshot
}

func NewGhost(id int, a Angle, dimension int, b Behaviour, rng *rand.Rand, now time.Time) *Ghost {
	return &Ghost{
		ID:            id,
		angle:         Angle{H: normalizeHorizontal(a.H), V: clampVertical(a.V)},
		dimension:     dimension,
		maxHealth:     config.MaxHealth,
		health:        config.MaxHealth,
		panic:         NewPanicTracker(config.PanicThreshold),
		passiveDelay:  config.PassiveMoveDelay,
		panickedDelay: config.PanickedMoveDelay,
		lastMoved:     now,
		lastUpdate:    now,
		behaviour:     b,
		rng:           rng,
		viewRange:     config.Range,
	}
}

// SpawnGhost places a ghost in a random direction and dimension.
func SpawnGhost(id int, rng *rand.Rand, now time.Time) *Ghost {
	a := Angle{H: rng.Float64() * 360, V: rng.Float64() * config.SpawnVerticalMax}
	var b Behaviour = Drift{Passive: config.PassiveJitter, Panicked: config.PanickedJitter}
	if rng.Intn(3) == 0 {
		b = Skitter{Passive: config.PassiveJitter, Panicked: config.PanickedJitter * 2}
	}
	return NewGhost(id, a, rng.Intn(config.NumDims), b, rng, now)
}

func (g *Ghost) Angle() Angle           { return g.angle }
func (g *Ghost) Health() float64        { return g.health }
func (g *Ghost) Dimension() int         { return g.dimension }
func (g *Ghost) Snapshot() Snapshot     { return g.snap }
func (g *Ghost) State() PanicState      { return g.panic.State() }
func (g *Ghost) Alive() bool            { return g.health > 0 }
func (g *Ghost) PanicProgress() float64 { return g.panic.Progress() }

// Update runs one tick: panic bookkeeping from last tick's position, at most one movement,
// then a fresh snapshot against o.
func (g *Ghost) Update(now time.Time, o hat.Orientation, visible bool) {
	elapsed := now.Sub(g.lastUpdate)
	g.lastUpdate = now

	prev := g.panic.State()
	state := g.panic.Update(visible && g.snap.OnScreen(), elapsed)
	if state != prev {
		log.Printf("ghost %d: %v -> %v", g.ID, prev, state)
	}

	since := now.Sub(g.lastMoved)
	switch state {
	case Panicked:
		if since >= g.panickedDelay {
			g.Panic()
			g.lastMoved = now
		}
	default:
		if since >= g.passiveDelay {
			g.Move()
			g.lastMoved = now
		}
	}

	g.snap = locate(g.angle, o, g.viewRange)
}

func (g *Ghost) Move() {
	g.ChangeAngle(g.behaviour.PassiveStep(g.snap, g.rng))
}

func (g *Ghost) Panic() {
	g.ChangeAngle(g.behaviour.PanicStep(g.snap, g.rng))
}

// ChangeAngle applies dh always and dv only if the vertical angle stays within [0,180].
func (g *Ghost) ChangeAngle(dh, dv float64) {
	g.angle.H = normalizeHorizontal(g.angle.H + dh)
	if v := g.angle.V + dv; v >= 0 && v <= 180 {
		g.angle.V = v
	}
}

// Damage takes health away and panics the ghost at once. Only call it for a ghost on screen.
func (g *Ghost) Damage(amount float64) {
	g.health -= amount
	g.panic.Force()
}

func (g *Ghost) Sprite(pal config.Palette, now time.Time) []hat.Pixel {
	if !g.snap.OnScreen() {
		return nil
	}
	c := pal.Ghost
	if g.panic.State() == Panicked {
		c = hsv(float64(g.dimension)*360/config.NumDims, 0.6, pulse(now, 380*time.Millisecond, 0.55))
	}
	return []hat.Pixel{{X: g.snap.X, Y: g.snap.Y, Color: c}}
}

func normalizeHorizontal(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clampVertical(v float64) float64 {
	return math.Max(0, math.Min(180, v))
}
