package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/iburimskiy/ghosthunt/internal/angles"
	"github.com/iburimskiy/ghosthunt/internal/config"
	"github.com/iburimskiy/ghosthunt/internal/hat"
)

// ErrShutdown is returned by Tick once the power-off sequence has been entered.
var ErrShutdown = errors.New("game: shutdown requested")

type State int

const (
	StateMenu State = iota
	StatePlay
	StatePaused
	StateInfo
	StateVictory
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlay:
		return "play"
	case StatePaused:
		return "paused"
	case StateInfo:
		return "info"
	case StateVictory:
		return "victory"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Cue names a sound effect.
type Cue int

const (
	CueStart Cue = iota
	CueAttack
	CueHit
	CueMiss
	CueDespawn
	CueVictory
	CueShutdown
)

type Display interface {
	Clear()
	SetPixels(f hat.Frame)
}

// EventSource drains the joystick events received since the last call.
type EventSource interface {
	Events() []hat.Event
}

type OrientationReader interface {
	Latest() hat.Orientation
}

type Speaker interface {
	Play(c Cue)
	SetPaused(paused bool)
}

type Options struct {
	Config      config.Config
	Palette     config.Palette
	Orientation OrientationReader
	Input       EventSource
	Display     Display
	Speaker     Speaker
	Now         func() time.Time
	Rand        *rand.Rand
}

// Game owns the top-level state and runs one frame per Tick.
type Game struct {
	cfg         config.Config
	pal         config.Palette
	orientation OrientationReader
	input       EventSource
	display     Display
	speaker     Speaker
	now         func() time.Time
	rng         *rand.Rand

	state      State
	stateSince time.Time

	// paused time is cut out of the clock ghosts and the attack cooldown see
	pausedAt    time.Time
	pausedTotal time.Duration
	playStart   time.Time

	ghosts    []Entity
	nextID    int
	dimension int
	attack    *AttackSystem
	bar       ProximityBar
	shutdown  *ShutdownDetector
	intensity Intensity
	frame     hat.Frame
}

func New(o Options) *Game {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.Speaker == nil {
		o.Speaker = silent{}
	}
	now := o.Now()
	return &Game{
		cfg:         o.Config,
		pal:         o.Palette,
		orientation: o.Orientation,
		input:       o.Input,
		display:     o.Display,
		speaker:     o.Speaker,
		now:         o.Now,
		rng:         o.Rand,
		state:       StateMenu,
		stateSince:  now,
		attack:      NewAttackSystem(config.AttackCooldown, now),
		bar:         NewProximityBar(),
		shutdown:    NewShutdownDetector(config.ShutdownRepeats),
	}
}

func (g *Game) State() State         { return g.state }
func (g *Game) Dimension() int       { return g.dimension }
func (g *Game) Entities() []Entity   { return g.ghosts }
func (g *Game) Intensity() Intensity { return g.intensity }
func (g *Game) Frame() hat.Frame     { return g.frame }

// Tick reads input, advances the current state and pushes one frame to the display.
func (g *Game) Tick() error {
	now := g.now()
	events := g.input.Events()

	attackRequested := g.interpret(events, now)

	switch g.state {
	case StatePlay:
		g.updatePlay(now, attackRequested)
		if g.state == StatePlay {
			g.renderPlay(now)
		} else {
			g.renderStatic()
		}
	case StateVictory:
		if now.Sub(g.stateSince) >= config.VictoryDuration {
			g.setState(StateMenu, now)
		}
		g.renderStatic()
	default:
		g.renderStatic()
	}
	g.display.SetPixels(g.frame)

	if g.shutdown.Update(events) {
		log.Printf("shutdown sequence entered")
		g.speaker.Play(CueShutdown)
		g.display.Clear()
		return ErrShutdown
	}
	return nil
}

// interpret applies joystick presses to the state machine and reports whether an attack was asked for.
func (g *Game) interpret(events []hat.Event, now time.Time) bool {
	attack := false
	for _, ev := range events {
		if ev.Action != hat.Pressed {
			continue
		}
		switch g.state {
		case StateMenu:
			switch ev.Direction {
			case hat.Middle:
				g.startRound(now)
			case hat.Down:
				g.setState(StateInfo, now)
			}
		case StateInfo:
			if ev.Direction == hat.Middle {
				g.setState(StateMenu, now)
			}
		case StatePlay:
			switch ev.Direction {
			case hat.Middle:
				attack = true
			case hat.Left:
				g.dimension = (g.dimension + config.NumDims - 1) % config.NumDims
				log.Printf("dimension %d", g.dimension)
			case hat.Right:
				g.dimension = (g.dimension + 1) % config.NumDims
				log.Printf("dimension %d", g.dimension)
			case hat.Up:
				g.pausedAt = now
				g.speaker.SetPaused(true)
				g.setState(StatePaused, now)
			}
		case StatePaused:
			switch ev.Direction {
			case hat.Up:
				g.pausedTotal += now.Sub(g.pausedAt)
				g.speaker.SetPaused(false)
				g.setState(StatePlay, now)
			case hat.Down:
				g.speaker.SetPaused(false)
				g.ghosts = nil
				g.setState(StateMenu, now)
			}
		}
	}
	return attack
}

func (g *Game) setState(s State, now time.Time) {
	if s == g.state {
		return
	}
	log.Printf("state %v -> %v", g.state, s)
	g.state = s
	g.stateSince = now
}

func (g *Game) startRound(now time.Time) {
	g.pausedTotal = 0
	g.playStart = now
	g.dimension = 0
	g.ghosts = g.ghosts[:0]
	for i := 0; i < g.cfg.Ghosts; i++ {
		g.nextID++
		g.ghosts = append(g.ghosts, SpawnGhost(g.nextID, g.rng, now))
	}
	g.attack = NewAttackSystem(config.AttackCooldown, now)
	g.speaker.Play(CueStart)
	g.setState(StatePlay, now)
}

// clock is wall time minus everything spent paused.
func (g *Game) clock(now time.Time) time.Time {
	return now.Add(-g.pausedTotal)
}

func (g *Game) updatePlay(now time.Time, attackRequested bool) {
	t := g.clock(now)
	o := g.orientation.Latest()
	for _, e := range g.ghosts {
		e.Update(t, o, e.Dimension() == g.dimension)
	}

	if attackRequested {
		g.resolveAttack(t)
	}
	g.despawn()

	if len(g.ghosts) == 0 {
		log.Printf("round won in %s", formatDuration(now.Sub(g.playStart)-g.pausedTotal))
		g.speaker.Play(CueVictory)
		g.setState(StateVictory, now)
		return
	}
	g.intensity = g.focusIntensity()
}

func (g *Game) visible() []Entity {
	var out []Entity
	for _, e := range g.ghosts {
		if e.Dimension() == g.dimension {
			out = append(out, e)
		}
	}
	return out
}

func inFocus(s Snapshot) bool {
	return s.OnScreen() && angles.InBounds(s.X, s.Y, config.FocusMargin)
}

func (g *Game) resolveAttack(t time.Time) {
	if !g.attack.Consume(t) {
		log.Printf("attack not charged, %v left", g.attack.Remaining(t))
		return
	}
	g.speaker.Play(CueAttack)

	hits := 0
	for _, e := range g.visible() {
		if inFocus(e.Snapshot()) {
			e.Damage(config.AttackDamage)
			hits++
		}
	}
	if hits == 0 {
		log.Printf("attack missed")
		g.speaker.Play(CueMiss)
		return
	}
	log.Printf("attack hit %d ghost(s)", hits)
	g.speaker.Play(CueHit)
}

func (g *Game) despawn() {
	alive := g.ghosts[:0]
	for _, e := range g.ghosts {
		if e.Alive() {
			alive = append(alive, e)
			continue
		}
		log.Printf("ghost despawned in dimension %d", e.Dimension())
		g.speaker.Play(CueDespawn)
	}
	for i := len(alive); i < len(g.ghosts); i++ {
		g.ghosts[i] = nil
	}
	g.ghosts = alive
}

func (g *Game) focusIntensity() Intensity {
	in := IntensityOff
	for _, e := range g.visible() {
		s := e.Snapshot()
		if inFocus(s) {
			return IntensityBright
		}
		if s.OnScreen() {
			in = IntensityDim
		}
	}
	return in
}

// renderPlay layers the frame: focus square over every pixel, ghosts, then both bars on top.
func (g *Game) renderPlay(now time.Time) {
	g.frame = FocusFrame(g.intensity, g.pal)

	visible := g.visible()
	for _, e := range visible {
		g.frame.Apply(e.Sprite(g.pal, now))
	}

	if len(visible) > 0 {
		px, err := g.bar.Render(visible, g.pal)
		if err != nil {
			log.Printf("proximity bar: %v", err)
		}
		g.frame.Apply(px)
	}
	g.frame.Apply(g.attack.RenderCharge(g.clock(now), g.pal))
}

func (g *Game) renderStatic() {
	g.frame.Clear()
	switch g.state {
	case StateMenu:
		g.frame.Apply(glyphGhost.Pixels(g.pal.Glyph))
		g.frame.Apply(dimensionRow(g.dimension, g.pal))
	case StatePaused:
		g.frame.Apply(glyphPause.Pixels(g.pal.Glyph))
		g.frame.Apply(dimensionRow(g.dimension, g.pal))
	case StateInfo:
		g.frame.Apply(dimensionBars(g.dimension, g.pal))
	case StateVictory:
		g.frame.Apply(glyphVictory.Pixels(g.pal.Accent))
	}
}

// Status is a one-line summary for emulators that have room for text.
func (g *Game) Status() string {
	now := g.now()
	o := g.orientation.Latest()
	line := fmt.Sprintf("%-7s yaw %5.1f pitch %5.1f  dim %d/%d", g.state, o.Yaw, o.Pitch, g.dimension+1, config.NumDims)
	if g.state == StatePlay || g.state == StatePaused {
		end := now
		if g.state == StatePaused {
			end = g.pausedAt
		}
		line += fmt.Sprintf("  ghosts %d  charge %d/%d  %s",
			len(g.ghosts), g.attack.Charge(g.clock(end)), int(config.AttackCooldown/time.Second),
			formatDuration(end.Sub(g.playStart)-g.pausedTotal))
	}
	return line
}

type silent struct{}

func (silent) Play(Cue)       {}
func (silent) SetPaused(bool) {}
