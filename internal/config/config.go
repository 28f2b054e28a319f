package config

import (
	"errors"
	"flag"
	"fmt"
	"time"
)

const (
	// Emulator window
	WindowWidth  = 512
	WindowHeight = 576
	LEDSpacing   = 56
	LEDRadius    = 22
	MatrixX      = 32
	MatrixY      = 32

	// Frame loop
	TicksPerSecond = 30
	PollInterval   = 10 * time.Millisecond

	// Viewing geometry
	Range            = 20.0 // degrees of rotation that cover half the matrix from its centre
	NumDims          = 3
	SpawnVerticalMax = 90.0

	// Ghost tuning
	MaxHealth         = 3.0
	PanicThreshold    = 1.0
	PassiveMoveDelay  = 1500 * time.Millisecond
	PanickedMoveDelay = 300 * time.Millisecond
	PassiveJitter     = 2.0
	PanickedJitter    = 5.0

	// HUD
	MaxDistance    = 150.0
	AttackCooldown = 3 * time.Second
	AttackDamage   = 1.0
	FocusMargin    = 2

	// Shutdown sequence
	ShutdownRepeats = 4

	VictoryDuration = 2 * time.Second
)

// Display backends
const (
	DisplayWindow   = "window"
	DisplayTerminal = "terminal"
)

type Config struct {
	Display     string
	Debug       bool
	Ghosts      int
	Seed        int64
	Mute        bool
	Volume      float64
	AttackSound string
	HitSound    string
	PickSounds  bool
	ShutdownCmd string
	Scale       float64
}

func Default() Config {
	return Config{
		Display:     DisplayWindow,
		Ghosts:      2,
		Volume:      0,
		ShutdownCmd: "sudo shutdown now",
		Scale:       1,
	}
}

// RegisterFlags binds every option to fs, using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Display, "display", c.Display, "Board backend: window, terminal")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Write logs/ghosthunt.log and exit the process instead of powering off")
	fs.IntVar(&c.Ghosts, "ghosts", c.Ghosts, "Ghosts spawned per round")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "Random seed (0 picks one from the clock)")
	fs.BoolVar(&c.Mute, "mute", c.Mute, "Disable sound effects")
	fs.Float64Var(&c.Volume, "volume", c.Volume, "Volume offset in halvings (negative is quieter)")
	fs.StringVar(&c.AttackSound, "attack-sound", c.AttackSound, "Attack sound file (wav, mp3, flac)")
	fs.StringVar(&c.HitSound, "hit-sound", c.HitSound, "Hit sound file (wav, mp3, flac)")
	fs.BoolVar(&c.PickSounds, "pick-sounds", c.PickSounds, "Choose the attack and hit sounds in a file dialog")
	fs.StringVar(&c.ShutdownCmd, "shutdown-cmd", c.ShutdownCmd, "Command run when the shutdown sequence is entered")
	fs.Float64Var(&c.Scale, "scale", c.Scale, "Window scale factor")
}

func (c Config) Validate() error {
	switch c.Display {
	case DisplayWindow, DisplayTerminal:
	default:
		return fmt.Errorf("unknown display %q", c.Display)
	}
	if c.Ghosts < 1 {
		return errors.New("at least one ghost is required")
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", c.Scale)
	}
	if !c.Debug && c.ShutdownCmd == "" {
		return errors.New("shutdown command is empty")
	}
	return nil
}
