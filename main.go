package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/ghosthunt/internal/config"
	"github.com/iburimskiy/ghosthunt/internal/emulator"
	"github.com/iburimskiy/ghosthunt/internal/game"
	"github.com/iburimskiy/ghosthunt/internal/power"
	"github.com/iburimskiy/ghosthunt/internal/sound"
	"github.com/iburimskiy/ghosthunt/internal/terminal"
)

// board is everything the game needs from the hardware: the attitude sensor, the joystick and the
// LED matrix, plus a loop that calls tick once per frame.
type board interface {
	game.OrientationSource
	game.EventSource
	game.Display
	Run(tick func() error, status func() string) error
}

func newBoard(cfg config.Config) (board, error) {
	switch cfg.Display {
	case config.DisplayTerminal:
		return terminal.New()
	default:
		return emulator.New(cfg.Scale), nil
	}
}

func main() {
	cfg := config.Default()
	if err := cfg.LoadEnv(config.EnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "invalid %s: %v\n", config.EnvFile, err)
		os.Exit(2)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid options: %v\n", err)
		os.Exit(2)
	}

	logFile := setupLogging(cfg.Debug)
	if cfg.PickSounds && !cfg.Mute {
		cfg.AttackSound = pickSound("Attack sound", cfg.AttackSound)
		cfg.HitSound = pickSound("Hit sound", cfg.HitSound)
	}
	err := run(cfg)
	if errors.Is(err, game.ErrShutdown) {
		log.Printf("powering off")
		pc := power.New(cfg.Debug, cfg.ShutdownCmd)
		pc.BeforeExit = func() { closeLog(logFile) }
		err = pc.Shutdown()
	}

	code := 0
	if err != nil {
		report(cfg, err)
		code = 1
	}
	closeLog(logFile)
	os.Exit(code)
}


func run(cfg config.Config) error {
	b, err := newBoard(cfg)
	if err != nil {
		return fmt.Errorf("start %s board: %w", cfg.Display, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poller := game.NewPoller(b, config.PollInterval)
	if err := poller.Start(ctx); err != nil {
		return fmt.Errorf("orientation sensor unavailable: %w", err)
	}

	var speaker game.Speaker
	if !cfg.Mute {
		p, err := sound.New(sound.Options{
			Volume:      cfg.Volume,
			AttackSound: cfg.AttackSound,
			HitSound:    cfg.HitSound,
		})
		if err != nil {
			// Non-fatal, game can run without sound
			log.Printf("audio initialization failed: %v", err)
		} else {
			defer p.Close()
			speaker = p
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("starting: display=%s ghosts=%d seed=%d", cfg.Display, cfg.Ghosts, seed)

	g := game.New(game.Options{
		Config:      cfg,
		Palette:     config.DefaultPalette(),
		Orientation: poller,
		Input:       b,
		Display:     b,
		Speaker:     speaker,
		Rand:        rand.New(rand.NewSource(seed)),
	})
	return b.Run(g.Tick, g.Status)
}

// pickSound asks for an audio file and falls back to current when the dialog is cancelled.
func pickSound(title, current string) string {
	filename, err := zenity.SelectFile(
		zenity.Title(title),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			log.Printf("file dialog: %v", err)
		}
		return current
	}
	log.Printf("%s: %s", title, filename)
	return filename
}

// report shows an unrecoverable error to the operator.
func report(cfg config.Config, err error) {
	log.Printf("fatal: %v", err)
	fmt.Fprintf(os.Stderr, "ghosthunt: %v\n", err)
	if cfg.Display == config.DisplayWindow {
		_ = zenity.Error(err.Error(), zenity.Title("Ghost Hunt"), zenity.ErrorIcon)
	}
}
