// Package power ends the session: a real power-down on the board, or a plain process exit when debugging.
package power

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
)

var ErrNoCommand = errors.New("power: no shutdown command configured")

type Controller struct {
	Debug   bool
	Command string
	// BeforeExit, when set, runs right before the debug-mode exit. The process ends without
	// running deferred calls, so this is the place to flush logs.
	BeforeExit func()

	run  func(name string, args ...string) ([]byte, error)
	exit func(code int)
}

func New(debug bool, command string) *Controller {
	return &Controller{
		Debug:   debug,
		Command: command,
		run: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).CombinedOutput()
		},
		exit: os.Exit,
	}
}

// Shutdown powers the board off, or exits the process in debug mode. Exactly one of the two happens.
func (c *Controller) Shutdown() error {
	if c.Debug {
		log.Printf("debug mode: exiting instead of powering off")
		if c.BeforeExit != nil {
			c.BeforeExit()
		}
		c.exit(0)
		return nil
	}

	fields := strings.Fields(c.Command)
	if len(fields) == 0 {
		return ErrNoCommand
	}
	log.Printf("powering off: %s", c.Command)
	out, err := c.run(fields[0], fields[1:]...)
	if err != nil {
		return fmt.Errorf("%s: %w: %s", c.Command, err, strings.TrimSpace(string(out)))
	}
	return nil
}
