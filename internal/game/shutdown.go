package game

import "github.com/iburimskiy/ghosthunt/internal/hat"

// ShutdownDetector watches the joystick for a hidden power-off combination: Repeats presses of
// Direction followed by one press of Terminal. Releasing Cancel wipes the log.
type ShutdownDetector struct {
	Repeats   int
	Direction hat.Direction
	Terminal  hat.Direction
	Cancel    hat.Direction

	log []hat.Event
}

func NewShutdownDetector(repeats int) *ShutdownDetector {
	return &ShutdownDetector{
		Repeats:   repeats,
		Direction: hat.Down,
		Terminal:  hat.Up,
		Cancel:    hat.Middle,
	}
}

// Len is the number of logged events.
func (d *ShutdownDetector) Len() int { return len(d.log) }

// Update feeds events in order and reports whether the sequence was completed.
func (d *ShutdownDetector) Update(events []hat.Event) bool {
	matched := false
	for _, ev := range events {
		if d.push(ev) {
			matched = true
		}
	}
	return matched
}

func (d *ShutdownDetector) push(ev hat.Event) bool {
	if ev.Action == hat.Released && ev.Direction == d.Cancel {
		d.log = d.log[:0]
		return false
	}
	d.log = append(d.log, ev)

	window := 2*d.Repeats + 2
	if len(d.log) < window {
		return false
	}
	ok := d.matches(d.log[:window])
	d.log = d.log[:0]
	return ok
}

// matches checks every second event, i.e. the releases of each press/release pair.
func (d *ShutdownDetector) matches(log []hat.Event) bool {
	for i := 0; i < d.Repeats; i++ {
		if !released(log[2*i+1], d.Direction) {
			return false
		}
	}
	return released(log[2*d.Repeats+1], d.Terminal)
}

func released(ev hat.Event, dir hat.Direction) bool {
	return ev.Action == hat.Released && ev.Direction == dir
}
