package game

import "time"

type PanicState int

const (
	Passive PanicState = iota
	Panicked
)

func (s PanicState) String() string {
	if s == Panicked {
		return "panicked"
	}
	return "passive"
}

// PanicTracker accumulates seconds spent on screen and bleeds them off while off screen.
// The entity is panicked whenever progress has reached the threshold.
type PanicTracker struct {
	progress  float64
	threshold float64
}

func NewPanicTracker(threshold float64) *PanicTracker {
	return &PanicTracker{threshold: threshold}
}

func (p *PanicTracker) Progress() float64  { return p.progress }
func (p *PanicTracker) Threshold() float64 { return p.threshold }

func (p *PanicTracker) State() PanicState {
	if p.progress >= p.threshold {
		return Panicked
	}
	return Passive
}

// Update advances the accumulator by elapsed wall time and returns the resulting state.
func (p *PanicTracker) Update(onScreen bool, elapsed time.Duration) PanicState {
	if elapsed > 0 {
		secs := elapsed.Seconds()
		if onScreen {
			p.progress += secs
		} else {
			p.progress -= secs
			if p.progress < 0 {
				p.progress = 0
			}
		}
	}
	return p.State()
}

// Force raises progress to at least the threshold.
func (p *PanicTracker) Force() {
	if p.progress < p.threshold {
		p.progress = p.threshold
	}
}
