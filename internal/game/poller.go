package game

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/iburimskiy/ghosthunt/internal/hat"
)

// OrientationSource is the board's attitude sensor. Orientation may block until a sample is ready.
type OrientationSource interface {
	Orientation() (hat.Orientation, error)
}

// Poller keeps reading the sensor on its own goroutine and publishes the most recent sample
// so the frame loop never waits on the hardware.
type Poller struct {
	Source   OrientationSource
	Interval time.Duration

	latest  hat.Orientation
	samples uint64
	mu      sync.RWMutex
	done    chan struct{}
}

func NewPoller(src OrientationSource, interval time.Duration) *Poller {
	return &Poller{
		Source:   src,
		Interval: interval,
		done:     make(chan struct{}),
	}
}

// Start takes the first reading synchronously, so a missing sensor is reported to the caller,
// then keeps polling until ctx is cancelled.
func (p *Poller) Start(ctx context.Context) error {
	o, err := p.Source.Orientation()
	if err != nil {
		close(p.done)
		return fmt.Errorf("read orientation: %w", err)
	}
	p.publish(o)

	go p.run(ctx)
	return nil
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o, err := p.Source.Orientation()
			if err != nil {
				// keep the previous reading
				log.Printf("orientation read failed: %v", err)
				continue
			}
			p.publish(o)
		}
	}
}

func (p *Poller) publish(o hat.Orientation) {
	p.mu.Lock()
	p.latest = o
	p.samples++
	p.mu.Unlock()
}

// Latest returns a copy of the most recent reading; all three axes come from the same sample.
func (p *Poller) Latest() hat.Orientation {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest
}

func (p *Poller) Samples() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.samples
}

// Done is closed once the polling goroutine has exited.
func (p *Poller) Done() <-chan struct{} { return p.done }
