// Package sound plays the game's effects through the system speaker.
package sound

import (
	"fmt"
	"log"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/ghosthunt/internal/game"
)

const sampleRate = beep.SampleRate(44100)

type Options struct {
	Volume      float64
	AttackSound string
	HitSound    string
}

// Player mixes every effect into one stream so overlapping cues do not cut each other off.
type Player struct {
	format  beep.Format
	mixer   *beep.Mixer
	ctrl    *beep.Ctrl
	effects map[game.Cue]*beep.Buffer
}

// Bank builds the buffered effect for every cue. Files in opts replace the synthesised sound.
func Bank(format beep.Format, opts Options) (map[game.Cue]*beep.Buffer, error) {
	sr := format.SampleRate
	bank := map[game.Cue]*beep.Buffer{
		game.CueStart:    render(format, melody(sr, note{440, 80 * time.Millisecond}, note{660, 80 * time.Millisecond}, note{880, 120 * time.Millisecond})),
		game.CueAttack:   render(format, melody(sr, note{880, 50 * time.Millisecond})),
		game.CueHit:      render(format, melody(sr, note{1320, 60 * time.Millisecond}, note{0, 20 * time.Millisecond}, note{1760, 90 * time.Millisecond})),
		game.CueMiss:     render(format, melody(sr, note{220, 150 * time.Millisecond})),
		game.CueDespawn:  render(format, melody(sr, note{660, 80 * time.Millisecond}, note{440, 80 * time.Millisecond}, note{330, 160 * time.Millisecond})),
		game.CueVictory:  render(format, melody(sr, note{523, 100 * time.Millisecond}, note{659, 100 * time.Millisecond}, note{784, 100 * time.Millisecond}, note{1047, 250 * time.Millisecond})),
		game.CueShutdown: render(format, melody(sr, note{330, 400 * time.Millisecond})),
	}
	for cue, path := range map[game.Cue]string{game.CueAttack: opts.AttackSound, game.CueHit: opts.HitSound} {
		if path == "" {
			continue
		}
		buf, err := decodeFile(path, format)
		if err != nil {
			return nil, err
		}
		bank[cue] = buf
	}
	return bank, nil
}

func New(opts Options) (*Player, error) {
	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	bank, err := Bank(format, opts)
	if err != nil {
		return nil, err
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	p := &Player{
		format:  format,
		mixer:   &beep.Mixer{},
		effects: bank,
	}
	p.ctrl = &beep.Ctrl{Streamer: p.mixer}
	speaker.Play(&effects.Volume{Streamer: p.ctrl, Base: 2, Volume: opts.Volume})
	return p, nil
}

func (p *Player) Play(c game.Cue) {
	buf, ok := p.effects[c]
	if !ok {
		log.Printf("no sound for cue %d", c)
		return
	}
	speaker.Lock()
	p.mixer.Add(buf.Streamer(0, buf.Len()))
	speaker.Unlock()
}

// SetPaused silences the mix and drops effects still queued.
func (p *Player) SetPaused(paused bool) {
	speaker.Lock()
	p.ctrl.Paused = paused
	if paused {
		p.mixer.Clear()
	}
	speaker.Unlock()
}

func (p *Player) Close() {
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
}
