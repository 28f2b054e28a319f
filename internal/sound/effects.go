package sound

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

const resampleQuality = 4

// tone is a sine wave with a short linear fade at both ends to avoid clicks.
func tone(sr beep.SampleRate, freq float64, d time.Duration, gain float64) beep.Streamer {
	n := sr.N(d)
	fade := sr.N(5 * time.Millisecond)
	if fade*2 > n {
		fade = n / 2
	}
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && pos < n; i++ {
			env := 1.0
			switch {
			case fade > 0 && pos < fade:
				env = float64(pos) / float64(fade)
			case fade > 0 && n-pos <= fade:
				env = float64(n-pos) / float64(fade)
			}
			v := gain * env * math.Sin(2*math.Pi*freq*float64(pos)/float64(sr))
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return i, true
	})
}

type note struct {
	freq float64
	dur  time.Duration
}

func melody(sr beep.SampleRate, notes ...note) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		if n.freq == 0 {
			parts = append(parts, beep.Silence(sr.N(n.dur)))
			continue
		}
		parts = append(parts, tone(sr, n.freq, n.dur, 0.3))
	}
	return beep.Seq(parts...)
}

// render drains s into a buffer in the given format.
func render(format beep.Format, s beep.Streamer) *beep.Buffer {
	buf := beep.NewBuffer(format)
	buf.Append(s)
	return buf
}

// decodeFile opens a wav, mp3 or flac file, picked by extension, and buffers it at the target rate.
func decodeFile(path string, format beep.Format) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		fileFmt  beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, fileFmt, err = wav.Decode(f)
	case ".mp3":
		streamer, fileFmt, err = mp3.Decode(f)
	case ".flac":
		streamer, fileFmt, err = flac.Decode(f)
	default:
		return nil, errors.New("unsupported file type: " + ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if fileFmt.SampleRate != format.SampleRate {
		s = beep.Resample(resampleQuality, fileFmt.SampleRate, format.SampleRate, s)
	}
	buf := render(format, s)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return buf, nil
}
