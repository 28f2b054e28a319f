package sound

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"

	"github.com/iburimskiy/ghosthunt/internal/game"
)

var testFormat = beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}

func TestToneLengthAndAmplitude(t *testing.T) {
	s := tone(testFormat.SampleRate, 440, 100*time.Millisecond, 0.5)
	buf := make([][2]float64, 128)
	total := 0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			if math.Abs(smp[0]) > 0.5+1e-9 || smp[0] != smp[1] {
				t.Fatalf("sample %v out of range or not mono", smp)
			}
		}
		total += n
		if !ok {
			break
		}
	}
	if want := testFormat.SampleRate.N(100 * time.Millisecond); total != want {
		t.Fatalf("tone produced %d samples, want %d", total, want)
	}
}

func TestBankCoversEveryCue(t *testing.T) {
	bank, err := Bank(testFormat, Options{})
	if err != nil {
		t.Fatal(err)
	}
	for c := game.CueStart; c <= game.CueShutdown; c++ {
		buf, ok := bank[c]
		if !ok || buf.Len() == 0 {
			t.Fatalf("cue %d has no sound", c)
		}
	}
	// 50ms at 8kHz
	if got := bank[game.CueAttack].Len(); got != 400 {
		t.Fatalf("attack length = %d samples, want 400", got)
	}
}

func TestBankRejectsBadFiles(t *testing.T) {
	if _, err := Bank(testFormat, Options{HitSound: filepath.Join(t.TempDir(), "missing.wav")}); err == nil {
		t.Fatal("missing file accepted")
	}
	ogg := filepath.Join(t.TempDir(), "effect.ogg")
	if err := os.WriteFile(ogg, []byte("OggS"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := decodeFile(ogg, testFormat); err == nil {
		t.Fatal("unknown extension accepted")
	}
}
