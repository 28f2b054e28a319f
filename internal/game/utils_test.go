package game

import (
	"testing"
	"time"

	"github.com/iburimskiy/ghosthunt/internal/hat"
)

func TestHSV(t *testing.T) {
	tests := []struct {
		h, s, v float64
		want    hat.RGB
	}{
		{0, 1, 1, hat.RGB{R: 255}},
		{120, 1, 1, hat.RGB{G: 255}},
		{240, 1, 1, hat.RGB{B: 255}},
		{480, 1, 1, hat.RGB{G: 255}},
		{-120, 1, 1, hat.RGB{B: 255}},
		{0, 0, 1, hat.RGB{R: 255, G: 255, B: 255}},
		{0, 0, 0, hat.Black},
		{60, 2, 2, hat.RGB{R: 255, G: 255}},
	}
	for _, tt := range tests {
		if got := hsv(tt.h, tt.s, tt.v); got != tt.want {
			t.Errorf("hsv(%v, %v, %v) = %v, want %v", tt.h, tt.s, tt.v, got, tt.want)
		}
	}
}

func TestPulseRange(t *testing.T) {
	start := time.Unix(0, 0)
	for i := 0; i < 50; i++ {
		p := pulse(start.Add(time.Duration(i)*17*time.Millisecond), 380*time.Millisecond, 0.55)
		if p < 0.55 || p > 1 {
			t.Fatalf("pulse = %v outside [0.55, 1]", p)
		}
	}
	if p := pulse(start, 380*time.Millisecond, 0.55); p != 0.55 {
		t.Fatalf("pulse at phase 0 = %v", p)
	}
}

func TestDim(t *testing.T) {
	c := hat.RGB{R: 200, G: 100, B: 50}
	if got := dim(c, 0.5); got != (hat.RGB{R: 100, G: 50, B: 25}) {
		t.Fatalf("dim = %v", got)
	}
	if got := dim(c, 3); got != c {
		t.Fatalf("dim above 1 = %v", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{83 * time.Second, "01:23"},
		{83*time.Second + 900*time.Millisecond, "01:23"},
		{-time.Second, "00:00"},
		{61*time.Minute + 5*time.Second, "61:05"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
