package main

import (
	"math"
	"testing"
)

func TestWaveSample_Bounds(t *testing.T) {
	for w := Waveform(0); w < WAVEFORM_COUNT; w++ {
		for i := 0; i < SAMPLE_RATE; i++ {
			tt := float64(i) / SAMPLE_RATE
			s := waveSample(w, tt, 261.63)
			if s < -1 || s > 1 || math.IsNaN(s) {
				t.Fatalf("%s: sample %d out of range: %v", w, i, s)
			}
		}
	}
}

func TestWaveSample_Shapes(t *testing.T) {
	const freq = 100.0
	period := 1 / freq

	if got := waveSample(WaveSquare, period*0.1, freq); got != 1 {
		t.Errorf("square first half: expected 1, got %v", got)
	}
	if got := waveSample(WaveSquare, period*0.6, freq); got != -1 {
		t.Errorf("square second half: expected -1, got %v", got)
	}
	if got := waveSample(WaveSaw, 0, freq); got != -1 {
		t.Errorf("saw at phase 0: expected -1, got %v", got)
	}
	if got := waveSample(WaveTriangle, period*0.25, freq); math.Abs(got-1) > 1e-9 {
		t.Errorf("triangle at quarter period: expected 1, got %v", got)
	}
	if got := waveSample(WaveSine, period*0.25, freq); math.Abs(got-1) > 1e-9 {
		t.Errorf("sine at quarter period: expected 1, got %v", got)
	}
}

func TestToPCM16(t *testing.T) {
	tests := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{2, 32767},
		{-3, -32767},
		{0.5, 16383},
		{math.Inf(1), 32767},
		{math.Inf(-1), -32767},
	}
	for _, tc := range tests {
		if got := toPCM16(tc.in); got != tc.want {
			t.Errorf("toPCM16(%v): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestToPCM16_NaNIsSilent(t *testing.T) {
	if got := toPCM16(math.NaN()); got != 0 {
		t.Fatalf("toPCM16(NaN): expected 0, got %d", got)
	}
}

func TestPCMRange_AllWaveformsFullVolume(t *testing.T) {
	for w := Waveform(0); w < WAVEFORM_COUNT; w++ {
		for i := 0; i < SAMPLES_PER_BUF; i++ {
			s := toPCM16(waveSample(w, float64(i)/SAMPLE_RATE, 1975.5))
			if s < -PCM_MAX {
				t.Fatalf("%s: sample %d below -%d: %d", w, i, PCM_MAX, s)
			}
		}
	}
}

func TestWaveformNames(t *testing.T) {
	want := []string{"Sine", "Square", "Saw", "Triangle"}
	for i, name := range want {
		if got := Waveform(i).String(); got != name {
			t.Errorf("waveform %d: expected %q, got %q", i, name, got)
		}
	}
}

func TestNormalizeWaveform(t *testing.T) {
	tests := []struct {
		in   int
		want Waveform
	}{
		{0, WaveSine},
		{3, WaveTriangle},
		{4, WaveSine},
		{5, WaveSquare},
		{-1, WaveTriangle},
	}
	for _, tc := range tests {
		if got := normalizeWaveform(tc.in); got != tc.want {
			t.Errorf("normalizeWaveform(%d): expected %s, got %s", tc.in, tc.want, got)
		}
	}
}
