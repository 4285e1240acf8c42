//go:build !headless

package main

import (
	"math"
	"testing"
)

func TestStickBend(t *testing.T) {
	tests := []struct {
		axis float64
		want float64
	}{
		{0, 0},
		{0.0005, 0},
		{math.NaN(), 0},
		{-0.5, -0.5},
		{0.8, 0.8},
		{1.4, 1},
		{-2, -1},
	}
	for _, tc := range tests {
		if got := stickBend(tc.axis); got != tc.want {
			t.Errorf("stickBend(%v): expected %v, got %v", tc.axis, tc.want, got)
		}
	}
}

func TestMergeBend(t *testing.T) {
	if got := mergeBend(0.3, -0.5); got != -0.5 {
		t.Fatalf("expected the stronger bend -0.5, got %v", got)
	}
	if got := mergeBend(0.5, 0.2); got != 0.5 {
		t.Fatalf("expected 0.5 to be kept, got %v", got)
	}
	if got := mergeBend(-1, 1); got != -1 {
		t.Fatalf("equal bends keep the first source, got %v", got)
	}
}

func TestNewEbitenFrontend(t *testing.T) {
	fe := NewEbitenFrontend(12, 0)
	if fe.scale != MAX_SCALE || fe.tps != DEFAULT_TPS || !fe.showHelp {
		t.Fatalf("unexpected frontend setup: scale %d tps %d help %v", fe.scale, fe.tps, fe.showHelp)
	}
	w, h := fe.Layout(1920, 1080)
	if w != LOGICAL_WIDTH || h != LOGICAL_HEIGHT {
		t.Fatalf("expected logical %dx%d, got %dx%d", LOGICAL_WIDTH, LOGICAL_HEIGHT, w, h)
	}

	fe.Render(StatusSnapshot{KeyName: "D Major"})
	if fe.status.KeyName != "D Major" {
		t.Fatal("render should keep the latest status for Draw")
	}
}
