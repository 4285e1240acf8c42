package main

import (
	"errors"
	"strings"
	"testing"
)

func TestParseFrontend(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"", FRONTEND_EBITEN},
		{"ebiten", FRONTEND_EBITEN},
		{"Window", FRONTEND_EBITEN},
		{"console", FRONTEND_CONSOLE},
		{"TERMINAL", FRONTEND_CONSOLE},
	}
	for _, tc := range tests {
		got, err := parseFrontend(tc.name)
		if err != nil || got != tc.want {
			t.Errorf("parseFrontend(%q): expected %d, got %d (%v)", tc.name, tc.want, got, err)
		}
	}

	_, err := parseFrontend("opengl")
	var fe *FrontendError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FrontendError, got %v", err)
	}
}

func TestClampScale(t *testing.T) {
	tests := []struct{ in, want int }{{0, 1}, {-3, 1}, {1, 1}, {3, 3}, {6, 6}, {9, 6}}
	for _, tc := range tests {
		if got := ClampScale(tc.in); got != tc.want {
			t.Errorf("ClampScale(%d): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestSliceLabels(t *testing.T) {
	tests := []struct {
		key  int
		want string
	}{
		{0, "C D E F G A B C D E F G"},
		{21, "A B C D E F G A B C D E"},
		{7, "G A B C D E F# G A B C D"},
	}
	for _, tc := range tests {
		labels := sliceLabels(tc.key)
		if got := strings.Join(labels[:], " "); got != tc.want {
			t.Errorf("key %s: expected %q, got %q", KeyName(tc.key), tc.want, got)
		}
	}
}

func TestStatusClipboardText(t *testing.T) {
	s := StatusSnapshot{
		KeyName:      "C Major",
		ModeName:     "Ionian (Major)",
		WaveformName: "Sine",
		Note:         NO_NOTE_NAME,
	}
	got := string(statusClipboardText(s))
	want := "Key:      C Major\nMode:     Ionian (Major)\nWaveform: Sine\nBend:     +0.00 st\nNote:     ---\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFrontendError_Unwrap(t *testing.T) {
	inner := errors.New("no display")
	err := &FrontendError{Operation: "run", Details: "ebiten game loop", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("expected FrontendError to unwrap")
	}
}
