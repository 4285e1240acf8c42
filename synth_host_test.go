package main

import (
	"context"
	"testing"
)

type scriptedInput struct {
	frames []InputState
	next   int
}

func (s *scriptedInput) Poll() InputState {
	if s.next >= len(s.frames) {
		return InputState{Quit: true}
	}
	in := s.frames[s.next]
	s.next++
	return in
}

type captureDisplay struct {
	snaps []StatusSnapshot
}

func (d *captureDisplay) Render(status StatusSnapshot) {
	d.snaps = append(d.snaps, status)
}

func newTestHost(t *testing.T, frames ...InputState) (*SynthHost, *recordingOutput, *captureDisplay) {
	t.Helper()
	e, out := newTestEngine(t)
	e.SetKeyIndex(9)
	e.SetWaveform(2)
	disp := &captureDisplay{}
	return NewSynthHost(e, &scriptedInput{frames: frames}, disp), out, disp
}

func TestSynthHost_ResetsKeyAndWaveform(t *testing.T) {
	h, _, _ := newTestHost(t)
	if h.Engine().KeyIndex() != 0 || h.Engine().Waveform() != WaveSine {
		t.Fatalf("expected C Major / Sine at start, got %s / %s", h.Engine().KeyName(), h.Engine().WaveformName())
	}
}

func TestSynthHost_TouchThenRelease(t *testing.T) {
	h, _, disp := newTestHost(t,
		InputState{TouchX: sliceCenterX(0), TouchY: 0, Touching: true, Bend: 0.5},
		InputState{},
	)

	if !h.Frame() {
		t.Fatal("touch frame should continue")
	}
	s := h.Status()
	if s.Note != "C#" {
		t.Fatalf("unexpected note %q", s.Note)
	}
	if s.Volume != 1 || !s.Touching || s.Bend != 0.5 {
		t.Fatalf("unexpected touch status %+v", s)
	}
	freq := s.Frequency

	if !h.Frame() {
		t.Fatal("release frame should continue")
	}
	s = h.Status()
	if s.Note != NO_NOTE_NAME {
		t.Fatalf("expected %q after release, got %q", NO_NOTE_NAME, s.Note)
	}
	if s.Volume != 0 || s.Bend != 0 || s.Touching {
		t.Fatalf("release should mute and clear bend, got %+v", s)
	}
	if s.Frequency != freq {
		t.Fatalf("release should keep the last pitch, %v -> %v", freq, s.Frequency)
	}
	if len(disp.snaps) != 2 {
		t.Fatalf("expected 2 renders, got %d", len(disp.snaps))
	}
}

func TestSynthHost_ReleaseFrameShowsStickBend(t *testing.T) {
	h, _, disp := newTestHost(t,
		InputState{TouchX: sliceCenterX(2), TouchY: 40, Touching: true, Bend: 0.4},
		InputState{Bend: -0.6},
		InputState{Bend: 0.05},
	)

	h.Frame()
	h.Frame()
	if s := h.Status(); s.Touching || s.Bend != -0.6 {
		t.Fatalf("release frame should show the stick bend -0.6, got %+v", s)
	}
	if got := disp.snaps[1].Bend; got != -0.6 {
		t.Fatalf("rendered release bend: expected -0.6, got %v", got)
	}

	h.Frame()
	if got := h.Status().Bend; got != 0 {
		t.Fatalf("bend inside deadzone after release should read 0, got %v", got)
	}
}

func TestSynthHost_NoteDisplay(t *testing.T) {
	h, _, _ := newTestHost(t,
		InputState{TouchX: sliceCenterX(2), TouchY: 120, Touching: true},
	)
	h.Frame()
	if got := h.Status().Note; got != "E" {
		t.Fatalf("expected E, got %q", got)
	}
	lines := h.Status().Lines()
	if lines[4] != "Note:     E   " {
		t.Fatalf("unexpected note row %q", lines[4])
	}
}

func TestSynthHost_KeyAndWaveDeltas(t *testing.T) {
	h, _, _ := newTestHost(t,
		InputState{KeyDelta: -1, WaveDelta: 1},
		InputState{KeyDelta: 2, WaveDelta: -2},
	)

	h.Frame()
	s := h.Status()
	if s.KeyName != "B Minor" || s.ModeName != "Aeolian (Minor)" || s.WaveformName != "Square" {
		t.Fatalf("unexpected status after first deltas: %+v", s)
	}

	h.Frame()
	s = h.Status()
	if s.KeyIndex != 1 || s.KeyName != "C# Major" || s.WaveformName != "Triangle" {
		t.Fatalf("unexpected status after second deltas: %+v", s)
	}
}

func TestSynthHost_BendDeadzone(t *testing.T) {
	h, _, _ := newTestHost(t,
		InputState{TouchX: 10, TouchY: 10, Touching: true, Bend: 0.05},
		InputState{TouchX: 10, TouchY: 10, Touching: true, Bend: -0.3},
	)
	h.Frame()
	if h.Status().Bend != 0 {
		t.Fatalf("bend inside deadzone should read 0, got %v", h.Status().Bend)
	}
	h.Frame()
	if h.Status().Bend != -0.3 {
		t.Fatalf("expected bend -0.3, got %v", h.Status().Bend)
	}
}

func TestSynthHost_FrameTicksEngine(t *testing.T) {
	h, out, _ := newTestHost(t, InputState{}, InputState{})
	h.Engine().Slot(0).SetStatus(WAVEBUF_DONE)

	h.Frame()
	if got := h.Status().Stats.Refills; got != 1 {
		t.Fatalf("expected one refill, got %d", got)
	}
	if len(out.queued) != 3 {
		t.Fatalf("expected requeue, got %d buffers queued", len(out.queued))
	}
	h.Frame()
	if got := h.Status().Stats.Refills; got != 1 {
		t.Fatalf("playing slot should not refill, got %d refills", got)
	}
}

func TestSynthHost_TracksUnderruns(t *testing.T) {
	h, out, _ := newTestHost(t, InputState{}, InputState{})
	out.underruns = 3
	h.Frame()
	if h.lastUnderruns != 3 || h.Status().Stats.Underruns != 3 {
		t.Fatalf("expected underrun count 3, got %d", h.lastUnderruns)
	}
}

func TestSynthHost_Quit(t *testing.T) {
	h, _, disp := newTestHost(t, InputState{Quit: true})
	if h.Frame() {
		t.Fatal("quit input should stop the host")
	}
	if len(disp.snaps) != 0 {
		t.Fatal("quit frame should not render")
	}
}

func TestSynthHost_NilDisplay(t *testing.T) {
	e, _ := newTestEngine(t)
	h := NewSynthHost(e, &scriptedInput{frames: []InputState{{Touching: true}}}, nil)
	if !h.Frame() {
		t.Fatal("frame without a display should still run")
	}
}

func TestSynthHost_RunStopsOnQuit(t *testing.T) {
	h, _, disp := newTestHost(t, InputState{}, InputState{}, InputState{})
	if err := h.Run(context.Background(), 1000); err != nil {
		t.Fatalf("run returned %v", err)
	}
	if len(disp.snaps) != 3 {
		t.Fatalf("expected 3 frames before quit, got %d", len(disp.snaps))
	}
}

func TestSynthHost_RunCancelled(t *testing.T) {
	h, _, _ := newTestHost(t, InputState{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.Run(ctx, 1); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestStatusSnapshot_Lines(t *testing.T) {
	s := StatusSnapshot{
		KeyName:      "G Major",
		ModeName:     "Ionian (Major)",
		WaveformName: "Saw",
		Bend:         -0.25,
		Note:         "F#",
	}
	want := []string{
		"Key:      G Major     ",
		"Mode:     Ionian (Major)  ",
		"Waveform: Saw       ",
		"Bend:     -0.25 st",
		"Note:     F#  ",
	}
	got := s.Lines()
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
