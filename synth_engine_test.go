package main

import (
	"errors"
	"math"
	"testing"
)

// recordingOutput stands in for the device: it accepts buffers, marks them
// playing and leaves completion to the test.
type recordingOutput struct {
	cfg       AudioConfig
	queued    []*WaveBuf
	started   bool
	stopped   bool
	closes    int
	underruns uint64

	configErr error
	queueErr  error
	startErr  error
}

func (o *recordingOutput) Configure(cfg AudioConfig) error {
	if o.configErr != nil {
		return o.configErr
	}
	o.cfg = cfg
	return nil
}

func (o *recordingOutput) Queue(buf *WaveBuf) error {
	if o.queueErr != nil {
		return o.queueErr
	}
	buf.SetStatus(WAVEBUF_PLAYING)
	o.queued = append(o.queued, buf)
	return nil
}

func (o *recordingOutput) Start() error {
	if o.startErr != nil {
		return o.startErr
	}
	o.started = true
	return nil
}

func (o *recordingOutput) Stop() { o.stopped = true }

func (o *recordingOutput) Close() error {
	o.closes++
	return nil
}

func (o *recordingOutput) IsStarted() bool { return o.started && !o.stopped }
func (o *recordingOutput) Underruns() uint64 { return o.underruns }

func newTestEngine(t *testing.T) (*SynthEngine, *recordingOutput) {
	t.Helper()
	out := &recordingOutput{}
	e, err := NewSynthEngine(out)
	if err != nil {
		t.Fatalf("NewSynthEngine failed: %v", err)
	}
	return e, out
}

func TestSynthEngine_InitPrimesBothSlots(t *testing.T) {
	e, out := newTestEngine(t)

	if out.cfg != DefaultAudioConfig() {
		t.Fatalf("device configured with %+v", out.cfg)
	}
	if !out.started {
		t.Fatal("expected playback to be started")
	}
	if len(out.queued) != 2 || out.queued[0] != e.Slot(0) || out.queued[1] != e.Slot(1) {
		t.Fatalf("expected slots queued in order, got %d buffers", len(out.queued))
	}
	for i := 0; i < WAVEBUF_COUNT; i++ {
		if e.SlotStatus(i) != WAVEBUF_PLAYING {
			t.Fatalf("slot %d: expected playing, got %s", i, e.SlotStatus(i))
		}
		if e.Slot(i).NSamples != SAMPLES_PER_BUF {
			t.Fatalf("slot %d: expected %d frames, got %d", i, SAMPLES_PER_BUF, e.Slot(i).NSamples)
		}
	}
	if e.Cursor() != 2*SAMPLES_PER_BUF {
		t.Fatalf("expected cursor %d, got %d", 2*SAMPLES_PER_BUF, e.Cursor())
	}
	if e.FillSlot() != 0 {
		t.Fatalf("expected slot 0 to be refilled first, got %d", e.FillSlot())
	}
	if e.Frequency() != DEFAULT_FREQ || e.Volume() != 0 || e.Waveform() != WaveSine || e.KeyIndex() != 0 {
		t.Fatalf("unexpected initial params: %.2f Hz vol %v %s key %d",
			e.Frequency(), e.Volume(), e.WaveformName(), e.KeyIndex())
	}
	for i, s := range e.Slot(0).Data {
		if s != 0 {
			t.Fatalf("primed buffer should be silent at volume 0, sample %d = %d", i, s)
		}
	}
}

func TestSynthEngine_TickNoopWhilePlaying(t *testing.T) {
	e, out := newTestEngine(t)

	for i := 0; i < 10; i++ {
		if e.Tick() {
			t.Fatal("tick should not refill a playing slot")
		}
	}
	if e.Cursor() != 2*SAMPLES_PER_BUF || len(out.queued) != 2 || e.FillSlot() != 0 {
		t.Fatalf("no-op tick changed state: cursor %d queued %d slot %d",
			e.Cursor(), len(out.queued), e.FillSlot())
	}
}

func TestSynthEngine_TickRefillsDoneSlot(t *testing.T) {
	e, out := newTestEngine(t)
	e.Update(sliceCenterX(0), 0, 0)

	other := append([]int16(nil), e.Slot(1).Data...)
	e.Slot(0).SetStatus(WAVEBUF_DONE)

	if !e.Tick() {
		t.Fatal("expected refill of done slot")
	}
	if e.Cursor() != 3*SAMPLES_PER_BUF {
		t.Fatalf("expected cursor %d, got %d", 3*SAMPLES_PER_BUF, e.Cursor())
	}
	if e.SlotStatus(0) != WAVEBUF_PLAYING {
		t.Fatalf("refilled slot should be playing, got %s", e.SlotStatus(0))
	}
	if e.FillSlot() != 1 {
		t.Fatalf("expected slot 1 next, got %d", e.FillSlot())
	}
	if len(out.queued) != 3 || out.queued[2] != e.Slot(0) {
		t.Fatal("expected slot 0 to be requeued")
	}
	for i, s := range e.Slot(1).Data {
		if s != other[i] {
			t.Fatalf("slot 1 must not change during slot 0 refill (sample %d)", i)
		}
	}

	// The refill continues from the absolute frame it was placed at.
	for _, i := range []int{0, 1, 100, SAMPLES_PER_BUF - 1} {
		tt := float64(2*SAMPLES_PER_BUF+i) / SAMPLE_RATE
		want := toPCM16(e.Volume() * waveSample(e.Waveform(), tt, e.Frequency()))
		if got := e.Slot(0).Data[i*CHANNEL_COUNT]; got != want {
			t.Fatalf("frame %d: expected %d, got %d", i, want, got)
		}
		if e.Slot(0).Data[i*CHANNEL_COUNT+1] != e.Slot(0).Data[i*CHANNEL_COUNT] {
			t.Fatalf("frame %d: left and right differ", i)
		}
	}

	if s := e.Stats(); s.Refills != 1 || s.Cursor != e.Cursor() {
		t.Fatalf("unexpected stats %+v", s)
	}
}

func TestSynthEngine_TickOnlyChecksFillSlot(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Slot(1).SetStatus(WAVEBUF_DONE)
	if e.Tick() {
		t.Fatal("slot 1 must wait for slot 0 to be refilled first")
	}

	e.Slot(0).SetStatus(WAVEBUF_DONE)
	if !e.Tick() || !e.Tick() {
		t.Fatal("expected both slots to refill in turn")
	}
	if e.FillSlot() != 0 || e.Cursor() != 4*SAMPLES_PER_BUF {
		t.Fatalf("expected slot 0 and cursor %d, got slot %d cursor %d", 4*SAMPLES_PER_BUF, e.FillSlot(), e.Cursor())
	}
}

func TestSynthEngine_MuteKeepsStreamRunning(t *testing.T) {
	e, _ := newTestEngine(t)
	e.SetWaveform(int(WaveSquare))
	e.Update(sliceCenterX(3), 0, 0)
	freq := e.Frequency()

	e.Mute()
	if e.Volume() != 0 || e.Frequency() != freq {
		t.Fatalf("mute should only zero volume: vol %v freq %v", e.Volume(), e.Frequency())
	}

	e.Slot(0).SetStatus(WAVEBUF_DONE)
	if !e.Tick() {
		t.Fatal("muted engine should still refill")
	}
	for i, s := range e.Slot(0).Data {
		if s != 0 {
			t.Fatalf("muted refill should be silent, sample %d = %d", i, s)
		}
	}
	if e.Cursor() != 3*SAMPLES_PER_BUF {
		t.Fatalf("cursor should advance while muted, got %d", e.Cursor())
	}
}

func TestSynthEngine_Update(t *testing.T) {
	e, _ := newTestEngine(t)

	note := e.Update(sliceCenterX(2), LOGICAL_HEIGHT/2, 0)
	if note != 4 || e.Note() != 4 {
		t.Fatalf("expected E (4), got %d", note)
	}
	if math.Abs(e.Volume()-0.5) > 1e-12 {
		t.Fatalf("expected volume 0.5, got %v", e.Volume())
	}
	want := MapControl(sliceCenterX(2), LOGICAL_HEIGHT/2, 0, 0).Frequency
	if e.Frequency() != want {
		t.Fatalf("expected %.4f Hz, got %.4f Hz", want, e.Frequency())
	}

	e.SetKeyIndex(12)
	if note := e.Update(sliceCenterX(2), 0, 0); note != 3 {
		t.Fatalf("C minor third: expected 3, got %d", note)
	}
}

func TestSynthEngine_Setters(t *testing.T) {
	e, _ := newTestEngine(t)

	keys := []struct{ in, want int }{{-1, 23}, {24, 0}, {25, 1}, {12, 12}}
	for _, tc := range keys {
		e.SetKeyIndex(tc.in)
		if e.KeyIndex() != tc.want {
			t.Errorf("SetKeyIndex(%d): expected %d, got %d", tc.in, tc.want, e.KeyIndex())
		}
	}

	e.SetWaveform(5)
	if e.Waveform() != WaveSquare {
		t.Errorf("SetWaveform(5): expected Square, got %s", e.Waveform())
	}
	e.SetWaveform(-1)
	if e.WaveformName() != "Triangle" {
		t.Errorf("SetWaveform(-1): expected Triangle, got %s", e.WaveformName())
	}

	e.SetVolume(2)
	if e.Volume() != 1 {
		t.Errorf("SetVolume(2): expected 1, got %v", e.Volume())
	}
	e.SetVolume(math.NaN())
	if e.Volume() != 0 {
		t.Errorf("SetVolume(NaN): expected 0, got %v", e.Volume())
	}

	e.SetFrequency(330)
	e.SetFrequency(-5)
	e.SetFrequency(math.Inf(1))
	if e.Frequency() != 330 {
		t.Errorf("invalid frequencies should be ignored, got %v", e.Frequency())
	}
}

func TestSynthEngine_ConfigureError(t *testing.T) {
	boom := errors.New("no device")
	out := &recordingOutput{configErr: boom}
	e, err := NewSynthEngine(out)
	if !errors.Is(err, boom) || e != nil {
		t.Fatalf("expected configure error, got %v", err)
	}
	if out.started || len(out.queued) != 0 {
		t.Fatal("nothing should be queued or started after a configure failure")
	}
}

func TestSynthEngine_QueueErrorClosesDevice(t *testing.T) {
	out := &recordingOutput{queueErr: &AudioError{Operation: "queue", Details: "rejected"}}
	if _, err := NewSynthEngine(out); err == nil {
		t.Fatal("expected queue error")
	}
	if out.closes != 1 || out.started {
		t.Fatalf("expected device closed without starting, closes=%d started=%v", out.closes, out.started)
	}
}

func TestSynthEngine_StartErrorClosesDevice(t *testing.T) {
	out := &recordingOutput{startErr: errors.New("start failed")}
	if _, err := NewSynthEngine(out); err == nil {
		t.Fatal("expected start error")
	}
	if out.closes != 1 {
		t.Fatalf("expected device closed once, got %d", out.closes)
	}
}

func TestSynthEngine_TickRequeueError(t *testing.T) {
	e, out := newTestEngine(t)
	out.queueErr = errors.New("queue rejected")
	e.Slot(0).SetStatus(WAVEBUF_DONE)

	if e.Tick() {
		t.Fatal("tick should report no refill when the device rejects the buffer")
	}
	if e.Cursor() != 2*SAMPLES_PER_BUF || e.FillSlot() != 0 {
		t.Fatalf("failed refill must not advance: cursor %d slot %d", e.Cursor(), e.FillSlot())
	}
}

func TestSynthEngine_CloseIdempotent(t *testing.T) {
	e, out := newTestEngine(t)

	if err := e.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("second close failed: %v", err)
	}
	if !out.stopped || out.closes != 1 {
		t.Fatalf("expected one stop/close, stopped=%v closes=%d", out.stopped, out.closes)
	}
	if e.Tick() {
		t.Fatal("closed engine should not refill")
	}
	if e.SlotStatus(0) != WAVEBUF_IDLE || e.Slot(0) != nil {
		t.Fatal("closed engine should drop its buffers")
	}
}

func TestSynthEngine_StatsUnderruns(t *testing.T) {
	e, out := newTestEngine(t)
	out.underruns = 4
	if got := e.Stats().Underruns; got != 4 {
		t.Fatalf("expected 4 underruns, got %d", got)
	}
}
