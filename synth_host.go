// synth_host.go - Per-frame control loop between input, engine and display

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"context"
	"fmt"
	"time"
)

// InputState is one frame of control input. KeyDelta and WaveDelta are
// edge counts (button presses this frame), not levels.
type InputState struct {
	TouchX    float64
	TouchY    float64
	Touching  bool
	Bend      float64 // Semitones, roughly -1..+1 from an analog stick
	KeyDelta  int
	WaveDelta int
	Quit      bool
}

type InputSource interface {
	Poll() InputState
}

// StatusSnapshot is everything a display needs for one frame.
type StatusSnapshot struct {
	KeyIndex     int
	KeyName      string
	ModeName     string
	WaveformName string
	Bend         float64
	Note         string
	Touching     bool
	TouchX       float64
	TouchY       float64
	Volume       float64
	Frequency    float64
	MeasuredHz   float64 // Pitch probe estimate, 0 when no probe is attached
	Stats        EngineStats
}

var helpLines = []string{
	"Touch = play note",
	"L/R = waveform",
	"A/B = change key",
	"Stick = microtone bend",
}

// Lines renders the status rows shown under the help text.
func (s StatusSnapshot) Lines() []string {
	return []string{
		fmt.Sprintf("Key:      %-12s", s.KeyName),
		fmt.Sprintf("Mode:     %-16s", s.ModeName),
		fmt.Sprintf("Waveform: %-10s", s.WaveformName),
		fmt.Sprintf("Bend:     %+0.2f st", s.Bend),
		fmt.Sprintf("Note:     %-4s", s.Note),
	}
}

type DisplaySink interface {
	Render(status StatusSnapshot)
}

// SynthHost drives one engine from one input source. Frame is meant to be
// called at a fixed rate by whatever owns the main loop.
type SynthHost struct {
	engine  *SynthEngine
	input   InputSource
	display DisplaySink
	probe   *PitchProbe

	lastTouching  bool
	note          int
	bend          float64
	lastUnderruns uint64
	frames        uint64
	last          StatusSnapshot
}

func NewSynthHost(engine *SynthEngine, input InputSource, display DisplaySink) *SynthHost {
	engine.SetKeyIndex(0)
	engine.SetWaveform(0)
	return &SynthHost{
		engine:  engine,
		input:   input,
		display: display,
		note:    -1,
	}
}

// AttachProbe makes every refilled buffer feed the pitch probe.
func (h *SynthHost) AttachProbe(p *PitchProbe) {
	h.probe = p
}

// Frame runs one host iteration. It returns false once the input asks to
// quit; the engine is left running for the caller to close.
func (h *SynthHost) Frame() bool {
	in := h.input.Poll()
	if in.Quit {
		return false
	}
	h.frames++

	if in.KeyDelta != 0 {
		h.engine.SetKeyIndex(h.engine.KeyIndex() + in.KeyDelta)
		logger.Debug("key changed", "key", h.engine.KeyName())
	}
	if in.WaveDelta != 0 {
		h.engine.SetWaveform(int(h.engine.Waveform()) + in.WaveDelta)
		logger.Debug("waveform changed", "waveform", h.engine.WaveformName())
	}

	h.bend = applyDeadzone(in.Bend)

	if in.Touching {
		h.note = h.engine.Update(in.TouchX, in.TouchY, h.bend)
	} else if h.lastTouching {
		// Muting instead of stopping keeps the stream and its phase running.
		h.engine.Mute()
		h.note = -1
	}
	h.lastTouching = in.Touching

	if h.engine.Tick() && h.probe != nil {
		h.probe.Feed(h.engine.Slot(h.engine.FillSlot() ^ 1))
	}

	stats := h.engine.Stats()
	if stats.Underruns > h.lastUnderruns {
		logger.Warn("audio underrun",
			"new", stats.Underruns-h.lastUnderruns,
			"total", stats.Underruns,
			"frame", h.frames,
		)
		h.lastUnderruns = stats.Underruns
	}

	h.last = StatusSnapshot{
		KeyIndex:     h.engine.KeyIndex(),
		KeyName:      h.engine.KeyName(),
		ModeName:     h.engine.ModeName(),
		WaveformName: h.engine.WaveformName(),
		Bend:         h.bend,
		Note:         NoteName(h.note),
		Touching:     in.Touching,
		TouchX:       in.TouchX,
		TouchY:       in.TouchY,
		Volume:       h.engine.Volume(),
		Frequency:    h.engine.Frequency(),
		Stats:        stats,
	}
	if h.probe != nil && in.Touching {
		h.last.MeasuredHz = h.probe.Estimate()
	}
	if h.display != nil {
		h.display.Render(h.last)
	}
	return true
}

// Status returns the snapshot produced by the most recent frame.
func (h *SynthHost) Status() StatusSnapshot {
	return h.last
}

func (h *SynthHost) Engine() *SynthEngine {
	return h.engine
}

// Run calls Frame at tps until the input quits or ctx is cancelled.
func (h *SynthHost) Run(ctx context.Context, tps int) error {
	if tps <= 0 {
		tps = DEFAULT_TPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !h.Frame() {
				return nil
			}
		}
	}
}
