// synth_engine.go - Monophonic streaming synth with ping-pong buffer refill

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

import "math"

// EngineStats summarises stream progress for logs and the status bar.
type EngineStats struct {
	Refills   uint64
	Cursor    uint64
	Underruns uint64
}

// SynthEngine owns the live synth parameters and the two wave buffers.
// All methods run on the host loop goroutine; the device only sees the
// buffers through their status words.
type SynthEngine struct {
	// Read at fill time, written by the mutators
	frequency float64
	volume    float64
	waveform  Waveform
	keyIndex  int
	note      int

	cursor   uint64 // Frames synthesized since stream start
	refills  uint64
	fillSlot int // Slot whose turn it is to be refilled
	slots    [WAVEBUF_COUNT]*WaveBuf

	output AudioOutput
	closed bool
}

// NewSynthEngine configures the device, pre-fills both buffers from cursor
// 0, queues them and starts playback. Any error here means there is no
// usable output device.
func NewSynthEngine(output AudioOutput) (*SynthEngine, error) {
	e := &SynthEngine{
		frequency: DEFAULT_FREQ,
		note:      -1,
		output:    output,
	}

	if err := output.Configure(DefaultAudioConfig()); err != nil {
		return nil, err
	}

	for i := range e.slots {
		e.slots[i] = NewWaveBuf(SAMPLES_PER_BUF)
		e.fill(e.slots[i], e.cursor)
		e.cursor += uint64(SAMPLES_PER_BUF)
	}
	for _, buf := range e.slots {
		if err := output.Queue(buf); err != nil {
			output.Close()
			return nil, err
		}
	}
	if err := output.Start(); err != nil {
		output.Close()
		return nil, err
	}

	logger.Info("audio stream started",
		"sample_rate", SAMPLE_RATE,
		"buffer_frames", SAMPLES_PER_BUF,
		"buffers", WAVEBUF_COUNT,
	)
	return e, nil
}

// fill synthesizes buf.NSamples frames starting at the absolute frame offset.
func (e *SynthEngine) fill(buf *WaveBuf, offset uint64) {
	freq, vol, wave := e.frequency, e.volume, e.waveform
	for i := 0; i < buf.NSamples; i++ {
		t := float64(offset+uint64(i)) / SAMPLE_RATE
		s := toPCM16(vol * waveSample(wave, t, freq))
		buf.Data[i*CHANNEL_COUNT] = s
		buf.Data[i*CHANNEL_COUNT+1] = s
	}
}

// Tick refills the next slot if the device has finished with it. It never
// waits; when the slot is still playing nothing changes.
func (e *SynthEngine) Tick() bool {
	if e.closed {
		return false
	}
	buf := e.slots[e.fillSlot]
	if buf.Status() != WAVEBUF_DONE {
		return false
	}

	e.fill(buf, e.cursor)
	if err := e.output.Queue(buf); err != nil {
		logger.Error("requeue failed", "slot", e.fillSlot, "err", err)
		return false
	}
	e.cursor += uint64(buf.NSamples)
	e.refills++
	e.fillSlot ^= 1
	return true
}

// Update maps a touch sample against the current key and makes it live.
func (e *SynthEngine) Update(x, y, bend float64) int {
	res := MapControl(x, y, bend, e.keyIndex)
	e.frequency = res.Frequency
	e.volume = res.Volume
	e.note = res.NoteClass
	return e.note
}

func (e *SynthEngine) SetFrequency(hz float64) {
	if hz > 0 && !math.IsInf(hz, 0) {
		e.frequency = hz
	}
}

func (e *SynthEngine) SetVolume(v float64) {
	if math.IsNaN(v) {
		v = 0
	}
	e.volume = clampUnit(v)
}

func (e *SynthEngine) SetWaveform(v int) {
	e.waveform = normalizeWaveform(v)
}

func (e *SynthEngine) SetKeyIndex(v int) {
	e.keyIndex = floorMod(v, KEY_COUNT)
}

// Mute silences output without disturbing pitch, shape or the cursor, so
// the next note resumes in phase.
func (e *SynthEngine) Mute() {
	e.volume = 0
}

// Close stops the device before the buffers are dropped.
func (e *SynthEngine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.output.Stop()
	err := e.output.Close()
	logger.Info("audio stream closed",
		"frames", e.cursor,
		"refills", e.refills,
		"underruns", e.output.Underruns(),
	)
	for i := range e.slots {
		e.slots[i] = nil
	}
	return err
}

func (e *SynthEngine) Frequency() float64 { return e.frequency }
func (e *SynthEngine) Volume() float64 { return e.volume }
func (e *SynthEngine) Waveform() Waveform { return e.waveform }
func (e *SynthEngine) WaveformName() string { return e.waveform.String() }
func (e *SynthEngine) KeyIndex() int { return e.keyIndex }
func (e *SynthEngine) KeyName() string { return KeyName(e.keyIndex) }
func (e *SynthEngine) ModeName() string { return ModeName(e.keyIndex) }
func (e *SynthEngine) Note() int { return e.note }
func (e *SynthEngine) Cursor() uint64 { return e.cursor }
func (e *SynthEngine) FillSlot() int { return e.fillSlot }
func (e *SynthEngine) Slot(i int) *WaveBuf { return e.slots[i] }
func (e *SynthEngine) Output() AudioOutput { return e.output }

func (e *SynthEngine) SlotStatus(i int) WaveBufStatus {
	if e.slots[i] == nil {
		return WAVEBUF_IDLE
	}
	return e.slots[i].Status()
}

func (e *SynthEngine) Stats() EngineStats {
	return EngineStats{
		Refills:   e.refills,
		Cursor:    e.cursor,
		Underruns: e.output.Underruns(),
	}
}
