// audio_output.go - Output device contract and the device-side buffer queue

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
	"fmt"
	"sync/atomic"
)

// AudioError provides context for output device failures.
type AudioError struct {
	Operation string // What was being attempted
	Details   string // Additional context
	Err       error  // Underlying error if any
}

func (e *AudioError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("audio %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("audio %s failed: %s", e.Operation, e.Details)
}

func (e *AudioError) Unwrap() error {
	return e.Err
}

type AudioFormat int

const (
	AudioFormatStereoPCM16 AudioFormat = iota
)

type AudioInterp int

const (
	INTERP_NONE AudioInterp = iota
	INTERP_LINEAR
	INTERP_POLYPHASE
)

// AudioConfig is the channel setup handed to a device before any buffer
// is queued.
type AudioConfig struct {
	SampleRate   int
	Channels     int
	Format       AudioFormat
	Interp       AudioInterp
	Mix          [CHANNEL_COUNT]float32 // Per-channel gain
	BufferFrames int                    // Frames per queued buffer
	QueueDepth   int                    // Buffers the device may hold at once
}

// DefaultAudioConfig is the stream the synth engine runs.
func DefaultAudioConfig() AudioConfig {
	return AudioConfig{
		SampleRate:   SAMPLE_RATE,
		Channels:     CHANNEL_COUNT,
		Format:       AudioFormatStereoPCM16,
		Interp:       INTERP_LINEAR,
		Mix:          [CHANNEL_COUNT]float32{1, 1},
		BufferFrames: SAMPLES_PER_BUF,
		QueueDepth:   WAVEBUF_COUNT,
	}
}

func (c AudioConfig) validate() error {
	switch {
	case c.SampleRate <= 0:
		return &AudioError{Operation: "configure", Details: fmt.Sprintf("invalid sample rate %d", c.SampleRate)}
	case c.Channels != CHANNEL_COUNT:
		return &AudioError{Operation: "configure", Details: fmt.Sprintf("unsupported channel count %d", c.Channels)}
	case c.Format != AudioFormatStereoPCM16:
		return &AudioError{Operation: "configure", Details: fmt.Sprintf("unsupported format %d", c.Format)}
	case c.BufferFrames <= 0:
		return &AudioError{Operation: "configure", Details: fmt.Sprintf("invalid buffer length %d", c.BufferFrames)}
	case c.QueueDepth <= 0:
		return &AudioError{Operation: "configure", Details: fmt.Sprintf("invalid queue depth %d", c.QueueDepth)}
	}
	return nil
}

// AudioOutput is a device that plays queued wave buffers in order and marks
// each one WAVEBUF_DONE when it has been consumed. Queue never blocks.
type AudioOutput interface {
	Configure(cfg AudioConfig) error
	Queue(buf *WaveBuf) error
	Start() error
	Stop()
	Close() error
	IsStarted() bool
	Underruns() uint64
}

const (
	AUDIO_BACKEND_OTO = iota
)

// NewAudioOutput creates the platform output for the given backend.
func NewAudioOutput(backend int) (AudioOutput, error) {
	switch backend {
	case AUDIO_BACKEND_OTO:
		op, err := NewOtoPlayer()
		if err != nil {
			return nil, err
		}
		return op, nil
	}
	return nil, &AudioError{
		Operation: "backend creation",
		Details:   fmt.Sprintf("unknown backend type: %d", backend),
	}
}

// waveQueue is the consumer half of the buffer handoff. push runs on the
// engine side, pull on the device goroutine; the pending channel and the
// per-buffer status word are the only shared state.
type waveQueue struct {
	pending   chan *WaveBuf
	current   *WaveBuf
	pos       int // Next frame of current
	mix       [CHANNEL_COUNT]float32
	unity     bool
	stopped   atomic.Bool
	underruns atomic.Uint64
	frames    atomic.Uint64
}

func newWaveQueue(cfg AudioConfig) *waveQueue {
	return &waveQueue{
		pending: make(chan *WaveBuf, cfg.QueueDepth),
		mix:     cfg.Mix,
		unity:   cfg.Mix[0] == 1 && cfg.Mix[1] == 1,
	}
}

func (q *waveQueue) push(buf *WaveBuf) error {
	if buf == nil || buf.NSamples <= 0 {
		return &AudioError{Operation: "queue", Details: "empty wave buffer"}
	}
	buf.SetStatus(WAVEBUF_PLAYING)
	select {
	case q.pending <- buf:
		return nil
	default:
		buf.SetStatus(WAVEBUF_DONE)
		return &AudioError{Operation: "queue", Details: "device queue full"}
	}
}

// pull fills dst (interleaved stereo) from the queued buffers. When the
// queue runs dry the remainder is silence and one underrun is counted.
func (q *waveQueue) pull(dst []int16) {
	frames := len(dst) / CHANNEL_COUNT
	i := 0
	for i < frames {
		if q.current == nil {
			if q.stopped.Load() {
				break
			}
			select {
			case buf := <-q.pending:
				q.current = buf
				q.pos = 0
			default:
				q.underruns.Add(1)
			}
			if q.current == nil {
				break
			}
		}

		n := min(frames-i, q.current.NSamples-q.pos)
		src := q.current.Data[q.pos*CHANNEL_COUNT : (q.pos+n)*CHANNEL_COUNT]
		out := dst[i*CHANNEL_COUNT : (i+n)*CHANNEL_COUNT]
		if q.unity {
			copy(out, src)
		} else {
			for j := range out {
				out[j] = int16(float32(src[j]) * q.mix[j%CHANNEL_COUNT])
			}
		}
		i += n
		q.pos += n

		if q.pos == q.current.NSamples {
			q.current.SetStatus(WAVEBUF_DONE)
			q.current = nil
		}
	}

	clear(dst[i*CHANNEL_COUNT:])
	q.frames.Add(uint64(i))
}

// stop makes pull emit silence and hands every held buffer back as done.
func (q *waveQueue) stop() {
	q.stopped.Store(true)
}

// release marks held buffers done. Call only once the device goroutine has
// stopped pulling.
func (q *waveQueue) release() {
	if q.current != nil {
		q.current.SetStatus(WAVEBUF_DONE)
		q.current = nil
	}
	for {
		select {
		case buf := <-q.pending:
			buf.SetStatus(WAVEBUF_DONE)
		default:
			return
		}
	}
}
