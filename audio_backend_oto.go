//go:build !headless

// audio_backend_oto.go - OTO v3 audio output implementation

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
	"encoding/binary"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
)

func init() {
	compiledFeatures = append(compiledFeatures, "audio:oto")
}

// OtoPlayer feeds queued wave buffers to oto. oto pulls Read from its own
// goroutine; that path only touches the wave queue.
type OtoPlayer struct {
	ctx       *oto.Context
	player    *oto.Player
	queue     atomic.Pointer[waveQueue] // Atomic for lock-free Read()
	sampleBuf []int16                   // Pre-allocated interleaved scratch
	started   bool
	mutex     sync.Mutex // Only for setup/control operations
}

func NewOtoPlayer() (*OtoPlayer, error) {
	return &OtoPlayer{}, nil
}

// Configure opens the oto context. oto allows one context per process, so
// the device is claimed until exit.
func (op *OtoPlayer) Configure(cfg AudioConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.ctx != nil {
		return &AudioError{Operation: "configure", Details: "device already configured"}
	}

	options := &oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   time.Duration(cfg.BufferFrames) * time.Second / time.Duration(cfg.SampleRate),
	}

	ctx, ready, err := oto.NewContext(options)
	if err != nil {
		return &AudioError{Operation: "open", Details: "oto context", Err: err}
	}
	<-ready

	op.ctx = ctx
	op.queue.Store(newWaveQueue(cfg))
	op.sampleBuf = make([]int16, cfg.BufferFrames*CHANNEL_COUNT)
	op.player = ctx.NewPlayer(op)
	// Keep oto's read-ahead to one wave buffer so done status tracks playback.
	op.player.SetBufferSize(cfg.BufferFrames * BYTES_PER_FRAME)
	return nil
}

func (op *OtoPlayer) Queue(buf *WaveBuf) error {
	q := op.queue.Load()
	if q == nil {
		return &AudioError{Operation: "queue", Details: "device not configured"}
	}
	return q.push(buf)
}

func (op *OtoPlayer) Read(p []byte) (n int, err error) {
	q := op.queue.Load()
	if q == nil {
		clear(p)
		return len(p), nil
	}

	numSamples := len(p) / 2
	if len(op.sampleBuf) < numSamples {
		op.sampleBuf = make([]int16, numSamples)
	}
	samples := op.sampleBuf[:numSamples-numSamples%CHANNEL_COUNT]
	q.pull(samples)

	for i, s := range samples {
		binary.LittleEndian.PutUint16(p[i*2:], uint16(s))
	}
	clear(p[len(samples)*2:])
	return len(p), nil
}

func (op *OtoPlayer) Start() error {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.player == nil {
		return &AudioError{Operation: "start", Details: "device not configured"}
	}
	if !op.started {
		op.player.Play()
		op.started = true
	}
	return nil
}

func (op *OtoPlayer) Stop() {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if q := op.queue.Load(); q != nil {
		q.stop()
	}
	if op.started && op.player != nil {
		op.player.Pause()
		op.started = false
	}
}

func (op *OtoPlayer) Close() error {
	op.Stop()
	op.mutex.Lock()
	defer op.mutex.Unlock()

	var err error
	if op.player != nil {
		err = op.player.Close()
		op.player = nil
	}
	if q := op.queue.Load(); q != nil {
		q.release()
	}
	return err
}

func (op *OtoPlayer) IsStarted() bool {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	return op.started
}

func (op *OtoPlayer) Underruns() uint64 {
	if q := op.queue.Load(); q != nil {
		return q.underruns.Load()
	}
	return 0
}
