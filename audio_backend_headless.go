//go:build headless

// audio_backend_headless.go - Real-time draining output without a sound card

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
	"sync"
	"time"
)

func init() {
	compiledFeatures = append(compiledFeatures, "audio:headless")
}

const HEADLESS_PULL_HZ = 100

// OtoPlayer in headless builds consumes queued buffers at the configured
// sample rate and discards them, so buffer status behaves like real playback.
type OtoPlayer struct {
	queue   *waveQueue
	chunk   []int16
	stopCh  chan struct{}
	done    chan struct{}
	started bool
	mutex   sync.Mutex
}

func NewOtoPlayer() (*OtoPlayer, error) {
	return &OtoPlayer{}, nil
}

func (op *OtoPlayer) Configure(cfg AudioConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.queue != nil {
		return &AudioError{Operation: "configure", Details: "device already configured"}
	}
	op.queue = newWaveQueue(cfg)
	op.chunk = make([]int16, max(cfg.SampleRate/HEADLESS_PULL_HZ, 1)*CHANNEL_COUNT)
	return nil
}

func (op *OtoPlayer) Queue(buf *WaveBuf) error {
	op.mutex.Lock()
	q := op.queue
	op.mutex.Unlock()
	if q == nil {
		return &AudioError{Operation: "queue", Details: "device not configured"}
	}
	return q.push(buf)
}

func (op *OtoPlayer) Start() error {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.queue == nil {
		return &AudioError{Operation: "start", Details: "device not configured"}
	}
	if op.started {
		return nil
	}
	op.started = true
	op.stopCh = make(chan struct{})
	op.done = make(chan struct{})

	go func(q *waveQueue, chunk []int16, stopCh, done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(time.Second / HEADLESS_PULL_HZ)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				q.pull(chunk)
			}
		}
	}(op.queue, op.chunk, op.stopCh, op.done)
	return nil
}

func (op *OtoPlayer) Stop() {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if !op.started {
		return
	}
	op.queue.stop()
	close(op.stopCh)
	<-op.done
	op.started = false
}

func (op *OtoPlayer) Close() error {
	op.Stop()
	op.mutex.Lock()
	defer op.mutex.Unlock()
	if op.queue != nil {
		op.queue.release()
	}
	return nil
}

func (op *OtoPlayer) IsStarted() bool {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	return op.started
}

func (op *OtoPlayer) Underruns() uint64 {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	if op.queue == nil {
		return 0
	}
	return op.queue.underruns.Load()
}
