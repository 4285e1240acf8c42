// wave_buffer.go - Fixed-length PCM buffer shared between engine and device

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

import "sync/atomic"

// WaveBufStatus is owned by the device once a buffer is queued.
type WaveBufStatus int32

const (
	WAVEBUF_IDLE    WaveBufStatus = iota // Allocated, never queued
	WAVEBUF_PLAYING                      // Queued to the device or being consumed
	WAVEBUF_DONE                         // Device finished; engine may refill
)

func (s WaveBufStatus) String() string {
	switch s {
	case WAVEBUF_IDLE:
		return "idle"
	case WAVEBUF_PLAYING:
		return "playing"
	case WAVEBUF_DONE:
		return "done"
	}
	return "unknown"
}

// WaveBuf holds one slot of interleaved stereo frames. The engine writes
// Data only while the status is WAVEBUF_DONE or WAVEBUF_IDLE; the device
// reads it only while WAVEBUF_PLAYING.
type WaveBuf struct {
	Data     []int16 // L,R,L,R... len = NSamples*CHANNEL_COUNT
	NSamples int
	status   atomic.Int32
}

func NewWaveBuf(nsamples int) *WaveBuf {
	return &WaveBuf{
		Data:     make([]int16, nsamples*CHANNEL_COUNT),
		NSamples: nsamples,
	}
}

func (b *WaveBuf) Status() WaveBufStatus {
	return WaveBufStatus(b.status.Load())
}

func (b *WaveBuf) SetStatus(s WaveBufStatus) {
	b.status.Store(int32(s))
}
