// audio_pitch_probe.go - FFT pitch estimate of the synthesized stream

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
	"math"

	"github.com/ktye/fft"
)

const PROBE_SIZE = 1024

// PitchProbe keeps the most recent PROBE_SIZE mono frames written to the
// device and estimates their fundamental from the strongest FFT bin.
type PitchProbe struct {
	fft    fft.FFT
	ring   [PROBE_SIZE]float64
	pos    int
	filled int
	env    [PROBE_SIZE]float64
	buf    []complex128
}

func NewPitchProbe() (*PitchProbe, error) {
	f, err := fft.New(PROBE_SIZE)
	if err != nil {
		return nil, err
	}
	p := &PitchProbe{fft: f, buf: make([]complex128, PROBE_SIZE)}
	for i := range p.env {
		p.env[i] = (1 - math.Cos(2*math.Pi*float64(i)/PROBE_SIZE)) / 2
	}
	return p, nil
}

// Feed appends the left channel of buf.
func (p *PitchProbe) Feed(buf *WaveBuf) {
	if buf == nil {
		return
	}
	for i := 0; i < buf.NSamples; i++ {
		p.ring[p.pos] = float64(buf.Data[i*CHANNEL_COUNT]) / PCM_MAX
		p.pos = (p.pos + 1) % PROBE_SIZE
	}
	p.filled = min(PROBE_SIZE, p.filled+buf.NSamples)
}

func (p *PitchProbe) Reset() {
	p.pos, p.filled = 0, 0
}

// Estimate returns the dominant frequency in Hz, or 0 before a full window
// has been fed or when the window is silent.
func (p *PitchProbe) Estimate() float64 {
	if p.filled < PROBE_SIZE {
		return 0
	}
	for i := range p.buf {
		p.buf[i] = complex(p.ring[(p.pos+i)%PROBE_SIZE]*p.env[i], 0)
	}
	bins := p.fft.Transform(p.buf)

	mag := func(k int) float64 {
		re, im := real(bins[k]), imag(bins[k])
		return math.Sqrt(re*re + im*im)
	}
	peak, best := 0, 1e-9
	for k := 1; k < PROBE_SIZE/2; k++ {
		if m := mag(k); m > best {
			peak, best = k, m
		}
	}
	if peak == 0 {
		return 0
	}

	// Parabolic interpolation around the peak bin.
	shift := 0.0
	if peak > 1 && peak < PROBE_SIZE/2-1 {
		a, b, c := mag(peak-1), best, mag(peak+1)
		if d := a - 2*b + c; d != 0 {
			shift = 0.5 * (a - c) / d
		}
	}
	return (float64(peak) + shift) * SAMPLE_RATE / PROBE_SIZE
}
