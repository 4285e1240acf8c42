// terminal_io.go - Keyboard-to-control translation for the console frontend

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
	"sync"
)

const (
	CONSOLE_DEFAULT_Y = 60   // Latched stylus height, volume 0.75
	CONSOLE_Y_STEP    = 24   // z/x volume step in surface units
	CONSOLE_BEND_STEP = 0.25 // [ and ] bend step in semitones
)

// consoleSliceKeys lays the 12 surface slices along the number row.
const consoleSliceKeys = "1234567890-="

// TerminalInput turns raw key bytes into InputState. A terminal reports
// no key releases, so the stylus is latched: a slice key puts it down and
// space lifts it.
type TerminalInput struct {
	mu      sync.Mutex
	pending []byte

	touching bool
	slice    int
	y        float64
	bend     float64
}

func NewTerminalInput() *TerminalInput {
	return &TerminalInput{y: CONSOLE_DEFAULT_Y}
}

// RouteHostKey queues one byte from the terminal reader goroutine.
func (ti *TerminalInput) RouteHostKey(b byte) {
	ti.mu.Lock()
	ti.pending = append(ti.pending, b)
	ti.mu.Unlock()
}

func (ti *TerminalInput) Poll() InputState {
	ti.mu.Lock()
	keys := ti.pending
	ti.pending = nil
	ti.mu.Unlock()

	var in InputState
	for i := 0; i < len(keys); i++ {
		b := keys[i]
		// ESC [ C / ESC [ D are the right/left arrows; a lone ESC quits.
		if b == 0x1B {
			if i+2 < len(keys) && keys[i+1] == '[' {
				switch keys[i+2] {
				case 'C':
					ti.stepBend(CONSOLE_BEND_STEP)
				case 'D':
					ti.stepBend(-CONSOLE_BEND_STEP)
				}
				i += 2
				continue
			}
			in.Quit = true
			continue
		}
		ti.applyKey(&in, b)
	}

	in.Touching = ti.touching
	if ti.touching {
		in.TouchX = sliceCenterX(ti.slice)
		in.TouchY = ti.y
	}
	in.Bend = ti.bend
	return in
}

func (ti *TerminalInput) applyKey(in *InputState, b byte) {
	for i := 0; i < len(consoleSliceKeys); i++ {
		if consoleSliceKeys[i] == b {
			ti.slice = i
			ti.touching = true
			return
		}
	}

	switch b {
	case ' ':
		ti.touching = false
	case 'a', 'A':
		in.KeyDelta--
	case 'b', 'B':
		in.KeyDelta++
	case 'l', 'L':
		in.WaveDelta--
	case 'r', 'R':
		in.WaveDelta++
	case '[':
		ti.stepBend(-CONSOLE_BEND_STEP)
	case ']':
		ti.stepBend(CONSOLE_BEND_STEP)
	case '\\':
		ti.bend = 0
	case 'z', 'Z':
		ti.y = math.Min(LOGICAL_HEIGHT, ti.y+CONSOLE_Y_STEP)
	case 'x', 'X':
		ti.y = math.Max(0, ti.y-CONSOLE_Y_STEP)
	case 'q', 'Q', 0x03:
		in.Quit = true
	}
}

func (ti *TerminalInput) stepBend(d float64) {
	ti.bend = math.Max(-1, math.Min(1, ti.bend+d))
}

// sliceCenterX is the surface x in the middle of a slice.
func sliceCenterX(slice int) float64 {
	return (float64(slice) + 0.5) * LOGICAL_WIDTH / NOTE_SLICES
}
