// frontend.go - Frontend selection and display helpers shared by all frontends

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
	"strings"
)

// FrontendError provides context for window/terminal frontend failures.
type FrontendError struct {
	Operation string
	Details   string
	Err       error
}

func (e *FrontendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("frontend %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("frontend %s failed: %s", e.Operation, e.Details)
}

func (e *FrontendError) Unwrap() error {
	return e.Err
}

const (
	FRONTEND_EBITEN = iota // Window with touch/mouse/gamepad input
	FRONTEND_CONSOLE       // Raw terminal keys and ANSI status text
)

const (
	MIN_SCALE = 1
	MAX_SCALE = 6
)

func parseFrontend(name string) (int, error) {
	switch strings.ToLower(name) {
	case "", "ebiten", "window":
		return FRONTEND_EBITEN, nil
	case "console", "terminal":
		return FRONTEND_CONSOLE, nil
	}
	return 0, &FrontendError{
		Operation: "selection",
		Details:   fmt.Sprintf("unknown frontend %q", name),
	}
}

func ClampScale(scale int) int {
	return max(MIN_SCALE, min(MAX_SCALE, scale))
}

// sliceLabels names the note every surface slice plays in the given key.
func sliceLabels(keyIndex int) [NOTE_SLICES]string {
	var labels [NOTE_SLICES]string
	for i := range labels {
		labels[i] = noteNames[SliceNoteClass(i, keyIndex)]
	}
	return labels
}

// statusClipboardText is the plain-text form of the status rows.
func statusClipboardText(s StatusSnapshot) []byte {
	lines := s.Lines()
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}
