// terminal_output.go - Status text display for the console frontend

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
	"io"
	"os"
	"slices"

	"golang.org/x/term"
)

const (
	ANSI_CLEAR       = "\x1b[2J"
	ANSI_HIDE_CUR    = "\x1b[?25l"
	ANSI_SHOW_CUR    = "\x1b[?25h"
	STATUS_FIRST_ROW = 6 // Rows 1-4 carry the help text, row 5 the key map
)

const consoleKeyMap = "Keys: 1..= slices  space lift  [ ] bend  z/x vol  q quit"

// TerminalDisplay writes the status rows to a terminal. On a TTY each row
// is repainted in place with cursor addressing; otherwise every changed
// frame is printed as a plain block.
type TerminalDisplay struct {
	out     io.Writer
	ansi    bool
	started bool
	last    []string
}

// NewTerminalDisplay detects whether out is a terminal.
func NewTerminalDisplay(out io.Writer) *TerminalDisplay {
	ansi := false
	if f, ok := out.(*os.File); ok {
		ansi = term.IsTerminal(int(f.Fd()))
	}
	return &TerminalDisplay{out: out, ansi: ansi}
}

func (d *TerminalDisplay) Render(status StatusSnapshot) {
	lines := status.Lines()
	if d.started && slices.Equal(lines, d.last) {
		return
	}

	if !d.ansi {
		for _, l := range lines {
			fmt.Fprintln(d.out, l)
		}
		fmt.Fprintln(d.out)
		d.started = true
		d.last = lines
		return
	}

	if !d.started {
		fmt.Fprint(d.out, ANSI_CLEAR+ANSI_HIDE_CUR)
		for i, l := range helpLines {
			fmt.Fprintf(d.out, "\x1b[%d;1H%s", i+1, l)
		}
		fmt.Fprintf(d.out, "\x1b[%d;1H%s", len(helpLines)+1, consoleKeyMap)
		d.started = true
	}
	for i, l := range lines {
		if i < len(d.last) && d.last[i] == l {
			continue
		}
		fmt.Fprintf(d.out, "\x1b[%d;1H%s\x1b[K", STATUS_FIRST_ROW+i, l)
	}
	d.last = lines
}

// Finish leaves the cursor below the status block.
func (d *TerminalDisplay) Finish() {
	if !d.ansi || !d.started {
		return
	}
	fmt.Fprintf(d.out, "\x1b[%d;1H%s\r\n", STATUS_FIRST_ROW+len(d.last), ANSI_SHOW_CUR)
}
