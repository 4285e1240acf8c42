//go:build !headless

// video_backend_ebiten.go - Ebiten window frontend: touch surface, input polling and status text

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
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

func init() {
	compiledFeatures = append(compiledFeatures, "frontend:ebiten")
}

const ebitenAvailable = true

var (
	bgColor     = color.RGBA{16, 16, 24, 255}
	sliceColor  = color.RGBA{36, 36, 52, 255}
	tonicColor  = color.RGBA{52, 44, 72, 255}
	activeColor = color.RGBA{0, 120, 60, 255}
	markerColor = color.RGBA{255, 230, 147, 255}
	panelColor  = color.RGBA{0, 0, 0, 170}
	labelColor  = color.RGBA{190, 190, 190, 255}
	noteColor   = color.RGBA{0, 220, 90, 255}
)

const (
	lineH        = 13
	stickEpsilon = 1e-3
)

// EbitenFrontend is both the input source and the display sink for the
// window frontend. Ebiten calls Update at a fixed TPS, which drives the host.
type EbitenFrontend struct {
	host     *SynthHost
	scale    int
	tps      int
	status   StatusSnapshot
	touchIDs []ebiten.TouchID
	padIDs   []ebiten.GamepadID

	showHelp  bool
	showDebug bool

	clipboardOnce sync.Once
	clipboardOK   bool
}

func NewEbitenFrontend(scale, tps int) *EbitenFrontend {
	if tps <= 0 {
		tps = DEFAULT_TPS
	}
	return &EbitenFrontend{
		scale:    ClampScale(scale),
		tps:      tps,
		showHelp: true,
	}
}

// Run blocks in ebiten's game loop until the window closes or the host
// input quits.
func (eo *EbitenFrontend) Run(host *SynthHost) error {
	eo.host = host

	ebiten.SetWindowSize(LOGICAL_WIDTH*eo.scale, LOGICAL_HEIGHT*eo.scale)
	ebiten.SetWindowTitle("Theremin")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetTPS(eo.tps)

	if err := ebiten.RunGame(eo); err != nil {
		return &FrontendError{Operation: "run", Details: "ebiten game loop", Err: err}
	}
	return nil
}

func (eo *EbitenFrontend) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		eo.showHelp = !eo.showHelp
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		eo.showDebug = !eo.showDebug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) || (isCtrlPressed() && inpututil.IsKeyJustPressed(ebiten.KeyC)) {
		eo.copyStatus()
	}
	if eo.host == nil || !eo.host.Frame() {
		return ebiten.Termination
	}
	return nil
}

func isCtrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
}

// Poll reads the stylus (first touch, else left mouse), buttons and stick.
func (eo *EbitenFrontend) Poll() InputState {
	var in InputState

	eo.touchIDs = ebiten.AppendTouchIDs(eo.touchIDs[:0])
	if len(eo.touchIDs) > 0 {
		x, y := ebiten.TouchPosition(eo.touchIDs[0])
		in.TouchX, in.TouchY, in.Touching = float64(x), float64(y), true
	} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		in.TouchX, in.TouchY, in.Touching = float64(x), float64(y), true
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		in.KeyDelta--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		in.KeyDelta++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		in.WaveDelta--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyE) {
		in.WaveDelta++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.Bend = mergeBend(in.Bend, -1)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.Bend = mergeBend(in.Bend, 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		in.Quit = true
	}

	eo.padIDs = ebiten.AppendGamepadIDs(eo.padIDs[:0])
	for _, id := range eo.padIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight) {
			in.KeyDelta--
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			in.KeyDelta++
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopLeft) {
			in.WaveDelta--
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopRight) {
			in.WaveDelta++
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight) {
			in.Quit = true
		}
		axis := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		in.Bend = mergeBend(in.Bend, stickBend(axis))
	}
	return in
}

// stickBend maps a stick axis to a bend of at most one semitone each way.
func stickBend(axis float64) float64 {
	if math.IsNaN(axis) || math.Abs(axis) < stickEpsilon {
		return 0
	}
	return math.Max(-1, math.Min(1, axis))
}

// mergeBend keeps whichever bend source is pushed further.
func mergeBend(cur, next float64) float64 {
	if math.Abs(next) > math.Abs(cur) {
		return next
	}
	return cur
}

func (eo *EbitenFrontend) Render(status StatusSnapshot) {
	eo.status = status
}

func (eo *EbitenFrontend) copyStatus() {
	eo.clipboardOnce.Do(func() {
		eo.clipboardOK = clipboard.Init() == nil
		if !eo.clipboardOK {
			logger.Warn("clipboard unavailable")
		}
	})
	if !eo.clipboardOK {
		return
	}
	clipboard.Write(clipboard.FmtText, statusClipboardText(eo.status))
	logger.Debug("status copied to clipboard")
}

func (eo *EbitenFrontend) Draw(screen *ebiten.Image) {
	s := eo.status
	face := basicfont.Face7x13

	screen.Fill(bgColor)

	sliceW := float64(LOGICAL_WIDTH) / NOTE_SLICES
	active := -1
	if s.Touching {
		active = sliceForX(s.TouchX)
	}
	labels := sliceLabels(s.KeyIndex)
	for i := 0; i < NOTE_SLICES; i++ {
		x := float64(i) * sliceW
		c := sliceColor
		switch {
		case i == active:
			c = activeColor
		case i%SCALE_DEGREES == 0:
			c = tonicColor
		}
		ebitenutil.DrawRect(screen, x+1, 0, sliceW-2, LOGICAL_HEIGHT, c)
		text.Draw(screen, labels[i], face, int(x)+4, LOGICAL_HEIGHT-6, labelColor)
	}

	if s.Touching {
		ebitenutil.DrawRect(screen, s.TouchX-3, s.TouchY-3, 6, 6, markerColor)
	}

	rows := s.Lines()
	if eo.showHelp {
		rows = append(append([]string{}, helpLines...), rows...)
	}
	ebitenutil.DrawRect(screen, 0, 0, LOGICAL_WIDTH, float64(len(rows)*lineH+6), panelColor)
	for i, row := range rows {
		c := labelColor
		if i == len(rows)-1 && s.Touching {
			c = noteColor
		}
		text.Draw(screen, row, face, 6, (i+1)*lineH, c)
	}

	if eo.showDebug {
		dbg := fmt.Sprintf("%7.2fHz (fft %7.2f) vol %.2f xrun %d",
			s.Frequency, s.MeasuredHz, s.Volume, s.Stats.Underruns)
		ebitenutil.DrawRect(screen, 0, LOGICAL_HEIGHT-2*lineH-4, LOGICAL_WIDTH, lineH+4, panelColor)
		text.Draw(screen, dbg, face, 6, LOGICAL_HEIGHT-lineH-4, labelColor)
	}
}

func (eo *EbitenFrontend) Layout(_, _ int) (int, int) {
	return LOGICAL_WIDTH, LOGICAL_HEIGHT
}
