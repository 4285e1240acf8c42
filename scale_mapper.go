// scale_mapper.go - Touch position to scale-quantized pitch and volume

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

// Mode is the diatonic mode selected by the upper half of the key index.
type Mode int

const (
	ModeIonian Mode = iota
	ModeAeolian
)

var scaleIntervals = [2][SCALE_DEGREES]int{
	ModeIonian:  {0, 2, 4, 5, 7, 9, 11},
	ModeAeolian: {0, 2, 3, 5, 7, 8, 10},
}

var noteNames = [12]string{
	"C", "C#", "D", "D#",
	"E", "F", "F#", "G",
	"G#", "A", "A#", "B",
}

var keyNames = [KEY_COUNT]string{
	"C Major", "C# Major", "D Major", "D# Major",
	"E Major", "F Major", "F# Major", "G Major",
	"G# Major", "A Major", "A# Major", "B Major",

	"C Minor", "C# Minor", "D Minor", "D# Minor",
	"E Minor", "F Minor", "F# Minor", "G Minor",
	"G# Minor", "A Minor", "A# Minor", "B Minor",
}

var modeNames = [2]string{
	ModeIonian:  "Ionian (Major)",
	ModeAeolian: "Aeolian (Minor)",
}

const NO_NOTE_NAME = "---"

// ControlResult is what one touch sample resolves to.
type ControlResult struct {
	Frequency float64
	NoteClass int
	Volume    float64
}

// floorMod keeps v in [0,n) for negative v as well.
func floorMod(v, n int) int {
	return ((v % n) + n) % n
}

func keyRoot(keyIndex int) int {
	return floorMod(keyIndex, KEY_COUNT) % 12
}

func keyMode(keyIndex int) Mode {
	if floorMod(keyIndex, KEY_COUNT) < 12 {
		return ModeIonian
	}
	return ModeAeolian
}

func KeyName(keyIndex int) string {
	return keyNames[floorMod(keyIndex, KEY_COUNT)]
}

func ModeName(keyIndex int) string {
	return modeNames[keyMode(keyIndex)]
}

// NoteName returns the chromatic name of a note class, or NO_NOTE_NAME for
// a negative class.
func NoteName(noteClass int) string {
	if noteClass < 0 {
		return NO_NOTE_NAME
	}
	return noteNames[noteClass%12]
}

func semitoneToFreq(semitone float64) float64 {
	return A4_FREQ * math.Pow(2, (semitone-A4_MIDI)/12)
}

func applyDeadzone(bend float64) float64 {
	if math.IsNaN(bend) || math.IsInf(bend, 0) || math.Abs(bend) < BEND_DEADZONE {
		return 0
	}
	return bend
}

// clampUnit pins v to [0, 1]; NaN reads as 0.
func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

// sliceForX quantizes a horizontal position into one of NOTE_SLICES.
// The clamp happens on the float so Inf and NaN never reach the int conversion.
func sliceForX(x float64) int {
	if !(x > 0) {
		return 0
	}
	if x >= LOGICAL_WIDTH {
		return NOTE_SLICES - 1
	}
	return int(x / (LOGICAL_WIDTH / float64(NOTE_SLICES)))
}

// sliceSemitone is the quantized pitch of a slice relative to C, before bend.
// Degrees 7..11 repeat the mode one octave up.
func sliceSemitone(slice, keyIndex int) int {
	octaveShift := (slice / SCALE_DEGREES) * 12
	scaleIndex := slice % SCALE_DEGREES
	return keyRoot(keyIndex) + scaleIntervals[keyMode(keyIndex)][scaleIndex] + octaveShift
}

// SliceNoteClass is the note class a slice sounds with no bend applied.
func SliceNoteClass(slice, keyIndex int) int {
	return sliceSemitone(slice, keyIndex) % 12
}

// MapControl resolves a surface position, bend and key selection to a pitch,
// a note class and a volume. Inputs outside the surface are clamped, a NaN
// height is silent and a non-finite bend counts as no bend.
func MapControl(x, y, bend float64, keyIndex int) ControlResult {
	bend = applyDeadzone(bend)

	semitone := float64(sliceSemitone(sliceForX(x), keyIndex)) + bend

	return ControlResult{
		Frequency: semitoneToFreq(BASE_SEMITONE + semitone),
		NoteClass: floorMod(int(math.Round(semitone)), 12),
		Volume:    clampUnit(1 - y/LOGICAL_HEIGHT),
	}
}
