// synth_constants.go - Stream format, control surface and tuning constants

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

const (
	SAMPLE_RATE     = 22050
	REFILL_RATE     = 30                        // Buffer refills per second the stream is sized for
	SAMPLES_PER_BUF = SAMPLE_RATE / REFILL_RATE // 735 frames per wave buffer
	CHANNEL_COUNT   = 2                         // Interleaved stereo, same signal on both channels
	BYTES_PER_FRAME = 4                         // Two signed 16-bit samples
	WAVEBUF_COUNT   = 2                         // Ping-pong pair
)

const (
	LOGICAL_WIDTH  = 320 // Touch surface width in logical units
	LOGICAL_HEIGHT = 240 // Touch surface height in logical units
	NOTE_SLICES    = 12  // Horizontal slices across the surface
)

const (
	A4_FREQ       = 440.0
	A4_MIDI       = 69
	BASE_SEMITONE = 72  // Anchors slice 0 of C Major at C5
	BEND_DEADZONE = 0.1 // |bend| below this is treated as zero
	PCM_MAX       = 32767
)

const (
	KEY_COUNT      = 24 // 12 roots x {major, minor}
	WAVEFORM_COUNT = 4
	SCALE_DEGREES  = 7
)

const (
	DEFAULT_FREQ = A4_FREQ
	DEFAULT_TPS  = 60
)
