// main.go - Main entry point for the Theremin touch synth

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
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147m ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████\033[0m\n\033[38;2;255;50;147m▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀\033[0m\n\033[38;2;255;80;147m▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███\033[0m\n\033[38;2;255;110;147m░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄\033[0m\n\033[38;2;255;140;147m░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒\033[0m\n\033[38;2;255;170;147m░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░\033[0m\n\033[38;2;255;200;147m ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░\033[0m\n\033[38;2;255;230;147m ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░\033[0m\n\033[38;2;255;255;147m ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░\033[0m")
	fmt.Println("\nA monophonic touch theremin: slide across the surface, bend with the stick.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Println("License: GPLv3 or later")
}

// logger is the package-wide structured logger. It is usable before
// initLogger runs.
var logger = slog.Default()

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

type RuntimeConfig struct {
	Frontend     int
	Script       string
	Scale        int
	TPS          int
	Debug        bool
	ShowFeatures bool
}

func newRuntimeFlagSet(cfg *RuntimeConfig, frontend *string) *flag.FlagSet {
	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(frontend, "frontend", "ebiten", "Frontend: ebiten or console")
	flagSet.StringVar(&cfg.Script, "script", "", "Lua script that drives the input instead of the player")
	flagSet.IntVar(&cfg.Scale, "scale", 3, "Window scale (1-6)")
	flagSet.IntVar(&cfg.TPS, "tps", DEFAULT_TPS, "Host frames per second")
	flagSet.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")
	flagSet.BoolVar(&cfg.ShowFeatures, "features", false, "Print compiled features and exit")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./theremin [-frontend ebiten|console] [-script file.lua] [-scale 3] [-tps 60] [-debug] [-features]")
		flagSet.PrintDefaults()
	}
	return flagSet
}

func parseRuntimeConfig(args []string) (RuntimeConfig, error) {
	var (
		cfg      RuntimeConfig
		frontend string
	)

	flagSet := newRuntimeFlagSet(&cfg, &frontend)
	if err := flagSet.Parse(args); err != nil {
		return cfg, err
	}
	if flagSet.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected argument %q", flagSet.Arg(0))
	}

	fe, err := parseFrontend(frontend)
	if err != nil {
		return cfg, err
	}
	cfg.Frontend = fe
	if cfg.Scale < MIN_SCALE || cfg.Scale > MAX_SCALE {
		return cfg, fmt.Errorf("scale %d out of range %d-%d", cfg.Scale, MIN_SCALE, MAX_SCALE)
	}
	if cfg.TPS <= 0 {
		return cfg, fmt.Errorf("tps must be positive, got %d", cfg.TPS)
	}
	return cfg, nil
}

func main() {
	cfg, err := parseRuntimeConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.ShowFeatures {
		printFeatures()
		return
	}

	boilerPlate()
	initLogger(cfg.Debug)

	if err := run(cfg); err != nil {
		logger.Error("theremin stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg RuntimeConfig) error {
	output, err := NewAudioOutput(AUDIO_BACKEND_OTO)
	if err != nil {
		return fmt.Errorf("create audio output: %w", err)
	}
	engine, err := NewSynthEngine(output)
	if err != nil {
		return fmt.Errorf("start synth engine: %w", err)
	}
	defer engine.Close()

	var script *ScriptInput
	if cfg.Script != "" {
		script, err = NewScriptInput(cfg.Script)
		if err != nil {
			return err
		}
		defer script.Close()
		logger.Info("script input loaded", "script", cfg.Script)
	}

	if cfg.Frontend == FRONTEND_EBITEN && !ebitenAvailable {
		logger.Warn("window frontend not compiled in, using console")
		cfg.Frontend = FRONTEND_CONSOLE
	}

	if cfg.Frontend == FRONTEND_CONSOLE {
		return runConsole(cfg, engine, script)
	}

	fe := NewEbitenFrontend(cfg.Scale, cfg.TPS)
	var input InputSource = fe
	if script != nil {
		input = script
	}
	return fe.Run(newHost(engine, input, fe))
}

// newHost builds the host with the pitch probe attached.
func newHost(engine *SynthEngine, input InputSource, display DisplaySink) *SynthHost {
	host := NewSynthHost(engine, input, display)
	if probe, err := NewPitchProbe(); err != nil {
		logger.Warn("pitch probe unavailable", "err", err)
	} else {
		host.AttachProbe(probe)
	}
	return host
}

func runConsole(cfg RuntimeConfig, engine *SynthEngine, script *ScriptInput) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	display := NewTerminalDisplay(os.Stdout)
	defer display.Finish()

	var input InputSource
	if script != nil {
		input = script
	} else {
		keys := NewTerminalInput()
		th := NewTerminalHost(keys)
		if err := th.Start(); err != nil {
			return err
		}
		defer th.Stop()
		input = keys
	}

	err := newHost(engine, input, display).Run(ctx, cfg.TPS)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
