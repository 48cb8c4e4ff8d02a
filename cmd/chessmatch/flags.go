// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chessmatch-go/internal/config"
)

var (
	// Configuration
	configFile = flag.String("config", "", "YAML configuration file")

	// Match setup
	whiteID  = flag.String("white", "", "White player id (default: generated)")
	blackID  = flag.String("black", "", "Black player id (default: generated)")
	startFEN = flag.String("fen", "", "Start from this FEN position")
	loadFile = flag.String("load", "", "Load a saved match from this JSON file")
	saveFile = flag.String("save", "", "Save the match to this JSON file after playing")

	// Moves
	moveList  = flag.String("moves", "", "Coordinate moves to play, e.g. \"e2e4 e7e5\" or \"e2-e4\"")
	readStdin = flag.Bool("stdin", false, "Read coordinate moves from stdin, one or more per line")

	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	jsonOutput = flag.Bool("json", false, "Print a JSON snapshot instead of the text board")
	flipBoard  = flag.Bool("flip", false, "Draw the board from Black's side")
	lineLength = flag.Int("w", 80, "Maximum line length of the move list")
	quiet      = flag.Bool("q", false, "Print nothing but errors")
	verbose    = flag.Bool("v", false, "Verbose logging")

	// Logging
	logLevel  = flag.String("log-level", "", "Log level: debug, info, warn, error")
	logFormat = flag.String("log-format", "", "Log handler: cli, text, json, discard")
	logFile   = flag.String("l", "", "Write logs to this file (default: stderr)")

	// Modes
	serveAddr = flag.String("serve", "", "Serve matches over HTTP on this address")
	checkMode = flag.Bool("check", false, "Validate the saved match files given as arguments")
	workers   = flag.Int("workers", 0, "Number of concurrent checks (default from config)")

	// Info
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// setFlags returns the names of the flags given on the command line.
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// applyFlags overrides cfg with every flag given on the command line.
func applyFlags(cfg *config.Config, set map[string]bool) {
	applyMatchFlags(cfg, set)
	applyOutputFlags(cfg, set)
	applyLogFlags(cfg, set)
	applyModeFlags(cfg, set)
}

// applyMatchFlags configures player ids and the start position.
func applyMatchFlags(cfg *config.Config, set map[string]bool) {
	if set["white"] {
		cfg.Match.White = *whiteID
	}
	if set["black"] {
		cfg.Match.Black = *blackID
	}
	if set["fen"] {
		cfg.Match.FEN = *startFEN
	}
}

// applyOutputFlags configures the output format.
func applyOutputFlags(cfg *config.Config, set map[string]bool) {
	if set["json"] {
		if *jsonOutput {
			cfg.Output.Format = config.JSONFormat
		} else {
			cfg.Output.Format = config.TextFormat
		}
	}
	if set["flip"] {
		cfg.Output.Flip = *flipBoard
	}
	if set["w"] {
		cfg.Output.MaxLineLength = *lineLength
	}
	if *quiet {
		cfg.Verbosity = 0
	} else if *verbose {
		cfg.Verbosity = 2
	}
}

// applyLogFlags configures logging. -v implies debug unless a level is given.
func applyLogFlags(cfg *config.Config, set map[string]bool) {
	if *verbose && !set["log-level"] {
		cfg.Log.Level = "debug"
	}
	if set["log-level"] {
		cfg.Log.Level = *logLevel
	}
	if set["log-format"] {
		cfg.Log.Format = *logFormat
	}
}

// applyModeFlags configures the server and the batch checker.
func applyModeFlags(cfg *config.Config, set map[string]bool) {
	if set["serve"] {
		cfg.Server.Addr = *serveAddr
	}
	if set["workers"] {
		cfg.Check.Workers = *workers
	}
}

// runOptions are the flags that select what a run does rather than how.
type runOptions struct {
	loadFile  string
	saveFile  string
	moves     string
	readStdin bool
	serve     bool
	check     bool
}

func optionsFromFlags() runOptions {
	return runOptions{
		loadFile:  *loadFile,
		saveFile:  *saveFile,
		moves:     *moveList,
		readStdin: *readStdin,
		serve:     *serveAddr != "",
		check:     *checkMode,
	}
}
