// chessmatch plays, saves, validates and serves chess matches.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/apex/log"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/config"
	"github.com/lgbarn/chessmatch-go/internal/errors"
	"github.com/lgbarn/chessmatch-go/internal/hashing"
	"github.com/lgbarn/chessmatch-go/internal/logging"
	"github.com/lgbarn/chessmatch-go/internal/match"
	"github.com/lgbarn/chessmatch-go/internal/output"
	"github.com/lgbarn/chessmatch-go/internal/server"
	"github.com/lgbarn/chessmatch-go/internal/worker"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessmatch version %s\n", programVersion)
		os.Exit(0)
	}

	cfg, err := buildConfig(*configFile, setFlags())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	setupLogFile(cfg)
	setupOutputFile(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, optionsFromFlags(), flag.Args(), os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessmatch [flags] [saved-match.json ...]\n\n")
	fmt.Fprintf(os.Stderr, "Plays coordinate moves on a new, FEN or loaded match and prints the result.\n")
	fmt.Fprintf(os.Stderr, "With -check, validates each saved match file concurrently.\n")
	fmt.Fprintf(os.Stderr, "With -serve, exposes matches over HTTP and WebSocket.\n\n")
	flag.PrintDefaults()
}

// buildConfig layers the config file and then the given flags over the
// defaults.
func buildConfig(path string, set map[string]bool) (*config.Config, error) {
	cfg := config.NewConfig()
	if path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	applyFlags(cfg, set)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
}

// run carries out one invocation: check files, serve, or play a match.
func run(ctx context.Context, cfg *config.Config, opts runOptions, args []string, stdin io.Reader) error {
	logger, err := logging.New(cfg.Log, cfg.LogFile)
	if err != nil {
		return err
	}

	switch {
	case opts.check:
		return runCheck(ctx, cfg, logger, args)
	case opts.serve:
		srv := server.New(cfg.Server, server.WithLogger(logger))
		return srv.ListenAndServe(ctx)
	}

	m, err := startMatch(cfg, opts, logger)
	if err != nil {
		return err
	}

	moves := strings.Fields(opts.moves)
	if opts.readStdin {
		more, err := readMoves(stdin)
		if err != nil {
			return err
		}
		moves = append(moves, more...)
	}
	for _, mv := range moves {
		if err := playMove(m, mv); err != nil {
			return err
		}
	}

	if opts.saveFile != "" {
		if err := saveMatch(opts.saveFile, m); err != nil {
			return err
		}
		logger.WithFields(log.Fields{
			"file": opts.saveFile,
			"ply":  m.Ply(),
		}).Info("match saved")
	}

	if cfg.Verbosity == 0 {
		return nil
	}
	writer := output.NewMatchWriter(cfg.OutputFile, cfg.Output)
	if err := writer.WriteMatch(m); err != nil {
		return err
	}
	return writer.Close()
}

// startMatch loads, sets up from FEN, or creates the match to play on.
func startMatch(cfg *config.Config, opts runOptions, logger log.Interface) (*match.Match, error) {
	matchOpts := []match.Option{match.WithLogger(logger)}

	if opts.loadFile != "" {
		f, err := os.Open(opts.loadFile)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", opts.loadFile, err)
		}
		defer f.Close()
		m, err := output.LoadMatch(f, matchOpts...)
		if err != nil {
			return nil, errors.Wrapf(err, "loading %s", opts.loadFile)
		}
		return m, nil
	}

	white, black, err := cfg.Match.Players()
	if err != nil {
		return nil, err
	}
	if cfg.Match.FEN != "" {
		return match.NewMatchFromFEN(cfg.Match.FEN, white, black, matchOpts...)
	}
	return match.NewMatch(white, black, matchOpts...), nil
}

// parseMove splits a coordinate move such as "e2e4" or "e2-e4".
func parseMove(s string) (from, to chess.Coordinate, err error) {
	text := strings.ToLower(strings.ReplaceAll(s, "-", ""))
	if len(text) != 4 {
		return from, to, fmt.Errorf("move %q: want two squares such as e2e4: %w", s, errors.ErrInvalidCoordinate)
	}
	if from, err = chess.ParseCoordinate(text[:2]); err != nil {
		return from, to, fmt.Errorf("move %q: %w", s, err)
	}
	if to, err = chess.ParseCoordinate(text[2:]); err != nil {
		return from, to, fmt.Errorf("move %q: %w", s, err)
	}
	return from, to, nil
}

func playMove(m *match.Match, s string) error {
	from, to, err := parseMove(s)
	if err != nil {
		return err
	}
	if _, err := m.ApplyMoveFrom(from, to); err != nil {
		return fmt.Errorf("move %q: %w", s, err)
	}
	return nil
}

// readMoves collects moves from r. Blank lines and lines starting with '#'
// are skipped.
func readMoves(r io.Reader) ([]string, error) {
	var moves []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		moves = append(moves, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading moves: %w", err)
	}
	return moves, nil
}

func saveMatch(path string, m *match.Match) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := output.SaveMatch(f, m); err != nil {
		f.Close()
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return f.Close()
}

// runCheck validates saved match files concurrently and reports each in
// argument order.
func runCheck(ctx context.Context, cfg *config.Config, logger log.Interface, files []string) error {
	if len(files) == 0 {
		return fmt.Errorf("-check needs at least one file")
	}

	items := make([]worker.WorkItem, 0, len(files))
	for i, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		items = append(items, worker.WorkItem{Name: name, Data: data, Index: i})
	}

	dups := hashing.NewDuplicateDetector(false)
	failed := 0
	for _, res := range worker.Run(ctx, items, cfg.Check.Workers, worker.CheckMatch) {
		entry := logger.WithField("file", res.Name)
		switch {
		case res.Error != nil:
			failed++
			entry.WithError(res.Error).Error("invalid match")
			fmt.Fprintf(cfg.OutputFile, "%s: error: %v\n", res.Name, res.Error)
		case !res.Consistent:
			failed++
			entry.Warn("saved legal moves disagree with the position")
			fmt.Fprintf(cfg.OutputFile, "%s: inconsistent\n", res.Name)
		default:
			number, turn := res.Match.CurrentTurn()
			status := fmt.Sprintf("move %d, %s to play", number, turn)
			if outcome, ok := res.Match.Outcome(); ok {
				status = "finished " + outcome.String()
			}
			if first, dup := dups.CheckAndAdd(res.Name, res.Match); dup {
				entry.WithField("first", first.Name).Info("duplicate final position")
				status += ", same position as " + first.Name
			}
			fmt.Fprintf(cfg.OutputFile, "%s: ok (%s)\n", res.Name, status)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d matches failed validation", failed, len(items))
	}
	return nil
}
