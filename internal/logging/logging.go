// Package logging builds apex/log loggers from configuration.
package logging

import (
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/discard"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"

	"github.com/lgbarn/chessmatch-go/internal/config"
	"github.com/lgbarn/chessmatch-go/internal/errors"
)

// New returns a logger writing to w with the configured handler and level.
func New(cfg config.LogConfig, w io.Writer) (log.Interface, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, errors.ErrInvalidConfig)
	}

	var handler log.Handler
	switch cfg.Format {
	case "text":
		handler = text.New(w)
	case "json":
		handler = json.New(w)
	case "cli":
		handler = cli.New(w)
	case "discard":
		handler = discard.New()
	default:
		return nil, fmt.Errorf("log format %q: %w", cfg.Format, errors.ErrInvalidConfig)
	}

	return &log.Logger{Handler: handler, Level: level}, nil
}

// Discard returns a logger that drops everything.
func Discard() log.Interface {
	return &log.Logger{Handler: discard.New(), Level: log.FatalLevel}
}
