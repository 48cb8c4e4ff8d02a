package config

import (
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/lgbarn/chessmatch-go/internal/engine"
	"github.com/lgbarn/chessmatch-go/internal/errors"
)

// OutputFormat selects how matches are printed.
type OutputFormat string

const (
	// TextFormat prints a board diagram and the move list.
	TextFormat OutputFormat = "text"
	// JSONFormat prints a snapshot as JSON.
	JSONFormat OutputFormat = "json"
)

// MatchConfig holds settings for starting a match.
type MatchConfig struct {
	// White and Black are player ids; empty means generate one.
	White string `yaml:"white"`
	Black string `yaml:"black"`

	// FEN is the starting position; empty means the standard layout.
	FEN string `yaml:"fen"`
}

// NewMatchConfig creates a MatchConfig with default values.
func NewMatchConfig() *MatchConfig {
	return &MatchConfig{}
}

// Players returns the configured player ids, generating missing ones.
func (m *MatchConfig) Players() (white, black uuid.UUID, err error) {
	white, err = playerID(m.White)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	black, err = playerID(m.Black)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return white, black, nil
}

func playerID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("player id %q: %v: %w", s, err, errors.ErrInvalidConfig)
	}
	return id, nil
}

// Validate checks that the player ids and FEN parse.
func (m *MatchConfig) Validate() error {
	if _, _, err := m.Players(); err != nil {
		return err
	}
	if m.FEN != "" {
		if _, _, err := engine.NewPositionFromFEN(m.FEN); err != nil {
			return fmt.Errorf("start position: %v: %w", err, errors.ErrInvalidConfig)
		}
	}
	return nil
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is an apex/log level name: debug, info, warn, error, fatal.
	Level string `yaml:"level"`

	// Format is text, json, cli or discard.
	Format string `yaml:"format"`
}

// NewLogConfig creates a LogConfig with default values.
func NewLogConfig() *LogConfig {
	return &LogConfig{Level: "info", Format: "cli"}
}

// Validate checks the level and handler names.
func (l *LogConfig) Validate() error {
	if _, err := log.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("log level %q: %w", l.Level, errors.ErrInvalidConfig)
	}
	switch l.Format {
	case "text", "json", "cli", "discard":
		return nil
	default:
		return fmt.Errorf("log format %q: %w", l.Format, errors.ErrInvalidConfig)
	}
}

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Format is text or json.
	Format OutputFormat `yaml:"format"`

	// MaxLineLength wraps the move list.
	MaxLineLength int `yaml:"max_line_length"`

	// Flip draws the board from Black's side.
	Flip bool `yaml:"flip"`

	// ShowCoordinates labels ranks and files.
	ShowCoordinates bool `yaml:"show_coordinates"`
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:          TextFormat,
		MaxLineLength:   80,
		ShowCoordinates: true,
	}
}

// Validate checks the format and line length.
func (o *OutputConfig) Validate() error {
	if o.Format != TextFormat && o.Format != JSONFormat {
		return fmt.Errorf("output format %q: %w", o.Format, errors.ErrInvalidConfig)
	}
	if o.MaxLineLength < 20 {
		return fmt.Errorf("max line length %d below 20: %w", o.MaxLineLength, errors.ErrInvalidConfig)
	}
	return nil
}

// ServerConfig holds HTTP adapter settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:         ":8080",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// Validate checks the address and timeouts.
func (s *ServerConfig) Validate() error {
	if s.Addr == "" {
		return fmt.Errorf("empty server address: %w", errors.ErrInvalidConfig)
	}
	if s.ReadTimeout < 0 || s.WriteTimeout < 0 {
		return fmt.Errorf("negative server timeout: %w", errors.ErrInvalidConfig)
	}
	return nil
}

// CheckConfig holds batch validation settings.
type CheckConfig struct {
	// Workers is the number of matches validated concurrently.
	Workers int `yaml:"workers"`
}

// NewCheckConfig creates a CheckConfig with default values.
func NewCheckConfig() *CheckConfig {
	return &CheckConfig{Workers: 4}
}

// Validate checks the worker count.
func (c *CheckConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers %d below 1: %w", c.Workers, errors.ErrInvalidConfig)
	}
	return nil
}
