// Package config provides configuration for chessmatch.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lgbarn/chessmatch-go/internal/errors"
)

// Config holds all program configuration. Sub-configs map to the sections
// of the YAML file.
type Config struct {
	Match  MatchConfig  `yaml:"match"`
	Log    LogConfig    `yaml:"log"`
	Output OutputConfig `yaml:"output"`
	Server ServerConfig `yaml:"server"`
	Check  CheckConfig  `yaml:"check"`

	// Verbosity: 0=errors only, 1=normal, 2=running commentary.
	Verbosity int `yaml:"verbosity"`

	// Output streams
	OutputFile io.Writer `yaml:"-"`
	LogFile    io.Writer `yaml:"-"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Match:      *NewMatchConfig(),
		Log:        *NewLogConfig(),
		Output:     *NewOutputConfig(),
		Server:     *NewServerConfig(),
		Check:      *NewCheckConfig(),
		Verbosity:  1,
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Validate checks every section.
func (c *Config) Validate() error {
	validators := []interface{ Validate() error }{&c.Match, &c.Log, &c.Output, &c.Server, &c.Check}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if c.Verbosity < 0 || c.Verbosity > 2 {
		return fmt.Errorf("verbosity %d out of range 0-2: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	return nil
}

// Load reads YAML from r over the defaults. Unknown keys are rejected.
func Load(r io.Reader) (*Config, error) {
	cfg := NewConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding config: %v: %w", err, errors.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a YAML config file.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()
	cfg, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
