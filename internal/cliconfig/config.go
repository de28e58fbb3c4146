package cliconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultListen is the address `kalah serve` binds when none is configured.
const DefaultListen = "127.0.0.1:8080"

// MaxStepDelay bounds the pause between animation steps.
const MaxStepDelay = 10 * time.Second

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds CLI configuration for kalah.
type Config struct {
	PlayerA string
	PlayerB string
	ColorA  string
	ColorB  string

	StepDelay time.Duration
	Listen    string

	LogLevel    string
	LogJSON     bool
	WatchConfig bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		PlayerA:   "Red",
		PlayerB:   "Green",
		ColorA:    "#ff0000",
		ColorB:    "#00ff00",
		StepDelay: 300 * time.Millisecond,
		Listen:    DefaultListen,
	}
}

// Validate checks the configuration for errors and normalizes names.
func (c *Config) Validate() error {
	c.PlayerA = strings.TrimSpace(c.PlayerA)
	c.PlayerB = strings.TrimSpace(c.PlayerB)

	if c.PlayerA == "" || c.PlayerB == "" {
		return fmt.Errorf("%w: player names are required", ErrInvalidConfig)
	}
	if strings.EqualFold(c.PlayerA, c.PlayerB) {
		return fmt.Errorf("%w: player names must differ (both %q)", ErrInvalidConfig, c.PlayerA)
	}
	if c.StepDelay < 0 || c.StepDelay > MaxStepDelay {
		return fmt.Errorf("%w: step delay %v outside [0, %v]", ErrInvalidConfig, c.StepDelay, MaxStepDelay)
	}
	if c.Listen == "" {
		return fmt.Errorf("%w: listen address is required", ErrInvalidConfig)
	}
	if _, err := c.LevelOr(zerolog.InfoLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LevelOr parses LogLevel, returning fallback when it is empty.
func (c Config) LevelOr(fallback zerolog.Level) (zerolog.Level, error) {
	if c.LogLevel == "" {
		return fallback, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
