package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	PlayerA     PlayerFile `toml:"player_a"`
	PlayerB     PlayerFile `toml:"player_b"`
	StepDelay   string     `toml:"step_delay"`
	Listen      string     `toml:"listen"`
	LogLevel    string     `toml:"log_level"`
	LogJSON     *bool      `toml:"log_json"`
	WatchConfig *bool      `toml:"watch"`
}

// PlayerFile is one [player_a] or [player_b] table.
type PlayerFile struct {
	Name  string `toml:"name"`
	Color string `toml:"color"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.kalah/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".kalah", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("player-a", fc.PlayerA.Name, &cfg.PlayerA)
	s.setString("player-b", fc.PlayerB.Name, &cfg.PlayerB)
	s.setString("color-a", fc.PlayerA.Color, &cfg.ColorA)
	s.setString("color-b", fc.PlayerB.Color, &cfg.ColorB)
	s.setString("listen", fc.Listen, &cfg.Listen)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("step-delay", fc.StepDelay, &cfg.StepDelay); err != nil {
		return err
	}

	s.setBool("log-json", fc.LogJSON, &cfg.LogJSON)
	s.setBool("watch", fc.WatchConfig, &cfg.WatchConfig)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
