package cliconfig

import "fmt"

// Load layers defaults, the config file at path (if it exists), KALAH_*
// environment variables and flag values already in cfg, then validates.
// changed names the flags set on the command line.
func Load(cfg *Config, path string, changed map[string]bool) error {
	if path != "" && FileExists(path) {
		fc, err := LoadFileConfig(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}
	if err := ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}
	return cfg.Validate()
}

// Reload rebuilds a Config from base (the command-line view) and the file at
// path, keeping every flag in changed. Used by the config watcher.
func Reload(base Config, path string, changed map[string]bool) (Config, error) {
	cfg := base
	err := Load(&cfg, path, changed)
	return cfg, err
}
