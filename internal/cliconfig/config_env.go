package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (KALAH_*).
// These override file config but are overridden by flags (checked via changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("player-a", os.Getenv("KALAH_PLAYER_A"), &cfg.PlayerA)
	s.setString("player-b", os.Getenv("KALAH_PLAYER_B"), &cfg.PlayerB)
	s.setString("color-a", os.Getenv("KALAH_COLOR_A"), &cfg.ColorA)
	s.setString("color-b", os.Getenv("KALAH_COLOR_B"), &cfg.ColorB)
	s.setString("listen", os.Getenv("KALAH_LISTEN"), &cfg.Listen)
	s.setString("log-level", os.Getenv("KALAH_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("step-delay", os.Getenv("KALAH_STEP_DELAY"), &cfg.StepDelay); err != nil {
		return err
	}

	s.setBoolFromString("log-json", os.Getenv("KALAH_LOG_JSON"), &cfg.LogJSON)
	s.setBoolFromString("watch", os.Getenv("KALAH_WATCH"), &cfg.WatchConfig)

	return nil
}
