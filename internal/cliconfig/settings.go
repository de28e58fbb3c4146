package cliconfig

import (
	"github.com/bft-labs/kalah/internal/session"
	"github.com/bft-labs/kalah/pkg/kalah"
)

// Settings converts the game-related part of the config.
func (c Config) Settings() session.Settings {
	return session.Settings{
		Players: [2]kalah.Player{
			{Name: c.PlayerA, Color: c.ColorA},
			{Name: c.PlayerB, Color: c.ColorB},
		},
		StepDelay: c.StepDelay,
	}
}
