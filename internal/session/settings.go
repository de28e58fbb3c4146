package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bft-labs/kalah/pkg/kalah"
)

// ErrInvalidSettings is wrapped by Settings.Validate failures.
var ErrInvalidSettings = errors.New("session: invalid settings")

// Settings are the user-facing knobs of a game.
type Settings struct {
	Players   [2]kalah.Player `json:"players"`
	StepDelay time.Duration   `json:"step_delay"`
}

// DefaultSettings returns the classic Red/Green game at the default pace.
func DefaultSettings() Settings {
	p := kalah.DefaultPlayers()
	return Settings{
		Players:   [2]kalah.Player{*p[0], *p[1]},
		StepDelay: kalah.DefaultStepDelay,
	}
}

// Validate checks that both players are named and distinguishable.
func (s Settings) Validate() error {
	a := strings.TrimSpace(s.Players[0].Name)
	b := strings.TrimSpace(s.Players[1].Name)
	if a == "" || b == "" {
		return fmt.Errorf("%w: player names are required", ErrInvalidSettings)
	}
	if strings.EqualFold(a, b) {
		return fmt.Errorf("%w: player names must differ", ErrInvalidSettings)
	}
	if s.StepDelay < 0 {
		return fmt.Errorf("%w: negative step delay", ErrInvalidSettings)
	}
	return nil
}

func (s Settings) players() [2]*kalah.Player {
	a, b := s.Players[0], s.Players[1]
	return [2]*kalah.Player{&a, &b}
}
