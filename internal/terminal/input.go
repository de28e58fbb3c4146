package terminal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bft-labs/kalah/pkg/kalah"
)

// CommandKind is what a line of input asks for.
type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandSow
	CommandRestart
	CommandQuit
	CommandHelp
)

// Command is one parsed line of input.
type Command struct {
	Kind CommandKind

	// Pit is the player-relative pit number, 1 to 6, for CommandSow.
	Pit int
}

// ErrUnknownCommand is returned by ParseCommand for unrecognized input.
var ErrUnknownCommand = errors.New("unknown command")

// ParseCommand reads one line of input. Blank lines parse to CommandNone.
func ParseCommand(line string) (Command, error) {
	line = strings.ToLower(strings.TrimSpace(line))
	switch line {
	case "":
		return Command{Kind: CommandNone}, nil
	case "r", "restart":
		return Command{Kind: CommandRestart}, nil
	case "q", "quit", "exit":
		return Command{Kind: CommandQuit}, nil
	case "h", "help", "?":
		return Command{Kind: CommandHelp}, nil
	}

	n, err := strconv.Atoi(line)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
	}
	if n < 1 || n > kalah.PitsPerSide {
		return Command{}, fmt.Errorf("pit %d: choose 1 to %d", n, kalah.PitsPerSide)
	}
	return Command{Kind: CommandSow, Pit: n}, nil
}

// Position maps a player-relative pit number to a board position.
func Position(player, pit int) int {
	return player*(kalah.PitsPerSide+1) + pit - 1
}
