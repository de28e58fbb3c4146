package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/bft-labs/kalah/internal/session"
	"github.com/bft-labs/kalah/pkg/kalah"
	"github.com/bft-labs/kalah/pkg/log"
)

const helpText = `Commands:
  1-6   sow one of your pits, counted from your left
  r     start a new game
  q     quit
`

// Driver plays a session from line-oriented input.
type Driver struct {
	session  *session.Session
	in       io.Reader
	renderer Renderer
	logger   log.Logger

	mu  sync.Mutex
	out io.Writer
}

// Option configures a Driver.
type Option func(*Driver)

// WithColor enables ANSI colored player names.
func WithColor(on bool) Option {
	return func(d *Driver) {
		d.renderer.Color = on
	}
}

// WithLogger sets the driver's logger.
func WithLogger(l log.Logger) Option {
	return func(d *Driver) {
		d.logger = log.OrNoop(l)
	}
}

// NewDriver creates a Driver reading commands from in and drawing to out.
func NewDriver(sess *session.Session, in io.Reader, out io.Writer, opts ...Option) *Driver {
	d := &Driver{
		session: sess,
		in:      in,
		out:     out,
		logger:  log.NoopLogger{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run draws the board and executes commands until q, end of input, or ctx
// is cancelled. Input arriving while a move is playing back is ignored.
func (d *Driver) Run(ctx context.Context) error {
	unsub := d.session.Subscribe(d.draw)
	defer unsub()

	d.draw(d.session.Snapshot())

	done := make(chan struct{})
	defer close(done)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(d.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			return err
		case line := <-lines:
			if quit := d.handle(line); quit {
				return nil
			}
		}
	}
}

// handle executes one input line and reports whether the user quit.
func (d *Driver) handle(line string) bool {
	cmd, err := ParseCommand(line)
	if err != nil {
		d.printf("%v (h for help)\n", err)
		return false
	}

	switch cmd.Kind {
	case CommandQuit:
		return true
	case CommandHelp:
		d.printf("%s", helpText)
	case CommandRestart:
		if err := d.session.Restart(); err != nil {
			d.printf("restart: %v\n", err)
		}
	case CommandSow:
		st := d.session.Snapshot()
		if st.Animating {
			d.logger.Debug("input ignored while animating", log.Int("pit", cmd.Pit))
			return false
		}
		pos := Position(st.Current, cmd.Pit)
		if err := d.session.Submit(pos); err != nil {
			d.printf("%s\n", reason(err))
		}
	}
	return false
}

func (d *Driver) draw(st session.State) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.renderer.Render(d.out, st); err != nil {
		d.logger.Warn("render failed", log.Err(err))
	}
}

func (d *Driver) printf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, format, args...)
}

func reason(err error) string {
	switch {
	case errors.Is(err, kalah.ErrEmptyPit):
		return "That pit is empty."
	case errors.Is(err, kalah.ErrGameOver):
		return "The game is over. r starts a new one."
	case errors.Is(err, kalah.ErrAnimating):
		return "Still sowing."
	default:
		return err.Error()
	}
}
