package kalah

import (
	"time"

	"github.com/bft-labs/kalah/pkg/log"
	"github.com/bft-labs/kalah/pkg/sequencer"
)

// Observer is notified after every visible change of a Board and once more
// when a move's playback finishes. Calls happen outside the board's lock on
// the sequencer's goroutine and should return quickly.
type Observer interface {
	OnChange(Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Snapshot)

func (f ObserverFunc) OnChange(s Snapshot) { f(s) }

// Option configures a Board.
type Option func(*options)

type options struct {
	logger    log.Logger
	clock     sequencer.Clock
	stepDelay time.Duration
	observer  Observer
}

func defaultOptions() options {
	return options{
		logger:    log.NoopLogger{},
		clock:     sequencer.RealClock{},
		stepDelay: DefaultStepDelay,
	}
}

// WithLogger sets the logger for the board and its sequencer.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = log.OrNoop(l)
	}
}

// WithClock sets the clock pacing the move playback.
func WithClock(c sequencer.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithStepDelay sets the pause between visible steps. Negative means zero.
func WithStepDelay(d time.Duration) Option {
	return func(o *options) {
		if d < 0 {
			d = 0
		}
		o.stepDelay = d
	}
}

// WithObserver registers the board's change observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}
