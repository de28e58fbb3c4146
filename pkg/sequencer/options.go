package sequencer

import "github.com/bft-labs/kalah/pkg/log"

// Option configures a Sequencer.
type Option func(*options)

type options struct {
	clock  Clock
	logger log.Logger
	onIdle func()
}

func defaultOptions() options {
	return options{
		clock:  RealClock{},
		logger: log.NoopLogger{},
	}
}

// WithClock sets the clock used for task delays.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = log.OrNoop(l)
	}
}

// WithIdleHook registers f to run every time the queue drains. f runs on the
// goroutine that completed the last task, outside the sequencer's lock, so it
// may call back into the Sequencer.
func WithIdleHook(f func()) Option {
	return func(o *options) {
		o.onIdle = f
	}
}
