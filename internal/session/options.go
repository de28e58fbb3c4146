package session

import (
	"github.com/bft-labs/kalah/pkg/log"
	"github.com/bft-labs/kalah/pkg/sequencer"
)

// Option configures a Session.
type Option func(*options)

type options struct {
	logger  log.Logger
	clock   sequencer.Clock
	plugins []Plugin
}

func defaultOptions() options {
	return options{
		logger: log.NoopLogger{},
		clock:  sequencer.RealClock{},
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = log.OrNoop(l)
	}
}

// WithClock sets the clock every board of the session animates on.
func WithClock(c sequencer.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithPlugin registers a plugin to be initialized by Start.
// Plugins are initialized in registration order and shut down in reverse order.
func WithPlugin(p Plugin) Option {
	return func(o *options) {
		if p != nil {
			o.plugins = append(o.plugins, p)
		}
	}
}
