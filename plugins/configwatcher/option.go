package configwatcher

import "github.com/bft-labs/kalah/internal/session"

// WithConfigWatcher returns a session Option that enables config file watching.
//
// Usage:
//
//	s, err := session.New(settings,
//	    configwatcher.WithConfigWatcher(configwatcher.Config{
//	        Path:          path,
//	        Base:          cfg,
//	        Changed:       changed,
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithConfigWatcher(cfg Config) session.Option {
	return session.WithPlugin(New(cfg))
}
