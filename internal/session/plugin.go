package session

import (
	"context"

	"github.com/bft-labs/kalah/pkg/log"
)

// Plugin is an optional component bound to a Session's lifetime.
type Plugin interface {
	// Name returns the plugin identifier used in logs.
	Name() string

	// Initialize starts the plugin. Background work must stop when ctx is
	// cancelled or Shutdown is called.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown stops the plugin and waits for its background work.
	Shutdown(ctx context.Context) error
}

// PluginConfig is what a plugin gets to work with.
type PluginConfig struct {
	Session *Session
	Logger  log.Logger
}
