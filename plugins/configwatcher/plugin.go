// Package configwatcher reloads the kalah config file while a session runs.
// When enabled, it watches the file's directory with fsnotify, debounces
// bursts of writes, re-applies file, environment and flag layers, and hands
// the result to the session.
package configwatcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/kalah/internal/cliconfig"
	"github.com/bft-labs/kalah/internal/session"
	"github.com/bft-labs/kalah/pkg/log"
)

// Plugin implements config watching functionality.
type Plugin struct {
	mu sync.Mutex

	// Configuration
	path          string
	base          cliconfig.Config
	changed       map[string]bool
	debounceDelay time.Duration
	onReload      func(cliconfig.Config, error)

	// Runtime state
	session  *session.Session
	logger   log.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
}

// Config holds configuration options for the config watcher plugin.
type Config struct {
	// Path is the TOML file to watch.
	Path string

	// Base is the configuration before the file layer: defaults plus flags.
	Base cliconfig.Config

	// Changed names the flags set on the command line; they win over the file.
	Changed map[string]bool

	// DebounceDelay is the delay to wait after a file change before reloading.
	// Default: 100 milliseconds
	DebounceDelay time.Duration

	// OnReload, if set, is called after every reload attempt with the new
	// config or the reason it was rejected.
	OnReload func(cliconfig.Config, error)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
	}
}

// New creates a new config watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	changed := make(map[string]bool, len(cfg.Changed))
	for k, v := range cfg.Changed {
		changed[k] = v
	}
	return &Plugin{
		path:          cfg.Path,
		base:          cfg.Base,
		changed:       changed,
		debounceDelay: cfg.DebounceDelay,
		onReload:      cfg.OnReload,
		logger:        log.NoopLogger{},
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "configwatcher"
}

// Initialize starts watching the config file.
func (p *Plugin) Initialize(ctx context.Context, cfg session.PluginConfig) error {
	p.mu.Lock()
	p.session = cfg.Session
	p.logger = log.OrNoop(cfg.Logger).With(log.String("plugin", p.Name()))
	p.mu.Unlock()

	if p.path == "" || p.session == nil {
		p.logger.Warn("config watcher disabled: no config file or session")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(p.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("config watcher started", log.String("path", p.path))

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)

	return nil
}

// Shutdown stops the config watcher.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()
	return nil
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	name := filepath.Base(p.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debounceReload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("config watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) debounceReload(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}

	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		p.reload()
	})
}

// reload re-reads the file and applies it. A bad file leaves the running
// settings untouched.
func (p *Plugin) reload() {
	cfg, err := cliconfig.Reload(p.base, p.path, p.changed)
	if err == nil {
		err = p.session.ApplySettings(cfg.Settings())
	}
	if err != nil {
		p.logger.Warn("config reload rejected", log.String("path", p.path), log.Err(err))
	} else {
		p.logger.Info("config reloaded",
			log.String("path", p.path),
			log.Duration("step_delay", cfg.StepDelay),
			log.String("log_level", cfg.LogLevel),
		)
	}
	if p.onReload != nil {
		p.onReload(cfg, err)
	}
}

// Ensure Plugin implements session.Plugin.
var _ session.Plugin = (*Plugin)(nil)
