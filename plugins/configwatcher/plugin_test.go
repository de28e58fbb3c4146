package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bft-labs/kalah/internal/cliconfig"
	"github.com/bft-labs/kalah/internal/session"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func startSession(t *testing.T, cfg Config) *session.Session {
	t.Helper()
	s, err := session.New(cfg.Base.Settings(), WithConfigWatcher(cfg))
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPlugin_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, `step_delay = "300ms"`)

	s := startSession(t, Config{
		Path:          path,
		Base:          cliconfig.DefaultConfig(),
		DebounceDelay: 10 * time.Millisecond,
	})

	writeConfig(t, path, "step_delay = \"20ms\"\n[player_a]\nname = \"Ada\"\n")

	ok := waitFor(t, 3*time.Second, func() bool {
		return s.Settings().StepDelay == 20*time.Millisecond
	})
	if !ok {
		t.Fatalf("settings not reloaded: %+v", s.Settings())
	}
	if got := s.Settings().Players[0].Name; got != "Ada" {
		t.Errorf("player A = %q, want Ada", got)
	}
}

func TestPlugin_KeepsFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "")

	base := cliconfig.DefaultConfig()
	base.PlayerA = "Flag"
	reloaded := make(chan cliconfig.Config, 4)
	startSession(t, Config{
		Path:          path,
		Base:          base,
		Changed:       map[string]bool{"player-a": true},
		DebounceDelay: 10 * time.Millisecond,
		OnReload: func(cfg cliconfig.Config, err error) {
			if err == nil {
				reloaded <- cfg
			}
		},
	})

	writeConfig(t, path, "[player_a]\nname = \"File\"\n")

	select {
	case cfg := <-reloaded:
		if cfg.PlayerA != "Flag" {
			t.Errorf("PlayerA = %q, want the flag value", cfg.PlayerA)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload")
	}
}

func TestPlugin_RejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "")

	errs := make(chan error, 4)
	s := startSession(t, Config{
		Path:          path,
		Base:          cliconfig.DefaultConfig(),
		DebounceDelay: 10 * time.Millisecond,
		OnReload: func(_ cliconfig.Config, err error) {
			errs <- err
		},
	})
	before := s.Settings()

	writeConfig(t, path, "[player_a]\nname = \"Same\"\n[player_b]\nname = \"Same\"\n")

	select {
	case err := <-errs:
		if err == nil {
			t.Fatal("duplicate names accepted")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload attempt")
	}
	if s.Settings() != before {
		t.Error("rejected config changed the session")
	}
}

func TestPlugin_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeConfig(t, path, "")

	reloads := make(chan struct{}, 4)
	startSession(t, Config{
		Path:          path,
		Base:          cliconfig.DefaultConfig(),
		DebounceDelay: 10 * time.Millisecond,
		OnReload:      func(cliconfig.Config, error) { reloads <- struct{}{} },
	})

	writeConfig(t, filepath.Join(dir, "other.toml"), `step_delay = "1ms"`)

	select {
	case <-reloads:
		t.Error("write to a sibling file triggered a reload")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestPlugin_Name(t *testing.T) {
	p := New(DefaultConfig())
	if p.Name() != "configwatcher" {
		t.Errorf("Name() = %q, want configwatcher", p.Name())
	}
}

func TestPlugin_DisabledWithoutPath(t *testing.T) {
	p := New(DefaultConfig())
	s, err := session.New(session.DefaultSettings())
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	defer s.Close()

	if err := p.Initialize(context.Background(), session.PluginConfig{Session: s}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestPlugin_MissingDirectory(t *testing.T) {
	s, err := session.New(session.DefaultSettings())
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	defer s.Close()

	p := New(Config{Path: filepath.Join(t.TempDir(), "missing", "config.toml")})
	if err := p.Initialize(context.Background(), session.PluginConfig{Session: s}); err == nil {
		t.Error("Initialize() expected error for a missing directory")
	}
}
