package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/bft-labs/kalah/pkg/kalah"
	"github.com/bft-labs/kalah/pkg/log"
	"github.com/bft-labs/kalah/pkg/sequencer"
)

var (
	// ErrClosed is returned once Close has been called.
	ErrClosed = errors.New("session: closed")

	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("session: already started")
)

// State is a Snapshot tagged with the game it belongs to.
type State struct {
	GameID string `json:"game_id"`
	kalah.Snapshot
}

// Session hosts one game at a time for a single hot-seat table.
type Session struct {
	mu       sync.Mutex
	gameID   string
	board    *kalah.Board
	settings Settings
	subs     map[int]func(State)
	nextSub  int
	started  bool
	closed   bool

	clock   sequencer.Clock
	logger  log.Logger
	plugins []Plugin
	cancel  context.CancelFunc
}

// New creates a session with a fresh game.
func New(settings Settings, opts ...Option) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session{
		settings: settings,
		subs:     make(map[int]func(State)),
		clock:    o.clock,
		logger:   o.logger,
		plugins:  o.plugins,
	}
	if err := s.newGameLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

// Start initializes the registered plugins. A session without plugins does
// not need to be started.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	plugins := s.plugins
	s.mu.Unlock()

	cfg := PluginConfig{Session: s, Logger: s.logger}
	for i, p := range plugins {
		if err := p.Initialize(runCtx, cfg); err != nil {
			s.logger.Error("plugin initialization failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			s.shutdownPlugins(plugins[:i])
			cancel()
			s.mu.Lock()
			s.started = false
			s.mu.Unlock()
			return err
		}
		s.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}
	return nil
}

// newGameLocked replaces the board. The previous board, if any, must already
// be closed.
func (s *Session) newGameLocked() error {
	id := uuid.NewString()
	logger := s.logger.With(log.String("game", id))
	board, err := kalah.New(s.settings.players(),
		kalah.WithLogger(logger),
		kalah.WithClock(s.clock),
		kalah.WithStepDelay(s.settings.StepDelay),
		kalah.WithObserver(kalah.ObserverFunc(func(snap kalah.Snapshot) {
			s.publish(id, snap)
		})),
	)
	if err != nil {
		return err
	}
	s.gameID = id
	s.board = board
	logger.Info("new game",
		log.String("player_a", s.settings.Players[0].Name),
		log.String("player_b", s.settings.Players[1].Name),
		log.Duration("step_delay", s.settings.StepDelay),
	)
	return nil
}

// publish fans a board change out to subscribers, dropping changes from a
// board that has since been replaced.
func (s *Session) publish(gameID string, snap kalah.Snapshot) {
	s.mu.Lock()
	if gameID != s.gameID || s.closed {
		s.mu.Unlock()
		return
	}
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	st := State{GameID: gameID, Snapshot: snap}
	for _, fn := range subs {
		fn(st)
	}
}

// Submit plays position for the current player. The error says why a move
// was ignored; see the kalah package errors.
func (s *Session) Submit(position int) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	board := s.board
	s.mu.Unlock()

	return board.TryMove(position)
}

// Restart abandons the current game and deals a new one with the current
// settings. Subscribers receive the opening position.
func (s *Session) Restart() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	old := s.gameID
	s.board.Close()
	if err := s.newGameLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	id := s.gameID
	snap := s.board.Snapshot()
	s.mu.Unlock()

	s.logger.Info("game restarted", log.String("previous", old), log.String("game", id))
	s.publish(id, snap)
	return nil
}

// ApplySettings replaces the session settings. The step delay takes effect
// on the live board immediately; names and colors on the next Restart.
func (s *Session) ApplySettings(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.settings = settings
	board := s.board
	s.mu.Unlock()

	board.SetStepDelay(settings.StepDelay)
	s.logger.Info("settings applied",
		log.String("player_a", settings.Players[0].Name),
		log.String("player_b", settings.Players[1].Name),
		log.Duration("step_delay", settings.StepDelay),
	)
	return nil
}

// Settings returns the current settings.
func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// GameID returns the ID of the current game.
func (s *Session) GameID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameID
}

// Snapshot returns the current game's state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	id, board := s.gameID, s.board
	s.mu.Unlock()
	return State{GameID: id, Snapshot: board.Snapshot()}
}

// IsAnimating reports whether the current game is playing back a move.
func (s *Session) IsAnimating() bool {
	s.mu.Lock()
	board := s.board
	s.mu.Unlock()
	return board.IsAnimating()
}

// Subscribe registers fn for every state change. fn runs on the goroutine
// that applied the change and must not block. The returned func removes it.
func (s *Session) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Close abandons the game, shuts plugins down in reverse order and drops
// all subscribers. Close is idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.board.Close()
	s.subs = make(map[int]func(State))
	started, cancel := s.started, s.cancel
	s.mu.Unlock()

	if started {
		cancel()
		s.shutdownPlugins(s.plugins)
	}
	return nil
}

func (s *Session) shutdownPlugins(plugins []Plugin) {
	ctx := context.Background()
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(ctx); err != nil {
			s.logger.Error("plugin shutdown failed",
				log.String("plugin", p.Name()),
				log.Err(err))
		} else {
			s.logger.Info("plugin shutdown complete", log.String("plugin", p.Name()))
		}
	}
}
