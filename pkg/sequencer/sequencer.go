package sequencer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bft-labs/kalah/pkg/log"
)

var (
	// ErrCancelled is returned by Submit once CancelAll has been called.
	ErrCancelled = errors.New("sequencer: cancelled")

	// ErrNilWork is returned by Submit for a task without work.
	ErrNilWork = errors.New("sequencer: task has no work")
)

// Work is the body of a task. The task completes when Work returns. ctx is
// cancelled by CancelAll.
type Work func(ctx context.Context) error

// Task is a unit of delayed work.
type Task struct {
	// Name labels the task in logs.
	Name string

	// Delay is how long the task waits after it becomes the head of the
	// queue and the previous task has completed. Negative means zero.
	Delay time.Duration

	Work Work
}

type entry struct {
	Task
	id    uint64
	timer Timer
}

// Sequencer executes tasks one at a time in submission order.
type Sequencer struct {
	mu      sync.Mutex
	state   State
	queue   []*entry
	current *entry
	nextID  uint64

	ctx    context.Context
	cancel context.CancelFunc

	clock  Clock
	logger log.Logger
	onIdle func()
}

// New creates an idle Sequencer.
func New(opts ...Option) *Sequencer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Sequencer{
		state:  StateIdle,
		ctx:    ctx,
		cancel: cancel,
		clock:  o.clock,
		logger: o.logger,
		onIdle: o.onIdle,
	}
}

// Submit appends t to the queue and starts it if nothing is running.
// It never runs the task's work on the caller's goroutine.
func (s *Sequencer) Submit(t Task) error {
	if t.Work == nil {
		return ErrNilWork
	}
	if t.Delay < 0 {
		t.Delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateCancelled {
		return ErrCancelled
	}
	s.nextID++
	s.queue = append(s.queue, &entry{Task: t, id: s.nextID})
	s.startNextLocked()
	return nil
}

// Running reports whether a task is in flight or queued.
func (s *Sequencer) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil || len(s.queue) > 0
}

// State returns the current state.
func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Len returns the number of tasks waiting behind the in-flight one.
func (s *Sequencer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// CancelAll discards every queued task, stops the in-flight task's timer and
// cancels its context. The Sequencer accepts no further tasks.
func (s *Sequencer) CancelAll() {
	s.mu.Lock()
	if s.state == StateCancelled {
		s.mu.Unlock()
		return
	}
	dropped := len(s.queue)
	if s.current != nil {
		dropped++
		if s.current.timer != nil {
			s.current.timer.Stop()
		}
	}
	s.queue = nil
	s.current = nil
	s.transitionLocked(StateCancelled)
	s.mu.Unlock()

	s.cancel()
	s.logger.Debug("sequencer cancelled", log.Int("dropped", dropped))
}

// startNextLocked promotes the head of the queue and arms its timer.
func (s *Sequencer) startNextLocked() {
	if s.current != nil || s.state == StateCancelled || len(s.queue) == 0 {
		return
	}
	e := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]

	s.current = e
	if s.state != StateRunning {
		s.transitionLocked(StateRunning)
	}
	e.timer = s.clock.AfterFunc(e.Delay, func() { s.fire(e) })
}

// fire runs e's work if e is still the in-flight task.
func (s *Sequencer) fire(e *entry) {
	s.mu.Lock()
	if s.current != e {
		// Timer outlived CancelAll.
		s.mu.Unlock()
		return
	}
	ctx := s.ctx
	s.mu.Unlock()

	err := run(ctx, e.Work)
	if err != nil {
		s.logger.Warn("task failed",
			log.String("task", e.Name),
			log.Err(err),
		)
	}
	s.complete(e)
}

func (s *Sequencer) complete(e *entry) {
	s.mu.Lock()
	if s.current != e {
		s.mu.Unlock()
		return
	}
	s.current = nil
	idle := len(s.queue) == 0
	if idle {
		s.transitionLocked(StateIdle)
	} else {
		s.startNextLocked()
	}
	onIdle := s.onIdle
	s.mu.Unlock()

	if idle && onIdle != nil {
		onIdle()
	}
}

func (s *Sequencer) transitionLocked(to State) {
	if !canTransition(s.state, to) {
		s.logger.Error("invalid sequencer transition",
			log.String("from", s.state.String()),
			log.String("to", to.String()),
		)
		return
	}
	s.state = to
}

// run invokes w, converting a panic into an error so the task still completes.
func run(ctx context.Context, w Work) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return w(ctx)
}
