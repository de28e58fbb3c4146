package kalah

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bft-labs/kalah/pkg/log"
	"github.com/bft-labs/kalah/pkg/sequencer"
)

// ErrInvalidPlayers is returned by New when the players are missing or the
// same instance twice.
var ErrInvalidPlayers = errors.New("kalah: need two distinct players")

// Board is one game: pits, players, turn and outcome.
type Board struct {
	mu        sync.RWMutex
	pits      [NumPits]pit
	players   [2]*Player
	current   int
	outcome   *Player
	inHand    int
	moves     int
	closed    bool
	stepDelay time.Duration

	seq      *sequencer.Sequencer
	logger   log.Logger
	observer Observer
}

// Snapshot is a consistent copy of the board for presentation.
type Snapshot struct {
	Pits      [NumPits]PitView `json:"pits"`
	Players   [2]Player        `json:"players"`
	Current   int              `json:"current"`
	Winner    int              `json:"winner"` // -1 while the game is live
	InHand    int              `json:"in_hand"`
	Moves     int              `json:"moves"`
	Animating bool             `json:"animating"`
}

// Finished reports whether the snapshot has an outcome.
func (s Snapshot) Finished() bool { return s.Winner >= 0 }

// New creates a board in the starting position with players[0] to move.
func New(players [2]*Player, opts ...Option) (*Board, error) {
	if players[0] == nil || players[1] == nil || players[0] == players[1] {
		return nil, ErrInvalidPlayers
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := &Board{
		players:   players,
		stepDelay: o.stepDelay,
		logger:    o.logger,
		observer:  o.observer,
	}
	for i := range b.pits {
		p := pit{owner: OwnerOf(i), store: IsStore(i), position: i}
		if !p.store {
			p.seeds = InitialSeeds
		}
		b.pits[i] = p
	}
	b.seq = sequencer.New(
		sequencer.WithClock(o.clock),
		sequencer.WithLogger(o.logger),
		sequencer.WithIdleHook(b.playbackDone),
	)
	return b, nil
}

// SubmitMove sows the pit at position for the current player. Moves that
// are not legal right now are ignored; the result reports acceptance.
func (b *Board) SubmitMove(position int) bool {
	return b.TryMove(position) == nil
}

// TryMove is SubmitMove returning the reason a move was ignored.
func (b *Board) TryMove(position int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.acceptingLocked(); err != nil {
		b.logger.Debug("move ignored", log.Int("pit", position), log.Err(err))
		return err
	}
	plan, err := PlanMove(b.countsLocked(), b.current, position)
	if err != nil {
		b.logger.Debug("move ignored", log.Int("pit", position), log.Err(err))
		return err
	}

	for _, step := range plan.Steps(b.stepDelay) {
		task := sequencer.Task{Name: step.Kind.String(), Delay: step.Delay, Work: b.stepWork(plan, step)}
		if err := b.seq.Submit(task); err != nil {
			// Only a cancelled sequencer refuses work, and that means the
			// board was closed under us.
			b.logger.Error("schedule move step", log.String("step", task.Name), log.Err(err))
			return err
		}
	}

	b.logger.Info("move accepted",
		log.String("player", b.players[b.current].Name),
		log.Int("source", plan.Source),
		log.Int("seeds", plan.Seeds),
		log.Int("landing", plan.Landing),
		log.Ints("sown", plan.Sown),
		log.Bool("capture", plan.Capture),
		log.Bool("extra_turn", plan.ExtraTurn),
	)
	return nil
}

func (b *Board) acceptingLocked() error {
	switch {
	case b.closed:
		return ErrBoardClosed
	case b.outcome != nil:
		return ErrGameOver
	case b.seq.Running():
		return ErrAnimating
	}
	return nil
}

// stepWork binds a planned step to the live board. Decisions come from plan;
// the pits a step touches are read when it runs.
func (b *Board) stepWork(plan Plan, step Step) sequencer.Work {
	return func(ctx context.Context) error {
		b.mu.Lock()
		switch step.Kind {
		case StepLift:
			b.inHand = b.pits[step.Pit].seeds
			b.pits[step.Pit].seeds = 0
		case StepSow:
			b.pits[step.Pit].seeds++
			b.inHand--
		case StepCapture:
			b.captureLocked(plan.Mover, step.Pit)
		case StepAdvance:
			b.current = 1 - b.current
		case StepSettle:
			b.moves++
			b.checkOutcomeLocked()
		}
		snap := b.snapshotLocked()
		b.mu.Unlock()

		b.notify(snap)
		return nil
	}
}

// captureLocked moves the pit facing landing and the landing seed into the
// mover's store.
func (b *Board) captureLocked(mover, landing int) {
	opp := Opposite(landing)
	taken := b.pits[opp].seeds + b.pits[landing].seeds
	b.pits[StoreOf(mover)].seeds += taken
	b.pits[opp].seeds = 0
	b.pits[landing].seeds = 0
	b.logger.Debug("capture", log.Int("landing", landing), log.Int("opposite", opp), log.Int("taken", taken))
}

func (b *Board) playbackDone() {
	b.notify(b.Snapshot())
}

func (b *Board) notify(s Snapshot) {
	if b.observer != nil {
		b.observer.OnChange(s)
	}
}

// Close abandons the game: pending steps are dropped and no move is accepted.
func (b *Board) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.seq.CancelAll()
}

// SetStepDelay changes the pacing of moves submitted afterwards.
func (b *Board) SetStepDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stepDelay = d
}

// StepDelay returns the current pacing.
func (b *Board) StepDelay() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stepDelay
}

// IsAnimating reports whether a move is still playing back.
func (b *Board) IsAnimating() bool {
	return b.seq.Running()
}

// Outcome returns the winner, or nil while the game is live.
func (b *Board) Outcome() *Player {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.outcome
}

// Players returns both players, A first.
func (b *Board) Players() [2]*Player {
	return b.players
}

// CurrentPlayer returns the player whose turn it is.
func (b *Board) CurrentPlayer() *Player {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.players[b.current]
}

// Pits returns a copy of all 14 pits in position order.
func (b *Board) Pits() []PitView {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]PitView, NumPits)
	for i, p := range b.pits {
		out[i] = p.view()
	}
	return out
}

// Snapshot returns a consistent copy of the whole board.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

func (b *Board) snapshotLocked() Snapshot {
	s := Snapshot{
		Players:   [2]Player{*b.players[0], *b.players[1]},
		Current:   b.current,
		Winner:    -1,
		InHand:    b.inHand,
		Moves:     b.moves,
		Animating: b.seq.Running(),
	}
	for i, p := range b.pits {
		s.Pits[i] = p.view()
	}
	if b.outcome != nil {
		s.Winner = b.playerIndex(b.outcome)
	}
	return s
}

func (b *Board) playerIndex(p *Player) int {
	if p == b.players[1] {
		return 1
	}
	return 0
}

func (b *Board) countsLocked() [NumPits]int {
	var c [NumPits]int
	for i, p := range b.pits {
		c[i] = p.seeds
	}
	return c
}
