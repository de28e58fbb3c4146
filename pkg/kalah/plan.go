package kalah

import (
	"errors"
	"time"
)

// Reasons a move is ignored.
var (
	ErrNoSuchPit   = errors.New("kalah: no such pit")
	ErrStorePit    = errors.New("kalah: stores cannot be sown")
	ErrNotYourPit  = errors.New("kalah: pit belongs to the other player")
	ErrEmptyPit    = errors.New("kalah: pit is empty")
	ErrGameOver    = errors.New("kalah: game is over")
	ErrAnimating   = errors.New("kalah: previous move still animating")
	ErrBoardClosed = errors.New("kalah: board closed")
)

// Plan is the complete resolution of one move, decided against the seed
// counts before the move.
type Plan struct {
	Mover  int `json:"mover"`
	Source int `json:"source"`
	Seeds  int `json:"seeds"`

	// Sown lists the receiving positions in sowing order; a position appears
	// once per seed it receives.
	Sown []int `json:"sown"`

	Landing   int  `json:"landing"`
	Capture   bool `json:"capture"`
	ExtraTurn bool `json:"extra_turn"`
}

// PlanMove resolves a sow of source by player index mover over counts.
// counts is not modified.
func PlanMove(counts [NumPits]int, mover, source int) (Plan, error) {
	if source < 0 || source >= NumPits {
		return Plan{}, ErrNoSuchPit
	}
	if IsStore(source) {
		return Plan{}, ErrStorePit
	}
	if OwnerOf(source) != mover {
		return Plan{}, ErrNotYourPit
	}
	n := counts[source]
	if n == 0 {
		return Plan{}, ErrEmptyPit
	}

	p := Plan{Mover: mover, Source: source, Seeds: n, Sown: make([]int, 0, n)}
	skip := StoreOf(1 - mover)
	pos := source
	for left := n; left > 0; {
		pos = next(pos)
		if pos == skip {
			continue
		}
		p.Sown = append(p.Sown, pos)
		left--
	}
	p.Landing = pos

	// counts are pre-sow: an empty landing pit now holds only the last seed.
	p.Capture = !IsStore(p.Landing) && OwnerOf(p.Landing) == mover && counts[p.Landing] == 0
	p.ExtraTurn = p.Landing == StoreOf(mover)
	return p, nil
}

// StepKind names one visible mutation of a move.
type StepKind int

const (
	StepLift StepKind = iota
	StepSow
	StepCapture
	StepAdvance
	StepSettle
)

func (k StepKind) String() string {
	switch k {
	case StepLift:
		return "lift"
	case StepSow:
		return "sow"
	case StepCapture:
		return "capture"
	case StepAdvance:
		return "advance"
	case StepSettle:
		return "settle"
	default:
		return "unknown"
	}
}

// Step is one scheduled mutation. Pit is the affected position, or -1.
type Step struct {
	Kind  StepKind
	Pit   int
	Delay time.Duration
}

// Steps expands the plan into its ordered mutations. The lift is immediate;
// every later step waits delay.
func (p Plan) Steps(delay time.Duration) []Step {
	steps := make([]Step, 0, len(p.Sown)+4)
	steps = append(steps, Step{Kind: StepLift, Pit: p.Source})
	for _, pos := range p.Sown {
		steps = append(steps, Step{Kind: StepSow, Pit: pos, Delay: delay})
	}
	if p.Capture {
		steps = append(steps, Step{Kind: StepCapture, Pit: p.Landing, Delay: delay})
	}
	if !p.ExtraTurn {
		steps = append(steps, Step{Kind: StepAdvance, Pit: -1, Delay: delay})
	}
	steps = append(steps, Step{Kind: StepSettle, Pit: -1, Delay: delay})
	return steps
}
