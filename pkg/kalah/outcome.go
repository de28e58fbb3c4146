package kalah

import "github.com/bft-labs/kalah/pkg/log"

// CheckOutcome runs the end-of-game sweep and returns the winner, or nil
// while both players can still move. Once a winner is set it never changes.
// While a move has seeds in hand the board is mid-sow and nothing is checked.
func (b *Board) CheckOutcome() *Player {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.checkOutcomeLocked()
}

func (b *Board) checkOutcomeLocked() *Player {
	if b.outcome != nil || b.inHand > 0 {
		return b.outcome
	}

	// Both sides are tested on the same position before either sweep.
	aEmpty := b.sideEmptyLocked(0)
	bEmpty := b.sideEmptyLocked(1)
	if aEmpty {
		b.sweepLocked(1)
	}
	if bEmpty {
		b.sweepLocked(0)
	}
	if !aEmpty && !bEmpty {
		return nil
	}

	if b.pits[StoreB].seeds > b.pits[StoreA].seeds {
		b.outcome = b.players[1]
	} else {
		b.outcome = b.players[0]
	}
	b.logger.Info("game over",
		log.String("winner", b.outcome.Name),
		log.Int("store_a", b.pits[StoreA].seeds),
		log.Int("store_b", b.pits[StoreB].seeds),
	)
	return b.outcome
}

// sideStart returns the first playable position of player p.
func sideStart(p int) int {
	return p * (PitsPerSide + 1)
}

func (b *Board) sideEmptyLocked(p int) bool {
	start := sideStart(p)
	for i := start; i < start+PitsPerSide; i++ {
		if b.pits[i].seeds > 0 {
			return false
		}
	}
	return true
}

// sweepLocked banks every seed left on player p's side into p's own store.
func (b *Board) sweepLocked(p int) {
	start := sideStart(p)
	store := StoreOf(p)
	for i := start; i < start+PitsPerSide; i++ {
		b.pits[store].seeds += b.pits[i].seeds
		b.pits[i].seeds = 0
	}
}
