package kalah

import "time"

const (
	// NumPits is the number of cells in the ring, stores included.
	NumPits = 14

	// PitsPerSide is the number of playable pits each player owns.
	PitsPerSide = 6

	// InitialSeeds is the starting count of every playable pit.
	InitialSeeds = 4

	// TotalSeeds is the number of seeds on the board for the whole game.
	TotalSeeds = InitialSeeds * PitsPerSide * 2

	// StoreA and StoreB are the positions of the two stores.
	StoreA = 6
	StoreB = 13

	// DefaultStepDelay paces each visible step of a move.
	DefaultStepDelay = 300 * time.Millisecond
)

// OwnerOf returns the index (0 or 1) of the player owning position.
func OwnerOf(position int) int {
	if position > StoreA {
		return 1
	}
	return 0
}

// IsStore reports whether position is a store.
func IsStore(position int) bool {
	return position == StoreA || position == StoreB
}

// StoreOf returns the store position of player index p.
func StoreOf(p int) int {
	if p == 0 {
		return StoreA
	}
	return StoreB
}

// Opposite returns the playable pit facing position across the board.
func Opposite(position int) int {
	return 12 - position
}

// next returns the ring successor of position.
func next(position int) int {
	return (position + 1) % NumPits
}

// PitView is a read-only copy of one pit.
type PitView struct {
	Position int  `json:"position"`
	Owner    int  `json:"owner"`
	Store    bool `json:"store"`
	Seeds    int  `json:"seeds"`
}

type pit struct {
	owner    int
	store    bool
	position int
	seeds    int
}

func (p pit) view() PitView {
	return PitView{Position: p.position, Owner: p.owner, Store: p.store, Seeds: p.seeds}
}
