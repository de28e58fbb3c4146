package kalah_test

import (
	"fmt"

	"github.com/bft-labs/kalah/pkg/kalah"
	"github.com/bft-labs/kalah/pkg/sequencer"
)

// ExampleBoard_SubmitMove plays one move and drains its playback with a
// manual clock.
func ExampleBoard_SubmitMove() {
	clock := sequencer.NewManualClock()
	b, err := kalah.New(kalah.DefaultPlayers(), kalah.WithClock(clock))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer b.Close()

	fmt.Println("accepted:", b.SubmitMove(2))
	fmt.Println("animating:", b.IsAnimating())
	fmt.Println("second move accepted:", b.SubmitMove(3))

	clock.Drain(100)

	s := b.Snapshot()
	fmt.Println("store A:", s.Pits[kalah.StoreA].Seeds)
	fmt.Println("to move:", s.Players[s.Current].Name)

	// Output:
	// accepted: true
	// animating: true
	// second move accepted: false
	// store A: 1
	// to move: Red
}

// ExamplePlanMove resolves a move without touching a board.
func ExamplePlanMove() {
	var counts [kalah.NumPits]int
	for i := range counts {
		if !kalah.IsStore(i) {
			counts[i] = kalah.InitialSeeds
		}
	}

	p, err := kalah.PlanMove(counts, 0, 2)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p.Sown, p.ExtraTurn, p.Capture)

	// Output: [3 4 5 6] true false
}
