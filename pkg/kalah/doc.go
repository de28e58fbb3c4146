// Package kalah implements the rules of six-pit, four-seed Kalah and plays
// every accepted move back as a paced series of board mutations.
//
// A Board owns 14 pits arranged in a ring. Positions 0-5 are player A's pits
// and 6 is A's store; positions 7-12 are player B's pits and 13 is B's store.
// Sowing walks the ring counter-clockwise, skipping the opponent's store.
//
// # Moves
//
// SubmitMove validates a move and resolves it completely before anything
// visible changes: PlanMove decides where the last seed lands, whether it
// captures and whether the mover keeps the turn. The plan is then submitted
// to a sequencer.Sequencer as one task per mutation (lift the seeds, one sow
// per pit, capture, turn advance, end-of-game check). Readers see the board
// change step by step; IsAnimating reports true until the last step ran, and
// SubmitMove ignores input until then.
//
// Invalid moves are not errors for SubmitMove, they are ignored. TryMove
// reports the reason instead, for adapters that want to show it.
//
// # Seed conservation
//
// Seeds lifted from a pit are held "in hand" until sown, so pits plus
// Snapshot.InHand always total 48. Between moves nothing is in hand and the
// 14 pits alone total 48.
package kalah
