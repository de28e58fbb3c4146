// Package sequencer runs timed tasks one at a time, in submission order.
//
// A Sequencer turns a batch of mutations into a paced playback: each task
// waits its delay, runs its work, and only when the work returns does the
// next task start. Completion is the return of the work function, so a task
// cannot forget to signal it; an error or panic in the work still completes
// the task and the queue moves on.
//
// # Usage
//
//	seq := sequencer.New(sequencer.WithLogger(logger))
//
//	_ = seq.Submit(sequencer.Task{Name: "clear", Work: func(ctx context.Context) error {
//	    // mutate state
//	    return nil
//	}})
//	_ = seq.Submit(sequencer.Task{Name: "sow", Delay: 300 * time.Millisecond, Work: sow})
//
//	if seq.Running() {
//	    // input stays locked until the batch drains
//	}
//
// # State Machine
//
//   - Idle -> Running: a task is submitted while idle
//   - Running -> Idle: the last queued task completes
//   - Idle, Running -> Cancelled: CancelAll
//
// Cancelled is absorbing. After CancelAll, Submit returns ErrCancelled, and a
// timer or completion belonging to a discarded task is ignored.
//
// # Clocks
//
// Delays are measured on a Clock. The default wraps time.AfterFunc;
// ManualClock advances virtual time explicitly and runs due callbacks on the
// caller's goroutine, which makes playback deterministic in tests.
package sequencer
