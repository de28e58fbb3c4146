package sequencer

import (
	"testing"
	"time"
)

func TestManualClock_Advance(t *testing.T) {
	c := NewManualClock()
	var fired []string

	c.AfterFunc(20*time.Millisecond, func() { fired = append(fired, "b") })
	c.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "a") })
	stopped := c.AfterFunc(15*time.Millisecond, func() { fired = append(fired, "x") })

	if !stopped.Stop() {
		t.Fatal("Stop() on pending timer = false")
	}
	if stopped.Stop() {
		t.Error("second Stop() = true")
	}

	c.Advance(10 * time.Millisecond)
	if len(fired) != 1 || fired[0] != "a" {
		t.Fatalf("fired = %v after 10ms, want [a]", fired)
	}
	if c.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", c.Pending())
	}

	c.Advance(10 * time.Millisecond)
	if len(fired) != 2 || fired[1] != "b" {
		t.Fatalf("fired = %v after 20ms, want [a b]", fired)
	}
	if c.Now() != 20*time.Millisecond {
		t.Errorf("Now() = %v, want 20ms", c.Now())
	}
}

func TestManualClock_DrainLimit(t *testing.T) {
	c := NewManualClock()
	var again func()
	again = func() { c.AfterFunc(time.Millisecond, again) }
	c.AfterFunc(0, again)

	if n := c.Drain(5); n != 5 {
		t.Errorf("Drain(5) fired %d, want 5", n)
	}
}
