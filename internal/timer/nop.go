package timer

import "time"

// Nop is a Timers implementation that arms nothing. Used by the sweep worker,
// which resolves elapsed windows from the persisted deadlines instead.
type Nop struct{}

// Arm does nothing.
func (Nop) Arm(string, time.Time) {}

// Disarm does nothing.
func (Nop) Disarm(string) {}
