package effects

import (
	"fmt"
	"time"

	"github.com/ryotaok/dos-sub000/internal/combat"
)

// StepTimer walks through a fixed list of stages. Step 0 means ready; step k
// means stage k-1 is running. Pinged reports a step change on the last Advance.
type StepTimer struct {
	stages    []time.Duration
	sticky    bool
	step      int
	remaining time.Duration
	done      bool
	pinged    bool
}

// NewStepTimer returns a ready timer that loops back to step 0 once the last
// stage completes.
func NewStepTimer(stages ...time.Duration) *StepTimer {
	return newStepTimer(false, stages)
}

// NewStickyStepTimer returns a timer that parks in its done state after the
// last stage until it is gated open again.
func NewStickyStepTimer(stages ...time.Duration) *StepTimer {
	return newStepTimer(true, stages)
}

func newStepTimer(sticky bool, stages []time.Duration) *StepTimer {
	if len(stages) == 0 {
		panic("effects: step timer needs at least one stage")
	}
	t := &StepTimer{
		stages: append([]time.Duration(nil), stages...),
		sticky: sticky,
	}
	t.Reset()
	return t
}

// Reset returns the timer to its construction state.
func (t *StepTimer) Reset() {
	t.step = 0
	t.remaining = t.stages[0]
	t.done = false
	t.pinged = false
}

// Step returns the current step index.
func (t *StepTimer) Step() int { return t.step }

// Stages returns the number of stages.
func (t *StepTimer) Stages() int { return len(t.stages) }

// Pinged reports whether the step changed during the last Advance.
func (t *StepTimer) Pinged() bool { return t.pinged }

// Ready reports whether the timer sits at step 0.
func (t *StepTimer) Ready() bool { return t.step == 0 }

// Done reports whether a sticky timer is parked after its last stage.
func (t *StepTimer) Done() bool { return t.done }

// Remaining returns the time left in the running stage.
func (t *StepTimer) Remaining() time.Duration {
	if t.step == 0 || t.done {
		return 0
	}
	return t.remaining
}

// Event returns ev only while the timer is ready to be asked for.
func (t *StepTimer) Event(ev combat.AttackEvent) (combat.AttackEvent, bool) {
	if t.step != 0 {
		return combat.AttackEvent{}, false
	}
	return ev, true
}

// Advance moves the timer forward by elapsed. A ready timer only starts when
// gate is open. Overflow past a stage boundary carries into the next stage.
func (t *StepTimer) Advance(elapsed time.Duration, gate bool) {
	if t.step == 0 && !gate {
		t.pinged = false
		return
	}
	t.pinged = false
	restarted := false
	for i := 0; i < 2*len(t.stages)+2; i++ {
		if t.done {
			if t.sticky && !gate {
				return
			}
			t.step = 0
			t.remaining = t.stages[0]
			t.done = false
			t.pinged = true
			if t.sticky || !gate || restarted {
				return
			}
			restarted = true
		}
		if t.step == 0 {
			t.step = 1
			t.remaining = t.stages[0]
			t.pinged = true
		}
		t.remaining -= elapsed
		if t.remaining > 0 {
			return
		}
		elapsed = -t.remaining
		t.pinged = true
		if t.step < len(t.stages) {
			t.step++
			t.remaining = t.stages[t.step-1]
			continue
		}
		t.done = true
		t.remaining = 0
		if t.sticky && !gate {
			return
		}
	}
}

// Shorten cuts d from the running stage. The stage completes on the next
// Advance when nothing is left.
func (t *StepTimer) Shorten(d time.Duration) {
	if t.step == 0 || t.done || d <= 0 {
		return
	}
	t.remaining -= d
	if t.remaining < 0 {
		t.remaining = 0
	}
}

// Accelerate applies a cooldown-reduction callback to the timer.
func (t *StepTimer) Accelerate(fn func(*StepTimer)) {
	if fn != nil {
		fn(t)
	}
}

func (t *StepTimer) String() string {
	return fmt.Sprintf("step %d/%d remaining %s pinged=%t", t.step, len(t.stages), t.remaining, t.pinged)
}
