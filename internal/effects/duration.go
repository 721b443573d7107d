package effects

import "time"

// DurationTimer tracks a stacking buff: every stack has its own readiness
// cooldown, and all stacks share one active window that expires together.
type DurationTimer struct {
	cooldowns []time.Duration
	duration  time.Duration

	cooldown   time.Duration
	window     time.Duration
	stacks     int
	prevStacks int
	pinged     bool
}

// NewDurationTimer returns a timer whose stacks last duration. cooldowns[i]
// is the readiness cooldown started when stack i+1 is gained; its length is
// the stack cap.
func NewDurationTimer(duration time.Duration, cooldowns ...time.Duration) *DurationTimer {
	if len(cooldowns) == 0 {
		panic("effects: duration timer needs at least one stack cooldown")
	}
	return &DurationTimer{
		cooldowns: append([]time.Duration(nil), cooldowns...),
		duration:  duration,
	}
}

// Reset clears stacks and cooldowns.
func (t *DurationTimer) Reset() {
	t.cooldown = 0
	t.window = 0
	t.stacks = 0
	t.prevStacks = 0
	t.pinged = false
}

// Stacks returns the current stack count.
func (t *DurationTimer) Stacks() int { return t.stacks }

// PreviousStacks returns the stack count held before the last change.
func (t *DurationTimer) PreviousStacks() int { return t.prevStacks }

// MaxStacks returns the stack cap.
func (t *DurationTimer) MaxStacks() int { return len(t.cooldowns) }

// Pinged reports whether the stack count changed or refreshed during the last Advance.
func (t *DurationTimer) Pinged() bool { return t.pinged }

// Active reports whether at least one stack is up.
func (t *DurationTimer) Active() bool { return t.stacks > 0 }

// Remaining returns what is left of the active window.
func (t *DurationTimer) Remaining() time.Duration {
	if t.stacks == 0 {
		return 0
	}
	return t.window
}

// Advance counts both timers down by elapsed. With gate open and the
// cooldown elapsed a stack is gained and the window restarts; otherwise an
// expired window drops every stack.
func (t *DurationTimer) Advance(elapsed time.Duration, gate bool) {
	t.pinged = false
	t.cooldown -= elapsed
	if t.cooldown < 0 {
		t.cooldown = 0
	}
	if t.stacks > 0 {
		t.window -= elapsed
	}

	if gate && t.cooldown == 0 {
		t.prevStacks = t.stacks
		switch {
		case t.stacks == 0 || t.window <= 0:
			t.stacks = 1
		case t.stacks < len(t.cooldowns):
			t.stacks++
		}
		t.cooldown = t.cooldowns[t.stacks-1]
		t.window = t.duration
		t.pinged = true
		return
	}

	if t.stacks > 0 && t.window <= 0 {
		t.prevStacks = t.stacks
		t.stacks = 0
		t.window = 0
		t.pinged = true
	}
}
