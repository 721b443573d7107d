package effects

import (
	"math"
	"time"
)

const (
	// MaxStamina is the size of the stamina pool.
	MaxStamina = 240.0
	// StaminaRegen is the passive regeneration per second.
	StaminaRegen = 25.0
)

// StaminaRecovery is how long an exhausted pool takes to refill.
var StaminaRecovery = time.Duration(math.Round(MaxStamina / StaminaRegen * float64(time.Second)))

// StaminaPhase is the state of a stamina-gated action.
type StaminaPhase int

const (
	StaminaIdle StaminaPhase = iota
	StaminaPerforming
	StaminaExhausted
)

func (p StaminaPhase) String() string {
	switch p {
	case StaminaIdle:
		return "idle"
	case StaminaPerforming:
		return "performing"
	case StaminaExhausted:
		return "exhausted"
	}
	return "unknown"
}

// StaminaTimer models a repeatable action that spends stamina, such as a
// chain of charged attacks.
type StaminaTimer struct {
	motion time.Duration

	phase    StaminaPhase
	motionAt time.Duration
	recovery time.Duration
	stamina  float64
	pinged   bool
}

// NewStaminaTimer returns an idle timer with a full pool. motion is the
// length of one action.
func NewStaminaTimer(motion time.Duration) *StaminaTimer {
	t := &StaminaTimer{motion: motion}
	t.Reset()
	return t
}

// Reset refills the pool and returns to idle.
func (t *StaminaTimer) Reset() {
	t.phase = StaminaIdle
	t.motionAt = 0
	t.recovery = 0
	t.stamina = MaxStamina
	t.pinged = false
}

func (t *StaminaTimer) Phase() StaminaPhase { return t.phase }
func (t *StaminaTimer) Stamina() float64    { return t.stamina }
func (t *StaminaTimer) Pinged() bool        { return t.pinged }

// Advance moves the timer by elapsed. consumption is spent on every tick the
// gate is open; regeneration applies outside exhaustion.
func (t *StaminaTimer) Advance(elapsed time.Duration, consumption float64, gate bool) {
	t.pinged = false
	regen := StaminaRegen * elapsed.Seconds()

	switch t.phase {
	case StaminaIdle:
		t.drain(regen, consumption, gate)
		if gate {
			t.phase = StaminaPerforming
			t.motionAt = t.motion
			t.pinged = true
			t.checkExhausted()
		}
	case StaminaPerforming:
		t.drain(regen, consumption, gate)
		t.motionAt -= elapsed
		if gate {
			t.motionAt = t.motion
			t.pinged = true
		}
		if t.checkExhausted() {
			return
		}
		if t.motionAt <= 0 {
			t.motionAt = 0
			t.phase = StaminaIdle
			t.pinged = true
		}
	case StaminaExhausted:
		t.recovery -= elapsed
		if t.recovery <= 0 {
			t.recovery = 0
			t.stamina = MaxStamina
			t.phase = StaminaIdle
			t.pinged = true
		}
	}
}

func (t *StaminaTimer) drain(regen, consumption float64, gate bool) {
	if gate {
		t.stamina -= consumption
	}
	t.stamina += regen
	if t.stamina > MaxStamina {
		t.stamina = MaxStamina
	}
}

func (t *StaminaTimer) checkExhausted() bool {
	if t.stamina > 0 {
		return false
	}
	t.phase = StaminaExhausted
	t.motionAt = 0
	t.recovery = StaminaRecovery
	t.pinged = true
	return true
}
