// Package ability defines the hooks a character, weapon or artifact module
// exposes to the tick engine.
package ability

import (
	"time"

	"github.com/ryotaok/dos-sub000/internal/character"
	"github.com/ryotaok/dos-sub000/internal/combat"
	"github.com/ryotaok/dos-sub000/internal/effects"
)

// Ability is implemented by every module attached to a character. Embed Base
// to get no-op defaults for the hooks a module does not need.
type Ability interface {
	// MaybeAttack offers an action for the Decide phase.
	MaybeAttack(d *character.Data) (combat.AttackEvent, bool)
	// Update advances the module's timers once per tick.
	Update(dt time.Duration, g Guard, d *character.Data, aq *combat.AttackQueue, pq *combat.ParticleQueue, enemy *combat.Enemy)
	// AdditionalAttack queues attacks and particles from last tick's state.
	AdditionalAttack(aq *combat.AttackQueue, pq *combat.ParticleQueue, d *character.Data)
	// Modify adds buffs to the fresh per-character states and debuffs to the enemy.
	Modify(states []character.State, d *character.Data, enemy *combat.Enemy)
	// Intensify returns an ad-hoc bonus for one attack.
	Intensify(a *combat.Attack) (character.State, bool)
	// Accelerator returns a callback applied to the owner's skill timer.
	Accelerator() (func(*effects.StepTimer), bool)
	Reset()
}

// Accelerable is implemented by skill modules whose cooldown other modules
// can shorten.
type Accelerable interface {
	Accelerate(fn func(*effects.StepTimer))
}

// Base implements every hook as a no-op.
type Base struct{}

func (Base) MaybeAttack(*character.Data) (combat.AttackEvent, bool) {
	return combat.AttackEvent{}, false
}

func (Base) Update(time.Duration, Guard, *character.Data, *combat.AttackQueue, *combat.ParticleQueue, *combat.Enemy) {
}

func (Base) AdditionalAttack(*combat.AttackQueue, *combat.ParticleQueue, *character.Data) {}

func (Base) Modify([]character.State, *character.Data, *combat.Enemy) {}

func (Base) Intensify(*combat.Attack) (character.State, bool) {
	return character.State{}, false
}

func (Base) Accelerator() (func(*effects.StepTimer), bool) { return nil, false }

func (Base) Reset() {}

// Guard tells a module what won the tick and whether it was its owner's action.
// Generic kits never chain sub-actions, so there is no second-action flag.
type Guard struct {
	Event combat.AttackEvent
	Own   bool
}

// NewGuard builds the guard character owner sees for the winning event.
func NewGuard(winner combat.AttackEvent, owner int) Guard {
	return Guard{
		Event: winner,
		Own:   winner.Kind != combat.StandStill && winner.Owner == owner,
	}
}

// Is reports whether the owner acted with kind this tick.
func (g Guard) Is(kind combat.AttackKind) bool {
	return g.Own && g.Event.Kind == kind
}

// Skill reports whether the owner used its skill, pressed or held.
func (g Guard) Skill() bool {
	return g.Own && (g.Event.Kind == combat.PressSkill || g.Event.Kind == combat.HoldSkill)
}

// Burst reports whether the owner used its burst.
func (g Guard) Burst() bool { return g.Is(combat.Burst) }
