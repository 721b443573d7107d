package ability

import (
	"time"

	"github.com/ryotaok/dos-sub000/internal/character"
	"github.com/ryotaok/dos-sub000/internal/combat"
)

// Bundle holds the seven modules of one character. Nil slots do nothing.
type Bundle struct {
	NormalAttack Ability
	ChargeAttack Ability
	Skill        Ability
	Burst        Ability
	Passive      Ability
	Weapon       Ability
	Artifact     Ability
}

// All returns the slots in update order: normal attack, charge attack,
// skill, burst, passive, weapon, artifact.
func (b *Bundle) All() []Ability {
	return compact(b.NormalAttack, b.ChargeAttack, b.Skill, b.Burst, b.Passive, b.Weapon, b.Artifact)
}

// Effects returns the passive, weapon and artifact slots.
func (b *Bundle) Effects() []Ability {
	return compact(b.Passive, b.Weapon, b.Artifact)
}

func compact(list ...Ability) []Ability {
	out := list[:0]
	for _, a := range list {
		if a != nil {
			out = append(out, a)
		}
	}
	return out
}

// MaybeAttack returns the highest priority event any slot offers. Ties keep
// the first slot in update order.
func (b *Bundle) MaybeAttack(d *character.Data) (combat.AttackEvent, bool) {
	var best combat.AttackEvent
	found := false
	for _, a := range b.All() {
		ev, ok := a.MaybeAttack(d)
		if !ok {
			continue
		}
		if !found || ev.Kind.Priority() > best.Kind.Priority() {
			best = ev
			found = true
		}
	}
	return best, found
}

// Update advances every slot in order.
func (b *Bundle) Update(dt time.Duration, g Guard, d *character.Data, aq *combat.AttackQueue, pq *combat.ParticleQueue, enemy *combat.Enemy) {
	for _, a := range b.All() {
		a.Update(dt, g, d, aq, pq, enemy)
	}
}

// AdditionalAttack lets every slot queue its pending attacks.
func (b *Bundle) AdditionalAttack(aq *combat.AttackQueue, pq *combat.ParticleQueue, d *character.Data) {
	for _, a := range b.All() {
		a.AdditionalAttack(aq, pq, d)
	}
}

// Modify applies the passive, weapon and artifact buffs.
func (b *Bundle) Modify(states []character.State, d *character.Data, enemy *combat.Enemy) {
	for _, a := range b.Effects() {
		a.Modify(states, d, enemy)
	}
}

// Intensify sums the ad-hoc bonuses the passive, weapon and artifact give a.
func (b *Bundle) Intensify(a *combat.Attack) (character.State, bool) {
	var total character.State
	found := false
	for _, m := range b.Effects() {
		if st, ok := m.Intensify(a); ok {
			total.Merge(&st)
			found = true
		}
	}
	return total, found
}

// Accelerate applies every slot's accelerator to the skill, if the skill
// supports it.
func (b *Bundle) Accelerate() {
	target, ok := b.Skill.(Accelerable)
	if !ok {
		return
	}
	for _, a := range b.All() {
		if fn, ok := a.Accelerator(); ok {
			target.Accelerate(fn)
		}
	}
}

// Reset resets every slot.
func (b *Bundle) Reset() {
	for _, a := range b.All() {
		a.Reset()
	}
}
