package kit

import (
	"time"

	"github.com/ryotaok/dos-sub000/internal/ability"
	"github.com/ryotaok/dos-sub000/internal/character"
	"github.com/ryotaok/dos-sub000/internal/combat"
	"github.com/ryotaok/dos-sub000/internal/effects"
)

// ShredSource names the resistance debuff of the shred set. Copies worn by
// several members share the source and never stack.
const ShredSource = "shred"

// queued reports whether owner has an attack of kind in aq.
func queued(aq *combat.AttackQueue, owner int, kind combat.AttackKind) bool {
	if aq == nil {
		return false
	}
	for _, a := range aq.Of(owner) {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

// StackingBuff gains a stack whenever an owner attack of the trigger kind is
// queued, and grants its stats once per stack.
type StackingBuff struct {
	ability.Base
	owner   int
	trigger combat.AttackKind
	timer   *effects.DurationTimer
	stack   character.State
}

func NewStackingBuff(owner int, trigger combat.AttackKind, duration, cooldown time.Duration, maxStacks int, perStack character.State) *StackingBuff {
	if maxStacks < 1 {
		maxStacks = 1
	}
	cooldowns := make([]time.Duration, maxStacks)
	for i := range cooldowns {
		cooldowns[i] = cooldown
	}
	return &StackingBuff{
		owner:   owner,
		trigger: trigger,
		timer:   effects.NewDurationTimer(duration, cooldowns...),
		stack:   perStack,
	}
}

func (b *StackingBuff) Update(dt time.Duration, _ ability.Guard, _ *character.Data, aq *combat.AttackQueue, _ *combat.ParticleQueue, _ *combat.Enemy) {
	b.timer.Advance(dt, queued(aq, b.owner, b.trigger))
}

func (b *StackingBuff) Modify(states []character.State, _ *character.Data, _ *combat.Enemy) {
	for i := 0; i < b.timer.Stacks(); i++ {
		states[b.owner].Merge(&b.stack)
	}
}

// Stacks returns the current stack count.
func (b *StackingBuff) Stacks() int { return b.timer.Stacks() }

func (b *StackingBuff) Reset() { b.timer.Reset() }

// Infusion turns the owner's physical normal attacks elemental for a while
// after each skill cast.
type Infusion struct {
	ability.Base
	owner int
	timer *effects.DurationTimer
}

func NewInfusion(owner int, duration time.Duration) *Infusion {
	return &Infusion{owner: owner, timer: effects.NewDurationTimer(duration, 0)}
}

func (in *Infusion) Update(dt time.Duration, g ability.Guard, _ *character.Data, _ *combat.AttackQueue, _ *combat.ParticleQueue, _ *combat.Enemy) {
	in.timer.Advance(dt, g.Skill())
}

func (in *Infusion) Modify(states []character.State, _ *character.Data, _ *combat.Enemy) {
	if in.timer.Active() {
		states[in.owner].Infusion = true
	}
}

func (in *Infusion) Reset() { in.timer.Reset() }

// ProcWeapon adds a reaction-immune hit whenever an owner attack of one of
// its kinds is queued and the proc is off cooldown, and boosts those kinds.
type ProcWeapon struct {
	ability.Base
	owner    int
	kinds    []combat.AttackKind
	cooldown *effects.StepTimer
	proc     *combat.Attack
	bonus    character.State
}

func NewProcWeapon(owner int, kinds []combat.AttackKind, cooldown time.Duration, proc *combat.Attack, bonus character.State) *ProcWeapon {
	return &ProcWeapon{
		owner:    owner,
		kinds:    kinds,
		cooldown: effects.NewStepTimer(cooldown),
		proc:     proc,
		bonus:    bonus,
	}
}

func (w *ProcWeapon) matches(kind combat.AttackKind) bool {
	if len(w.kinds) == 0 {
		return kind != combat.Additional
	}
	for _, k := range w.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (w *ProcWeapon) Update(dt time.Duration, _ ability.Guard, _ *character.Data, aq *combat.AttackQueue, _ *combat.ParticleQueue, _ *combat.Enemy) {
	hit := false
	if aq != nil {
		for _, a := range aq.Of(w.owner) {
			if w.matches(a.Kind) {
				hit = true
				break
			}
		}
	}
	w.cooldown.Advance(dt, hit)
}

func (w *ProcWeapon) AdditionalAttack(aq *combat.AttackQueue, _ *combat.ParticleQueue, _ *character.Data) {
	if w.cooldown.Pinged() && w.cooldown.Step() == 1 {
		aq.Push(w.proc)
	}
}

func (w *ProcWeapon) Intensify(a *combat.Attack) (character.State, bool) {
	if a.Owner != w.owner || a.Kind == combat.Additional || !w.matches(a.Kind) {
		return character.State{}, false
	}
	return w.bonus, true
}

func (w *ProcWeapon) Reset() { w.cooldown.Reset() }

// CooldownReset finishes the owner's skill cooldown right after a cast,
// at most once per interval.
type CooldownReset struct {
	ability.Base
	cooldown *effects.StepTimer
	fire     bool
}

func NewCooldownReset(interval time.Duration) *CooldownReset {
	return &CooldownReset{cooldown: effects.NewStepTimer(interval)}
}

func (w *CooldownReset) Update(dt time.Duration, g ability.Guard, _ *character.Data, _ *combat.AttackQueue, _ *combat.ParticleQueue, _ *combat.Enemy) {
	cast := g.Skill()
	if cast && w.cooldown.Ready() {
		w.fire = true
	}
	w.cooldown.Advance(dt, cast)
}

// Accelerator hands out the reset once per trigger.
func (w *CooldownReset) Accelerator() (func(*effects.StepTimer), bool) {
	if !w.fire {
		return nil, false
	}
	w.fire = false
	return func(t *effects.StepTimer) { t.Shorten(t.Remaining()) }, true
}

func (w *CooldownReset) Reset() {
	w.cooldown.Reset()
	w.fire = false
}

// StatStick is a weapon without an effect.
type StatStick struct{ ability.Base }

// TeamBuff raises the whole party's ATK after the owner's burst. Only one
// copy applies per tick.
type TeamBuff struct {
	ability.Base
	timer *effects.DurationTimer
	atk   float64
}

func NewTeamBuff(duration time.Duration, atkPercent float64) *TeamBuff {
	return &TeamBuff{timer: effects.NewDurationTimer(duration, 0), atk: atkPercent}
}

func (b *TeamBuff) Update(dt time.Duration, g ability.Guard, _ *character.Data, _ *combat.AttackQueue, _ *combat.ParticleQueue, _ *combat.Enemy) {
	b.timer.Advance(dt, g.Burst())
}

func (b *TeamBuff) Modify(states []character.State, _ *character.Data, _ *combat.Enemy) {
	if !b.timer.Active() {
		return
	}
	for i := range states {
		if states[i].Stacked.Has(character.StackTeamATK) {
			continue
		}
		states[i].ATKPercent += b.atk
		states[i].Stacked |= character.StackTeamATK
	}
}

func (b *TeamBuff) Reset() { b.timer.Reset() }

// Shred lowers the enemy's elemental resistance after the owner's skill.
type Shred struct {
	ability.Base
	duration  time.Duration
	magnitude float64
}

func NewShred(duration time.Duration, magnitude float64) *Shred {
	return &Shred{duration: duration, magnitude: magnitude}
}

func (s *Shred) Update(_ time.Duration, g ability.Guard, _ *character.Data, _ *combat.AttackQueue, _ *combat.ParticleQueue, enemy *combat.Enemy) {
	if g.Skill() && enemy != nil {
		enemy.ElementResDown.Push(combat.Debuff{Source: ShredSource, Magnitude: s.magnitude, Remaining: s.duration})
	}
}

// SetBonus is an artifact loadout without a conditional effect.
type SetBonus struct{ ability.Base }
