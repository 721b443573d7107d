// Package kit builds generic, data-driven ability modules from configuration.
package kit

import (
	"time"

	"github.com/ryotaok/dos-sub000/internal/ability"
	"github.com/ryotaok/dos-sub000/internal/character"
	"github.com/ryotaok/dos-sub000/internal/combat"
	"github.com/ryotaok/dos-sub000/internal/effects"
)

// NormalAttack is a chain of hits. Stage i lands hit i when it starts; the
// chain is requested again once it runs out.
type NormalAttack struct {
	ability.Base
	owner int
	timer *effects.StepTimer
	hits  []*combat.Attack
	gauge combat.ElementalGauge
}

func NewNormalAttack(owner int, stages []time.Duration, multipliers []float64, gauge combat.ElementalGauge) *NormalAttack {
	na := &NormalAttack{
		owner: owner,
		timer: effects.NewStepTimer(stages...),
		gauge: gauge,
	}
	for _, m := range multipliers {
		na.hits = append(na.hits, combat.NewAttack(combat.NormalAttack, gauge, m, 1, owner))
	}
	return na
}

func (na *NormalAttack) MaybeAttack(*character.Data) (combat.AttackEvent, bool) {
	return na.timer.Event(combat.AttackEvent{Kind: combat.NormalAttack, Owner: na.owner})
}

func (na *NormalAttack) Update(dt time.Duration, g ability.Guard, _ *character.Data, _ *combat.AttackQueue, _ *combat.ParticleQueue, _ *combat.Enemy) {
	na.timer.Advance(dt, g.Is(combat.NormalAttack))
}

func (na *NormalAttack) AdditionalAttack(aq *combat.AttackQueue, _ *combat.ParticleQueue, d *character.Data) {
	step := na.timer.Step()
	if !na.timer.Pinged() || step == 0 {
		return
	}
	a := na.hits[step-1]
	a.Infuse(na.gaugeFor(d))
	aq.Push(a)
}

// gaugeFor swaps a physical chain to the owner's element while infused.
func (na *NormalAttack) gaugeFor(d *character.Data) combat.ElementalGauge {
	if na.gauge.Element != combat.Physical || d == nil || d.State == nil || !d.State.Infusion || d.Record == nil {
		return na.gauge
	}
	return combat.NewGauge(d.Record.Element, combat.DecayA)
}

func (na *NormalAttack) Reset() {
	na.timer.Reset()
	for _, a := range na.hits {
		a.Infuse(na.gauge)
	}
}

// ChargeAttack is a stamina-gated heavy hit.
type ChargeAttack struct {
	ability.Base
	owner   int
	cost    float64
	stamina *effects.StaminaTimer
	attack  *combat.Attack
	swung   bool
}

func NewChargeAttack(owner int, motion time.Duration, cost float64, attack *combat.Attack) *ChargeAttack {
	return &ChargeAttack{
		owner:   owner,
		cost:    cost,
		stamina: effects.NewStaminaTimer(motion),
		attack:  attack,
	}
}

func (ca *ChargeAttack) MaybeAttack(*character.Data) (combat.AttackEvent, bool) {
	if ca.stamina.Phase() != effects.StaminaIdle || ca.stamina.Stamina() < ca.cost {
		return combat.AttackEvent{}, false
	}
	return combat.AttackEvent{Kind: combat.ChargeAttack, Owner: ca.owner}, true
}

func (ca *ChargeAttack) Update(dt time.Duration, g ability.Guard, _ *character.Data, _ *combat.AttackQueue, _ *combat.ParticleQueue, _ *combat.Enemy) {
	ca.swung = g.Is(combat.ChargeAttack)
	ca.stamina.Advance(dt, ca.cost, ca.swung)
}

// AdditionalAttack lands last tick's swing, including one that emptied the pool.
func (ca *ChargeAttack) AdditionalAttack(aq *combat.AttackQueue, _ *combat.ParticleQueue, _ *character.Data) {
	if ca.swung {
		aq.Push(ca.attack)
		ca.swung = false
	}
}

// Stamina returns the current pool.
func (ca *ChargeAttack) Stamina() float64 { return ca.stamina.Stamina() }

// Phase returns the stamina phase.
func (ca *ChargeAttack) Phase() effects.StaminaPhase { return ca.stamina.Phase() }

func (ca *ChargeAttack) Reset() {
	ca.stamina.Reset()
	ca.swung = false
}

// dot lands one tick per completed stage of a sticky timer. Casting restarts it.
type dot struct {
	timer  *effects.StepTimer
	attack *combat.Attack
}

func newDot(interval time.Duration, count int, attack *combat.Attack) *dot {
	stages := make([]time.Duration, count)
	for i := range stages {
		stages[i] = interval
	}
	return &dot{timer: effects.NewStickyStepTimer(stages...), attack: attack}
}

func (d *dot) advance(dt time.Duration, cast bool) {
	if d == nil {
		return
	}
	if cast {
		d.timer.Reset()
	}
	d.timer.Advance(dt, cast)
}

func (d *dot) queue(aq *combat.AttackQueue) {
	if d == nil || !d.timer.Pinged() {
		return
	}
	if d.timer.Step() >= 2 || d.timer.Done() {
		aq.Push(d.attack)
	}
}

func (d *dot) reset() {
	if d != nil {
		d.timer.Reset()
	}
}

// Skill is a pressed or held elemental skill on a cooldown. It produces
// particles and an optional damage-over-time.
type Skill struct {
	ability.Base
	owner     int
	kind      combat.AttackKind
	cooldown  *effects.StepTimer
	attack    *combat.Attack
	particles float64
	dot       *dot
}

func NewSkill(owner int, kind combat.AttackKind, cooldown time.Duration, attack *combat.Attack, particles float64) *Skill {
	return &Skill{
		owner:     owner,
		kind:      kind,
		cooldown:  effects.NewStepTimer(cooldown),
		attack:    attack,
		particles: particles,
	}
}

// WithDot adds count ticks of attack, one every interval after the cast.
func (s *Skill) WithDot(interval time.Duration, count int, attack *combat.Attack) *Skill {
	s.dot = newDot(interval, count, attack)
	return s
}

func (s *Skill) MaybeAttack(*character.Data) (combat.AttackEvent, bool) {
	return s.cooldown.Event(combat.AttackEvent{Kind: s.kind, Owner: s.owner})
}

func (s *Skill) Update(dt time.Duration, g ability.Guard, _ *character.Data, _ *combat.AttackQueue, _ *combat.ParticleQueue, _ *combat.Enemy) {
	cast := g.Is(s.kind)
	s.cooldown.Advance(dt, cast)
	s.dot.advance(dt, cast)
}

func (s *Skill) AdditionalAttack(aq *combat.AttackQueue, pq *combat.ParticleQueue, _ *character.Data) {
	if s.cooldown.Pinged() && s.cooldown.Step() == 1 {
		aq.Push(s.attack)
		pq.Push(combat.Particle{Element: s.attack.Element(), Count: s.particles, Source: s.owner})
	}
	s.dot.queue(aq)
}

// Accelerate applies fn to the cooldown.
func (s *Skill) Accelerate(fn func(*effects.StepTimer)) { s.cooldown.Accelerate(fn) }

// Cooldown returns the time left until the skill is ready.
func (s *Skill) Cooldown() time.Duration { return s.cooldown.Remaining() }

func (s *Skill) Reset() {
	s.cooldown.Reset()
	s.dot.reset()
}

// Burst is an elemental burst. It is offered once the owner's energy covers
// the cost and the cooldown is over.
type Burst struct {
	ability.Base
	owner    int
	cooldown *effects.StepTimer
	attack   *combat.Attack
	dot      *dot
}

func NewBurst(owner int, cooldown time.Duration, attack *combat.Attack) *Burst {
	return &Burst{
		owner:    owner,
		cooldown: effects.NewStepTimer(cooldown),
		attack:   attack,
	}
}

// WithDot adds count ticks of attack, one every interval after the cast.
func (b *Burst) WithDot(interval time.Duration, count int, attack *combat.Attack) *Burst {
	b.dot = newDot(interval, count, attack)
	return b
}

func (b *Burst) MaybeAttack(d *character.Data) (combat.AttackEvent, bool) {
	if d == nil || d.State == nil || d.Record == nil || d.State.Energy < d.Record.EnergyCost {
		return combat.AttackEvent{}, false
	}
	return b.cooldown.Event(combat.AttackEvent{Kind: combat.Burst, Owner: b.owner})
}

func (b *Burst) Update(dt time.Duration, g ability.Guard, _ *character.Data, _ *combat.AttackQueue, _ *combat.ParticleQueue, _ *combat.Enemy) {
	cast := g.Burst()
	b.cooldown.Advance(dt, cast)
	b.dot.advance(dt, cast)
}

func (b *Burst) AdditionalAttack(aq *combat.AttackQueue, _ *combat.ParticleQueue, _ *character.Data) {
	if b.cooldown.Pinged() && b.cooldown.Step() == 1 {
		aq.Push(b.attack)
	}
	b.dot.queue(aq)
}

func (b *Burst) Reset() {
	b.cooldown.Reset()
	b.dot.reset()
}
