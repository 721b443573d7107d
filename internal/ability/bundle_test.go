package ability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ryotaok/dos-sub000/internal/character"
	"github.com/ryotaok/dos-sub000/internal/combat"
	"github.com/ryotaok/dos-sub000/internal/effects"
)

type offer struct {
	Base
	kind    combat.AttackKind
	updates *[]string
	name    string
}

func (o *offer) MaybeAttack(d *character.Data) (combat.AttackEvent, bool) {
	if o.kind == combat.StandStill {
		return combat.AttackEvent{}, false
	}
	return combat.AttackEvent{Kind: o.kind, Owner: d.Index}, true
}

func (o *offer) Update(time.Duration, Guard, *character.Data, *combat.AttackQueue, *combat.ParticleQueue, *combat.Enemy) {
	*o.updates = append(*o.updates, o.name)
}

type buff struct {
	Base
	atk float64
}

func (b buff) Intensify(a *combat.Attack) (character.State, bool) {
	if a.Kind != combat.NormalAttack {
		return character.State{}, false
	}
	return character.State{ATKPercent: b.atk}, true
}

type shortener struct{ Base }

func (shortener) Accelerator() (func(*effects.StepTimer), bool) {
	return func(t *effects.StepTimer) { t.Shorten(time.Second) }, true
}

type skill struct {
	Base
	timer *effects.StepTimer
}

func (s *skill) Accelerate(fn func(*effects.StepTimer)) { s.timer.Accelerate(fn) }

func TestBundleUpdateOrderSkipsNilSlots(t *testing.T) {
	var order []string
	b := Bundle{
		Artifact:     &offer{name: "artifact", updates: &order},
		NormalAttack: &offer{name: "normal", updates: &order},
		Burst:        &offer{name: "burst", updates: &order},
		Weapon:       &offer{name: "weapon", updates: &order},
	}

	b.Update(200*time.Millisecond, Guard{}, &character.Data{}, nil, nil, nil)

	assert.Equal(t, []string{"normal", "burst", "weapon", "artifact"}, order)
}

func TestBundleMaybeAttackPicksHighestPriority(t *testing.T) {
	var order []string
	b := Bundle{
		NormalAttack: &offer{kind: combat.NormalAttack, updates: &order},
		Skill:        &offer{kind: combat.PressSkill, updates: &order},
		Burst:        &offer{kind: combat.StandStill, updates: &order},
	}

	ev, ok := b.MaybeAttack(&character.Data{Index: 2})

	assert.True(t, ok)
	assert.Equal(t, combat.AttackEvent{Kind: combat.PressSkill, Owner: 2}, ev)

	_, ok = (&Bundle{}).MaybeAttack(&character.Data{})
	assert.False(t, ok)
}

func TestBundleIntensifyMergesEffects(t *testing.T) {
	b := Bundle{Passive: buff{atk: 10}, Weapon: buff{atk: 5}, NormalAttack: buff{atk: 100}}

	st, ok := b.Intensify(combat.NewAttack(combat.NormalAttack, combat.PhysicalGauge, 100, 1, 0))
	assert.True(t, ok)
	assert.InDelta(t, 15.0, st.ATKPercent, 1e-9)

	_, ok = b.Intensify(combat.NewAttack(combat.Burst, combat.PhysicalGauge, 100, 1, 0))
	assert.False(t, ok)
}

func TestBundleAccelerateTargetsSkillTimer(t *testing.T) {
	timer := effects.NewStepTimer(5 * time.Second)
	timer.Advance(200*time.Millisecond, true)
	b := Bundle{Skill: &skill{timer: timer}, Weapon: shortener{}, Artifact: shortener{}}

	b.Accelerate()

	assert.Equal(t, 2800*time.Millisecond, timer.Remaining())
}

func TestGuard(t *testing.T) {
	g := NewGuard(combat.AttackEvent{Kind: combat.HoldSkill, Owner: 1}, 1)
	assert.True(t, g.Skill())
	assert.True(t, g.Is(combat.HoldSkill))
	assert.False(t, g.Burst())

	other := NewGuard(combat.AttackEvent{Kind: combat.HoldSkill, Owner: 1}, 0)
	assert.False(t, other.Skill())

	idle := NewGuard(combat.StandStillEvent, 0)
	assert.False(t, idle.Own)
}
