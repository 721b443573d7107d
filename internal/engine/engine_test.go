package engine_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryotaok/dos-sub000/internal/ability"
	"github.com/ryotaok/dos-sub000/internal/character"
	"github.com/ryotaok/dos-sub000/internal/combat"
	"github.com/ryotaok/dos-sub000/internal/engine"
	"github.com/ryotaok/dos-sub000/internal/kit"
)

const tick = 200 * time.Millisecond

func member(name string, element combat.Element, b ability.Bundle) engine.Member {
	return engine.Member{
		Data: &character.Data{Record: &character.Record{
			Name:    name,
			Element: element,
			Level:   90,
			BaseATK: 100,
		}},
		Abilities: b,
	}
}

func pressSkill(owner int, element combat.Element, multiplier float64, hits int, particles float64) *kit.Skill {
	a := combat.NewAttack(combat.PressSkill, combat.NewGauge(element, combat.DecayA), multiplier, hits, owner)
	return kit.NewSkill(owner, combat.PressSkill, 5*time.Second, a, particles)
}

func normalChain(owner int) *kit.NormalAttack {
	stages := []time.Duration{500 * time.Millisecond, 500 * time.Millisecond, 500 * time.Millisecond, 500 * time.Millisecond, 500 * time.Millisecond}
	return kit.NewNormalAttack(owner, stages, []float64{100, 100, 100, 100, 100}, combat.PhysicalGauge)
}

func fixture(skillMultiplier float64) *engine.Simulator {
	m := member("Tester", combat.Pyro, ability.Bundle{
		NormalAttack: normalChain(0),
		Skill:        pressSkill(0, combat.Pyro, skillMultiplier, 2, 0),
	})
	return engine.NewSimulator([]engine.Member{m}, combat.NewEnemy(90, 0, 0),
		engine.SimulationConfig{Duration: 11 * tick, Tick: tick}, nil)
}

func TestSkillAndNormalChainRegression(t *testing.T) {
	for _, mult := range []float64{200, 350} {
		sim := fixture(mult)

		var perTick []float64
		for i := 0; i < 11; i++ {
			perTick = append(perTick, sim.Step())
		}

		want := []float64{0, mult, 50, 0, 50, 0, 50, 0, 0, 50, 0}
		assert.InDeltaSlice(t, want, perTick, 1e-9)

		total := 0.0
		for _, d := range perTick {
			total += d
		}
		assert.InDelta(t, 0.5*(mult*2+4*100), total, 1e-9)
	}
}

func TestRunAggregatesBreakdown(t *testing.T) {
	sim := fixture(200)

	r := sim.Run()

	assert.Equal(t, 11, r.Ticks)
	assert.Equal(t, 11*tick, r.Duration)
	assert.InDelta(t, 400.0, r.TotalDamage, 1e-9)
	assert.InDelta(t, 400.0/2.2, r.TotalDPS, 1e-9)

	na := r.Kind(combat.NormalAttack)
	assert.Equal(t, 4, na.Casts)
	assert.InDelta(t, 50.0, na.MinDamage, 1e-9)
	skill := r.Kind(combat.PressSkill)
	assert.Equal(t, 1, skill.Casts)
	assert.Equal(t, 2, skill.Hits)
	assert.Equal(t, 1, r.Members[0].Actions[combat.PressSkill])
	assert.Equal(t, 1, r.Members[0].Actions[combat.NormalAttack])

	again := sim.Run()
	assert.InDelta(t, r.TotalDamage, again.TotalDamage, 1e-9)

	var buf bytes.Buffer
	again.PrintResults(&buf)
	assert.Contains(t, buf.String(), "Total Damage: 400")
	assert.Contains(t, buf.String(), "press_skill")
}

func TestVaporizeOnPreappliedHydro(t *testing.T) {
	m := member("Tester", combat.Pyro, ability.Bundle{Skill: pressSkill(0, combat.Pyro, 200, 1, 0)})
	enemy := combat.NewEnemy(90, 0, 0)
	enemy.SetInitialAura(combat.NewGauge(combat.Hydro, combat.DecayA))
	sim := engine.NewSimulator([]engine.Member{m}, enemy, engine.SimulationConfig{Duration: time.Second, Tick: tick}, nil)

	sim.Step()
	got := sim.Step()

	assert.InDelta(t, 200*0.5*1.5, got, 1e-9)
	assert.Equal(t, 1, sim.Result().Reactions[combat.Vaporize])
}

func TestDecideScanOrder(t *testing.T) {
	t.Run("support members win ties from the back", func(t *testing.T) {
		party := []engine.Member{
			member("A", combat.Pyro, ability.Bundle{Skill: pressSkill(0, combat.Pyro, 100, 1, 0)}),
			member("B", combat.Hydro, ability.Bundle{Skill: pressSkill(1, combat.Hydro, 100, 1, 0)}),
			member("C", combat.Cryo, ability.Bundle{Skill: pressSkill(2, combat.Cryo, 100, 1, 0)}),
		}
		sim := engine.NewSimulator(party, combat.NewEnemy(90, 0, 0), engine.SimulationConfig{Duration: time.Second, Tick: tick}, nil)

		sim.Step()
		assert.Equal(t, combat.AttackEvent{Kind: combat.PressSkill, Owner: 2}, sim.Winner())
		sim.Step()
		assert.Equal(t, combat.AttackEvent{Kind: combat.PressSkill, Owner: 1}, sim.Winner())
		sim.Step()
		assert.Equal(t, combat.AttackEvent{Kind: combat.PressSkill, Owner: 0}, sim.Winner())
		sim.Step()
		assert.Equal(t, combat.StandStillEvent, sim.Winner())
	})

	t.Run("priority beats scan order", func(t *testing.T) {
		burster := member("A", combat.Pyro, ability.Bundle{
			Burst: kit.NewBurst(0, 15*time.Second, combat.NewAttack(combat.Burst, combat.NewGauge(combat.Pyro, combat.DecayB), 300, 1, 0)),
		})
		burster.Data.Record.EnergyCost = 40
		burster.Data.Record.InitialEnergy = 40
		party := []engine.Member{
			burster,
			member("B", combat.Hydro, ability.Bundle{Skill: pressSkill(1, combat.Hydro, 100, 1, 0)}),
		}
		sim := engine.NewSimulator(party, combat.NewEnemy(90, 0, 0), engine.SimulationConfig{Duration: time.Second, Tick: tick}, nil)

		sim.Step()
		assert.Equal(t, combat.AttackEvent{Kind: combat.Burst, Owner: 0}, sim.Winner())
		assert.InDelta(t, 0.0, sim.State(0).Energy, 1e-9)

		sim.Step()
		assert.Equal(t, combat.AttackEvent{Kind: combat.PressSkill, Owner: 1}, sim.Winner())
	})
}

func TestParticlesChargeEveryone(t *testing.T) {
	a := member("A", combat.Pyro, ability.Bundle{Skill: pressSkill(0, combat.Pyro, 100, 1, 3)})
	a.Data.Record.EnergyCost = 60
	b := member("B", combat.Hydro, ability.Bundle{})
	b.Data.Record.EnergyCost = 60
	b.Data.Record.Bonus.EnergyRecharge = 100
	sim := engine.NewSimulator([]engine.Member{a, b}, combat.NewEnemy(90, 0, 0), engine.SimulationConfig{Duration: time.Second, Tick: tick}, nil)

	sim.Step()
	require.InDelta(t, 0.0, sim.State(0).Energy, 1e-9)
	sim.Step()

	assert.InDelta(t, 3*engine.ParticleSameOnField, sim.State(0).Energy, 1e-9)
	assert.InDelta(t, 3*engine.ParticleOtherOffField*2, sim.State(1).Energy, 1e-9)

	sim.Step()
	assert.InDelta(t, 9.0, sim.State(0).Energy, 1e-9)
}

func TestParticleYield(t *testing.T) {
	tests := []struct {
		name    string
		element combat.Element
		onField bool
		want    float64
	}{
		{"same on field", combat.Pyro, true, 3},
		{"same off field", combat.Pyro, false, 1.8},
		{"neutral on field", combat.Physical, true, 2},
		{"neutral off field", combat.Physical, false, 1.2},
		{"other on field", combat.Hydro, true, 1},
		{"other off field", combat.Hydro, false, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, engine.ParticleYield(combat.Pyro, tt.element, tt.onField), 1e-9)
		})
	}
}

func TestSimulationConfigTicks(t *testing.T) {
	assert.Equal(t, 100, engine.SimulationConfig{Duration: 20 * time.Second, Tick: tick}.Ticks())
	assert.Equal(t, 2, engine.SimulationConfig{Duration: 300 * time.Millisecond, Tick: tick}.Ticks())
	assert.Equal(t, 0, engine.SimulationConfig{Duration: time.Second}.Ticks())
}
