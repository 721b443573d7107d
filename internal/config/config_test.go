package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryotaok/dos-sub000/internal/catalog"
)

const minimal = `
party:
  - name: Amber
    element: pyro
    level: 90
    base_atk: 223
    energy_cost: 40
    kit:
      normal_attack:
        stages: [0.5, 0.5]
        multipliers: [70, 80]
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimal))
	require.NoError(t, err)

	assert.Equal(t, 20*time.Second, cfg.Simulation.Duration())
	assert.Equal(t, 200*time.Millisecond, cfg.Simulation.Tick())
	assert.Equal(t, 90, cfg.Enemy.Level)
	assert.InDelta(t, 10.0, cfg.Enemy.ElementRes, 1e-9)
	require.Len(t, cfg.Party, 1)
	assert.InDelta(t, 40.0, cfg.Party[0].Energy(), 1e-9)
	assert.Equal(t, []float64{70, 80}, cfg.Party[0].Kit.NormalAttack.Multipliers)
}

func TestParseFullMember(t *testing.T) {
	data := `
simulation:
  duration_seconds: 30
  tick_seconds: 0.1
enemy:
  level: 100
  aura: {element: hydro, decay: 2U}
party:
  - name: Xiangling
    element: pyro
    level: 90
    base_atk: 225
    energy_cost: 80
    initial_energy: 0
    talent: {burst_dot: 1.1}
    bonus:
      crit_rate: 5
      crit_dmg: 50
      element_dmg: {pyro: 46.6}
    kit:
      skill:
        element: pyro
        cooldown_seconds: 12
        multiplier: 200
        particles: 4
        dot: {interval_seconds: 1.5, count: 4, multiplier: 111}
      burst: {element: pyro, cooldown_seconds: 20, multiplier: 72}
      passive: {kind: Stacking-Buff, trigger: normal}
    weapon:
      name: The Catch
      base_atk: 510
      effect: {kind: proc_weapon, kinds: [burst, burst_dot]}
    artifact:
      set: Emblem
      effect: {kind: team_buff}
`
	cfg, err := Parse([]byte(data))
	require.NoError(t, err)

	m := cfg.Party[0]
	assert.InDelta(t, 0.0, m.Energy(), 1e-9)
	assert.Equal(t, catalog.EffectStackingBuff, m.Kit.Passive.Kind)
	assert.Equal(t, "2U", cfg.Enemy.Aura.Decay)
	assert.InDelta(t, 46.6, m.Bonus.ElementDMG["pyro"], 1e-9)
	assert.Equal(t, 4, m.Kit.Skill.Dot.Count)
	assert.Equal(t, 100*time.Millisecond, cfg.Simulation.Tick())
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"empty party", "simulation: {tick_seconds: 0.2}", "at least one member"},
		{"zero tick", "simulation: {tick_seconds: 0}\n" + minimal, "tick_seconds must be positive"},
		{"unknown element", `
party:
  - {name: A, element: quantum, level: 90}
`, "unknown element"},
		{"duplicate member", `
party:
  - {name: A, element: pyro, level: 90}
  - {name: a, element: hydro, level: 90}
`, "listed more than once"},
		{"effect in wrong slot", `
party:
  - name: A
    element: pyro
    level: 90
    weapon: {name: W, effect: {kind: team_buff}}
`, "is a artifact effect but listed under weapon"},
		{"stacking buff under artifact", `
party:
  - name: A
    element: pyro
    level: 90
    artifact: {set: S, effect: {kind: stacking_buff}}
`, "is a passive/weapon effect but listed under artifact"},
		{"unknown effect", `
party:
  - name: A
    element: pyro
    level: 90
    kit: {passive: {kind: heating_up}}
`, "unknown effect 'heating_up'"},
		{"mismatched multipliers", `
party:
  - name: A
    element: pyro
    level: 90
    kit: {normal_attack: {stages: [0.5], multipliers: [1, 2]}}
`, "2 multipliers for 1 stages"},
		{"bad talent kind", `
party:
  - {name: A, element: pyro, level: 90, talent: {kick: 2}}
`, "unknown attack kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "party.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Amber", cfg.Party[0].Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load("../../configs/example.yaml")
	require.NoError(t, err)

	require.Len(t, cfg.Party, 3)
	require.NotNil(t, cfg.Party[0].Weapon.Effect)
	assert.Equal(t, catalog.EffectStackingBuff, cfg.Party[0].Weapon.Effect.Kind)
	assert.Equal(t, catalog.EffectStackingBuff, cfg.Sweep.Weapons[0].Effect.Kind)
	assert.Len(t, cfg.Sweep.Artifacts, 2)
}
