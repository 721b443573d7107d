package sweep

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryotaok/dos-sub000/internal/config"
	"github.com/ryotaok/dos-sub000/internal/kit"
)

const sweepYAML = `
simulation:
  duration_seconds: 10
enemy:
  physical_res: 0
  element_res: 0
party:
  - name: Razor
    element: electro
    level: 90
    base_atk: 200
    kit:
      normal_attack: {stages: [0.4, 0.4, 0.6], multipliers: [90, 80, 100]}
      skill: {cooldown_seconds: 6, multiplier: 200, particles: 3}
  - name: Fischl
    element: electro
    level: 90
    base_atk: 240
    kit:
      skill: {cooldown_seconds: 25, multiplier: 115, dot: {interval_seconds: 1, count: 10, multiplier: 90}}
sweep:
  workers: 2
  weapons:
    - {name: Dull, base_atk: 100}
    - {name: Sharp, base_atk: 300}
  artifacts:
    - {set: Plain}
    - {set: Glad, bonus: {atk_percent: 20}}
`

func load(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(sweepYAML))
	require.NoError(t, err)
	return cfg
}

func TestCandidates(t *testing.T) {
	cfg := load(t)

	got, err := Candidates(cfg)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "Dull", got[0].Weapon.Name)
	assert.Equal(t, "Plain", got[0].Artifact.Set)
	assert.Equal(t, "Sharp", got[3].Weapon.Name)
	assert.Equal(t, "Glad", got[3].Artifact.Set)
	assert.Equal(t, 3, got[3].Index)

	cfg.Sweep.Weapons = nil
	cfg.Sweep.Artifacts = nil
	cfg.Party[0].Weapon.Name = "Worn"
	got, err = Candidates(cfg)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Worn", got[0].Weapon.Name)

	cfg.Party = nil
	_, err = Candidates(cfg)
	assert.Error(t, err)
}

func TestRunRanksByDPS(t *testing.T) {
	cfg := load(t)

	results, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "Sharp", results[0].Weapon)
	assert.Equal(t, "Glad", results[0].Artifact)
	assert.Equal(t, "Dull", results[3].Weapon)
	assert.Equal(t, "Plain", results[3].Artifact)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].DPS, results[i].DPS)
	}
	assert.Less(t, results[0].MemberDPS, results[0].DPS)

	// The best pairing run directly must match what the pool reported.
	direct := load(t)
	direct.Party[0].Weapon = direct.Sweep.Weapons[1]
	direct.Party[0].Artifact = direct.Sweep.Artifacts[1]
	sim, err := kit.Simulator(direct, nil)
	require.NoError(t, err)
	assert.InDelta(t, sim.Run().TotalDPS, results[0].DPS, 1e-9)

	// Candidates never leak into the caller's roster.
	assert.Empty(t, cfg.Party[0].Weapon.Name)
}

func TestRunIsIndependentOfWorkerCount(t *testing.T) {
	cfg := load(t)
	cfg.Sweep.Workers = 1
	serial, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)

	cfg.Sweep.Workers = 8
	parallel, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestRunReportsCandidateError(t *testing.T) {
	cfg := load(t)
	cfg.Sweep.Weapons[1].Effect = &config.Effect{Kind: "bogus"}

	_, err := Run(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown effect 'bogus'")
	assert.Contains(t, err.Error(), "Sharp")
}

func TestRunHonoursCancelledContext(t *testing.T) {
	cfg := load(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, cfg, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []Result{
		{Weapon: "Sharp", Artifact: "Glad", DPS: 12.5, MemberDPS: 10, TotalDamage: 250},
		{Weapon: "Dull, Old", Artifact: "Plain", DPS: 8, MemberDPS: 6.25, TotalDamage: 160},
	})
	require.NoError(t, err)

	want := "rank,weapon,artifact,dps,member_dps,total_damage\n" +
		"1,Sharp,Glad,12.5000,10.0000,250.00\n" +
		"2,\"Dull, Old\",Plain,8.0000,6.2500,160.00\n"
	assert.Equal(t, want, buf.String())
}
