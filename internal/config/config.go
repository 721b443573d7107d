package config

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// Simulation holds the run length and tick size.
type Simulation struct {
	DurationSeconds float64 `yaml:"duration_seconds"`
	TickSeconds     float64 `yaml:"tick_seconds"`
	Log             bool    `yaml:"log"`
}

// Duration returns the simulated fight length.
func (s Simulation) Duration() time.Duration { return seconds(s.DurationSeconds) }

// Tick returns the tick length.
func (s Simulation) Tick() time.Duration { return seconds(s.TickSeconds) }

// Enemy describes the target dummy.
type Enemy struct {
	Level       int     `yaml:"level"`
	PhysicalRes float64 `yaml:"physical_res"`
	ElementRes  float64 `yaml:"element_res"`
	Aura        *Aura   `yaml:"aura"`
}

// Aura is an element pre-applied to the enemy.
type Aura struct {
	Element string `yaml:"element"`
	Decay   string `yaml:"decay"`
}

// Stats is an additive bonus block. Percent values are whole percents.
type Stats struct {
	ATK                 float64            `yaml:"atk"`
	ATKPercent          float64            `yaml:"atk_percent"`
	DEF                 float64            `yaml:"def"`
	DEFPercent          float64            `yaml:"def_percent"`
	HP                  float64            `yaml:"hp"`
	HPPercent           float64            `yaml:"hp_percent"`
	CritRate            float64            `yaml:"crit_rate"`
	CritDMG             float64            `yaml:"crit_dmg"`
	ElementDMG          map[string]float64 `yaml:"element_dmg"`
	AllDMG              float64            `yaml:"all_dmg"`
	NormalDMG           float64            `yaml:"normal_dmg"`
	ChargeDMG           float64            `yaml:"charge_dmg"`
	SkillDMG            float64            `yaml:"skill_dmg"`
	BurstDMG            float64            `yaml:"burst_dmg"`
	EnergyRecharge      float64            `yaml:"energy_recharge"`
	ElementalMastery    float64            `yaml:"elemental_mastery"`
	TransformativeBonus float64            `yaml:"transformative_bonus"`
	AmplifyingBonus     float64            `yaml:"amplifying_bonus"`
}

// Member is one party slot. The first member starts on field.
type Member struct {
	Name          string             `yaml:"name"`
	Element       string             `yaml:"element"`
	Level         int                `yaml:"level"`
	BaseATK       float64            `yaml:"base_atk"`
	BaseDEF       float64            `yaml:"base_def"`
	BaseHP        float64            `yaml:"base_hp"`
	EnergyCost    float64            `yaml:"energy_cost"`
	InitialEnergy *float64           `yaml:"initial_energy"`
	Talent        map[string]float64 `yaml:"talent"`
	Bonus         Stats              `yaml:"bonus"`
	Kit           Kit                `yaml:"kit"`
	Weapon        Weapon             `yaml:"weapon"`
	Artifact      Artifact           `yaml:"artifact"`
}

// Kit lists the attack modules and the passive of a member.
type Kit struct {
	NormalAttack *NormalAttack `yaml:"normal_attack"`
	ChargeAttack *ChargeAttack `yaml:"charge_attack"`
	Skill        *Skill        `yaml:"skill"`
	Burst        *Burst        `yaml:"burst"`
	Passive      *Effect       `yaml:"passive"`
}

// Hit is the element and strength an attack applies.
type Hit struct {
	Element string `yaml:"element"`
	Decay   string `yaml:"decay"`
}

// NormalAttack is a chain of hits; stage i lasts Stages[i] seconds and
// lands one hit of Multipliers[i] percent.
type NormalAttack struct {
	Hit         `yaml:",inline"`
	Stages      []float64 `yaml:"stages"`
	Multipliers []float64 `yaml:"multipliers"`
}

// ChargeAttack spends stamina on a single heavy hit.
type ChargeAttack struct {
	Hit           `yaml:",inline"`
	MotionSeconds float64 `yaml:"motion_seconds"`
	Multiplier    float64 `yaml:"multiplier"`
	Hits          int     `yaml:"hits"`
	Stamina       float64 `yaml:"stamina"`
}

// Dot is a damage-over-time follow-up.
type Dot struct {
	IntervalSeconds float64 `yaml:"interval_seconds"`
	Count           int     `yaml:"count"`
	Multiplier      float64 `yaml:"multiplier"`
}

// Skill is an elemental skill on a cooldown.
type Skill struct {
	Hit             `yaml:",inline"`
	Hold            bool    `yaml:"hold"`
	CooldownSeconds float64 `yaml:"cooldown_seconds"`
	Multiplier      float64 `yaml:"multiplier"`
	Hits            int     `yaml:"hits"`
	Particles       float64 `yaml:"particles"`
	Dot             *Dot    `yaml:"dot"`
}

// Burst is an elemental burst gated by energy and cooldown.
type Burst struct {
	Hit             `yaml:",inline"`
	CooldownSeconds float64 `yaml:"cooldown_seconds"`
	Multiplier      float64 `yaml:"multiplier"`
	Hits            int     `yaml:"hits"`
	Dot             *Dot    `yaml:"dot"`
}

// Effect configures one catalog effect. Unused fields fall back to the
// catalog defaults for that kind.
type Effect struct {
	Kind            string   `yaml:"kind"`
	Trigger         string   `yaml:"trigger"`
	Kinds           []string `yaml:"kinds"`
	Element         string   `yaml:"element"`
	Stats           Stats    `yaml:"stats"`
	DurationSeconds float64  `yaml:"duration_seconds"`
	CooldownSeconds float64  `yaml:"cooldown_seconds"`
	MaxStacks       int      `yaml:"max_stacks"`
	Multiplier      float64  `yaml:"multiplier"`
	Magnitude       float64  `yaml:"magnitude"`
}

// Weapon is a weapon record plus its effect.
type Weapon struct {
	Name    string  `yaml:"name"`
	BaseATK float64 `yaml:"base_atk"`
	Bonus   Stats   `yaml:"bonus"`
	Effect  *Effect `yaml:"effect"`
}

// Artifact is an artifact loadout plus its set effect.
type Artifact struct {
	Set    string  `yaml:"set"`
	Bonus  Stats   `yaml:"bonus"`
	Effect *Effect `yaml:"effect"`
}

// Sweep lists the candidates tried for the on-field member.
type Sweep struct {
	Workers   int        `yaml:"workers"`
	Weapons   []Weapon   `yaml:"weapons"`
	Artifacts []Artifact `yaml:"artifacts"`
}

// Config holds all configuration
type Config struct {
	Simulation Simulation `yaml:"simulation"`
	Enemy      Enemy      `yaml:"enemy"`
	Party      []Member   `yaml:"party"`
	Sweep      Sweep      `yaml:"sweep"`
}

// Default returns the settings used when a file leaves them out.
func Default() *Config {
	return &Config{
		Simulation: Simulation{
			DurationSeconds: 20,
			TickSeconds:     0.2,
		},
		Enemy: Enemy{
			Level:       90,
			PhysicalRes: 10,
			ElementRes:  10,
		},
		Sweep: Sweep{
			Workers: runtime.NumCPU(),
		},
	}
}

// Load reads a YAML file over the defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Energy returns the member's starting energy, a full bar unless set.
func (m *Member) Energy() float64 {
	if m.InitialEnergy != nil {
		return *m.InitialEnergy
	}
	return m.EnergyCost
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
