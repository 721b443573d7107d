package kit

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/ryotaok/dos-sub000/internal/ability"
	"github.com/ryotaok/dos-sub000/internal/catalog"
	"github.com/ryotaok/dos-sub000/internal/character"
	"github.com/ryotaok/dos-sub000/internal/combat"
	"github.com/ryotaok/dos-sub000/internal/config"
	"github.com/ryotaok/dos-sub000/internal/engine"
)

// Simulator builds a ready simulator for cfg.
func Simulator(cfg *config.Config, logger *slog.Logger) (*engine.Simulator, error) {
	party, err := Party(cfg)
	if err != nil {
		return nil, err
	}
	enemy, err := Enemy(cfg.Enemy)
	if err != nil {
		return nil, err
	}
	simCfg := engine.SimulationConfig{
		Duration: cfg.Simulation.Duration(),
		Tick:     cfg.Simulation.Tick(),
	}
	return engine.NewSimulator(party, enemy, simCfg, logger), nil
}

// Party builds every member of cfg in roster order.
func Party(cfg *config.Config) ([]engine.Member, error) {
	out := make([]engine.Member, 0, len(cfg.Party))
	for i := range cfg.Party {
		m, err := Member(&cfg.Party[i], i)
		if err != nil {
			return nil, fmt.Errorf("party[%d] %s: %w", i, cfg.Party[i].Name, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// Enemy builds the target from cfg.
func Enemy(cfg config.Enemy) (*combat.Enemy, error) {
	e := combat.NewEnemy(cfg.Level, cfg.PhysicalRes, cfg.ElementRes)
	if cfg.Aura == nil {
		return e, nil
	}
	g, err := gaugeOf(config.Hit{Element: cfg.Aura.Element, Decay: cfg.Aura.Decay}, combat.Physical)
	if err != nil {
		return nil, fmt.Errorf("enemy aura: %w", err)
	}
	e.SetInitialAura(g)
	return e, nil
}

// Member builds the records and ability bundle of party slot index.
func Member(m *config.Member, index int) (engine.Member, error) {
	element, err := combat.ParseElement(m.Element)
	if err != nil {
		return engine.Member{}, err
	}
	bonus, err := State(m.Bonus)
	if err != nil {
		return engine.Member{}, fmt.Errorf("bonus: %w", err)
	}
	rec := &character.Record{
		Name:          m.Name,
		Element:       element,
		Level:         m.Level,
		BaseATK:       m.BaseATK,
		BaseDEF:       m.BaseDEF,
		BaseHP:        m.BaseHP,
		EnergyCost:    m.EnergyCost,
		InitialEnergy: m.Energy(),
		Bonus:         bonus,
	}
	if len(m.Talent) > 0 {
		rec.Talent = make(map[combat.AttackKind]float64, len(m.Talent))
		for name, v := range m.Talent {
			kind, err := combat.ParseAttackKind(name)
			if err != nil {
				return engine.Member{}, fmt.Errorf("talent: %w", err)
			}
			rec.Talent[kind] = v
		}
	}

	weaponBonus, err := State(m.Weapon.Bonus)
	if err != nil {
		return engine.Member{}, fmt.Errorf("weapon: %w", err)
	}
	artifactBonus, err := State(m.Artifact.Bonus)
	if err != nil {
		return engine.Member{}, fmt.Errorf("artifact: %w", err)
	}
	data := &character.Data{
		Index:    index,
		Record:   rec,
		Weapon:   &character.WeaponRecord{Name: m.Weapon.Name, BaseATK: m.Weapon.BaseATK, Bonus: weaponBonus},
		Artifact: &character.ArtifactRecord{Set: m.Artifact.Set, Bonus: artifactBonus},
	}

	b, err := bundle(m, index, element)
	if err != nil {
		return engine.Member{}, err
	}
	return engine.Member{Data: data, Abilities: b}, nil
}

func bundle(m *config.Member, owner int, element combat.Element) (ability.Bundle, error) {
	var b ability.Bundle
	k := m.Kit

	if na := k.NormalAttack; na != nil {
		g, err := gaugeOf(na.Hit, combat.Physical)
		if err != nil {
			return b, fmt.Errorf("normal_attack: %w", err)
		}
		stages := make([]time.Duration, len(na.Stages))
		for i, s := range na.Stages {
			stages[i] = seconds(s)
		}
		b.NormalAttack = NewNormalAttack(owner, stages, na.Multipliers, g)
	}

	if ca := k.ChargeAttack; ca != nil {
		g, err := gaugeOf(ca.Hit, combat.Physical)
		if err != nil {
			return b, fmt.Errorf("charge_attack: %w", err)
		}
		cost := ca.Stamina
		if cost == 0 {
			cost = catalog.ChargeStaminaCost
		}
		a := combat.NewAttack(combat.ChargeAttack, g, ca.Multiplier, ca.Hits, owner)
		b.ChargeAttack = NewChargeAttack(owner, seconds(ca.MotionSeconds), cost, a)
	}

	if sk := k.Skill; sk != nil {
		g, err := gaugeOf(sk.Hit, element)
		if err != nil {
			return b, fmt.Errorf("skill: %w", err)
		}
		kind := combat.PressSkill
		if sk.Hold {
			kind = combat.HoldSkill
		}
		s := NewSkill(owner, kind, seconds(sk.CooldownSeconds), combat.NewAttack(kind, g, sk.Multiplier, sk.Hits, owner), sk.Particles)
		if d := sk.Dot; d != nil {
			s.WithDot(seconds(d.IntervalSeconds), d.Count, combat.NewAttack(combat.SkillDot, g, d.Multiplier, 1, owner))
		}
		b.Skill = s
	}

	if bu := k.Burst; bu != nil {
		g, err := gaugeOf(bu.Hit, element)
		if err != nil {
			return b, fmt.Errorf("burst: %w", err)
		}
		burst := NewBurst(owner, seconds(bu.CooldownSeconds), combat.NewAttack(combat.Burst, g, bu.Multiplier, bu.Hits, owner))
		if d := bu.Dot; d != nil {
			burst.WithDot(seconds(d.IntervalSeconds), d.Count, combat.NewAttack(combat.BurstDot, g, d.Multiplier, 1, owner))
		}
		b.Burst = burst
	}

	var err error
	if b.Passive, err = Effect(k.Passive, owner); err != nil {
		return b, fmt.Errorf("passive: %w", err)
	}
	if b.Weapon, err = Effect(m.Weapon.Effect, owner); err != nil {
		return b, fmt.Errorf("weapon: %w", err)
	}
	if b.Artifact, err = Effect(m.Artifact.Effect, owner); err != nil {
		return b, fmt.Errorf("artifact: %w", err)
	}
	return b, nil
}

// Effect builds the catalog effect e for owner. A nil e yields a nil module.
func Effect(e *config.Effect, owner int) (ability.Ability, error) {
	if e == nil {
		return nil, nil
	}
	stats, err := State(e.Stats)
	if err != nil {
		return nil, err
	}
	duration, cooldown := e.DurationSeconds, e.CooldownSeconds

	switch name := catalog.Normalize(e.Kind); name {
	case catalog.EffectStackingBuff:
		trigger, err := kindOr(e.Trigger, combat.NormalAttack)
		if err != nil {
			return nil, err
		}
		stacks := e.MaxStacks
		if stacks == 0 {
			stacks = catalog.StackingBuffMaxStacks
		}
		return NewStackingBuff(owner, trigger,
			seconds(orDefault(duration, catalog.StackingBuffDurationSec)),
			seconds(orDefault(cooldown, catalog.StackingBuffCooldownSec)),
			stacks, stats), nil

	case catalog.EffectInfusion:
		return NewInfusion(owner, seconds(orDefault(duration, catalog.InfusionDurationSec))), nil

	case catalog.EffectProcWeapon:
		kinds := make([]combat.AttackKind, 0, len(e.Kinds))
		for _, raw := range e.Kinds {
			k, err := combat.ParseAttackKind(raw)
			if err != nil {
				return nil, err
			}
			kinds = append(kinds, k)
		}
		element, err := combat.ParseElement(e.Element)
		if err != nil {
			return nil, err
		}
		proc := combat.NewAttack(combat.Additional, combat.NewGauge(element, combat.DecayA), orDefault(e.Multiplier, catalog.ProcWeaponMultiplier), 1, owner)
		return NewProcWeapon(owner, kinds, seconds(orDefault(cooldown, catalog.ProcWeaponCooldownSec)), proc, stats), nil

	case catalog.EffectCooldownReset:
		return NewCooldownReset(seconds(orDefault(cooldown, catalog.CooldownResetIntervalSec))), nil

	case catalog.EffectStatStick:
		return StatStick{}, nil

	case catalog.EffectTeamBuff:
		atk := stats.ATKPercent
		if atk == 0 {
			atk = catalog.TeamBuffATKPercent
		}
		return NewTeamBuff(seconds(orDefault(duration, catalog.TeamBuffDurationSec)), atk), nil

	case catalog.EffectShred:
		return NewShred(seconds(orDefault(duration, catalog.ShredDurationSec)), orDefault(e.Magnitude, catalog.ShredMagnitude)), nil

	case catalog.EffectSetBonus:
		return SetBonus{}, nil

	default:
		return nil, fmt.Errorf("unknown effect '%s'", e.Kind)
	}
}

// State converts a config stat block.
func State(s config.Stats) (character.State, error) {
	st := character.State{
		ATK:                 s.ATK,
		ATKPercent:          s.ATKPercent,
		DEF:                 s.DEF,
		DEFPercent:          s.DEFPercent,
		HP:                  s.HP,
		HPPercent:           s.HPPercent,
		CritRate:            s.CritRate,
		CritDMG:             s.CritDMG,
		AllDMG:              s.AllDMG,
		NormalDMG:           s.NormalDMG,
		ChargeDMG:           s.ChargeDMG,
		SkillDMG:            s.SkillDMG,
		BurstDMG:            s.BurstDMG,
		EnergyRecharge:      s.EnergyRecharge,
		ElementalMastery:    s.ElementalMastery,
		TransformativeBonus: s.TransformativeBonus,
		AmplifyingBonus:     s.AmplifyingBonus,
	}
	for name, v := range s.ElementDMG {
		el, err := combat.ParseElement(name)
		if err != nil {
			return st, fmt.Errorf("element_dmg: %w", err)
		}
		st.ElementDMG[el] += v
	}
	return st, nil
}

func gaugeOf(h config.Hit, fallback combat.Element) (combat.ElementalGauge, error) {
	element := fallback
	if strings.TrimSpace(h.Element) != "" {
		el, err := combat.ParseElement(h.Element)
		if err != nil {
			return combat.ElementalGauge{}, err
		}
		element = el
	}
	decay, err := combat.ParseDecayClass(h.Decay)
	if err != nil {
		return combat.ElementalGauge{}, err
	}
	return combat.NewGauge(element, decay), nil
}

func kindOr(name string, fallback combat.AttackKind) (combat.AttackKind, error) {
	if strings.TrimSpace(name) == "" {
		return fallback, nil
	}
	return combat.ParseAttackKind(name)
}

func orDefault(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
