package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ryotaok/dos-sub000/internal/catalog"
	"github.com/ryotaok/dos-sub000/internal/combat"
)

// MaxPartySize is the largest roster a run accepts.
const MaxPartySize = 4

func (cfg *Config) validate() error {
	if err := cfg.Simulation.validate(); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	if err := cfg.Enemy.validate(); err != nil {
		return fmt.Errorf("enemy: %w", err)
	}
	if len(cfg.Party) == 0 {
		return errors.New("party: at least one member is required")
	}
	if len(cfg.Party) > MaxPartySize {
		return fmt.Errorf("party: %d members exceed limit of %d", len(cfg.Party), MaxPartySize)
	}
	seen := map[string]struct{}{}
	for i := range cfg.Party {
		m := &cfg.Party[i]
		if err := m.validate(); err != nil {
			return fmt.Errorf("party[%d] %s: %w", i, m.Name, err)
		}
		key := strings.ToLower(m.Name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("party[%d]: member '%s' listed more than once", i, m.Name)
		}
		seen[key] = struct{}{}
	}
	if err := cfg.Sweep.validate(); err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	return nil
}

func (s *Simulation) validate() error {
	if s.TickSeconds <= 0 {
		return fmt.Errorf("tick_seconds must be positive, got %g", s.TickSeconds)
	}
	if s.DurationSeconds < s.TickSeconds {
		return fmt.Errorf("duration_seconds %g is shorter than one tick", s.DurationSeconds)
	}
	return nil
}

func (e *Enemy) validate() error {
	if e.Level <= 0 {
		return fmt.Errorf("level must be positive, got %d", e.Level)
	}
	if e.Aura == nil {
		return nil
	}
	if _, err := combat.ParseElement(e.Aura.Element); err != nil {
		return fmt.Errorf("aura: %w", err)
	}
	if _, err := combat.ParseDecayClass(e.Aura.Decay); err != nil {
		return fmt.Errorf("aura: %w", err)
	}
	return nil
}

func (m *Member) validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("name is required")
	}
	if _, err := combat.ParseElement(m.Element); err != nil {
		return err
	}
	if m.Level <= 0 {
		return fmt.Errorf("level must be positive, got %d", m.Level)
	}
	if m.EnergyCost < 0 {
		return fmt.Errorf("energy_cost must not be negative, got %g", m.EnergyCost)
	}
	for kind := range m.Talent {
		if _, err := combat.ParseAttackKind(kind); err != nil {
			return fmt.Errorf("talent: %w", err)
		}
	}
	if err := m.Bonus.validate(); err != nil {
		return fmt.Errorf("bonus: %w", err)
	}
	if err := m.Kit.validate(); err != nil {
		return fmt.Errorf("kit: %w", err)
	}
	if err := m.Weapon.validate(); err != nil {
		return fmt.Errorf("weapon: %w", err)
	}
	if err := m.Artifact.validate(); err != nil {
		return fmt.Errorf("artifact: %w", err)
	}
	return nil
}

func (s *Stats) validate() error {
	for el := range s.ElementDMG {
		if _, err := combat.ParseElement(el); err != nil {
			return fmt.Errorf("element_dmg: %w", err)
		}
	}
	return nil
}

func (h *Hit) validate() error {
	if _, err := combat.ParseElement(h.Element); err != nil {
		return err
	}
	if _, err := combat.ParseDecayClass(h.Decay); err != nil {
		return err
	}
	return nil
}

func (k *Kit) validate() error {
	if na := k.NormalAttack; na != nil {
		if err := na.Hit.validate(); err != nil {
			return fmt.Errorf("normal_attack: %w", err)
		}
		if len(na.Stages) == 0 {
			return errors.New("normal_attack: at least one stage is required")
		}
		if len(na.Multipliers) != len(na.Stages) {
			return fmt.Errorf("normal_attack: %d multipliers for %d stages", len(na.Multipliers), len(na.Stages))
		}
		if err := positive("normal_attack: stages", na.Stages...); err != nil {
			return err
		}
	}
	if ca := k.ChargeAttack; ca != nil {
		if err := ca.Hit.validate(); err != nil {
			return fmt.Errorf("charge_attack: %w", err)
		}
		if err := positive("charge_attack: motion_seconds", ca.MotionSeconds); err != nil {
			return err
		}
		if ca.Stamina < 0 {
			return fmt.Errorf("charge_attack: stamina must not be negative, got %g", ca.Stamina)
		}
	}
	if sk := k.Skill; sk != nil {
		if err := sk.Hit.validate(); err != nil {
			return fmt.Errorf("skill: %w", err)
		}
		if err := positive("skill: cooldown_seconds", sk.CooldownSeconds); err != nil {
			return err
		}
		if err := sk.Dot.validate(); err != nil {
			return fmt.Errorf("skill: %w", err)
		}
	}
	if b := k.Burst; b != nil {
		if err := b.Hit.validate(); err != nil {
			return fmt.Errorf("burst: %w", err)
		}
		if err := positive("burst: cooldown_seconds", b.CooldownSeconds); err != nil {
			return err
		}
		if err := b.Dot.validate(); err != nil {
			return fmt.Errorf("burst: %w", err)
		}
	}
	return validateEffect(k.Passive, catalog.SlotPassive)
}

func (d *Dot) validate() error {
	if d == nil {
		return nil
	}
	if d.Count <= 0 {
		return fmt.Errorf("dot: count must be positive, got %d", d.Count)
	}
	return positive("dot: interval_seconds", d.IntervalSeconds)
}

func (w *Weapon) validate() error {
	if w.BaseATK < 0 {
		return fmt.Errorf("base_atk must not be negative, got %g", w.BaseATK)
	}
	if err := w.Bonus.validate(); err != nil {
		return err
	}
	return validateEffect(w.Effect, catalog.SlotWeapon)
}

func (a *Artifact) validate() error {
	if err := a.Bonus.validate(); err != nil {
		return err
	}
	return validateEffect(a.Effect, catalog.SlotArtifact)
}

func (s *Sweep) validate() error {
	if s.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", s.Workers)
	}
	for i := range s.Weapons {
		if err := s.Weapons[i].validate(); err != nil {
			return fmt.Errorf("weapons[%d] %s: %w", i, s.Weapons[i].Name, err)
		}
	}
	for i := range s.Artifacts {
		if err := s.Artifacts[i].validate(); err != nil {
			return fmt.Errorf("artifacts[%d] %s: %w", i, s.Artifacts[i].Set, err)
		}
	}
	return nil
}

// validateEffect normalizes the effect kind in place and checks that it
// belongs in slot.
func validateEffect(e *Effect, slot catalog.Slot) error {
	if e == nil {
		return nil
	}
	raw := e.Kind
	e.Kind = catalog.Normalize(e.Kind)
	slots, ok := catalog.SlotsOf(e.Kind)
	if !ok {
		return fmt.Errorf("unknown effect '%s'", raw)
	}
	if !catalog.Allowed(e.Kind, slot) {
		return fmt.Errorf("effect '%s' is a %s effect but listed under %s", e.Kind, joinSlots(slots), slot)
	}
	if e.Trigger != "" {
		if _, err := combat.ParseAttackKind(e.Trigger); err != nil {
			return fmt.Errorf("effect '%s': trigger: %w", e.Kind, err)
		}
	}
	for _, k := range e.Kinds {
		if _, err := combat.ParseAttackKind(k); err != nil {
			return fmt.Errorf("effect '%s': kinds: %w", e.Kind, err)
		}
	}
	if _, err := combat.ParseElement(e.Element); err != nil {
		return fmt.Errorf("effect '%s': %w", e.Kind, err)
	}
	return e.Stats.validate()
}

func joinSlots(slots []catalog.Slot) string {
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = string(s)
	}
	return strings.Join(names, "/")
}

func positive(field string, values ...float64) error {
	for _, v := range values {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %g", field, v)
		}
	}
	return nil
}
