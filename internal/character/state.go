package character

import (
	"fmt"

	"github.com/ryotaok/dos-sub000/internal/combat"
)

// StackedBuff marks team-wide bonuses that must apply at most once per tick
// no matter how many party members carry the source.
type StackedBuff uint8

const (
	StackTeamATK StackedBuff = 1 << iota
)

// Has reports whether every bit of b is set.
func (s StackedBuff) Has(b StackedBuff) bool { return s&b == b }

// State is an additive bonus set. Percent fields hold whole percents
// (20 means +20%). The engine rebuilds it from zero every tick.
type State struct {
	BaseATK float64
	BaseDEF float64
	BaseHP  float64

	ATK        float64
	ATKPercent float64
	DEF        float64
	DEFPercent float64
	HP         float64
	HPPercent  float64

	CritRate float64
	CritDMG  float64

	ElementDMG [combat.ElementCount]float64
	AllDMG     float64
	NormalDMG  float64
	ChargeDMG  float64
	SkillDMG   float64
	BurstDMG   float64

	EnergyRecharge   float64
	Energy           float64
	ElementalMastery float64

	TransformativeBonus float64
	AmplifyingBonus     float64

	Infusion bool
	Stacked  StackedBuff
}

// Merge adds o into s.
func (s *State) Merge(o *State) {
	if o == nil {
		return
	}
	s.BaseATK += o.BaseATK
	s.BaseDEF += o.BaseDEF
	s.BaseHP += o.BaseHP
	s.ATK += o.ATK
	s.ATKPercent += o.ATKPercent
	s.DEF += o.DEF
	s.DEFPercent += o.DEFPercent
	s.HP += o.HP
	s.HPPercent += o.HPPercent
	s.CritRate += o.CritRate
	s.CritDMG += o.CritDMG
	for i := range s.ElementDMG {
		s.ElementDMG[i] += o.ElementDMG[i]
	}
	s.AllDMG += o.AllDMG
	s.NormalDMG += o.NormalDMG
	s.ChargeDMG += o.ChargeDMG
	s.SkillDMG += o.SkillDMG
	s.BurstDMG += o.BurstDMG
	s.EnergyRecharge += o.EnergyRecharge
	s.Energy += o.Energy
	s.ElementalMastery += o.ElementalMastery
	s.TransformativeBonus += o.TransformativeBonus
	s.AmplifyingBonus += o.AmplifyingBonus
	s.Infusion = s.Infusion || o.Infusion
	s.Stacked |= o.Stacked
}

// TotalATK returns effective attack.
func (s *State) TotalATK() float64 {
	return s.BaseATK*(1+s.ATKPercent/100) + s.ATK
}

// TotalDEF returns effective defense.
func (s *State) TotalDEF() float64 {
	return s.BaseDEF*(1+s.DEFPercent/100) + s.DEF
}

// TotalHP returns effective max HP.
func (s *State) TotalHP() float64 {
	return s.BaseHP*(1+s.HPPercent/100) + s.HP
}

// CritMultiplier returns the expected crit factor, 1 + rate * damage.
func (s *State) CritMultiplier() float64 {
	rate := s.CritRate
	if rate < 0 {
		rate = 0
	}
	if rate > 100 {
		rate = 100
	}
	return 1 + rate/100*s.CritDMG/100
}

// KindDMG returns the category damage bonus for kind.
func (s *State) KindDMG(kind combat.AttackKind) float64 {
	switch kind {
	case combat.NormalAttack:
		return s.NormalDMG
	case combat.ChargeAttack:
		return s.ChargeDMG
	case combat.PressSkill, combat.HoldSkill, combat.SkillDot:
		return s.SkillDMG
	case combat.Burst, combat.BurstDot:
		return s.BurstDMG
	case combat.Additional, combat.StandStill:
		return 0
	}
	panic(fmt.Sprintf("character: no damage bonus category for %s", kind))
}

// DamageBonus returns the damage multiplier a applies with this state.
func (s *State) DamageBonus(a *combat.Attack) float64 {
	return 1 + (s.AllDMG+s.ElementDMG[a.Element()]+s.KindDMG(a.Kind))/100
}
