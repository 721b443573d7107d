package character

import "github.com/ryotaok/dos-sub000/internal/combat"

// Record is the static description of a character.
type Record struct {
	Name    string
	Element combat.Element
	Level   int

	BaseATK float64
	BaseDEF float64
	BaseHP  float64

	EnergyCost    float64
	InitialEnergy float64

	// Talent scales every attack of a kind, e.g. a talent level above the
	// one the multipliers were written for.
	Talent map[combat.AttackKind]float64

	// Bonus holds ascension stats and base crit.
	Bonus State
}

// TalentMultiplier returns the talent scale of kind, 1 when unset.
func (r *Record) TalentMultiplier(kind combat.AttackKind) float64 {
	if r == nil || r.Talent == nil {
		return 1
	}
	if m, ok := r.Talent[kind]; ok && m > 0 {
		return m
	}
	return 1
}

// WeaponRecord is the static description of a weapon.
type WeaponRecord struct {
	Name    string
	BaseATK float64
	Bonus   State
}

// ArtifactRecord is the static description of an artifact loadout: its set
// name and the summed main and sub stats.
type ArtifactRecord struct {
	Set   string
	Bonus State
}

// Data is what ability modules see of their owner on a tick.
type Data struct {
	Index    int
	Record   *Record
	Weapon   *WeaponRecord
	Artifact *ArtifactRecord

	// State is this tick's state; the engine swaps it every tick.
	State *State
}

// OnField reports whether the owner is the active character.
func (d *Data) OnField() bool { return d.Index == 0 }

// Static merges the record, weapon and artifact bonuses into one state.
func (d *Data) Static() State {
	var s State
	if d.Record != nil {
		s.BaseATK += d.Record.BaseATK
		s.BaseDEF += d.Record.BaseDEF
		s.BaseHP += d.Record.BaseHP
		s.Merge(&d.Record.Bonus)
	}
	if d.Weapon != nil {
		s.BaseATK += d.Weapon.BaseATK
		s.Merge(&d.Weapon.Bonus)
	}
	if d.Artifact != nil {
		s.Merge(&d.Artifact.Bonus)
	}
	return s
}
