package damage

import (
	"strings"

	"github.com/ryotaok/dos-sub000/internal/character"
	"github.com/ryotaok/dos-sub000/internal/combat"
)

// TransformativeBase is the level 90 base of transformative reaction damage.
const TransformativeBase = 725.36

// ScalingStat is the stat an attack's multiplier is a percentage of.
type ScalingStat int

const (
	ScaleATK ScalingStat = iota
	ScaleDEF
)

type scalingKey struct {
	name string
	kind combat.AttackKind
}

// Attacks that scale off DEF instead of ATK.
var defScaling = map[scalingKey]struct{}{
	{"albedo", combat.SkillDot}:   {},
	{"noelle", combat.PressSkill}: {},
	{"noelle", combat.HoldSkill}:  {},
	{"itto", combat.ChargeAttack}: {},
}

// ScalingFor returns the stat attacks of kind scale from for a character.
func ScalingFor(name string, kind combat.AttackKind) ScalingStat {
	if _, ok := defScaling[scalingKey{strings.ToLower(name), kind}]; ok {
		return ScaleDEF
	}
	return ScaleATK
}

// Outgoing prices one hit of a before the enemy is considered.
func Outgoing(a *combat.Attack, st *character.State, rec *character.Record) float64 {
	name := ""
	if rec != nil {
		name = rec.Name
	}
	stat := st.TotalATK()
	if ScalingFor(name, a.Kind) == ScaleDEF {
		stat = st.TotalDEF()
	}
	return stat * st.DamageBonus(a) * st.CritMultiplier() * rec.TalentMultiplier(a.Kind) * a.Multiplier / 100
}

// DefenseFactor is the share of damage left after enemy defense.
func DefenseFactor(charLevel, enemyLevel int, defDown float64) float64 {
	c := float64(charLevel + 100)
	e := float64(enemyLevel+100) * (1 - defDown/100)
	if e < 0 {
		e = 0
	}
	return c / (c + e)
}

// ResistanceFactor is the share of damage left after resistance res (percent).
func ResistanceFactor(res float64) float64 {
	if res < -100 {
		res = -100
	}
	switch {
	case res < 0:
		return 1 - 0.5*res/100
	case res < 75:
		return (100 - res) / 100
	default:
		return 1 / (4*res/100 + 1)
	}
}

// Amplify scales base by an amplifying reaction.
func Amplify(r combat.Reaction, base float64, st *character.State) float64 {
	em := st.ElementalMastery
	return base * r.Multiplier * (1 + 2.78*em/(1400+em) + st.AmplifyingBonus/100)
}

// Transform returns the flat damage a transformative reaction adds.
func Transform(r combat.Reaction, st *character.State) float64 {
	em := st.ElementalMastery
	return r.Multiplier * (1 + 16*em/(2000+em) + st.TransformativeBonus/100) * TransformativeBase
}

// Result is what an attack dealt on one tick.
type Result struct {
	Damage    float64
	Reactions []combat.ReactionKind
}

// Incoming applies enemy defense, resistance and reactions to every hit of
// a. Each hit asks gate whether it may apply its element; additional
// attacks skip the gate and the aura entirely.
func Incoming(a *combat.Attack, outgoing float64, st *character.State, level int, enemy *combat.Enemy, gate *combat.ICDGate) Result {
	def := DefenseFactor(level, enemy.Level, enemy.DefDown())
	res := ResistanceFactor(enemy.Resistance(a.Element()))
	base := outgoing * res * def

	var out Result
	for i := 0; i < a.Hits; i++ {
		dmg := base
		if a.Reactive() && gate != nil {
			if gate.Clear() {
				r := enemy.TriggerER(a.Gauge)
				switch {
				case r.Kind.Amplifying():
					dmg = Amplify(r, base, st)
				case r.Kind.Transformative():
					dmg = base + Transform(r, st)
				}
				if r.Kind != combat.Neutralize && r.Kind != combat.Equalize {
					out.Reactions = append(out.Reactions, r.Kind)
				}
			}
			gate.CountHit()
		}
		out.Damage += dmg
	}
	return out
}
