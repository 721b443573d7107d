package combat

import "time"

// Debuff is a timed reduction of an enemy value. Entries sharing a source
// never stack.
type Debuff struct {
	Source    string
	Magnitude float64
	Remaining time.Duration
}

// DebuffList is one category of enemy debuffs.
type DebuffList []Debuff

// Push adds d, replacing any entry from the same source.
func (l *DebuffList) Push(d Debuff) {
	for i := range *l {
		if (*l)[i].Source == d.Source {
			(*l)[i] = d
			return
		}
	}
	*l = append(*l, d)
}

// Sum adds up the magnitudes of active entries, counting each source once.
func (l DebuffList) Sum() float64 {
	total := 0.0
	for i, d := range l {
		if d.Remaining <= 0 || seenBefore(l[:i], d.Source) {
			continue
		}
		total += d.Magnitude
	}
	return total
}

func seenBefore(l DebuffList, source string) bool {
	for _, d := range l {
		if d.Source == source && d.Remaining > 0 {
			return true
		}
	}
	return false
}

// Active reports whether source currently has an entry.
func (l DebuffList) Active(source string) bool {
	for _, d := range l {
		if d.Source == source && d.Remaining > 0 {
			return true
		}
	}
	return false
}

// Advance counts every entry down and drops the expired ones.
func (l *DebuffList) Advance(elapsed time.Duration) {
	kept := (*l)[:0]
	for _, d := range *l {
		d.Remaining -= elapsed
		if d.Remaining > 0 {
			kept = append(kept, d)
		}
	}
	*l = kept
}

// Enemy is the single target every attack lands on.
type Enemy struct {
	Level           int
	BasePhysicalRes float64 // percent
	BaseElementRes  float64 // percent

	Aura   ElementalGauge
	Frozen bool

	PhysicalResDown DebuffList
	ElementResDown  DebuffList
	DefenseDown     DebuffList

	initialAura ElementalGauge
}

// NewEnemy returns an enemy without aura or debuffs.
func NewEnemy(level int, physicalRes, elementRes float64) *Enemy {
	return &Enemy{
		Level:           level,
		BasePhysicalRes: physicalRes,
		BaseElementRes:  elementRes,
		Aura:            PhysicalGauge,
	}
}

// SetInitialAura applies an aura that Reset restores.
func (e *Enemy) SetInitialAura(g ElementalGauge) {
	e.initialAura = g
	e.Aura = g
}

// Reset clears reactions and debuffs.
func (e *Enemy) Reset() {
	e.Aura = e.initialAura
	e.Frozen = false
	e.PhysicalResDown = e.PhysicalResDown[:0]
	e.ElementResDown = e.ElementResDown[:0]
	e.DefenseDown = e.DefenseDown[:0]
}

// PhysicalRes returns physical resistance after debuffs.
func (e *Enemy) PhysicalRes() float64 {
	return e.BasePhysicalRes - e.PhysicalResDown.Sum()
}

// ElementRes returns elemental resistance after debuffs.
func (e *Enemy) ElementRes() float64 {
	return e.BaseElementRes - e.ElementResDown.Sum()
}

// DefDown returns the total defense reduction in percent.
func (e *Enemy) DefDown() float64 {
	return e.DefenseDown.Sum()
}

// Resistance returns the resistance that applies to element.
func (e *Enemy) Resistance(element Element) float64 {
	if element == Physical {
		return e.PhysicalRes()
	}
	return e.ElementRes()
}

// TriggerER applies incoming to the aura and reports the reaction.
func (e *Enemy) TriggerER(incoming ElementalGauge) Reaction {
	aura := e.Aura.Element
	if e.Aura.Empty() {
		aura = Physical
	}
	r := LookupReaction(aura, incoming.Element, e.Frozen)
	units := incoming.Intensity

	switch r.Kind {
	case Neutralize:
		return r
	case Equalize:
		if e.Aura.Empty() {
			e.Aura = ElementalGauge{Element: incoming.Element, Intensity: units, Decay: incoming.Decay}
		} else if units > e.Aura.Intensity {
			e.Aura.Intensity = units
			e.Aura.Decay = incoming.Decay
		}
		return r
	}

	e.Aura.Intensity += r.Modifier * units

	switch r.Kind {
	case Freeze:
		e.Aura.Element = Cryo
		e.Frozen = true
	case ElectroCharged:
		if e.Aura.Intensity > 0 {
			e.Aura.Element = Hydro
		}
	case Superconduct:
		e.PhysicalResDown.Push(Debuff{
			Source:    SuperconductSource,
			Magnitude: SuperconductShred,
			Remaining: SuperconductDuration * time.Second,
		})
	case Shatter:
		e.Frozen = false
	}
	if e.Aura.Intensity <= 0 {
		e.Aura.clear()
	}
	return r
}

// Advance decays the aura and the debuffs. A frozen enemy thaws once the
// aura is gone.
func (e *Enemy) Advance(elapsed time.Duration) {
	e.Aura.Advance(elapsed)
	e.PhysicalResDown.Advance(elapsed)
	e.ElementResDown.Advance(elapsed)
	e.DefenseDown.Advance(elapsed)
	if e.Frozen && e.Aura.Empty() {
		e.Frozen = false
	}
}
