package combat

import "fmt"

// ReactionKind is the outcome of an element meeting an aura.
type ReactionKind int

const (
	Neutralize ReactionKind = iota
	Equalize
	Overloaded
	Shatter
	ElectroCharged
	Swirl
	Superconduct
	Vaporize
	Melt
	Burn
	Freeze
	Crystallize

	ReactionCount
)

var reactionNames = [ReactionCount]string{
	Neutralize:     "neutralize",
	Equalize:       "equalize",
	Overloaded:     "overloaded",
	Shatter:        "shatter",
	ElectroCharged: "electro_charged",
	Swirl:          "swirl",
	Superconduct:   "superconduct",
	Vaporize:       "vaporize",
	Melt:           "melt",
	Burn:           "burn",
	Freeze:         "freeze",
	Crystallize:    "crystallize",
}

func (k ReactionKind) String() string {
	if k < 0 || k >= ReactionCount {
		return fmt.Sprintf("reaction(%d)", int(k))
	}
	return reactionNames[k]
}

// Transformative reports whether the reaction adds a flat, level-scaled term.
func (k ReactionKind) Transformative() bool {
	switch k {
	case Overloaded, Shatter, ElectroCharged, Swirl, Superconduct:
		return true
	}
	return false
}

// Amplifying reports whether the reaction multiplies the triggering hit.
func (k ReactionKind) Amplifying() bool {
	return k == Vaporize || k == Melt
}

// Reaction is one row of the reaction table.
type Reaction struct {
	Kind ReactionKind
	// Modifier scales the incoming units added to the aura intensity.
	Modifier float64
	// Multiplier is the amplifying multiplier or the transformative constant.
	Multiplier float64
}

// Superconduct debuff applied to physical resistance.
const (
	SuperconductSource   = "superconduct"
	SuperconductShred    = 40.0
	SuperconductDuration = 12 // seconds
)

var (
	neutralize = Reaction{Kind: Neutralize}
	equalize   = Reaction{Kind: Equalize, Modifier: 1}
)

// LookupReaction resolves what happens when incoming hits an enemy carrying
// aura. frozen is checked first so blunt hits shatter.
func LookupReaction(aura, incoming Element, frozen bool) Reaction {
	if frozen && (incoming == Physical || incoming == Geo) {
		return Reaction{Kind: Shatter, Modifier: -1, Multiplier: 3.0}
	}
	if incoming == Physical {
		return neutralize
	}
	if aura == Physical {
		if incoming.appliesAura() {
			return equalize
		}
		return neutralize
	}
	if aura == incoming {
		return equalize
	}

	switch incoming {
	case Anemo:
		if aura == Dendro {
			return neutralize
		}
		return Reaction{Kind: Swirl, Modifier: -0.5, Multiplier: 1.2}
	case Geo:
		if aura == Dendro {
			return neutralize
		}
		return Reaction{Kind: Crystallize, Modifier: -0.5}
	}

	switch pair(aura, incoming) {
	case pair(Pyro, Hydro):
		return Reaction{Kind: Vaporize, Modifier: -2, Multiplier: 2.0}
	case pair(Hydro, Pyro):
		return Reaction{Kind: Vaporize, Modifier: -0.5, Multiplier: 1.5}
	case pair(Cryo, Pyro):
		return Reaction{Kind: Melt, Modifier: -2, Multiplier: 2.0}
	case pair(Pyro, Cryo):
		return Reaction{Kind: Melt, Modifier: -0.5, Multiplier: 1.5}
	case pair(Pyro, Electro), pair(Electro, Pyro):
		return Reaction{Kind: Overloaded, Modifier: -1, Multiplier: 4.0}
	case pair(Cryo, Electro), pair(Electro, Cryo):
		return Reaction{Kind: Superconduct, Modifier: -1, Multiplier: 1.0}
	case pair(Hydro, Electro), pair(Electro, Hydro):
		return Reaction{Kind: ElectroCharged, Modifier: -0.4, Multiplier: 2.4}
	case pair(Hydro, Cryo), pair(Cryo, Hydro):
		return Reaction{Kind: Freeze, Modifier: -1}
	case pair(Dendro, Pyro), pair(Pyro, Dendro):
		return Reaction{Kind: Burn, Modifier: -0.5}
	case pair(Dendro, Hydro), pair(Dendro, Electro), pair(Dendro, Cryo),
		pair(Hydro, Dendro), pair(Electro, Dendro), pair(Cryo, Dendro):
		return neutralize
	}
	panic(fmt.Sprintf("combat: no reaction for %s on %s", incoming, aura))
}

func pair(aura, incoming Element) int {
	return int(aura)*int(ElementCount) + int(incoming)
}
