package combat

import (
	"fmt"
	"strings"
	"time"
)

// Element is the elemental type of an aura, an attack or a particle.
// Physical doubles as "no aura".
type Element int

const (
	Physical Element = iota
	Pyro
	Hydro
	Electro
	Cryo
	Anemo
	Geo
	Dendro

	ElementCount
)

var elementNames = [ElementCount]string{
	Physical: "physical",
	Pyro:     "pyro",
	Hydro:    "hydro",
	Electro:  "electro",
	Cryo:     "cryo",
	Anemo:    "anemo",
	Geo:      "geo",
	Dendro:   "dendro",
}

func (e Element) String() string {
	if e < 0 || e >= ElementCount {
		return fmt.Sprintf("element(%d)", int(e))
	}
	return elementNames[e]
}

// ParseElement resolves a case-insensitive element name.
func ParseElement(name string) (Element, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "none" {
		return Physical, nil
	}
	for i, candidate := range elementNames {
		if candidate == n {
			return Element(i), nil
		}
	}
	return Physical, fmt.Errorf("unknown element %q", name)
}

// appliesAura reports whether the element can sit on an enemy as an aura.
func (e Element) appliesAura() bool {
	switch e {
	case Pyro, Hydro, Electro, Cryo, Dendro:
		return true
	}
	return false
}

// DecayClass is the gauge strength class of an application.
type DecayClass int

const (
	DecayA DecayClass = iota // 1U
	DecayB                   // 2U
	DecayC                   // 4U
)

// Units returns the gauge units applied by the class.
func (c DecayClass) Units() float64 {
	switch c {
	case DecayA:
		return 1
	case DecayB:
		return 2
	case DecayC:
		return 4
	}
	panic(fmt.Sprintf("combat: unknown decay class %d", int(c)))
}

// Rate returns the seconds it takes one unit of the class to decay.
func (c DecayClass) Rate() float64 {
	switch c {
	case DecayA:
		return 9.5
	case DecayB:
		return 6.0
	case DecayC:
		return 4.25
	}
	panic(fmt.Sprintf("combat: unknown decay class %d", int(c)))
}

// ParseDecayClass resolves "A", "B", "C" or the unit strings "1U", "2U", "4U".
func ParseDecayClass(name string) (DecayClass, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "A", "1U":
		return DecayA, nil
	case "B", "2U":
		return DecayB, nil
	case "C", "4U":
		return DecayC, nil
	}
	return DecayA, fmt.Errorf("unknown decay class %q", name)
}

// ElementalGauge is an element with an intensity. The enemy holds one as its
// aura; attacks hold one as the template of what a hit applies.
type ElementalGauge struct {
	Element   Element
	Intensity float64
	Decay     DecayClass
}

// NewGauge returns the template an application of element with class c applies.
func NewGauge(element Element, c DecayClass) ElementalGauge {
	g := ElementalGauge{Element: element, Decay: c}
	if element != Physical {
		g.Intensity = c.Units()
	}
	return g
}

// PhysicalGauge is the template of a hit that applies nothing.
var PhysicalGauge = ElementalGauge{Element: Physical}

// Empty reports whether no aura is present.
func (g *ElementalGauge) Empty() bool {
	return g.Element == Physical || g.Intensity <= 0
}

// Advance decays the gauge by elapsed.
func (g *ElementalGauge) Advance(elapsed time.Duration) {
	if g.Element == Physical {
		g.Intensity = 0
		return
	}
	g.Intensity -= elapsed.Seconds() / g.Decay.Rate()
	if g.Intensity <= 0 {
		g.clear()
	}
}

func (g *ElementalGauge) clear() {
	g.Element = Physical
	g.Intensity = 0
}
