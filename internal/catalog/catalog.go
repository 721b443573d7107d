// Package catalog names the effect kinds a data-driven kit may attach to a
// character and the slot each one belongs to.
package catalog

import (
	"sort"
	"strings"
)

type Slot string

const (
	SlotPassive  Slot = "passive"
	SlotWeapon   Slot = "weapon"
	SlotArtifact Slot = "artifact"
)

const (
	EffectStackingBuff = "stacking_buff"
	EffectInfusion     = "infusion"

	EffectProcWeapon    = "proc_weapon"
	EffectCooldownReset = "cooldown_reset"
	EffectStatStick     = "stat_stick"

	EffectTeamBuff = "team_buff"
	EffectShred    = "shred"
	EffectSetBonus = "set_bonus"
)

// effectSlots lists the slots each effect may be worn in. Stacking buffs
// come from talents as often as from weapons.
var effectSlots = map[string][]Slot{
	EffectStackingBuff: {SlotPassive, SlotWeapon},
	EffectInfusion:     {SlotPassive},

	EffectProcWeapon:    {SlotWeapon},
	EffectCooldownReset: {SlotWeapon},
	EffectStatStick:     {SlotWeapon},

	EffectTeamBuff: {SlotArtifact},
	EffectShred:    {SlotArtifact},
	EffectSetBonus: {SlotArtifact},
}

// Defaults used when a kit leaves a field unset.
const (
	StackingBuffDurationSec = 6.0
	StackingBuffCooldownSec = 0.3
	StackingBuffMaxStacks   = 4

	InfusionDurationSec = 10.0

	ProcWeaponCooldownSec = 10.0
	ProcWeaponMultiplier  = 240.0

	CooldownResetIntervalSec = 16.0

	TeamBuffATKPercent  = 20.0
	TeamBuffDurationSec = 12.0

	ShredMagnitude   = 40.0
	ShredDurationSec = 10.0

	ChargeStaminaCost = 20.0
)

// Normalize returns the canonical lowercase snake_case effect name.
func Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(n, "-", "_")
}

// SlotsOf returns the slots the effect may be worn in and whether it is known.
func SlotsOf(name string) ([]Slot, bool) {
	s, ok := effectSlots[name]
	return s, ok
}

// Allowed reports whether the effect may be worn in slot.
func Allowed(name string, slot Slot) bool {
	for _, s := range effectSlots[name] {
		if s == slot {
			return true
		}
	}
	return false
}

// IsKnown returns true if the effect identifier is recognized.
func IsKnown(name string) bool {
	_, ok := effectSlots[name]
	return ok
}

// EffectsFor lists the effects allowed in slot, sorted.
func EffectsFor(slot Slot) []string {
	var out []string
	for name := range effectSlots {
		if Allowed(name, slot) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
