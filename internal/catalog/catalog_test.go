package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotsOf(t *testing.T) {
	tests := []struct {
		raw   string
		slots []Slot
		ok    bool
	}{
		{"stacking_buff", []Slot{SlotPassive, SlotWeapon}, true},
		{" Proc-Weapon ", []Slot{SlotWeapon}, true},
		{"TEAM_BUFF", []Slot{SlotArtifact}, true},
		{"heating_up", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			slots, ok := SlotsOf(Normalize(tt.raw))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.slots, slots)
		})
	}
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed(EffectStackingBuff, SlotPassive))
	assert.True(t, Allowed(EffectStackingBuff, SlotWeapon))
	assert.False(t, Allowed(EffectStackingBuff, SlotArtifact))
	assert.False(t, Allowed(EffectInfusion, SlotWeapon))
	assert.False(t, Allowed("mystery", SlotPassive))
}

func TestEffectsFor(t *testing.T) {
	assert.Equal(t, []string{EffectCooldownReset, EffectProcWeapon, EffectStackingBuff, EffectStatStick}, EffectsFor(SlotWeapon))
	assert.Equal(t, []string{EffectInfusion, EffectStackingBuff}, EffectsFor(SlotPassive))
	assert.True(t, IsKnown(EffectShred))
	assert.False(t, IsKnown("shred "))
}
