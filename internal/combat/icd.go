package combat

import "time"

const (
	// ICDWindow is how long a gate keeps counting after its first counted hit.
	ICDWindow = 2500 * time.Millisecond
	// ICDHitCycle is the hit count at which the counter wraps to zero.
	ICDHitCycle = 3
)

// ICDGate throttles how often hits of one attack category may apply their
// element.
type ICDGate struct {
	accumulated time.Duration
	hits        int
	counting    bool
}

// Clear reports whether the next hit may apply its element: either the
// window is idle or the hit counter has wrapped back to zero. Hits landing
// in the same tick count one by one, so only every third of them is clear.
func (g *ICDGate) Clear() bool {
	return !g.counting || g.hits == 0
}

// CountHit records a hit and starts the window.
func (g *ICDGate) CountHit() {
	g.counting = true
	g.hits = (g.hits + 1) % ICDHitCycle
}

// Advance runs the window; once it reaches ICDWindow the gate resets.
func (g *ICDGate) Advance(elapsed time.Duration) {
	if !g.counting {
		return
	}
	g.accumulated += elapsed
	if g.accumulated >= ICDWindow {
		g.Reset()
	}
}

// Reset returns the gate to its idle state.
func (g *ICDGate) Reset() {
	g.accumulated = 0
	g.hits = 0
	g.counting = false
}

// Hits returns the current position in the hit cycle.
func (g *ICDGate) Hits() int { return g.hits }

// ICDSlot selects one of a character's gates.
type ICDSlot int

const (
	ICDNormal ICDSlot = iota
	ICDCharge
	ICDSkill
	ICDBurst

	ICDSlotCount

	// ICDNone marks attacks that never apply an element through a gate.
	ICDNone ICDSlot = -1
)

// ICDTable holds one gate per category for one character. Every attack of a
// category shares the same gate.
type ICDTable [ICDSlotCount]ICDGate

// Gate returns the gate for slot, or nil for ICDNone.
func (t *ICDTable) Gate(slot ICDSlot) *ICDGate {
	if slot < 0 || slot >= ICDSlotCount {
		return nil
	}
	return &t[slot]
}

// Advance moves every gate once.
func (t *ICDTable) Advance(elapsed time.Duration) {
	for i := range t {
		t[i].Advance(elapsed)
	}
}

// Reset resets every gate.
func (t *ICDTable) Reset() {
	for i := range t {
		t[i].Reset()
	}
}
