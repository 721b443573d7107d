package combat

import (
	"fmt"
	"strings"
)

// AttackKind is the category of an attack.
type AttackKind int

const (
	StandStill AttackKind = iota
	NormalAttack
	ChargeAttack
	PressSkill
	HoldSkill
	SkillDot
	Burst
	BurstDot
	Additional

	AttackKindCount
)

var attackKindNames = [AttackKindCount]string{
	StandStill:   "stand_still",
	NormalAttack: "normal",
	ChargeAttack: "charge",
	PressSkill:   "press_skill",
	HoldSkill:    "hold_skill",
	SkillDot:     "skill_dot",
	Burst:        "burst",
	BurstDot:     "burst_dot",
	Additional:   "additional",
}

func (k AttackKind) String() string {
	if k < 0 || k >= AttackKindCount {
		return fmt.Sprintf("attack(%d)", int(k))
	}
	return attackKindNames[k]
}

// ParseAttackKind resolves an attack kind name.
func ParseAttackKind(name string) (AttackKind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range attackKindNames {
		if candidate == n {
			return AttackKind(i), nil
		}
	}
	return StandStill, fmt.Errorf("unknown attack kind %q", name)
}

// Priority orders the kinds that can win a tick. Kinds that are never
// offered as an action rank zero.
func (k AttackKind) Priority() int {
	switch k {
	case Burst:
		return 5
	case HoldSkill:
		return 4
	case PressSkill:
		return 3
	case ChargeAttack:
		return 2
	case NormalAttack:
		return 1
	}
	return 0
}

// ICDSlot returns the gate shared by attacks of this kind.
func (k AttackKind) ICDSlot() ICDSlot {
	switch k {
	case NormalAttack:
		return ICDNormal
	case ChargeAttack:
		return ICDCharge
	case PressSkill, HoldSkill, SkillDot:
		return ICDSkill
	case Burst, BurstDot:
		return ICDBurst
	case Additional, StandStill:
		return ICDNone
	}
	panic(fmt.Sprintf("combat: no ICD slot for %s", k))
}

// Skill reports whether the kind belongs to the elemental skill.
func (k AttackKind) Skill() bool {
	return k == PressSkill || k == HoldSkill || k == SkillDot
}

// BurstFamily reports whether the kind belongs to the elemental burst.
func (k AttackKind) BurstFamily() bool {
	return k == Burst || k == BurstDot
}

// AttackEvent names the action taken on a tick.
type AttackEvent struct {
	Kind  AttackKind
	Owner int
}

// StandStillEvent is the winning event when nobody acts.
var StandStillEvent = AttackEvent{Kind: StandStill}

func (e AttackEvent) String() string {
	return fmt.Sprintf("%s#%d", e.Kind, e.Owner)
}

// Attack describes one queued source of damage. Ability modules build their
// attacks once and push the same value every time it lands; only Gauge
// (infusion) and Multiplier (scaling effects) change afterwards.
type Attack struct {
	Kind       AttackKind
	Gauge      ElementalGauge
	Multiplier float64 // percent of the scaling stat per hit
	Hits       int
	Owner      int
	ICD        ICDSlot
}

// NewAttack builds an attack bound to the category gate of its kind.
func NewAttack(kind AttackKind, gauge ElementalGauge, multiplier float64, hits, owner int) *Attack {
	if hits < 1 {
		hits = 1
	}
	return &Attack{
		Kind:       kind,
		Gauge:      gauge,
		Multiplier: multiplier,
		Hits:       hits,
		Owner:      owner,
		ICD:        kind.ICDSlot(),
	}
}

// Element returns the element the attack deals.
func (a *Attack) Element() Element { return a.Gauge.Element }

// Event returns the event that gates timers waiting on this attack.
func (a *Attack) Event() AttackEvent {
	return AttackEvent{Kind: a.Kind, Owner: a.Owner}
}

// Reactive reports whether hits may trigger reactions and consume ICD.
func (a *Attack) Reactive() bool {
	return a.Kind != Additional && a.ICD != ICDNone
}

// Infuse swaps the applied element.
func (a *Attack) Infuse(g ElementalGauge) { a.Gauge = g }

// AttackQueue collects the attacks landing on one tick, grouped by owner and
// kept in insertion order.
type AttackQueue struct {
	byOwner [][]*Attack
}

// NewAttackQueue returns a queue for a roster of size characters.
func NewAttackQueue(size int) *AttackQueue {
	return &AttackQueue{byOwner: make([][]*Attack, size)}
}

// Push appends a to its owner's list.
func (q *AttackQueue) Push(a *Attack) {
	if a == nil {
		return
	}
	if a.Owner < 0 || a.Owner >= len(q.byOwner) {
		panic(fmt.Sprintf("combat: attack owner %d outside roster of %d", a.Owner, len(q.byOwner)))
	}
	q.byOwner[a.Owner] = append(q.byOwner[a.Owner], a)
}

// Of returns the attacks queued by owner.
func (q *AttackQueue) Of(owner int) []*Attack {
	if owner < 0 || owner >= len(q.byOwner) {
		return nil
	}
	return q.byOwner[owner]
}

// Len returns the number of queued attacks.
func (q *AttackQueue) Len() int {
	n := 0
	for _, list := range q.byOwner {
		n += len(list)
	}
	return n
}

// Flatten lists every attack in owner order, then insertion order.
func (q *AttackQueue) Flatten() []*Attack {
	out := make([]*Attack, 0, q.Len())
	for _, list := range q.byOwner {
		out = append(out, list...)
	}
	return out
}

// Contains reports whether a is already queued.
func (q *AttackQueue) Contains(a *Attack) bool {
	for _, queued := range q.Of(a.Owner) {
		if queued == a {
			return true
		}
	}
	return false
}

// Reset empties the queue and keeps its capacity.
func (q *AttackQueue) Reset() {
	for i := range q.byOwner {
		q.byOwner[i] = q.byOwner[i][:0]
	}
}

// Particle is elemental energy produced on a tick.
type Particle struct {
	Element Element
	Count   float64
	Source  int
}

// ParticleQueue collects the particles produced on one tick.
type ParticleQueue []Particle

// Push appends a particle.
func (q *ParticleQueue) Push(p Particle) {
	if p.Count <= 0 {
		return
	}
	*q = append(*q, p)
}

// Reset empties the queue.
func (q *ParticleQueue) Reset() { *q = (*q)[:0] }
