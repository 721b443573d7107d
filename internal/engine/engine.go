package engine

import (
	"context"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/ryotaok/dos-sub000/internal/ability"
	"github.com/ryotaok/dos-sub000/internal/character"
	"github.com/ryotaok/dos-sub000/internal/combat"
	"github.com/ryotaok/dos-sub000/internal/damage"
)

// SimulationConfig holds simulation parameters
type SimulationConfig struct {
	Duration time.Duration // Fight duration
	Tick     time.Duration // Length of one step
}

// Ticks returns how many steps Run takes.
func (c SimulationConfig) Ticks() int {
	if c.Tick <= 0 {
		return 0
	}
	return int(math.Ceil(float64(c.Duration) / float64(c.Tick)))
}

// Member is one roster slot. Index 0 is on field.
type Member struct {
	Data      *character.Data
	Abilities ability.Bundle
}

// Energy a particle gives on and off field.
const (
	ParticleSameOnField     = 3.0
	ParticleSameOffField    = 1.8
	ParticleNeutralOnField  = 2.0
	ParticleNeutralOffField = 1.2
	ParticleOtherOnField    = 1.0
	ParticleOtherOffField   = 0.6
)

// ParticleYield returns the energy one particle of element gives a
// character of own element before energy recharge.
func ParticleYield(own, element combat.Element, onField bool) float64 {
	switch {
	case element == combat.Physical:
		if onField {
			return ParticleNeutralOnField
		}
		return ParticleNeutralOffField
	case element == own:
		if onField {
			return ParticleSameOnField
		}
		return ParticleSameOffField
	default:
		if onField {
			return ParticleOtherOnField
		}
		return ParticleOtherOffField
	}
}

// Simulator runs the tick loop for one roster against one enemy. It is not
// safe for concurrent use; run independent rosters on separate simulators.
type Simulator struct {
	SimConfig SimulationConfig
	Members   []Member
	Enemy     *combat.Enemy

	logger *slog.Logger

	static    []character.State
	states    []character.State
	scratch   []character.State
	energy    []float64
	icd       []combat.ICDTable
	attacks   *combat.AttackQueue
	particles combat.ParticleQueue
	winner    combat.AttackEvent
	now       time.Duration
	result    *SimulationResult
}

// NewSimulator creates a new simulator. A nil logger disables the combat log.
func NewSimulator(members []Member, enemy *combat.Enemy, simCfg SimulationConfig, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	n := len(members)
	s := &Simulator{
		SimConfig: simCfg,
		Members:   members,
		Enemy:     enemy,
		logger:    logger,
		static:    make([]character.State, n),
		states:    make([]character.State, n),
		scratch:   make([]character.State, n),
		energy:    make([]float64, n),
		icd:       make([]combat.ICDTable, n),
		attacks:   combat.NewAttackQueue(n),
	}
	for i := range members {
		members[i].Data.Index = i
		s.static[i] = members[i].Data.Static()
		members[i].Data.State = &s.states[i]
	}
	s.Reset()
	return s
}

// Reset returns the roster, the enemy and the result to their starting state.
func (s *Simulator) Reset() {
	s.now = 0
	s.winner = combat.StandStillEvent
	s.attacks.Reset()
	s.particles.Reset()
	s.Enemy.Reset()
	for i := range s.Members {
		s.Members[i].Abilities.Reset()
		s.icd[i].Reset()
		s.energy[i] = s.Members[i].Data.Record.InitialEnergy
		s.states[i] = s.static[i]
		s.states[i].Energy = s.energy[i]
	}
	s.result = newSimulationResult(s.Members)
}

// Now returns the simulated time at the end of the last step.
func (s *Simulator) Now() time.Duration { return s.now }

// Winner returns the event chosen on the last step.
func (s *Simulator) Winner() combat.AttackEvent { return s.winner }

// State returns member i's state as of the last step.
func (s *Simulator) State(i int) character.State { return s.states[i] }

// Result returns what has been recorded since the last Reset.
func (s *Simulator) Result() *SimulationResult { return s.result }

// Run resets the simulator, steps through the configured duration and
// returns the aggregated result.
func (s *Simulator) Run() *SimulationResult {
	s.Reset()
	ticks := s.SimConfig.Ticks()
	s.logger.Debug("combat log start", "duration", s.SimConfig.Duration, "tick", s.SimConfig.Tick, "members", len(s.Members))
	for i := 0; i < ticks; i++ {
		s.Step()
	}
	s.result.Ticks = ticks
	s.result.Duration = time.Duration(ticks) * s.SimConfig.Tick
	if secs := s.result.Duration.Seconds(); secs > 0 {
		s.result.TotalDPS = s.result.TotalDamage / secs
	}
	return s.result
}

// Step advances one tick and returns the damage dealt on it.
func (s *Simulator) Step() float64 {
	dt := s.SimConfig.Tick
	s.now += dt

	s.winner = s.decide()
	if s.winner.Kind != combat.StandStill {
		s.result.recordAction(s.winner)
		s.logAt(s.now, "event", "event", s.winner.Kind.String(), "member", s.name(s.winner.Owner))
	}

	s.attacks.Reset()
	for i := range s.Members {
		m := &s.Members[i]
		m.Abilities.AdditionalAttack(s.attacks, &s.particles, m.Data)
	}

	for i := range s.Members {
		m := &s.Members[i]
		m.Abilities.Update(dt, ability.NewGuard(s.winner, i), m.Data, s.attacks, &s.particles, s.Enemy)
		s.icd[i].Advance(dt)
	}

	s.recompute()

	for i := range s.Members {
		s.Members[i].Abilities.Accelerate()
	}

	total := 0.0
	for _, a := range s.attacks.Flatten() {
		total += s.price(a)
	}

	s.particles.Reset()
	s.Enemy.Advance(dt)
	return total
}

// decide scans support members from the back, then the on-field member, and
// keeps the first event of the highest priority.
func (s *Simulator) decide() combat.AttackEvent {
	winner := combat.StandStillEvent
	best := 0
	for _, i := range scanOrder(len(s.Members)) {
		m := &s.Members[i]
		ev, ok := m.Abilities.MaybeAttack(m.Data)
		if !ok {
			continue
		}
		if p := ev.Kind.Priority(); p > best {
			winner = ev
			best = p
		}
	}
	return winner
}

func scanOrder(n int) []int {
	order := make([]int, 0, n)
	for i := n - 1; i >= 1; i-- {
		order = append(order, i)
	}
	if n > 0 {
		order = append(order, 0)
	}
	return order
}

// recompute rebuilds every state from zero: buffs, then gear, then energy.
func (s *Simulator) recompute() {
	fresh := s.scratch
	for i := range fresh {
		fresh[i] = character.State{}
	}
	for i := range s.Members {
		m := &s.Members[i]
		m.Abilities.Modify(fresh, m.Data, s.Enemy)
	}

	for i := range s.Members {
		rec := s.Members[i].Data.Record
		st := &fresh[i]
		st.Merge(&s.static[i])

		energy := s.energy[i] + st.Energy
		recharge := 1 + st.EnergyRecharge/100
		for _, p := range s.particles {
			energy += p.Count * ParticleYield(rec.Element, p.Element, i == 0) * recharge
		}
		if rec.EnergyCost > 0 && energy > rec.EnergyCost {
			energy = rec.EnergyCost
		}
		if s.winner.Kind == combat.Burst && s.winner.Owner == i {
			energy -= rec.EnergyCost
			s.logAt(s.now, "burst", "member", rec.Name, "energy", energy)
		}
		st.Energy = energy
		s.energy[i] = energy
	}
	copy(s.states, fresh)
}

// price runs one queued attack through the damage pipeline.
func (s *Simulator) price(a *combat.Attack) float64 {
	m := &s.Members[a.Owner]
	st := s.states[a.Owner]
	if extra, ok := m.Abilities.Intensify(a); ok {
		st.Merge(&extra)
	}
	out := damage.Outgoing(a, &st, m.Data.Record)
	res := damage.Incoming(a, out, &st, m.Data.Record.Level, s.Enemy, s.icd[a.Owner].Gate(a.ICD))
	s.result.recordAttack(a, res)

	s.logAt(s.now, "attack", "member", m.Data.Record.Name, "kind", a.Kind.String(),
		"element", a.Element().String(), "hits", a.Hits, "damage", res.Damage)
	for _, r := range res.Reactions {
		s.logAt(s.now, "reaction", "member", m.Data.Record.Name, "reaction", r.String())
	}
	return res.Damage
}

func (s *Simulator) name(i int) string {
	if i < 0 || i >= len(s.Members) {
		return ""
	}
	return s.Members[i].Data.Record.Name
}

func (s *Simulator) logAt(timeStamp time.Duration, msg string, args ...any) {
	if !s.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	ts := timeStamp.Round(time.Millisecond).Seconds()
	s.logger.Debug(msg, append([]any{"t", ts}, args...)...)
}
