package engine

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/ryotaok/dos-sub000/internal/combat"
	"github.com/ryotaok/dos-sub000/internal/damage"
)

// AttackStats keeps per-kind performance details
type AttackStats struct {
	Casts     int
	Hits      int
	Damage    float64
	MinDamage float64
	MaxDamage float64
}

func newAttackStats() *AttackStats {
	return &AttackStats{
		MinDamage: math.MaxFloat64,
	}
}

func (s *AttackStats) record(hits int, dmg float64) {
	s.Casts++
	s.Hits += hits
	s.Damage += dmg
	if dmg < s.MinDamage {
		s.MinDamage = dmg
	}
	if dmg > s.MaxDamage {
		s.MaxDamage = dmg
	}
}

func (s *AttackStats) add(other *AttackStats) {
	s.Casts += other.Casts
	s.Hits += other.Hits
	s.Damage += other.Damage
	if other.Casts > 0 {
		if other.MinDamage < s.MinDamage {
			s.MinDamage = other.MinDamage
		}
		if other.MaxDamage > s.MaxDamage {
			s.MaxDamage = other.MaxDamage
		}
	}
}

// MemberResult is one member's share of a run.
type MemberResult struct {
	Name      string
	Damage    float64
	Actions   map[combat.AttackKind]int
	Breakdown map[combat.AttackKind]*AttackStats
}

// SimulationResult holds results from simulation
type SimulationResult struct {
	TotalDPS    float64
	TotalDamage float64
	Duration    time.Duration
	Ticks       int

	Members   []*MemberResult
	Reactions map[combat.ReactionKind]int
}

func newSimulationResult(members []Member) *SimulationResult {
	r := &SimulationResult{
		Members:   make([]*MemberResult, len(members)),
		Reactions: make(map[combat.ReactionKind]int),
	}
	for i, m := range members {
		r.Members[i] = &MemberResult{
			Name:      m.Data.Record.Name,
			Actions:   make(map[combat.AttackKind]int),
			Breakdown: make(map[combat.AttackKind]*AttackStats),
		}
	}
	return r
}

func (r *SimulationResult) recordAction(ev combat.AttackEvent) {
	r.Members[ev.Owner].Actions[ev.Kind]++
}

func (r *SimulationResult) recordAttack(a *combat.Attack, res damage.Result) {
	m := r.Members[a.Owner]
	stats, ok := m.Breakdown[a.Kind]
	if !ok {
		stats = newAttackStats()
		m.Breakdown[a.Kind] = stats
	}
	stats.record(a.Hits, res.Damage)
	m.Damage += res.Damage
	r.TotalDamage += res.Damage
	for _, kind := range res.Reactions {
		r.Reactions[kind]++
	}
}

// Kind sums the stats of kind across the party.
func (r *SimulationResult) Kind(kind combat.AttackKind) AttackStats {
	total := *newAttackStats()
	for _, m := range r.Members {
		if s, ok := m.Breakdown[kind]; ok {
			total.add(s)
		}
	}
	if total.Casts == 0 {
		total.MinDamage = 0
	}
	return total
}

// PrintResults outputs simulation results
func (r *SimulationResult) PrintResults(w io.Writer) {
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "Simulation Results")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Duration: %.1fs (%d ticks)\n", r.Duration.Seconds(), r.Ticks)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total DPS: %.2f\n", r.TotalDPS)
	fmt.Fprintf(w, "Total Damage: %.0f\n", r.TotalDamage)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Attack Breakdown:")
	fmt.Fprintln(w, "--------------------------------------------------------------------------------")
	fmt.Fprintf(w, "%-12s | %-11s | %6s | %6s | %12s | %6s | %8s | %8s\n",
		"Member", "Kind", "Casts", "Hits", "Damage", "Share", "Min", "Max")
	fmt.Fprintln(w, "--------------------------------------------------------------------------------")
	type row struct {
		member string
		kind   combat.AttackKind
		stats  *AttackStats
	}
	var rows []row
	for _, m := range r.Members {
		for kind, stats := range m.Breakdown {
			if stats.Casts > 0 {
				rows = append(rows, row{member: m.Name, kind: kind, stats: stats})
			}
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		di := rows[i].stats.Damage
		dj := rows[j].stats.Damage
		if di == dj {
			if rows[i].member == rows[j].member {
				return rows[i].kind < rows[j].kind
			}
			return rows[i].member < rows[j].member
		}
		return di > dj
	})
	for _, row := range rows {
		share := 0.0
		if r.TotalDamage > 0 {
			share = row.stats.Damage / r.TotalDamage * 100.0
		}
		fmt.Fprintf(w, "%-12s | %-11s | %6d | %6d | %12.0f | %5.1f%% | %8.0f | %8.0f\n",
			row.member, row.kind, row.stats.Casts, row.stats.Hits, row.stats.Damage, share, row.stats.MinDamage, row.stats.MaxDamage)
	}
	fmt.Fprintln(w, "--------------------------------------------------------------------------------")

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Members:")
	fmt.Fprintln(w, "----------------------------------------")
	for _, m := range r.Members {
		dps := 0.0
		if secs := r.Duration.Seconds(); secs > 0 {
			dps = m.Damage / secs
		}
		fmt.Fprintf(w, "%-12s %12.0f dmg  %10.2f dps  skill %d  burst %d\n", m.Name, m.Damage, dps,
			m.Actions[combat.PressSkill]+m.Actions[combat.HoldSkill], m.Actions[combat.Burst])
	}

	if len(r.Reactions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Reactions:")
		fmt.Fprintln(w, "----------------------------------------")
		kinds := make([]combat.ReactionKind, 0, len(r.Reactions))
		for k := range r.Reactions {
			kinds = append(kinds, k)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
		for _, k := range kinds {
			fmt.Fprintf(w, "%-16s %d\n", k.String()+":", r.Reactions[k])
		}
	}
	fmt.Fprintln(w, "========================================")
}
