// Package sweep runs every weapon and artifact candidate of the on-field
// member as an independent simulation on a fixed pool of workers.
package sweep

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/ryotaok/dos-sub000/internal/config"
	"github.com/ryotaok/dos-sub000/internal/kit"
)

// Candidate is one weapon and artifact pairing for party slot 0.
type Candidate struct {
	Index    int
	Weapon   config.Weapon
	Artifact config.Artifact
}

// Result is the outcome of one candidate.
type Result struct {
	Weapon      string
	Artifact    string
	DPS         float64
	MemberDPS   float64
	TotalDamage float64
}

// Candidates enumerates weapon × artifact for the on-field member. An empty
// list falls back to what the member already wears.
func Candidates(cfg *config.Config) ([]Candidate, error) {
	if len(cfg.Party) == 0 {
		return nil, errors.New("sweep needs at least one party member")
	}
	weapons := cfg.Sweep.Weapons
	if len(weapons) == 0 {
		weapons = []config.Weapon{cfg.Party[0].Weapon}
	}
	artifacts := cfg.Sweep.Artifacts
	if len(artifacts) == 0 {
		artifacts = []config.Artifact{cfg.Party[0].Artifact}
	}

	out := make([]Candidate, 0, len(weapons)*len(artifacts))
	for _, w := range weapons {
		for _, a := range artifacts {
			out = append(out, Candidate{Index: len(out), Weapon: w, Artifact: a})
		}
	}
	return out, nil
}

// Run simulates every candidate and returns the results by descending DPS.
// The first failing candidate cancels the ones not yet started.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	candidates, err := Candidates(cfg)
	if err != nil {
		return nil, err
	}
	workers := cfg.Sweep.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan Result)
	collected := make([]Result, 0, len(candidates))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for r := range results {
			collected = append(collected, r)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, c := range candidates {
		if gctx.Err() != nil {
			break
		}
		c := c
		g.Go(func() error {
			r, err := simulate(cfg, c)
			if err != nil {
				return fmt.Errorf("candidate %d (%s / %s): %w", c.Index, c.Weapon.Name, c.Artifact.Set, err)
			}
			logger.Debug("candidate done", "weapon", r.Weapon, "artifact", r.Artifact, "dps", r.DPS)
			select {
			case results <- r:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	err = g.Wait()
	close(results)
	<-done
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(collected, func(i, j int) bool {
		if collected[i].DPS != collected[j].DPS {
			return collected[i].DPS > collected[j].DPS
		}
		if collected[i].Weapon != collected[j].Weapon {
			return collected[i].Weapon < collected[j].Weapon
		}
		return collected[i].Artifact < collected[j].Artifact
	})
	logger.Info("sweep complete", "candidates", len(collected), "workers", workers)
	return collected, nil
}

// simulate builds a private roster for c. Nothing it builds is shared with
// other candidates; the config itself is only read.
func simulate(cfg *config.Config, c Candidate) (Result, error) {
	run := *cfg
	run.Party = append([]config.Member(nil), cfg.Party...)
	run.Party[0].Weapon = c.Weapon
	run.Party[0].Artifact = c.Artifact

	sim, err := kit.Simulator(&run, nil)
	if err != nil {
		return Result{}, err
	}
	res := sim.Run()

	r := Result{
		Weapon:      c.Weapon.Name,
		Artifact:    c.Artifact.Set,
		DPS:         res.TotalDPS,
		TotalDamage: res.TotalDamage,
	}
	if secs := res.Duration.Seconds(); secs > 0 {
		r.MemberDPS = res.Members[0].Damage / secs
	}
	return r, nil
}

// WriteCSV writes results with a header row, keeping their order.
func WriteCSV(w io.Writer, results []Result) error {
	writer := csv.NewWriter(w)
	header := []string{"rank", "weapon", "artifact", "dps", "member_dps", "total_damage"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, r := range results {
		record := []string{
			strconv.Itoa(i + 1),
			r.Weapon,
			r.Artifact,
			fmt.Sprintf("%.4f", r.DPS),
			fmt.Sprintf("%.4f", r.MemberDPS),
			fmt.Sprintf("%.2f", r.TotalDamage),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
