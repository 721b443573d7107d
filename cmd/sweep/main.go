package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/ryotaok/dos-sub000/internal/config"
	"github.com/ryotaok/dos-sub000/internal/sweep"
)

func main() {
	configPath := flag.String("config", "configs/example.yaml", "Path to simulation config")
	workers := flag.Int("workers", 0, "Concurrent simulations (0 = use config)")
	outputPath := flag.String("output", "output/sweep.csv", "CSV output path")
	top := flag.Int("top", 10, "Rows to print (0 = all)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(*configPath, *workers, *outputPath, *top); err != nil {
		slog.Error("sweep failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, workers int, outputPath string, top int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if workers > 0 {
		cfg.Sweep.Workers = workers
	}

	results, err := sweep.Run(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", outputPath, err)
	}
	defer file.Close()
	if err := sweep.WriteCSV(file, results); err != nil {
		return err
	}

	fmt.Printf("Sweep for %s (%d candidates)\n\n", cfg.Party[0].Name, len(results))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Rank\tWeapon\tArtifact\tDPS\tMember DPS\n")
	for i, r := range results {
		if top > 0 && i >= top {
			break
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%.2f\n", i+1, r.Weapon, r.Artifact, r.DPS, r.MemberDPS)
	}
	w.Flush()
	fmt.Printf("\noutput=%s\n", outputPath)
	return nil
}
