package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ryotaok/dos-sub000/internal/config"
	"github.com/ryotaok/dos-sub000/internal/kit"
)

func main() {
	configPath := flag.String("config", "configs/example.yaml", "Path to simulation config")
	combatLog := flag.Bool("log", false, "Print the combat log (overrides simulation.log)")
	duration := flag.Float64("duration", 0, "Fight duration in seconds (0 = use config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *duration > 0 {
		cfg.Simulation.DurationSeconds = *duration
	}

	level := slog.LevelInfo
	if *combatLog || cfg.Simulation.Log {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	sim, err := kit.Simulator(cfg, logger)
	if err != nil {
		slog.Error("failed to build party", "error", err)
		os.Exit(1)
	}

	fmt.Println("Party:")
	for _, m := range sim.Members {
		rec := m.Data.Record
		fmt.Printf("  %-12s %-8s lv %d  energy %.0f/%.0f\n", rec.Name, rec.Element, rec.Level, rec.InitialEnergy, rec.EnergyCost)
	}
	fmt.Printf("Enemy: level %d, physical res %.0f%%, elemental res %.0f%%\n",
		sim.Enemy.Level, sim.Enemy.BasePhysicalRes, sim.Enemy.BaseElementRes)
	fmt.Println()

	slog.Info("running simulation", "duration", sim.SimConfig.Duration, "tick", sim.SimConfig.Tick)
	result := sim.Run()
	result.PrintResults(os.Stdout)
}
