package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ryotaok/dos-sub000/internal/config"
	"github.com/ryotaok/dos-sub000/internal/kit"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/example.yaml", "Path to simulation config")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	configPath = filepath.Clean(configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("config invalid", "error", err)
		os.Exit(1)
	}

	// Building catches what field checks cannot, such as an unusable sweep candidate.
	if _, err := kit.Party(cfg); err != nil {
		slog.Error("party invalid", "error", err)
		os.Exit(1)
	}
	for i := range cfg.Sweep.Weapons {
		if _, err := kit.Effect(cfg.Sweep.Weapons[i].Effect, 0); err != nil {
			slog.Error("sweep weapon invalid", "weapon", cfg.Sweep.Weapons[i].Name, "error", err)
			os.Exit(1)
		}
	}
	for i := range cfg.Sweep.Artifacts {
		if _, err := kit.Effect(cfg.Sweep.Artifacts[i].Effect, 0); err != nil {
			slog.Error("sweep artifact invalid", "artifact", cfg.Sweep.Artifacts[i].Set, "error", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Config validated successfully: %d members, %d sweep candidates (source: %s)\n",
		len(cfg.Party), max(1, len(cfg.Sweep.Weapons))*max(1, len(cfg.Sweep.Artifacts)), configPath)
}
