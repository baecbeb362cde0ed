// Package config loads the palletizer's persisted settings from a TOML
// file, following the same "load-or-default, create parent dirs on save"
// shape the CLI tooling this project grew from uses for its own app
// config, with JSON swapped for TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/palletopt/palletizer/internal/batch"
	"github.com/palletopt/palletizer/internal/ga"
	"github.com/palletopt/palletizer/internal/model"
)

// Config holds every tunable the CLI and batch driver need: pallet
// extents, GA parameters, worker pool bounds, the base seed, and default
// output paths.
type Config struct {
	PalletLength float64 `toml:"pallet_length"`
	PalletWidth  float64 `toml:"pallet_width"`
	PalletHeight float64 `toml:"pallet_height"`

	PopulationSize  int     `toml:"population_size"`
	Mu              int     `toml:"mu"`
	Lambda          int     `toml:"lambda"`
	CrossoverProb   float64 `toml:"crossover_prob"`
	MaxGenerations  int     `toml:"max_generations"`
	StagnationLimit int     `toml:"stagnation_limit"`

	WorkerDegree   int `toml:"worker_degree"`
	BaseMaxPallets int `toml:"base_max_pallets"`

	BaseSeed int64 `toml:"base_seed"`

	SummaryPath     string `toml:"summary_path"`
	DetailPath      string `toml:"detail_path"`
	PlacementsPath  string `toml:"placements_path"`
	PlacementsColor bool   `toml:"placements_color"`
}

// Default returns the built-in defaults, matching spec.md's fixed GA
// parameters and the default Euro pallet.
func Default() Config {
	return Config{
		PalletLength: model.DefaultPalletLength,
		PalletWidth:  model.DefaultPalletWidth,
		PalletHeight: model.DefaultPalletHeight,

		PopulationSize:  100,
		Mu:              15,
		Lambda:          30,
		CrossoverProb:   0.7,
		MaxGenerations:  30,
		StagnationLimit: 8,

		WorkerDegree:   4,
		BaseMaxPallets: 5,

		BaseSeed: 42,

		SummaryPath:    "summary.csv",
		DetailPath:     "detail.csv",
		PlacementsPath: "item_placements.csv",
	}
}

// DefaultDir returns ~/.palletizer, falling back to "." if the home
// directory cannot be determined.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".palletizer")
}

// DefaultPath returns ~/.palletizer/config.toml.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.toml")
}

// Load reads a Config from path. If the file does not exist, it returns
// Default() with no error, matching the teacher's load-or-default
// behavior.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// Save persists cfg to path as TOML, creating parent directories as
// needed.
func Save(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: create dir %s: %w", dir, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return nil
}

// GAConfig translates the persisted GA parameters into a ga.Config, with
// pallet extents filled in (MaxPallets is set per-order by the batch
// driver, not here).
func (c Config) GAConfig() ga.Config {
	return ga.Config{
		PopulationSize:  c.PopulationSize,
		Mu:              c.Mu,
		Lambda:          c.Lambda,
		CrossoverProb:   c.CrossoverProb,
		MaxGenerations:  c.MaxGenerations,
		StagnationLimit: c.StagnationLimit,
		ImproveEpsilon:  1e-4,
		PalletLength:    c.PalletLength,
		PalletWidth:     c.PalletWidth,
		PalletHeight:    c.PalletHeight,
	}
}

// BatchOptions translates the persisted worker pool and seed settings into
// batch.Options, with the GA config already wired in.
func (c Config) BatchOptions() batch.Options {
	return batch.Options{
		BaseSeed:       c.BaseSeed,
		Degree:         c.WorkerDegree,
		BaseMaxPallets: c.BaseMaxPallets,
		PalletLength:   c.PalletLength,
		PalletWidth:    c.PalletWidth,
		PalletHeight:   c.PalletHeight,
		GAConfig:       c.GAConfig(),
	}
}
