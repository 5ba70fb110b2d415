package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Tuning holds the search parameters. Adjust these to trade speed for solution quality.
type Tuning struct {
	// ShuffleStall is how many shuffles without a better score end a (re)seed.
	ShuffleStall int `json:"shuffleStall"`
	// MutationStall is how many mutations at one level run before escalating.
	MutationStall int `json:"mutationStall"`
	// MinMutation and MaxMutation bound the swap count per mutation.
	MinMutation int `json:"minMutation"`
	MaxMutation int `json:"maxMutation"`
	// LineageStall is how many non-improving phases exhaust a lineage.
	LineageStall int `json:"lineageStall"`
	// MaxRestarts caps reshuffles per slot; 0 means unlimited.
	MaxRestarts int `json:"maxRestarts"`
	// ExhaustiveLimit is the largest pyramid size Evolve enumerates in full.
	ExhaustiveLimit int `json:"exhaustiveLimit"`
}

// maxExhaustiveLimit keeps full enumeration at 10! orderings or fewer.
const maxExhaustiveLimit = 10

// Config is the full run configuration.
type Config struct {
	Base      int    `koanf:"base"`
	Height    int    `koanf:"height"`
	Workers   int    `koanf:"workers"`
	Seed      uint64 `koanf:"seed"`
	CardsFile string `koanf:"cards"`
	Verbose   bool   `koanf:"verbose"`
	Output    string `koanf:"output"`

	ShuffleStall    int `koanf:"shuffle_stall"`
	MutationStall   int `koanf:"mutation_stall"`
	MinMutation     int `koanf:"min_mutation"`
	MaxMutation     int `koanf:"max_mutation"`
	LineageStall    int `koanf:"lineage_stall"`
	MaxRestarts     int `koanf:"max_restarts"`
	ExhaustiveLimit int `koanf:"exhaustive_limit"`
}

// DefaultConfig returns the tuned defaults for a 3x3 pyramid.
func DefaultConfig() Config {
	return Config{
		Base:            3,
		Height:          3,
		Workers:         max(1, runtime.NumCPU()),
		Output:          "text",
		ShuffleStall:    20_000,
		MutationStall:   4_000,
		MinMutation:     2,
		MaxMutation:     4,
		LineageStall:    30,
		MaxRestarts:     16,
		ExhaustiveLimit: 8,
	}
}

// Tuning extracts the search parameters.
func (c Config) Tuning() Tuning {
	return Tuning{
		ShuffleStall:    c.ShuffleStall,
		MutationStall:   c.MutationStall,
		MinMutation:     c.MinMutation,
		MaxMutation:     c.MaxMutation,
		LineageStall:    c.LineageStall,
		MaxRestarts:     c.MaxRestarts,
		ExhaustiveLimit: c.ExhaustiveLimit,
	}
}

// Pyramid validates and builds the configured pyramid shape.
func (c Config) Pyramid() (Pyramid, error) {
	return NewPyramid(c.Base, c.Height)
}

// Validate checks everything except the pyramid shape, which NewPyramid owns.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if c.Output != "text" && c.Output != "json" {
		return fmt.Errorf("output must be text or json, got %q", c.Output)
	}
	return c.Tuning().Validate()
}

// Validate checks the search parameters for consistency.
func (t Tuning) Validate() error {
	switch {
	case t.ShuffleStall < 0:
		return fmt.Errorf("shuffle_stall must be >= 0, got %d", t.ShuffleStall)
	case t.MutationStall < 1:
		return fmt.Errorf("mutation_stall must be >= 1, got %d", t.MutationStall)
	case t.MinMutation < 1:
		return fmt.Errorf("min_mutation must be >= 1, got %d", t.MinMutation)
	case t.MaxMutation < t.MinMutation:
		return fmt.Errorf("max_mutation %d is below min_mutation %d", t.MaxMutation, t.MinMutation)
	case t.LineageStall < 1:
		return fmt.Errorf("lineage_stall must be >= 1, got %d", t.LineageStall)
	case t.MaxRestarts < 0:
		return fmt.Errorf("max_restarts must be >= 0, got %d", t.MaxRestarts)
	case t.ExhaustiveLimit < 1 || t.ExhaustiveLimit > maxExhaustiveLimit:
		return fmt.Errorf("exhaustive_limit must be in [1,%d], got %d", maxExhaustiveLimit, t.ExhaustiveLimit)
	}
	return nil
}

const envPrefix = "PYRAMID_"

// LoadConfig merges defaults, an optional YAML file, PYRAMID_* environment
// variables and explicitly set flags, in increasing order of precedence.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")
	d := DefaultConfig()

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"base":             d.Base,
		"height":           d.Height,
		"workers":          d.Workers,
		"seed":             d.Seed,
		"cards":            d.CardsFile,
		"verbose":          d.Verbose,
		"output":           d.Output,
		"shuffle_stall":    d.ShuffleStall,
		"mutation_stall":   d.MutationStall,
		"min_mutation":     d.MinMutation,
		"max_mutation":     d.MaxMutation,
		"lineage_stall":    d.LineageStall,
		"max_restarts":     d.MaxRestarts,
		"exhaustive_limit": d.ExhaustiveLimit,
	}, "."), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// PYRAMID_SHUFFLE_STALL -> shuffle_stall
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			if f.Name == "json" {
				if on, _ := flags.GetBool("json"); on {
					return "output", "json"
				}
				return "", nil
			}
			// --shuffle-stall -> shuffle_stall
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return Config{}, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
