// Package config loads the settings of a GoSet session from the environment
// and the command line. Flags take precedence over environment variables.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings of a game session.
type Config struct {
	// Seed of the deck shuffle. 0 picks a random seed.
	Seed uint64 `env:"GOSET_SEED"`

	// Mode is "solitaire" or "tutorial".
	Mode string `env:"GOSET_MODE" envDefault:"solitaire"`

	// Format of the console input and output: "text" or "json".
	Format string `env:"GOSET_FORMAT" envDefault:"text"`

	// GrowPolicy decides when 3 more cards can be dealt: "no-sets" or "up-to-start".
	GrowPolicy string `env:"GOSET_GROW_POLICY" envDefault:"no-sets"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// RegisterFlags binds cfg fields to flags in fs, using the current values as defaults.
func (cfg *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed of the deck shuffle (0 picks a random seed) [GOSET_SEED]")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "Game mode: solitaire or tutorial [GOSET_MODE]")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Input/output format: text or json [GOSET_FORMAT]")
	fs.StringVar(&cfg.GrowPolicy, "grow", cfg.GrowPolicy, "When 3 more cards may be dealt: no-sets or up-to-start [GOSET_GROW_POLICY]")
}

// Load reads the environment into a Config, then parses args with flags
// registered on fs overriding it.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Seed == 0 {
		seed, err := NewSeed()
		if err != nil {
			return Config{}, err
		}
		cfg.Seed = seed
	}
	return cfg, nil
}
