// Package config loads the tunable parameters of the alignment and
// tree-building pipeline from an optional TOML file, falling back to the
// defaults below when no file is given or a field is left unset.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Defaults mirror the reference implementation's hardcoded constants and
// argparse defaults.
const (
	DefaultTwilightThreshold = 300
	DefaultProgressInterval  = 1000
	DefaultGapPenalty        = -1.0
	DefaultMatrix            = "pam250"
)

// Config holds every value a run of treealign can be tuned with.
type Config struct {
	// Tree holds TreeBuilder post-processing thresholds.
	Tree struct {
		TwilightThreshold int `toml:"twilight_threshold"`
		ProgressInterval  int `toml:"progress_interval"`
	} `toml:"tree"`

	// Align holds alignment scoring defaults.
	Align struct {
		GapPenalty float64 `toml:"gap_penalty"`
		Matrix     string  `toml:"matrix"`
	} `toml:"align"`
}

// Default returns a Config populated with the package defaults.
func Default() Config {
	var c Config
	c.Tree.TwilightThreshold = DefaultTwilightThreshold
	c.Tree.ProgressInterval = DefaultProgressInterval
	c.Align.GapPenalty = DefaultGapPenalty
	c.Align.Matrix = DefaultMatrix
	return c
}

// Load reads a TOML config from path, layering it over Default(). An empty
// path returns the defaults unchanged.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Config{}, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return c, nil
}
