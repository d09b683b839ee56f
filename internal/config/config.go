package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config captures CLI options sourced from the options file or flags.
// The pipeline declaration itself lives in its own file; this only
// controls how it is run and reported.
type Config struct {
	Pipeline  string   `yaml:"pipeline"`
	Policy    string   `yaml:"policy"`
	Steps     []string `yaml:"steps"`
	Timeout   int      `yaml:"timeout"`
	Format    string   `yaml:"format"`
	DryRun    bool     `yaml:"dry_run"`
	Verbose   bool     `yaml:"verbose"`
	TailLines int      `yaml:"tail_lines"`
}

const (
	// PolicyFailFast stops after the first failed or errored step.
	PolicyFailFast = "fail-fast"
	// PolicyRunAll executes every step regardless of failures.
	PolicyRunAll = "run-all"

	// FormatPretty renders human readable output.
	FormatPretty = "pretty"
	// FormatJSON renders machine readable output.
	FormatJSON = "json"
)

// Default returns the baseline configuration used when no flags or
// options file specify values. Policy stays empty here so a policy
// declared in the pipeline file itself can still take effect; the
// effective default of fail-fast is resolved at run time.
func Default() Config {
	return Config{
		Format:    FormatPretty,
		TailLines: 20,
	}
}

// Load reads .checkgate.yml from the workspace root when present.
// Missing files are ignored.
func Load(root string) (Config, error) {
	cfg := Default()
	path := filepath.Join(root, ".checkgate.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	return merge(cfg, fileCfg), nil
}

func merge(base, override Config) Config {
	out := base

	if override.Pipeline != "" {
		out.Pipeline = override.Pipeline
	}
	if override.Policy != "" {
		out.Policy = override.Policy
	}
	if len(override.Steps) > 0 {
		out.Steps = append([]string{}, override.Steps...)
	}
	if override.Timeout > 0 {
		out.Timeout = override.Timeout
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if override.DryRun {
		out.DryRun = true
	}
	if override.Verbose {
		out.Verbose = true
	}
	if override.TailLines > 0 {
		out.TailLines = override.TailLines
	}

	return out
}

// ApplyFlags mutates cfg by applying values from CLI flags when present.
func ApplyFlags(cfg *Config, flags FlagValues) {
	if flags.Pipeline.Set {
		cfg.Pipeline = flags.Pipeline.Value
	}
	if flags.Policy.Set {
		cfg.Policy = flags.Policy.Value
	}
	if len(flags.Steps.Values) > 0 {
		cfg.Steps = append([]string{}, flags.Steps.Values...)
	}
	if flags.Timeout.Set {
		cfg.Timeout = flags.Timeout.Value
	}
	if flags.Format.Set {
		cfg.Format = flags.Format.Value
	}
	if flags.DryRun.Set {
		cfg.DryRun = flags.DryRun.Value
	}
	if flags.Verbose.Set {
		cfg.Verbose = flags.Verbose.Value
	}
}

// FlagValues captures CLI flag state with knowledge of whether each
// flag was set explicitly.
type FlagValues struct {
	Pipeline StringFlag
	Policy   StringFlag
	Steps    SliceFlag
	Timeout  IntFlag
	Format   StringFlag
	DryRun   BoolFlag
	Verbose  BoolFlag
}

// StringFlag represents a string flag and whether it was set.
type StringFlag struct {
	Value string
	Set   bool
}

// SliceFlag represents a repeatable flag and the values it captured.
type SliceFlag struct {
	Values []string
}

// IntFlag represents an int flag and whether it was set.
type IntFlag struct {
	Value int
	Set   bool
}

// BoolFlag represents a bool flag and whether it was set.
type BoolFlag struct {
	Value bool
	Set   bool
}
