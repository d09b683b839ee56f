package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkarlsen/checkgate/internal/config"
)

func gatherFlags(cmd *cobra.Command) (config.FlagValues, error) {
	flags := cmd.Flags()
	var values config.FlagValues

	if flags.Changed("config") {
		v, err := flags.GetString("config")
		if err != nil {
			return values, fmt.Errorf("parse --config: %w", err)
		}
		values.Pipeline = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("policy") {
		v, err := flags.GetString("policy")
		if err != nil {
			return values, fmt.Errorf("parse --policy: %w", err)
		}
		values.Policy = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("step") {
		v, err := flags.GetStringArray("step")
		if err != nil {
			return values, fmt.Errorf("parse --step: %w", err)
		}
		values.Steps = config.SliceFlag{Values: append([]string{}, v...)}
	}

	if flags.Changed("timeout") {
		v, err := flags.GetInt("timeout")
		if err != nil {
			return values, fmt.Errorf("parse --timeout: %w", err)
		}
		values.Timeout = config.IntFlag{Value: v, Set: true}
	}

	if flags.Changed("format") {
		v, err := flags.GetString("format")
		if err != nil {
			return values, fmt.Errorf("parse --format: %w", err)
		}
		values.Format = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("dry-run") {
		v, err := flags.GetBool("dry-run")
		if err != nil {
			return values, fmt.Errorf("parse --dry-run: %w", err)
		}
		values.DryRun = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("verbose") {
		v, err := flags.GetBool("verbose")
		if err != nil {
			return values, fmt.Errorf("parse --verbose: %w", err)
		}
		values.Verbose = config.BoolFlag{Value: v, Set: true}
	}

	return values, nil
}
