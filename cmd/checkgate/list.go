package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dkarlsen/checkgate/internal/config"
	"github.com/dkarlsen/checkgate/internal/output"
	"github.com/dkarlsen/checkgate/internal/toolcheck"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured steps without executing them",
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, root, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	p, err := loadPipeline(root, cfg)
	if err != nil {
		return err
	}

	if len(p.Steps) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No steps configured")
		return nil
	}

	missing := toolcheck.MissingExecutables(p.Steps)

	switch strings.ToLower(cfg.Format) {
	case config.FormatPretty:
		return output.NewPretty(cmd.OutOrStdout(), cfg.TailLines).RenderList(p.Steps, missing)
	case config.FormatJSON:
		return output.NewJSON(cmd.OutOrStdout()).RenderList(p.Steps, missing)
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}
}
