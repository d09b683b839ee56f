package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dkarlsen/checkgate/internal/config"
	"github.com/dkarlsen/checkgate/internal/output"
	"github.com/dkarlsen/checkgate/internal/report"
	"github.com/dkarlsen/checkgate/internal/runner"
)

// errGateFailed marks a run where at least one step failed or errored,
// as opposed to a configuration problem.
var errGateFailed = errors.New("one or more steps failed")

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute the configured pipeline",
		RunE:  runExecute,
	}
}

func runExecute(cmd *cobra.Command, args []string) error {
	cfg, root, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	p, err := loadPipeline(root, cfg)
	if err != nil {
		return err
	}

	policy, err := resolvePolicy(cfg, p)
	if err != nil {
		return err
	}

	timeoutSec := cfg.Timeout
	if timeoutSec == 0 {
		timeoutSec = p.Timeout
	}

	execRunner := runner.New(runner.Options{
		Root:        root,
		PipelineEnv: p.Env,
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
		Verbose:     cfg.Verbose,
		DryRun:      cfg.DryRun,
		Timeout:     time.Duration(timeoutSec) * time.Second,
	})

	result := p.Run(cmd.Context(), execRunner, policy)
	summary := report.Summarize(result)

	switch strings.ToLower(cfg.Format) {
	case config.FormatPretty:
		if err := output.NewPretty(cmd.OutOrStdout(), cfg.TailLines).RenderResult(result, summary); err != nil {
			return err
		}
	case config.FormatJSON:
		if err := output.NewJSON(cmd.OutOrStdout()).Render(result, summary); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}

	if summary.ExitCode != 0 {
		return errGateFailed
	}

	return nil
}
