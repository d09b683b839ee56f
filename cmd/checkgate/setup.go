package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dkarlsen/checkgate/internal/config"
	"github.com/dkarlsen/checkgate/internal/discovery"
	"github.com/dkarlsen/checkgate/internal/pipeline"
)

func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	root, err := os.Getwd()
	if err != nil {
		return config.Config{}, "", fmt.Errorf("determine working directory: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return config.Config{}, "", err
	}

	flags, err := gatherFlags(cmd)
	if err != nil {
		return config.Config{}, "", err
	}
	config.ApplyFlags(&cfg, flags)

	return cfg, root, nil
}

func loadPipeline(root string, cfg config.Config) (*pipeline.Pipeline, error) {
	path, err := discovery.PipelineFile(root, cfg.Pipeline)
	if err != nil {
		if errors.Is(err, discovery.ErrNoPipeline) {
			return nil, fmt.Errorf("no pipeline file found; create checkgate.yml or pass --config")
		}
		return nil, err
	}

	p, err := pipeline.Load(path)
	if err != nil {
		return nil, err
	}

	return p.Select(cfg.Steps)
}

// resolvePolicy picks the effective failure policy: flags and the
// options file win over the pipeline file, which wins over the
// fail-fast default.
func resolvePolicy(cfg config.Config, p *pipeline.Pipeline) (pipeline.Policy, error) {
	s := cfg.Policy
	if s == "" {
		s = p.Policy
	}
	if s == "" {
		return pipeline.FailFast, nil
	}
	return pipeline.ParsePolicy(s)
}
