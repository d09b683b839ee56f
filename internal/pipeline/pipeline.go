package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dkarlsen/checkgate/internal/report"
)

// StepSpec describes one check: a named external command, its working
// directory, and the environment it requires. Immutable after Load.
type StepSpec struct {
	Name    string            `yaml:"name"`
	Command []string          `yaml:"command,omitempty"`
	Run     string            `yaml:"run,omitempty"`
	Dir     string            `yaml:"dir,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
	Timeout int               `yaml:"timeout,omitempty"`
}

// CommandLine renders the step's command for display.
func (s StepSpec) CommandLine() string {
	if len(s.Command) > 0 {
		return strings.Join(s.Command, " ")
	}
	return s.Run
}

// Pipeline is an ordered list of steps plus run defaults. Step order is
// significant and preserved exactly as declared.
type Pipeline struct {
	Policy  string            `yaml:"policy,omitempty"`
	Timeout int               `yaml:"timeout,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
	Steps   []StepSpec        `yaml:"steps"`
}

// Load reads and validates a pipeline declaration. Unknown YAML fields
// are rejected so typos surface as configuration errors.
func Load(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline %q: %w", path, err)
	}

	var p Pipeline
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return &Pipeline{}, nil
		}
		return nil, fmt.Errorf("parse pipeline %q: %w", path, err)
	}

	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("pipeline %q: %w", path, err)
	}
	return &p, nil
}

func (p *Pipeline) validate() error {
	if p.Policy != "" {
		if _, err := ParsePolicy(p.Policy); err != nil {
			return err
		}
	}
	if p.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}

	seen := make(map[string]struct{}, len(p.Steps))
	for i, step := range p.Steps {
		if strings.TrimSpace(step.Name) == "" {
			return fmt.Errorf("step %d: name is required", i+1)
		}
		if _, ok := seen[step.Name]; ok {
			return fmt.Errorf("step %q declared twice", step.Name)
		}
		seen[step.Name] = struct{}{}

		hasCommand := len(step.Command) > 0
		hasRun := strings.TrimSpace(step.Run) != ""
		if hasCommand == hasRun {
			return fmt.Errorf("step %q: exactly one of command or run is required", step.Name)
		}
		if hasCommand && strings.TrimSpace(step.Command[0]) == "" {
			return fmt.Errorf("step %q: command executable is empty", step.Name)
		}
		if step.Timeout < 0 {
			return fmt.Errorf("step %q: timeout must not be negative", step.Name)
		}
	}
	return nil
}

// Executor runs a single step to completion. Implementations never
// return an error; every failure mode is encoded in the outcome.
type Executor interface {
	Execute(ctx context.Context, spec StepSpec) report.StepOutcome
}

// Run executes every step in declaration order and returns the sealed
// result. Under FailFast, the first failed or errored outcome causes
// all remaining steps to be recorded as skipped without spawning.
// Context cancellation likewise prevents further steps from starting,
// regardless of policy; completed outcomes are retained.
func (p *Pipeline) Run(ctx context.Context, exec Executor, policy Policy) report.PipelineResult {
	var result report.PipelineResult
	halted := false

	for _, spec := range p.Steps {
		if halted || ctx.Err() != nil {
			result.Append(report.StepOutcome{Name: spec.Name, Status: report.StatusSkipped})
			continue
		}

		outcome := exec.Execute(ctx, spec)
		result.Append(outcome)

		if policy == FailFast &&
			(outcome.Status == report.StatusFailed || outcome.Status == report.StatusErrored) {
			halted = true
		}
	}

	result.Seal()
	return result
}
