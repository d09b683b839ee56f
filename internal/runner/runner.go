package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/dkarlsen/checkgate/internal/pipeline"
	"github.com/dkarlsen/checkgate/internal/report"
)

// Options configure how steps are executed.
type Options struct {
	// Root is the workspace directory; step dirs resolve relative to it.
	Root string
	// Env is the base environment. Defaults to os.Environ().
	Env []string
	// PipelineEnv is overlaid on Env for every step; step env wins over both.
	PipelineEnv map[string]string
	Stdout      io.Writer
	Stderr      io.Writer
	// Verbose streams child output while still capturing it.
	Verbose bool
	// DryRun reports every step as skipped without spawning.
	DryRun bool
	// Timeout is the default per-step timeout. A step's own timeout takes
	// precedence. Zero disables the deadline.
	Timeout time.Duration
	Now     func() time.Time
}

// Runner executes steps one at a time as supervised child processes.
type Runner struct {
	opts Options
}

// New creates a runner with the supplied options.
func New(opts Options) *Runner {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	if opts.Env == nil {
		opts.Env = os.Environ()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Runner{opts: opts}
}

// Execute runs a single step to completion and classifies the result.
// Exit zero is passed, any other exit code is failed, and every spawn or
// supervision failure (missing executable, bad working directory,
// timeout, cancellation) is errored with the cause recorded in stderr.
// Execute never returns an error past its boundary.
func (r *Runner) Execute(ctx context.Context, spec pipeline.StepSpec) report.StepOutcome {
	outcome := report.StepOutcome{Name: spec.Name}

	if r.opts.DryRun {
		outcome.Status = report.StatusSkipped
		outcome.Stdout = spec.CommandLine()
		return outcome
	}

	dir, err := r.resolveDir(spec.Dir)
	if err != nil {
		outcome.Status = report.StatusErrored
		outcome.Stderr = err.Error()
		return outcome
	}

	timeout := r.opts.Timeout
	if spec.Timeout > 0 {
		timeout = time.Duration(spec.Timeout) * time.Second
	}
	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	argv := commandArgs(spec)
	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = mergeEnv(r.opts.Env, r.opts.PipelineEnv, spec.Env)
	setProcessGroup(cmd)
	// On deadline or cancellation, take down the whole process group so
	// the step cannot leave orphaned descendants behind.
	cmd.Cancel = func() error { return terminate(cmd) }
	cmd.WaitDelay = 5 * time.Second

	var stdoutBuf, stderrBuf strings.Builder
	if r.opts.Verbose {
		cmd.Stdout = io.MultiWriter(r.opts.Stdout, &stdoutBuf)
		cmd.Stderr = io.MultiWriter(r.opts.Stderr, &stderrBuf)
	} else {
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
	}

	start := r.opts.Now()
	runErr := cmd.Run()
	outcome.Duration = r.opts.Now().Sub(start)
	outcome.DurationMS = outcome.Duration.Milliseconds()
	outcome.Stdout = stdoutBuf.String()
	outcome.Stderr = stderrBuf.String()

	switch {
	case runErr == nil:
		outcome.Status = report.StatusPassed
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		outcome.Status = report.StatusErrored
		outcome.Stderr = appendLine(outcome.Stderr, fmt.Sprintf("step timed out after %s", timeout))
	case errors.Is(runCtx.Err(), context.Canceled):
		outcome.Status = report.StatusErrored
		outcome.Stderr = appendLine(outcome.Stderr, "step canceled")
	default:
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			outcome.Status = report.StatusFailed
			outcome.ExitCode = exitCode(exitErr)
		} else {
			outcome.Status = report.StatusErrored
			outcome.Stderr = appendLine(outcome.Stderr, runErr.Error())
		}
	}

	return outcome
}

func (r *Runner) resolveDir(dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		if r.opts.Root != "" {
			return r.opts.Root, nil
		}
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory: %w", err)
		}
		return wd, nil
	}

	if !filepath.IsAbs(dir) {
		dir = filepath.Join(r.opts.Root, dir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("working directory %q not found", dir)
		}
		return "", fmt.Errorf("stat working directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("working directory %q is not a directory", dir)
	}
	return dir, nil
}

// commandArgs builds the argv for a step. Argv-form steps run exactly as
// declared; shell-form steps are wrapped in the platform shell.
func commandArgs(spec pipeline.StepSpec) []string {
	if len(spec.Command) > 0 {
		return spec.Command
	}
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C", spec.Run}
	}
	return []string{"sh", "-c", spec.Run}
}

// mergeEnv flattens the base environment with overlay maps. Later
// overlays take precedence; keys are sorted for determinism.
func mergeEnv(base []string, overlays ...map[string]string) []string {
	envMap := make(map[string]string, len(base))
	for _, kv := range base {
		if idx := strings.Index(kv, "="); idx != -1 {
			envMap[kv[:idx]] = kv[idx+1:]
		}
	}
	for _, overlay := range overlays {
		for k, v := range overlay {
			envMap[k] = v
		}
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s=%s", k, envMap[k]))
	}
	return out
}

func exitCode(exitErr *exec.ExitError) int {
	if status, ok := exitErr.Sys().(interface{ ExitStatus() int }); ok {
		return status.ExitStatus()
	}
	return exitErr.ExitCode()
}

func appendLine(s, line string) string {
	if s == "" {
		return line
	}
	return strings.TrimRight(s, "\n") + "\n" + line
}
