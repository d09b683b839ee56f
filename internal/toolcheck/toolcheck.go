// Package toolcheck probes whether the executables a pipeline relies on
// are actually installed, so a broken environment is visible before a
// run instead of surfacing as errored steps.
package toolcheck

import (
	"errors"
	"os/exec"

	"github.com/dkarlsen/checkgate/internal/pipeline"
)

// Lookup abstracts PATH resolution for testability.
type Lookup interface {
	LookPath(name string) (string, error)
}

type realLookup struct{}

func (realLookup) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// MissingExecutables maps step names to executables that could not be
// resolved in PATH. Only argv-form steps are probed; shell-form steps
// defer resolution to the shell.
func MissingExecutables(steps []pipeline.StepSpec) map[string]string {
	return missingExecutables(realLookup{}, steps)
}

func missingExecutables(l Lookup, steps []pipeline.StepSpec) map[string]string {
	missing := make(map[string]string)
	for _, step := range steps {
		if len(step.Command) == 0 {
			continue
		}
		if _, err := l.LookPath(step.Command[0]); Missing(err) {
			missing[step.Name] = step.Command[0]
		}
	}
	return missing
}

// Missing reports whether err indicates an executable not found in PATH.
func Missing(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}
