package pipeline

import "fmt"

// Policy controls how a run reacts to a failed or errored step.
type Policy int

const (
	// FailFast stops spawning steps after the first failure. Remaining
	// steps are reported as skipped.
	FailFast Policy = iota
	// RunAll executes every step regardless of earlier failures.
	RunAll
)

const (
	policyFailFast = "fail-fast"
	policyRunAll   = "run-all"
)

// ParsePolicy converts a policy flag or config value.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case policyFailFast:
		return FailFast, nil
	case policyRunAll:
		return RunAll, nil
	default:
		return FailFast, fmt.Errorf("unsupported policy %q (want %s or %s)", s, policyFailFast, policyRunAll)
	}
}

func (p Policy) String() string {
	if p == RunAll {
		return policyRunAll
	}
	return policyFailFast
}
