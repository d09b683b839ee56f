package report

import "time"

// Status classifies a single step outcome.
type Status string

const (
	// StatusPassed means the command ran and exited zero.
	StatusPassed Status = "passed"
	// StatusFailed means the command ran and exited nonzero.
	StatusFailed Status = "failed"
	// StatusSkipped means the step was never attempted.
	StatusSkipped Status = "skipped"
	// StatusErrored means the runner could not execute or supervise the
	// command: missing executable, bad working directory, timeout.
	StatusErrored Status = "errored"
)

// StepOutcome captures the result of one step.
type StepOutcome struct {
	Name       string        `json:"name"`
	Status     Status        `json:"status"`
	ExitCode   int           `json:"exit_code"`
	Stdout     string        `json:"stdout,omitempty"`
	Stderr     string        `json:"stderr,omitempty"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`
}

// PipelineResult is the ordered, append-only record of a run.
type PipelineResult struct {
	Outcomes []StepOutcome `json:"steps"`
	Overall  Status        `json:"overall"`
}

// Append records an outcome, preserving declaration order.
func (r *PipelineResult) Append(o StepOutcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Seal derives the overall gate status. The gate fails iff at least one
// outcome failed or errored; an empty run passes.
func (r *PipelineResult) Seal() {
	r.Overall = StatusPassed
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed || o.Status == StatusErrored {
			r.Overall = StatusFailed
			return
		}
	}
}

// Passed reports whether the gate is open.
func (r *PipelineResult) Passed() bool {
	return r.Overall == StatusPassed
}

// Summary aggregates a run for reporting.
type Summary struct {
	TotalSteps int           `json:"total_steps"`
	Passed     int           `json:"passed"`
	Failed     int           `json:"failed"`
	Skipped    int           `json:"skipped"`
	Errored    int           `json:"errored"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`
	ExitCode   int           `json:"exit_code"`
}

// Summarize computes totals and the process exit code for a result.
// It is a pure function of its input.
func Summarize(r PipelineResult) Summary {
	s := Summary{TotalSteps: len(r.Outcomes)}
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusPassed:
			s.Passed++
		case StatusFailed:
			s.Failed++
		case StatusSkipped:
			s.Skipped++
		case StatusErrored:
			s.Errored++
		}
		s.Duration += o.Duration
	}
	s.DurationMS = s.Duration.Milliseconds()
	if !r.Passed() {
		s.ExitCode = 1
	}
	return s
}
