package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSealEmptyResultPasses(t *testing.T) {
	var r PipelineResult
	r.Seal()

	assert.Equal(t, StatusPassed, r.Overall)
	assert.True(t, r.Passed())
}

func TestSealAllPassed(t *testing.T) {
	var r PipelineResult
	r.Append(StepOutcome{Name: "fmt", Status: StatusPassed})
	r.Append(StepOutcome{Name: "lint", Status: StatusPassed})
	r.Seal()

	assert.Equal(t, StatusPassed, r.Overall)
}

func TestSealFailsOnFailedOrErrored(t *testing.T) {
	cases := []struct {
		name   string
		status Status
	}{
		{"failed step closes gate", StatusFailed},
		{"errored step closes gate", StatusErrored},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r PipelineResult
			r.Append(StepOutcome{Name: "a", Status: StatusPassed})
			r.Append(StepOutcome{Name: "b", Status: tc.status})
			r.Append(StepOutcome{Name: "c", Status: StatusSkipped})
			r.Seal()

			assert.Equal(t, StatusFailed, r.Overall)
			assert.False(t, r.Passed())
		})
	}
}

func TestSealSkippedAloneDoesNotFail(t *testing.T) {
	var r PipelineResult
	r.Append(StepOutcome{Name: "a", Status: StatusPassed})
	r.Append(StepOutcome{Name: "b", Status: StatusSkipped})
	r.Seal()

	assert.Equal(t, StatusPassed, r.Overall)
}

func TestSummarize(t *testing.T) {
	var r PipelineResult
	r.Append(StepOutcome{Name: "install", Status: StatusPassed, Duration: 120 * time.Millisecond})
	r.Append(StepOutcome{Name: "lint", Status: StatusFailed, Duration: 80 * time.Millisecond})
	r.Append(StepOutcome{Name: "vet", Status: StatusErrored, Duration: 5 * time.Millisecond})
	r.Append(StepOutcome{Name: "fmt", Status: StatusSkipped})
	r.Seal()

	s := Summarize(r)

	assert.Equal(t, 4, s.TotalSteps)
	assert.Equal(t, 1, s.Passed)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.Errored)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, int64(205), s.DurationMS)
	assert.Equal(t, 1, s.ExitCode)
}

func TestSummarizeExitCodeZeroWhenPassed(t *testing.T) {
	var r PipelineResult
	r.Append(StepOutcome{Name: "lint", Status: StatusPassed})
	r.Seal()

	s := Summarize(r)
	assert.Equal(t, 0, s.ExitCode)
}
