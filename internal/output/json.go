package output

import (
	"encoding/json"
	"io"

	"github.com/dkarlsen/checkgate/internal/pipeline"
	"github.com/dkarlsen/checkgate/internal/report"
)

// JSONRenderer emits structured gate data.
type JSONRenderer struct {
	out io.Writer
}

// NewJSON creates a JSON renderer writing to out.
func NewJSON(out io.Writer) *JSONRenderer {
	return &JSONRenderer{out: out}
}

// Report captures the JSON output schema for a run. Captured output is
// not truncated; machine consumers get the full streams.
type Report struct {
	Steps   []report.StepOutcome `json:"steps"`
	Summary report.Summary       `json:"summary"`
	Gate    report.Status        `json:"gate"`
}

// Render encodes the run report as indented JSON.
func (j *JSONRenderer) Render(result report.PipelineResult, summary report.Summary) error {
	rep := Report{
		Steps:   result.Outcomes,
		Summary: summary,
		Gate:    result.Overall,
	}
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// ListReport captures the JSON schema for the list command.
type ListReport struct {
	Steps   []ListStep `json:"steps"`
	Missing []string   `json:"missing,omitempty"`
}

// ListStep is one configured step as shown by the list command.
type ListStep struct {
	Name    string `json:"name"`
	Command string `json:"command"`
	Dir     string `json:"dir,omitempty"`
	Timeout int    `json:"timeout,omitempty"`
}

// RenderList encodes the configured steps as indented JSON.
func (j *JSONRenderer) RenderList(steps []pipeline.StepSpec, missing map[string]string) error {
	rep := ListReport{Steps: make([]ListStep, 0, len(steps))}
	for _, step := range steps {
		rep.Steps = append(rep.Steps, ListStep{
			Name:    step.Name,
			Command: step.CommandLine(),
			Dir:     step.Dir,
			Timeout: step.Timeout,
		})
		if exe, ok := missing[step.Name]; ok {
			rep.Missing = append(rep.Missing, exe)
		}
	}
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
