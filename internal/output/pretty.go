package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dkarlsen/checkgate/internal/pipeline"
	"github.com/dkarlsen/checkgate/internal/report"
)

// PrettyRenderer renders gate results in a human-friendly format.
type PrettyRenderer struct {
	out io.Writer
	// tailLines bounds how much captured stderr a failed or errored
	// step prints. Zero means the default of 20.
	tailLines int
}

// NewPretty creates a PrettyRenderer writing to the provided writer.
func NewPretty(out io.Writer, tailLines int) *PrettyRenderer {
	if tailLines <= 0 {
		tailLines = 20
	}
	return &PrettyRenderer{out: out, tailLines: tailLines}
}

// RenderList prints the configured steps without executing them.
// missing maps step names to executables that were not found in PATH.
func (p *PrettyRenderer) RenderList(steps []pipeline.StepSpec, missing map[string]string) error {
	for _, step := range steps {
		if _, err := fmt.Fprintf(p.out, "  • %s: %s\n", step.Name, step.CommandLine()); err != nil {
			return err
		}
		if exe, ok := missing[step.Name]; ok {
			if _, err := fmt.Fprintf(p.out, "      warning: %s not found in PATH\n", exe); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderResult prints each outcome in order, stderr tails for failed
// and errored steps, and the aggregate summary and gate line.
func (p *PrettyRenderer) RenderResult(result report.PipelineResult, summary report.Summary) error {
	for _, o := range result.Outcomes {
		if _, err := fmt.Fprintf(p.out, "  %s %s (%s)\n", statusGlyph(o.Status), o.Name, formatDuration(o.Duration)); err != nil {
			return err
		}
		if (o.Status == report.StatusFailed || o.Status == report.StatusErrored) && o.Stderr != "" {
			tail := tailLines(o.Stderr, p.tailLines)
			if _, err := fmt.Fprintf(p.out, "      stderr: %s\n", indent(tail, "      ")); err != nil {
				return err
			}
		}
		// dry-run records the would-be command as stdout
		if o.Status == report.StatusSkipped && o.Stdout != "" {
			if _, err := fmt.Fprintf(p.out, "      command: %s\n", o.Stdout); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(p.out, "SUMMARY: %d passed, %d failed, %d skipped, %d errored (%s)\n",
		summary.Passed, summary.Failed, summary.Skipped, summary.Errored, formatDuration(summary.Duration)); err != nil {
		return err
	}

	gate := "PASSED"
	if !result.Passed() {
		gate = "FAILED"
	}
	_, err := fmt.Fprintf(p.out, "GATE: %s\n", gate)
	return err
}

func statusGlyph(status report.Status) string {
	switch status {
	case report.StatusPassed:
		return "✓"
	case report.StatusFailed:
		return "✗"
	case report.StatusSkipped:
		return "-"
	case report.StatusErrored:
		return "!"
	default:
		return "?"
	}
}

func indent(s, pad string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

func tailLines(input string, maxLines int) string {
	if input == "" {
		return ""
	}
	lines := strings.Split(strings.TrimRight(input, "\n"), "\n")
	if len(lines) <= maxLines {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[len(lines)-maxLines:], "\n")
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Truncate(time.Millisecond).String()
}
