package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkarlsen/checkgate/internal/pipeline"
	"github.com/dkarlsen/checkgate/internal/report"
)

func TestJSONRender(t *testing.T) {
	var result report.PipelineResult
	result.Append(report.StepOutcome{Name: "lint", Status: report.StatusFailed, ExitCode: 1, Stderr: "oops", DurationMS: 42})
	result.Seal()

	buf := &bytes.Buffer{}
	require.NoError(t, NewJSON(buf).Render(result, report.Summarize(result)))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Steps, 1)
	assert.Equal(t, "lint", decoded.Steps[0].Name)
	assert.Equal(t, report.StatusFailed, decoded.Steps[0].Status)
	assert.Equal(t, "oops", decoded.Steps[0].Stderr)
	assert.Equal(t, int64(42), decoded.Steps[0].DurationMS)
	assert.Equal(t, report.StatusFailed, decoded.Gate)
	assert.Equal(t, 1, decoded.Summary.ExitCode)
}

func TestJSONRenderList(t *testing.T) {
	steps := []pipeline.StepSpec{
		{Name: "lint", Command: []string{"golangci-lint", "run"}, Dir: "api", Timeout: 60},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, NewJSON(buf).RenderList(steps, map[string]string{"lint": "golangci-lint"}))

	var decoded ListReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Steps, 1)
	assert.Equal(t, "golangci-lint run", decoded.Steps[0].Command)
	assert.Equal(t, "api", decoded.Steps[0].Dir)
	assert.Equal(t, []string{"golangci-lint"}, decoded.Missing)
}
