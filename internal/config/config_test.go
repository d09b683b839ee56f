package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, cfg.Policy)
	assert.Equal(t, FormatPretty, cfg.Format)
	assert.Equal(t, 20, cfg.TailLines)
	assert.Empty(t, cfg.Pipeline)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	root := t.TempDir()
	contents := []byte(`
pipeline: gates/ci.yml
policy: run-all
steps:
  - lint
timeout: 90
format: json
verbose: true
tail_lines: 5
`)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".checkgate.yml"), contents, 0o644))

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "gates/ci.yml", cfg.Pipeline)
	assert.Equal(t, PolicyRunAll, cfg.Policy)
	assert.Equal(t, []string{"lint"}, cfg.Steps)
	assert.Equal(t, 90, cfg.Timeout)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 5, cfg.TailLines)
}

func TestLoadInvalidYAML(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".checkgate.yml"), []byte("policy: ["), 0o644))

	_, err := Load(root)
	assert.Error(t, err)
}

func TestApplyFlagsOverridesFileValues(t *testing.T) {
	cfg := Default()
	cfg.Policy = PolicyRunAll
	cfg.Steps = []string{"lint"}

	ApplyFlags(&cfg, FlagValues{
		Policy:  StringFlag{Value: PolicyFailFast, Set: true},
		Steps:   SliceFlag{Values: []string{"vet", "fmt"}},
		Timeout: IntFlag{Value: 30, Set: true},
		Format:  StringFlag{Value: FormatJSON, Set: true},
		DryRun:  BoolFlag{Value: true, Set: true},
	})

	assert.Equal(t, PolicyFailFast, cfg.Policy)
	assert.Equal(t, []string{"vet", "fmt"}, cfg.Steps)
	assert.Equal(t, 30, cfg.Timeout)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.True(t, cfg.DryRun)
}

func TestApplyFlagsLeavesUnsetValues(t *testing.T) {
	cfg := Default()
	cfg.Pipeline = "gates/ci.yml"

	ApplyFlags(&cfg, FlagValues{})

	assert.Equal(t, "gates/ci.yml", cfg.Pipeline)
	assert.Empty(t, cfg.Policy)
}
