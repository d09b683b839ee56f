package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dkarlsen/checkgate/internal/output"
)

func TestListCommand(t *testing.T) {
	workspace(t, `steps:
  - name: install
    run: npm ci
  - name: ghost
    command: ["checkgate-no-such-binary", "--check"]
`)

	out, err := execute(t, "list")

	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "install: npm ci") {
		t.Fatalf("expected install step, got %q", out)
	}
	if !strings.Contains(out, "ghost: checkgate-no-such-binary --check") {
		t.Fatalf("expected ghost step, got %q", out)
	}
	if !strings.Contains(out, "warning: checkgate-no-such-binary not found in PATH") {
		t.Fatalf("expected missing executable warning, got %q", out)
	}
}

func TestListCommandEmpty(t *testing.T) {
	workspace(t, "steps: []\n")

	out, err := execute(t, "list")

	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "No steps configured") {
		t.Fatalf("expected empty message, got %q", out)
	}
}

func TestListCommandJSON(t *testing.T) {
	workspace(t, "steps:\n  - name: lint\n    command: [\"go\", \"vet\", \"./...\"]\n    dir: api\n")

	out, err := execute(t, "list", "--format", "json")

	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var decoded output.ListReport
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(decoded.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(decoded.Steps))
	}
	if decoded.Steps[0].Command != "go vet ./..." {
		t.Fatalf("unexpected command %q", decoded.Steps[0].Command)
	}
	if decoded.Steps[0].Dir != "api" {
		t.Fatalf("unexpected dir %q", decoded.Steps[0].Dir)
	}
}

func TestListDoesNotExecuteSteps(t *testing.T) {
	skipOnWindows(t)
	workspace(t, "steps:\n  - name: boom\n    run: \"exit 1\"\n")

	_, err := execute(t, "list")

	if err != nil {
		t.Fatalf("list must not run steps: %v", err)
	}
}
