package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoPipeline indicates that no pipeline declaration was found.
var ErrNoPipeline = errors.New("no pipeline file discovered")

// candidates are checked in order under the workspace root when no
// explicit path is given.
var candidates = []string{"checkgate.yml", "checkgate.yaml"}

// PipelineFile resolves the pipeline declaration path. An explicit path
// is validated and returned as given; otherwise the default candidates
// under root are tried in order.
func PipelineFile(root, explicit string) (string, error) {
	if explicit != "" {
		return resolveExplicit(root, explicit)
	}

	for _, name := range candidates {
		path := filepath.Join(root, name)
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("stat %q: %w", path, err)
		}
		if info.IsDir() {
			continue
		}
		return path, nil
	}
	return "", ErrNoPipeline
}

func resolveExplicit(root, input string) (string, error) {
	path := input
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("pipeline file %q not found", input)
		}
		return "", fmt.Errorf("stat %q: %w", input, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("pipeline file %q is a directory", input)
	}
	return path, nil
}
