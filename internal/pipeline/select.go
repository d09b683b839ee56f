package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// pattern is a compiled step selector: an exact name, or a regular
// expression when written as /expr/.
type pattern struct {
	raw   string
	regex *regexp.Regexp
}

func compileSelectors(selectors []string) ([]pattern, error) {
	result := make([]pattern, 0, len(selectors))
	for _, raw := range selectors {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/") && len(raw) > 2 {
			re, err := regexp.Compile(raw[1 : len(raw)-1])
			if err != nil {
				return nil, fmt.Errorf("compile selector %q: %w", raw, err)
			}
			result = append(result, pattern{raw: raw, regex: re})
			continue
		}
		result = append(result, pattern{raw: raw})
	}
	return result, nil
}

func (p pattern) match(name string) bool {
	if p.regex != nil {
		return p.regex.MatchString(name)
	}
	return p.raw == name
}

// Select returns a pipeline restricted to steps matching the given
// selectors, in declaration order. A selector that matches no step is
// a configuration error. No selectors returns the pipeline unchanged.
func (p *Pipeline) Select(selectors []string) (*Pipeline, error) {
	patterns, err := compileSelectors(selectors)
	if err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		return p, nil
	}

	matched := make([]bool, len(patterns))
	steps := make([]StepSpec, 0, len(p.Steps))
	for _, step := range p.Steps {
		keep := false
		for i, pat := range patterns {
			if pat.match(step.Name) {
				matched[i] = true
				keep = true
			}
		}
		if keep {
			steps = append(steps, step)
		}
	}

	for i, pat := range patterns {
		if !matched[i] {
			return nil, fmt.Errorf("unknown step %q", pat.raw)
		}
	}

	selected := *p
	selected.Steps = steps
	return &selected, nil
}
