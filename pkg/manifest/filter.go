package manifest

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter selects manifest lines by component name.
// An empty Includes list selects everything not excluded.
type Filter struct {
	Includes []string
	Excludes []string
}

// Validate reports the first pattern doublestar cannot compile.
func (f Filter) Validate() error {
	for _, patterns := range [][]string{f.Includes, f.Excludes} {
		for _, pattern := range patterns {
			if !doublestar.ValidatePattern(pattern) {
				return fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
			}
		}
	}
	return nil
}

// Apply drops the lines whose component the filter rejects.
// Malformed lines are kept so they still surface as failures.
func (f Filter) Apply(lines []string) ([]string, error) {
	if len(f.Includes) == 0 && len(f.Excludes) == 0 {
		return lines, nil
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		target, err := Decode(line)
		if err != nil || f.Selects(target.Component) {
			kept = append(kept, line)
		}
	}

	return kept, nil
}

// Selects reports whether component passes the filter.
func (f Filter) Selects(component string) bool {
	if len(f.Includes) > 0 && !matchAny(f.Includes, component) {
		return false
	}
	return !matchAny(f.Excludes, component)
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
