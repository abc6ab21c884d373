package scan

import (
	"fmt"
	"path/filepath"
	"slices"
)

// ExpandGlobs expands file paths and glob patterns into a sorted, deduplicated
// list. Patterns that match nothing are kept as literal paths so that opening
// them reports a useful error. Stdin is passed through unchanged.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}

	for _, pattern := range patterns {
		if pattern == Stdin {
			add(pattern)
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			add(pattern)
			continue
		}
		for _, match := range matches {
			add(match)
		}
	}

	slices.Sort(result)
	return result, nil
}
