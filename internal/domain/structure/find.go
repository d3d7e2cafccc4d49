package structure

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Find returns every node whose logical path matches a doublestar glob,
// e.g. "data/*/function/**/*.mcfunction".
func (t *Tree) Find(pattern string) ([]Path, error) {
	pattern = strings.TrimPrefix(pattern, "/")
	if pattern == "" || !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: bad pattern %q", ErrInvalidPath, pattern)
	}

	var matches []Path
	for _, p := range t.Paths() {
		ok, err := doublestar.Match(pattern, p.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
		}
		if ok {
			matches = append(matches, p)
		}
	}
	return matches, nil
}
