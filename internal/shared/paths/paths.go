package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidName indicates a name that cannot address a single entry
	// of the root
	ErrInvalidName = errors.New("invalid name")

	// ErrOutsideRoot indicates a name that resolves outside the root
	ErrOutsideRoot = errors.New("path escapes root")
)

// Root is a canonical directory that names are resolved against
type Root struct {
	dir string
}

// NewRoot creates dir if needed and canonicalizes it
func NewRoot(dir string) (*Root, error) {
	if dir == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create root %s: %w", dir, err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", dir, err)
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", dir, err)
	}
	return &Root{dir: canonical}, nil
}

// Dir returns the canonical root directory
func (r *Root) Dir() string {
	return r.dir
}

// ValidateName checks that name is a single path element
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return fmt.Errorf("%w: %q contains a separator", ErrInvalidName, name)
	case filepath.IsAbs(name) || filepath.VolumeName(name) != "":
		return fmt.Errorf("%w: %q is absolute", ErrInvalidName, name)
	}
	return nil
}

// Resolve returns the absolute path of name inside the root. A name that
// exists as a symlink must point inside the root as well.
func (r *Root) Resolve(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	path := filepath.Join(r.dir, name)
	real, err := filepath.EvalSymlinks(path)
	switch {
	case err == nil:
		path = real
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("resolve %s: %w", name, err)
	}

	if !r.Contains(path) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, name)
	}
	return path, nil
}

// Contains reports whether path lies strictly inside the root
func (r *Root) Contains(path string) bool {
	rel, err := filepath.Rel(r.dir, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
