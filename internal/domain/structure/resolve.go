package structure

import (
	"fmt"
	"strings"
)

// Segments splits a logical path on "/" and drops empty segments
func Segments(path string) []string {
	parts := strings.Split(path, "/")
	segs := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segs = append(segs, part)
		}
	}
	return segs
}

// Join builds a logical path from segments
func Join(segs ...string) string {
	return strings.Join(Segments(strings.Join(segs, "/")), "/")
}

// Resolve returns the node addressed by path. The root path returns a
// folder wrapping the tree's top-level children; mutating its Children
// mutates the tree.
func (t *Tree) Resolve(path string) (Node, error) {
	segs := Segments(path)
	if len(segs) == 0 {
		return &Folder{Children: t.root()}, nil
	}

	parent, err := t.walk(segs[:len(segs)-1])
	if err != nil {
		return nil, err
	}

	node, ok := parent[segs[len(segs)-1]]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, strings.Join(segs, "/"))
	}
	return node, nil
}

// ResolveParent returns the children map that holds the node at path along
// with the node's name. The node itself does not need to exist.
func (t *Tree) ResolveParent(path string) (Children, string, error) {
	segs := Segments(path)
	if len(segs) == 0 {
		return nil, "", fmt.Errorf("%w: root has no parent", ErrInvalidPath)
	}

	parent, err := t.walk(segs[:len(segs)-1])
	if err != nil {
		return nil, "", err
	}
	return parent, segs[len(segs)-1], nil
}

// walk descends through segs and returns the children of the last folder
func (t *Tree) walk(segs []string) (Children, error) {
	current := t.root()
	for i, seg := range segs {
		node, ok := current[seg]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, strings.Join(segs[:i+1], "/"))
		}

		switch n := node.(type) {
		case *Folder:
			current = n.entries()
		case *File:
			return nil, fmt.Errorf("%w: %s is a file", ErrInvalidPath, strings.Join(segs[:i+1], "/"))
		}
	}
	return current, nil
}
