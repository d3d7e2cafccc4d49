package structure

import (
	"fmt"
	"sort"
	"strings"
)

// Tree is the root of a project's logical layout. The root has no name of
// its own; Root holds the top-level children.
type Tree struct {
	Root Children
}

// Child describes one entry returned by ListChildren
type Child struct {
	Name  string
	Kind  Kind
	Alias string
}

// Path is a node's full logical path and kind
type Path struct {
	Path string
	Kind Kind
}

// New creates an empty tree
func New() *Tree {
	return &Tree{Root: Children{}}
}

func (t *Tree) root() Children {
	if t.Root == nil {
		t.Root = Children{}
	}
	return t.Root
}

// InsertFolder creates every missing folder along path and, when name is
// not empty, a new folder called name inside it.
func (t *Tree) InsertFolder(path, name, alias string) error {
	var node Node
	if name != "" {
		node = NewFolder(alias)
	}
	return t.insert(path, name, node)
}

// InsertFile creates every missing folder along path and a file called
// name inside it.
func (t *Tree) InsertFile(path, name, alias string) error {
	if name == "" {
		return fmt.Errorf("%w: file name is required", ErrInvalidPath)
	}
	return t.insert(path, name, NewFile(alias))
}

// insert validates the whole operation before changing anything, so a
// failed insert leaves the tree as it was.
func (t *Tree) insert(path, name string, node Node) error {
	segs := Segments(path)
	for _, seg := range segs {
		if !ValidName(seg) {
			return fmt.Errorf("%w: bad segment %q", ErrInvalidPath, seg)
		}
	}
	if node != nil && !ValidName(name) {
		return fmt.Errorf("%w: bad name %q", ErrInvalidPath, name)
	}
	top := name
	if len(segs) > 0 {
		top = segs[0]
	}
	if top == ReservedName {
		return fmt.Errorf("%w: %s is reserved at the root", ErrInvalidPath, ReservedName)
	}

	current := t.root()
	depth := 0
	for ; depth < len(segs); depth++ {
		existing, ok := current[segs[depth]]
		if !ok {
			break
		}
		folder, ok := existing.(*Folder)
		if !ok {
			return fmt.Errorf("%w: %s", ErrPathConflict, strings.Join(segs[:depth+1], "/"))
		}
		current = folder.entries()
	}

	if node != nil && depth == len(segs) {
		if _, exists := current[name]; exists {
			return fmt.Errorf("%w: %s", ErrNodeExists, Join(path, name))
		}
	}

	for _, seg := range segs[depth:] {
		folder := NewFolder("")
		current[seg] = folder
		current = folder.Children
	}
	if node != nil {
		current[name] = node
	}
	return nil
}

// Remove deletes the node at path and returns it. Removing a folder drops
// its whole subtree.
func (t *Tree) Remove(path string) (Node, error) {
	parent, name, err := t.ResolveParent(path)
	if err != nil {
		return nil, err
	}

	node, ok := parent[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, Join(path))
	}
	delete(parent, name)
	return node, nil
}

// ListChildren returns the children of the folder at path, folders first
func (t *Tree) ListChildren(path string) ([]Child, error) {
	node, err := t.Resolve(path)
	if err != nil {
		return nil, err
	}

	folder, ok := node.(*Folder)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a file", ErrInvalidPath, Join(path))
	}

	children := make([]Child, 0, len(folder.Children))
	for _, name := range folder.Children.Names() {
		child := folder.Children[name]
		children = append(children, Child{Name: name, Kind: child.Kind(), Alias: child.Label()})
	}
	return children, nil
}

// Walk visits every node depth first. Siblings are visited folders first
// and then by name.
func (t *Tree) Walk(fn func(path string, node Node) error) error {
	return walkChildren("", t.root(), fn)
}

func walkChildren(prefix string, children Children, fn func(string, Node) error) error {
	for _, name := range children.Names() {
		node := children[name]
		path := name
		if prefix != "" {
			path = prefix + "/" + name
		}
		if err := fn(path, node); err != nil {
			return err
		}
		if folder, ok := node.(*Folder); ok {
			if err := walkChildren(path, folder.Children, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Paths returns every node in the tree sorted by path
func (t *Tree) Paths() []Path {
	var paths []Path
	_ = t.Walk(func(path string, node Node) error {
		paths = append(paths, Path{Path: path, Kind: node.Kind()})
		return nil
	})
	sort.Slice(paths, func(i, j int) bool { return paths[i].Path < paths[j].Path })
	return paths
}

// Len returns the number of nodes in the tree
func (t *Tree) Len() int {
	n := 0
	_ = t.Walk(func(string, Node) error {
		n++
		return nil
	})
	return n
}

// Clone returns a deep copy of the tree
func (t *Tree) Clone() *Tree {
	if t == nil {
		return New()
	}
	return &Tree{Root: t.root().clone()}
}
