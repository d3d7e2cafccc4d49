package structure

import (
	"sort"
	"strings"
)

// Kind tags a node as a folder or a file
type Kind string

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
)

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	return k == KindFolder || k == KindFile
}

// Node is either a *Folder or a *File
type Node interface {
	Kind() Kind
	// Label returns the display alias, empty when none was set
	Label() string
	clone() Node
}

// Children maps a child name to its node
type Children map[string]Node

// Names returns the child names, folders first and then alphabetically
func (c Children) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		fi, fj := c[names[i]].Kind() == KindFolder, c[names[j]].Kind() == KindFolder
		if fi != fj {
			return fi
		}
		return names[i] < names[j]
	})
	return names
}

// Folder is a node that holds children
type Folder struct {
	Alias    string
	Children Children
}

// NewFolder creates an empty folder
func NewFolder(alias string) *Folder {
	return &Folder{Alias: alias, Children: Children{}}
}

func (f *Folder) Kind() Kind    { return KindFolder }
func (f *Folder) Label() string { return f.Alias }

func (f *Folder) clone() Node {
	return &Folder{Alias: f.Alias, Children: f.Children.clone()}
}

// entries returns the children map, allocating it on first use
func (f *Folder) entries() Children {
	if f.Children == nil {
		f.Children = Children{}
	}
	return f.Children
}

// File is a terminal node
type File struct {
	Alias string
}

// NewFile creates a file node
func NewFile(alias string) *File {
	return &File{Alias: alias}
}

func (f *File) Kind() Kind    { return KindFile }
func (f *File) Label() string { return f.Alias }

func (f *File) clone() Node {
	return &File{Alias: f.Alias}
}

func (c Children) clone() Children {
	out := make(Children, len(c))
	for name, node := range c {
		out[name] = node.clone()
	}
	return out
}

// ReservedName is the root level name the archive keeps for the manifest.
// No node may use it at the root, as a file or as a folder.
const ReservedName = "info.json"

// ValidName reports whether name can be used as a single path segment.
// Names become archive entry paths, so separators and dot segments are
// rejected.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}
