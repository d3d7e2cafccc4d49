package structure

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// wireNode is the info.json shape of a node. Children is a pointer so an
// empty folder still encodes "children": {}.
type wireNode struct {
	Type     Kind                 `json:"type"`
	Alias    string               `json:"alias"`
	Children *map[string]wireNode `json:"children,omitempty"`
}

// MarshalJSON encodes the tree as a map of top-level nodes
func (t *Tree) MarshalJSON() ([]byte, error) {
	return sonic.ConfigStd.Marshal(toWire(t.root()))
}

// UnmarshalJSON decodes a structure map. A node without a type is a file
// unless it carries children, which matches documents written before the
// type field was mandatory.
func (t *Tree) UnmarshalJSON(data []byte) error {
	var raw map[string]wireNode
	if err := sonic.ConfigStd.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	root, err := fromWire(raw, "")
	if err != nil {
		return err
	}
	t.Root = root
	return nil
}

func toWire(children Children) map[string]wireNode {
	out := make(map[string]wireNode, len(children))
	for name, node := range children {
		switch n := node.(type) {
		case *Folder:
			nested := toWire(n.Children)
			out[name] = wireNode{Type: KindFolder, Alias: n.Alias, Children: &nested}
		case *File:
			out[name] = wireNode{Type: KindFile, Alias: n.Alias}
		}
	}
	return out
}

func fromWire(raw map[string]wireNode, prefix string) (Children, error) {
	children := make(Children, len(raw))
	for name, w := range raw {
		path := name
		if prefix != "" {
			path = prefix + "/" + name
		}
		if !ValidName(name) {
			return nil, fmt.Errorf("%w: bad node name %q", ErrMalformed, path)
		}
		if prefix == "" && name == ReservedName {
			return nil, fmt.Errorf("%w: %s is reserved at the root", ErrMalformed, name)
		}

		kind := w.Type
		if kind == "" {
			kind = KindFile
			if w.Children != nil {
				kind = KindFolder
			}
		}

		switch kind {
		case KindFolder:
			folder := NewFolder(w.Alias)
			if w.Children != nil {
				nested, err := fromWire(*w.Children, path)
				if err != nil {
					return nil, err
				}
				folder.Children = nested
			}
			children[name] = folder
		case KindFile:
			if w.Children != nil {
				return nil, fmt.Errorf("%w: file %s has children", ErrMalformed, path)
			}
			children[name] = NewFile(w.Alias)
		default:
			return nil, fmt.Errorf("%w: %s has unknown type %q", ErrMalformed, path, w.Type)
		}
	}
	return children, nil
}
