// Package structure implements the logical layout of a project: a tree of
// named folders and files, each carrying a display alias.
//
// The tree is a tagged variant. A node is either a *Folder, which owns a
// Children map, or a *File, which is terminal. Names are the keys of the
// parent's Children map, so siblings are unique by construction.
//
// Paths are slash separated and empty segments are dropped, which makes
// "", "/" and "//" all address the root:
//
//	tree := structure.New()
//	_ = tree.InsertFolder("data/demo", "function", "Functions")
//	_ = tree.InsertFile("data/demo/function", "main.mcfunction", "")
//	node, err := tree.Resolve("data/demo/function/main.mcfunction")
//
// The tree serializes to the "structure" field of a project's info.json.
// The encoding is compatible with documents written by earlier releases:
// every node carries "type" and "alias", and folders always carry
// "children".
package structure
