package manifest

import (
	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/PackStudio/internal/domain/structure"
)

// Folder is a named folder with its display alias
type Folder struct {
	Name  string
	Alias string
}

// SeedFolders are created under data/<namespace> in every new project
var SeedFolders = []Folder{
	{Name: "tags", Alias: "Tags"},
	{Name: "advancement", Alias: "Advancements"},
	{Name: "worldgen", Alias: "World Generation"},
	{Name: "function", Alias: "Functions"},
	{Name: "structure", Alias: "Structures"},
}

// NamespaceRoot returns the logical path of a namespace folder
func NamespaceRoot(namespace string) string {
	return structure.Join("data", namespace)
}

// SeedTree builds the initial layout: the pack.mcmeta marker at the root
// and the seed folders under data/<namespace>.
func SeedTree(namespace string) (*structure.Tree, error) {
	tree := structure.New()
	root := NamespaceRoot(namespace)

	if err := tree.InsertFolder(root, "", ""); err != nil {
		return nil, err
	}
	if err := tree.InsertFile("", MarkerEntry, ""); err != nil {
		return nil, err
	}
	for _, f := range SeedFolders {
		if err := tree.InsertFolder(root, f.Name, f.Alias); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

// PackMeta is the content of pack.mcmeta
type PackMeta struct {
	Pack PackInfo `json:"pack"`
}

// PackInfo describes the pack to the game
type PackInfo struct {
	Description string `json:"description"`
	PackFormat  int    `json:"pack_format"`
}

// EncodePackMeta renders the marker for a project description and data
// pack format
func EncodePackMeta(description string, packFormat int) ([]byte, error) {
	return sonic.ConfigStd.MarshalIndent(PackMeta{
		Pack: PackInfo{Description: description, PackFormat: packFormat},
	}, "", "  ")
}
