package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/PackStudio/internal/domain/project"
	"github.com/GriffinCanCode/PackStudio/internal/domain/structure"
)

var (
	addType    string
	addAlias   string
	addContent string
	addFrom    string
)

var addCmd = &cobra.Command{
	Use:   "add <name> <path> <node>",
	Short: "Add a file or folder to a project",
	Long: `Add a file or folder named <node> under <path>. Missing folders
along <path> are created.

Examples:
  packctl add Demo data/demo/function main.mcfunction --content "say hi"
  packctl add Demo data/demo/function load.mcfunction --from ./load.mcfunction
  packctl add Demo data/demo/tags blocks --type folder --alias "Block Tags"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		content := addContent
		if addFrom != "" {
			if addContent != "" {
				return fmt.Errorf("--content and --from are mutually exclusive")
			}
			data, err := os.ReadFile(addFrom)
			if err != nil {
				return err
			}
			content = string(data)
		}

		req := project.NodeRequest{
			Path:    args[1],
			Name:    args[2],
			Type:    structure.Kind(addType),
			Alias:   addAlias,
			Content: content,
		}
		if err := GetStore().AddNode(cmd.Context(), args[0], req); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", req.Type, structure.Join(req.Path, req.Name))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	f := addCmd.Flags()
	f.StringVarP(&addType, "type", "t", string(structure.KindFile), "node type: file or folder")
	f.StringVar(&addAlias, "alias", "", "display alias")
	f.StringVar(&addContent, "content", "", "file content")
	f.StringVar(&addFrom, "from", "", "read file content from a local file")
}
