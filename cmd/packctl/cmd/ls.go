package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/PackStudio/internal/domain/structure"
)

var lsCmd = &cobra.Command{
	Use:   "ls <name> [path]",
	Short: "List a folder inside a project",
	Long: `List the direct children of a folder, folders first.

Examples:
  packctl ls Demo
  packctl ls Demo data/demo/function`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 2 {
			path = args[1]
		}

		nodes, err := GetStore().ListDirectory(cmd.Context(), args[0], path)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, n := range nodes {
			name := n.Name
			label := n.FileType
			if n.Type == structure.KindFolder {
				name += "/"
				label = "Folder"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", name, label, n.Size, n.Alias)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
