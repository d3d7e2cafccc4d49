package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <name> <path>",
	Short: "Remove a file or folder from a project",
	Long: `Remove the node at <path>. Removing a folder removes everything
beneath it.

Examples:
  packctl rm Demo data/demo/worldgen`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := GetStore().RemoveNode(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
