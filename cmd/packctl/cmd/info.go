package cmd

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show a project's metadata",
	Long: `Show a project's metadata and every path in its structure.

Examples:
  packctl info Demo
  packctl info Demo --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := GetStore().Metadata(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if infoJSON {
			data, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "Name:        %s\n", doc.Name)
		fmt.Fprintf(out, "Type:        %s\n", doc.Type.Label())
		fmt.Fprintf(out, "Version:     %s\n", doc.Version)
		fmt.Fprintf(out, "Namespace:   %s\n", doc.Namespace)
		if doc.Description != "" {
			fmt.Fprintf(out, "Description: %s\n", doc.Description)
		}
		fmt.Fprintln(out, "Structure:")
		for _, p := range doc.Structure.Paths() {
			fmt.Fprintf(out, "  %-6s %s\n", p.Kind, p.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "print info.json as stored")
}
