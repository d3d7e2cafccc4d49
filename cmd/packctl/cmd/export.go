package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/PackStudio/internal/shared/utils"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Write a distributable zip of a project",
	Long: `Write the project's files, without info.json, to a zip.

Examples:
  packctl export Demo               # writes Demo.zip
  packctl export Demo -o out/demo.zip`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dl, err := GetStore().Download(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := exportOutput
		if out == "" {
			out = dl.Filename
		}
		if err := os.WriteFile(out, dl.Data, 0644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes, sha256 %s)\n", out, len(dl.Data), utils.Short(dl.Checksum))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file")
}
