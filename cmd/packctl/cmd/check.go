package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/PackStudio/internal/domain/archive"
)

var checkCmd = &cobra.Command{
	Use:   "check <name>",
	Short: "Verify a project's structure against its archive entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := GetStore().Verify(cmd.Context(), args[0])
		if err != nil && !(report != nil && errors.Is(err, archive.ErrInconsistentArchive)) {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d nodes, %d entries\n", report.Project, report.Nodes, report.Entries)
		for _, p := range report.Missing {
			fmt.Fprintf(out, "  missing   %s\n", p)
		}
		for _, p := range report.Extra {
			fmt.Fprintf(out, "  extra     %s\n", p)
		}
		for _, p := range report.Mismatch {
			fmt.Fprintf(out, "  mismatch  %s\n", p)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "OK")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
