package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/PackStudio/internal/domain/manifest"
)

var createSpec manifest.Spec

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project with the standard layout",
	Long: `Create a new project archive seeded with data/<namespace>, its
standard folders and a pack.mcmeta marker.

Examples:
  packctl create Demo --version 1.20 --namespace demo
  packctl create Textures --version 1.20.2 --namespace tex --type resourcepack`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec := createSpec
		spec.Name = args[0]

		doc, err := GetStore().Create(cmd.Context(), spec)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s, %s, namespace %s)\n",
			doc.Name, doc.Type.Label(), doc.Version, doc.Namespace)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	f := createCmd.Flags()
	f.StringVar(&createSpec.Version, "version", "", "target release, see 'packctl versions'")
	f.StringVar(&createSpec.Namespace, "namespace", "", "pack namespace")
	f.StringVar(&createSpec.Type, "type", string(manifest.TypeDataPack), "project type")
	f.StringVar(&createSpec.Description, "description", "", "project description")
	f.StringVar(&createSpec.Icon, "icon", "", "icon reference")
	_ = createCmd.MarkFlagRequired("version")
	_ = createCmd.MarkFlagRequired("namespace")
}
