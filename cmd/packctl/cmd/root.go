package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/PackStudio/internal/domain/archive"
	"github.com/GriffinCanCode/PackStudio/internal/domain/catalog"
	"github.com/GriffinCanCode/PackStudio/internal/domain/project"
	"github.com/GriffinCanCode/PackStudio/internal/infrastructure/config"
	"github.com/GriffinCanCode/PackStudio/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PackStudio/internal/shared/paths"
)

var (
	projectsDir    string
	projectExt     string
	packFormatFile string
	fileTypesFile  string
	verbose        bool

	store *project.Store
)

var rootCmd = &cobra.Command{
	Use:   "packctl",
	Short: "Manage project archives without a server",
	Long: `packctl works directly on the project archives in a directory, the
same files the PackStudio server manages.

Defaults come from the server's environment variables (PROJECTS_DIR,
PROJECT_EXT, PACK_FORMAT_FILE, FILE_TYPES_FILE).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		store = s
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cfg := config.LoadOrDefault()

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&projectsDir, "projects", "p", cfg.Storage.ProjectsDir, "directory holding project archives")
	flags.StringVar(&projectExt, "ext", cfg.Storage.ProjectExt, "project archive extension")
	flags.StringVar(&packFormatFile, "pack-formats", cfg.Catalog.PackFormatFile, "release table override (.json, .yaml or .toml)")
	flags.StringVar(&fileTypesFile, "file-types", cfg.Catalog.FileTypesFile, "file type table override (.json, .yaml or .toml)")
	flags.BoolVar(&verbose, "verbose", false, "log store operations to stdout")
}

func openStore() (*project.Store, error) {
	logger := logging.Nop()
	if verbose {
		logger = logging.NewDevelopment()
	}

	cat, err := catalog.New(catalog.Options{
		PackFormatFile: packFormatFile,
		FileTypesFile:  fileTypesFile,
	})
	if err != nil {
		return nil, err
	}
	root, err := paths.NewRoot(projectsDir)
	if err != nil {
		return nil, fmt.Errorf("open projects directory: %w", err)
	}
	mirror, err := archive.New(archive.Config{
		Root:    root,
		Catalog: cat,
		Ext:     projectExt,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	return project.NewStore(project.Config{
		Mirror:  mirror,
		Catalog: cat,
		Logger:  logger,
	})
}

// GetStore returns the initialized store
func GetStore() *project.Store {
	return store
}
