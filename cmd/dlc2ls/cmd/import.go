package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dlc2ls/internal/adapters/filesystem"
	"dlc2ls/internal/adapters/labelstudio"
	"dlc2ls/internal/adapters/tui"
	"dlc2ls/internal/application/commands"
)

var (
	updateProject int
	filterPattern []string
)

var importCmd = &cobra.Command{
	Use:   "import <project-dir>",
	Short: "Import local images and annotations into Label Studio",
	Long: `Import a project's labeled-data images into Label Studio.

Without --update-project a new Label Studio project is created, named after
the local project's Task, with one labelable keypoint per configured
bodypart. With --update-project the import is differential: images already
recorded in the project's upload manifest are skipped.

Examples:
  dlc2ls import ~/projects/openfield --key <token>
  dlc2ls import ~/projects/openfield --key <token> --update-project 12
  dlc2ls import ~/projects/openfield --key <token> --filter '*_front.png'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAPIKey(); err != nil {
			return err
		}

		repo := filesystem.NewRepository(args[0])
		store := labelstudio.NewClient(endpoint, apiKey)

		importCmd := commands.NewImportCommand(store, repo, tui.NewReporter())
		importCmd.UpdateProject = updateProject
		importCmd.Filters = filterPattern

		result, err := importCmd.Execute(context.Background())
		if result != nil {
			fmt.Printf("project %d (%s)\n", result.Project.ID, result.Project.Title)
			fmt.Println(result.Report.Summary())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().IntVar(&updateProject, "update-project", 0, "differentially update this existing Label Studio project")
	importCmd.Flags().StringArrayVar(&filterPattern, "filter", nil, "only import images whose group/file path matches a pattern (repeatable)")
}
