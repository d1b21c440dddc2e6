package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dlc2ls/internal/adapters/filesystem"
	"dlc2ls/internal/adapters/labelstudio"
	"dlc2ls/internal/adapters/tui"
	"dlc2ls/internal/application/commands"
)

var exportCmd = &cobra.Command{
	Use:   "export <project-dir> <ls-project-id>",
	Short: "Export Label Studio annotations back into the local project",
	Long: `Export a Label Studio project's annotated tasks into per-video
CollectedData tables under the local project's labeled-data tree. Any
existing table is renamed to a backup before the new one is written, so no
previous export is ever lost.

Example:
  dlc2ls export ~/projects/openfield 12 --key <token>`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAPIKey(); err != nil {
			return err
		}

		projectID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid project id %q: %w", args[1], err)
		}

		repo := filesystem.NewRepository(args[0])
		store := labelstudio.NewClient(endpoint, apiKey)

		exportCmd := commands.NewExportCommand(store, repo, tui.NewReporter())
		exportCmd.ProjectID = projectID

		result, err := exportCmd.Execute(context.Background())
		if result != nil {
			fmt.Println(result.Report.Summary())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
