package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dlc2ls/internal/adapters/labelstudio"
)

var mergeCmd = &cobra.Command{
	Use:   "merge-tasks <task-file>... <output>",
	Short: "Merge exported Label Studio task files into a single file",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, output := args[:len(args)-1], args[len(args)-1]

		n, err := labelstudio.MergeTaskFiles(inputs, output)
		if err != nil {
			return err
		}
		fmt.Printf("merged %d tasks from %d files into %s\n", n, len(inputs), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
