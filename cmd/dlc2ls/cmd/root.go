package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dlc2ls/internal/config"
)

var (
	endpoint string
	apiKey   string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "dlc2ls",
	Short: "Sync pose-estimation annotation projects with Label Studio",
	Long: `dlc2ls moves keypoint annotation data between a DeepLabCut-style
project directory and a Label Studio instance.

Import uploads the project's labeled-data images (with any existing
annotations) into a new or existing Label Studio project, recording every
upload in a manifest so repeated imports never duplicate images. Export
pulls annotated tasks back into per-video CollectedData tables, backing up
any table it replaces.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		config.LoadEnv()
		if endpoint == "" {
			endpoint = config.Endpoint()
		}
		if apiKey == "" {
			apiKey = config.APIKey()
		}
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// requireAPIKey guards the commands that talk to the annotation host
func requireAPIKey() error {
	if apiKey == "" {
		return fmt.Errorf("an API key is required (--key or DLC2LS_API_KEY)")
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "URL of the Label Studio instance (default $DLC2LS_ENDPOINT or "+config.DefaultEndpoint+")")
	rootCmd.PersistentFlags().StringVarP(&apiKey, "key", "k", "", "personal API key (default $DLC2LS_API_KEY)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
