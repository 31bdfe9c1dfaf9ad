package cmd

import (
	"fmt"
	"os"

	"github.com/dt-pm-tools/jira-stories/internal/jira"
	"github.com/dt-pm-tools/jira-stories/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outputDir    string
	outputFormat string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List open user stories as normalized records",
	Long:  `Searches the configured project for open stories in active sprints and prints each one as a flat record. Writes to stdout by default, or one file per story with --output-dir.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		client := jira.NewClient(appConfig, logger)
		p := pipeline.New(appConfig, client, nil, logger)

		records, err := p.Fetch(cmd.Context())
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintln(os.Stderr, "No open stories found.")
			return nil
		}

		if outputDir != "" {
			return writeRecords(outputDir, outputFormat, records)
		}
		return encodeRecords(cmd.OutOrStdout(), outputFormat, records)
	},
}

func init() {
	listCmd.Flags().StringVar(&outputDir, "output-dir", "", "write output to <dir>/<KEY>.<ext> instead of stdout")
	listCmd.Flags().StringVarP(&outputFormat, "output", "o", "json", "output format (json or yaml)")
	rootCmd.AddCommand(listCmd)
}
