package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/dt-pm-tools/jira-stories/internal/assistant"
	"github.com/dt-pm-tools/jira-stories/internal/jira"
	"github.com/dt-pm-tools/jira-stories/internal/pipeline"
	"github.com/spf13/cobra"
)

var forwardDryRun bool

var forwardCmd = &cobra.Command{
	Use:   "forward",
	Short: "Start an assistant thread with the newest open story",
	Long: `Fetches open stories, normalizes them, and starts a run of the configured
assistant on a new thread whose only message is the newest story's record as JSON.

Use --dry-run to print the record without contacting the assistant.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		var sink pipeline.ThreadStarter
		if !forwardDryRun {
			if err := appConfig.ValidateAssistant(); err != nil {
				return fmt.Errorf("invalid config: %w\nRun 'stories config' to set up credentials", err)
			}
			sink = assistant.NewClient(appConfig.OpenAIKey, logger)
		}

		p := pipeline.New(appConfig, jira.NewClient(appConfig, logger), sink, logger)

		res, err := p.Forward(cmd.Context(), forwardDryRun)
		if errors.Is(err, pipeline.ErrNoStories) {
			fmt.Fprintln(os.Stderr, "No open stories found; nothing to forward.")
			return nil
		}
		if err != nil {
			return err
		}

		if forwardDryRun {
			fmt.Fprintf(os.Stderr, "Dry run: would forward %s\n\n", res.Record.Story)
			return encodeRecords(cmd.OutOrStdout(), "json", res.Record)
		}

		fmt.Fprintf(os.Stderr, "Forwarded %s\n", res.Record.Story)
		return encodeRecords(cmd.OutOrStdout(), "json", res.Run)
	},
}

func init() {
	forwardCmd.Flags().BoolVar(&forwardDryRun, "dry-run", false, "print the record without forwarding it")
	rootCmd.AddCommand(forwardCmd)
}
