package cmd

import (
	"fmt"
	"strings"

	"github.com/dt-pm-tools/jira-stories/internal/jira"
	"github.com/dt-pm-tools/jira-stories/internal/story"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <issue-key>",
	Short: "Fetch one JIRA issue and print its normalized record",
	Long:  `Fetches a JIRA issue by key and prints the same flat record that would be forwarded to the assistant.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		issueKey := strings.ToUpper(args[0])
		n := story.NewNormalizer(appConfig)

		client := jira.NewClient(appConfig, logger)
		issue, err := client.GetIssue(cmd.Context(), issueKey, jira.StoryFields(n.AcceptanceField))
		if err != nil {
			return fmt.Errorf("fetching issue %s: %w", issueKey, err)
		}

		return encodeRecords(cmd.OutOrStdout(), outputFormat, n.Normalize(*issue))
	},
}

func init() {
	getCmd.Flags().StringVarP(&outputFormat, "output", "o", "json", "output format (json or yaml)")
	rootCmd.AddCommand(getCmd)
}
