package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/dt-pm-tools/jira-stories/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure JIRA and assistant settings",
	Long:  `Interactively set up the JIRA URL, email, API token, project, OpenAI API key and assistant ID. Settings are saved to ~/.jira-stories.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(os.Stdin)

		// Load existing config for defaults
		existing, _ := config.Load(cfgFile)

		url := prompt(reader, "JIRA URL", existing.URL, "e.g., https://your-org.atlassian.net")
		email := prompt(reader, "Email", existing.Email, "")

		token, err := promptSecret("API Token", existing.Token)
		if err != nil {
			return err
		}

		project := prompt(reader, "Project key", existing.Project, "e.g., WCX")
		qa := prompt(reader, "QA names", existing.QA, "optional")

		openAIKey, err := promptSecret("OpenAI API key", existing.OpenAIKey)
		if err != nil {
			return err
		}
		assistantID := prompt(reader, "Assistant ID", existing.AssistantID, "e.g., asst_...")

		cfg := existing
		cfg.URL = url
		cfg.Email = email
		cfg.Token = token
		cfg.Project = project
		cfg.QA = qa
		cfg.OpenAIKey = openAIKey
		cfg.AssistantID = assistantID

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}

		if err := config.Save(cfg, path); err != nil {
			return err
		}

		fmt.Printf("Configuration saved to %s\n", path)
		return nil
	},
}

// prompt reads one line, falling back to the existing value on empty input.
func prompt(reader *bufio.Reader, label, current, hint string) string {
	switch {
	case current != "":
		fmt.Printf("%s [%s]: ", label, current)
	case hint != "":
		fmt.Printf("%s (%s): ", label, hint)
	default:
		fmt.Printf("%s: ", label)
	}
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}

// promptSecret reads masked input, keeping the existing value on empty input.
func promptSecret(label, current string) (string, error) {
	fmt.Printf("%s (input hidden): ", label)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // newline after hidden input
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}
	secret := strings.TrimSpace(string(b))
	if secret == "" {
		return current, nil
	}
	return secret, nil
}

func init() {
	rootCmd.AddCommand(configCmd)
}
