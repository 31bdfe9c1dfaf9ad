package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultAcceptanceField is the Jira custom field holding acceptance criteria.
	DefaultAcceptanceField = "customfield_10900"
)

// DefaultExcludedStatuses are the story statuses left out of the search.
var DefaultExcludedStatuses = []string{"Closed", "Cancelled"}

// Config holds Jira and assistant connection settings.
type Config struct {
	URL   string `yaml:"url"   mapstructure:"url"`
	Email string `yaml:"email" mapstructure:"email"`
	Token string `yaml:"token" mapstructure:"token"`

	Project          string   `yaml:"project"           mapstructure:"project"`
	ExcludedStatuses []string `yaml:"excluded_statuses" mapstructure:"excluded_statuses"`
	AcceptanceField  string   `yaml:"acceptance_field"  mapstructure:"acceptance_field"`
	QA               string   `yaml:"qa,omitempty"      mapstructure:"qa"`

	OpenAIKey   string `yaml:"openai_key"   mapstructure:"openai_key"`
	AssistantID string `yaml:"assistant_id" mapstructure:"assistant_id"`
}

// DefaultPath returns the default config file path (~/.jira-stories.yaml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".jira-stories.yaml"
	}
	return filepath.Join(home, ".jira-stories.yaml")
}

// LoadDotEnv loads a .env file into the process environment. Variables that
// are already set win. A missing file is not an error and an empty path
// disables loading.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load reads config from the YAML file and applies env var overrides.
// configPath may be empty to use the default path.
func Load(configPath string) (Config, error) {
	v := viper.New()

	if configPath == "" {
		configPath = DefaultPath()
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetDefault("excluded_statuses", DefaultExcludedStatuses)
	v.SetDefault("acceptance_field", DefaultAcceptanceField)

	// Env var overrides
	v.BindEnv("url", "JIRA_URL")
	v.BindEnv("email", "JIRA_EMAIL")
	v.BindEnv("token", "JIRA_API_TOKEN", "JIRA_TOKEN")
	v.BindEnv("project", "JIRA_PROJECT")
	v.BindEnv("openai_key", "OPENAI_API_KEY")
	v.BindEnv("assistant_id", "ASSISTANT_ID")

	// Read the config file (ignore "not found" errors so env vars still work)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the Jira settings are present.
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("JIRA URL is required (set in config file or JIRA_URL env var)")
	}
	if c.Email == "" {
		return fmt.Errorf("JIRA email is required (set in config file or JIRA_EMAIL env var)")
	}
	if c.Token == "" {
		return fmt.Errorf("JIRA token is required (set in config file or JIRA_API_TOKEN env var)")
	}
	if c.Project == "" {
		return fmt.Errorf("JIRA project is required (set in config file or JIRA_PROJECT env var)")
	}
	return nil
}

// ValidateAssistant checks the settings needed to forward a story.
func (c Config) ValidateAssistant() error {
	if c.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key is required (set in config file or OPENAI_API_KEY env var)")
	}
	if c.AssistantID == "" {
		return fmt.Errorf("assistant ID is required (set in config file or ASSISTANT_ID env var)")
	}
	return nil
}

// Save writes the config to the given path (or default path if empty).
func Save(cfg Config, configPath string) error {
	if configPath == "" {
		configPath = DefaultPath()
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
