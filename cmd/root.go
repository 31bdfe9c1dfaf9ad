package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dt-pm-tools/jira-stories/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile   string
	envFile   string
	verbose   bool
	appConfig config.Config
	logger    = zap.NewNop()
	version   = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "stories",
	Short: "Forward open JIRA user stories to an AI assistant",
	Long: `Fetches open user stories from the active sprints of a JIRA project, flattens
each one into a simple record (rich-text description and acceptance criteria
become plain text), and starts an assistant thread with the newest story.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := zc.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.jira-stories.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading config (empty to skip)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// loadConfig loads and validates configuration. Commands that need JIRA access call this.
func loadConfig() error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w\nRun 'stories config' to set up credentials", err)
	}
	appConfig = cfg
	logger.Debug("config loaded", zap.String("url", cfg.URL), zap.String("project", cfg.Project))
	return nil
}
