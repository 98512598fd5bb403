// Package main provides the IntelliResume command-line interface and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/intelliresume/internal/config"
	"github.com/jonathan/intelliresume/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "intelliresume",
	Short: "AI-assisted resume builder",
	Long: `IntelliResume turns your experience, an optional existing resume and an optional job description
into a structured resume generated by Gemini, renders it through one of several templates and exports
it to HTML, PDF or DOCX.

Configuration can be loaded from a JSON file using --config. Environment variables override the file
and command-line flags override both.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var (
	configPath      string
	flagAPIKey      string
	flagDatabaseURL string
	flagHistoryPath string
	flagModel       string
	flagTemplate    string
	flagLogLevel    string
	flagLogFormat   string

	// appConfig is the effective configuration, set before any command runs.
	appConfig *config.Config
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	pf.StringVar(&flagAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY env var)")
	pf.StringVar(&flagDatabaseURL, "db-url", "", "PostgreSQL URL for history (defaults to DATABASE_URL env var)")
	pf.StringVar(&flagHistoryPath, "history-path", "", "History file used when no database is configured")
	pf.StringVar(&flagModel, "model", "", "Gemini model id (defaults to INTELLIRESUME_MODEL or the built-in model)")
	pf.StringVarP(&flagTemplate, "template", "t", "", "Template for HTML and PDF output: classic, modern, creative")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFormat, "log-format", "", "Log format: color, text, json")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers the config file, the environment and the persistent
// flags, validates the result and sets up logging.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath, os.Getenv)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	overrides := []struct {
		name string
		dst  *string
		val  string
	}{
		{"api-key", &cfg.APIKey, flagAPIKey},
		{"db-url", &cfg.DatabaseURL, flagDatabaseURL},
		{"history-path", &cfg.HistoryPath, flagHistoryPath},
		{"model", &cfg.Model, flagModel},
		{"template", &cfg.Template, flagTemplate},
		{"log-level", &cfg.LogLevel, flagLogLevel},
		{"log-format", &cfg.LogFormat, flagLogFormat},
	}
	for _, o := range overrides {
		if flags.Changed(o.name) {
			*o.dst = o.val
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Setup(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	appConfig = cfg
	return nil
}
