// Package main provides the entry point for the Resume Matcher CLI and HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/logging"
)

var (
	cfgFile string
	v       *viper.Viper

	// Populated by the root command before any subcommand runs.
	appConfig *config.Config
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "resume_matcher",
	Short: "Resume Matcher scores resumes against job descriptions",
	Long: "Resume Matcher extracts text from a PDF resume, finds known skills, and scores it " +
		"against a job description with TF-IDF cosine similarity. Run it once from the " +
		"command line or serve it over HTTP.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	// Assigned here: setup reads rootCmd's flags, so it cannot appear in the literal.
	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")
	v = config.New()
}

// bindFlags binds command flags to config keys so flags take precedence over the
// environment and config file.
func bindFlags() error {
	bindings := []struct {
		key  string
		flag *pflag.Flag
	}{
		{"log.debug", rootCmd.PersistentFlags().Lookup("debug")},
		{"log.json", rootCmd.PersistentFlags().Lookup("json")},
		{"server.addr", serveCmd.Flags().Lookup("addr")},
	}
	for _, b := range bindings {
		if err := v.BindPFlag(b.key, b.flag); err != nil {
			return fmt.Errorf("failed to bind flag for %s: %w", b.key, err)
		}
	}
	return nil
}

func setup(_ *cobra.Command, _ []string) error {
	if err := bindFlags(); err != nil {
		return err
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	l, err := logging.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	appConfig = cfg
	logger = l
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
