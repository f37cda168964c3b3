// Package main is the entry point for the pagekit CLI.
//
// Usage:
//
//	pagekit serve -c pagekit.yaml                       # Serve localised pages
//	pagekit translate index.html --lang en -o out.html  # Translate a page
//	pagekit export report.html -s '#report' -o r.pdf    # Export an element to PDF
//	pagekit version                                     # Show version info
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/porticus-lab/pagekit/config"
)

// Version information, set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "pagekit",
	Short: "Localised pages, error surfaces and PDF export",
	Long: `pagekit serves and rewrites HTML pages.

Pages tag translatable text with data-i18n, data-i18n-placeholder and
data-i18n-title attributes. Dictionaries live in <site_dir>/lang/<code>.json.

Configuration is read from the file given with -c, then from PAGEKIT_*
environment variables and an optional .env file.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "pagekit %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to config file")
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration named by the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger creates a JSON logger for CLI use.
func newLogger(cfg *config.Config) *slog.Logger {
	level, _ := cfg.Level()
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
