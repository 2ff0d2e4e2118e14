package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnnikaStein/WAC-Survey-Suite/internal/config"
	"github.com/AnnikaStein/WAC-Survey-Suite/internal/logging"
)

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "wacsurvey",
	Short: "WAC survey response validation suite",
	Long: `wacsurvey validates and deduplicates survey responses against the
known-token list.

Respondents identify themselves with a secret 64-character token. The suite
repairs tokens that landed in the wrong column, removes responses sharing a
token (keeping the earliest), rejects unknown or missing tokens, and writes
either a cleaned CSV or the list of response IDs to delete.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
