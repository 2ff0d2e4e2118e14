package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/AnnikaStein/WAC-Survey-Suite/internal/audit"
	"github.com/AnnikaStein/WAC-Survey-Suite/internal/survey"
)

var (
	tokensPath string
	listOnly   bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <input.csv> <output>",
	Short: "Validate and deduplicate a survey export",
	Long: `Validate runs the full pipeline on a survey CSV export.

By default a cleaned copy of the export is written to <output>. With
--list-only the export is left untouched and <output> receives one response
ID per line for every response that should be deleted.`,
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&tokensPath, "tokens", "t", "", "path to the known-token list (required)")
	validateCmd.Flags().BoolVarP(&listOnly, "list-only", "l", false, "write IDs to delete instead of a cleaned CSV")
	validateCmd.MarkFlagRequired("tokens")
}

func runValidate(cmd *cobra.Command, args []string) error {
	mode := survey.ModeDelete
	if listOnly {
		mode = survey.ModeList
	}

	result, err := survey.Run(survey.Options{
		InputPath:       args[0],
		TokensPath:      tokensPath,
		OutputPath:      args[1],
		Mode:            mode,
		TokenLength:     cfg.Pipeline.TokenLength,
		SkipLeadingRows: cfg.Pipeline.SkipLeadingRows,
	})
	if err != nil {
		return err
	}

	recordRun(cmd.Context(), result)
	return nil
}

// recordRun stores the run summary when a database is configured. Audit
// failures are logged and never fail the run.
func recordRun(ctx context.Context, result survey.Result) {
	if cfg.Audit.URL == "" {
		return
	}

	svc, err := audit.New(ctx, cfg.Audit)
	if err != nil {
		slog.Warn("run history unavailable", "error", err)
		return
	}
	defer svc.Close()

	if err := svc.RecordRun(ctx, result); err != nil {
		slog.Warn("failed to record run", "run_id", result.RunID, "error", err)
	}
}
