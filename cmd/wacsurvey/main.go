package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/AnnikaStein/WAC-Survey-Suite/internal/survey"
)

// Exit codes. Missing input files get a distinct status so callers can tell
// "file not there" apart from every other failure.
const (
	exitOK            = 0
	exitError         = 1
	exitInputNotFound = 2
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err == nil {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	if err := rootCmd.Execute(); err != nil {
		slog.Error("run failed", "error", err)
		if errors.Is(err, survey.ErrInputNotFound) {
			os.Exit(exitInputNotFound)
		}
		os.Exit(exitError)
	}
	os.Exit(exitOK)
}
