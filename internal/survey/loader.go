package survey

import (
	"fmt"
	"os"
	"strings"

	"github.com/AnnikaStein/WAC-Survey-Suite/internal/csvx"
	"github.com/AnnikaStein/WAC-Survey-Suite/internal/schema"
)

// Load reads the survey table and the token list into a fresh pipeline
// state. A missing input file yields ErrInputNotFound; no other per-record
// condition is an error here.
func Load(opts Options) (*State, error) {
	rows, err := csvx.Read(opts.InputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("survey file %s: %w", opts.InputPath, ErrInputNotFound)
		}
		return nil, fmt.Errorf("reading survey file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("survey file %s has no header row", opts.InputPath)
	}

	table := NewTable(rows[0], rows[1:])

	if missing := schema.MissingRequired(table.HeaderIndex(), schema.SurveyFieldSpecs); len(missing) > 0 {
		return nil, fmt.Errorf("survey file %s missing required columns: %s",
			opts.InputPath, strings.Join(missing, ", "))
	}

	tokens, err := loadTokens(opts.TokensPath)
	if err != nil {
		return nil, err
	}

	total := table.Len() - opts.SkipLeadingRows
	if total < 0 {
		total = 0
	}

	return &State{
		Table:           table,
		Tokens:          tokens,
		Mode:            opts.Mode,
		TokenLength:     opts.tokenLength(),
		SkipLeadingRows: opts.SkipLeadingRows,
		Deletions:       &DeletionList{},
		TotalResponses:  total,
	}, nil
}

// loadTokens reads the newline-delimited token list. Lines are kept
// verbatim; no trimming happens at load time.
func loadTokens(path string) (TokenSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("token file %s: %w", path, ErrInputNotFound)
		}
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	return NewTokenSet(strings.Split(string(data), "\n")), nil
}
