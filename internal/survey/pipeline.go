package survey

import (
	"time"

	"github.com/google/uuid"

	"github.com/AnnikaStein/WAC-Survey-Suite/internal/logging"
)

// Run executes the full validation pipeline described by opts and returns a
// summary of what happened. The pipeline is synchronous and runs to
// completion or fails on the first whole-file error; per-record anomalies
// never surface as errors.
func Run(opts Options) (Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := logging.ForRun(runID)

	log.Debug("opening files", "input", opts.InputPath, "tokens", opts.TokensPath)
	st, err := Load(opts)
	if err != nil {
		return Result{}, err
	}
	st.SetLogger(log)

	log.Info("fixing columns", "overflow_column", st.Table.OverflowColumnName())
	RepairTokenColumn(st)
	if st.Repaired > 0 {
		log.Info("repaired misplaced tokens", "count", st.Repaired)
	}

	log.Info("checking responses with duplicated tokens")
	Deduplicate(st)
	if st.Mode == ModeDelete {
		log.Info("removed duplicates", "count", st.Duplicates)
	} else {
		log.Info("found duplicates", "count", st.Duplicates)
	}

	log.Info("validating responses")
	ValidateTokens(st)

	result := Result{
		RunID:          runID,
		Mode:           st.Mode,
		InputPath:      opts.InputPath,
		OutputPath:     opts.OutputPath,
		TotalResponses: st.TotalResponses,
		Repaired:       st.Repaired,
		Duplicates:     st.Duplicates,
		Invalid:        st.Invalid,
	}

	switch st.Mode {
	case ModeList:
		if st.Table.HasOverflowColumn() && st.Table.OverflowHasData() {
			log.Warn("overflow column is not empty",
				"column", st.Table.OverflowColumnName())
		}
		n, err := EmitList(st, opts.OutputPath)
		if err != nil {
			return Result{}, err
		}
		result.Affected = n
	default:
		if err := EmitTable(st, opts.OutputPath); err != nil {
			return Result{}, err
		}
		result.Affected = st.Duplicates + st.Invalid
	}

	result.Duration = time.Since(start)
	log.Info("run complete",
		"mode", result.Mode,
		"total_responses", result.TotalResponses,
		"duplicates", result.Duplicates,
		"invalid", result.Invalid,
		"affected", result.Affected,
		"duration", result.Duration,
	)

	return result, nil
}
