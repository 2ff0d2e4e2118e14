// Package audit records validation run summaries in PostgreSQL.
//
// The sink is optional: when no database URL is configured the suite runs
// without history, and a failure to record a run is logged but never fails
// the run itself.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AnnikaStein/WAC-Survey-Suite/internal/config"
	"github.com/AnnikaStein/WAC-Survey-Suite/internal/survey"
)

// RunRecord is one stored validation run.
type RunRecord struct {
	RunID          string        `json:"runId"`
	Mode           string        `json:"mode"`
	InputPath      string        `json:"inputPath"`
	OutputPath     string        `json:"outputPath"`
	TotalResponses int           `json:"totalResponses"`
	Repaired       int           `json:"repaired"`
	Duplicates     int           `json:"duplicates"`
	Invalid        int           `json:"invalid"`
	Affected       int           `json:"affected"`
	Duration       time.Duration `json:"duration"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// Service handles run-history operations against a connection pool.
type Service struct {
	pool *pgxpool.Pool
}

// New connects to the configured database, verifies the connection, and
// ensures the history table exists.
func New(ctx context.Context, cfg config.AuditConfig) (*Service, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MinConns = int32(cfg.MinConns)

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Service{pool: pool}
	if err := s.ensureSchema(connectCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the connection pool.
func (s *Service) Close() {
	s.pool.Close()
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS validation_runs (
	run_id          uuid PRIMARY KEY,
	mode            text NOT NULL,
	input_path      text NOT NULL,
	output_path     text NOT NULL,
	total_responses integer NOT NULL,
	repaired        integer NOT NULL,
	duplicates      integer NOT NULL,
	invalid         integer NOT NULL,
	affected        integer NOT NULL,
	duration_ms     bigint NOT NULL,
	created_at      timestamptz NOT NULL DEFAULT now()
)`

// ensureSchema creates the history table when absent.
func (s *Service) ensureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensuring audit schema: %w", err)
	}
	return nil
}

// RecordRun stores the summary of a completed run.
func (s *Service) RecordRun(ctx context.Context, result survey.Result) error {
	const q = `
		INSERT INTO validation_runs (
			run_id, mode, input_path, output_path,
			total_responses, repaired, duplicates, invalid, affected, duration_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.pool.Exec(ctx, q,
		result.RunID,
		string(result.Mode),
		result.InputPath,
		result.OutputPath,
		result.TotalResponses,
		result.Repaired,
		result.Duplicates,
		result.Invalid,
		result.Affected,
		result.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", result.RunID, err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Service) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	const q = `
		SELECT run_id, mode, input_path, output_path,
		       total_responses, repaired, duplicates, invalid, affected,
		       duration_ms, created_at
		FROM validation_runs
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := s.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return records, nil
}

// GetRun returns one run by ID. Returns pgx.ErrNoRows when absent.
func (s *Service) GetRun(ctx context.Context, runID string) (RunRecord, error) {
	const q = `
		SELECT run_id, mode, input_path, output_path,
		       total_responses, repaired, duplicates, invalid, affected,
		       duration_ms, created_at
		FROM validation_runs
		WHERE run_id = $1`

	rec, err := scanRun(s.pool.QueryRow(ctx, q, runID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return RunRecord{}, err
		}
		return RunRecord{}, fmt.Errorf("loading run %s: %w", runID, err)
	}
	return rec, nil
}

// scanRun reads one history row.
func scanRun(row pgx.Row) (RunRecord, error) {
	var rec RunRecord
	var durationMs int64
	err := row.Scan(
		&rec.RunID,
		&rec.Mode,
		&rec.InputPath,
		&rec.OutputPath,
		&rec.TotalResponses,
		&rec.Repaired,
		&rec.Duplicates,
		&rec.Invalid,
		&rec.Affected,
		&durationMs,
		&rec.CreatedAt,
	)
	if err != nil {
		return RunRecord{}, err
	}
	rec.Duration = time.Duration(durationMs) * time.Millisecond
	return rec, nil
}
