package web

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/AnnikaStein/WAC-Survey-Suite/internal/csvx"
	"github.com/AnnikaStein/WAC-Survey-Suite/internal/survey"
)

// handleHealth answers liveness probes.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListRuns returns the most recent validation runs.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.audit == nil {
		s.respondError(w, r, errors.New("run history requires a configured database"), http.StatusServiceUnavailable)
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			s.respondError(w, r, errors.New("limit must be an integer between 1 and 500"), http.StatusBadRequest)
			return
		}
		limit = n
	}

	runs, err := s.audit.ListRuns(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

// handleGetRun returns a single validation run by ID.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.audit == nil {
		s.respondError(w, r, errors.New("run history requires a configured database"), http.StatusServiceUnavailable)
		return
	}

	runID := chi.URLParam(r, "runID")
	run, err := s.audit.GetRun(r.Context(), runID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.respondError(w, r, errors.New("run not found"), http.StatusNotFound)
			return
		}
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, run)
}

// PreviewResponse is the JSON shape of a CSV preview.
type PreviewResponse struct {
	File              string     `json:"file"`
	Columns           []string   `json:"columns"`
	Rows              [][]string `json:"rows"`
	TotalRows         int        `json:"totalRows"`
	Truncated         bool       `json:"truncated"`
	HasOverflowColumn bool       `json:"hasOverflowColumn"`
}

// handlePreview returns the first rows of a survey CSV under the data root,
// loaded through the same text-only table semantics the pipeline uses.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("file")
	if name == "" {
		s.respondError(w, r, errors.New("file query parameter is required"), http.StatusBadRequest)
		return
	}

	path, err := s.resolveDataPath(name)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	maxRows := s.cfg.PreviewMaxRows
	if raw := r.URL.Query().Get("rows"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.respondError(w, r, errors.New("rows must be a positive integer"), http.StatusBadRequest)
			return
		}
		if n < maxRows {
			maxRows = n
		}
	}

	rows, err := csvx.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.respondError(w, r, errors.New("file not found"), http.StatusNotFound)
			return
		}
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if len(rows) == 0 {
		s.respondError(w, r, errors.New("file has no header row"), http.StatusUnprocessableEntity)
		return
	}

	table := survey.NewTable(rows[0], rows[1:])
	total := table.Len()

	truncated := total > maxRows
	n := total
	if truncated {
		n = maxRows
	}
	preview := make([][]string, 0, n)
	for _, rec := range table.Records[:n] {
		cells := make([]string, len(rec.Cells))
		for i, c := range rec.Cells {
			cells[i] = csvx.CleanCell(c)
		}
		preview = append(preview, cells)
	}

	respondJSON(w, http.StatusOK, PreviewResponse{
		File:              name,
		Columns:           table.Columns,
		Rows:              preview,
		TotalRows:         total,
		Truncated:         truncated,
		HasOverflowColumn: table.HasOverflowColumn(),
	})
}

// resolveDataPath resolves name inside the configured data root and rejects
// any path that escapes it.
func (s *Server) resolveDataPath(name string) (string, error) {
	root, err := filepath.Abs(s.cfg.DataRoot)
	if err != nil {
		return "", errors.New("invalid data root")
	}

	path := filepath.Join(root, filepath.Clean("/"+name))
	if path != root && !strings.HasPrefix(path, root+string(filepath.Separator)) {
		return "", errors.New("file is outside the data root")
	}
	return path, nil
}
