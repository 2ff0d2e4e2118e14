package survey

import (
	"errors"
	"log/slog"
	"time"

	"github.com/AnnikaStein/WAC-Survey-Suite/internal/schema"
)

// ErrInputNotFound reports a missing survey or token file. It is fatal for
// the whole run; callers map it to a distinct exit status.
var ErrInputNotFound = errors.New("input file not found")

// Mode selects what the pipeline produces.
type Mode string

const (
	// ModeDelete removes bad records in place and writes a cleaned CSV.
	ModeDelete Mode = "delete"

	// ModeList leaves the table untouched and writes the identifiers of
	// records that should be deleted.
	ModeList Mode = "list"
)

// Options configures a single pipeline run.
type Options struct {
	InputPath  string
	TokensPath string
	OutputPath string
	Mode       Mode

	// TokenLength is the exact length of a well-formed token.
	// Zero means schema.TokenLength.
	TokenLength int

	// SkipLeadingRows is the number of leading data rows excluded from
	// repair and validation as a header artifact. Zero is honored; use
	// DefaultSkipLeadingRows for the upstream-compatible behavior.
	SkipLeadingRows int
}

// DefaultSkipLeadingRows mirrors the upstream convention of treating the
// first data row as a stray header remnant. Likely an off-by-one inherited
// from the original export tooling; kept pending product-owner confirmation.
const DefaultSkipLeadingRows = 1

// tokenLength returns the configured token length or the schema default.
func (o Options) tokenLength() int {
	if o.TokenLength > 0 {
		return o.TokenLength
	}
	return schema.TokenLength
}

// State is the pipeline state threaded through each stage function.
// It is created by Load, mutated by the stages according to Mode, and
// discarded after Emit.
type State struct {
	Table  *Table
	Tokens TokenSet
	Mode   Mode

	TokenLength     int
	SkipLeadingRows int

	// DuplicateMask marks duplicate records in table order (list-mode only).
	DuplicateMask []bool

	// Deletions accumulates identifiers to delete (list-mode only).
	Deletions *DeletionList

	// TotalResponses is the number of data rows minus the skipped artifact
	// rows, captured at load time before any removal.
	TotalResponses int

	// Stage counters.
	Repaired   int
	Duplicates int
	Invalid    int

	log *slog.Logger
}

// SetLogger attaches the logger used for per-record reporting.
func (st *State) SetLogger(log *slog.Logger) {
	st.log = log
}

// logger returns the attached logger or the process default.
func (st *State) logger() *slog.Logger {
	if st.log != nil {
		return st.log
	}
	return slog.Default()
}

// Result is the summary of a completed run.
type Result struct {
	RunID      string `json:"runId"`
	Mode       Mode   `json:"mode"`
	InputPath  string `json:"inputPath"`
	OutputPath string `json:"outputPath"`

	TotalResponses int `json:"totalResponses"`
	Repaired       int `json:"repaired"`
	Duplicates     int `json:"duplicates"`
	Invalid        int `json:"invalid"`

	// Affected is the number of records removed (delete-mode) or listed
	// for deletion (list-mode).
	Affected int `json:"affected"`

	Duration time.Duration `json:"duration"`
}

// DeletionList is an ordered collection of record identifiers slated for
// removal. Appends keep every occurrence; Unique resolves the final
// duplicate-free sequence in first-occurrence order.
type DeletionList struct {
	ids []string
}

// Append adds an identifier to the list.
func (l *DeletionList) Append(id string) {
	l.ids = append(l.ids, id)
}

// Unique returns the identifiers deduplicated in first-occurrence order.
// An identifier produced by both the duplicate pass and the validation pass
// appears exactly once.
func (l *DeletionList) Unique() []string {
	seen := make(map[string]bool, len(l.ids))
	out := make([]string, 0, len(l.ids))
	for _, id := range l.ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Len returns the raw number of appended identifiers, duplicates included.
func (l *DeletionList) Len() int {
	return len(l.ids)
}

// TokenSet is the immutable universe of valid tokens. Membership only.
type TokenSet map[string]struct{}

// NewTokenSet builds a set from raw token lines. Lines are stored verbatim;
// trimming happens at comparison time per record, so a token file with a
// trailing newline contributes an empty member (which the validator's
// explicit empty check makes harmless).
func NewTokenSet(lines []string) TokenSet {
	s := make(TokenSet, len(lines))
	for _, line := range lines {
		s[line] = struct{}{}
	}
	return s
}

// Contains reports membership of tok.
func (s TokenSet) Contains(tok string) bool {
	_, ok := s[tok]
	return ok
}

// Len returns the number of distinct tokens.
func (s TokenSet) Len() int {
	return len(s)
}
