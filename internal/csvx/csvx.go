// Package csvx provides CSV reading and writing for survey exports.
//
// Survey exports arrive from a variety of platforms and spreadsheets, so the
// reader is deliberately forgiving: it skips a UTF-8 BOM, replaces invalid
// UTF-8 sequences, accepts ragged rows, and never interprets cell contents.
// Every cell stays a string; typed decoding would corrupt token-like values
// that look numeric.
package csvx

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Read parses the CSV file at path into rows of string cells.
// Rows may have differing field counts; no cell is trimmed or converted.
func Read(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(sanitizeUTF8(skipBOM(data))))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rows, nil
}

// Write serializes rows to path as comma-separated UTF-8 text.
func Write(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// CleanHeader normalizes a header cell for name matching: it strips invisible
// characters and Excel formula wrappers, trims whitespace, and lowercases.
// The original header text is preserved elsewhere; this is for lookups only.
func CleanHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(stripArtifacts(s)))
}

// CleanCell removes invisible characters and Excel formula wrappers from a
// cell and trims surrounding whitespace. Used for display purposes; the
// pipeline itself never rewrites cells through this.
func CleanCell(s string) string {
	return strings.TrimSpace(stripArtifacts(s))
}

// stripArtifacts removes zero-width characters and BOM remnants, and unwraps
// the ="value" formula wrapper some spreadsheets emit to force text cells.
func stripArtifacts(s string) string {
	replacer := strings.NewReplacer(
		"\uFEFF", "", // BOM leaked into a cell
		"\u200B", "", // zero-width space
		"\u200C", "", // zero-width non-joiner
		"\u200D", "", // zero-width joiner
	)
	s = replacer.Replace(s)

	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = s[2 : len(s)-1]
	}
	return s
}

// skipBOM removes a leading UTF-8 byte order mark if present.
// Windows tools commonly prepend 0xEF 0xBB 0xBF to CSV exports.
func skipBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}
