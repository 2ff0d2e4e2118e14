package survey

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/AnnikaStein/WAC-Survey-Suite/internal/csvx"
	"github.com/AnnikaStein/WAC-Survey-Suite/internal/schema"
)

// EmitTable writes the cleaned table for delete-mode. The trailing unnamed
// column is dropped first (with a warning when it still holds data; the drop
// happens regardless), then the table is serialized as comma-separated UTF-8
// with the header row and no row-index artifact, and finally the written
// header line is sanitized so no synthesized placeholder names leak out.
func EmitTable(st *State, path string) error {
	log := st.logger()

	if st.Table.HasOverflowColumn() {
		if st.Table.OverflowHasData() {
			log.Warn("overflow column is not empty, dropping anyway",
				"column", st.Table.OverflowColumnName())
		}
		st.Table.DropOverflowColumn()
	}

	if err := csvx.Write(path, st.Table.Rows()); err != nil {
		return fmt.Errorf("writing cleaned table: %w", err)
	}

	log.Info("fixing headers")
	return fixHeaders(path)
}

// fixHeaders rewrites the first line of the written file, replacing any
// synthesized "Unnamed: N" markers with empty field names. Repeated
// application is a no-op.
func fixHeaders(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("fixing headers: %w", err)
	}

	header := data
	rest := []byte(nil)
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
		rest = data[i:]
	}

	fixed := schema.StripUnnamedMarkers(string(header))
	out := append([]byte(fixed), rest...)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("fixing headers: %w", err)
	}
	return nil
}

// EmitList writes the deletion list for list-mode: the duplicate-mask
// identifiers followed by the validation failures, deduplicated in
// first-occurrence order, one per line, newline-terminated. Returns the
// number of identifiers written.
func EmitList(st *State, path string) (int, error) {
	ids := st.Deletions.Unique()

	var b strings.Builder
	for _, id := range ids {
		b.WriteString(id)
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return 0, fmt.Errorf("writing deletion list: %w", err)
	}
	return len(ids), nil
}
