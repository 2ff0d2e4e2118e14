package survey

import (
	"strings"

	"github.com/AnnikaStein/WAC-Survey-Suite/internal/csvx"
	"github.com/AnnikaStein/WAC-Survey-Suite/internal/schema"
)

// Record is one survey response: its original position and its raw cells.
// Cells are opaque text except for the identifier, token, and overflow
// columns, which the table resolves by position.
type Record struct {
	// RowIndex is the 1-based position in the source table. Position 0 is
	// the header row. Stable for the lifetime of the run, never recomputed.
	RowIndex int

	Cells []string
}

// Table is an ordered sequence of records with a fixed column set read once
// from the header row. Column identity is stable for the whole run; only the
// synthesized unnamed column may be dropped at emit time.
type Table struct {
	Columns []string
	Records []Record

	idIdx       int
	tokenIdx    int
	overflowIdx int
}

// NewTable builds a table from a header and data rows. Empty header cells
// are synthesized to "Unnamed: <position>" so misplaced-token handling and
// header sanitization can identify them later. Every record is normalized
// to exactly len(header) cells; missing cells read as empty text.
func NewTable(header []string, rows [][]string) *Table {
	columns := make([]string, len(header))
	for i, name := range header {
		if strings.TrimSpace(name) == "" {
			columns[i] = schema.UnnamedColumnName(i)
		} else {
			columns[i] = name
		}
	}

	records := make([]Record, len(rows))
	for i, row := range rows {
		cells := make([]string, len(columns))
		copy(cells, row)
		records[i] = Record{RowIndex: i + 1, Cells: cells}
	}

	t := &Table{Columns: columns, Records: records}
	t.idIdx = t.columnIndex(schema.RespondentIDField)
	t.tokenIdx = t.columnIndex(schema.TokenField)
	t.overflowIdx = t.detectOverflowColumn()
	return t
}

// HeaderIndex returns cleaned column names mapped to their positions.
func (t *Table) HeaderIndex() map[string]int {
	idx := make(map[string]int, len(t.Columns))
	for i, name := range t.Columns {
		idx[csvx.CleanHeader(name)] = i
	}
	return idx
}

// columnIndex resolves a column by cleaned name, -1 if absent.
func (t *Table) columnIndex(name string) int {
	want := csvx.CleanHeader(name)
	for i, col := range t.Columns {
		if csvx.CleanHeader(col) == want {
			return i
		}
	}
	return -1
}

// detectOverflowColumn returns the index of the trailing unnamed column, or
// -1 when the last column carries a real name. Only the last column
// qualifies; unnamed columns elsewhere are passed through untouched.
func (t *Table) detectOverflowColumn() int {
	if len(t.Columns) == 0 {
		return -1
	}
	last := len(t.Columns) - 1
	if schema.IsUnnamedColumn(t.Columns[last]) {
		return last
	}
	return -1
}

// HasOverflowColumn reports whether a trailing unnamed column was detected.
func (t *Table) HasOverflowColumn() bool {
	return t.overflowIdx >= 0
}

// OverflowColumnName returns the synthesized name of the overflow column,
// empty when absent.
func (t *Table) OverflowColumnName() string {
	if t.overflowIdx < 0 {
		return ""
	}
	return t.Columns[t.overflowIdx]
}

// ID returns the record's identifier cell, empty when the column is absent.
func (t *Table) ID(rec Record) string {
	return t.cell(rec, t.idIdx)
}

// Token returns the record's raw token cell, untrimmed.
func (t *Table) Token(rec Record) string {
	return t.cell(rec, t.tokenIdx)
}

// Overflow returns the record's raw overflow cell, untrimmed.
func (t *Table) Overflow(rec Record) string {
	return t.cell(rec, t.overflowIdx)
}

// SetToken overwrites the token cell of the record at position i.
func (t *Table) SetToken(i int, tok string) {
	if t.tokenIdx < 0 || i < 0 || i >= len(t.Records) {
		return
	}
	t.Records[i].Cells[t.tokenIdx] = tok
}

func (t *Table) cell(rec Record, idx int) string {
	if idx < 0 || idx >= len(rec.Cells) {
		return ""
	}
	return rec.Cells[idx]
}

// Remove deletes the records at the given positions in one pass, after the
// caller's iteration has completed. Positions refer to the current record
// order, not original row indexes.
func (t *Table) Remove(positions map[int]bool) {
	if len(positions) == 0 {
		return
	}
	kept := t.Records[:0]
	for i, rec := range t.Records {
		if positions[i] {
			continue
		}
		kept = append(kept, rec)
	}
	t.Records = kept
}

// OverflowHasData reports whether any record holds a non-blank overflow cell.
func (t *Table) OverflowHasData() bool {
	if t.overflowIdx < 0 {
		return false
	}
	for _, rec := range t.Records {
		if strings.TrimSpace(t.cell(rec, t.overflowIdx)) != "" {
			return true
		}
	}
	return false
}

// DropOverflowColumn removes the trailing unnamed column from the header and
// every record. No-op when the column was never detected.
func (t *Table) DropOverflowColumn() {
	if t.overflowIdx < 0 {
		return
	}
	idx := t.overflowIdx
	t.Columns = append(t.Columns[:idx], t.Columns[idx+1:]...)
	for i := range t.Records {
		cells := t.Records[i].Cells
		if idx < len(cells) {
			t.Records[i].Cells = append(cells[:idx], cells[idx+1:]...)
		}
	}
	t.overflowIdx = -1
	// Identifier and token columns precede the trailing column, their
	// positions are unaffected.
}

// Rows returns the header plus all record cells, ready for serialization.
func (t *Table) Rows() [][]string {
	rows := make([][]string, 0, len(t.Records)+1)
	header := make([]string, len(t.Columns))
	copy(header, t.Columns)
	rows = append(rows, header)
	for _, rec := range t.Records {
		rows = append(rows, rec.Cells)
	}
	return rows
}

// Len returns the number of data records.
func (t *Table) Len() int {
	return len(t.Records)
}
