package survey

import (
	"reflect"
	"testing"
)

func TestNewTable_SynthesizesUnnamedColumns(t *testing.T) {
	tbl := NewTable(
		[]string{"Respondent ID", "wca_token", "", "  "},
		[][]string{{"1", "abc", "x", "y"}},
	)

	want := []string{"Respondent ID", "wca_token", "Unnamed: 2", "Unnamed: 3"}
	if !reflect.DeepEqual(tbl.Columns, want) {
		t.Errorf("Columns = %v, want %v", tbl.Columns, want)
	}
	if !tbl.HasOverflowColumn() {
		t.Error("HasOverflowColumn() = false, want true")
	}
	if got := tbl.OverflowColumnName(); got != "Unnamed: 3" {
		t.Errorf("OverflowColumnName() = %q, want %q", got, "Unnamed: 3")
	}
}

func TestNewTable_NoOverflowColumn(t *testing.T) {
	tbl := NewTable(
		[]string{"Respondent ID", "", "wca_token"},
		[][]string{{"1", "x", "abc"}},
	)

	// An unnamed column that is not last is not the overflow column.
	if tbl.HasOverflowColumn() {
		t.Error("HasOverflowColumn() = true, want false")
	}
	if got := tbl.Columns[1]; got != "Unnamed: 1" {
		t.Errorf("Columns[1] = %q, want %q", got, "Unnamed: 1")
	}
}

func TestNewTable_NormalizesRaggedRows(t *testing.T) {
	tbl := NewTable(
		[]string{"Respondent ID", "wca_token", "Start Date"},
		[][]string{
			{"1"},
			{"2", "tok", "2023-01-01", "extra"},
		},
	)

	for i, rec := range tbl.Records {
		if len(rec.Cells) != 3 {
			t.Errorf("record %d has %d cells, want 3", i, len(rec.Cells))
		}
	}
	if got := tbl.Token(tbl.Records[0]); got != "" {
		t.Errorf("Token(short row) = %q, want empty", got)
	}
	if got := tbl.Token(tbl.Records[1]); got != "tok" {
		t.Errorf("Token() = %q, want %q", got, "tok")
	}
}

func TestTable_Accessors(t *testing.T) {
	tbl := NewTable(
		[]string{"Start Date", "Respondent ID", "wca_token", ""},
		[][]string{{"2023-01-01", "42", " tok ", "overflow"}},
	)

	rec := tbl.Records[0]
	if got := tbl.ID(rec); got != "42" {
		t.Errorf("ID() = %q, want %q", got, "42")
	}
	if got := tbl.Token(rec); got != " tok " {
		t.Errorf("Token() = %q, want %q (untrimmed)", got, " tok ")
	}
	if got := tbl.Overflow(rec); got != "overflow" {
		t.Errorf("Overflow() = %q, want %q", got, "overflow")
	}
	if rec.RowIndex != 1 {
		t.Errorf("RowIndex = %d, want 1", rec.RowIndex)
	}
}

func TestTable_SetToken(t *testing.T) {
	tbl := NewTable(
		[]string{"Respondent ID", "wca_token"},
		[][]string{{"1", ""}},
	)

	tbl.SetToken(0, "fixed")
	if got := tbl.Token(tbl.Records[0]); got != "fixed" {
		t.Errorf("Token() after SetToken = %q, want %q", got, "fixed")
	}

	// Out-of-range positions are ignored.
	tbl.SetToken(5, "nope")
	tbl.SetToken(-1, "nope")
}

func TestTable_Remove(t *testing.T) {
	tbl := NewTable(
		[]string{"Respondent ID", "wca_token"},
		[][]string{{"1", "a"}, {"2", "b"}, {"3", "c"}, {"4", "d"}},
	)

	tbl.Remove(map[int]bool{1: true, 3: true})

	var ids []string
	for _, rec := range tbl.Records {
		ids = append(ids, tbl.ID(rec))
	}
	want := []string{"1", "3"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("remaining ids = %v, want %v", ids, want)
	}

	// Original row indexes survive removal.
	if tbl.Records[1].RowIndex != 3 {
		t.Errorf("RowIndex = %d, want 3", tbl.Records[1].RowIndex)
	}
}

func TestTable_DropOverflowColumn(t *testing.T) {
	tbl := NewTable(
		[]string{"Respondent ID", "wca_token", ""},
		[][]string{{"1", "tok", "spill"}},
	)

	tbl.DropOverflowColumn()

	want := []string{"Respondent ID", "wca_token"}
	if !reflect.DeepEqual(tbl.Columns, want) {
		t.Errorf("Columns = %v, want %v", tbl.Columns, want)
	}
	if len(tbl.Records[0].Cells) != 2 {
		t.Errorf("cells = %d, want 2", len(tbl.Records[0].Cells))
	}
	if tbl.HasOverflowColumn() {
		t.Error("HasOverflowColumn() = true after drop, want false")
	}

	// Dropping twice is harmless.
	tbl.DropOverflowColumn()
	if len(tbl.Columns) != 2 {
		t.Errorf("Columns after second drop = %d, want 2", len(tbl.Columns))
	}
}

func TestTable_OverflowHasData(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want bool
	}{
		{name: "blank cells", rows: [][]string{{"1", "t", ""}, {"2", "t2", "  "}}, want: false},
		{name: "one filled cell", rows: [][]string{{"1", "t", ""}, {"2", "", "spill"}}, want: true},
		{name: "no records", rows: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := NewTable([]string{"Respondent ID", "wca_token", ""}, tt.rows)
			if got := tbl.OverflowHasData(); got != tt.want {
				t.Errorf("OverflowHasData() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTable_Rows(t *testing.T) {
	tbl := NewTable(
		[]string{"Respondent ID", "wca_token"},
		[][]string{{"1", "a"}, {"2", "b"}},
	)

	rows := tbl.Rows()
	want := [][]string{
		{"Respondent ID", "wca_token"},
		{"1", "a"},
		{"2", "b"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Rows() = %v, want %v", rows, want)
	}
}
