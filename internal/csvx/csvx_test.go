package csvx

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestRead(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  [][]string
	}{
		{
			name:  "plain rows",
			input: []byte("a,b,c\n1,2,3\n"),
			want:  [][]string{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			name:  "BOM skipped",
			input: []byte("\xef\xbb\xbfa,b\n1,2\n"),
			want:  [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:  "ragged rows kept",
			input: []byte("a,b,c\n1,2\n1,2,3,4\n"),
			want:  [][]string{{"a", "b", "c"}, {"1", "2"}, {"1", "2", "3", "4"}},
		},
		{
			name:  "quoted cells with commas",
			input: []byte("a,b\n\"x, y\",2\n"),
			want:  [][]string{{"a", "b"}, {"x, y", "2"}},
		},
		{
			name:  "numeric-looking cells stay text",
			input: []byte("id,amount\n007,1.50\n"),
			want:  [][]string{{"id", "amount"}, {"007", "1.50"}},
		},
		{
			name:  "invalid UTF-8 replaced",
			input: []byte("a\nb\x80c\n"),
			want:  [][]string{{"a"}, {"b�c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "in.csv", tt.input)
			got, err := Read(path)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Read() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("Read() error = nil, want not-exist error")
	}
	if !os.IsNotExist(err) {
		t.Errorf("Read() error = %v, want not-exist error", err)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	rows := [][]string{
		{"Respondent ID", "wca_token", ""},
		{"1", "abc", "x, y"},
		{"2", "", "plain"},
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := Write(path, rows); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !reflect.DeepEqual(got, rows) {
		t.Errorf("round trip = %v, want %v", got, rows)
	}
}

func TestCleanHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercased and trimmed", input: "  Respondent ID ", want: "respondent id"},
		{name: "BOM remnant removed", input: "\uFEFFwca_token", want: "wca_token"},
		{name: "zero-width removed", input: "wca\u200B_token", want: "wca_token"},
		{name: "formula wrapper unwrapped", input: `="Start Date"`, want: "start date"},
		{name: "empty stays empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanHeader(tt.input); got != tt.want {
				t.Errorf("CleanHeader(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "case preserved", input: " AbC ", want: "AbC"},
		{name: "formula wrapper unwrapped", input: `="0042"`, want: "0042"},
		{name: "zero-width removed", input: "a\u200Cb", want: "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
