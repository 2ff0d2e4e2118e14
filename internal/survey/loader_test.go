package survey

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "survey.csv",
		"Respondent ID,Start Date,wca_token,\n"+
			"0,artifact,,\n"+
			"1,2023-01-01,tok,spill\n")
	tokens := writeFixture(t, dir, "tokens.txt", "tok\nother\n")

	st, err := Load(Options{
		InputPath:       input,
		TokensPath:      tokens,
		Mode:            ModeDelete,
		SkipLeadingRows: 1,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if st.Table.Len() != 2 {
		t.Errorf("table length = %d, want 2", st.Table.Len())
	}
	if !st.Table.HasOverflowColumn() {
		t.Error("HasOverflowColumn() = false, want true")
	}
	if st.TotalResponses != 1 {
		t.Errorf("TotalResponses = %d, want 1", st.TotalResponses)
	}
	if st.TokenLength != 64 {
		t.Errorf("TokenLength = %d, want default 64", st.TokenLength)
	}

	// Token lines are stored verbatim; the trailing newline contributes an
	// empty member.
	if !st.Tokens.Contains("tok") || !st.Tokens.Contains("other") {
		t.Error("token set missing expected members")
	}
	if !st.Tokens.Contains("") {
		t.Error("token set should contain the empty trailing line verbatim")
	}
	if st.Tokens.Len() != 3 {
		t.Errorf("Tokens.Len() = %d, want 3", st.Tokens.Len())
	}
}

func TestLoad_SurveyFileMissing(t *testing.T) {
	dir := t.TempDir()
	tokens := writeFixture(t, dir, "tokens.txt", "tok\n")

	_, err := Load(Options{
		InputPath:  filepath.Join(dir, "missing.csv"),
		TokensPath: tokens,
	})
	if !errors.Is(err, ErrInputNotFound) {
		t.Errorf("Load() error = %v, want ErrInputNotFound", err)
	}
}

func TestLoad_TokenFileMissing(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "survey.csv", "Respondent ID,wca_token\n1,tok\n")

	_, err := Load(Options{
		InputPath:  input,
		TokensPath: filepath.Join(dir, "missing.txt"),
	})
	if !errors.Is(err, ErrInputNotFound) {
		t.Errorf("Load() error = %v, want ErrInputNotFound", err)
	}
}

func TestLoad_MissingRequiredColumn(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "survey.csv", "Respondent ID,Start Date\n1,2023\n")
	tokens := writeFixture(t, dir, "tokens.txt", "tok\n")

	_, err := Load(Options{InputPath: input, TokensPath: tokens})
	if err == nil {
		t.Fatal("Load() error = nil, want missing column error")
	}
	if errors.Is(err, ErrInputNotFound) {
		t.Errorf("Load() error = %v, want a non-NotFound error", err)
	}
}

func TestLoad_CellsStayText(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "survey.csv",
		"Respondent ID,wca_token\n007,0042\n")
	tokens := writeFixture(t, dir, "tokens.txt", "0042")

	st, err := Load(Options{InputPath: input, TokensPath: tokens})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rec := st.Table.Records[0]
	if got := st.Table.ID(rec); got != "007" {
		t.Errorf("ID = %q, want %q (leading zeros preserved)", got, "007")
	}
	if got := st.Table.Token(rec); got != "0042" {
		t.Errorf("token = %q, want %q", got, "0042")
	}
}
