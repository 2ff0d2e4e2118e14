// Package schema defines the fixed survey export schema.
//
// Every survey column decodes to text by construction. There is no numeric,
// date, or boolean field type on purpose: respondent tokens and identifiers
// look numeric often enough that any type inference risks silent precision
// loss, so typing is simply not offered.
package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldSpec defines expectations for a single survey column.
// All fields are text; specs only express presence requirements.
type FieldSpec struct {
	Name       string // Column header name (matched case-insensitively after cleaning)
	Required   bool   // Column must exist in the CSV header
	AllowEmpty bool   // If true, empty values are allowed even when Required
}

// Well-known survey export columns.
const (
	// RespondentIDField uniquely identifies a response. Opaque and stable.
	RespondentIDField = "Respondent ID"

	// TokenField holds the secret per-respondent token.
	TokenField = "wca_token"

	// DateField is present in exports but deliberately unused for dedup
	// tie-breaking; arrival order decides.
	DateField = "Start Date"
)

// TokenLength is the exact length of a well-formed respondent token.
const TokenLength = 64

// SurveyFieldSpecs defines the columns a survey export must carry.
// Other columns are opaque and passed through untouched.
var SurveyFieldSpecs = []FieldSpec{
	{Name: RespondentIDField, Required: true},
	{Name: TokenField, Required: true, AllowEmpty: true},
	{Name: DateField},
}

// unnamedPattern matches the placeholder this loader (matching the upstream
// export convention) synthesizes for columns with an empty header cell.
var unnamedPattern = regexp.MustCompile(`^Unnamed: \d+$`)

// unnamedMarker matches placeholder markers inside a written header line.
var unnamedMarker = regexp.MustCompile(`Unnamed: \d+`)

// UnnamedColumnName returns the synthesized placeholder for the column at
// position i whose header cell is empty.
func UnnamedColumnName(i int) string {
	return fmt.Sprintf("Unnamed: %d", i)
}

// IsUnnamedColumn reports whether name is a synthesized placeholder.
func IsUnnamedColumn(name string) bool {
	return unnamedPattern.MatchString(name)
}

// StripUnnamedMarkers replaces every synthesized placeholder in a header
// line with an empty field name. Stable under repeated application.
func StripUnnamedMarkers(headerLine string) string {
	return unnamedMarker.ReplaceAllString(headerLine, "")
}

// MissingRequired returns the names of required columns absent from the
// cleaned header names. Matching is case-insensitive.
func MissingRequired(cleanedHeaders map[string]int, specs []FieldSpec) []string {
	var missing []string
	for _, spec := range specs {
		if !spec.Required {
			continue
		}
		if _, ok := cleanedHeaders[strings.ToLower(spec.Name)]; !ok {
			missing = append(missing, spec.Name)
		}
	}
	return missing
}
