package analyzer

import (
	"testing"

	"github.com/smarthome-go/rxlex/rxlex/diagnostic"
	"github.com/smarthome-go/rxlex/rxlex/errors"
	"github.com/smarthome-go/rxlex/rxlex/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzeQuantifierSource(t *testing.T, source string) []diagnostic.Diagnostic {
	quantifier, err := parser.ParseQuantifier(source)
	require.Nil(t, err, "source %q", source)
	return AnalyzeQuantifier(source, quantifier)
}

func analyzeRangeSource(t *testing.T, source string) []diagnostic.Diagnostic {
	class, err := parser.ParseRange(source)
	require.Nil(t, err, "source %q", source)
	return AnalyzeRange(source, class)
}

func levels(diagnostics []diagnostic.Diagnostic) []diagnostic.DiagnosticLevel {
	result := make([]diagnostic.DiagnosticLevel, 0)
	for _, item := range diagnostics {
		result = append(result, item.Level)
	}
	return result
}

func TestAnalyzeQuantifierClean(t *testing.T) {
	for _, source := range []string{"", "?", "*", "+", "{13,43}", "{13,}", "{,13}", "{30,30}"} {
		assert.Empty(t, analyzeQuantifierSource(t, source), "source %q", source)
	}
}

func TestAnalyzeQuantifier(t *testing.T) {
	tests := []struct {
		source   string
		expected []diagnostic.DiagnosticLevel
		message  string
	}{
		{"{43,13}", []diagnostic.DiagnosticLevel{diagnostic.DiagnosticLevelWarning}, "minimum 43 exceeds maximum 13"},
		{"{13}", []diagnostic.DiagnosticLevel{diagnostic.DiagnosticLevelInfo}, "at least 13"},
		{"{1,1}", []diagnostic.DiagnosticLevel{diagnostic.DiagnosticLevelHint}, "redundant"},
		{"{0,0}", []diagnostic.DiagnosticLevel{diagnostic.DiagnosticLevelWarning}, "zero repetitions"},
		{"{,0}", []diagnostic.DiagnosticLevel{diagnostic.DiagnosticLevelWarning}, "zero repetitions"},
		{"{0,}", []diagnostic.DiagnosticLevel{diagnostic.DiagnosticLevelInfo}, "written as '*'"},
		{"{ 1 , }", []diagnostic.DiagnosticLevel{diagnostic.DiagnosticLevelInfo}, "written as '+'"},
		{"{,1}", []diagnostic.DiagnosticLevel{diagnostic.DiagnosticLevelInfo}, "written as '?'"},
	}

	for _, test := range tests {
		diagnostics := analyzeQuantifierSource(t, test.source)
		assert.Equal(t, test.expected, levels(diagnostics), "source %q", test.source)
		require.NotEmpty(t, diagnostics)
		assert.Contains(t, diagnostics[0].Message, test.message, "source %q", test.source)
		assert.Equal(t, errors.NewSpan(0, uint(len(test.source)-1)), diagnostics[0].Span)
	}
}

func TestAnalyzeQuantifierNotes(t *testing.T) {
	diagnostics := analyzeQuantifierSource(t, "{43,13}")
	require.Len(t, diagnostics, 1)
	assert.Equal(t, []string{"swap the bounds: '{13,43}'"}, diagnostics[0].Notes)
}

func TestAnalyzeRangeClean(t *testing.T) {
	for _, source := range []string{"[a-z]", "[abc]", "[a-cd-f]", "[0-9a-fA-F]"} {
		assert.Empty(t, analyzeRangeSource(t, source), "source %q", source)
	}
}

func TestAnalyzeRangeEmpty(t *testing.T) {
	diagnostics := analyzeRangeSource(t, "[]")
	require.Len(t, diagnostics, 1)
	assert.Equal(t, diagnostic.DiagnosticLevelWarning, diagnostics[0].Level)
	assert.Equal(t, errors.NewSpan(0, 1), diagnostics[0].Span)

	diagnostics = analyzeRangeSource(t, "")
	require.Len(t, diagnostics, 1)
	assert.Equal(t, errors.Span{}, diagnostics[0].Span)
}

func TestAnalyzeRangeDuplicates(t *testing.T) {
	diagnostics := analyzeRangeSource(t, "[aba]")
	require.Len(t, diagnostics, 1)
	assert.Equal(t, diagnostic.DiagnosticLevelHint, diagnostics[0].Level)
	assert.Equal(t, "Duplicate class entry 'a'", diagnostics[0].Message)

	diagnostics = analyzeRangeSource(t, "[a-za-z]")
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "Duplicate class entry 'a-z'", diagnostics[0].Message)
}

func TestAnalyzeRangeCovered(t *testing.T) {
	diagnostics := analyzeRangeSource(t, "[a-zqb-d]")
	require.Len(t, diagnostics, 2)
	assert.Equal(t, "Class entry 'q' is already covered by 'a-z'", diagnostics[0].Message)
	assert.Equal(t, "Class entry 'b-d' is already covered by 'a-z'", diagnostics[1].Message)

	// later entries never cover earlier ones
	assert.Empty(t, analyzeRangeSource(t, "[qa-z]"))
}
