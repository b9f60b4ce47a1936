package diagnostic

import (
	"testing"

	"github.com/smarthome-go/rxlex/rxlex/errors"
	"github.com/stretchr/testify/assert"
)

func TestLevelNames(t *testing.T) {
	assert.Equal(t, "Hint", DiagnosticLevelHint.String())
	assert.Equal(t, "Info", DiagnosticLevelInfo.String())
	assert.Equal(t, "Warning", DiagnosticLevelWarning.String())
	assert.Equal(t, "Error", DiagnosticLevelError.String())
}

func TestFromError(t *testing.T) {
	diagnostic := FromError(errors.NewMatchRangeError(errors.NewSpan(1, 3), "bad range"))

	assert.Equal(t, DiagnosticLevelError, diagnostic.Level)
	assert.Equal(t, "InvalidMatchRange: bad range", diagnostic.Message)
	assert.Equal(t, errors.NewSpan(1, 3), diagnostic.Span)
	assert.Empty(t, diagnostic.Notes)
}

func TestDisplayPlain(t *testing.T) {
	diagnostic := FromError(errors.NewMatchRangeError(errors.NewSpan(1, 3), "bad range"))

	expected := "Error at 1..3\n" +
		"  | [z-a]\n" +
		"  |  ^^^\n" +
		"InvalidMatchRange: bad range\n"

	assert.Equal(t, expected, diagnostic.Display("[z-a]", false))
}

func TestDisplaySingleColumnWithNotes(t *testing.T) {
	diagnostic := Diagnostic{
		Level:   DiagnosticLevelWarning,
		Message: "careful",
		Notes:   []string{"first", "second"},
		Span:    errors.At(2),
	}

	expected := "Warning at 2\n" +
		"  | abc\n" +
		"  |   ^\n" +
		"careful\n" +
		" - note: first\n" +
		" - note: second\n"

	assert.Equal(t, expected, diagnostic.Display("abc", false))
}

func TestDisplayWarningUsesTilde(t *testing.T) {
	diagnostic := Diagnostic{Level: DiagnosticLevelHint, Message: "m", Span: errors.NewSpan(0, 2)}

	assert.Contains(t, diagnostic.Display("abc", false), "  | ~~~\n")
}

func TestDisplayClampsSpan(t *testing.T) {
	diagnostic := Diagnostic{Level: DiagnosticLevelError, Message: "m", Span: errors.NewSpan(2, 40)}

	assert.Contains(t, diagnostic.Display("abc", false), "  |   ^^\n")
}

func TestDisplayControlCharacters(t *testing.T) {
	diagnostic := Diagnostic{Level: DiagnosticLevelError, Message: "m", Span: errors.At(2)}

	output := diagnostic.Display("a\nb", false)
	assert.Contains(t, output, "  | a␊b\n")
	assert.Contains(t, output, "  |   ^\n")
}

func TestDisplayWideCharacters(t *testing.T) {
	diagnostic := Diagnostic{Level: DiagnosticLevelError, Message: "m", Span: errors.At(3)}

	output := diagnostic.Display("[日本x", false)
	assert.Contains(t, output, "  | [日本x\n")
	assert.Contains(t, output, "  |      ^\n")

	diagnostic.Span = errors.NewSpan(1, 2)
	assert.Contains(t, diagnostic.Display("[日本x", false), "  |  ^^^^\n")
}

func TestDisplayEmptyInput(t *testing.T) {
	diagnostic := FromError(errors.NewQuantifierError(errors.Span{}, "empty"))

	assert.Equal(t, "Error\nInvalidQuantifier: empty\n", diagnostic.Display("", false))
}

func TestDisplayColor(t *testing.T) {
	diagnostic := FromError(errors.NewSyntaxError(errors.At(0), "bad"))

	output := diagnostic.Display("x", true)
	assert.Contains(t, output, "\x1b[1;31m")
	assert.Contains(t, output, "\x1b[0m")
	assert.NotContains(t, diagnostic.Display("x", false), "\x1b[")
}
