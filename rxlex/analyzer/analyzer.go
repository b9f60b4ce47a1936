package analyzer

import (
	"fmt"

	"github.com/smarthome-go/rxlex/rxlex/diagnostic"
	"github.com/smarthome-go/rxlex/rxlex/errors"
	"github.com/smarthome-go/rxlex/rxlex/parser"
)

func sourceSpan(source string) errors.Span {
	length := uint(len([]rune(source)))
	if length == 0 {
		return errors.Span{}
	}
	return errors.NewSpan(0, length-1)
}

func newDiagnostic(level diagnostic.DiagnosticLevel, span errors.Span, message string, notes ...string) diagnostic.Diagnostic {
	if notes == nil {
		notes = make([]string, 0)
	}

	return diagnostic.Diagnostic{
		Level:   level,
		Message: message,
		Notes:   notes,
		Span:    span,
	}
}

//
// Quantifier
//

// AnalyzeQuantifier reports accepted quantifiers which are likely mistakes.
// `source` is the text the quantifier was parsed from.
func AnalyzeQuantifier(source string, quantifier parser.Quantifier) []diagnostic.Diagnostic {
	diagnostics := make([]diagnostic.Diagnostic, 0)
	span := sourceSpan(source)
	canonical := quantifier.String()

	switch quantifier := quantifier.(type) {
	case parser.SingleQuantifier:
		return diagnostics
	case parser.AtLeastQuantifier:
		if isExactCount(source) {
			diagnostics = append(diagnostics, newDiagnostic(
				diagnostic.DiagnosticLevelInfo,
				span,
				fmt.Sprintf("Quantifier '%s' means at least %d repetitions", source, quantifier.Min),
				fmt.Sprintf("write '{%d,%d}' to repeat exactly %d times", quantifier.Min, quantifier.Min, quantifier.Min),
			))
		}
	case parser.AtMostQuantifier:
		if quantifier.Max == 0 {
			diagnostics = append(diagnostics, newDiagnostic(
				diagnostic.DiagnosticLevelWarning,
				span,
				fmt.Sprintf("Quantifier '%s' only allows zero repetitions", source),
			))
		}
	case parser.RangeQuantifier:
		switch {
		case quantifier.Min > quantifier.Max:
			diagnostics = append(diagnostics, newDiagnostic(
				diagnostic.DiagnosticLevelWarning,
				span,
				fmt.Sprintf("Quantifier '%s' can never match: minimum %d exceeds maximum %d", source, quantifier.Min, quantifier.Max),
				fmt.Sprintf("swap the bounds: '{%d,%d}'", quantifier.Max, quantifier.Min),
			))
		case quantifier.Max == 0:
			diagnostics = append(diagnostics, newDiagnostic(
				diagnostic.DiagnosticLevelWarning,
				span,
				fmt.Sprintf("Quantifier '%s' only allows zero repetitions", source),
			))
		case quantifier.Min == 1 && quantifier.Max == 1:
			diagnostics = append(diagnostics, newDiagnostic(
				diagnostic.DiagnosticLevelHint,
				span,
				fmt.Sprintf("Quantifier '%s' is redundant", source),
				"an atom without quantifier matches exactly once",
			))
		}
	default:
		panic("A new quantifier kind was added without updating this code")
	}

	if isShorthand(canonical) && source != canonical {
		diagnostics = append(diagnostics, newDiagnostic(
			diagnostic.DiagnosticLevelInfo,
			span,
			fmt.Sprintf("Quantifier '%s' can be written as '%s'", source, canonical),
		))
	}

	return diagnostics
}

func isShorthand(canonical string) bool {
	return canonical == "?" || canonical == "*" || canonical == "+"
}

// Reports whether the source is a brace quantifier without a comma, like `{3}`.
func isExactCount(source string) bool {
	if len(source) == 0 || source[0] != '{' {
		return false
	}
	for _, char := range source {
		if char == ',' {
			return false
		}
	}
	return true
}

//
// Range
//

func matchBounds(match parser.RangeMatch) (rune, rune) {
	switch match := match.(type) {
	case parser.SingleMatch:
		return match.Char, match.Char
	case parser.IntervalMatch:
		return match.Lo(), match.Hi()
	default:
		panic("A new range match kind was added without updating this code")
	}
}

// AnalyzeRange reports empty classes and entries that add nothing to the class.
// `source` is the text the class was parsed from.
func AnalyzeRange(source string, class parser.Range) []diagnostic.Diagnostic {
	diagnostics := make([]diagnostic.Diagnostic, 0)
	span := sourceSpan(source)

	if class.Len() == 0 {
		diagnostics = append(diagnostics, newDiagnostic(
			diagnostic.DiagnosticLevelWarning,
			span,
			"Empty character class never matches",
		))
		return diagnostics
	}

	matches := class.Matches()
	for index, match := range matches {
		lo, hi := matchBounds(match)

		for _, earlier := range matches[:index] {
			earlierLo, earlierHi := matchBounds(earlier)
			if earlierLo > lo || hi > earlierHi {
				continue
			}

			if earlier == match {
				diagnostics = append(diagnostics, newDiagnostic(
					diagnostic.DiagnosticLevelHint,
					span,
					fmt.Sprintf("Duplicate class entry '%s'", match),
				))
			} else {
				diagnostics = append(diagnostics, newDiagnostic(
					diagnostic.DiagnosticLevelHint,
					span,
					fmt.Sprintf("Class entry '%s' is already covered by '%s'", match, earlier),
				))
			}
			break
		}
	}

	return diagnostics
}
