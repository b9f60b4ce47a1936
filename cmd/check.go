package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/smarthome-go/rxlex/rxlex/analyzer"
	"github.com/smarthome-go/rxlex/rxlex/diagnostic"
	herrors "github.com/smarthome-go/rxlex/rxlex/errors"
	"github.com/smarthome-go/rxlex/rxlex/parser"
	"github.com/spf13/afero"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const maxSuggestionDistance = 3

var entryKinds = []string{"quantifier", "class"}

type checkSummary struct {
	ok     uint
	failed uint
}

func suggestKind(kind string) (string, bool) {
	best := ""
	bestDistance := -1

	for _, candidate := range entryKinds {
		distance := levenshtein.ComputeDistance(kind, candidate)
		if bestDistance == -1 || distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}

	return best, bestDistance <= maxSuggestionDistance
}

func checkEntry(kind string, text string) (string, []diagnostic.Diagnostic, *herrors.Error) {
	switch kind {
	case "quantifier":
		quantifier, err := parser.ParseQuantifier(text)
		if err != nil {
			return "", nil, err
		}
		return quantifier.String(), analyzer.AnalyzeQuantifier(text, quantifier), nil
	case "class":
		class, err := parser.ParseRange(text)
		if err != nil {
			return "", nil, err
		}
		return class.String(), analyzer.AnalyzeRange(text, class), nil
	default:
		panic(fmt.Sprintf("Illegal entry kind `%s`", kind))
	}
}

// runCheck parses every `<kind> <text>` line of the file.
// Blank lines and lines starting with `#` are skipped.
func runCheck(env *environment, output io.Writer, path string) error {
	file, err := afero.ReadFile(env.fs, path)
	if err != nil {
		return fmt.Errorf("Could not read file `%s`: %w", path, err)
	}

	summaries := make(map[string]*checkSummary)
	for _, kind := range entryKinds {
		summaries[kind] = &checkSummary{}
	}

	failed := 0

	for lineIndex, line := range strings.Split(string(file), "\n") {
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		location := fmt.Sprintf("%s:%d", path, lineIndex+1)
		kind, text, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")

		summary, known := summaries[kind]
		if !known {
			failed++
			fmt.Fprintf(output, "%s: unknown entry kind `%s`", location, kind)
			if suggestion, found := suggestKind(kind); found {
				fmt.Fprintf(output, ", did you mean `%s`?", suggestion)
			}
			fmt.Fprintln(output)
			continue
		}

		canonical, diagnostics, parseErr := checkEntry(kind, text)
		if parseErr != nil {
			failed++
			summary.failed++
			fmt.Fprintf(output, "%s: invalid %s %q\n", location, kind, text)
			printDiagnostics(output, text, []diagnostic.Diagnostic{diagnostic.FromError(parseErr)}, env.color)
			continue
		}

		summary.ok++
		fmt.Fprintf(output, "%s: ok %s %q\n", location, kind, canonical)
		if env.settings.Lint {
			printDiagnostics(output, text, diagnostics, env.color)
		}
	}

	caser := cases.Title(language.AmericanEnglish)
	for _, kind := range entryKinds {
		summary := summaries[kind]
		fmt.Fprintf(output, "%s: %d ok, %d failed\n", caser.String(kind), summary.ok, summary.failed)
	}

	if failed > 0 {
		return fmt.Errorf("%d entries failed the check", failed)
	}

	return nil
}
