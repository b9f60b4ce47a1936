package diagnostic

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/smarthome-go/rxlex/rxlex/errors"
)

type DiagnosticLevel uint8

const (
	DiagnosticLevelHint DiagnosticLevel = iota
	DiagnosticLevelInfo
	DiagnosticLevelWarning
	DiagnosticLevelError
)

func (self DiagnosticLevel) String() string {
	switch self {
	case DiagnosticLevelHint:
		return "Hint"
	case DiagnosticLevelInfo:
		return "Info"
	case DiagnosticLevelWarning:
		return "Warning"
	case DiagnosticLevelError:
		return "Error"
	default:
		panic("A new diagnostic level was added without updating this code")
	}
}

//
// Diagnostic
//

type Diagnostic struct {
	Level   DiagnosticLevel `json:"level"`
	Message string          `json:"message"`
	Notes   []string        `json:"notes"`
	Span    errors.Span     `json:"span"`
}

func FromError(err *errors.Error) Diagnostic {
	return Diagnostic{
		Level:   DiagnosticLevelError,
		Message: err.Error(),
		Notes:   make([]string, 0),
		Span:    err.Span,
	}
}

// Control characters are shown as their control pictures so that the marker stays aligned.
func visible(input string) []rune {
	characters := []rune(input)
	for index, char := range characters {
		if char < 0x20 {
			characters[index] = 0x2400 + char
		}
	}
	return characters
}

// Markers are placed by terminal column, wide runes (CJK, emoji) take two.
// Returns the column of `start` and the width of the inclusive span.
// Positions past the end of the input count as one column each.
func columns(characters []rune, start int, end int) (int, int) {
	last := min(end+1, len(characters))
	padding := runewidth.StringWidth(string(characters[:start]))
	width := runewidth.StringWidth(string(characters[start:last])) + (end + 1 - last)
	return padding, width
}

// Display renders the diagnostic below the input it refers to.
// ANSI escape codes are only emitted if `color` is set.
func (self Diagnostic) Display(input string, color bool) string {
	singleMarker := "^"
	markerMul := ""
	var levelColor uint8 = 0

	switch self.Level {
	case DiagnosticLevelHint:
		markerMul = "~"
		levelColor = 5 // magenta
	case DiagnosticLevelInfo:
		markerMul = "~"
		levelColor = 4 // blue
	case DiagnosticLevelWarning:
		markerMul = "~"
		levelColor = 3 // yellow
	case DiagnosticLevelError:
		markerMul = "^"
		levelColor = 1 // red
	}

	paint := func(code uint8, bold bool) string {
		if !color {
			return ""
		}
		return ansiCol(code, bold)
	}
	reset := paint(0, false)

	notes := ""
	for _, note := range self.Notes {
		notes += fmt.Sprintf("%s - note:%s %s\n", paint(36, true), reset, note)
	}

	characters := visible(input)

	// nothing to point at
	if len(characters) == 0 {
		return fmt.Sprintf(
			"%s%s%s\n%s%s%s\n%s",
			paint(levelColor+30, true),
			self.Level,
			reset,
			paint(levelColor+30, true),
			self.Message,
			reset,
			notes,
		)
	}

	start := min(int(self.Span.Start.Index), len(characters))
	end := max(start, min(int(self.Span.End.Index), len(characters)))

	padding, width := columns(characters, start, end)

	markers := singleMarker
	if end > start {
		markers = strings.Repeat(markerMul, max(width, 1))
	}

	return fmt.Sprintf(
		"%s%s%s at %s\n%s  | %s%s\n%s  | %s%s%s%s\n%s%s%s\n%s",
		paint(levelColor+30, true),
		self.Level,
		reset,
		self.Span,
		paint(90, false),
		reset,
		string(characters),
		paint(90, false),
		reset,
		strings.Repeat(" ", padding),
		paint(levelColor+30, true),
		markers+reset,
		paint(levelColor+30, true),
		self.Message,
		reset,
		notes,
	)
}

func ansiCol(color uint8, bold bool) string {
	if bold {
		return fmt.Sprintf("\x1b[1;%dm", color)
	}
	return fmt.Sprintf("\x1b[%dm", color)
}
