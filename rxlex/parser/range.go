package parser

import (
	"fmt"
	"strings"

	"github.com/smarthome-go/rxlex/rxlex/errors"
)

type RangeMatchKind uint8

const (
	SingleMatchKind RangeMatchKind = iota
	IntervalMatchKind
)

func (self RangeMatchKind) String() string {
	switch self {
	case SingleMatchKind:
		return "Single"
	case IntervalMatchKind:
		return "Range"
	default:
		panic("A new range match kind was added without updating this code")
	}
}

type RangeMatch interface {
	Kind() RangeMatchKind
	Contains(char rune) bool
	String() string
}

//
// Single character
//

type SingleMatch struct {
	Char rune
}

func (self SingleMatch) Kind() RangeMatchKind    { return SingleMatchKind }
func (self SingleMatch) Contains(char rune) bool { return char == self.Char }
func (self SingleMatch) String() string          { return escapeClassCharacter(self.Char) }

//
// Character interval
//

// Lo <= Hi always holds, use `NewIntervalMatch` to construct one.
type IntervalMatch struct {
	lo rune
	hi rune
}

func NewIntervalMatch(lo rune, hi rune) (IntervalMatch, *errors.Error) {
	return newIntervalMatch(lo, hi, errors.Span{})
}

func newIntervalMatch(lo rune, hi rune, span errors.Span) (IntervalMatch, *errors.Error) {
	if lo > hi {
		return IntervalMatch{}, errors.NewMatchRangeError(
			span,
			fmt.Sprintf("Range start '%c' sorts after range end '%c'", lo, hi),
		)
	}

	return IntervalMatch{lo: lo, hi: hi}, nil
}

func (self IntervalMatch) Lo() rune                { return self.lo }
func (self IntervalMatch) Hi() rune                { return self.hi }
func (self IntervalMatch) Kind() RangeMatchKind    { return IntervalMatchKind }
func (self IntervalMatch) Contains(char rune) bool { return self.lo <= char && char <= self.hi }
func (self IntervalMatch) String() string {
	return fmt.Sprintf("%s-%s", escapeClassCharacter(self.lo), escapeClassCharacter(self.hi))
}

//
// Range
//

// Range is the ordered list of matchers of one bracket class.
// Entries are neither sorted nor merged; a character is in the class if any entry contains it.
type Range struct {
	matches []RangeMatch
}

func NewRange(matches ...RangeMatch) Range {
	return Range{
		matches: append([]RangeMatch(nil), matches...),
	}
}

func (self Range) Matches() []RangeMatch {
	return append([]RangeMatch(nil), self.matches...)
}

func (self Range) Len() int {
	return len(self.matches)
}

func (self Range) Contains(char rune) bool {
	for _, match := range self.matches {
		if match.Contains(char) {
			return true
		}
	}
	return false
}

func (self Range) String() string {
	var builder strings.Builder
	builder.WriteRune('[')
	for _, match := range self.matches {
		builder.WriteString(match.String())
	}
	builder.WriteRune(']')
	return builder.String()
}

func (self *Range) add(match RangeMatch) {
	self.matches = append(self.matches, match)
}

func escapeClassCharacter(char rune) string {
	switch char {
	case '\\', '-', '[', ']':
		return `\` + string(char)
	case '\r':
		return `\r`
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	default:
		return string(char)
	}
}

//
// Parsing
//

// ParseRange parses the body of a bracket class.
// One leading `[` and one trailing `]` are stripped if present.
func ParseRange(input string) (Range, *errors.Error) {
	body, offset := stripClassDelimiters([]rune(input))

	state := rangeState{}
	for index, char := range body {
		if err := state.step(char, uint(index+offset)); err != nil {
			return Range{}, err
		}
	}

	return state.finish()
}

// Returns the body and the offset of its first rune inside the input.
func stripClassDelimiters(characters []rune) ([]rune, int) {
	offset := 0

	if len(characters) > 0 && characters[0] == '[' {
		characters = characters[1:]
		offset = 1
	}

	if len(characters) > 0 && characters[len(characters)-1] == ']' {
		characters = characters[:len(characters)-1]
	}

	return characters, offset
}
