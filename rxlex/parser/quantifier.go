package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smarthome-go/rxlex/rxlex/errors"
)

type QuantifierKind uint8

const (
	SingleQuantifierKind QuantifierKind = iota
	AtLeastQuantifierKind
	AtMostQuantifierKind
	RangeQuantifierKind
)

func (self QuantifierKind) String() string {
	switch self {
	case SingleQuantifierKind:
		return "Single"
	case AtLeastQuantifierKind:
		return "AtLeast"
	case AtMostQuantifierKind:
		return "AtMost"
	case RangeQuantifierKind:
		return "Range"
	default:
		panic("A new quantifier kind was added without updating this code")
	}
}

type Quantifier interface {
	Kind() QuantifierKind
	// If `bounded` is false there is no upper limit and `upper` is meaningless.
	Bounds() (lower uint, upper uint, bounded bool)
	String() string
}

//
// Single
//

type SingleQuantifier struct{}

func (self SingleQuantifier) Kind() QuantifierKind       { return SingleQuantifierKind }
func (self SingleQuantifier) Bounds() (uint, uint, bool) { return 1, 1, true }
func (self SingleQuantifier) String() string             { return "" }

//
// At least
//

type AtLeastQuantifier struct {
	Min uint
}

func (self AtLeastQuantifier) Kind() QuantifierKind       { return AtLeastQuantifierKind }
func (self AtLeastQuantifier) Bounds() (uint, uint, bool) { return self.Min, 0, false }
func (self AtLeastQuantifier) String() string {
	switch self.Min {
	case 0:
		return "*"
	case 1:
		return "+"
	default:
		return fmt.Sprintf("{%d,}", self.Min)
	}
}

//
// At most
//

type AtMostQuantifier struct {
	Max uint
}

func (self AtMostQuantifier) Kind() QuantifierKind       { return AtMostQuantifierKind }
func (self AtMostQuantifier) Bounds() (uint, uint, bool) { return 0, self.Max, true }
func (self AtMostQuantifier) String() string {
	if self.Max == 1 {
		return "?"
	}
	return fmt.Sprintf("{,%d}", self.Max)
}

//
// Range
//

// Min and Max are not order-checked, `{43,13}` is a valid quantifier.
type RangeQuantifier struct {
	Min uint
	Max uint
}

func (self RangeQuantifier) Kind() QuantifierKind       { return RangeQuantifierKind }
func (self RangeQuantifier) Bounds() (uint, uint, bool) { return self.Min, self.Max, true }
func (self RangeQuantifier) String() string             { return fmt.Sprintf("{%d,%d}", self.Min, self.Max) }

//
// Parsing
//

// ParseQuantifier classifies the suffix that follows an atom.
// The empty string is valid and yields a `SingleQuantifier`.
func ParseQuantifier(input string) (Quantifier, *errors.Error) {
	characters := []rune(input)

	if len(characters) == 0 {
		return SingleQuantifier{}, nil
	}

	if characters[0] == '{' {
		return parseQuantifierRange(characters)
	}

	return parseSingleCharacter(characters)
}

// Only the first character is inspected, anything after it is ignored.
func parseSingleCharacter(characters []rune) (Quantifier, *errors.Error) {
	switch characters[0] {
	case '?':
		return AtMostQuantifier{Max: 1}, nil
	case '*':
		return AtLeastQuantifier{Min: 0}, nil
	case '+':
		return AtLeastQuantifier{Min: 1}, nil
	default:
		return nil, errors.NewSyntaxError(
			errors.At(0),
			fmt.Sprintf("Could not determine quantifier type from supplied character '%c'", characters[0]),
		)
	}
}

type countField struct {
	text string
	span errors.Span
}

// Splits everything after the opening brace on `,`.
// Braces inside a field are dropped, so a missing or stray `}` is tolerated.
func splitCountFields(characters []rune) []countField {
	fields := make([]countField, 0)

	start := 1
	for index := 1; index <= len(characters); index++ {
		if index < len(characters) && characters[index] != ',' {
			continue
		}

		end := index - 1
		if end < start {
			end = start
		}

		fields = append(fields, countField{
			text: string(characters[start:index]),
			span: errors.NewSpan(uint(start), uint(end)),
		})
		start = index + 1
	}

	return fields
}

var braceRemover = strings.NewReplacer("{", "", "}", "")

// Returns nil for an empty field.
func parseIntegerOrEmpty(field countField) (*uint, *errors.Error) {
	text := strings.TrimSpace(braceRemover.Replace(field.text))

	if text == "" {
		return nil, nil
	}

	// an explicit sign is allowed, `{+5}` is `{5}`
	text = strings.TrimPrefix(text, "+")

	value, err := strconv.ParseUint(text, 10, strconv.IntSize)
	if err != nil {
		return nil, errors.NewSyntaxError(field.span, err.Error())
	}

	count := uint(value)
	return &count, nil
}

func parseQuantifierRange(characters []rune) (Quantifier, *errors.Error) {
	wholeInput := errors.NewSpan(0, uint(len(characters)-1))

	fields := splitCountFields(characters)
	elements := make([]*uint, 0, len(fields))

	for _, field := range fields {
		element, err := parseIntegerOrEmpty(field)
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
	}

	switch len(elements) {
	case 2:
		return createRangedQuantifier(elements[0], elements[1], wholeInput)
	case 1:
		if elements[0] == nil {
			return nil, errors.NewQuantifierError(
				wholeInput,
				"Cannot create a ranged quantifier with an empty field.",
			)
		}
		return AtLeastQuantifier{Min: *elements[0]}, nil
	default:
		return nil, errors.NewQuantifierError(
			wholeInput,
			fmt.Sprintf("Cannot create a ranged quantifier with %d fields.", len(elements)),
		)
	}
}

func createRangedQuantifier(start *uint, end *uint, span errors.Span) (Quantifier, *errors.Error) {
	switch {
	case start != nil && end == nil:
		return AtLeastQuantifier{Min: *start}, nil
	case start == nil && end != nil:
		return AtMostQuantifier{Max: *end}, nil
	case start != nil && end != nil:
		return RangeQuantifier{Min: *start, Max: *end}, nil
	default:
		return nil, errors.NewQuantifierError(
			span,
			"Cannot create ranged quantifier with two empty fields.",
		)
	}
}
