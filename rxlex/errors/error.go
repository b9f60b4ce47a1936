package errors

import "fmt"

// All ranges inclusive
type Span struct {
	Start Location
	End   Location
}

// Index is the rune offset inside the text handed to the parser.
type Location struct {
	Index uint
}

func NewSpan(start uint, end uint) Span {
	return Span{
		Start: Location{Index: start},
		End:   Location{Index: end},
	}
}

// Single-character span.
func At(index uint) Span {
	return NewSpan(index, index)
}

func (self Span) String() string {
	if self.Start == self.End {
		return fmt.Sprintf("%d", self.Start.Index)
	}
	return fmt.Sprintf("%d..%d", self.Start.Index, self.End.Index)
}

//
// Error
//

type Error struct {
	Kind    ErrorKind
	Message string
	Span    Span
}

type ErrorKind uint8

const (
	InvalidSyntax ErrorKind = iota
	InvalidQuantifier
	InvalidMatchRange
)

func (self ErrorKind) String() string {
	switch self {
	case InvalidSyntax:
		return "InvalidSyntax"
	case InvalidQuantifier:
		return "InvalidQuantifier"
	case InvalidMatchRange:
		return "InvalidMatchRange"
	default:
		panic("A new error kind was added without updating this code")
	}
}

func (self *Error) Error() string {
	return fmt.Sprintf("%s: %s", self.Kind, self.Message)
}

func NewError(span Span, message string, kind ErrorKind) *Error {
	return &Error{
		Span:    span,
		Message: message,
		Kind:    kind,
	}
}

func NewSyntaxError(span Span, message string) *Error {
	return NewError(span, message, InvalidSyntax)
}

func NewQuantifierError(span Span, message string) *Error {
	return NewError(span, message, InvalidQuantifier)
}

func NewMatchRangeError(span Span, message string) *Error {
	return NewError(span, message, InvalidMatchRange)
}
