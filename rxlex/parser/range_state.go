package parser

import (
	"fmt"

	"github.com/smarthome-go/rxlex/rxlex/errors"
)

type bufferedCharacter struct {
	char  rune
	index uint
}

// rangeState is threaded through every character of a class body.
// At most one character is buffered: it is committed as a single match only
// once it is certain that it does not start a range.
type rangeState struct {
	strictLiteral bool
	escapeIndex   uint

	rangeContext bool
	rangeIndex   uint

	previousCharacter *bufferedCharacter

	result Range
}

func decodeEscape(char rune) rune {
	switch char {
	case 'r':
		return '\r'
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return char
	}
}

func (self *rangeState) step(char rune, index uint) *errors.Error {
	if self.strictLiteral {
		self.strictLiteral = false
		return self.decoded(decodeEscape(char), index)
	}

	switch char {
	case '\\':
		self.strictLiteral = true
		self.escapeIndex = index
		return nil
	case '-':
		self.rangeContext = true
		self.rangeIndex = index
		return nil
	case '[', ']':
		return errors.NewSyntaxError(
			errors.At(index),
			fmt.Sprintf("Unexpected class delimiter '%c' inside character class", char),
		)
	default:
		return self.decoded(char, index)
	}
}

func (self *rangeState) decoded(char rune, index uint) *errors.Error {
	if !self.rangeContext {
		if self.previousCharacter != nil {
			self.result.add(SingleMatch{Char: self.previousCharacter.char})
		}
		self.previousCharacter = &bufferedCharacter{char: char, index: index}
		return nil
	}

	if self.previousCharacter == nil {
		return errors.NewSyntaxError(
			errors.NewSpan(self.rangeIndex, index),
			fmt.Sprintf("Range marker '-' has no start character before '%c'", char),
		)
	}

	start := *self.previousCharacter
	self.rangeContext = false
	self.previousCharacter = nil

	match, err := newIntervalMatch(start.char, char, errors.NewSpan(start.index, index))
	if err != nil {
		return err
	}

	self.result.add(match)
	return nil
}

func (self *rangeState) finish() (Range, *errors.Error) {
	if self.strictLiteral {
		return Range{}, errors.NewSyntaxError(
			errors.At(self.escapeIndex),
			"Unfinished escape sequence",
		)
	}

	if self.rangeContext {
		return Range{}, errors.NewSyntaxError(
			errors.At(self.rangeIndex),
			"Range marker '-' has no end character",
		)
	}

	if self.previousCharacter != nil {
		self.result.add(SingleMatch{Char: self.previousCharacter.char})
		self.previousCharacter = nil
	}

	return self.result, nil
}
