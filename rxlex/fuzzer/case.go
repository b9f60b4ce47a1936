package fuzzer

import (
	"fmt"
	"math/rand"
	"reflect"
	"strings"

	"github.com/smarthome-go/rxlex/rxlex/parser"
)

type CaseKind uint8

const (
	QuantifierCase CaseKind = iota
	RangeCase
	NoiseCase
)

func (self CaseKind) String() string {
	switch self {
	case QuantifierCase:
		return "quantifier"
	case RangeCase:
		return "class"
	case NoiseCase:
		return "noise"
	default:
		panic("A new case kind was added without updating this code")
	}
}

func ParseCaseKind(name string) (CaseKind, bool) {
	for _, kind := range []CaseKind{QuantifierCase, RangeCase, NoiseCase} {
		if kind.String() == name {
			return kind, true
		}
	}
	return 0, false
}

type Case struct {
	Kind  CaseKind
	Input string
}

func (self Case) String() string {
	return fmt.Sprintf("%s %q", self.Kind, self.Input)
}

//
// Generation
//

// Mostly small counts, sometimes huge ones.
func randomCount(random *rand.Rand) uint {
	if random.Intn(10) == 0 {
		return uint(random.Uint64() >> 1)
	}
	return uint(random.Intn(100))
}

func randomQuantifier(random *rand.Rand) parser.Quantifier {
	switch random.Intn(4) {
	case 0:
		return parser.SingleQuantifier{}
	case 1:
		return parser.AtLeastQuantifier{Min: randomCount(random)}
	case 2:
		return parser.AtMostQuantifier{Max: randomCount(random)}
	default:
		return parser.RangeQuantifier{Min: randomCount(random), Max: randomCount(random)}
	}
}

var classAlphabet = []rune("abcxyzAZ09_ -[]\\^.\r\n\täöü€")

func randomClassCharacter(random *rand.Rand) rune {
	// below the surrogate block, every value is a valid rune
	if random.Intn(8) == 0 {
		return rune(random.Intn(0xD800))
	}
	return classAlphabet[random.Intn(len(classAlphabet))]
}

func randomRange(random *rand.Rand) parser.Range {
	length := random.Intn(7)
	matches := make([]parser.RangeMatch, 0, length)

	for i := 0; i < length; i++ {
		lo := randomClassCharacter(random)
		if random.Intn(2) == 0 {
			matches = append(matches, parser.SingleMatch{Char: lo})
			continue
		}

		hi := randomClassCharacter(random)
		if hi < lo {
			lo, hi = hi, lo
		}

		interval, err := parser.NewIntervalMatch(lo, hi)
		if err != nil {
			panic(err.Error())
		}
		matches = append(matches, interval)
	}

	return parser.NewRange(matches...)
}

var noiseAlphabet = []rune("{}[],-\\?*+ \t0123456789abcznrt")

func randomNoise(random *rand.Rand) string {
	length := random.Intn(10)
	var builder strings.Builder
	for i := 0; i < length; i++ {
		builder.WriteRune(noiseAlphabet[random.Intn(len(noiseAlphabet))])
	}
	return builder.String()
}

func randomCase(random *rand.Rand) Case {
	switch random.Intn(3) {
	case 0:
		return Case{Kind: QuantifierCase, Input: randomQuantifier(random).String()}
	case 1:
		return Case{Kind: RangeCase, Input: randomRange(random).String()}
	default:
		return Case{Kind: NoiseCase, Input: randomNoise(random)}
	}
}

//
// Checking
//

// Check parses the case and returns a description of what went wrong.
// An empty string means the case passed.
func Check(input Case) (failure string) {
	defer func() {
		if err := recover(); err != nil {
			failure = fmt.Sprintf("parser panicked: %v", err)
		}
	}()

	switch input.Kind {
	case QuantifierCase:
		return checkQuantifier(input.Input, true)
	case RangeCase:
		return checkRange(input.Input, true)
	case NoiseCase:
		if result := checkQuantifier(input.Input, false); result != "" {
			return result
		}
		return checkRange(input.Input, false)
	default:
		panic("A new case kind was added without updating this code")
	}
}

func checkQuantifier(input string, mustParse bool) string {
	quantifier, err := parser.ParseQuantifier(input)
	if err != nil {
		if mustParse {
			return fmt.Sprintf("valid quantifier %q was rejected: %s", input, err)
		}
		return ""
	}

	reparsed, err := parser.ParseQuantifier(quantifier.String())
	if err != nil {
		return fmt.Sprintf("serialized quantifier %q was rejected: %s", quantifier.String(), err)
	}
	if reparsed != quantifier {
		return fmt.Sprintf("quantifier %q changed after reparse: %s", input, reparsed)
	}

	return ""
}

func checkRange(input string, mustParse bool) string {
	class, err := parser.ParseRange(input)
	if err != nil {
		if mustParse {
			return fmt.Sprintf("valid class %q was rejected: %s", input, err)
		}
		return ""
	}

	for _, match := range class.Matches() {
		if interval, ok := match.(parser.IntervalMatch); ok && interval.Lo() > interval.Hi() {
			return fmt.Sprintf("class %q contains inverted interval %s", input, interval)
		}
	}

	reparsed, err := parser.ParseRange(class.String())
	if err != nil {
		return fmt.Sprintf("serialized class %q was rejected: %s", class.String(), err)
	}
	if !reflect.DeepEqual(reparsed, class) {
		return fmt.Sprintf("class %q changed after reparse: %s", input, reparsed)
	}

	return ""
}
