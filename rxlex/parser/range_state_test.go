package parser

import (
	"testing"

	"github.com/smarthome-go/rxlex/rxlex/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateEscapeTransition(t *testing.T) {
	state := rangeState{}

	require.Nil(t, state.step('\\', 0))
	assert.True(t, state.strictLiteral)
	assert.Nil(t, state.previousCharacter)

	require.Nil(t, state.step('n', 1))
	assert.False(t, state.strictLiteral)
	require.NotNil(t, state.previousCharacter)
	assert.Equal(t, '\n', state.previousCharacter.char)
	assert.Equal(t, uint(1), state.previousCharacter.index)
}

func TestStateEscapedDelimiterIsLiteral(t *testing.T) {
	for _, char := range "[]-\\" {
		state := rangeState{strictLiteral: true}

		require.Nil(t, state.step(char, 3))
		require.NotNil(t, state.previousCharacter)
		assert.Equal(t, char, state.previousCharacter.char)
		assert.False(t, state.rangeContext)
	}
}

func TestStateRangeMarkerTransition(t *testing.T) {
	state := rangeState{}

	require.Nil(t, state.step('-', 4))
	assert.True(t, state.rangeContext)
	assert.Equal(t, uint(4), state.rangeIndex)
	assert.Equal(t, 0, state.result.Len())
}

func TestStateBufferFlush(t *testing.T) {
	state := rangeState{}

	require.Nil(t, state.step('a', 0))
	assert.Equal(t, 0, state.result.Len(), "first character stays buffered")

	require.Nil(t, state.step('b', 1))
	assert.Equal(t, []RangeMatch{SingleMatch{Char: 'a'}}, state.result.Matches())
	assert.Equal(t, 'b', state.previousCharacter.char)
}

func TestStateRangeCompletion(t *testing.T) {
	state := rangeState{
		rangeContext:      true,
		previousCharacter: &bufferedCharacter{char: 'a', index: 0},
	}

	require.Nil(t, state.step('f', 2))
	assert.False(t, state.rangeContext)
	assert.Nil(t, state.previousCharacter)
	require.Equal(t, 1, state.result.Len())
	assert.Equal(t, IntervalMatchKind, state.result.Matches()[0].Kind())
}

func TestStateDanglingRangeMarker(t *testing.T) {
	state := rangeState{rangeContext: true, rangeIndex: 0}

	err := state.step('x', 1)
	require.NotNil(t, err)
	assert.Equal(t, errors.InvalidSyntax, err.Kind)
	assert.Equal(t, errors.NewSpan(0, 1), err.Span)
}

func TestStateDelimiter(t *testing.T) {
	for _, char := range "[]" {
		state := rangeState{}
		err := state.step(char, 7)
		require.NotNil(t, err)
		assert.Equal(t, errors.InvalidSyntax, err.Kind)
		assert.Equal(t, errors.At(7), err.Span)
	}
}

func TestStateFinish(t *testing.T) {
	state := rangeState{previousCharacter: &bufferedCharacter{char: 'q'}}
	result, err := state.finish()
	require.Nil(t, err)
	assert.Equal(t, []RangeMatch{SingleMatch{Char: 'q'}}, result.Matches())

	state = rangeState{rangeContext: true, rangeIndex: 5, previousCharacter: &bufferedCharacter{char: 'q'}}
	_, err = state.finish()
	require.NotNil(t, err)
	assert.Equal(t, errors.InvalidSyntax, err.Kind)
	assert.Equal(t, errors.At(5), err.Span)

	state = rangeState{strictLiteral: true, escapeIndex: 2}
	_, err = state.finish()
	require.NotNil(t, err)
	assert.Equal(t, "Unfinished escape sequence", err.Message)
}
