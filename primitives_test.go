package nibble

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestByte(t *testing.T) {
	input := []byte{0x01, 0x02}

	rest, value, err := Byte(input)
	require.NoError(t, err)
	require.Equal(t, value, byte(0x01))
	require.Equal(t, rest, []byte{0x02})
}

func TestByteEndOfInput(t *testing.T) {
	input := []byte{}

	rest, _, err := Byte(input)
	require.ErrorIs(t, err, ErrEndOfInput)
	require.Equal(t, rest, input)

	var endOfInput EndOfInputError
	require.ErrorAs(t, err, &endOfInput)
	require.Empty(t, endOfInput.At)
}

func TestTake(t *testing.T) {
	input := []byte{1, 2, 3, 4, 5}

	for count := 0; count <= len(input); count++ {
		rest, value, err := Take(count)(input)
		require.NoError(t, err)
		require.Equal(t, value, input[:count])
		require.Len(t, rest, len(input)-count)
		require.Equal(t, Offset(input, rest), count)
	}
}

func TestTakeZero(t *testing.T) {
	rest, value, err := Take(0)(nil)
	require.NoError(t, err)
	require.Empty(t, value)
	require.Empty(t, rest)

	rest, value, err = Take(0)([]byte{1})
	require.NoError(t, err)
	require.Empty(t, value)
	require.Equal(t, rest, []byte{1})
}

func TestTakeInsufficientBytes(t *testing.T) {
	input := []byte{1, 2, 3}

	rest, value, err := Take(4)(input)
	require.ErrorIs(t, err, ErrInsufficientBytes)
	require.Nil(t, value)
	require.Equal(t, rest, input)

	var insufficient InsufficientBytesError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, insufficient.Requested, 4)
	require.Equal(t, insufficient.Available(), 3)
}

func TestTakeDoesNotExposeRest(t *testing.T) {
	input := []byte{1, 2, 3, 4}

	_, value, err := Take(2)(input)
	require.NoError(t, err)

	// appending must reallocate instead of overwriting the input
	_ = append(value, 0xff)
	require.Equal(t, input, []byte{1, 2, 3, 4})
}

func TestTakeNegativeCount(t *testing.T) {
	require.Panics(t, func() { Take(-1) })
}

func TestTag(t *testing.T) {
	input := []byte("BMxyz")

	rest, value, err := Tag([]byte("BM"))(input)
	require.NoError(t, err)
	require.Equal(t, value, []byte("BM"))
	require.Equal(t, rest, []byte("xyz"))
}

func TestTagMismatch(t *testing.T) {
	input := []byte("BAxyz")

	rest, _, err := Tag([]byte("BM"))(input)
	require.ErrorIs(t, err, ErrTagMismatch)
	require.NotErrorIs(t, err, ErrInsufficientBytes)
	require.Equal(t, rest, input)

	var tagError TagError
	require.ErrorAs(t, err, &tagError)
	require.Equal(t, tagError.Expected, []byte("BM"))
	require.Equal(t, tagError.At, input)
}

func TestTagShortInput(t *testing.T) {
	input := []byte("B")

	rest, _, err := Tag([]byte("BM"))(input)
	require.ErrorIs(t, err, ErrInsufficientBytes)
	require.NotErrorIs(t, err, ErrTagMismatch)
	require.Equal(t, rest, input)

	var tagError TagError
	require.ErrorAs(t, err, &tagError)
}

func TestTagEmpty(t *testing.T) {
	rest, value, err := Tag(nil)([]byte{1})
	require.NoError(t, err)
	require.Empty(t, value)
	require.Equal(t, rest, []byte{1})
}

func TestTagCopiesExpected(t *testing.T) {
	expected := []byte("BM")
	tag := Tag(expected)

	// changing the buffer afterwards does not change the parser
	expected[1] = 'A'

	rest, value, err := tag([]byte("BMx"))
	require.NoError(t, err)
	require.Equal(t, value, []byte("BM"))
	require.Equal(t, rest, []byte("x"))

	_, _, err = tag([]byte("BAx"))
	require.ErrorIs(t, err, ErrTagMismatch)
}

func TestRest(t *testing.T) {
	input := []byte{1, 2, 3}

	rest, value, err := Rest(input)
	require.NoError(t, err)
	require.Equal(t, value, input)
	require.Empty(t, rest)
}
