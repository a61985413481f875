package nibble

import "bytes"

// Byte consumes a single byte.
func Byte(input []byte) ([]byte, byte, error) {
	if len(input) == 0 {
		return input, 0, EndOfInputError{At: input}
	}

	return input[1:], input[0], nil
}

// Take returns a parser that consumes exactly count bytes and returns them
// without copying. Take(0) always succeeds with an empty slice.
// Take panics if count is negative.
func Take(count int) Parser[[]byte] {
	if count < 0 {
		panic("take: negative count")
	}

	return func(input []byte) ([]byte, []byte, error) {
		if len(input) < count {
			return input, nil, InsufficientBytesError{At: input, Requested: count}
		}

		// limit capacity so appending to the result never touches the rest of the buffer
		return input[count:], input[:count:count], nil
	}
}

// Tag returns a parser that consumes len(expected) bytes if they equal expected.
// expected is copied, later changes to it do not affect the parser.
func Tag(expected []byte) Parser[[]byte] {
	expected = bytes.Clone(expected)
	take := Take(len(expected))

	return func(input []byte) ([]byte, []byte, error) {
		rest, value, err := take(input)
		if err != nil {
			return input, nil, TagError{At: input, Expected: expected, Err: err}
		}

		if !bytes.Equal(value, expected) {
			return input, nil, TagError{At: input, Expected: expected}
		}

		return rest, value, nil
	}
}

// Rest consumes all of the remaining input. It never fails.
func Rest(input []byte) ([]byte, []byte, error) {
	return input[len(input):], input, nil
}
