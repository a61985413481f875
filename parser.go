package nibble

import "errors"

// Parser is the shape every parser in this package conforms to. A Parser receives
// the remaining input and returns the input that is left after it ran, together with
// either the parsed value or an error.
//
// Every Parser must follow these rules:
//   - **Success**: the returned input is a suffix of the given input, advanced by exactly
//     the number of bytes the parser consumed.
//   - **Failure**: the returned input is the input the parser was called with. Callers can
//     safely try another parser from the same position. The returned value is the zero
//     value of T and must be ignored.
//   - **Purity**: a Parser does not modify its input or any shared state. Calling the same
//     Parser twice with the same input yields the same result. Parsers are therefore safe
//     to use from multiple goroutines.
//   - **Bounds**: a Parser never reads past the end of its input. A truncated input always
//     results in an error, never in a panic.
//
// Parsers are plain functions, so any function with a matching signature is a Parser:
//
//	func Version(input []byte) ([]byte, uint8, error) {
//	    return U8(input)
//	}
//
// Values returned by a Parser may borrow from the input buffer. [Take] for example
// returns a sub slice of the input without copying.
type Parser[T any] func(input []byte) ([]byte, T, error)

// Located is implemented by errors that know where in the input they happened.
// Remaining returns the input that was left at the point of failure.
type Located interface {
	error
	Remaining() []byte
}

// Run applies parser to buf and requires it to consume buf entirely.
func Run[T any](parser Parser[T], buf []byte) (T, error) {
	_, value, err := Finish(parser)(buf)
	return value, err
}

// Offset returns the position of at within buf. at must be a suffix of buf,
// as is every input returned by a Parser that was called with buf.
func Offset(buf, at []byte) int {
	return len(buf) - len(at)
}

// ErrorOffset returns the byte offset within buf at which err happened.
// It reports false if err does not carry a location.
func ErrorOffset(buf []byte, err error) (int, bool) {
	var located Located
	if !errors.As(err, &located) {
		return 0, false
	}

	return Offset(buf, located.Remaining()), true
}
